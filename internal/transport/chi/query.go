package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/domain"
	"github.com/kailas-cloud/campusbot/internal/domain/chat"
	"github.com/kailas-cloud/campusbot/internal/domain/route"
	logpkg "github.com/kailas-cloud/campusbot/internal/logger"
)

type turnJSON struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type queryRequest struct {
	QueryText string     `json:"query_text"`
	SessionID string     `json:"session_id,omitempty"`
	UserID    string     `json:"user_id,omitempty"`
	History   []turnJSON `json:"history,omitempty"`
}

type queryResponse struct {
	QueryID         string `json:"queryId"`
	ChatbotResponse string `json:"chatbotResponse"`
	// ResponseTime is in milliseconds.
	ResponseTime int64  `json:"responseTime"`
	Source       string `json:"source"`
}

type sessionRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type sessionResponse struct {
	SessionID  string     `json:"sessionId"`
	UserID     string     `json:"userId"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	LastActive *time.Time `json:"lastActive,omitempty"`
	QueryCount *int64     `json:"queryCount,omitempty"`
}

// Query handles POST /query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	q, ok := s.decodeQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toQueryResponse(s.answerer.Answer(r.Context(), q)))
}

// DomainQuery handles POST /{domain}/query.
func (s *Server) DomainQuery(w http.ResponseWriter, r *http.Request) {
	d, ok := route.Parse(chi.URLParam(r, "domain"))
	if !ok {
		writeError(w, http.StatusNotFound, codeNotFound, "unknown domain")
		return
	}
	q, ok := s.decodeQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toQueryResponse(s.answerer.AnswerIn(r.Context(), d, q)))
}

// decodeQuery validates the body and fills in stored history when the caller
// sent a session id without one.
func (s *Server) decodeQuery(w http.ResponseWriter, r *http.Request) (chat.InboundQuery, bool) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return chat.InboundQuery{}, false
	}

	text := sanitizeText(req.QueryText)
	if text == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query_text is required")
		return chat.InboundQuery{}, false
	}
	if utf8.RuneCountInString(text) > maxQueryRunes {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query_text is too long")
		return chat.InboundQuery{}, false
	}

	q := chat.InboundQuery{SessionID: req.SessionID, UserID: req.UserID, Text: text}
	for _, t := range req.History {
		q.History = append(q.History, chat.Turn{Question: t.Question, Answer: t.Answer})
	}

	if q.History == nil && q.SessionID != "" && s.sessions != nil {
		h, err := s.sessions.History(r.Context(), q.SessionID)
		if err != nil {
			logpkg.FromContext(r.Context()).Warn("load session history",
				zap.String("session_id", q.SessionID),
				zap.Error(err),
			)
		}
		q.History = h
	}
	return q, true
}

func toQueryResponse(a chat.ComposedAnswer) queryResponse {
	return queryResponse{
		QueryID:         a.QueryID,
		ChatbotResponse: a.Text,
		ResponseTime:    a.ResponseTime.Milliseconds(),
		Source:          string(a.Source),
	}
}

// CreateSession handles POST /session.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	sess, err := s.sessions.Create(r.Context(), req.UserID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: sess.ID, UserID: sess.UserID})
}

// GetSession handles GET /session/{sessionID}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "session not found")
			return
		}
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID:  sess.ID,
		UserID:     sess.UserID,
		CreatedAt:  &sess.CreatedAt,
		LastActive: &sess.LastActive,
		QueryCount: &sess.QueryCount,
	})
}
