package chi

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	cataloguc "github.com/kailas-cloud/campusbot/internal/usecase/catalog"
)

const maxBodyBytes = 1 << 20

type listResponse struct {
	Items  any `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ListResources handles GET /api.
func (s *Server) ListResources(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"resources": s.catalog.Names()})
}

// ListRecords handles GET /api/{entity}?limit=&offset=.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	res, ok := s.resource(w, r)
	if !ok {
		return
	}

	limit, offset := 50, 0
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid format for parameter limit: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", r.URL.Query(), &offset); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid format for parameter offset: "+err.Error())
		return
	}
	if limit <= 0 || limit > cataloguc.MaxPageSize || offset < 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be 1-200 and offset non-negative")
		return
	}

	items, err := res.List(r.Context(), limit, offset)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Limit: limit, Offset: offset})
}

// GetRecord handles GET /api/{entity}/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	res, id, ok := s.resourceAndID(w, r)
	if !ok {
		return
	}
	rec, err := res.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// CreateRecord handles POST /api/{entity}.
func (s *Server) CreateRecord(w http.ResponseWriter, r *http.Request) {
	res, ok := s.resource(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	rec, err := res.Create(r.Context(), body)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// UpdateRecord handles PUT /api/{entity}/{id}.
func (s *Server) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	res, id, ok := s.resourceAndID(w, r)
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	rec, err := res.Update(r.Context(), id, body)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteRecord handles DELETE /api/{entity}/{id}.
func (s *Server) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	res, id, ok := s.resourceAndID(w, r)
	if !ok {
		return
	}
	if err := res.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) resource(w http.ResponseWriter, r *http.Request) (cataloguc.Resource, bool) {
	res, err := s.catalog.Lookup(chi.URLParam(r, "entity"))
	if err != nil {
		s.handleDomainError(w, err)
		return nil, false
	}
	return res, true
}

func (s *Server) resourceAndID(w http.ResponseWriter, r *http.Request) (cataloguc.Resource, int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid format for parameter id")
		return nil, 0, false
	}
	res, ok := s.resource(w, r)
	return res, id, ok
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	return body, true
}
