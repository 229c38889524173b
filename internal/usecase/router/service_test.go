package router

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/campusbot/internal/domain"
	"github.com/kailas-cloud/campusbot/internal/domain/chat"
	"github.com/kailas-cloud/campusbot/internal/domain/entity"
	"github.com/kailas-cloud/campusbot/internal/domain/params"
	"github.com/kailas-cloud/campusbot/internal/domain/route"
	"github.com/kailas-cloud/campusbot/internal/domain/search/filter"
	"github.com/kailas-cloud/campusbot/internal/usecase/rephrase"
	"github.com/kailas-cloud/campusbot/internal/usecase/search"
)

// --- Mocks ---

type mockClassifier struct {
	result  *chat.Classification
	panics  bool
	history []chat.Turn
}

func (m *mockClassifier) Classify(_ context.Context, _, _ string, history []chat.Turn) *chat.Classification {
	if m.panics {
		panic("nil map write")
	}
	m.history = history
	return m.result
}

func (m *mockClassifier) Trusted(c *chat.Classification) bool {
	return c != nil && c.Confidence >= 0.3
}

type mockSearcher struct {
	outcome search.Outcome
	calls   int
	domain  route.Domain
	params  params.Params
}

func (m *mockSearcher) Search(_ context.Context, d route.Domain, p params.Params) search.Outcome {
	m.calls++
	m.domain, m.params = d, p
	out := m.outcome
	out.Domain = d
	return out
}

type mockRephraser struct {
	text    string
	err     error
	prompts []string
}

func (m *mockRephraser) Rephrase(_ context.Context, prompt string, _ []chat.Turn) (rephrase.Result, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return rephrase.Result{}, m.err
	}
	text := m.text
	if text == "" {
		// Echo the data block so tests can see what the model was given.
		_, data, _ := strings.Cut(prompt, "Data:\n")
		text = "Sure! " + data
	}
	return rephrase.Result{Text: text, KeyLabel: "key-0"}, nil
}

type mockRecorder struct {
	mu      sync.Mutex
	records []chat.QueryRecord
	err     error
}

func (m *mockRecorder) Record(_ context.Context, rec chat.QueryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return m.err
}

type fixture struct {
	cls  *mockClassifier
	srch *mockSearcher
	reph *mockRephraser
	rec  *mockRecorder
}

func newFixture() *fixture {
	return &fixture{
		cls:  &mockClassifier{},
		srch: &mockSearcher{outcome: search.Outcome{Text: "The Registrar is open 8AM-5PM.", Status: search.StatusFound, Count: 1}},
		reph: &mockRephraser{},
		rec:  &mockRecorder{},
	}
}

func (f *fixture) router(opts Options) *Router {
	return New(f.cls, f.srch, f.reph, f.rec, opts, zap.NewNop())
}

func query(text string) chat.InboundQuery {
	return chat.InboundQuery{SessionID: "s-1", UserID: "u-1", Text: text}
}

// --- Tests ---

func TestAnswer_LowConfidenceFallsBack(t *testing.T) {
	tests := []struct {
		name string
		c    *chat.Classification
	}{
		{"low confidence", &chat.Classification{Action: "get_office_info", Confidence: 0.1}},
		{"nil classification", nil},
		{"low confidence with canned text", &chat.Classification{FulfillmentText: "Hi", Confidence: 0.2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.cls.result = tc.c
			f.reph.text = "I'm not sure what you mean."

			ans := f.router(Options{Rephrase: true}).Answer(context.Background(), query("asdkjasd"))

			if !strings.HasPrefix(string(ans.Source), "generative-fallback") {
				t.Errorf("source = %s", ans.Source)
			}
			if f.srch.calls != 0 {
				t.Error("search must not run below the confidence gate")
			}
			if len(f.reph.prompts) != 1 || !strings.Contains(f.reph.prompts[0], "asdkjasd") {
				t.Errorf("expected raw message rephrased once, got %v", f.reph.prompts)
			}
		})
	}
}

func TestAnswer_CannedTextWins(t *testing.T) {
	f := newFixture()
	f.cls.result = &chat.Classification{
		FulfillmentText: "Hi there!",
		Action:          "get_office_info",
		Confidence:      0.9,
		Parameters:      params.Params{"office_name": params.String("Registrar")},
	}

	ans := f.router(Options{Rephrase: true}).Answer(context.Background(), query("hello"))

	if ans.Text != "Hi there!" || ans.Source != chat.SourceDialogflowDirect {
		t.Errorf("unexpected answer %+v", ans)
	}
	if f.srch.calls != 0 || len(f.reph.prompts) != 0 {
		t.Error("canned text must skip search and rephrasing")
	}
}

func TestAnswer_UnmappedActionGoesGenerative(t *testing.T) {
	f := newFixture()
	f.cls.result = &chat.Classification{Intent: "smalltalk.weather", Action: "input.weather", Confidence: 0.9}
	f.reph.text = "I can only help with school information, but it looks sunny!"

	ans := f.router(Options{Rephrase: true}).Answer(context.Background(), query("how's the weather?"))

	if !strings.HasPrefix(string(ans.Source), "generative-main") || ans.Text == "" {
		t.Errorf("unexpected answer %+v", ans)
	}
	if f.srch.calls != 0 {
		t.Error("unmapped actions must not search")
	}
}

func TestAnswer_UnmappedActionLogsSentinel(t *testing.T) {
	f := newFixture()
	f.cls.result = &chat.Classification{Intent: "smalltalk.weather", Action: "input.weather", Confidence: 0.9}
	core, logs := observer.New(zapcore.DebugLevel)

	New(f.cls, f.srch, f.reph, f.rec, Options{}, zap.New(core)).Answer(context.Background(), query("how's the weather?"))

	entries := logs.FilterMessage("unmapped classification").All()
	if len(entries) != 1 {
		t.Fatalf("expected one unmapped entry, got %d", len(entries))
	}
	err, ok := entries[0].ContextMap()["error"].(string)
	if !ok || !strings.Contains(err, domain.ErrUnmappedAction.Error()) || !strings.Contains(err, "input.weather") {
		t.Errorf("unexpected error field: %v", entries[0].ContextMap())
	}
}

func TestAnswer_IntentKeywordDispatch(t *testing.T) {
	f := newFixture()
	f.cls.result = &chat.Classification{
		Intent:     "Scholarship Inquiry",
		Action:     "input.unknown",
		Confidence: 0.7,
		Parameters: params.Params{"scholarship": params.List("DOST", "CHED")},
	}

	f.router(Options{Rephrase: true}).Answer(context.Background(), query("any DOST scholarship?"))

	if f.srch.domain != route.Scholarships {
		t.Fatalf("expected scholarships dispatch, got %q", f.srch.domain)
	}
	if f.srch.params.Text("scholarship_name") != "DOST" {
		t.Errorf("expected remapped scholarship_name, got %v", f.srch.params)
	}
}

func TestAnswerIn_DomainScoped(t *testing.T) {
	f := newFixture()
	f.cls.result = &chat.Classification{Intent: "office.info", Action: "get_office_info", Confidence: 0.9}
	r := f.router(Options{Rephrase: true})

	ans := r.AnswerIn(context.Background(), route.Offices, query("registrar?"))
	if f.srch.calls != 1 || ans.Domain != string(route.Offices) {
		t.Errorf("expected offices dispatch, got %+v", ans)
	}

	ans = r.AnswerIn(context.Background(), route.Courses, query("registrar?"))
	if ans.Source != chat.SourceGenerativeMain || f.srch.calls != 1 {
		t.Errorf("foreign action must not dispatch in another domain: %+v", ans)
	}
}

func TestAnswer_SearchRephrased(t *testing.T) {
	f := newFixture()
	f.cls.result = &chat.Classification{Action: "get_office_hours", Confidence: 0.9,
		Parameters: params.Params{"office": params.String("Registrar")}}

	ans := f.router(Options{Rephrase: true}).Answer(context.Background(), query("when is the registrar open?"))

	if ans.Source != chat.GenerativeSource("single-line") || ans.Style != "single-line" {
		t.Errorf("unexpected source/style %s/%s", ans.Source, ans.Style)
	}
	if ans.KeyLabel != "key-0" || !strings.Contains(ans.Text, "8AM-5PM") {
		t.Errorf("unexpected answer %+v", ans)
	}
	if f.srch.params.Text("office_name") != "Registrar" || !f.srch.params.Has("office_hours") {
		t.Errorf("expected remapped and implied params, got %v", f.srch.params)
	}
}

func TestAnswer_RephraseFailureKeepsSearchText(t *testing.T) {
	f := newFixture()
	f.cls.result = &chat.Classification{Action: "get_office_info", Confidence: 0.9}
	f.reph.err = &domain.ExhaustedError{Attempts: 2}

	ans := f.router(Options{Rephrase: true}).Answer(context.Background(), query("registrar?"))

	if ans.Source != chat.SourceDatabaseSearch || ans.Text != "The Registrar is open 8AM-5PM." {
		t.Errorf("unexpected answer %+v", ans)
	}
}

func TestAnswer_RephraseDisabled(t *testing.T) {
	f := newFixture()
	f.cls.result = &chat.Classification{Action: "get_office_info", Confidence: 0.9}

	ans := f.router(Options{Rephrase: false}).Answer(context.Background(), query("registrar?"))

	if ans.Source != chat.SourceDatabaseDirect || len(f.reph.prompts) != 0 {
		t.Errorf("unexpected answer %+v", ans)
	}
}

func TestAnswer_GenerativeExhausted(t *testing.T) {
	f := newFixture()
	f.reph.err = &domain.ExhaustedError{Attempts: 3, Last: errors.New("quota")}

	ans := f.router(Options{Rephrase: true}).Answer(context.Background(), query("???"))

	if ans.Source != chat.SourceErrorGenerative || ans.Text == "" {
		t.Errorf("unexpected answer %+v", ans)
	}
}

func TestAnswer_PanicRecovered(t *testing.T) {
	f := newFixture()
	f.cls.panics = true

	ans := f.router(Options{Rephrase: true}).Answer(context.Background(), query("boom"))

	if ans.Source != chat.SourceErrorFatal || !strings.Contains(ans.Text, "technical difficulties") {
		t.Errorf("unexpected answer %+v", ans)
	}
	if len(f.rec.records) != 1 || f.rec.records[0].Source != chat.SourceErrorFatal {
		t.Errorf("panicked query must still be recorded once: %+v", f.rec.records)
	}
}

func TestAnswer_BookkeepingOnceAndNonBlocking(t *testing.T) {
	f := newFixture()
	f.cls.result = &chat.Classification{Action: "get_office_info", Confidence: 0.9}
	f.rec.err = errors.New("redis down")

	ans := f.router(Options{Rephrase: true}).Answer(context.Background(), query("registrar?"))

	if ans.Text == "" || ans.Source.IsError() {
		t.Errorf("bookkeeping failure must not change the answer: %+v", ans)
	}
	if len(f.rec.records) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(f.rec.records))
	}
	rec := f.rec.records[0]
	if rec.ID != ans.QueryID || rec.SessionID != "s-1" || rec.Answer != ans.Text || rec.Source != ans.Source {
		t.Errorf("record does not match answer: %+v vs %+v", rec, ans)
	}
	if ans.QueryID == "" {
		t.Error("expected a query id")
	}
}

func TestAnswer_HistoryWindow(t *testing.T) {
	f := newFixture()
	q := query("x")
	for i := range 10 {
		q.History = append(q.History, chat.Turn{Question: string(rune('a' + i))})
	}

	f.router(Options{HistoryWindow: 6}).Answer(context.Background(), q)

	if len(f.cls.history) != 6 || f.cls.history[0].Question != "e" {
		t.Errorf("expected last 6 turns, got %v", f.cls.history)
	}
}

func TestAnswer_NilRecorder(t *testing.T) {
	f := newFixture()
	r := New(f.cls, f.srch, f.reph, nil, Options{}, zap.NewNop())

	if ans := r.Answer(context.Background(), query("x")); ans.Text == "" {
		t.Error("expected an answer without a recorder")
	}
}

// --- Over the real search service ---

type programTable struct {
	rows []entity.Program
	err  error
}

func (p *programTable) FindMany(_ context.Context, expr filter.Expression, _ string) ([]entity.Program, error) {
	if p.err != nil {
		return nil, p.err
	}
	var out []entity.Program
	for _, r := range p.rows {
		cols := map[string]string{"program_name": r.Name, "program_code": r.Code, "department": r.Department}
		if expr.Matches(func(f string) string { return cols[f] }) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (p *programTable) FindFirst(ctx context.Context, expr filter.Expression, sort string) (entity.Program, error) {
	rows, err := p.FindMany(ctx, expr, sort)
	if err != nil {
		return entity.Program{}, err
	}
	if len(rows) == 0 {
		return entity.Program{}, domain.ErrNotFound
	}
	return rows[0], nil
}

func programRouter(table *programTable, reph Rephraser, cls *mockClassifier) *Router {
	svc := search.New(search.Finders{Programs: table}, zap.NewNop())
	return New(cls, svc, reph, nil, Options{Rephrase: true}, zap.NewNop())
}

func TestAnswer_TuitionFromProgramSearch(t *testing.T) {
	fee := 15000.0
	table := &programTable{rows: []entity.Program{
		{Name: "BSIT", Department: "College of Computing", TuitionFee: &fee},
	}}
	cls := &mockClassifier{result: &chat.Classification{
		Action:     "get_program_info",
		Confidence: 0.8,
		Parameters: params.Params{"program_name": params.String("BSIT")},
	}}

	for _, reph := range []*mockRephraser{{}, {err: &domain.ExhaustedError{Attempts: 1}}} {
		ans := programRouter(table, reph, cls).Answer(context.Background(), query("What is the tuition fee for BSIT?"))

		if !strings.Contains(ans.Text, "₱15,000") || !strings.Contains(ans.Text, "BSIT") {
			t.Errorf("answer missing fee or program: %q", ans.Text)
		}
		src := string(ans.Source)
		if !strings.HasPrefix(src, "database-search") && !strings.HasPrefix(src, "generative-") {
			t.Errorf("unexpected source %s", src)
		}
	}
}

func TestAnswer_StoreOutageApology(t *testing.T) {
	table := &programTable{err: errors.New("connection refused")}
	cls := &mockClassifier{result: &chat.Classification{
		Action:     "get_program_info",
		Confidence: 0.8,
		Parameters: params.Params{"program_name": params.String("BSIT")},
	}}
	reph := &mockRephraser{}

	ans := programRouter(table, reph, cls).Answer(context.Background(), query("What is the tuition fee for BSIT?"))

	if ans.Source != chat.SourceErrorHandler {
		t.Errorf("source = %s", ans.Source)
	}
	if !strings.HasPrefix(ans.Text, "Sorry, I couldn't look up program information") {
		t.Errorf("expected program apology, got %q", ans.Text)
	}
	if len(reph.prompts) != 0 {
		t.Error("apology must not be rephrased")
	}
}
