package sefazwatch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jpalmerr/sefazwatch/internal/store"
)

// sentMessage is one notification received by recordingNotifier.
type sentMessage struct {
	title, body, group string
}

type recordingNotifier struct {
	sent    []sentMessage
	err     error
	enabled *bool
}

func (r *recordingNotifier) Send(_ context.Context, title, body, group string) error {
	r.sent = append(r.sent, sentMessage{title, body, group})
	return r.err
}

func (r *recordingNotifier) Enabled() bool {
	if r.enabled == nil {
		return true
	}
	return *r.enabled
}

type recordedChange struct {
	runID     string
	ev        ChangeEvent
	delivered bool
}

type fakeRecorder struct {
	changes []recordedChange
	err     error
}

func (f *fakeRecorder) RecordChange(_ context.Context, runID string, ev ChangeEvent, delivered bool, _ time.Time) error {
	f.changes = append(f.changes, recordedChange{runID, ev, delivered})
	return f.err
}

type fakeMetrics struct {
	calls  int
	report *Report
	state  State
	err    error
}

func (f *fakeMetrics) Publish(report *Report, state State, err error) error {
	f.calls++
	f.report = report
	f.state = state
	f.err = err
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// pageServer serves the given HTML.
func pageServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

// page renders a status table with a header row and one row per
// [name, details] pair.
func page(pairs ...[2]string) string {
	var b strings.Builder
	b.WriteString(`<html><body><table class="tabelaResultado"><tr><th>#</th><th>Autorizador</th><th>Serviço</th><th>Situação</th><th>Contingência</th></tr>`)
	for i, p := range pairs {
		b.WriteString(`<tr><td>`)
		b.WriteString(string(rune('1' + i)))
		b.WriteString(`</td><td>` + p[0] + `</td><td>NF-e</td><td>Normal</td><td>` + p[1] + `</td></tr>`)
	}
	b.WriteString(`</table></body></html>`)
	return b.String()
}

func newTestChecker(t *testing.T, url string, opts ...Option) *Checker {
	t.Helper()
	opts = append([]Option{WithLogger(discardLogger())}, opts...)
	c, err := New(url, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestNew_Valid(t *testing.T) {
	c, err := New("https://www.nfe.fazenda.gov.br/portal/disponibilidade.aspx")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	if c.URL() != "https://www.nfe.fazenda.gov.br/portal/disponibilidade.aspx" {
		t.Errorf("URL() = %q", c.URL())
	}
	if c.timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", c.timeout)
	}
	if c.tableClass != DefaultTableClass {
		t.Errorf("tableClass = %q, want %q", c.tableClass, DefaultTableClass)
	}
	if fs, ok := c.store.(*store.FileStore); !ok || fs.Path() != DefaultStateFile {
		t.Errorf("store = %#v, want file store at %s", c.store, DefaultStateFile)
	}
}

func TestNew_InvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"no scheme", "www.example.com/status"},
		{"ftp", "ftp://example.com"},
		{"no host", "http://"},
		{"unparseable", "http://[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.url); err == nil {
				t.Errorf("New(%q) expected error, got nil", tt.url)
			}
		})
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		want string
	}{
		{"nil store", WithStore(nil), "store cannot be nil"},
		{"nil notifier", WithNotifier(nil), "notifier cannot be nil"},
		{"nil logger", WithLogger(nil), "logger cannot be nil"},
		{"empty table class", WithTableClass(" "), "table class cannot be empty"},
		{"zero timeout", WithTimeout(0), "timeout must be positive"},
		{"odd headers", WithHeaders("Accept"), "even number of arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("https://example.com", tt.opt)
			if err == nil {
				t.Fatal("New() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("New() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestNew_NilCallbackIgnored(t *testing.T) {
	c, err := New("https://example.com", WithChangeCallback(nil))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(c.changeCallbacks) != 0 {
		t.Errorf("changeCallbacks = %d, want 0", len(c.changeCallbacks))
	}
}

func TestCheck_FirstRunNotifiesEveryRegion(t *testing.T) {
	server := pageServer(t, page(
		[2]string{"SP - São Paulo", "Ativada em 01/01"},
		[2]string{"RS - Rio Grande do Sul", "Desativada"},
	))
	st := store.NewMemoryStore(nil)
	n := &recordingNotifier{}

	c := newTestChecker(t, server.URL, WithStore(st), WithNotifier(n), WithGroup("@here"))

	report, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if report.Rows != 2 || len(report.Changes) != 2 || report.Delivered != 2 {
		t.Errorf("report = %+v, want 2 rows, 2 changes, 2 delivered", report)
	}
	if report.RunID == "" {
		t.Error("RunID is empty")
	}

	if len(n.sent) != 2 {
		t.Fatalf("sent = %d, want 2", len(n.sent))
	}
	want := sentMessage{"CONTINGÊNCIA ATIVADA PARA SP - São Paulo", "Ativada em 01/01", "@here"}
	if n.sent[0] != want {
		t.Errorf("sent[0] = %+v, want %+v", n.sent[0], want)
	}
	if n.sent[1].title != "CONTINGÊNCIA DESATIVADA PARA RS - Rio Grande do Sul" {
		t.Errorf("sent[1].title = %q", n.sent[1].title)
	}

	saved, _ := st.Load()
	wantSP := RegionRecord{Active: true, Details: "Ativada em 01/01", Notified: true}
	if saved["SP"] != wantSP {
		t.Errorf("saved[SP] = %+v, want %+v", saved["SP"], wantSP)
	}
	if !saved["RS"].Notified || saved["RS"].Active {
		t.Errorf("saved[RS] = %+v, want inactive and notified", saved["RS"])
	}
}

func TestCheck_SecondRunIsQuiet(t *testing.T) {
	server := pageServer(t, page([2]string{"SP - São Paulo", "Ativada em 01/01"}))
	st := store.NewMemoryStore(nil)
	n := &recordingNotifier{}

	c := newTestChecker(t, server.URL, WithStore(st), WithNotifier(n))

	if _, err := c.Check(context.Background()); err != nil {
		t.Fatalf("first Check() error = %v", err)
	}
	report, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("second Check() error = %v", err)
	}

	if len(report.Changes) != 0 {
		t.Errorf("second run Changes = %+v, want none", report.Changes)
	}
	if len(n.sent) != 1 {
		t.Errorf("sent = %d, want 1 across both runs", len(n.sent))
	}
}

func TestCheck_DeactivationShowsPreviousDetails(t *testing.T) {
	server := pageServer(t, page([2]string{"SP - São Paulo", "Desativada em 02/01"}))
	st := store.NewMemoryStore(State{"SP": {Active: true, Details: "Ativada em 01/01", Notified: true}})
	n := &recordingNotifier{}

	c := newTestChecker(t, server.URL, WithStore(st), WithNotifier(n))

	report, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(report.Changes) != 1 {
		t.Fatalf("Changes = %d, want 1", len(report.Changes))
	}

	ev := report.Changes[0]
	if ev.Active || ev.PreviousDetails != "Ativada em 01/01" {
		t.Errorf("event = %+v", ev)
	}
	want := sentMessage{"CONTINGÊNCIA DESATIVADA PARA SP - São Paulo", "Ativada em 01/01", ""}
	if len(n.sent) != 1 || n.sent[0] != want {
		t.Errorf("sent = %+v, want [%+v]", n.sent, want)
	}
}

func TestCheck_NoTable(t *testing.T) {
	server := pageServer(t, `<html><body><p>Em manutenção</p></body></html>`)
	initial := State{"SP": {Active: true, Details: "Ativada", Notified: true}}
	st := store.NewMemoryStore(initial)
	n := &recordingNotifier{}

	c := newTestChecker(t, server.URL, WithStore(st), WithNotifier(n))

	report, err := c.Check(context.Background())
	if !errors.Is(err, ErrNoTableData) {
		t.Fatalf("Check() error = %v, want ErrNoTableData", err)
	}
	if !IsHandled(err) {
		t.Error("IsHandled() = false for ErrNoTableData")
	}
	if report == nil || len(report.Changes) != 0 {
		t.Errorf("report = %+v, want no changes", report)
	}
	if st.Saves() != 0 {
		t.Errorf("Saves() = %d, want 0", st.Saves())
	}
	if len(n.sent) != 0 {
		t.Errorf("sent = %d, want 0", len(n.sent))
	}
}

func TestCheck_FetchFailures(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			st := store.NewMemoryStore(nil)
			c := newTestChecker(t, server.URL, WithStore(st))

			_, err := c.Check(context.Background())
			if !errors.Is(err, ErrFetch) {
				t.Fatalf("Check() error = %v, want ErrFetch", err)
			}
			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("Check() error type = %T, want *FetchError", err)
			}
			if fetchErr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", fetchErr.StatusCode, tt.wantStatus)
			}
			if st.Saves() != 0 {
				t.Errorf("Saves() = %d, want 0", st.Saves())
			}
		})
	}
}

func TestCheck_FetchTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	st := store.NewMemoryStore(nil)
	c := newTestChecker(t, server.URL, WithStore(st), WithTimeout(50*time.Millisecond))

	_, err := c.Check(context.Background())
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("Check() error = %v, want ErrFetch", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Check() error = %v, want context.DeadlineExceeded in chain", err)
	}
	if st.Saves() != 0 {
		t.Errorf("Saves() = %d, want 0", st.Saves())
	}
}

func TestCheck_MalformedRowIsSkipped(t *testing.T) {
	html := `<table class="tabelaResultado">` +
		`<tr><th>h</th></tr>` +
		`<tr><td>1</td><td>SP - São Paulo</td><td>a</td><td>b</td><td>Ativada</td></tr>` +
		`<tr><td>2</td><td>RJ</td><td>x</td></tr>` +
		`<tr><td>3</td><td>MG - Minas Gerais</td><td>a</td><td>b</td><td>Desativada</td></tr>` +
		`</table>`
	server := pageServer(t, html)

	var logBuf bytes.Buffer
	st := store.NewMemoryStore(nil)
	c, err := New(server.URL,
		WithStore(st),
		WithNotifier(&recordingNotifier{}),
		WithLogger(slog.New(slog.NewTextHandler(&logBuf, nil))),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer c.Close()

	report, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if report.Rows != 3 || report.Skipped != 1 || len(report.Changes) != 2 {
		t.Errorf("report = rows:%d skipped:%d changes:%d, want 3/1/2", report.Rows, report.Skipped, len(report.Changes))
	}
	if !strings.Contains(logBuf.String(), "skipping malformed row") {
		t.Errorf("expected warning for malformed row, got:\n%s", logBuf.String())
	}

	saved, _ := st.Load()
	if _, ok := saved["RJ"]; ok {
		t.Error("malformed row stored")
	}
	if len(saved) != 2 {
		t.Errorf("saved = %+v, want SP and MG", saved)
	}
}

func TestCheck_LoadFailure(t *testing.T) {
	server := pageServer(t, page([2]string{"SP - São Paulo", "Ativada"}))
	n := &recordingNotifier{}

	c := newTestChecker(t, server.URL, WithStore(failingLoadStore{}), WithNotifier(n))

	_, err := c.Check(context.Background())
	if !errors.Is(err, ErrLoadState) {
		t.Fatalf("Check() error = %v, want ErrLoadState", err)
	}
	if len(n.sent) != 0 {
		t.Errorf("sent = %d, want 0", len(n.sent))
	}
}

type failingLoadStore struct{}

func (failingLoadStore) Load() (State, error) { return nil, errors.New("permission denied") }
func (failingLoadStore) Save(State) error     { return nil }

// TestCheck_PersistFailureSendsNothing verifies that when the new state
// cannot be saved, no notification goes out: the same changes will be
// detected again by the next run.
func TestCheck_PersistFailureSendsNothing(t *testing.T) {
	server := pageServer(t, page([2]string{"SP - São Paulo", "Ativada"}))
	st := store.NewMemoryStore(nil)
	diskFull := errors.New("disk full")
	st.FailSaves(diskFull)
	n := &recordingNotifier{}

	c := newTestChecker(t, server.URL, WithStore(st), WithNotifier(n))

	_, err := c.Check(context.Background())
	if !errors.Is(err, ErrPersist) {
		t.Fatalf("Check() error = %v, want ErrPersist", err)
	}
	if !errors.Is(err, diskFull) {
		t.Errorf("Check() error = %v, want cause in chain", err)
	}
	if len(n.sent) != 0 {
		t.Errorf("sent = %d, want 0", len(n.sent))
	}

	st.FailSaves(nil)
	if _, err := c.Check(context.Background()); err != nil {
		t.Fatalf("Check() after recovery error = %v", err)
	}
	if len(n.sent) != 1 {
		t.Errorf("sent after recovery = %d, want 1", len(n.sent))
	}
}

func TestCheck_NotificationFailureLeavesPending(t *testing.T) {
	server := pageServer(t, page(
		[2]string{"SP - São Paulo", "Ativada"},
		[2]string{"RS - Rio Grande do Sul", "Ativada"},
	))
	st := store.NewMemoryStore(nil)
	n := &recordingNotifier{err: errors.New("webhook down")}

	c := newTestChecker(t, server.URL, WithStore(st), WithNotifier(n))

	report, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v, want nil (notification failures are contained)", err)
	}

	// a failure on the first event must not stop the second
	if len(n.sent) != 2 {
		t.Errorf("sent = %d, want 2", len(n.sent))
	}
	if report.Failed != 2 || report.Delivered != 0 {
		t.Errorf("report failed:%d delivered:%d, want 2/0", report.Failed, report.Delivered)
	}

	saved, _ := st.Load()
	if saved["SP"].Notified || saved["RS"].Notified {
		t.Errorf("saved = %+v, want Notified false", saved)
	}
	if !saved["SP"].Active {
		t.Error("state not persisted despite notification failure")
	}
}

func TestCheck_DisabledNotifierLeavesPending(t *testing.T) {
	server := pageServer(t, page([2]string{"SP - São Paulo", "Ativada"}))
	st := store.NewMemoryStore(nil)
	disabled := false
	n := &recordingNotifier{enabled: &disabled}

	c := newTestChecker(t, server.URL, WithStore(st), WithNotifier(n))

	report, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if report.Delivered != 0 {
		t.Errorf("Delivered = %d, want 0", report.Delivered)
	}
	saved, _ := st.Load()
	if saved["SP"].Notified {
		t.Error("Notified = true with no enabled channel")
	}
}

func TestCheck_DefaultNotifierDeliversNothing(t *testing.T) {
	server := pageServer(t, page([2]string{"SP - São Paulo", "Ativada"}))
	st := store.NewMemoryStore(nil)

	c := newTestChecker(t, server.URL, WithStore(st))

	report, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(report.Changes) != 1 || report.Delivered != 0 || report.Failed != 0 {
		t.Errorf("report = %+v, want 1 change, nothing delivered or failed", report)
	}
}

func TestCheck_ReplayPending(t *testing.T) {
	server := pageServer(t, page(
		[2]string{"SP - São Paulo", "Ativada em 01/01"},
		[2]string{"RS - Rio Grande do Sul", "Desativada"},
		[2]string{"BA - Bahia", "Ativada"},
	))
	st := store.NewMemoryStore(State{
		"SP": {Active: true, Details: "Ativada em 01/01", Notified: false},
		"AC": {Active: true, Details: "Ativada", Notified: false},
		"RS": {Active: false, Details: "Desativada", Notified: true},
	})
	n := &recordingNotifier{}

	c := newTestChecker(t, server.URL, WithStore(st), WithNotifier(n), WithReplayPending(true))

	report, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	// BA is new; AC and SP are pending replays in code order
	if len(report.Changes) != 3 {
		t.Fatalf("Changes = %+v, want 3", report.Changes)
	}
	if report.Changes[0].Region != "BA" || report.Changes[0].Replay {
		t.Errorf("Changes[0] = %+v, want new BA", report.Changes[0])
	}
	if report.Changes[1].Region != "AC" || !report.Changes[1].Replay {
		t.Errorf("Changes[1] = %+v, want AC replay", report.Changes[1])
	}
	if report.Changes[2].Region != "SP" || !report.Changes[2].Replay {
		t.Errorf("Changes[2] = %+v, want SP replay", report.Changes[2])
	}
	if report.Changes[2].RegionName != "SP - São Paulo" {
		t.Errorf("replay RegionName = %q, want name from page", report.Changes[2].RegionName)
	}
	if report.Changes[1].RegionName != "AC" {
		t.Errorf("replay RegionName = %q, want code for region missing from page", report.Changes[1].RegionName)
	}

	saved, _ := st.Load()
	for code, rec := range saved {
		if !rec.Notified {
			t.Errorf("saved[%s].Notified = false after replay", code)
		}
	}
}

func TestCheck_NoReplayByDefault(t *testing.T) {
	server := pageServer(t, page([2]string{"SP - São Paulo", "Ativada"}))
	st := store.NewMemoryStore(State{"SP": {Active: true, Details: "Ativada", Notified: false}})
	n := &recordingNotifier{}

	c := newTestChecker(t, server.URL, WithStore(st), WithNotifier(n))

	if _, err := c.Check(context.Background()); err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if len(n.sent) != 0 {
		t.Errorf("sent = %+v, want nothing", n.sent)
	}
}

func TestCheck_RecorderAndMetrics(t *testing.T) {
	server := pageServer(t, page([2]string{"SP - São Paulo", "Ativada"}))
	rec := &fakeRecorder{err: errors.New("database locked")}
	m := &fakeMetrics{}

	c := newTestChecker(t, server.URL,
		WithStore(store.NewMemoryStore(nil)),
		WithNotifier(&recordingNotifier{}),
		WithRecorder(rec),
		WithMetrics(m),
	)

	report, err := c.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v, want nil (recorder errors are logged)", err)
	}

	if len(rec.changes) != 1 {
		t.Fatalf("recorded = %d, want 1", len(rec.changes))
	}
	if rec.changes[0].runID != report.RunID || !rec.changes[0].delivered {
		t.Errorf("recorded = %+v, want run %s delivered", rec.changes[0], report.RunID)
	}

	if m.calls != 1 || m.report != report || m.err != nil {
		t.Errorf("metrics calls:%d err:%v, want 1 call with the report", m.calls, m.err)
	}
	if !m.state["SP"].Active {
		t.Errorf("metrics state = %+v, want SP active", m.state)
	}
}

func TestCheck_MetricsOnFailure(t *testing.T) {
	server := pageServer(t, `<p>nada</p>`)
	m := &fakeMetrics{}

	c := newTestChecker(t, server.URL, WithStore(store.NewMemoryStore(nil)), WithMetrics(m))

	_, err := c.Check(context.Background())
	if m.calls != 1 || !errors.Is(m.err, ErrNoTableData) || err == nil {
		t.Errorf("metrics calls:%d err:%v, want 1 call with ErrNoTableData", m.calls, m.err)
	}
}

func TestCheck_ChangeCallback(t *testing.T) {
	server := pageServer(t, page(
		[2]string{"SP - São Paulo", "Ativada"},
		[2]string{"RJ - Rio de Janeiro", "Ativada"},
	))

	var calls atomic.Int32
	var got []string
	c := newTestChecker(t, server.URL,
		WithStore(store.NewMemoryStore(nil)),
		WithChangeCallback(func(ev ChangeEvent) {
			calls.Add(1)
			if ev.Region == "SP" {
				panic("callback bug")
			}
		}),
		WithChangeCallback(func(ev ChangeEvent) {
			got = append(got, ev.Region)
		}),
	)

	if _, err := c.Check(context.Background()); err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	if calls.Load() != 2 {
		t.Errorf("first callback calls = %d, want 2", calls.Load())
	}
	if len(got) != 2 || got[0] != "SP" || got[1] != "RJ" {
		t.Errorf("second callback saw %v, want [SP RJ] despite panic", got)
	}
}

func TestCheck_SendsHeadersAndUserAgent(t *testing.T) {
	var (
		mu             sync.Mutex
		gotUA, gotLang string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		mu.Unlock()
		_, _ = w.Write([]byte(page([2]string{"SP - São Paulo", "Ativada"})))
	}))
	defer server.Close()

	c := newTestChecker(t, server.URL,
		WithStore(store.NewMemoryStore(nil)),
		WithUserAgent("sefazwatch/test"),
		WithHeaders("Accept-Language", "pt-BR"),
	)
	if _, err := c.Check(context.Background()); err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if gotUA != "sefazwatch/test" {
		t.Errorf("User-Agent = %q, want sefazwatch/test", gotUA)
	}
	if gotLang != "pt-BR" {
		t.Errorf("Accept-Language = %q, want pt-BR", gotLang)
	}
}
