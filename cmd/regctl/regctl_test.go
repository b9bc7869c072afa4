package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type fakeBackend struct {
	mu       sync.Mutex
	listings int
	posts    map[string][]string
	listing  string
	fail     bool
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		http.Error(w, "db locked", http.StatusInternalServerError)
		return
	}
	switch r.URL.Path {
	case "/list-participants":
		f.listings++
		_, _ = w.Write([]byte(f.listing))
	case "/read-startlista":
		body, _ := io.ReadAll(r.Body)
		f.record(r.URL.Path, string(body))
		_, _ = w.Write([]byte(`[]`))
	default:
		body, _ := io.ReadAll(r.Body)
		f.record(r.URL.Path, string(body))
		_, _ = w.Write([]byte("ok " + string(body)))
	}
}

func (f *fakeBackend) record(path, body string) {
	if f.posts == nil {
		f.posts = make(map[string][]string)
	}
	f.posts[path] = append(f.posts[path], body)
}

type harness struct {
	backend   *fakeBackend
	url       string
	statePath string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fb := &fakeBackend{listing: `{"10km":[{"BibNumber":1,"FirstName":"A","LastName":"B","Birthdate":"2000-01-01","Club":"X"}],"5km":[]}`}
	server := httptest.NewServer(fb)
	t.Cleanup(server.Close)
	return &harness{backend: fb, url: server.URL, statePath: filepath.Join(t.TempDir(), "fields.json")}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{"--backend", h.url, "--state", h.statePath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParticipantsPrintsReport(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "participants")
	if err != nil {
		t.Fatalf("participants: %v", err)
	}
	want := strings.Join([]string{
		"== 10km ==",
		"Alla deltagare i klassen.",
		"Startnr\tFörnamn\tEfternamn\tFödd\tFörening/Ort",
		"1\tA\tB\t2000-01-01\tX",
		"",
		"== 5km ==",
		"Alla deltagare i klassen.",
		"Startnr\tFörnamn\tEfternamn\tFödd\tFörening/Ort",
		"",
	}, "\n")
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestParticipantsHTML(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "participants", "--html")
	if err != nil {
		t.Fatalf("participants: %v", err)
	}
	if !strings.HasPrefix(out, "<div") || strings.Count(out, "<table") != 2 {
		t.Fatalf("unexpected markup %s", out)
	}
}

func TestParticipantsFailure(t *testing.T) {
	h := newHarness(t)
	h.backend.fail = true
	out, err := h.run(t, "participants")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported error, got %v", err)
	}
	if strings.TrimSpace(out) != "Error listing participants: 500 Internal Server Error: db locked" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestWatchPersistsFlagAndPosts(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "watch", "--file-path", "/tmp/x")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if strings.TrimSpace(out) != `ok {"filePath":"/tmp/x"}` {
		t.Fatalf("unexpected output %q", out)
	}

	// The saved value is reused without the flag.
	if _, err := h.run(t, "watch"); err != nil {
		t.Fatalf("second watch: %v", err)
	}
	posts := h.backend.posts["/start-watch"]
	if len(posts) != 2 || posts[1] != `{"filePath":"/tmp/x"}` {
		t.Fatalf("unexpected posts %v", posts)
	}
}

func TestStartListUsesSavedFields(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run(t, "state", "set", "eventName", "Vårruset"); err != nil {
		t.Fatalf("state set: %v", err)
	}
	out, err := h.run(t, "startlist", "--participants-sheet", "Anmälda")
	if err != nil {
		t.Fatalf("startlist: %v", err)
	}
	if strings.TrimSpace(out) != "Startlista importerad" {
		t.Fatalf("unexpected output %q", out)
	}
	want := `{"primaryEventName":"Vårruset","participantsSheetName":"Anmälda"}`
	if got := h.backend.posts["/read-startlista"]; len(got) != 1 || got[0] != want {
		t.Fatalf("unexpected posts %v", got)
	}
}

func TestSheetsFailureIsReported(t *testing.T) {
	h := newHarness(t)
	h.backend.fail = true
	out, err := h.run(t, "sheets", "--sheet-id", "abc")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported error, got %v", err)
	}
	if !strings.HasPrefix(out, "Error submitting Google Sheets info: ") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestOpenRefreshesWhenParticipantsTabSaved(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run(t, "open"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if h.backend.listings != 0 {
		t.Fatalf("expected no fetch on the config tab")
	}

	if _, err := h.run(t, "state", "tab", "participants"); err != nil {
		t.Fatalf("state tab: %v", err)
	}
	out, err := h.run(t, "open")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if h.backend.listings != 1 {
		t.Fatalf("expected exactly one fetch, got %d", h.backend.listings)
	}
	if !strings.Contains(out, "tab=participants") || !strings.Contains(out, "== 10km ==") {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestStateCommandsNeverFetch(t *testing.T) {
	h := newHarness(t)
	for _, args := range [][]string{
		{"state", "tab", "participants"},
		{"state", "show"},
		{"state", "set", "sheetID", "abc"},
	} {
		if _, err := h.run(t, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}
	if h.backend.listings != 0 {
		t.Fatalf("expected no listing fetch from state commands, got %d", h.backend.listings)
	}
}

func TestStateResetAndShow(t *testing.T) {
	h := newHarness(t)
	for _, args := range [][]string{
		{"state", "set", "sheetID", "abc"},
		{"state", "tab", "participants"},
		{"state", "reset"},
	} {
		if _, err := h.run(t, args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}
	out, err := h.run(t, "state", "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	want := "tab=config\nparticipantsSheetName=\neventName=\nsheetID=\nsheetName=\nfilePath=\n"
	if out != want {
		t.Fatalf("unexpected state:\n%s", out)
	}
}

func TestStateSetRejectsUnknownField(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run(t, "state", "set", "colour", "red"); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}
