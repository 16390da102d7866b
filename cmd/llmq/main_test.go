package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/llmq-dev/llmq/pkg/ai"
)

func TestPrintStream_TrailingNewlineOnStop(t *testing.T) {
	events := make(chan ai.Event, 3)
	events <- ai.Event{Text: "Hel"}
	events <- ai.Event{Text: "lo"}
	events <- ai.Event{Text: "!", FinishReason: ai.FinishReasonStop}
	close(events)

	var buf bytes.Buffer
	printStream(&buf, events)

	if buf.String() != "Hello!\n" {
		t.Errorf("output = %q, want %q", buf.String(), "Hello!\n")
	}
}

func TestPrintStream_NoNewlineWithoutStop(t *testing.T) {
	events := make(chan ai.Event, 2)
	events <- ai.Event{Text: "par"}
	events <- ai.Event{Text: "tial"}
	close(events)

	var buf bytes.Buffer
	printStream(&buf, events)

	if buf.String() != "partial" {
		t.Errorf("output = %q, want %q", buf.String(), "partial")
	}
}

func TestPrintStream_EmptyFragments(t *testing.T) {
	events := make(chan ai.Event, 2)
	events <- ai.Event{Text: ""}
	events <- ai.Event{Text: "", FinishReason: ai.FinishReasonStop}
	close(events)

	var buf bytes.Buffer
	printStream(&buf, events)

	if buf.String() != "\n" {
		t.Errorf("output = %q, want just the trailing newline", buf.String())
	}
}

func TestResolve_Precedence(t *testing.T) {
	if got := resolve("flag", "cfg", "def"); got != "flag" {
		t.Errorf("flag wins: got %q", got)
	}
	if got := resolve("", "cfg", "def"); got != "cfg" {
		t.Errorf("config wins over default: got %q", got)
	}
	if got := resolve("", "", "def"); got != "def" {
		t.Errorf("default: got %q", got)
	}
}

func TestRoot_RequiresPrompt(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs(nil)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	if err := cmd.Execute(); err == nil {
		t.Error("expected error when no prompt is given")
	}
}

// TestRoot_EndToEnd runs the command against a stub server and checks that
// positional args are joined into one prompt and the stream reaches stdout.
func TestRoot_EndToEnd(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // ignore any real user config

	var gotPrompt, gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		gotPrompt = body.Prompt
		gotModel = body.Model
		io.WriteString(w, `data: {"choices":[{"text":"Hello!","finish_reason":"stop"}]}`+"\n")
	}))
	defer srv.Close()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--host", srv.URL, "--model", "test-model", "say", "hello", "world"})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v (stderr: %s)", err, errOut.String())
	}
	if gotPrompt != "say hello world" {
		t.Errorf("prompt = %q, want args joined with spaces", gotPrompt)
	}
	if gotModel != "test-model" {
		t.Errorf("model = %q", gotModel)
	}
	if out.String() != "Hello!\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "Hello!\n")
	}
}

func TestRoot_Non200ExitsWithError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "model not found")
	}))
	defer srv.Close()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--host", srv.URL, "hi"})
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if out.Len() != 0 {
		t.Errorf("no fragments should reach stdout on non-200, got %q", out.String())
	}
}
