// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jeranaias/clara-tui/internal/config"
	"github.com/jeranaias/clara-tui/internal/conversation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// HELPERS
// =============================================================================

// isolate points the config dir at a temp dir and resets global state.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("CLARA_HOME", home)
	t.Setenv("CLARA_URL", "")
	t.Setenv("CLARA_IDENTITY_BACKEND", "")
	t.Setenv("CLARA_LOG_LEVEL", "")
	t.Setenv("NO_COLOR", "1")
	config.ResetGlobalForTesting()
	t.Cleanup(config.ResetGlobalForTesting)
	return home
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

// responder answers POST /chat with reply and records the last request.
type fakeResponder struct {
	*httptest.Server
	calls    atomic.Int32
	lastText atomic.Value
	lastUser atomic.Value
}

func newFakeResponder(t *testing.T, status int, reply string) *fakeResponder {
	t.Helper()
	f := &fakeResponder{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Mensagem string `json:"mensagem"`
			UserID   string `json:"user_id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.calls.Add(1)
		f.lastText.Store(body.Mensagem)
		f.lastUser.Store(body.UserID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status >= 200 && status < 300 {
			_ = json.NewEncoder(w).Encode(map[string]string{"response": reply})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"error": reply})
	}))
	t.Cleanup(f.Close)
	return f
}

// =============================================================================
// VERSION / CONFIG
// =============================================================================

func TestVersionCommand(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "clara "+Version)
	assert.Contains(t, out, "Commit:")
}

func TestConfigPathUsesClaraHome(t *testing.T) {
	home := isolate(t)

	out, _, err := execute(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.toml"), strings.TrimSpace(out))
}

func TestConfigInitRefusesToOverwrite(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "config.toml")

	_, _, err := execute(t, "", "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, _, err = execute(t, "", "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "", "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigShowReflectsURLFlag(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "--url", "http://example.test:9000/", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `base_url = "http://example.test:9000"`)
}

func TestMissingConfigFileFails(t *testing.T) {
	home := isolate(t)

	_, _, err := execute(t, "", "--config", filepath.Join(home, "nope.toml"), "version")
	require.Error(t, err)
}

func TestConfigFileIsApplied(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\nassistant_name = \"Dra. Ana\"\n"), 0600))

	out, _, err := execute(t, "", "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `assistant_name = "Dra. Ana"`)
}

// =============================================================================
// ASK
// =============================================================================

func TestAskPrintsReply(t *testing.T) {
	isolate(t)
	t.Setenv("CLARA_IDENTITY_BACKEND", "memory")
	srv := newFakeResponder(t, http.StatusOK, "Olá! Como posso ajudar?")

	out, _, err := execute(t, "", "--url", srv.URL, "ask", "  oi", "doutora  ")
	require.NoError(t, err)
	assert.Equal(t, "Olá! Como posso ajudar?\n", out)
	assert.Equal(t, int32(1), srv.calls.Load())
	assert.Equal(t, "oi doutora", srv.lastText.Load())
	assert.NotEmpty(t, srv.lastUser.Load())
}

func TestAskReadsStdin(t *testing.T) {
	isolate(t)
	t.Setenv("CLARA_IDENTITY_BACKEND", "memory")
	srv := newFakeResponder(t, http.StatusOK, "ok")

	out, _, err := execute(t, "tudo bem?\n", "--url", srv.URL, "ask")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
	assert.Equal(t, "tudo bem?", srv.lastText.Load())
}

func TestAskWithoutTextSendsNothing(t *testing.T) {
	isolate(t)
	srv := newFakeResponder(t, http.StatusOK, "ok")

	_, _, err := execute(t, "   \n", "--url", srv.URL, "ask")
	require.ErrorIs(t, err, ErrNoQuestion)
	assert.Zero(t, srv.calls.Load())
}

func TestAskReportsRejectedRequest(t *testing.T) {
	isolate(t)
	t.Setenv("CLARA_IDENTITY_BACKEND", "memory")
	srv := newFakeResponder(t, http.StatusInternalServerError, "modelo indisponível")

	out, _, err := execute(t, "", "--url", srv.URL, "ask", "oi")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, conversation.FailurePrefix), "got %q", out)
	assert.Contains(t, out, "500")
}

// =============================================================================
// WHOAMI
// =============================================================================

func TestWhoamiIsStableAcrossRuns(t *testing.T) {
	isolate(t)

	first, _, err := execute(t, "", "whoami", "-q")
	require.NoError(t, err)
	second, _, err := execute(t, "", "whoami", "-q")
	require.NoError(t, err)

	id := strings.TrimSpace(first)
	assert.True(t, strings.HasPrefix(id, "user-"), "got %q", id)
	assert.Equal(t, id, strings.TrimSpace(second))
}

func TestWhoamiMatchesSentUserID(t *testing.T) {
	isolate(t)
	srv := newFakeResponder(t, http.StatusOK, "ok")

	out, _, err := execute(t, "", "whoami", "-q")
	require.NoError(t, err)
	_, _, err = execute(t, "", "--url", srv.URL, "ask", "oi")
	require.NoError(t, err)

	assert.Equal(t, strings.TrimSpace(out), srv.lastUser.Load())
}

// =============================================================================
// LINE MODE
// =============================================================================

func TestRootFallsBackToLineMode(t *testing.T) {
	isolate(t)
	t.Setenv("CLARA_IDENTITY_BACKEND", "memory")
	srv := newFakeResponder(t, http.StatusOK, "Oi! Tudo bem por aqui.")

	out, _, err := execute(t, "olá\n\n/quit\nnão enviado\n", "--url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Conversa com Clara")
	assert.Contains(t, out, "Clara>")
	assert.Contains(t, out, "Oi! Tudo bem por aqui.")
	assert.Equal(t, int32(1), srv.calls.Load())
}

func TestChatClearCommand(t *testing.T) {
	isolate(t)
	t.Setenv("CLARA_IDENTITY_BACKEND", "memory")
	srv := newFakeResponder(t, http.StatusOK, "ok")

	out, _, err := execute(t, "/clear\n", "--url", srv.URL, "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "conversa limpa")
	assert.Zero(t, srv.calls.Load())
}

func TestChatShowsFailureAndContinues(t *testing.T) {
	isolate(t)
	t.Setenv("CLARA_IDENTITY_BACKEND", "memory")
	srv := newFakeResponder(t, http.StatusBadRequest, "Mensagem vazia")

	out, _, err := execute(t, "um\ndois\n", "--url", srv.URL, "chat")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, conversation.FailurePrefix))
	assert.Equal(t, int32(2), srv.calls.Load())
}
