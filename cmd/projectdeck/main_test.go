package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRemote answers the project service endpoints from memory.
type stubRemote struct {
	mu       sync.Mutex
	projects []map[string]any
	fail     string // when set, mutations answer success:false with this message
	calls    []string
}

func (s *stubRemote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, r.Method+" "+r.URL.Path)

	reply := func(v map[string]any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/projects":
		reply(map[string]any{"success": true, "projects": s.projects})
	case s.fail != "":
		reply(map[string]any{"success": false, "error": s.fail})
	case r.Method == http.MethodPost && r.URL.Path == "/api/projects/create":
		var body struct{ Command string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.projects = append(s.projects, map[string]any{
			"id": len(s.projects) + 1, "name": "new", "command": body.Command,
			"status": "Generating", "created_at": "2024-03-05T14:07:00",
		})
		reply(map[string]any{"success": true})
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/edit"):
		reply(map[string]any{"success": true})
	case r.Method == http.MethodDelete:
		s.projects = nil
		reply(map[string]any{"success": true})
	default:
		http.NotFound(w, r)
	}
}

func (s *stubRemote) called(call string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == call {
			n++
		}
	}
	return n
}

func setupCLI(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: error\n"), 0o600))
	return cfgPath
}

func runCLI(t *testing.T, cfgPath, server, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", cfgPath, "--server", server}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func serve(t *testing.T, remote *stubRemote) (string, string) {
	t.Helper()
	cfgPath := setupCLI(t)
	ts := httptest.NewServer(remote)
	t.Cleanup(ts.Close)
	return cfgPath, ts.URL
}

func completed(id int, name string) map[string]any {
	return map[string]any{
		"id": id, "name": name, "command": "build " + name, "status": "Completed",
		"created_at": "2024-03-05T14:07:00", "github_url": "https://example.com/" + name,
	}
}

func TestList_Empty(t *testing.T) {
	cfgPath, url := serve(t, &stubRemote{})

	out, _, err := runCLI(t, cfgPath, url, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 0  Completed: 0  Failed: 0")
	assert.Contains(t, out, "No projects yet.")
}

func TestList_Table(t *testing.T) {
	remote := &stubRemote{projects: []map[string]any{
		completed(1, "alpha"),
		{"id": "b-2", "name": "beta", "command": "x", "status": "Failed", "created_at": "2024-03-05T14:07:00"},
	}}
	cfgPath, url := serve(t, remote)

	out, _, err := runCLI(t, cfgPath, url, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Total: 2  Completed: 1  Failed: 1")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")
	assert.Contains(t, out, "https://example.com/alpha")
	assert.Less(t, strings.Index(out, "alpha"), strings.Index(out, "beta"))
}

func TestList_JSON(t *testing.T) {
	cfgPath, url := serve(t, &stubRemote{projects: []map[string]any{completed(7, "gamma")}})

	out, _, err := runCLI(t, cfgPath, url, "", "list", "--json")
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "gamma", decoded[0]["name"])
}

func TestList_TransportFailure(t *testing.T) {
	cfgPath := setupCLI(t)

	_, errOut, err := runCLI(t, cfgPath, "http://127.0.0.1:1", "", "list")
	require.Error(t, err)
	assert.Contains(t, errOut, "✗ Failed to load projects")
}

func TestCreate(t *testing.T) {
	remote := &stubRemote{}
	cfgPath, url := serve(t, remote)

	out, errOut, err := runCLI(t, cfgPath, url, "", "create", "build", "a", "todo", "app")
	require.NoError(t, err)
	assert.Contains(t, errOut, "✓ Project created successfully")
	assert.Contains(t, out, "build a todo app")
	assert.Equal(t, 1, remote.called("POST /api/projects/create"))
	assert.Equal(t, 1, remote.called("GET /api/projects"))
}

func TestCreate_Blank(t *testing.T) {
	remote := &stubRemote{}
	cfgPath, url := serve(t, remote)

	_, _, err := runCLI(t, cfgPath, url, "", "create", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command must not be empty")
	assert.Zero(t, remote.called("POST /api/projects/create"))
}

func TestCreate_ServerMessage(t *testing.T) {
	cfgPath, url := serve(t, &stubRemote{fail: "quota exceeded"})

	_, errOut, err := runCLI(t, cfgPath, url, "", "create", "anything")
	require.Error(t, err)
	assert.Contains(t, errOut, "✗ quota exceeded")
}

func TestEdit(t *testing.T) {
	remote := &stubRemote{projects: []map[string]any{completed(3, "delta")}}
	cfgPath, url := serve(t, remote)

	_, errOut, err := runCLI(t, cfgPath, url, "", "edit", "3", "add", "dark", "mode")
	require.NoError(t, err)
	assert.Contains(t, errOut, "✓ Project updated successfully")
	assert.Equal(t, 1, remote.called("POST /api/projects/3/edit"))
}

func TestEdit_NotEditable(t *testing.T) {
	remote := &stubRemote{projects: []map[string]any{
		{"id": 4, "name": "busy", "command": "x", "status": "Generating", "created_at": "2024-03-05T14:07:00"},
	}}
	cfgPath, url := serve(t, remote)

	_, _, err := runCLI(t, cfgPath, url, "", "edit", "4", "change")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only Completed projects can be edited")
	assert.Zero(t, remote.called("POST /api/projects/4/edit"))
}

func TestEdit_UnknownProject(t *testing.T) {
	cfgPath, url := serve(t, &stubRemote{})

	_, _, err := runCLI(t, cfgPath, url, "", "edit", "99", "change")
	require.Error(t, err)
}

func TestDelete_Declined(t *testing.T) {
	remote := &stubRemote{projects: []map[string]any{completed(5, "eps")}}
	cfgPath, url := serve(t, remote)

	_, errOut, err := runCLI(t, cfgPath, url, "n\n", "delete", "5")
	require.NoError(t, err)
	assert.Contains(t, errOut, "Are you sure you want to delete this project? [y/N]: ")
	assert.Contains(t, errOut, "Cancelled.")
	assert.Zero(t, remote.called("DELETE /api/projects/5/delete"))
}

func TestDelete_Confirmed(t *testing.T) {
	remote := &stubRemote{projects: []map[string]any{completed(5, "eps")}}
	cfgPath, url := serve(t, remote)

	out, errOut, err := runCLI(t, cfgPath, url, "y\n", "delete", "5")
	require.NoError(t, err)
	assert.Contains(t, errOut, "✓ Project deleted successfully")
	assert.Contains(t, out, "No projects yet.")
	assert.Equal(t, 1, remote.called("DELETE /api/projects/5/delete"))
}

func TestDelete_Yes(t *testing.T) {
	remote := &stubRemote{}
	cfgPath, url := serve(t, remote)

	_, errOut, err := runCLI(t, cfgPath, url, "", "delete", "--yes", "5")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "[y/N]")
	assert.Equal(t, 1, remote.called("DELETE /api/projects/5/delete"))
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Version:    dev")
}
