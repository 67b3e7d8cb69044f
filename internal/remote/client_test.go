package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/fyrsmithlabs/projectdeck/internal/project"
	"github.com/fyrsmithlabs/projectdeck/internal/telemetry"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New("ftp://example.com")
	assert.Error(t, err)

	_, err = New("::not a url")
	assert.Error(t, err)

	c, err := New("http://localhost:5000/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", c.BaseURL())
}

func TestClient_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/projects", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(HeaderRequestID))
		_, _ = io.WriteString(w, `{"success":true,"projects":[
			{"id":1,"name":"Todo","command":"build a todo app","status":"Completed","github_url":"https://github.com/x/todo","created_at":"2024-01-15T14:30:00"},
			{"id":"abc","name":"Chat","command":"chat","status":"Generating","created_at":"2024-01-16T09:00:00"}
		]}`)
	})

	list, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, project.ID("1"), list[0].ID)
	assert.Equal(t, project.StatusCompleted, list[0].Status)
	assert.Equal(t, "https://github.com/x/todo", list[0].GithubURL)
	assert.Equal(t, project.ID("abc"), list[1].ID)
	assert.Empty(t, list[1].GithubURL)
}

func TestClient_ListMissingProjectsIsEmpty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	list, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestClient_ListUnsuccessful(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":false,"error":"db down"}`)
	})

	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsuccessful)

	var serr *ServerError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "list", serr.Op)
	assert.Equal(t, "db down", serr.Message)
}

func TestClient_EnvelopeHonoredOnErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	assert.NoError(t, c.Create(context.Background(), "x"))
}

func TestClient_UndecodableBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>oops</html>`)
	})

	err := c.Create(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsuccessful)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	c, err := New(srv.URL)
	require.NoError(t, err)
	srv.Close()

	_, err = c.List(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsuccessful)
}

func TestClient_CreateSendsCommand(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/projects/create", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body CommandRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "make a blog", body.Command)
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	require.NoError(t, c.Create(context.Background(), "make a blog"))
}

func TestClient_EditEscapesID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/projects/a%2Fb/edit", r.URL.EscapedPath())

		var body CommandRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "add dark mode", body.Command)
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	require.NoError(t, c.Edit(context.Background(), "a/b", "add dark mode"))
}

func TestClient_Delete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/projects/7/delete", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":false}`)
	})

	err := c.Delete(context.Background(), "7")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsuccessful)
	assert.Equal(t, "delete: remote reported failure", err.Error())
}

func TestClient_EmptyIDRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	assert.ErrorIs(t, c.Edit(context.Background(), "", "x"), project.ErrEmptyProjectID)
	assert.ErrorIs(t, c.Delete(context.Background(), ""), project.ErrEmptyProjectID)
}

func TestClient_RateLimitHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true}`)
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithRateLimit(0.001, 1))
	require.NoError(t, err)

	require.NoError(t, c.Create(context.Background(), "first"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = c.Create(ctx, "second")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_PropagatesTraceContext(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	tel := telemetry.NewTestTelemetry()
	ctx, span := tel.Tracer("test").Start(context.Background(), "caller")
	defer span.End()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("traceparent"))
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	require.NoError(t, c.Create(ctx, "x"))
}
