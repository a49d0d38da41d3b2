package placeholder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leg100/postie/internal/post"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientOptions{BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func newFixtureClient(t *testing.T) *Client {
	t.Helper()

	f, err := LoadFixture("./testdata/fixture.yaml")
	require.NoError(t, err)
	return newTestClient(t, NewFixtureHandler(f))
}

func TestClient_ListPosts(t *testing.T) {
	client := newFixtureClient(t)

	got, err := client.ListPosts(context.Background())
	require.NoError(t, err)

	assert.Len(t, got, 3)
	assert.Equal(t, post.Post{ID: 1, UserID: 1, Title: "123", Body: "Some body"}, got[0])
}

func TestClient_ListPostsByUser(t *testing.T) {
	client := newFixtureClient(t)

	got, err := client.ListPostsByUser(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
}

func TestClient_GetUser(t *testing.T) {
	client := newFixtureClient(t)

	got, err := client.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Leanne Graham", got.Name)
	assert.Equal(t, "Bret", got.Username)

	_, err = client.GetUser(context.Background(), 99)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestClient_UpdatePost(t *testing.T) {
	client := newFixtureClient(t)

	got, err := client.UpdatePost(context.Background(), post.Patch{ID: 2, Title: "new title"})
	require.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "est rerum tempore vitae", got.Body)

	// update is visible to subsequent reads
	posts, err := client.ListPostsByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "new title", posts[1].Title)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		// check the error returned by the client
		check func(t *testing.T, err error)
	}{
		{
			"non-success status",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			func(t *testing.T, err error) {
				var statusErr *StatusError
				require.True(t, errors.As(err, &statusErr))
				assert.Equal(t, 500, statusErr.Code)
				assert.Equal(t, "HTTP error 500", err.Error())
			},
		},
		{
			"malformed body",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{"id": 1,`))
			},
			func(t *testing.T, err error) {
				var parseErr *ParseError
				assert.True(t, errors.As(err, &parseErr))
			},
		},
		{
			"not a collection",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"id": 1}`))
			},
			func(t *testing.T, err error) {
				var parseErr *ParseError
				assert.True(t, errors.As(err, &parseErr))
			},
		},
		{
			"null body",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`null`))
			},
			func(t *testing.T, err error) {
				var parseErr *ParseError
				require.True(t, errors.As(err, &parseErr))
				assert.ErrorContains(t, err, "response is not a collection")
			},
		},
		{
			"record without id",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{"foo": "bar"}]`))
			},
			func(t *testing.T, err error) {
				var parseErr *ParseError
				require.True(t, errors.As(err, &parseErr))
				assert.ErrorContains(t, err, "post without id")
			},
		},
		{
			"oversized body",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write(bytes.Repeat([]byte(" "), maxBodySize+1))
			},
			func(t *testing.T, err error) {
				var parseErr *ParseError
				require.True(t, errors.As(err, &parseErr))
				assert.ErrorContains(t, err, "response exceeds 10485760 bytes")
			},
		},
		{
			"empty collection",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[]`))
			},
			func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			"duplicate ids",
			func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{"id": 1}, {"id": 1}]`))
			},
			func(t *testing.T, err error) {
				var parseErr *ParseError
				require.True(t, errors.As(err, &parseErr))
				assert.ErrorContains(t, err, "duplicate post id: 1")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.ListPosts(context.Background())
			tt.check(t, err)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client, err := NewClient(ClientOptions{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.ListPosts(context.Background())
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.MethodGet, transportErr.Method)
}

func TestClient_Canceled(t *testing.T) {
	block := make(chan struct{})
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.ListPosts(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_RateLimit(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode([]post.Post{})
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientOptions{BaseURL: srv.URL, RateLimit: 1})
	require.NoError(t, err)

	_, err = client.ListPosts(context.Background())
	require.NoError(t, err)

	// the token bucket is now empty, and waiting for the next token exceeds
	// the deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = client.ListPosts(ctx)
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, 1, requests)
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := NewClient(ClientOptions{BaseURL: "ftp://example.com"})
	assert.Error(t, err)
}
