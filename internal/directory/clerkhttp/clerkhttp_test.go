package clerkhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emotter/emotter/internal/directory"
)

func TestClient_GetAuthors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		assert.Equal(t, "/v1/users", r.URL.Path)
		assert.Equal(t, []string{"alice", "bob"}, r.URL.Query()["user_id"])
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		w.Write([]byte(`[
			{"id":"alice","username":"alice","profile_image_url":"a.png"},
			{"id":"bob","username":"bob","profile_image_url":"b.png"}
		]`)) // nolint
	}))
	defer srv.Close()

	c := New(srv.URL, "token", time.Second)

	aa, err := c.GetAuthors(context.Background(), []string{"alice", "bob"})
	require.NoError(t, err)
	require.Len(t, aa, 2)
	assert.Equal(t, "alice", aa[0].ID)
	assert.Equal(t, "alice", aa[0].Username)
	assert.Equal(t, "a.png", aa[0].ProfileImageURL)
	assert.Equal(t, "bob", aa[1].ID)
}

func TestClient_GetAuthors_missingUsername(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"alice","profile_image_url":"a.png"}]`)) // nolint
	}))
	defer srv.Close()

	c := New(srv.URL, "token", time.Second)

	_, err := c.GetAuthors(context.Background(), []string{"alice"})
	require.True(t, errors.Is(err, directory.ErrMissingUsername))
}

func TestClient_GetAuthors_tooManyIDs(t *testing.T) {
	// no request must be made
	c := New("http://directory.invalid", "token", time.Second)

	ids := make([]string, directory.MaxBatchIDs+1)
	for i := range ids {
		ids[i] = fmt.Sprint(i)
	}

	_, err := c.GetAuthors(context.Background(), ids)
	require.True(t, errors.Is(err, directory.ErrTooManyIDs))
}

func TestClient_GetAuthors_badStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "token", time.Second)

	_, err := c.GetAuthors(context.Background(), []string{"alice"})
	require.Error(t, err)
}
