package remote

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokturk078/cektakip/internal/common"
	"github.com/gokturk078/cektakip/internal/logging"
)

func newTestGitHubStore(t *testing.T, token string, handler http.Handler) *GitHubStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g := NewGitHubStore(GitHubOptions{
		Owner:    "owner",
		Repo:     "repo",
		Branch:   "main",
		FilePath: "data/checks.json",
		Token:    token,
	}, logging.Nop{})
	g.apiBase = srv.URL
	g.rawBase = srv.URL
	return g
}

func TestGitHubFetch_ContentsAPI(t *testing.T) {
	content := []byte(`{"checks":[]}`)

	g := newTestGitHubStore(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/owner/repo/contents/data/checks.json", r.URL.Path)
		assert.Equal(t, "token tok", r.Header.Get("Authorization"))

		// the API wraps base64 content with embedded newlines
		encoded := base64.StdEncoding.EncodeToString(content)
		payload := map[string]string{"sha": "sha-1", "content": encoded[:8] + "\n" + encoded[8:]}
		_ = json.NewEncoder(w).Encode(payload)
	}))

	doc, err := g.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, content, doc.Content)
	assert.Equal(t, "sha-1", doc.Token)
}

func TestGitHubFetch_RawFallbackWithoutToken(t *testing.T) {
	g := newTestGitHubStore(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// the raw path carries no credentials
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "/owner/repo/main/data/checks.json", r.URL.Path)
		_, _ = w.Write([]byte(`{"checks":[]}`))
	}))

	doc, err := g.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"checks":[]}`), doc.Content)
	// the raw path yields no version token
	assert.Empty(t, doc.Token)
}

func TestGitHubFetch_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, common.ErrNoCredential},
		{http.StatusForbidden, common.ErrNoCredential},
		{http.StatusConflict, common.ErrVersionConflict},
		{http.StatusInternalServerError, common.ErrRemote},
	}

	for _, tt := range tests {
		g := newTestGitHubStore(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message":"nope"}`, tt.status)
		}))

		_, err := g.Fetch(context.Background())
		assert.ErrorIs(t, err, tt.want, "status %d", tt.status)
	}
}

func TestGitHubPut(t *testing.T) {
	g := newTestGitHubStore(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)

		var req struct {
			Message string `json:"message"`
			Content string `json:"content"`
			Branch  string `json:"branch"`
			SHA     string `json:"sha"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "sha-1", req.SHA)
		assert.Equal(t, "main", req.Branch)
		assert.NotEmpty(t, req.Message)

		decoded, err := base64.StdEncoding.DecodeString(req.Content)
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"checks":[]}`), decoded)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"content":{"sha":"sha-2"}}`))
	}))

	newToken, err := g.Put(context.Background(), []byte(`{"checks":[]}`), "sha-1")
	require.NoError(t, err)
	assert.Equal(t, "sha-2", newToken)
}

func TestGitHubPut_ConflictOnStaleToken(t *testing.T) {
	g := newTestGitHubStore(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"does not match"}`, http.StatusConflict)
	}))

	_, err := g.Put(context.Background(), []byte(`{}`), "stale")
	assert.ErrorIs(t, err, common.ErrVersionConflict)
}

func TestGitHubPut_RequiresCredential(t *testing.T) {
	g := newTestGitHubStore(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := g.Put(context.Background(), []byte(`{}`), "")
	assert.ErrorIs(t, err, common.ErrNoCredential)
}
