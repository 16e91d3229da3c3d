package githubclt

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	clt, err := New("token", srv.URL)
	require.NoError(t, err)

	return clt
}

func TestPullRequestCommitMessagesPagination(t *testing.T) {
	var authHeaders []string

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/octocat/hello/pulls/7/commits", func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"sha": "c", "commit": {"message": "Pre-Alpha"}}]`)
			return
		}

		w.Header().Set("Link", fmt.Sprintf(`<http://%s%s?page=2>; rel="next"`, r.Host, r.URL.Path))
		fmt.Fprint(w, `[{"sha": "a", "commit": {"message": "fix: a"}}, {"sha": "b", "commit": {"message": "FEAT: B"}}]`)
	})

	clt := newTestClient(t, mux)

	msgs, err := clt.PullRequestCommitMessages(context.Background(), "octocat", "hello", 7)
	require.NoError(t, err)

	assert.Equal(t, []string{"fix: a", "feat: b", "pre-alpha"}, msgs)
	require.Len(t, authHeaders, 2)
	assert.Equal(t, "Bearer token", authHeaders[0])
}

func TestPullRequestCommitMessagesNotFound(t *testing.T) {
	clt := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	}))

	_, err := clt.PullRequestCommitMessages(context.Background(), "octocat", "hello", 7)
	assert.ErrorContains(t, err, "not found")
}

func TestNewWithoutAPIURL(t *testing.T) {
	clt, err := New("", "")
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/", clt.restClt.BaseURL.String())
}

func TestNewWithPublicAPIURL(t *testing.T) {
	clt, err := New("", "https://api.github.com")
	require.NoError(t, err)
	assert.Equal(t, "https://api.github.com/", clt.restClt.BaseURL.String())
}
