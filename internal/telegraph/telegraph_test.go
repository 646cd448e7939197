package telegraph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>How We Launched — Telegraph</title></head>
<body>
<article>
<h1>How We Launched</h1>
<p>First paragraph.</p>
<p>Second <strong>bold</strong> paragraph.</p>
</article>
</body>
</html>`

func TestFetchExtractsArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	page, err := NewClient(zap.NewNop()).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "How We Launched", page.Title)
	assert.Contains(t, page.ContentHTML, "<p>First paragraph.</p>")
	assert.Contains(t, page.ContentHTML, "<strong>bold</strong>")
	assert.NotContains(t, page.ContentHTML, "<h1>", "title must not be duplicated in the body")
}

func TestFetchNoArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>not an article page</p></body></html>"))
	}))
	defer srv.Close()

	_, err := NewClient(zap.NewNop()).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNoArticle)
}

func TestFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(zap.NewNop()).Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}
