//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/docsnip"
	"github.com/fwojciec/docsnip/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)
	defer renderer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = renderer.Render(ctx, srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderer_Render_WaitsForHydratedCodeBlocks(t *testing.T) {
	t.Parallel()

	// The code block is injected after a delay, as a client-side app would.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>SPA</title></head>
<body>
<div id="root">Loading...</div>
<script>
setTimeout(function () {
  document.getElementById('root').innerHTML =
    '<h2>Hello</h2><p>Say hi.</p><pre><code class="language-js">hi()</code></pre>';
}, 300);
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)
	defer renderer.Close()

	doc, err := renderer.Render(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, srv.URL, doc.URL)
	assert.Contains(t, doc.HTML, `<code class="language-js">hi()</code>`)
	assert.NotContains(t, doc.HTML, "Loading...")
}

func TestRenderer_Render_FallsBackWhenNoCodeBlockAppears(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><main><p>No code here.</p></main></body></html>`))
	}))
	defer srv.Close()

	renderer, err := rod.NewRenderer(rod.WithReadySelector("pre code", 200*time.Millisecond))
	require.NoError(t, err)
	defer renderer.Close()

	doc, err := renderer.Render(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, doc.HTML, "No code here.")
}

func TestRenderer_Render_TimeoutReturnsETIMEOUT(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer srv.Close()

	renderer, err := rod.NewRenderer(rod.WithTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	defer renderer.Close()

	_, err = renderer.Render(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, docsnip.ETIMEOUT, docsnip.ErrorCode(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRenderer_Close_Idempotent(t *testing.T) {
	t.Parallel()

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)

	require.NoError(t, renderer.Close())
	require.NoError(t, renderer.Close())
}

func TestRenderer_Render_AfterClose_ReturnsError(t *testing.T) {
	t.Parallel()

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)
	require.NoError(t, renderer.Close())

	_, err = renderer.Render(context.Background(), "http://example.com")

	require.Error(t, err)
	assert.Equal(t, docsnip.EINVALID, docsnip.ErrorCode(err))
	assert.Contains(t, docsnip.ErrorMessage(err), "closed")
}
