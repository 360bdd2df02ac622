package docsnip

import "context"

// RenderedDocument is a fully hydrated page snapshot.
type RenderedDocument struct {
	URL  string
	HTML string
}

// Renderer produces post-hydration HTML for a URL.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Renderer interface {
	// Render navigates to the URL, waits until the content is ready or a
	// bounded fallback wait elapses, and returns the rendered HTML.
	// Returns ETIMEOUT when the render exceeds its deadline and ERENDER
	// for any other rendering failure.
	Render(ctx context.Context, url string) (*RenderedDocument, error)

	// Close releases renderer resources.
	// Must be called when the Renderer is no longer needed.
	Close() error
}
