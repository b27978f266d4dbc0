package render

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
)

// maxRenderers bounds the cache; a display that keeps being resized would
// otherwise hold one renderer per width it ever had.
const maxRenderers = 8

// cachedRenderer serializes Render calls on one glamour renderer,
// which is not safe for concurrent use.
type cachedRenderer struct {
	mu sync.Mutex
	tr *glamour.TermRenderer
}

func (c *cachedRenderer) render(content string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tr.Render(content)
}

// rendererCache keeps one renderer per style, width and newline mode
type rendererCache struct {
	mu        sync.Mutex
	renderers map[string]*cachedRenderer
}

var renderers = &rendererCache{renderers: make(map[string]*cachedRenderer)}

func cacheKey(opts Options) string {
	return fmt.Sprintf("%s:%d:%t", opts.Style, opts.Width, opts.PreserveNewLines)
}

// lookup returns the renderer for opts, building it on first use
func (c *rendererCache) lookup(opts Options) (*cachedRenderer, error) {
	key := cacheKey(opts)

	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.renderers[key]; ok {
		return r, nil
	}

	tr, err := newTermRenderer(opts)
	if err != nil {
		return nil, err
	}
	if len(c.renderers) >= maxRenderers {
		c.renderers = make(map[string]*cachedRenderer)
	}
	r := &cachedRenderer{tr: tr}
	c.renderers[key] = r
	return r, nil
}

func newTermRenderer(opts Options) (*glamour.TermRenderer, error) {
	style := opts.Style
	if style == "" {
		style = "dark"
	}

	rendererOpts := []glamour.TermRendererOption{
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(opts.Width),
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(rendererOpts...)
}

// ClearCache drops every cached renderer
func ClearCache() {
	renderers.mu.Lock()
	renderers.renderers = make(map[string]*cachedRenderer)
	renderers.mu.Unlock()
}

// CacheSize returns the number of cached renderers
func CacheSize() int {
	renderers.mu.Lock()
	defer renderers.mu.Unlock()
	return len(renderers.renderers)
}
