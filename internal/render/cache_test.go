package render

import (
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestMarkdown_CachesPerOptions(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := DefaultOptions().WithMode(ModeFull).WithWidth(60)
	if _, err := Markdown("# Titolo\n\ncorpo", opts); err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	if _, err := Markdown("altro", opts); err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	if got := CacheSize(); got != 1 {
		t.Errorf("CacheSize() = %d, want 1", got)
	}

	if _, err := Markdown("altro", opts.WithWidth(40)); err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	if got := CacheSize(); got != 2 {
		t.Errorf("CacheSize() = %d, want 2", got)
	}
}

func TestMarkdown_CacheIsBounded(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := DefaultOptions().WithMode(ModeFull)
	for width := 20; width < 20+maxRenderers*2; width++ {
		if _, err := Markdown("riga", opts.WithWidth(width)); err != nil {
			t.Fatalf("Markdown(width %d) error = %v", width, err)
		}
		if got := CacheSize(); got > maxRenderers {
			t.Fatalf("CacheSize() = %d after width %d, want at most %d", got, width, maxRenderers)
		}
	}
}

func TestMarkdown_ConcurrentRenders(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := DefaultOptions().WithMode(ModeFull).WithWidth(50)
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Markdown("**avviso** per la classe", opts); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Markdown() error = %v", err)
	}
	if got := CacheSize(); got != 1 {
		t.Errorf("CacheSize() = %d, want 1", got)
	}
}

func TestContent_Modes(t *testing.T) {
	lite := Content("**a** and *b*", lipgloss.NewStyle(), DefaultOptions())
	if strings.Contains(lite, "*") {
		t.Errorf("lite output should not contain markers: %q", lite)
	}

	full := Content("**a** and *b*", lipgloss.NewStyle(), DefaultOptions().WithMode(ModeFull))
	if !strings.Contains(full, "a") || !strings.Contains(full, "b") {
		t.Errorf("full output lost text: %q", full)
	}
	if strings.HasSuffix(full, "\n") {
		t.Error("full output should be trimmed")
	}
}

func TestIsValidMode(t *testing.T) {
	for mode, want := range map[string]bool{"lite": true, "full": true, "FULL": true, "html": false, "": false} {
		if got := IsValidMode(mode); got != want {
			t.Errorf("IsValidMode(%q) = %v, want %v", mode, got, want)
		}
	}
}
