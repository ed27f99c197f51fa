package shared

import (
	"strings"
	"testing"
)

func TestOpenBrowser(t *testing.T) {
	orig := goos
	t.Cleanup(func() { goos = orig })

	t.Run("unsupported platform", func(t *testing.T) {
		goos = func() string { return "plan9" }

		err := OpenBrowser("https://example.bandcamp.com/track/minus")
		if err == nil {
			t.Fatal("expected error for unsupported platform")
		}

		if !strings.Contains(err.Error(), "plan9") {
			t.Errorf("expected platform name in error, got %q", err.Error())
		}
	})
}
