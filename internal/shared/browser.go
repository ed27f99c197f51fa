package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// goos is swappable so platform dispatch stays testable.
var goos = func() string { return runtime.GOOS }

// OpenBrowser hands url to the desktop's default browser. The viewer's buy
// action uses it to open the store page for the playing preview.
//
// The launcher is started, not waited on; the browser outlives the TUI.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch plat := goos(); plat {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform: %s", plat)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
