// Package clipboard copies exported palettes, preferring wl-copy and falling
// back to the terminal's OSC52 escape sequence.
package clipboard

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/muesli/termenv"
)

type Method string

const (
	WlCopy Method = "wl-copy"
	OSC52  Method = "osc52"
)

type Clipboard struct {
	timeout time.Duration
	output  *termenv.Output
}

// DefaultTimeout bounds a wl-copy call when New is given no timeout
const DefaultTimeout = 3 * time.Second

// New returns a clipboard writing OSC52 sequences to output (stdout when nil)
func New(timeout time.Duration, output *termenv.Output) *Clipboard {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if output == nil {
		output = termenv.NewOutput(os.Stdout)
	}
	return &Clipboard{timeout: timeout, output: output}
}

// Copy places text on the clipboard and reports which method succeeded
func (c *Clipboard) Copy(ctx context.Context, text string) (Method, error) {
	if wlCopyAvailable() {
		err := setClipboard(ctx, text, c.timeout)
		if err == nil {
			return WlCopy, nil
		}
		log.Printf("Clipboard: %v, falling back to OSC52", err)
	}

	if c.output == nil {
		return "", fmt.Errorf("no clipboard available")
	}
	c.output.Copy(text)
	return OSC52, nil
}

func wlCopyAvailable() bool {
	if os.Getenv("WAYLAND_DISPLAY") == "" {
		return false
	}
	_, err := exec.LookPath("wl-copy")
	return err == nil
}

func setClipboard(ctx context.Context, text string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "wl-copy")
	cmd.Stdin = strings.NewReader(text)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wl-copy failed: %w", err)
	}

	return nil
}
