// Package caveat builds the post-install message shown to the user.
package caveat

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/lizardbyte/shinebrew/formula"
	"github.com/lizardbyte/shinebrew/pkgs/platform"
)

// Block is one paragraph group of the message.
type Block struct {
	// Name is "getting-started" or the platform the block is for.
	Name string
	Text string
}

// Report returns the formula's generic block followed by the block for p, if
// the formula declares one. ${prefix} in the text is replaced by prefix.
func Report(f *formula.Formula, p platform.Platform, prefix string) []Block {
	expand := func(s string) string {
		return os.Expand(s, func(key string) string {
			if key == "prefix" {
				return prefix
			}
			return "${" + key + "}"
		})
	}

	var blocks []Block
	if f.Caveats != "" {
		blocks = append(blocks, Block{Name: "getting-started", Text: expand(f.Caveats)})
	}
	if text := f.PlatformCaveats[p.OS]; text != "" {
		blocks = append(blocks, Block{Name: string(p.OS), Text: expand(text)})
	}
	return blocks
}

// Render joins blocks with a blank line between them.
func Render(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, strings.TrimRight(b.Text, "\n"))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// Print writes a headed, rendered message to w. Nothing is written for an
// empty report.
func Print(w io.Writer, blocks []Block) error {
	text := Render(blocks)
	if text == "" {
		return nil
	}
	if _, err := fmt.Fprintln(w, color.New(color.FgBlue, color.Bold).Sprint("==> Caveats")); err != nil {
		return err
	}
	_, err := io.WriteString(w, text)
	return err
}
