// Package term holds small output helpers for the uki CLI and the styled
// diagnostic renderer.
package term

import (
	"fmt"
	"io"
	"strings"
)

// Wprintf writes formatted text to w and ignores (n, err).
func Wprintf(w io.Writer, format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }

// Wprintln is the Println form of Wprintf.
func Wprintln(w io.Writer, a ...any) { _, _ = fmt.Fprintln(w, a...) }

// Bprintf writes formatted text into a strings.Builder.
func Bprintf(b *strings.Builder, format string, a ...any) { _, _ = fmt.Fprintf(b, format, a...) }

// Plural returns "1 error" or "N errors".
func Plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
