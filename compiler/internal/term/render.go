package term

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/utkrisht/uki/compiler/internal/diag"
)

// Color modes accepted by NewRenderer.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")
	colorCyan  = lipgloss.Color("#06B6D4")
	colorAmber = lipgloss.Color("#F59E0B")
)

// Renderer prints diagnostics with a source snippet, styled with lipgloss.
// It implements diag.Printer so it can mirror a diag.List as entries arrive.
type Renderer struct {
	mu      sync.Mutex
	w       io.Writer
	plain   bool
	file    string
	src     string
	context int

	header  lipgloss.Style
	locator lipgloss.Style
	gutter  lipgloss.Style
	marker  lipgloss.Style
	help    lipgloss.Style
}

// NewRenderer writes to w. color is one of auto, always or never; auto
// follows the terminal behind w.
func NewRenderer(w io.Writer, color string) *Renderer {
	lr := lipgloss.NewRenderer(w)
	switch color {
	case ColorAlways:
		lr.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{
		w:       w,
		plain:   lr.ColorProfile() == termenv.Ascii,
		context: 1,
		header:  lr.NewStyle().Foreground(colorError).Bold(true),
		locator: lr.NewStyle().Foreground(colorCyan),
		gutter:  lr.NewStyle().Foreground(colorMuted),
		marker:  lr.NewStyle().Foreground(colorError).Bold(true),
		help:    lr.NewStyle().Foreground(colorAmber),
	}
}

// SetSource sets the file shown by Print. context is the number of lines
// around the offending one.
func (r *Renderer) SetSource(file, src string, context int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.file, r.src, r.context = file, src, context
}

// Print writes d against the current source.
func (r *Renderer) Print(d diag.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = io.WriteString(r.w, r.render(d, r.file, r.src, r.context))
}

// Render formats d like diag.Render, adding colour unless the renderer is plain.
func (r *Renderer) Render(d diag.Diagnostic, file, src string, context int) string {
	return r.render(d, file, src, context)
}

func (r *Renderer) render(d diag.Diagnostic, file, src string, context int) string {
	if r.plain {
		return diag.Render(d, file, src, context)
	}
	var b strings.Builder
	b.WriteString(r.header.Render(diag.Header(d)))
	b.WriteByte('\n')
	if file != "" && d.Line > 0 {
		b.WriteString(r.locator.Render(fmt.Sprintf(" --> %s:%d", file, d.Line)))
		b.WriteByte('\n')
	}
	lines := diag.Snippet(src, d.Line, context)
	width := 0
	if n := len(lines); n > 0 {
		width = len(fmt.Sprint(lines[n-1].No))
	}
	for _, ln := range lines {
		mark := " "
		if ln.Primary {
			mark = r.marker.Render(">")
		}
		Bprintf(&b, "%s %s %s\n", mark, r.gutter.Render(fmt.Sprintf("%*d |", width, ln.No)), ln.Text)
	}
	if ce, ok := diag.Lookup(d.Domain, d.Key); ok && strings.TrimSpace(ce.Help) != "" {
		b.WriteString(r.help.Render("help: " + ce.Help))
		b.WriteByte('\n')
	}
	return b.String()
}
