package castsvg

import (
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"
)

// Renderer encodes a step sequence as a self-contained animated SVG.
//
// Every step becomes a <g class="frame"> whose visibility is driven by a
// discrete SMIL opacity animation; each animation begins when the previous
// one ends, so exactly one frame is visible at any instant. With looping
// enabled the first animation restarts when the last one ends. No scripting
// and no CSS keyframes are emitted: playback relies on SMIL alone.
type Renderer struct {
	cols          int
	rows          int
	fontSize      int
	lineHeight    float64
	theme         Theme
	loopEnable    bool
	cursorVisible bool
	window        bool
	paddingX      int
	paddingY      int
}

// RendererOption configures a Renderer during construction.
type RendererOption func(*Renderer)

// WithFontSize sets the font size in pixels. Default 14.
func WithFontSize(size int) RendererOption {
	return func(r *Renderer) {
		if size > 0 {
			r.fontSize = size
		}
	}
}

// WithLineHeight sets the line height multiplier. Default 1.4.
func WithLineHeight(lh float64) RendererOption {
	return func(r *Renderer) {
		if lh > 0 {
			r.lineHeight = lh
		}
	}
}

// WithTheme sets the document theme. Only the background is painted; cell
// colors come from the frames themselves.
func WithTheme(theme Theme) RendererOption {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLoop controls whether the animation restarts after the last frame.
// Default true.
func WithLoop(enable bool) RendererOption {
	return func(r *Renderer) {
		r.loopEnable = enable
	}
}

// WithCursorVisible toggles cursor rendering. Carried for config parity; the
// encoder draws no cursor element.
func WithCursorVisible(visible bool) RendererOption {
	return func(r *Renderer) {
		r.cursorVisible = visible
	}
}

// WithWindow adds window decorations: a title bar with traffic-light buttons.
func WithWindow(window bool) RendererOption {
	return func(r *Renderer) {
		r.window = window
	}
}

// WithPadding sets the distance between the text area and the canvas edge.
// Default 10x10.
func WithPadding(x, y int) RendererOption {
	return func(r *Renderer) {
		r.paddingX = x
		r.paddingY = y
	}
}

// NewRenderer creates a renderer for a cols x rows character grid.
func NewRenderer(cols, rows int, opts ...RendererOption) *Renderer {
	r := &Renderer{
		cols:          cols,
		rows:          rows,
		fontSize:      14,
		lineHeight:    1.4,
		theme:         DefaultTheme(),
		loopEnable:    true,
		cursorVisible: true,
		window:        false,
		paddingX:      10,
		paddingY:      10,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

const windowBarHeight = 30.0

// Render writes the SVG document for the given steps to w.
func (r *Renderer) Render(w io.Writer, steps []Step) error {
	advance := float64(r.fontSize) * 0.6
	lineHeightPx := float64(r.fontSize) * r.lineHeight

	width := float64(r.cols)*advance + float64(r.paddingX)*2
	height := float64(r.rows)*lineHeightPx + float64(r.paddingY)*2

	barHeight := 0.0
	if r.window {
		barHeight = windowBarHeight
		height += barHeight
	}

	var b strings.Builder

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %d %d">`+"\n",
		ftoa(width), ftoa(height), int(width), int(height))

	fmt.Fprintf(&b, "<defs>\n<style>\ntext { white-space: pre; font-family: monospace; font-size: %dpx; }\n.frame { opacity: 0; }\n</style>\n</defs>\n", r.fontSize)

	fmt.Fprintf(&b, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", hexColor(r.theme.Bg))

	if r.window {
		r.writeWindowDecorations(&b, width)
	}

	fmt.Fprintf(&b, `<g transform="translate(%d, %s)">`+"\n", r.paddingX, ftoa(float64(r.paddingY)+barHeight))

	for i, step := range steps {
		r.writeFrame(&b, i, len(steps), step, advance, lineHeightPx)
	}

	b.WriteString("</g>\n</svg>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// writeFrame emits one <g class="frame"> with its row content and the
// opacity animation that chains it to its neighbors.
func (r *Renderer) writeFrame(b *strings.Builder, index, total int, step Step, advance, lineHeightPx float64) {
	b.WriteString(`<g class="frame">` + "\n")

	frame := step.Frame
	for row := 0; row < frame.Rows(); row++ {
		last := frame.lastNonSpace(row)
		if last < 0 {
			continue
		}

		fmt.Fprintf(b, `<g transform="translate(0, %s)">`+"\n", ftoa(float64(row)*lineHeightPx))
		r.writeBackgroundRuns(b, frame, row, last, advance, lineHeightPx)
		r.writeTextRuns(b, frame, row, last, advance)
		b.WriteString("</g>\n")
	}

	// Chain animations on the previous frame's end; with looping the first
	// frame also restarts when the last one ends.
	var begin string
	switch {
	case index == 0 && r.loopEnable:
		begin = fmt.Sprintf("0s;f%d.end", total-1)
	case index == 0:
		begin = "0s"
	default:
		begin = fmt.Sprintf("f%d.end", index-1)
	}

	dur := math.Max(step.Duration, 0.000001)
	fmt.Fprintf(b, `<animate id="f%d" attributeName="opacity" begin="%s" dur="%.6fs" values="1;1" keyTimes="0;1" calcMode="discrete"/>`+"\n", index, begin, dur)

	b.WriteString("</g>\n")
}

// writeBackgroundRuns coalesces maximal runs of equal background color up to
// the last non-space column and emits one <rect> per run. Runs matching the
// theme background or the default black are suppressed.
func (r *Renderer) writeBackgroundRuns(b *strings.Builder, frame Frame, row, last int, advance, lineHeightPx float64) {
	b.WriteString("<g>\n")

	themeBg := r.theme.Bg
	runStart := -1
	var runColor [3]uint8

	flush := func(end int) {
		if runStart < 0 {
			return
		}
		x := float64(runStart) * advance
		width := float64(end-runStart) * advance
		fmt.Fprintf(b, `<rect x="%s" y="0" width="%s" height="%s" fill="#%02x%02x%02x"/>`+"\n",
			ftoa(x), ftoa(width), ftoa(lineHeightPx), runColor[0], runColor[1], runColor[2])
		runStart = -1
	}

	for col := 0; col <= last; col++ {
		cell := frame.Cell(row, col)
		bg := [3]uint8{cell.Bg.R, cell.Bg.G, cell.Bg.B}
		paint := !(bg[0] == themeBg.R && bg[1] == themeBg.G && bg[2] == themeBg.B) && bg != [3]uint8{0, 0, 0}

		switch {
		case !paint:
			flush(col)
		case runStart < 0:
			runStart = col
			runColor = bg
		case bg != runColor:
			flush(col)
			runStart = col
			runColor = bg
		}
	}
	flush(last + 1)

	b.WriteString("</g>\n")
}

// textStyle is the coalescing key for foreground runs.
type textStyle struct {
	fg    [3]uint8
	bold  bool
	ital  bool
	under bool
}

// writeTextRuns coalesces maximal runs of equal (color, bold, italic,
// underline) up to the last non-space column and emits one positioned <text>
// per run. Spaces inside a run are kept verbatim; only trailing whitespace
// beyond the last non-space column is dropped.
func (r *Renderer) writeTextRuns(b *strings.Builder, frame Frame, row, last int, advance float64) {
	fmt.Fprintf(b, `<g transform="translate(0, %d)">`+"\n", r.fontSize)

	var run []rune
	runStart := 0
	var runKey textStyle
	haveRun := false

	flush := func() {
		if !haveRun || len(run) == 0 {
			return
		}
		x := float64(runStart) * advance
		fmt.Fprintf(b, `<text x="%s" fill="#%02x%02x%02x"`, ftoa(x), runKey.fg[0], runKey.fg[1], runKey.fg[2])
		if runKey.bold {
			b.WriteString(` font-weight="bold"`)
		}
		if runKey.ital {
			b.WriteString(` font-style="italic"`)
		}
		if runKey.under {
			b.WriteString(` text-decoration="underline"`)
		}
		fmt.Fprintf(b, ">%s</text>\n", html.EscapeString(string(run)))
		run = run[:0]
	}

	for col := 0; col <= last; col++ {
		cell := frame.Cell(row, col)
		key := textStyle{
			fg:    [3]uint8{cell.Fg.R, cell.Fg.G, cell.Fg.B},
			bold:  cell.HasFlag(CellFlagBold),
			ital:  cell.HasFlag(CellFlagItalic),
			under: cell.HasFlag(CellFlagUnderline),
		}

		if !haveRun || key != runKey {
			flush()
			runKey = key
			runStart = col
			haveRun = true
		}
		run = append(run, cell.Char)
	}
	flush()

	b.WriteString("</g>\n")
}

// writeWindowDecorations emits the 30px title bar: rounded background,
// close/minimize/maximize buttons, and a centered title.
func (r *Renderer) writeWindowDecorations(b *strings.Builder, width float64) {
	fmt.Fprintf(b, `<rect width="%s" height="30" fill="#2d2d2d" rx="5" ry="5"/>`+"\n", ftoa(width))

	buttons := []struct {
		x    float64
		fill string
	}{
		{20, "#ff5f57"},
		{40, "#ffbd2e"},
		{60, "#28ca42"},
	}
	for _, btn := range buttons {
		fmt.Fprintf(b, `<circle cx="%s" cy="15" r="6" fill="%s"/>`+"\n", ftoa(btn.x), btn.fill)
	}

	fmt.Fprintf(b, `<g transform="translate(%s, 20)"><text text-anchor="middle" fill="#cccccc">Terminal</text></g>`+"\n", ftoa(width/2))
}

// ftoa formats a coordinate as the shortest decimal at single precision, so
// layout products like 14*1.4 come out as "19.6" rather than a full double
// mantissa.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 32)
}
