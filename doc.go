// Package castsvg converts recorded terminal sessions (asciicast v2) into
// self-contained animated SVG files playable in any browser or SVG viewer.
//
// The pipeline is a straight data dependency:
//
//	bytes → cast records → (emulator ⊗ timeline policy) → (frame, duration) steps → SVG document
//
// # Reading a cast
//
// [ParseCast] reads the header and event stream:
//
//	r, _ := castsvg.OpenInput("demo.cast")
//	defer r.Close()
//	header, events, err := castsvg.ParseCast(r)
//
// # Replaying through the emulator
//
// [Terminal] is a headless emulator driven by the go-ansicode decoder. It
// implements io.Writer; [Terminal.Snapshot] captures an independent copy of
// the screen:
//
//	term := castsvg.New(castsvg.WithSize(24, 80))
//	term.WriteString("\x1b[1;31mhello\x1b[0m")
//	frame := term.Snapshot()
//
// Unknown or unsupported escape sequences never error; they degrade to
// no-ops so even malformed casts play back best-effort.
//
// # Building a timeline
//
// [BuildTimeline] samples grid snapshots against the event stream, applying
// speed scaling, idle compression, range clipping, and either per-event
// (original) or fixed-FPS timing. A static mode renders a single snapshot at
// a chosen timestamp:
//
//	steps := castsvg.BuildTimeline(header.Width, header.Height, events, castsvg.TimelineConfig{
//	    Speed: 2,
//	    FPS:   30,
//	})
//
// # Encoding the SVG
//
// [Renderer] emits the document: per-frame groups of run-length-compressed
// background rectangles and styled text runs, chained by discrete SMIL
// opacity animations for deterministic, loopable playback:
//
//	r := castsvg.NewRenderer(header.Width, header.Height,
//	    castsvg.WithTheme(castsvg.DefaultTheme()),
//	    castsvg.WithWindow(true),
//	)
//	var out bytes.Buffer
//	err := r.Render(&out, steps)
//
// The accompanying castsvg command wires these pieces together and adds
// input fetching, theme selection, file watching, and a session recorder.
package castsvg
