package castsvg

import (
	"log/slog"
	"math"
	"strings"
)

// TimelineMode selects how inter-event gaps become animation steps.
type TimelineMode int

const (
	// TimelineOriginal keeps one variable-duration step per event.
	TimelineOriginal TimelineMode = iota
	// TimelineFixed resamples each gap into identical steps at the configured FPS.
	TimelineFixed
)

// ParseTimelineMode parses the CLI spelling of a timeline mode.
func ParseTimelineMode(s string) (TimelineMode, bool) {
	switch s {
	case "original":
		return TimelineOriginal, true
	case "fixed":
		return TimelineFixed, true
	}
	return TimelineOriginal, false
}

// TimelineConfig controls how the event stream is sampled into steps.
type TimelineConfig struct {
	// Speed divides every inter-event duration. Values <= 0 mean 1.
	Speed float64
	// IdleTimeLimit caps any single inter-event duration after speed scaling.
	IdleTimeLimit *float64
	// From and To clip the event stream to an inclusive time window before
	// timing is computed. From also seeds the duration accounting.
	From *float64
	To   *float64
	// At switches to static-frame mode: ignore timing and emit one snapshot
	// of everything at or before the given time.
	At *float64
	// FPS drives fixed-mode resampling and the trailing step duration.
	// Zero means 30.
	FPS uint8
	// Mode selects original or fixed timing.
	Mode TimelineMode
	// IsZsh enables the zsh prompt filter (lone '%' output events).
	IsZsh bool
}

func (cfg *TimelineConfig) speed() float64 {
	if cfg.Speed <= 0 {
		return 1
	}
	return cfg.Speed
}

func (cfg *TimelineConfig) fps() float64 {
	if cfg.FPS == 0 {
		return 30
	}
	return float64(cfg.FPS)
}

// Step pairs a frame with how long it stays visible, in seconds.
type Step struct {
	Frame    Frame
	Duration float64
}

// BuildTimeline replays the event stream through a fresh emulator and samples
// it into animation steps. Snapshots are taken strictly before applying the
// event whose time delimits the step, so each step shows the screen as it
// looked while waiting for that event. The result always has at least one
// step: a trailing snapshot of the final screen held for one frame interval.
func BuildTimeline(cols, rows int, events []Event, cfg TimelineConfig) []Step {
	term := New(WithSize(rows, cols))
	events = filterWindow(events, cfg.From, cfg.To)
	events = filterSystemOutput(events, cfg.IsZsh)

	if cfg.At != nil {
		return buildStatic(term, events, *cfg.At, cfg.fps())
	}

	switch cfg.Mode {
	case TimelineFixed:
		return buildFixed(term, events, cfg)
	default:
		return buildOriginal(term, events, cfg)
	}
}

// filterWindow drops events outside the inclusive [from, to] window.
func filterWindow(events []Event, from, to *float64) []Event {
	if from == nil && to == nil {
		return events
	}

	kept := make([]Event, 0, len(events))
	for _, e := range events {
		if from != nil && e.Time < *from {
			continue
		}
		if to != nil && e.Time > *to {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// filterSystemOutput drops output events that would pollute playback: OSC
// payloads (window titles, cwd reports), session footer lines, and - under
// zsh - the lone '%' the shell prints for a partial line. Non-output events
// pass through untouched.
func filterSystemOutput(events []Event, isZsh bool) []Event {
	kept := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Type == EventOutput && isSystemOutput(e.Data, isZsh) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

func isSystemOutput(data string, isZsh bool) bool {
	if strings.HasPrefix(data, "\x1b]") {
		return true
	}

	switch strings.TrimSpace(data) {
	case "Saving session...", "completed.":
		return true
	}

	if isZsh && strings.TrimSpace(stripANSI(data)) == "%" {
		return true
	}

	return false
}

// stripANSI removes CSI and OSC sequences, other two-byte escapes, and
// control characters, leaving only the visible text.
func stripANSI(s string) string {
	var out strings.Builder
	bytes := []byte(s)

	for i := 0; i < len(bytes); {
		b := bytes[i]

		if b == 0x1b {
			if i+1 >= len(bytes) {
				break
			}
			switch bytes[i+1] {
			case '[':
				// CSI: ESC [ ... final byte in 0x40..0x7e
				i += 2
				for i < len(bytes) {
					bb := bytes[i]
					i++
					if bb >= 0x40 && bb <= 0x7e {
						break
					}
				}
			case ']':
				// OSC: ESC ] ... BEL or ST
				i += 2
				for i < len(bytes) {
					if bytes[i] == 0x07 {
						i++
						break
					}
					if bytes[i] == 0x1b && i+1 < len(bytes) && bytes[i+1] == '\\' {
						i += 2
						break
					}
					i++
				}
			default:
				i += 2
			}
			continue
		}

		if b < 0x20 {
			i++
			continue
		}

		out.WriteByte(b)
		i++
	}

	return out.String()
}

// buildStatic feeds every output event at or before the target time and emits
// a single snapshot.
func buildStatic(term *Terminal, events []Event, at, fps float64) []Step {
	for _, e := range events {
		if e.Time > at {
			continue
		}
		feed(term, e)
	}

	return []Step{{Frame: term.Snapshot(), Duration: 1 / fps}}
}

// buildOriginal emits one step per event with the real inter-event duration,
// scaled by speed and clamped by the idle limit, plus a trailing step.
func buildOriginal(term *Terminal, events []Event, cfg TimelineConfig) []Step {
	steps := make([]Step, 0, len(events)+1)
	lastTime := startTime(cfg.From)

	for _, e := range events {
		d := (e.Time - lastTime) / cfg.speed()
		if cfg.IdleTimeLimit != nil {
			d = math.Min(d, *cfg.IdleTimeLimit)
		}
		d = math.Max(d, 0)

		steps = append(steps, Step{Frame: term.Snapshot(), Duration: d})
		feed(term, e)
		lastTime = e.Time
	}

	steps = append(steps, Step{Frame: term.Snapshot(), Duration: 1 / cfg.fps()})
	return steps
}

// buildFixed resamples every inter-event gap into ceil(d*fps) identical
// steps of 1/fps each, plus a trailing step.
func buildFixed(term *Terminal, events []Event, cfg TimelineConfig) []Step {
	fps := cfg.fps()
	var steps []Step
	lastTime := startTime(cfg.From)

	for _, e := range events {
		d := (e.Time - lastTime) / cfg.speed()
		if cfg.IdleTimeLimit != nil {
			d = math.Min(d, *cfg.IdleTimeLimit)
		}
		d = math.Max(d, 0)

		count := int(math.Ceil(d * fps))
		for i := 0; i < count; i++ {
			steps = append(steps, Step{Frame: term.Snapshot(), Duration: 1 / fps})
		}

		feed(term, e)
		lastTime = e.Time
	}

	steps = append(steps, Step{Frame: term.Snapshot(), Duration: 1 / fps})
	return steps
}

func startTime(from *float64) float64 {
	if from != nil {
		return *from
	}
	return 0
}

// feed applies an event to the emulator. Only output data mutates the grid;
// resize events are logged and ignored since dimensions are fixed by the
// header.
func feed(term *Terminal, e Event) {
	switch e.Type {
	case EventOutput:
		term.WriteString(e.Data)
	case EventResize:
		slog.Debug("ignoring resize event", "time", e.Time, "data", e.Data)
	}
}
