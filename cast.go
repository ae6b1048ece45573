package castsvg

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// EventType identifies the stream an asciicast event belongs to.
type EventType int

const (
	// EventOutput is data written by the recorded program to the terminal.
	EventOutput EventType = iota
	// EventInput is data typed by the user (not replayed).
	EventInput
	// EventResize is a terminal resize notification (logged and ignored).
	EventResize
)

// Header is the first line of an asciicast v2 recording.
type Header struct {
	Version       int               `json:"version"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	Timestamp     float64           `json:"timestamp,omitempty"`
	Duration      float64           `json:"duration,omitempty"`
	IdleTimeLimit float64           `json:"idle_time_limit,omitempty"`
	Command       string            `json:"command,omitempty"`
	Title         string            `json:"title,omitempty"`
	Env           map[string]string `json:"env,omitempty"`
	Theme         *CastTheme        `json:"theme,omitempty"`
}

// CastTheme is the optional color theme embedded in a cast header: fg and bg
// as hex strings plus a colon-separated palette of 8 or 16 colors.
type CastTheme struct {
	Fg      string `json:"fg"`
	Bg      string `json:"bg"`
	Palette string `json:"palette"`
}

// Event is one timed record of a recording. Time is in seconds since the
// start of the session.
type Event struct {
	Time float64
	Type EventType
	Data string
}

// IsZshShell reports whether the recording was made under zsh, based on the
// SHELL variable captured in the header environment.
func IsZshShell(h *Header) bool {
	if h == nil || h.Env == nil {
		return false
	}
	return strings.Contains(h.Env["SHELL"], "zsh")
}

// ParseCast reads an asciicast v2 stream: a JSON header object on the first
// non-empty line followed by newline-delimited JSON event arrays.
//
// The header is strict: an unparseable header or a version other than 2 is a
// fatal error. Event lines are lenient: malformed lines are skipped with a
// warning, unknown event tags are coerced to output with a warning, and
// empty lines are skipped silently.
func ParseCast(r io.Reader) (*Header, []Event, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	header, err := parseHeader(scanner)
	if err != nil {
		return nil, nil, err
	}

	var events []Event
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		event, err := parseEvent(line)
		if err != nil {
			slog.Warn("skipping malformed event line", "error", err)
			continue
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading cast stream: %w", err)
	}

	return header, events, nil
}

func parseHeader(scanner *bufio.Scanner) (*Header, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var header Header
		if err := json.Unmarshal([]byte(line), &header); err != nil {
			return nil, fmt.Errorf("parsing cast header: %w", err)
		}
		if header.Version != 2 {
			return nil, fmt.Errorf("unsupported asciicast version: %d (only version 2 is supported)", header.Version)
		}
		return &header, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading cast header: %w", err)
	}
	return nil, fmt.Errorf("empty cast stream")
}

func parseEvent(line string) (Event, error) {
	var arr []any
	if err := json.Unmarshal([]byte(line), &arr); err != nil {
		return Event{}, fmt.Errorf("parsing event JSON: %w", err)
	}

	if len(arr) < 3 {
		return Event{}, fmt.Errorf("event has %d elements, expected at least 3", len(arr))
	}

	time, ok := arr[0].(float64)
	if !ok {
		return Event{}, fmt.Errorf("event time is not a number")
	}

	tag, ok := arr[1].(string)
	if !ok {
		return Event{}, fmt.Errorf("event tag is not a string")
	}

	data, ok := arr[2].(string)
	if !ok {
		return Event{}, fmt.Errorf("event data is not a string")
	}

	var typ EventType
	switch tag {
	case "o":
		typ = EventOutput
	case "i":
		typ = EventInput
	case "r":
		typ = EventResize
	default:
		slog.Warn("unknown event tag, treating as output", "tag", tag)
		typ = EventOutput
	}

	return Event{Time: time, Type: typ, Data: data}, nil
}

// CastWriter emits an asciicast v2 stream: header first, then one event
// array per line. Used by the recorder and by round-trip tests.
type CastWriter struct {
	w           io.Writer
	wroteHeader bool
}

// NewCastWriter creates a writer emitting to w.
func NewCastWriter(w io.Writer) *CastWriter {
	return &CastWriter{w: w}
}

// WriteHeader writes the header line. Must be called exactly once, before
// any event.
func (cw *CastWriter) WriteHeader(h *Header) error {
	if cw.wroteHeader {
		return fmt.Errorf("cast header already written")
	}

	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encoding cast header: %w", err)
	}

	if _, err := cw.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing cast header: %w", err)
	}

	cw.wroteHeader = true
	return nil
}

// WriteEvent writes one event line.
func (cw *CastWriter) WriteEvent(e Event) error {
	if !cw.wroteHeader {
		return fmt.Errorf("cast header not written")
	}

	var tag string
	switch e.Type {
	case EventInput:
		tag = "i"
	case EventResize:
		tag = "r"
	default:
		tag = "o"
	}

	data, err := json.Marshal([]any{e.Time, tag, e.Data})
	if err != nil {
		return fmt.Errorf("encoding cast event: %w", err)
	}

	if _, err := cw.w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing cast event: %w", err)
	}
	return nil
}
