package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/castsvg/castsvg"
	"github.com/fsnotify/fsnotify"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// renderFlags is the flag surface of the root render command.
type renderFlags struct {
	theme         string
	speed         float64
	fps           uint8
	fontSize      int
	lineHeight    float64
	idleTimeLimit float64
	cols          int
	rows          int
	noLoop        bool
	at            float64
	from          float64
	to            float64
	noCursor      bool
	window        bool
	padding       int
	paddingX      int
	paddingY      int
	timeline      string
	zstd          bool
	watch         bool
	configPath    string
	verbose       int
}

func rootCmd() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "castsvg <input> <output>",
		Short: "castsvg — render asciicast recordings as animated SVG",
		Long: "Converts an asciicast v2 recording (file, URL, or asciinema.org id) into a\n" +
			"self-contained animated SVG that plays back in any browser or SVG viewer.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(flags.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], args[1], &flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.theme, "theme", "t", "", "Color theme: a preset name or 18 comma-separated hex colors")
	f.Float64VarP(&flags.speed, "speed", "s", 1.0, "Adjust playback speed")
	f.Uint8Var(&flags.fps, "fps", 30, "Frames per second for fixed timing and the trailing frame")
	f.IntVar(&flags.fontSize, "font-size", 14, "Font size in pixels")
	f.Float64Var(&flags.lineHeight, "line-height", 1.4, "Line height multiplier")
	f.Float64VarP(&flags.idleTimeLimit, "idle-time-limit", "i", 0, "Cap any idle gap at this many seconds")
	f.IntVar(&flags.cols, "cols", 0, "Override terminal width (number of columns)")
	f.IntVar(&flags.rows, "rows", 0, "Override terminal height (number of rows)")
	f.BoolVar(&flags.noLoop, "no-loop", false, "Disable the animation loop")
	f.Float64Var(&flags.at, "at", 0, "Render a single static frame at this timestamp (seconds)")
	f.Float64Var(&flags.from, "from", 0, "Lower bound of the timeline to render (seconds)")
	f.Float64Var(&flags.to, "to", 0, "Upper bound of the timeline to render (seconds)")
	f.BoolVar(&flags.noCursor, "no-cursor", false, "Mark the cursor as hidden (no cursor is drawn either way)")
	f.BoolVar(&flags.window, "window", false, "Render with window decorations")
	f.IntVar(&flags.padding, "padding", 10, "Distance between text and image bounds")
	f.IntVar(&flags.paddingX, "padding-x", 0, "Horizontal padding (overrides --padding)")
	f.IntVar(&flags.paddingY, "padding-y", 0, "Vertical padding (overrides --padding)")
	f.StringVar(&flags.timeline, "timeline", "original", "Timeline mode: original or fixed")
	f.BoolVar(&flags.zstd, "zstd", false, "Compress the output with zstd (writes .zst)")
	f.BoolVar(&flags.watch, "watch", false, "Re-render whenever a local input file changes")
	f.StringVar(&flags.configPath, "config", "", "Path to a YAML defaults file")
	cmd.PersistentFlags().CountVarP(&flags.verbose, "verbose", "v", "Verbose output (-v, -vv)")

	cmd.AddCommand(recCmd(), themesCmd())

	return cmd
}

// setupLogging configures the default slog handler from the -v count.
func setupLogging(verbose int) {
	var level slog.Level
	switch verbose {
	case 0:
		level = slog.LevelError
	case 1:
		level = slog.LevelInfo
	default:
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func runRender(cmd *cobra.Command, input, output string, flags *renderFlags) error {
	if err := applyConfigFile(cmd, flags); err != nil {
		return err
	}

	if err := renderOnce(cmd, input, output, flags); err != nil {
		return err
	}

	if flags.watch {
		return watchAndRender(cmd, input, output, flags)
	}

	return nil
}

// applyConfigFile fills in defaults from the YAML config for every flag the
// user did not set explicitly.
func applyConfigFile(cmd *cobra.Command, flags *renderFlags) error {
	path := flags.configPath
	if path == "" {
		path = castsvg.DefaultConfigPath()
	}

	cfg, err := castsvg.LoadConfig(path)
	if err != nil {
		return err
	}

	set := cmd.Flags().Changed
	if !set("theme") && cfg.Theme != "" {
		flags.theme = cfg.Theme
	}
	if !set("speed") && cfg.Speed > 0 {
		flags.speed = cfg.Speed
	}
	if !set("fps") && cfg.FPS > 0 {
		flags.fps = cfg.FPS
	}
	if !set("font-size") && cfg.FontSize > 0 {
		flags.fontSize = cfg.FontSize
	}
	if !set("line-height") && cfg.LineHeight > 0 {
		flags.lineHeight = cfg.LineHeight
	}
	if !set("padding") && cfg.Padding > 0 {
		flags.padding = cfg.Padding
	}
	if !set("window") && cfg.Window {
		flags.window = true
	}
	if !set("no-loop") && cfg.NoLoop {
		flags.noLoop = true
	}
	if !set("timeline") && cfg.Timeline != "" {
		flags.timeline = cfg.Timeline
	}

	return nil
}

func renderOnce(cmd *cobra.Command, input, output string, flags *renderFlags) error {
	r, err := castsvg.OpenInput(input)
	if err != nil {
		return err
	}
	defer r.Close()

	header, events, err := castsvg.ParseCast(r)
	if err != nil {
		return err
	}

	cols := header.Width
	if flags.cols > 0 {
		cols = flags.cols
	}
	rows := header.Height
	if flags.rows > 0 {
		rows = flags.rows
	}

	mode, ok := castsvg.ParseTimelineMode(flags.timeline)
	if !ok {
		return fmt.Errorf("invalid timeline mode: %q (expected original or fixed)", flags.timeline)
	}

	set := cmd.Flags().Changed
	tcfg := castsvg.TimelineConfig{
		Speed: flags.speed,
		FPS:   flags.fps,
		Mode:  mode,
		IsZsh: castsvg.IsZshShell(header),
	}
	if set("idle-time-limit") {
		tcfg.IdleTimeLimit = &flags.idleTimeLimit
	}
	if set("from") {
		tcfg.From = &flags.from
	}
	if set("to") {
		tcfg.To = &flags.to
	}
	if set("at") {
		tcfg.At = &flags.at
	}

	steps := castsvg.BuildTimeline(cols, rows, events, tcfg)

	theme, err := effectiveTheme(flags.theme, header)
	if err != nil {
		return err
	}

	paddingX, paddingY := flags.padding, flags.padding
	if set("padding-x") {
		paddingX = flags.paddingX
	}
	if set("padding-y") {
		paddingY = flags.paddingY
	}

	renderer := castsvg.NewRenderer(cols, rows,
		castsvg.WithFontSize(flags.fontSize),
		castsvg.WithLineHeight(flags.lineHeight),
		castsvg.WithTheme(theme),
		castsvg.WithLoop(!flags.noLoop),
		castsvg.WithCursorVisible(!flags.noCursor),
		castsvg.WithWindow(flags.window),
		castsvg.WithPadding(paddingX, paddingY),
	)

	var doc bytes.Buffer
	if err := renderer.Render(&doc, steps); err != nil {
		return err
	}

	path, err := castsvg.ResolveOutputPath(output)
	if err != nil {
		return err
	}

	if flags.zstd {
		path, err = writeZstd(path, doc.Bytes())
	} else {
		err = os.WriteFile(path, doc.Bytes(), 0o644)
	}
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Printf("SVG animation saved to: %s\n", path)
	if set("at") {
		fmt.Printf("Static frame at %.2fs\n", flags.at)
	} else {
		total := 0.0
		for _, step := range steps {
			total += step.Duration
		}
		fmt.Printf("Total frames: %d\n", len(steps))
		fmt.Printf("Duration: %.2fs\n", total)
	}

	return nil
}

// writeZstd writes data zstd-compressed, appending .zst unless the path
// already carries it. Returns the path written.
func writeZstd(path string, data []byte) (string, error) {
	if !strings.HasSuffix(path, ".zst") {
		path += ".zst"
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return "", err
	}

	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return "", err
	}

	return path, enc.Close()
}

func effectiveTheme(arg string, header *castsvg.Header) (castsvg.Theme, error) {
	if arg != "" {
		return castsvg.ResolveTheme(arg)
	}
	if header.Theme != nil {
		return castsvg.ThemeFromCast(header.Theme)
	}
	return castsvg.DefaultTheme(), nil
}

// watchAndRender blocks, re-rendering whenever the input file changes.
// Only meaningful for local inputs.
func watchAndRender(cmd *cobra.Command, input, output string, flags *renderFlags) error {
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("--watch requires a local input file: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file on save.
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("watching %s: %w", input, err)
	}

	slog.Info("watching for changes", "input", input)
	target := filepath.Clean(input)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := renderOnce(cmd, input, output, flags); err != nil {
				slog.Error("render failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "error", err)
		}
	}
}
