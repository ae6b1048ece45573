package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/castsvg/castsvg"
	"github.com/creack/pty"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func recCmd() *cobra.Command {
	var command string

	cmd := &cobra.Command{
		Use:   "rec <output.cast>",
		Short: "Record a terminal session to an asciicast v2 file",
		Long: "Runs a shell (or a command) under a pseudo-terminal and records its output\n" +
			"as timestamped asciicast v2 events, ready to be rendered with castsvg.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRec(args[0], command)
		},
	}

	cmd.Flags().StringVarP(&command, "command", "c", "", "Command to record (defaults to $SHELL)")

	return cmd
}

func runRec(output, command string) error {
	var c *exec.Cmd
	if command != "" {
		c = exec.Command("sh", "-c", command)
	} else {
		shell := os.Getenv("SHELL")
		if shell == "" {
			shell = "/bin/sh"
		}
		c = exec.Command(shell)
	}

	cols, rows, err := term.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		cols, rows = 80, 24
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating cast file: %w", err)
	}
	defer f.Close()

	writer := castsvg.NewCastWriter(f)
	header := &castsvg.Header{
		Version:   2,
		Width:     cols,
		Height:    rows,
		Timestamp: float64(time.Now().Unix()),
		Command:   command,
		Env: map[string]string{
			"SHELL": os.Getenv("SHELL"),
			"TERM":  os.Getenv("TERM"),
		},
	}
	if err := writer.WriteHeader(header); err != nil {
		return err
	}

	ptmx, err := pty.Start(c)
	if err != nil {
		return fmt.Errorf("starting pty: %w", err)
	}
	defer ptmx.Close()

	// Propagate terminal size changes to the child.
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	go func() {
		for range winch {
			if err := pty.InheritSize(os.Stdin, ptmx); err != nil {
				fmt.Fprintf(os.Stderr, "resize failed: %v\n", err)
			}
		}
	}()
	winch <- syscall.SIGWINCH
	defer func() { signal.Stop(winch); close(winch) }()

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	go func() {
		_, _ = io.Copy(ptmx, os.Stdin)
	}()

	start := time.Now()
	buf := make([]byte, 32*1024)
	for {
		n, readErr := ptmx.Read(buf)
		if n > 0 {
			os.Stdout.Write(buf[:n])
			event := castsvg.Event{
				Time: time.Since(start).Seconds(),
				Type: castsvg.EventOutput,
				Data: string(buf[:n]),
			}
			if err := writer.WriteEvent(event); err != nil {
				return err
			}
		}
		if readErr != nil {
			break
		}
	}

	_ = c.Wait()

	fmt.Printf("\r\nRecording saved to: %s\r\n", output)
	return nil
}
