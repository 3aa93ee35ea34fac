package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"convlint/internal/trace"
)

// setupTracing reads the trace flags and attaches a tracer to the command
// context. The returned cleanup flushes the tracer; when failed is true and
// the tracer only buffers events, the buffer is dumped to stderr.
func setupTracing(cmd *cobra.Command) (context.Context, func(failed bool), error) {
	pf := cmd.Root().PersistentFlags()
	output, _ := pf.GetString("trace")
	levelStr, _ := pf.GetString("trace-level")
	formatStr, _ := pf.GetString("trace-format")
	ringSize, _ := pf.GetInt("trace-ring-size")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace level: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid trace format: %w", err)
	}
	// --trace alone means "show the phases".
	if level == trace.LevelOff && output != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		return trace.WithTracer(ctx, trace.Nop), func(bool) {}, nil
	}

	cfg := trace.Config{
		Level:    level,
		Format:   format,
		Path:     output,
		RingSize: ringSize,
	}
	if output == "" || output == "-" {
		cfg.Output = cmd.ErrOrStderr()
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	stderr := cmd.ErrOrStderr()
	cleanup := func(failed bool) {
		if ring, ok := tracer.(*trace.RingTracer); ok && failed {
			dumpRing(stderr, ring)
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(stderr, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(stderr, "trace: close error: %v\n", err)
		}
	}
	return trace.WithTracer(ctx, tracer), cleanup, nil
}

func dumpRing(w io.Writer, ring *trace.RingTracer) {
	fmt.Fprintln(w, "trace: last events before failure:")
	if err := ring.Dump(w); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}
