package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"plcst/internal/trace"
)

// finishRun flushes the tracer and stops the profilers set up for this run.
var finishRun = func() {}

func setupRun(cmd *cobra.Command, _ []string) error {
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		stopProfiling()
		return err
	}
	finishRun = func() {
		cleanup()
		stopProfiling()
	}
	return nil
}

// setupTracing inspects trace-related flags and initializes the tracer.
// It returns a cleanup function and an error if initialization fails.
func setupTracing(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := root.PersistentFlags().GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	formatStr, err := root.PersistentFlags().GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}
	ringSize, err := root.PersistentFlags().GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace format: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}

// dumpTraceRing writes the buffered events of a ring tracer, if one is active.
// Used after failures when tracing runs at the error level.
func dumpTraceRing(cmd *cobra.Command) {
	ring, ok := trace.Ring(trace.FromContext(cmd.Context()))
	if !ok {
		return
	}
	fmt.Fprintln(os.Stderr, "-- trace --")
	if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
		fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
	}
}
