package trace

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// Tracer receives trace events. Implementations are goroutine-safe.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	// Close flushes and releases the output.
	Close() error
	Level() Level
	Enabled() bool
}

// StorageMode determines where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // сразу в вывод
	ModeRing                          // кольцевой буфер
	ModeBoth
)

var modeNames = []string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string { return name(modeNames, int(m)) }

// ParseMode converts a flag value to a StorageMode.
func ParseMode(s string) (StorageMode, error) {
	if i := slices.Index(modeNames, strings.ToLower(s)); i > 0 {
		return StorageMode(i), nil
	}
	return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

const defaultRingSize = 4096

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format
	Output     io.Writer // takes precedence over OutputPath
	OutputPath string    // "-" or "" is stderr
	RingSize   int
}

// New builds a tracer for cfg. LevelOff yields Nop. LevelError keeps
// everything in a ring so that it can be dumped when a unit fails.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}
	if cfg.Level == LevelError {
		return NewRingTracer(cfg.RingSize, LevelDebug), nil
	}

	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}

	switch cfg.Mode {
	case ModeStream, 0:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		return NewStreamTracer(w, cfg.Level, format), nil
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeBoth:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		return NewMultiTracer(cfg.Level,
			NewStreamTracer(w, cfg.Level, format),
			NewRingTracer(cfg.RingSize, cfg.Level),
		), nil
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// Ring returns the ring buffer behind t, if any.
func Ring(t Tracer) (*RingTracer, bool) {
	switch t := t.(type) {
	case *RingTracer:
		return t, true
	case *MultiTracer:
		for _, inner := range t.tracers {
			if r, ok := Ring(inner); ok {
				return r, true
			}
		}
	}
	return nil, false
}
