package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one measured step of a command: a walk, or the sum of one parse
// stage over every unit.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Count int // сколько раз фаза добавлялась через Add
	Note  string
}

// Timer collects phase durations. Safe for concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	byName map[string]int
}

func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8), byName: make(map[string]int)}
}

// Begin starts a new phase and returns its index for End.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now(), Count: 1})
	return len(t.phases) - 1
}

func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Add accumulates dur into the phase called name, creating it on first use.
// Per-unit stage times of a parallel parse are summed this way.
func (t *Timer) Add(name string, dur time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	i, ok := t.byName[name]
	if !ok {
		t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
		i = len(t.phases) - 1
		t.byName[name] = i
	}
	t.phases[i].Dur += dur
	t.phases[i].Count++
}

// Summary renders the phases for --timings.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-20s %9.2f ms", p.Name, p.DurationMS)
		if p.Count > 1 {
			fmt.Fprintf(&sb, "  x%d", p.Count)
		}
		if p.Note != "" {
			sb.WriteString("  // " + p.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-20s %9.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// PhaseReport is the serialisable form of a phase.
type PhaseReport struct {
	Name       string  `json:"name" yaml:"name"`
	DurationMS float64 `json:"duration_ms" yaml:"duration_ms"`
	Count      int     `json:"count,omitempty" yaml:"count,omitempty"`
	Note       string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms" yaml:"total_ms"`
	Phases  []PhaseReport `json:"phases" yaml:"phases"`
}

// Report returns the phases in creation order. Accumulated phases (Add)
// overlap the walk that contains them and are not counted in the total.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		if _, accumulated := t.byName[p.Name]; !accumulated {
			total += p.Dur
		}
		report.Phases[i] = PhaseReport{Name: p.Name, DurationMS: toMillis(p.Dur), Count: p.Count, Note: p.Note}
	}
	report.TotalMS = toMillis(total)
	return report
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
