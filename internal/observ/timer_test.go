package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAccumulates(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("walk")
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("parse", time.Millisecond)
		}()
	}
	wg.Wait()
	tm.End(idx, "3 units")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %+v", r.Phases)
	}
	parse := r.Phases[1]
	if parse.Name != "parse" || parse.Count != 8 || parse.DurationMS != 8 {
		t.Errorf("parse = %+v", parse)
	}
	if r.TotalMS != r.Phases[0].DurationMS {
		t.Errorf("total %v should only count the walk %v", r.TotalMS, r.Phases[0].DurationMS)
	}
	if s := tm.Summary(); !strings.Contains(s, "x8") || !strings.Contains(s, "// 3 units") {
		t.Errorf("summary = %q", s)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	tm.Add("y", time.Second)
	if len(tm.Report().Phases) != 0 {
		t.Error("nil timer reported phases")
	}
}
