package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"plcst/internal/driver"
)

func feed(m *progressModel, evs ...driver.Event) {
	for _, ev := range evs {
		m.Update(eventMsg(ev))
	}
}

func TestProgressTracksUnits(t *testing.T) {
	m := NewProgressModel("Sample.sln", nil).(*progressModel)
	feed(m,
		driver.Event{Identifier: "MAIN.TcPOU", Status: driver.UnitQueued},
		driver.Event{Identifier: "FB_Broken.TcPOU", Status: driver.UnitQueued},
		driver.Event{Identifier: "E_Mode.TcDUT", Status: driver.UnitQueued},
		driver.Event{Identifier: "MAIN.TcPOU", Status: driver.UnitStarted},
		driver.Event{Identifier: "MAIN.TcPOU", Status: driver.UnitDone},
		driver.Event{Identifier: "FB_Broken.TcPOU", Status: driver.UnitFailed, Stage: driver.StageParse, Err: errors.New("boom")},
		driver.Event{Identifier: "E_Mode.TcDUT", Status: driver.UnitCached},
	)
	view := m.View()
	for _, want := range []string{"Sample.sln", "done MAIN.TcPOU", "failed:parse FB_Broken.TcPOU", "cached E_Mode.TcDUT", "3 units", "1 done", "1 failed", "1 cached"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestProgressCountsLastStatus(t *testing.T) {
	m := NewProgressModel("x", nil).(*progressModel)
	feed(m,
		driver.Event{Identifier: "a", Status: driver.UnitDone},
		driver.Event{Identifier: "a", Status: driver.UnitFailed, Stage: driver.StageSummarize},
	)
	if m.counts[driver.UnitDone] != 0 || m.counts[driver.UnitFailed] != 1 {
		t.Errorf("counts = %v", m.counts)
	}
}

func TestProgressWindowKeepsFailures(t *testing.T) {
	m := NewProgressModel("big", nil).(*progressModel)
	feed(m, driver.Event{Identifier: "unit00", Status: driver.UnitFailed})
	for i := 1; i < 40; i++ {
		feed(m, driver.Event{Identifier: fmt.Sprintf("unit%02d", i), Status: driver.UnitDone})
	}
	rows := m.visible()
	if len(rows) != maxRows {
		t.Fatalf("visible = %d rows", len(rows))
	}
	if rows[0].id != "unit00" || rows[len(rows)-1].id != "unit39" {
		t.Errorf("window = %s..%s", rows[0].id, rows[len(rows)-1].id)
	}
	if !strings.Contains(m.View(), "28 more") {
		t.Errorf("hidden count missing:\n%s", m.View())
	}
}

func TestProgressQuitsWhenChannelCloses(t *testing.T) {
	ch := make(chan driver.Event)
	close(ch)
	m := NewProgressModel("x", ch).(*progressModel)
	if msg := m.listenForEvent()(); msg != (doneMsg{}) {
		t.Fatalf("msg = %#v", msg)
	}
	m.Update(doneMsg{})
	if !m.done || !strings.Contains(m.View(), "done: x") {
		t.Errorf("model not done:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("POUs/Motors/FB_Motor.TcPOU", 10); got != "POUs/Mo..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	for _, w := range []int{4, 8, 12} {
		if got := truncate("GVLs/GVL_Main.TcGVL", w); runewidth.StringWidth(got) != w {
			t.Errorf("truncate(_, %d) = %q, width %d", w, got, runewidth.StringWidth(got))
		}
	}
}
