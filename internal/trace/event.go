package trace

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint // мгновенное событие
)

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1
	ScopeProject
	ScopeUnit
	ScopeStage
)

// Level controls which scopes pass.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // only failures (ring dumps)
	LevelPhase        // driver and project boundaries
	LevelDetail       // plus every unit
	LevelDebug        // plus every stage of every unit
)

var (
	kindNames  = []string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}
	scopeNames = []string{ScopeDriver: "driver", ScopeProject: "project", ScopeUnit: "unit", ScopeStage: "stage"}
	levelNames = []string{LevelOff: "off", LevelError: "error", LevelPhase: "phase", LevelDetail: "detail", LevelDebug: "debug"}
)

func name(names []string, i int) string {
	if i > 0 && i < len(names) || i == 0 && names[0] != "" {
		return names[i]
	}
	return "unknown"
}

func (k Kind) String() string  { return name(kindNames, int(k)) }
func (s Scope) String() string { return name(scopeNames, int(s)) }
func (l Level) String() string { return name(levelNames, int(l)) }

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	if i := slices.Index(levelNames, strings.ToLower(s)); i >= 0 {
		return Level(i), nil
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames, "|"))
}

// ShouldEmit reports whether events of scope pass at this level. LevelError
// passes nothing by itself; New pairs it with a ring that records everything.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopeProject
	case LevelDetail:
		return scope <= ScopeUnit
	case LevelDebug:
		return true
	}
	return false
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // присваивается получателем
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 для корня
	Name     string // "walk", "unit:PLC1/POUs/MAIN", "parse"
	Detail   string
	Dur      time.Duration // only on KindSpanEnd
}
