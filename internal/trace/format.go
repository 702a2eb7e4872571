package trace

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format is the output encoding of a stream.
type Format uint8

const (
	FormatAuto   Format = iota // по расширению OutputPath
	FormatText                 // human-readable
	FormatNDJSON               // one JSON object per line
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

// FormatEvent encodes ev as one line.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

type jsonEvent struct {
	Time     string  `json:"time"`
	Seq      uint64  `json:"seq"`
	Kind     string  `json:"kind"`
	Scope    string  `json:"scope"`
	SpanID   uint64  `json:"span_id,omitempty"`
	ParentID uint64  `json:"parent_id,omitempty"`
	Name     string  `json:"name"`
	Detail   string  `json:"detail,omitempty"`
	DurMS    float64 `json:"dur_ms,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		DurMS:    float64(ev.Dur.Microseconds()) / 1000,
	})
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

var kindMarks = []string{KindSpanBegin: "→ ", KindSpanEnd: "← ", KindPoint: "• "}

// formatText: "15:04:05.000000 [unit]     ← unit:PLC1/POUs/MAIN (ok) 1.25ms".
// Scopes indent by depth.
func formatText(ev *Event) []byte {
	var sb strings.Builder
	sb.WriteString(ev.Time.Format("15:04:05.000000"))
	fmt.Fprintf(&sb, " %-9s", "["+ev.Scope.String()+"]")
	sb.WriteString(strings.Repeat("  ", max(int(ev.Scope)-1, 0)))
	if int(ev.Kind) < len(kindMarks) {
		sb.WriteString(kindMarks[ev.Kind])
	}
	sb.WriteString(ev.Name)
	if ev.Detail != "" {
		sb.WriteString(" (" + ev.Detail + ")")
	}
	if ev.Kind == KindSpanEnd {
		fmt.Fprintf(&sb, " %.2fms", float64(ev.Dur.Microseconds())/1000)
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
