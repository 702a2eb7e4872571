package driver

import "time"

// EventStatus reports where a unit is in the walk.
type EventStatus int

const (
	// UnitQueued: the unit was enumerated and will be parsed.
	UnitQueued EventStatus = iota
	UnitStarted
	UnitDone
	UnitFailed
	// UnitCached: the summary came from the disk cache.
	UnitCached
)

func (s EventStatus) String() string {
	switch s {
	case UnitQueued:
		return "queued"
	case UnitStarted:
		return "started"
	case UnitDone:
		return "done"
	case UnitFailed:
		return "failed"
	case UnitCached:
		return "cached"
	default:
		return "unknown"
	}
}

// Event describes the progress of one unit.
type Event struct {
	Identifier string
	Status     EventStatus
	Stage      Stage // stage of failure, empty otherwise
	Err        error
	Elapsed    time.Duration
}

// EventSink receives progress events. Calls may come from several goroutines.
type EventSink interface {
	Emit(Event)
}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(ev Event) { f(ev) }

// ChannelSink forwards events to a channel; the ui reads from it.
type ChannelSink chan<- Event

func (c ChannelSink) Emit(ev Event) { c <- ev }

func emit(sink EventSink, ev Event) {
	if sink != nil {
		sink.Emit(ev)
	}
}
