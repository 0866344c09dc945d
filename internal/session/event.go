package session

import "fmt"

// EventKind identifies a discrete input event.
type EventKind int

const (
	// EventNone is an unrecognized input; applying it changes nothing.
	EventNone EventKind = iota
	// EventCancel covers quit, escape and the cancel chord.
	EventCancel
	// EventBackspace removes the last rune of the query.
	EventBackspace
	// EventInsert appends Event.Text to the query.
	EventInsert
	// EventMoveUp moves the selection one row up.
	EventMoveUp
	// EventMoveDown moves the selection one row down.
	EventMoveDown
	// EventComplete copies the selected row into the query.
	EventComplete
	// EventConfirm accepts the selected row.
	EventConfirm
)

var eventNames = map[EventKind]string{
	EventNone:      "none",
	EventCancel:    "cancel",
	EventBackspace: "backspace",
	EventInsert:    "insert",
	EventMoveUp:    "move_up",
	EventMoveDown:  "move_down",
	EventComplete:  "complete",
	EventConfirm:   "confirm",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one input event. Text is only used by EventInsert.
type Event struct {
	Kind EventKind
	Text string
}

// Insert returns an event that appends text to the query.
func Insert(text string) Event {
	return Event{Kind: EventInsert, Text: text}
}

// Cancel, Backspace, MoveUp, MoveDown, Complete and Confirm are the events
// that carry no payload.
var (
	Cancel    = Event{Kind: EventCancel}
	Backspace = Event{Kind: EventBackspace}
	MoveUp    = Event{Kind: EventMoveUp}
	MoveDown  = Event{Kind: EventMoveDown}
	Complete  = Event{Kind: EventComplete}
	Confirm   = Event{Kind: EventConfirm}
)
