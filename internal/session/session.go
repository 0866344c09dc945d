// Package session implements the menu's interaction state machine.
//
// Apply is a pure transition from one State to the next. Whenever a transition
// changes the query, the filtered list is rebuilt from the candidate set and
// the selection returns to the first row. Session wraps both steps for callers
// that just want to feed events in order.
package session

import (
	"unicode/utf8"

	"github.com/oakwood-commons/prun/internal/candidates"
	"github.com/oakwood-commons/prun/internal/filter"
	"github.com/oakwood-commons/prun/internal/viewport"
)

// Status is the lifecycle state of a session.
type Status int

const (
	// Running accepts further events.
	Running Status = iota
	// Cancelled ended without a selection.
	Cancelled
	// Confirmed ended with State.Query as the selection.
	Confirmed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Cancelled:
		return "cancelled"
	case Confirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further events are accepted.
func (s Status) Terminal() bool {
	return s == Cancelled || s == Confirmed
}

// State is everything the menu shows and edits.
type State struct {
	Query     string
	Filtered  []string
	Selection int
	Status    Status
}

// Initial returns the state of a fresh session over set.
func Initial(set *candidates.Set) State {
	return State{Filtered: set.Items(), Status: Running}
}

// Outcome returns the confirmed text. ok is false unless the session was
// confirmed.
func (st State) Outcome() (text string, ok bool) {
	if st.Status != Confirmed {
		return "", false
	}
	return st.Query, true
}

// Selected returns the highlighted row, if any.
func (st State) Selected() (string, bool) {
	if len(st.Filtered) == 0 {
		return "", false
	}
	return st.Filtered[viewport.Clamp(st.Selection, len(st.Filtered))], true
}

// Window returns the visible rows for a menu of the given height.
func (st State) Window(rows int) viewport.Window {
	return viewport.Recenter(len(st.Filtered), rows, st.Selection)
}

// Apply returns the state after ev. requery is true when the query changed and
// the filtered list must be rebuilt with Refilter. st itself is not modified.
func Apply(st State, ev Event) (next State, requery bool) {
	next = st
	if st.Status.Terminal() {
		return next, false
	}

	switch ev.Kind {
	case EventCancel:
		next.Query = ""
		next.Status = Cancelled
	case EventBackspace:
		if st.Query == "" {
			return next, false
		}
		_, size := utf8.DecodeLastRuneInString(st.Query)
		next.Query = st.Query[:len(st.Query)-size]
		return next, true
	case EventInsert:
		if ev.Text == "" {
			return next, false
		}
		next.Query = st.Query + ev.Text
		return next, true
	case EventMoveDown:
		if st.Selection < len(st.Filtered)-1 {
			next.Selection = st.Selection + 1
		}
	case EventMoveUp:
		if st.Selection > 0 {
			next.Selection = st.Selection - 1
		}
	case EventComplete:
		selected, ok := st.Selected()
		if !ok {
			return next, false
		}
		next.Query = selected
		return next, true
	case EventConfirm:
		selected, ok := st.Selected()
		if !ok {
			return next, false
		}
		next.Query = selected
		next.Status = Confirmed
	}
	return next, false
}

// Refilter rebuilds the filtered list for the current query and resets the
// selection to the first row.
func (st State) Refilter(set *candidates.Set) State {
	st.Filtered = filter.Filter(set.Items(), st.Query)
	st.Selection = 0
	return st
}

// Session owns the state of one menu run.
type Session struct {
	set   *candidates.Set
	state State
}

// New starts a session over set.
func New(set *candidates.Set) *Session {
	return &Session{set: set, state: Initial(set)}
}

// Handle applies ev and rebuilds derived state. It returns the new state.
func (s *Session) Handle(ev Event) State {
	next, requery := Apply(s.state, ev)
	if requery {
		next = next.Refilter(s.set)
	}
	s.state = next
	return next
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Done reports whether the session reached a terminal status.
func (s *Session) Done() bool {
	return s.state.Status.Terminal()
}

// Candidates returns the number of candidates the session was built from.
func (s *Session) Candidates() int {
	return s.set.Len()
}
