package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/prun/internal/candidates"
	"github.com/oakwood-commons/prun/internal/layout"
	"github.com/oakwood-commons/prun/internal/placement"
	"github.com/oakwood-commons/prun/internal/render"
	"github.com/oakwood-commons/prun/internal/session"
	"github.com/oakwood-commons/prun/pkg/settings"
)

// Model is the Bubble Tea model for one menu session.
type Model struct {
	Menu    settings.Menu
	Keys    KeyMap
	NoColor bool

	session  *session.Session
	metrics  layout.Metrics
	displays terminalDisplays
	log      logr.Logger

	focused bool
	pos     placement.Position
	hidden  bool
	// handedOff is set once the window was moved to the target display.
	handedOff bool
}

// NewModel builds a model over the candidate set.
func NewModel(menu settings.Menu, set *candidates.Set, log logr.Logger) *Model {
	return &Model{
		Menu:    menu,
		Keys:    DefaultKeyMap(),
		session: session.New(set),
		metrics: render.CellMetrics{},
		log:     log,
		pos:     placement.DefaultPosition,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.displays.resize(msg.Width, msg.Height)
		m.place()
		return m, nil

	case tea.FocusMsg:
		m.focused = true
		return m, nil

	case tea.BlurMsg:
		m.focused = false
		return m, nil

	case tea.PasteMsg:
		text := strings.NewReplacer("\r", "", "\n", "").Replace(msg.Content)
		return m, m.apply(session.Insert(text))

	case tea.KeyPressMsg:
		// A key press proves the terminal has our focus even when it does not
		// report focus events.
		m.focused = true
		return m, m.apply(m.Keys.Event(msg))
	}
	return m, nil
}

func (m *Model) apply(ev session.Event) tea.Cmd {
	if m.session.Done() {
		return nil
	}
	st := m.session.Handle(ev)
	if ev.Kind != session.EventNone {
		m.log.V(2).Info("event", "kind", ev.Kind.String(), "query", st.Query, "matches", len(st.Filtered), "selection", st.Selection)
	}
	if !st.Status.Terminal() {
		return nil
	}
	m.finish(st)
	return tea.Quit
}

func (m *Model) finish(st session.State) {
	target, ok := m.Menu.TargetDisplay()
	moved, err := placement.Handoff(m, st.Status == session.Confirmed, target, ok, &m.displays)
	if err != nil {
		m.log.V(1).Info("handoff skipped", "error", err.Error())
	}
	m.handedOff = moved
	m.log.V(1).Info("session finished", "status", st.Status.String(), "handoff", moved)
}

// place recomputes the window position from the current display geometry.
func (m *Model) place() {
	target, ok := m.Menu.TargetDisplay()
	w, h := m.WindowSize()
	pos, err := placement.Place(target, ok, w, h, &m.displays)
	if err != nil {
		m.log.V(1).Info("placement fell back to default", "error", err.Error())
	}
	m.pos = pos
}

// Move and Hide let the model act as the window during handoff.
func (m *Model) Move(x, y int) {
	m.pos = placement.Position{X: x, Y: y, Display: m.pos.Display}
}

func (m *Model) Hide() {
	m.hidden = true
}

// WindowSize is the menu's size in cells.
func (m *Model) WindowSize() (int, int) {
	return layout.WindowSize(m.Menu, m.metrics)
}

// State returns the session state.
func (m *Model) State() session.State {
	return m.session.State()
}

// Outcome returns the confirmed text, if any.
func (m *Model) Outcome() (string, bool) {
	return m.session.State().Outcome()
}

// Done reports whether the session has ended.
func (m *Model) Done() bool {
	return m.session.Done()
}

// Frame renders the menu window on its own, without placement.
func (m *Model) Frame() string {
	st := m.session.State()
	w, h := m.WindowSize()
	ins := layout.Compute(layout.Frame{
		Menu:      m.Menu,
		Metrics:   m.metrics,
		Query:     st.Query,
		Filtered:  st.Filtered,
		Selection: st.Selection,
		Window:    st.Window(m.Menu.Rows),
		Focused:   m.focused,
	})
	return render.Rasterize(ins, w, h, m.NoColor)
}

// Screen renders the full terminal contents: the frame at its placement.
func (m *Model) Screen() string {
	if m.hidden {
		return ""
	}
	frame := m.Frame()
	if !m.displays.ready {
		return frame
	}
	if m.pos.Default {
		return lipgloss.Place(m.displays.width, m.displays.height, lipgloss.Center, lipgloss.Center, frame)
	}
	return lipgloss.NewStyle().
		MarginLeft(max(0, m.pos.X)).
		MarginTop(max(0, m.pos.Y)).
		Render(frame)
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.Screen())
	v.AltScreen = true
	v.ReportFocus = true
	v.WindowTitle = settings.CliBinaryName
	return v
}
