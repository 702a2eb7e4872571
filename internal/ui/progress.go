package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"plcst/internal/driver"
)

// maxRows limits the unit list; finished units scroll away first.
const maxRows = 12

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []unitItem
	index   map[string]int
	counts  map[driver.EventStatus]int
	width   int
	done    bool
}

type unitItem struct {
	id     string
	status driver.EventStatus
	stage  driver.Stage
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders walk progress.
// Units appear as they are queued; the model quits when events is closed.
func NewProgressModel(title string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		index:   make(map[string]int),
		counts:  make(map[driver.EventStatus]int),
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.visible() {
		label := statusLabel(item)
		line := fmt.Sprintf("  %s %s", styleStatus(item.status).Render(fmt.Sprintf("%12s", label)), truncate(item.id, nameWidth))
		b.WriteString(line)
		b.WriteString("\n")
	}
	if hidden := len(m.items) - len(m.visible()); hidden > 0 {
		fmt.Fprintf(&b, "  %12s %d more\n", "", hidden)
	}

	b.WriteString("\n")
	b.WriteString(m.totals())
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

// visible keeps failed and running units and fills the rest with the most
// recent ones.
func (m *progressModel) visible() []unitItem {
	if len(m.items) <= maxRows {
		return m.items
	}
	keep := make([]bool, len(m.items))
	n := 0
	for i, it := range m.items {
		if n < maxRows && (it.status == driver.UnitFailed || it.status == driver.UnitStarted) {
			keep[i] = true
			n++
		}
	}
	for i := len(m.items) - 1; i >= 0 && n < maxRows; i-- {
		if !keep[i] {
			keep[i] = true
			n++
		}
	}
	out := make([]unitItem, 0, maxRows)
	for i, it := range m.items {
		if keep[i] {
			out = append(out, it)
		}
	}
	return out
}

func (m *progressModel) totals() string {
	parts := []string{fmt.Sprintf("%d units", len(m.items))}
	for _, s := range []driver.EventStatus{driver.UnitDone, driver.UnitCached, driver.UnitFailed} {
		if n := m.counts[s]; n > 0 {
			parts = append(parts, styleStatus(s).Render(fmt.Sprintf("%d %s", n, s)))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.Identifier]
	if !ok {
		idx = len(m.items)
		m.index[ev.Identifier] = idx
		m.items = append(m.items, unitItem{id: ev.Identifier})
	}
	item := &m.items[idx]
	if finished(item.status) {
		m.counts[item.status]--
	}
	item.status = ev.Status
	item.stage = ev.Stage
	if finished(item.status) {
		m.counts[item.status]++
	}

	total := 0.0
	for _, it := range m.items {
		total += progressFromStatus(it.status)
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

func finished(s driver.EventStatus) bool {
	return s == driver.UnitDone || s == driver.UnitFailed || s == driver.UnitCached
}

func progressFromStatus(s driver.EventStatus) float64 {
	switch s {
	case driver.UnitStarted:
		return 0.5
	case driver.UnitDone, driver.UnitFailed, driver.UnitCached:
		return 1.0
	default:
		return 0.0
	}
}

func statusLabel(it unitItem) string {
	switch it.status {
	case driver.UnitStarted:
		return "parsing"
	case driver.UnitFailed:
		if it.stage != "" {
			return "failed:" + string(it.stage)
		}
		return "failed"
	default:
		return it.status.String()
	}
}

func styleStatus(s driver.EventStatus) lipgloss.Style {
	switch s {
	case driver.UnitDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case driver.UnitCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	case driver.UnitFailed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case driver.UnitStarted:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	// хвост "..." входит в width
	return runewidth.Truncate(value, width, "...")
}
