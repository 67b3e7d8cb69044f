package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fyrsmithlabs/projectdeck/internal/controller"
	"github.com/fyrsmithlabs/projectdeck/internal/notify"
	"github.com/fyrsmithlabs/projectdeck/internal/project"
	"github.com/fyrsmithlabs/projectdeck/internal/render"
)

const (
	sparklineWidth  = 30
	sparklineHeight = 3
	historySize     = 30
)

// Operations is the controller surface the view drives.
type Operations interface {
	Load(ctx context.Context) controller.Outcome
	Create(ctx context.Context, command string) controller.Outcome
	Edit(ctx context.Context, id project.ID, command string) controller.Outcome
	Delete(ctx context.Context, id project.ID, confirm controller.Confirmer) controller.Outcome
	OpenCreate()
	CloseCreate()
	OpenEdit(id project.ID) error
	CloseEdit()
	Loading() bool
}

// Notices reports the currently visible notice.
type Notices interface {
	Current() (notify.Notice, bool)
}

type mode int

const (
	modeBrowse mode = iota
	modeCreate
	modeEdit
	modeConfirmDelete
)

// Model is the bubbletea model of the live view.
type Model struct {
	ops      Operations
	notices  Notices
	feed     *Feed
	interval time.Duration
	server   string

	view       render.View
	received   bool
	lastUpdate time.Time
	history    []float64
	selected   int

	mode       mode
	target     render.Row
	input      textinput.Model
	submitting bool
	loading    bool
	quitting   bool

	spinner    spinner.Model
	completion progress.Model
}

// NewModel creates the live view. server is only displayed.
func NewModel(ops Operations, notices Notices, feed *Feed, server string, interval time.Duration) Model {
	input := textinput.New()
	input.Placeholder = "Describe the project"
	input.CharLimit = 2000
	input.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = warningStyle

	return Model{
		ops:      ops,
		notices:  notices,
		feed:     feed,
		interval: interval,
		server:   server,
		history:  make([]float64, 0, historySize),
		input:    input,
		spinner:  sp,
		completion: progress.New(
			progress.WithGradient("#ff0000", "#00ff00"),
			progress.WithWidth(40),
		),
	}
}

// Message types
type tickMsg time.Time

type opDoneMsg struct {
	op      string
	outcome controller.Outcome
}

// Init starts the feed, the first load and the refresh timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.feed.wait(),
		m.load(),
		tick(m.interval),
		m.spinner.Tick,
	)
}

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) load() tea.Cmd {
	ops := m.ops
	return func() tea.Msg {
		return opDoneMsg{op: controller.OpList, outcome: ops.Load(context.Background())}
	}
}

func (m Model) create(command string) tea.Cmd {
	ops := m.ops
	return func() tea.Msg {
		return opDoneMsg{op: controller.OpCreate, outcome: ops.Create(context.Background(), command)}
	}
}

func (m Model) edit(id project.ID, command string) tea.Cmd {
	ops := m.ops
	return func() tea.Msg {
		return opDoneMsg{op: controller.OpEdit, outcome: ops.Edit(context.Background(), id, command)}
	}
}

func (m Model) remove(id project.ID, confirmed bool) tea.Cmd {
	ops := m.ops
	return func() tea.Msg {
		outcome := ops.Delete(context.Background(), id, controller.Confirmed(confirmed))
		return opDoneMsg{op: controller.OpDelete, outcome: outcome}
	}
}

// appendToHistory appends a value, keeping at most historySize points.
func appendToHistory(history []float64, value float64) []float64 {
	history = append(history, value)
	if len(history) > historySize {
		history = history[1:]
	}
	return history
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case viewMsg:
		m.view = render.View(msg)
		m.received = true
		m.lastUpdate = time.Now()
		m.history = appendToHistory(m.history, float64(m.view.Counters.Total))
		m.clampSelection()
		return m, m.feed.wait()

	case tickMsg:
		m.loading = true
		return m, tea.Batch(tick(m.interval), m.load())

	case opDoneMsg:
		return m.handleDone(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	if msg.op == controller.OpList {
		m.loading = m.ops.Loading()
		return m, nil
	}

	m.submitting = false
	switch m.mode {
	case modeCreate, modeEdit:
		if msg.outcome == controller.OutcomeSucceeded {
			m.closeForm()
		}
	case modeConfirmDelete:
		m.mode = modeBrowse
		m.target = render.Row{}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.mode {
	case modeCreate, modeEdit:
		return m.handleFormKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "r":
		m.loading = true
		return m, m.load()
	case "j", "down":
		m.selected++
		m.clampSelection()
	case "k", "up":
		m.selected--
		m.clampSelection()
	case "n":
		m.ops.OpenCreate()
		m.mode = modeCreate
		m.input.Reset()
		m.input.Placeholder = "Describe the project you want to build"
		return m, m.input.Focus()
	case "e":
		row, ok := m.selectedRow()
		if !ok || !row.CanEdit {
			return m, nil
		}
		if err := m.ops.OpenEdit(row.ID); err != nil {
			return m, nil
		}
		m.mode = modeEdit
		m.target = row
		m.input.Reset()
		m.input.Placeholder = "Describe the changes"
		return m, m.input.Focus()
	case "d":
		row, ok := m.selectedRow()
		if !ok || !row.CanDelete {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.target = row
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeForm()
		return m, nil
	case tea.KeyEnter:
		if m.submitting {
			return m, nil
		}
		command := m.input.Value()
		m.submitting = true
		if m.mode == modeCreate {
			return m, m.create(command)
		}
		return m, m.edit(m.target.ID, command)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.submitting {
			return m, nil
		}
		m.submitting = true
		return m, m.remove(m.target.ID, true)
	case "n", "N", "esc":
		id := m.target.ID
		m.mode = modeBrowse
		m.target = render.Row{}
		return m, m.remove(id, false)
	}
	return m, nil
}

func (m *Model) closeForm() {
	if m.mode == modeCreate {
		m.ops.CloseCreate()
	} else if m.mode == modeEdit {
		m.ops.CloseEdit()
	}
	m.mode = modeBrowse
	m.target = render.Row{}
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.view.Rows) {
		m.selected = len(m.view.Rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) selectedRow() (render.Row, bool) {
	if m.selected < 0 || m.selected >= len(m.view.Rows) {
		return render.Row{}, false
	}
	return m.view.Rows[m.selected], true
}

// Run starts the live view on the terminal and blocks until it quits.
func Run(m Model, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
