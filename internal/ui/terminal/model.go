package terminal

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"sgsd/internal/core/controller"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Toggler is the part of the Controller the terminal host drives.
type Toggler interface {
	Toggle(ctx context.Context) (controller.Status, error)
}

type displayMsg string

type runningMsg bool

type eventMsg controller.Event

type toggledMsg struct {
	status controller.Status
	err    error
}

var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(1, 4)
	labelStyle  = lipgloss.NewStyle().Bold(true)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type model struct {
	toggler     Toggler
	text        string
	running     bool
	completions int
	notice      string
	err         error
}

// NewModel returns the bubbletea model showing text until the first update.
func NewModel(toggler Toggler, text string) tea.Model {
	return model{toggler: toggler, text: text}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ", "enter":
			return m, toggle(m.toggler)
		}
	case displayMsg:
		m.text = string(msg)
	case runningMsg:
		m.running = bool(msg)
	case toggledMsg:
		m.err = msg.err
		if msg.err == nil {
			m.running = msg.status.Running
			m.text = msg.status.Text
		}
	case eventMsg:
		m = m.applyEvent(controller.Event(msg))
	}
	return m, nil
}

func (m model) applyEvent(event controller.Event) model {
	switch event.Type {
	case controller.EventStarted:
		m.running = true
		m.notice = ""
	case controller.EventStopped:
		m.running = false
	case controller.EventCompleted:
		m.running = false
		m.completions++
		m.notice = "Time is up!"
	case controller.EventNotifyFailed:
		m.notice = fmt.Sprintf("Time is up! (notification failed: %s)", event.Message)
	}
	return m
}

func (m model) View() string {
	var body strings.Builder
	body.WriteString(labelStyle.Render(m.text))
	body.WriteString("\n\n")
	if m.running {
		body.WriteString("space: stop")
	} else {
		body.WriteString("space: start")
	}
	body.WriteString("  q: quit")
	if m.completions > 0 {
		body.WriteString(fmt.Sprintf("\ncompleted: %d", m.completions))
	}
	if m.notice != "" {
		body.WriteString("\n" + noticeStyle.Render(m.notice))
	}
	if m.err != nil {
		body.WriteString("\n" + errorStyle.Render(m.err.Error()))
	}
	return frameStyle.Render(body.String()) + "\n"
}

// toggle runs off the update loop since the Controller calls back into the
// program while handling the request.
func toggle(toggler Toggler) tea.Cmd {
	return func() tea.Msg {
		status, err := toggler.Toggle(context.Background())
		return toggledMsg{status: status, err: err}
	}
}

// Display forwards Controller output to a running program.
type Display struct {
	mu      sync.Mutex
	program *tea.Program
}

var _ controller.RunningDisplay = (*Display)(nil)

// Attach sets the program receiving updates. Updates before Attach are dropped.
func (display *Display) Attach(program *tea.Program) {
	display.mu.Lock()
	defer display.mu.Unlock()
	display.program = program
}

func (display *Display) SetDisplayText(text string) {
	display.send(displayMsg(text))
}

func (display *Display) SetRunning(running bool) {
	display.send(runningMsg(running))
}

// Forward relays controller events to the program until events is closed.
func (display *Display) Forward(events <-chan controller.Event) {
	for event := range events {
		display.send(eventMsg(event))
	}
}

func (display *Display) send(msg tea.Msg) {
	display.mu.Lock()
	program := display.program
	display.mu.Unlock()
	if program != nil {
		program.Send(msg)
	}
}
