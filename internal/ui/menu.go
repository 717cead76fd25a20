// Package ui provides the interactive task menu.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/metalagman/tasker/internal/output"
	"github.com/metalagman/tasker/internal/task"
	"github.com/rs/zerolog/log"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle  = lipgloss.NewStyle().Faint(true)
)

type mode int

const (
	modeMenu mode = iota
	modeAdd
	modeComplete
	modeDelete
)

var prompts = map[mode]string{
	modeAdd:      "Enter task description: ",
	modeComplete: "Which task did you complete? (ID): ",
	modeDelete:   "Which task do you want to delete? (ID): ",
}

// Model is the bubbletea model behind the menu.
type Model struct {
	ctx     context.Context
	store   *task.Store
	mode    mode
	input   textinput.Model
	message string
	failed  bool
	done    bool
}

// New returns a menu operating on store.
func New(ctx context.Context, store *task.Store) Model {
	in := textinput.New()
	in.CharLimit = 500
	return Model{ctx: ctx, store: store, input: in}
}

// Run shows the menu until the user exits.
func Run(ctx context.Context, store *task.Store, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(ctx, store), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run menu: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == modeMenu {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	if key.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.mode == modeMenu {
		return m.updateMenu(key)
	}
	return m.updatePrompt(key)
}

func (m Model) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "1":
		return m.prompt(modeAdd)
	case "2":
		var b strings.Builder
		_ = output.WriteList(&b, m.store.List())
		m.setMessage(strings.TrimRight(b.String(), "\n"), false)
	case "3":
		return m.prompt(modeComplete)
	case "4":
		return m.prompt(modeDelete)
	case "5", "q", "esc":
		return m.quit()
	default:
		m.setMessage("Invalid option. Try again.", true)
	}
	return m, nil
}

func (m Model) updatePrompt(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.mode = modeMenu
		m.input.Blur()
		m.setMessage("", false)
		return m, nil
	case tea.KeyEnter:
		value := m.input.Value()
		submitted := m.mode
		m.mode = modeMenu
		m.input.Blur()
		m.input.Reset()
		m.submit(submitted, value)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m Model) prompt(next mode) (tea.Model, tea.Cmd) {
	m.mode = next
	m.input.Reset()
	m.input.Prompt = prompts[next]
	m.setMessage("", false)
	return m, m.input.Focus()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.done = true
	m.setMessage("Goodbye!", false)
	return m, tea.Quit
}

func (m *Model) submit(action mode, value string) {
	switch action {
	case modeAdd:
		if _, err := m.store.Add(m.ctx, value); err != nil {
			m.fail(err)
			return
		}
		m.setMessage("Task added!", false)
	case modeComplete:
		id, err := task.ParseID(value)
		if err != nil {
			m.setMessage("Invalid number. Please try again.", true)
			return
		}
		t, err := m.store.Complete(m.ctx, id)
		if err != nil {
			m.failID(id, err)
			return
		}
		m.setMessage("Task completed: "+t.String(), false)
	case modeDelete:
		id, err := task.ParseID(value)
		if err != nil {
			m.setMessage("Invalid number. Please try again.", true)
			return
		}
		t, err := m.store.Delete(m.ctx, id)
		if err != nil {
			m.failID(id, err)
			return
		}
		m.setMessage(fmt.Sprintf("Task '%s' deleted.", t.Description), false)
	}
}

func (m *Model) failID(id int64, err error) {
	if errors.Is(err, task.ErrNotFound) {
		m.setMessage(fmt.Sprintf("Task with ID %d not found.", id), true)
		return
	}
	m.fail(err)
}

func (m *Model) fail(err error) {
	if errors.Is(err, task.ErrInvalidInput) {
		m.setMessage("Description cannot be empty.", true)
		return
	}
	log.Error().Err(err).Msg("menu action failed")
	m.setMessage("Error: "+err.Error(), true)
}

func (m *Model) setMessage(msg string, failed bool) {
	m.message = msg
	m.failed = failed
}

// Message returns the feedback shown under the menu.
func (m Model) Message() string {
	return m.message
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return m.message + "\n"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("--- Task Manager ---"))
	b.WriteString("\n1. Add Task\n2. View Tasks\n3. Complete Task\n4. Delete Task\n5. Exit\n\n")
	if m.mode != modeMenu {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("enter to confirm, esc to cancel"))
		b.WriteString("\n")
	} else {
		b.WriteString(hintStyle.Render("Choose an option: "))
		b.WriteString("\n")
	}
	if m.message != "" {
		b.WriteString("\n")
		if m.failed {
			b.WriteString(errStyle.Render(m.message))
		} else {
			b.WriteString(m.message)
		}
		b.WriteString("\n")
	}
	return b.String()
}
