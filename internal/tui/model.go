package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"medichat/internal/domain"
)

// AssistantPort is the TUI-facing subset of the session orchestrator.
type AssistantPort interface {
	ProcessPaths(paths []string) (string, error)
	Ask(question string) (domain.ConversationTurn, error)
	History() []domain.ConversationTurn
	Ready() bool
}

// processedMsg reports the outcome of a "process documents" run.
type processedMsg struct {
	summary string
	err     error
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	service    AssistantPort
	paths      []string
	input      textinput.Model
	viewport   viewport.Model
	summary    string
	status     string
	sized      bool
	processing bool
}

// New creates the chat TUI. The given paths are processed on startup;
// with no paths the session starts empty and chat shows the not-ready
// notice until Ctrl+R is pressed with files available.
func New(service AssistantPort, paths []string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your medical documents..."
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		service:  service,
		paths:    paths,
		input:    ti,
		viewport: vp,
		status:   "Starting...",
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if len(m.paths) > 0 {
		cmds = append(cmds, m.processCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) processCmd() tea.Cmd {
	return func() tea.Msg {
		summary, err := m.service.ProcessPaths(m.paths)
		return processedMsg{summary: summary, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.sized = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + summary, status, input frame, spacer
		vh := msg.Height - reserved - ch
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil

	case processedMsg:
		m.processing = false
		if msg.err != nil {
			if errors.Is(msg.err, domain.ErrEmptyCorpus) {
				m.status = "No text could be extracted from your documents. Check the files and try again."
			} else {
				m.status = "Processing failed: " + msg.err.Error()
			}
			return m, nil
		}
		m.summary = msg.summary
		m.status = "Documents processed successfully! Ask away."
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				break
			}
			m.input.Reset()
			if m.processing {
				m.status = "Still processing documents..."
				return m, nil
			}
			m.status = "Searching documents..."
			turn, err := m.service.Ask(q)
			if err != nil {
				m.status = "Error: " + err.Error()
			} else if turn.Content == domain.NotReadyNotice {
				m.status = "Process documents first (Ctrl+R)."
			} else {
				m.status = "Answered at " + turn.Timestamp
			}
			m.viewport.SetContent(m.renderHistory())
			m.viewport.GotoBottom()
			return m, nil
		case "ctrl+r":
			if m.processing {
				return m, nil
			}
			m.processing = true
			m.status = "Processing your medical documents..."
			return m, m.processCmd()
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		case "pgup":
			m.viewport.HalfViewUp()
			return m, nil
		case "pgdown":
			m.viewport.HalfViewDown()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.sized {
		return "Loading..."
	}
	header := headerStyle.Render("MediChat - Medical Document Assistant")
	summary := summaryStyle.Render(m.summary)
	chat := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + summary + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) renderHistory() string {
	turns := m.service.History()
	if len(turns) == 0 {
		return "Upload paths are processed on startup; Ctrl+R re-processes.\nType a question and press Enter."
	}
	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := userLabelStyle.Render("You")
		if turn.Role == domain.RoleAssistant {
			label = assistantLabelStyle.Render("MediChat")
		}
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(timestampStyle.Render(turn.Timestamp))
		b.WriteString("\n")
		b.WriteString(turn.Content)
	}
	return b.String()
}

var (
	headerStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	summaryStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	chatBoxStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	timestampStyle      = lipgloss.NewStyle().Faint(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
