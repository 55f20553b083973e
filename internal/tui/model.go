package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quicktube/internal/service"
)

// AskPort is the TUI-facing subset of the service.
type AskPort interface {
	Ask(ctx context.Context, videoURL, question string) (service.AnswerResult, error)
	Summarize(ctx context.Context, videoURL, style string) (service.SummaryResult, error)
}

type entry struct {
	question string
	answer   string
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	service  AskPort
	videoURL string
	videoID  string
	input    textinput.Model
	viewport viewport.Model
	history  []entry
	status   string
	waiting  bool
	ready    bool
}

// New creates a chat model for one video. The opening summary is shown as
// the first exchange.
func New(svc AskPort, videoURL, videoID, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the video, /summary [brief|detailed|bullets], Ctrl+C to quit"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	history := []entry{}
	if summary != "" {
		history = append(history, entry{question: "/summary", answer: summary})
	}
	return Model{
		service:  svc,
		videoURL: videoURL,
		videoID:  videoID,
		input:    ti,
		viewport: vp,
		history:  history,
		status:   "Video " + videoID + " indexed. Ask away.",
	}
}

type answerMsg struct {
	question string
	answer   string
	err      error
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + qh + ch + 1 // header, status, frames, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width-4)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil
	case answerMsg:
		m.waiting = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
		} else {
			m.history = append(m.history, entry{question: msg.question, answer: msg.answer})
			m.status = "Answered."
		}
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" || m.waiting {
				return m, nil
			}
			m.input.SetValue("")
			m.waiting = true
			m.status = "Thinking..."
			return m, m.submit(q)
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(q string) tea.Cmd {
	svc, url := m.service, m.videoURL
	return func() tea.Msg {
		if style, ok := strings.CutPrefix(q, "/summary"); ok {
			res, err := svc.Summarize(context.Background(), url, strings.TrimSpace(style))
			return answerMsg{question: q, answer: res.Summary, err: err}
		}
		res, err := svc.Ask(context.Background(), url, q)
		return answerMsg{question: q, answer: res.Answer, err: err}
	}
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("QuickTube — " + m.videoID)
	chat := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return "No questions yet."
	}
	var b strings.Builder
	for i, e := range m.history {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(questionStyle.Render("You: " + e.question))
		b.WriteString("\n")
		b.WriteString(e.answer)
	}
	return b.String()
}

var (
	chatBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
