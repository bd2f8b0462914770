// Package tui is the terminal reference client: a language selection screen
// and a chat view rendering the orchestrator's conversation, mood and
// recording/speaking indicators.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	orchestration "github.com/chatwithcat/companion-core/core"
	"github.com/chatwithcat/companion-core/core/dialogue"
	"github.com/chatwithcat/companion-core/core/sounds"
	"github.com/chatwithcat/companion-core/internal/prefs"
	"github.com/chatwithcat/companion-core/internal/translate"
)

type view int

const (
	viewSelection view = iota
	viewChat
)

// Messages sent into the program by the orchestrator's callbacks.
type (
	// ConversationUpdated signals that the transcript should be re-read.
	ConversationUpdated struct{}
	// MoodUpdated carries the companion's new mood.
	MoodUpdated struct{ Mood string }
	// SpeakingUpdated carries the audible playback state.
	SpeakingUpdated struct{ IsSpeaking bool }
	// RecordingUpdated carries the recording indicator state.
	RecordingUpdated struct{ IsRecording bool }

	recordingStopped struct{ err error }
	startFailed      struct{ err error }
)

// Config wires the model to its collaborators.
type Config struct {
	// Start builds and starts an orchestrator for the chosen conversation
	// language. Called once, either immediately when Language is set or after
	// the selection screen.
	Start func(language dialogue.Language) (*orchestration.Orchestrator, error)

	Prefs *prefs.Store

	// Language skips the selection screen when already valid.
	Language    dialogue.Language
	HasLanguage bool
}

type Model struct {
	config       Config
	orchestrator *orchestration.Orchestrator

	view      view
	languages []dialogue.Language
	cursor    int

	input    textinput.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	mood      dialogue.Mood
	recording bool
	speaking  bool
	status    string
	err       error
}

func New(config Config) Model {
	input := textinput.New()
	input.Placeholder = translate.Phrase("sendMessage", config.Prefs.Get().NativeLanguage)
	input.Focus()
	input.CharLimit = 500

	m := Model{
		config:    config,
		view:      viewSelection,
		languages: dialogue.Languages(),
		input:     input,
		mood:      dialogue.MoodHappy,
	}

	if config.HasLanguage {
		m.view = viewChat
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.config.HasLanguage {
		cmds = append(cmds, m.startSession(m.config.Language))
	}
	return tea.Batch(cmds...)
}

// startSession builds the orchestrator off the UI loop.
func (m Model) startSession(language dialogue.Language) tea.Cmd {
	return func() tea.Msg {
		orchestrator, err := m.config.Start(language)
		if err != nil {
			return startFailed{err: err}
		}
		return sessionStarted{orchestrator: orchestrator}
	}
}

type sessionStarted struct {
	orchestrator *orchestration.Orchestrator
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.view {
		case viewSelection:
			return m.updateSelection(msg)
		case viewChat:
			if model, cmd, handled := m.updateChatKeys(msg); handled {
				return model, cmd
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		chromeHeight := 8
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, msg.Height-chromeHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = msg.Height - chromeHeight
		}
		m.input.Width = msg.Width - 8
		m.refreshTranscript()

	case sessionStarted:
		m.orchestrator = msg.orchestrator
		m.mood = m.orchestrator.CurrentMood()
		if m.config.Prefs.Get().SoundEffectsEnabled {
			m.orchestrator.PlayCue(sounds.Door(m.orchestrator.SinkEncoding()))
		}
		m.refreshTranscript()

	case startFailed:
		m.err = msg.err
		m.status = msg.err.Error()

	case ConversationUpdated:
		m.refreshTranscript()

	case MoodUpdated:
		m.mood = dialogue.Mood(msg.Mood)

	case SpeakingUpdated:
		m.speaking = msg.IsSpeaking

	case RecordingUpdated:
		m.recording = msg.IsRecording

	case recordingStopped:
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		m.refreshTranscript()
	}

	if m.view == viewChat {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)

		if m.ready {
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.languages)-1 {
			m.cursor++
		}

	case "enter":
		language := m.languages[m.cursor]
		m.view = viewChat
		return m, m.startSession(language)
	}
	return m, nil
}

func (m Model) updateChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true

	case "enter":
		if m.orchestrator == nil {
			return m, nil, true
		}
		prompt := strings.TrimSpace(m.input.Value())
		if prompt == "" {
			return m, nil, true
		}
		m.input.Reset()
		m.orchestrator.SendPrompt(prompt)
		m.refreshTranscript()
		return m, nil, true

	case "ctrl+r":
		return m, m.toggleRecording(), true

	case "esc":
		if m.orchestrator != nil {
			m.orchestrator.CancelTurn()
		}
		return m, nil, true

	case "ctrl+up", "ctrl+down":
		delta := 0.1
		if msg.String() == "ctrl+down" {
			delta = -0.1
		}
		if err := m.config.Prefs.Update(func(p *prefs.Preferences) {
			p.SpeechSpeed += delta
		}); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("Speech speed: %.1fx", m.config.Prefs.Get().SpeechSpeed)
		}
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) toggleRecording() tea.Cmd {
	orchestrator := m.orchestrator
	if orchestrator == nil {
		return nil
	}

	if orchestrator.IsRecording() {
		// Stop blocks on transcription, keep it off the UI loop.
		return func() tea.Msg {
			return recordingStopped{err: orchestrator.StopRecording()}
		}
	}
	return func() tea.Msg {
		if err := orchestrator.StartRecording(); err != nil {
			return recordingStopped{err: err}
		}
		return nil
	}
}

func (m *Model) refreshTranscript() {
	if m.orchestrator == nil || !m.ready {
		return
	}

	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	var b strings.Builder

	wrapWidth := m.viewport.Width - 8
	if wrapWidth < 10 {
		wrapWidth = 10
	}

	for _, message := range m.orchestrator.VisibleConversation() {
		content := wordwrap.String(message.Content, wrapWidth)
		switch message.Role {
		case dialogue.RoleUser:
			b.WriteString(userStyle().Render(content) + "\n\n")
		case dialogue.RoleAssistant:
			b.WriteString(catStyle(m.mood).Render(content) + "\n\n")
		}
	}
	return b.String()
}

func (m Model) View() string {
	switch m.view {
	case viewSelection:
		return m.viewSelectionScreen()
	default:
		return m.viewChatScreen()
	}
}

func (m Model) viewSelectionScreen() string {
	labels := []string{
		translate.Phrase("chatInFrench", m.uiLanguage()),
		translate.Phrase("chatInEnglish", m.uiLanguage()),
		translate.Phrase("chatInSpanish", m.uiLanguage()),
	}

	var b strings.Builder
	b.WriteString("\n" + titleStyle().Render("Chat With Cat") + "\n\n")
	for i, language := range m.languages {
		label := string(language)
		if i < len(labels) {
			label = labels[i]
		}
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(selectionStyle(i == m.cursor).Render(cursor+label) + "\n")
	}
	b.WriteString("\n" + statusStyle(m.width).Render("enter: choose   q: quit"))
	return b.String()
}

func (m Model) viewChatScreen() string {
	if !m.ready {
		return translate.Phrase("loading", m.uiLanguage())
	}

	header := lipgloss.NewStyle().
		Foreground(moodColor(m.mood)).
		Bold(true).
		Padding(0, 2).
		Render(moodFace(m.mood) + "  " + string(m.mood))

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(inputStyle(m.width).Render(m.input.View()) + "\n")
	b.WriteString(statusStyle(m.width).Render(m.statusLine()))
	return b.String()
}

func (m Model) statusLine() string {
	switch {
	case m.recording:
		return translate.Phrase("recording", m.uiLanguage())
	case m.speaking:
		return translate.Phrase("catSpeaking", m.uiLanguage())
	case m.status != "":
		return m.status
	default:
		return "enter: send   ctrl+r: record   esc: cancel   ctrl+c: quit"
	}
}

func (m Model) uiLanguage() string {
	return m.config.Prefs.Get().NativeLanguage
}
