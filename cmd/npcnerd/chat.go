// This file implements the interactive chat interface using bubbletea.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"npcnerd/cmd/npcnerd/ui"
	"npcnerd/internal/agent"
)

// chatCmd starts the interactive conversation loop.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the character interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractiveChat()
	},
}

type chatMessage struct {
	speaker string
	content string
	host    bool // dispatch narration rather than character speech
	time    time.Time
}

// Messages for tea updates
type (
	responseMsg chatMessage
	errorMsg    error
)

// chatModel is the main model for the interactive chat interface
type chatModel struct {
	// UI components
	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	styles    ui.Styles

	// State
	history   []chatMessage
	isLoading bool
	err       error
	width     int
	height    int
	ready     bool

	// Backend
	npc    *loadedNPC
	player string
}

// initChat initializes the interactive chat model
func initChat(npc *loadedNPC) chatModel {
	styles := ui.DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Say something... (Enter to send, Ctrl+C to exit)"
	ti.Focus()
	ti.Prompt = "│ "
	ti.CharLimit = 1024
	ti.Width = 80
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.PlayerLine

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)
	vp.SetContent("")

	player := playerName
	if player == "" {
		player = npc.sheet.Player
	}
	if player == "" {
		player = "Player"
	}

	return chatModel{
		textinput: ti,
		viewport:  vp,
		spinner:   sp,
		styles:    styles,
		history:   []chatMessage{},
		npc:       npc,
		player:    player,
	}
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if !m.isLoading {
				return m.handleSubmit()
			}
		}

		if !m.isLoading {
			m.textinput, tiCmd = m.textinput.Update(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 2
		inputHeight := 3

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-headerHeight-footerHeight-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - headerHeight - footerHeight - inputHeight
		}
		m.textinput.Width = msg.Width - 4
		m.viewport.SetContent(m.renderHistory())

	case spinner.TickMsg:
		if m.isLoading {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}

	case responseMsg:
		m.isLoading = false
		m.history = append(m.history, chatMessage(msg))
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil

	case errorMsg:
		m.isLoading = false
		m.err = msg
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

// handleSubmit sends the typed utterance through the cascade.
func (m chatModel) handleSubmit() (tea.Model, tea.Cmd) {
	utterance := strings.TrimSpace(m.textinput.Value())
	if utterance == "" {
		return m, nil
	}

	m.history = append(m.history, chatMessage{
		speaker: m.player,
		content: utterance,
		time:    time.Now(),
	})
	m.textinput.Reset()
	m.isLoading = true
	m.err = nil
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()

	return m, tea.Batch(m.spinner.Tick, m.interact(utterance))
}

// interact runs the cascade off the UI goroutine.
func (m chatModel) interact(utterance string) tea.Cmd {
	npc := m.npc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.GetEngineTimeout())
		defer cancel()

		res, err := npc.agent.Interact(ctx, utterance)
		if err != nil {
			return errorMsg(err)
		}

		msg := chatMessage{speaker: npc.agent.Name(), time: time.Now()}
		switch res.Kind {
		case agent.KindDialogue, agent.KindInventory:
			msg.content = res.Answer
		case agent.KindDispatch:
			msg.content = describeDispatch(npc, res, utterance)
			msg.host = true
		default:
			msg.content = fmt.Sprintf("%s stares at you blankly.", npc.agent.Name())
			msg.host = true
		}
		return responseMsg(msg)
	}
}

func (m chatModel) renderHistory() string {
	var b strings.Builder
	for _, msg := range m.history {
		if msg.host {
			b.WriteString(m.styles.Dispatch.Render(msg.content))
		} else if msg.speaker == m.player {
			b.WriteString(m.styles.PlayerLine.Render(msg.speaker+": ") + msg.content)
		} else {
			b.WriteString(m.styles.NPCName.Render(msg.speaker+": ") + m.styles.NPCLine.Render(msg.content))
		}
		b.WriteString("\n\n")
	}
	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: "+m.err.Error()) + "\n")
	}
	return b.String()
}

func (m chatModel) View() string {
	if !m.ready {
		return "loading..."
	}

	header := m.styles.Header.Render(fmt.Sprintf(" npcNERD | talking to %s ", m.npc.agent.Name()))

	input := m.styles.InputBorder.Width(m.width - 4).Render(m.textinput.View())
	if m.isLoading {
		input = m.styles.InputBorder.Width(m.width - 4).
			Render(m.spinner.View() + " " + m.styles.Muted.Render("thinking..."))
	}

	footer := m.styles.Footer.Render(fmt.Sprintf("%d turns of history", m.npc.agent.History().Len()))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.viewport.View(),
		input,
		footer,
	)
}

func runInteractiveChat() error {
	npc, err := loadNPC(context.Background(), characterPath)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		initChat(npc),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
