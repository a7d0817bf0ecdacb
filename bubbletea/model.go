package bubbletea

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/wanderapp/wander"
)

var _ tea.Model = Model{}

const sidebarWidth = 28

// Model is the Bubble Tea model for the wander TUI. All conversation state
// lives in the orchestrator; the model owns presentation state only: the
// rendered blocks, the sidebar cursor, and transient notices.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable conversation area. Exported for test access.
	Viewport viewport.Model

	orch     *wander.Orchestrator
	recorder *wander.Recorder
	theme    wander.Theme
	styles   Styles
	spin     spinner.Model

	// transcriptCh bridges speech-recognition callbacks into the Bubble Tea
	// message loop.
	transcriptCh chan string

	blocks       []TurnBlock
	blockSession string
	blockCount   int

	sidebarCursor int
	notice        string
	noticeIsErr   bool
	width, height int
	ready         bool
}

// New creates a TUI Model over the orchestrator. recognizer may be nil when
// the platform has no speech capability; the mic control then reports an
// unsupported notice instead of recording.
func New(orch *wander.Orchestrator, recognizer wander.Recognizer, theme wander.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about your next trip..."
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 0

	ch := make(chan string, 16)
	rec := wander.NewRecorder(recognizer, func(transcript string) {
		select {
		case ch <- transcript:
		default:
		}
	})

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		Input:        ti,
		orch:         orch,
		recorder:     rec,
		theme:        theme,
		styles:       NewStyles(theme),
		spin:         sp,
		transcriptCh: ch,
	}
}

// Recorder returns the speech recorder. Exported for test access.
func (m Model) Recorder() *wander.Recorder { return m.recorder }

// Notice returns the transient status notice, if any.
func (m Model) Notice() string { return m.notice }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m = m.layout()
		if !m.ready {
			m.ready = true
			m = m.syncBlocks(true)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ExchangeMsg:
		m.orch.Finish(msg.Result)
		m = m.syncBlocks(true)
		return m, nil

	case HistoryMsg:
		m.orch.ApplyHistory(msg.Tag, msg.Turns, msg.Err)
		if msg.Err != nil {
			m = m.setNotice("Couldn't load chat history.", true)
		}
		m = m.syncBlocks(true)
		return m, nil

	case TranscriptMsg:
		m.Input.SetValue(msg.Text)
		m.Input.CursorEnd()
		if m.recorder.State() == wander.RecordingActive {
			return m, listenTranscript(m.transcriptCh)
		}
		return m, nil

	case spinner.TickMsg:
		if m.orch.Sending() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Pass remaining messages to sub-components. The viewport always receives
	// messages for scrolling (keyboard and mouse).
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.orch.SidebarOpen() {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var main strings.Builder
	main.WriteString(m.headerLine())
	main.WriteString("\n")
	main.WriteString(m.Viewport.View())
	main.WriteString("\n")
	main.WriteString(m.statusLine())
	main.WriteString("\n")
	main.WriteString(m.Input.View())

	if !m.orch.SidebarOpen() {
		return main.String()
	}
	return lipglossJoin(m.sidebarView(m.height), main.String())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.orch.SidebarOpen() {
		return m.handleSidebarKey(msg)
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.submitInput()

	case tea.KeyEsc:
		if m.recorder.State() == wander.RecordingActive {
			m.recorder.Stop()
		}
		return m, nil

	case tea.KeyCtrlB:
		return m.toggleSidebar()

	case tea.KeyCtrlN:
		return m.newSession()

	case tea.KeyCtrlR:
		return m.toggleRecording()
	}

	// When idle, pass keys to both the input (for typing) and the viewport
	// (for scrolling). Only forward non-character keys to the viewport to
	// avoid conflicts (e.g. 'j'/'k' are viewport scroll AND text characters).
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if msg.Type != tea.KeyRunes {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.Input, cmd = m.Input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submitInput starts a send. Blank input and input while the visible session
// is still waiting for a reply are refused in place.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.Input.Value())
	if text == "" {
		return m, nil
	}
	if m.orch.Timeline().Waiting() {
		return m, nil
	}

	m.recorder.Stop()
	m = m.clearNotice()

	tag, err := m.orch.Begin(text)
	if err != nil {
		return m.setNotice("Please sign in to start chatting.", true), nil
	}
	m.Input.SetValue("")
	m = m.syncBlocks(true)

	return m, tea.Batch(
		exchangeCmd(m.orch, tag),
		m.spin.Tick,
	)
}

func (m Model) toggleSidebar() (tea.Model, tea.Cmd) {
	if id, ok := m.orch.Identity(); ok && id.Guest {
		return m.setNotice("Guest chats aren't saved. Sign in to browse past trips.", false), nil
	}
	m.orch.ToggleSidebar()
	if m.orch.SidebarOpen() {
		m.sidebarCursor = 0
		m.Input.Blur()
	} else {
		m.Input.Focus()
	}
	return m.layout(), nil
}

func (m Model) closeSidebar() Model {
	m.orch.CloseSidebar()
	m.Input.Focus()
	return m.layout()
}

func (m Model) newSession() (tea.Model, tea.Cmd) {
	m = m.clearNotice()
	if _, err := m.orch.NewSession(context.Background()); err != nil {
		return m.setNotice("Couldn't start a new chat. Please try again.", true), nil
	}
	m = m.closeSidebar()
	m = m.syncBlocks(true)
	return m, nil
}

func (m Model) toggleRecording() (tea.Model, tea.Cmd) {
	if m.recorder.State() == wander.RecordingActive {
		m.recorder.Stop()
		return m, nil
	}
	m = m.clearNotice()
	if err := m.recorder.Start(); err != nil {
		if m.recorder.Err() != "" {
			return m.setNotice(m.recorder.Err(), true), nil
		}
		return m.setNotice("Speech input isn't available here.", true), nil
	}
	return m, listenTranscript(m.transcriptCh)
}

// layout sizes the sub-components from the window size and sidebar state.
func (m Model) layout() Model {
	contentWidth := m.width
	if m.orch.SidebarOpen() {
		contentWidth -= sidebarWidth
	}
	if contentWidth < 20 {
		contentWidth = 20
	}

	headerH, statusH, inputH := 1, 1, 1
	separators := 3
	vpHeight := m.height - headerH - statusH - inputH - separators
	if vpHeight < 1 {
		vpHeight = 1
	}

	if m.Viewport.Width == 0 && m.Viewport.Height == 0 {
		m.Viewport = viewport.New(contentWidth, vpHeight)
	} else {
		m.Viewport.Width = contentWidth
		m.Viewport.Height = vpHeight
	}
	m.Input.Width = contentWidth
	// Width changed; rendered blocks cache per width, but the viewport
	// content string must be rebuilt.
	m.Viewport.SetContent(m.renderContent())
	return m
}

// syncBlocks rebuilds the block list when the visible timeline changed
// identity or length, then refreshes the viewport.
func (m Model) syncBlocks(gotoBottom bool) Model {
	tl := m.orch.Timeline()
	if tl.SessionID() != m.blockSession || tl.Len() != m.blockCount {
		turns := tl.Turns()
		blocks := make([]TurnBlock, 0, len(turns))
		for _, t := range turns {
			blocks = append(blocks, newTurnBlock(t, m.theme, m.styles))
		}
		m.blocks = blocks
		m.blockSession = tl.SessionID()
		m.blockCount = tl.Len()
	}
	m.Viewport.SetContent(m.renderContent())
	if gotoBottom {
		m.Viewport.GotoBottom()
	}
	return m
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

func (m Model) headerLine() string {
	name := wander.DefaultSessionName
	if s, ok := m.orch.Session(m.orch.SelectedSession()); ok {
		name = s.Name
	}
	header := m.styles.Accent.Render(truncateTo(name, m.Viewport.Width/2))
	if id, ok := m.orch.Identity(); ok && id.Guest {
		header += "  " + m.styles.Muted.Render("guest — history won't be saved")
	}
	return header
}

func (m Model) statusLine() string {
	switch {
	case m.notice != "" && m.noticeIsErr:
		return m.styles.Error.Render(m.notice)
	case m.notice != "":
		return m.styles.Success.Render(m.notice)
	case m.recorder.State() == wander.RecordingActive:
		return m.styles.Accent.Render("● Listening... Ctrl+R to stop")
	case m.recorder.State() == wander.RecordingError:
		return m.styles.Error.Render(m.recorder.Err())
	case m.orch.Timeline().Waiting():
		return m.spin.View() + m.styles.Muted.Render(" Planning...")
	default:
		return m.styles.Muted.Render("Enter send • Ctrl+B chats • Ctrl+N new chat • Ctrl+R speak • Ctrl+C quit")
	}
}

func (m Model) setNotice(text string, isErr bool) Model {
	m.notice = text
	m.noticeIsErr = isErr
	return m
}

func (m Model) clearNotice() Model {
	m.notice = ""
	m.noticeIsErr = false
	return m
}

// exchangeCmd runs the network phase of a send off the event loop and
// delivers the result for Finish.
func exchangeCmd(o *wander.Orchestrator, tag wander.SendTag) tea.Cmd {
	return func() tea.Msg {
		return ExchangeMsg{Result: o.Exchange(context.Background(), tag)}
	}
}

// historyCmd runs a history fetch off the event loop and delivers the result
// for ApplyHistory.
func historyCmd(o *wander.Orchestrator, tag wander.HistoryTag) tea.Cmd {
	return func() tea.Msg {
		turns, err := o.FetchHistory(context.Background(), tag)
		return HistoryMsg{Tag: tag, Turns: turns, Err: err}
	}
}

// listenTranscript waits for the next speech transcript update.
func listenTranscript(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		return TranscriptMsg{Text: <-ch}
	}
}
