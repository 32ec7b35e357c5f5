package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"bookshelf/internal/config"
	"bookshelf/internal/controller"
	"bookshelf/internal/domain"
	"bookshelf/internal/eventbus"
	"bookshelf/internal/ui/handlers"
	"bookshelf/internal/ui/input"
	inputtypes "bookshelf/internal/ui/input/types"
	"bookshelf/internal/ui/logic"
	"bookshelf/internal/ui/views"
)

// BookSource fetches the current best-seller list of one category
type BookSource interface {
	BestSellers(ctx context.Context, key string) (domain.BestSellerList, error)
}

// Deps are the collaborators the model drives
type Deps struct {
	Categories   controller.DataSource
	Reachability controller.Reachability
	Books        BookSource
	Bus          eventbus.EventBus // optional
}

// Option configures a Model
type Option func(*Model)

// WithClipboard replaces the system clipboard writer
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.writeClipboard = write }
}

// WithMarkdownStyle selects the glamour style of the detail screen
func WithMarkdownStyle(style string) Option {
	return func(m *Model) { m.detailRenderer = views.NewDetailRenderer(style) }
}

type detailState struct {
	category domain.Category
	loading  bool
	err      error
	markdown string
}

// Model represents the UI state
type Model struct {
	ctx    context.Context // program lifetime; bounds the fetches the model starts
	bus    eventbus.EventBus
	config *config.Config
	books  BookSource

	queue *controller.Queue
	ctrl  *controller.Controller

	// UI-specific state
	width       int
	height      int
	keys        inputtypes.KeyMap
	help        help.Model
	spinner     spinner.Model
	viewport    viewport.Model
	alert       error
	status      handlers.StatusLine
	detail      *detailState
	lastState   controller.LoadState
	debounceGen int
	inPagerMode bool

	// Handlers
	navigator      *logic.GridNavigator
	renderer       *views.Renderer
	detailRenderer *views.DetailRenderer
	inputHandler   *input.Handler
	inputCtx       *input.ModelContext
	eventHandler   *handlers.EventHandler
	pager          *PagerOps
	writeClipboard func(string) error
}

// NewModel creates a new UI model and the category controller it owns
func NewModel(ctx context.Context, cfg *config.Config, deps Deps, opts ...Option) *Model {
	keys := inputtypes.DefaultKeyMap()

	m := &Model{
		ctx:            ctx,
		bus:            deps.Bus,
		config:         cfg,
		books:          deps.Books,
		queue:          controller.NewQueue(),
		keys:           keys,
		help:           help.New(),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport:       viewport.New(80, 20),
		navigator:      logic.NewGridNavigator(cfg.UI.Columns),
		renderer:       views.NewRenderer(),
		detailRenderer: views.NewDetailRenderer("dark"),
		inputHandler:   input.New(keys),
		writeClipboard: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.ctrl = controller.New(deps.Categories, deps.Reachability, m.queue,
		controller.WithListener(m.onViewState))
	m.lastState = m.ctrl.State()
	m.inputCtx = &input.ModelContext{Controller: m.ctrl, Navigator: m.navigator}
	m.eventHandler = handlers.NewEventHandler(&m.status, handlers.DefaultStatusTTL)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager = NewPagerOps(p)
}

// Controller exposes the category controller
func (m *Model) Controller() *controller.Controller {
	return m.ctrl
}

// Close releases the controller's reachability subscription
func (m *Model) Close() {
	m.ctrl.Close()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return activateMsg{} },
		m.waitForDispatch(),
		m.spinner.Tick,
	)
}

// waitForDispatch blocks until controller work is queued
func (m *Model) waitForDispatch() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.queue.Ready():
			return dispatchMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

// onViewState is the controller's listener. It runs on the Update
// goroutine because the controller only runs there.
func (m *Model) onViewState(vs controller.ViewState) {
	if vs.State == controller.StateError && m.lastState != controller.StateError && vs.Err != nil {
		m.alert = vs.Err
		if m.bus != nil {
			m.bus.Publish(eventbus.ErrorEvent{Message: "failed to load categories", Err: vs.Err})
		}
	}
	if vs.State != controller.StateError {
		m.alert = nil
	}
	m.lastState = vs.State
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	default:
		cmd = m.handleNonKeyboardMsg(msg)
	}

	m.sync()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// The alert sits on top of everything
	if m.alert != nil {
		switch msg.String() {
		case "enter", "esc", " ":
			m.alert = nil
			return nil
		case "r":
			m.alert = nil
			m.ctrl.Activate(m.ctx)
			return nil
		case "ctrl+c", "q":
			return tea.Quit
		}
		return nil
	}

	actions, cmd := m.inputHandler.HandleKey(msg, m.inputCtx)
	cmds := []tea.Cmd{cmd}
	for _, action := range actions {
		cmds = append(cmds, m.processAction(action))
	}
	return tea.Batch(cmds...)
}

func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigator.Move(a.Direction)

	case inputtypes.OpenAction:
		return m.openDetail(a.Index)

	case inputtypes.BeginSearchAction:
		m.ctrl.BeginSearch()

	case inputtypes.UpdateTextAction:
		return m.queryChanged(a.Text)

	case inputtypes.SubmitTextAction:
		m.debounceGen++
		m.ctrl.OnQueryChanged(a.Text)
		if a.Text == "" {
			m.ctrl.DismissSearch()
		}

	case inputtypes.CancelTextAction, inputtypes.ClearSearchAction:
		m.debounceGen++
		m.ctrl.DismissSearch()
		m.navigator.Reset()

	case inputtypes.RefreshAction:
		m.ctrl.Activate(m.ctx)

	case inputtypes.BackAction:
		m.detail = nil
		m.viewport.SetContent("")
		m.viewport.GotoTop()

	case inputtypes.ScrollAction:
		m.scroll(a.Direction)

	case inputtypes.OpenPagerAction:
		if m.detail != nil && m.detail.markdown != "" {
			return m.openPager(m.renderMarkdown(m.detail.markdown, m.width))
		}

	case inputtypes.CopyAction:
		return m.copy(a)

	case inputtypes.ToggleHelpAction:
		return m.openPager(RenderHelpContent())

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// queryChanged forwards a keystroke's query, immediately or after the
// configured idle time
func (m *Model) queryChanged(text string) tea.Cmd {
	m.navigator.Reset()

	delay := m.config.UI.SearchDebounce.Std()
	if delay <= 0 {
		m.ctrl.OnQueryChanged(text)
		return nil
	}

	m.debounceGen++
	gen := m.debounceGen
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return debounceMsg{gen: gen, query: text}
	})
}

func (m *Model) openDetail(index int) tea.Cmd {
	cat, err := m.ctrl.Selected(index)
	if err != nil {
		return m.status.Set("That category is no longer on screen", handlers.DefaultStatusTTL)
	}

	m.detail = &detailState{category: cat, loading: true}
	m.viewport.SetContent("")
	m.viewport.GotoTop()
	m.inputHandler.ChangeMode(inputtypes.ModeDetail, "")

	if m.books == nil {
		m.detail.loading = false
		m.detail.err = errors.New("no best-seller source configured")
		return nil
	}

	books, ctx, key := m.books, m.ctx, cat.Key
	return func() tea.Msg {
		list, err := books.BestSellers(ctx, key)
		return bestSellersMsg{key: key, list: list, err: err}
	}
}

func (m *Model) scroll(direction string) {
	switch direction {
	case "up":
		m.viewport.LineUp(1)
	case "down":
		m.viewport.LineDown(1)
	case "pageup":
		m.viewport.ViewUp()
	case "pagedown":
		m.viewport.ViewDown()
	case "home":
		m.viewport.GotoTop()
	case "end":
		m.viewport.GotoBottom()
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case activateMsg:
		m.ctrl.Activate(m.ctx)
		return nil

	case dispatchMsg:
		m.queue.Drain()
		return m.waitForDispatch()

	case debounceMsg:
		if msg.gen == m.debounceGen {
			m.ctrl.OnQueryChanged(msg.query)
		}
		return nil

	case bestSellersMsg:
		if m.detail == nil || m.detail.category.Key != msg.key {
			log.Printf("UI: dropping best sellers for %s, screen closed", msg.key)
			return nil
		}
		m.detail.loading = false
		if msg.err != nil {
			log.Printf("UI: failed to fetch best sellers for %s: %v", msg.key, msg.err)
			m.detail.err = msg.err
			return nil
		}
		m.detail.markdown = views.DetailMarkdown(msg.list)
		m.viewport.SetContent(m.renderMarkdown(m.detail.markdown, m.viewport.Width))
		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case EventMsg:
		return m.eventHandler.HandleEvent(msg.Event)

	case pagerMsg:
		if msg.err != nil {
			log.Printf("Pager failed: %v", msg.err)
		}
		return nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return nil

	case handlers.ClearStatusMsg:
		m.status.Clear(msg)
		return nil
	}

	// cursor blink and friends
	return m.inputHandler.Update(msg)
}

func (m *Model) copy(a inputtypes.CopyAction) tea.Cmd {
	var text, what string
	if a.Detail {
		if m.detail == nil || m.detail.markdown == "" {
			return nil
		}
		text, what = m.detail.markdown, m.detail.category.DisplayName
	} else {
		cat, err := m.ctrl.Selected(a.Index)
		if err != nil {
			return nil
		}
		text, what = cat.Key, cat.Key
	}

	if err := m.writeClipboard(text); err != nil {
		log.Printf("UI: clipboard: %v", err)
		return m.status.Set(fmt.Sprintf("Clipboard error: %v", err), handlers.DefaultStatusTTL)
	}
	return m.status.Set(fmt.Sprintf("Copied %s to clipboard", what), handlers.DefaultStatusTTL)
}

// openPager returns a command that shows content using the ov pager
func (m *Model) openPager(content string) tea.Cmd {
	if m.pager == nil || m.pager.program == nil {
		return func() tea.Msg { return pagerMsg{err: errNoProgram} }
	}
	program := m.pager.program
	return func() tea.Msg {
		program.Send(pauseRenderingMsg{})
		err := m.pager.ShowInPager(content)
		program.Send(resumeRenderingMsg{})
		return pagerMsg{err: err}
	}
}

func (m *Model) renderMarkdown(md string, width int) string {
	out, err := m.detailRenderer.Render(md, width)
	if err != nil {
		log.Printf("UI: markdown render failed: %v", err)
		return md
	}
	return out
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
	m.navigator.SetViewportRows(views.GridRows(height))

	m.viewport.Width = width - 4
	m.viewport.Height = views.DetailViewportHeight(height)
	if m.detail != nil && m.detail.markdown != "" {
		m.viewport.SetContent(m.renderMarkdown(m.detail.markdown, m.viewport.Width))
	}
}

// sync reconciles the input mode and cursor with the controller
func (m *Model) sync() {
	m.navigator.SetTotal(m.ctrl.ItemCount())

	mode := m.inputHandler.GetMode()
	offline := m.ctrl.State() == controller.StateOffline
	switch {
	case m.detail != nil:
		if mode != inputtypes.ModeDetail {
			m.inputHandler.ChangeMode(inputtypes.ModeDetail, "")
		}
	case offline:
		if mode != inputtypes.ModeOffline {
			m.inputHandler.ChangeMode(inputtypes.ModeOffline, "")
		}
	case mode == inputtypes.ModeOffline || mode == inputtypes.ModeDetail:
		m.inputHandler.ChangeMode(inputtypes.ModeNormal, "")
	}
}

// View renders the model
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	state := views.ViewState{
		Width:            m.width,
		Height:           m.height,
		List:             m.ctrl.ViewState(),
		Selected:         m.navigator.Selected(),
		RowOffset:        m.navigator.RowOffset(),
		ViewportRows:     m.navigator.ViewportRows(),
		Columns:          m.navigator.Columns(),
		PlaceholderCells: m.config.UI.PlaceholderCells,
		Spinner:          m.spinner.View(),
		StatusMessage:    m.status.Text(),
		HelpView:         m.help.View(m.keys),
		Alert:            m.alert,
	}

	if m.inputHandler.GetMode() == inputtypes.ModeSearch {
		state.InputMode = "search"
		state.Prompt = m.inputHandler.Prompt()
		state.TextInput = m.inputHandler.GetTextInput().View()
	}

	if m.detail != nil {
		state.Detail = &views.DetailView{
			Title:         m.detail.category.DisplayName,
			Loading:       m.detail.loading,
			Err:           m.detail.err,
			ScrollPercent: m.viewport.ScrollPercent(),
		}
		if m.detail.markdown != "" {
			state.Detail.Content = m.viewport.View()
		}
	}

	return m.renderer.Render(state)
}
