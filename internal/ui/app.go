package ui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ravikiranprk/pokedexter/internal/card"
	"github.com/ravikiranprk/pokedexter/internal/catalog"
	"github.com/ravikiranprk/pokedexter/internal/listing"
	"github.com/ravikiranprk/pokedexter/internal/prefs"
	"github.com/ravikiranprk/pokedexter/internal/sentinel"
)

// Options configures the UI.
type Options struct {
	Context        context.Context
	Fetcher        catalog.Fetcher
	Logger         *slog.Logger
	PageSize       int
	RequestTimeout time.Duration
	InitialSearch  string
	ThemeName      string
	PrefsPath      string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	fetcher   catalog.Fetcher
	logger    *slog.Logger
	prefsPath string
	timeout   time.Duration
	now       func() time.Time

	// UI state
	theme    Theme
	keys     keyMap
	width    int
	height   int
	ready    bool
	showHelp bool

	// Search input
	search    textinput.Model
	searching bool

	// Data state
	list     *listing.Controller
	deck     *card.Deck
	marker   *sentinel.Observer
	spinner  spinner.Model
	startReq *listing.Request

	// List viewport
	selected int
	top      int
	flipping bool
}

// New creates a new Bubble Tea model and starts the first search session.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "search by name"
	input.CharLimit = 64
	input.SetValue(strings.TrimSpace(opts.InitialSearch))

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	list := listing.New(opts.PageSize)
	startReq := list.Start(opts.InitialSearch)

	m := Model{
		ctx:       ctx,
		fetcher:   opts.Fetcher,
		logger:    logger,
		prefsPath: prefsPath,
		timeout:   timeout,
		now:       time.Now,
		theme:     theme,
		keys:      DefaultKeyMap(),
		search:    input,
		list:      list,
		deck:      card.NewDeck(list.Session()),
		marker:    sentinel.NewObserver(),
		spinner:   spin,
		startReq:  startReq,
	}
	m.applyThemeToWidgets()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetchPageCmd(m.startReq),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = max(m.width-6, 10)
		cmd := m.syncViewport()
		return m, cmd

	case pageMsg:
		return m.handlePage(listing.Result(msg))

	case detailMsg:
		m.handleDetail(msg)
		return m, nil

	case flipFrameMsg:
		if m.selectedCardFlipping() {
			return m, flipFrameCmd()
		}
		m.flipping = false
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderSearchLine())
	b.WriteString("\n")

	b.WriteString(m.renderBody())
	b.WriteString("\n")

	b.WriteString(m.renderStatusBar())
	return b.String()
}

// renderBody lays the list and card panes side by side, or the list alone
// on narrow terminals.
func (m Model) renderBody() string {
	if m.width < LayoutCompactWidth {
		return m.renderList(m.width)
	}
	listWidth := m.width - LayoutCardWidth
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderList(listWidth),
		m.renderCardPane(LayoutCardWidth, m.listRows()+2),
	)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyThemeToWidgets()
		name := m.theme.Name
		m.savePrefs(func(p *prefs.Prefs) { p.Theme = name })
		return m, nil

	case "/":
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd

	case "r":
		req := m.list.Retry()
		if req == nil {
			return m, nil
		}
		m.logger.Info("retrying page", "session", req.Session, "cursor", req.Cursor.String())
		return m, m.fetchPageCmd(req)

	case "enter", " ", "space":
		return m.flipSelected()
	}

	return m.handleListKey(msg)
}

// handleListKey moves the selection.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.list.Len()
	if count == 0 {
		return m, nil
	}

	rows := m.listRows()
	switch msg.String() {
	case "j", "down":
		m.selected++
	case "k", "up":
		m.selected--
	case "g", "home":
		m.selected = 0
	case "G", "end":
		m.selected = count - 1
	case "pgdown", "ctrl+d":
		m.selected += rows
	case "pgup", "ctrl+u":
		m.selected -= rows
	default:
		return m, nil
	}
	m.selected = clamp(m.selected, 0, count-1)
	cmd := m.syncViewport()
	return m, cmd
}

// handlePage applies a page result and refills the viewport.
func (m Model) handlePage(res listing.Result) (tea.Model, tea.Cmd) {
	if !m.list.Apply(res) {
		m.logger.Debug("discarding stale page",
			"session", res.Request.Session,
			"cursor", res.Request.Cursor.String(),
		)
		return m, nil
	}
	if res.Err != nil {
		m.logger.Warn("page fetch failed",
			"filter", res.Request.Filter,
			"cursor", res.Request.Cursor.String(),
			"kind", catalog.Kind(res.Err),
			"error", res.Err,
		)
	}
	// The list changed under the marker; let it fire again if still on screen.
	m.marker.Reset(m.list.Session())
	cmd := m.syncViewport()
	return m, cmd
}

// handleDetail resolves a card if it still belongs to the current session.
func (m *Model) handleDetail(msg detailMsg) {
	if msg.session != m.deck.Session() {
		m.logger.Debug("discarding stale detail", "name", msg.name, "session", msg.session)
		return
	}
	c, ok := m.deck.Lookup(msg.name)
	if !ok {
		return
	}
	if msg.err != nil {
		m.logger.Warn("detail fetch failed",
			"name", msg.name,
			"kind", catalog.Kind(msg.err),
			"error", msg.err,
		)
	}
	c.Resolve(msg.detail, msg.err)
}

// submitSearch starts a new session when the filter changed.
func (m *Model) submitSearch(filter string) tea.Cmd {
	oldSession := m.list.Session()
	req := m.list.SetFilter(filter)
	if req == nil {
		return nil
	}
	m.marker.Forget(oldSession)
	dropped := m.deck.Len()
	m.deck = card.NewDeck(m.list.Session())
	m.selected = 0
	m.top = 0

	trimmed := strings.TrimSpace(filter)
	m.savePrefs(func(p *prefs.Prefs) { p.LastSearch = trimmed })
	m.logger.Info("search submitted",
		"filter", trimmed,
		"session", req.Session,
		"page_size", m.list.PageSize(),
		"cards_dropped", dropped,
	)
	return m.fetchPageCmd(req)
}

// flipSelected toggles the selected card and starts the flip animation.
func (m Model) flipSelected() (tea.Model, tea.Cmd) {
	c := m.selectedCard()
	if c == nil {
		return m, nil
	}
	c.Toggle(m.now())
	if m.flipping {
		return m, nil
	}
	m.flipping = true
	return m, flipFrameCmd()
}

// syncViewport keeps the selection on screen, mounts the cards that became
// visible and fires the end-of-list marker.
func (m *Model) syncViewport() tea.Cmd {
	if !m.ready {
		return nil
	}
	items := m.list.Snapshot().Items
	rows := m.listRows()

	m.selected = clamp(m.selected, 0, len(items)-1)
	if m.selected < m.top {
		m.top = m.selected
	}
	if m.selected >= m.top+rows {
		m.top = m.selected - rows + 1
	}
	m.top = clamp(m.top, 0, max(len(items)+1-rows, 0))

	var cmds []tea.Cmd
	end := min(m.top+rows, len(items))
	for _, ref := range items[m.top:end] {
		c := m.deck.Card(ref)
		if c.Mount() {
			cmds = append(cmds, m.fetchDetailCmd(m.deck.Session(), ref))
		}
	}

	visible := sentinel.Visible(m.top, rows, len(items), SentinelLookahead)
	if m.marker.Observe(m.list.Session(), visible) {
		if req := m.list.NearBottom(); req != nil {
			cmds = append(cmds, m.fetchPageCmd(req))
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) listRows() int {
	return max(m.height-chromeRows, 1)
}

func (m Model) selectedCard() *card.Card {
	items := m.list.Snapshot().Items
	if m.selected < 0 || m.selected >= len(items) {
		return nil
	}
	return m.deck.Card(items[m.selected])
}

func (m Model) selectedCardFlipping() bool {
	c := m.selectedCard()
	return c != nil && c.Flipping(m.now())
}

func (m *Model) applyThemeToWidgets() {
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	m.search.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	m.search.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text))
	m.search.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
}

func (m Model) savePrefs(fn func(*prefs.Prefs)) {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Update(m.prefsPath, fn); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", err)
	}
}

// Messages

type pageMsg listing.Result

type detailMsg struct {
	session string
	name    string
	detail  catalog.Detail
	err     error
}

type flipFrameMsg time.Time

// Commands

func (m Model) fetchPageCmd(req *listing.Request) tea.Cmd {
	if req == nil || m.fetcher == nil {
		return nil
	}
	ctx, fetcher, timeout, r := m.ctx, m.fetcher, m.timeout, *req
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return pageMsg(listing.Fetch(ctx, fetcher, r))
	}
}

func (m Model) fetchDetailCmd(session string, ref catalog.EntityRef) tea.Cmd {
	if m.fetcher == nil {
		return nil
	}
	ctx, fetcher, timeout := m.ctx, m.fetcher, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		detail, err := fetcher.FetchDetail(ctx, ref.URL)
		return detailMsg{session: session, name: ref.Name, detail: detail, err: err}
	}
}

func flipFrameCmd() tea.Cmd {
	return tea.Tick(FlipFrameInterval, func(t time.Time) tea.Msg {
		return flipFrameMsg(t)
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
