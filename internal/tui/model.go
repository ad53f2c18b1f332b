package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/showcal/internal/calendar"
	"github.com/javiermolinar/showcal/internal/config"
	"github.com/javiermolinar/showcal/internal/show"
	"github.com/javiermolinar/showcal/internal/tui/commands"
	"github.com/javiermolinar/showcal/internal/tui/theme"
)

// Options are the dependencies of the TUI.
type Options struct {
	Repo   show.Repository
	Config *config.Config
	Loader commands.Fetcher
	Logger *slog.Logger
	Debug  bool
}

// Model is the main TUI model.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	repo    show.Repository
	config  *config.Config
	fetcher commands.Fetcher
	logger  *slog.Logger
	events  *eventLog

	// Calendar state. shows is the latest store snapshot; the controller
	// re-evaluates render from it on every change.
	ctrl      *calendar.Controller
	shows     []show.Show
	window    calendar.DateWindow
	weekStart time.Weekday
	render    calendar.RenderModel
	offset    int  // first grid row shown
	loaded    bool // first ShowsLoadedMsg received
	failures  map[string]error

	theme    *theme.Theme
	styles   *Styles
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	showHelp bool

	initState InitState

	width  int
	height int

	statusMsg   string
	statusIsErr bool

	now func() time.Time

	// Fatal error; the grid is replaced by it.
	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock sets the clock used for "today" and the starting week.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithInitState sets the startup initialization state.
func WithInitState(state InitState) ModelOption {
	return func(m *Model) {
		m.initState = state
		m.keys.Init.SetEnabled(state.ConfigMissing)
	}
}

// New creates a new TUI model.
func New(ctx context.Context, opts Options, modelOpts ...ModelOption) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		logger.Warn("unknown theme, using default", "theme", cfg.UI.Theme, "err", err)
	}
	styles := NewStyles(t)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle))

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.ShortSeparator = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle
	h.Styles.FullSeparator = styles.HelpDescStyle

	m := Model{
		ctx:       ctx,
		cancel:    cancel,
		repo:      opts.Repo,
		config:    cfg,
		fetcher:   opts.Loader,
		logger:    logger,
		events:    newEventLog(logger, opts.Debug),
		ctrl:      calendar.NewController(calendar.WithLogger(logger)),
		weekStart: cfg.WeekStart(),
		failures:  make(map[string]error),
		theme:     t,
		styles:    styles,
		keys:      defaultKeyMap(),
		help:      h,
		spinner:   sp,
		now:       time.Now,
	}
	for _, opt := range modelOpts {
		opt(&m)
	}
	m.window = calendar.WeekOf(m.now(), m.weekStart)
	return m
}

// Init loads the tracked shows from the store.
func (m Model) Init() tea.Cmd {
	if m.repo == nil {
		return func() tea.Msg { return commands.ErrMsg{Err: errors.New("no show store configured")} }
	}
	return commands.LoadShows(m.ctx, m.repo, m.config.Shows.Tracked)
}

// Run starts the TUI and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	state, err := DetectInitState(opts.Config, config.DefaultConfigPath())
	if err != nil {
		return err
	}

	m := New(ctx, opts, WithInitState(state))
	defer m.cancel()
	m.events.record("tui_start", "window", m.window.String(), "tracked", len(m.config.Shows.Tracked))

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
