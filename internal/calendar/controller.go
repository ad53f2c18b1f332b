package calendar

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/javiermolinar/showcal/internal/show"
)

// Controller errors.
var (
	ErrNotMounted     = errors.New("calendar controller is not mounted")
	ErrAlreadyMounted = errors.New("calendar controller is already mounted")
	ErrUnmounted      = errors.New("calendar controller is unmounted")
)

// State is the controller lifecycle state.
type State int

const (
	StateIdle State = iota
	StateMounted
	StateEvaluating
	StateRendered
	StateUnmounted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMounted:
		return "mounted"
	case StateEvaluating:
		return "evaluating"
	case StateRendered:
		return "rendered"
	case StateUnmounted:
		return "unmounted"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// RenderModel is the output of one evaluation pass.
type RenderModel struct {
	Window DateWindow
	Days   []time.Time
	Rows   []Row
}

// Empty reports whether no show airs in the window.
func (m RenderModel) Empty() bool {
	return len(m.Rows) == 0
}

// Evaluate runs RelevantShows then AssignRows for window.
func Evaluate(shows []show.Show, window DateWindow) RenderModel {
	return RenderModel{
		Window: window,
		Days:   window.Days(),
		Rows:   AssignRows(RelevantShows(shows, window), window),
	}
}

// Controller re-evaluates the grid whenever the shows or the window change
// and returns the fetch intents the caller must dispatch. It never talks to
// the store itself.
type Controller struct {
	gate    *FetchGate
	state   State
	showSet []string
	last    RenderModel
	logger  *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for evaluation traces.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewController creates an idle controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		gate:   NewFetchGate(),
		state:  StateIdle,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Last returns the most recent render model.
func (c *Controller) Last() RenderModel {
	return c.last
}

// InFlight returns the show IDs with a fetch still outstanding.
func (c *Controller) InFlight() []string {
	return c.gate.InFlight()
}

// Mount performs the initial evaluation. Every unloaded show gets a fetch intent.
func (c *Controller) Mount(shows []show.Show, window DateWindow) (RenderModel, []FetchIntent, error) {
	switch c.state {
	case StateUnmounted:
		return RenderModel{}, nil, ErrUnmounted
	case StateIdle:
	default:
		return RenderModel{}, nil, ErrAlreadyMounted
	}

	c.state = StateMounted
	intents := c.reconcile(shows)
	return c.evaluate(shows, window), intents, nil
}

// Update re-evaluates after a store update or window navigation. Fetch
// intents are only produced when the set of show IDs changed; a window
// change alone never triggers fetches.
func (c *Controller) Update(shows []show.Show, window DateWindow) (RenderModel, []FetchIntent, error) {
	if err := c.checkMounted(); err != nil {
		return RenderModel{}, nil, err
	}

	var intents []FetchIntent
	if !slices.Equal(c.showSet, show.IDs(shows)) {
		intents = c.reconcile(shows)
	} else {
		c.gate.Settle(shows)
	}
	return c.evaluate(shows, window), intents, nil
}

// Refresh forces a reconcile pass over shows, e.g. after Release.
func (c *Controller) Refresh(shows []show.Show) ([]FetchIntent, error) {
	if err := c.checkMounted(); err != nil {
		return nil, err
	}
	return c.reconcile(shows), nil
}

// Release re-arms a show whose fetch failed.
func (c *Controller) Release(showID string) {
	c.gate.Release(showID)
}

// Unmount tears the controller down. It cannot be mounted again.
func (c *Controller) Unmount() {
	c.gate.Reset()
	c.showSet = nil
	c.last = RenderModel{}
	c.state = StateUnmounted
}

func (c *Controller) checkMounted() error {
	switch c.state {
	case StateIdle:
		return ErrNotMounted
	case StateUnmounted:
		return ErrUnmounted
	}
	return nil
}

func (c *Controller) reconcile(shows []show.Show) []FetchIntent {
	c.showSet = show.IDs(shows)
	intents := c.gate.Reconcile(shows)
	if len(intents) > 0 {
		c.logger.Debug("episode fetches requested", "count", len(intents), "shows", len(shows))
	}
	return intents
}

func (c *Controller) evaluate(shows []show.Show, window DateWindow) RenderModel {
	c.state = StateEvaluating
	c.last = Evaluate(shows, window)
	c.state = StateRendered
	c.logger.Debug("calendar evaluated",
		"window", window.String(),
		"shows", len(shows),
		"rows", len(c.last.Rows),
	)
	return c.last
}
