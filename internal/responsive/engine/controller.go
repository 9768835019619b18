// Package engine owns the viewport tier state machine: it samples the
// viewport, classifies it and drives the compensation applicator only when
// the profile changes.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/soilution/fieldview/internal/responsive/compensation"
	"github.com/soilution/fieldview/internal/responsive/signal"
	"github.com/soilution/fieldview/internal/tui/layout"
	"go.uber.org/zap"
)

// State is the controller's view of the page.
type State struct {
	Profile     compensation.Profile
	Signal      signal.ViewportSignal
	Transitions int
	Failures    int
	LastError   error
}

// Tier is shorthand for s.Profile.Tier.
func (s State) Tier() layout.Tier {
	return s.Profile.Tier
}

// Result describes one evaluation.
type Result struct {
	Signal  signal.ViewportSignal
	From    compensation.Profile
	To      compensation.Profile
	Changed bool
	Report  compensation.Report
}

// Options configures a Controller.
type Options struct {
	// Debounce is the resize quiescence window. Zero means DefaultDebounce.
	Debounce time.Duration

	// RefreshCharts runs once per committed tier change.
	RefreshCharts func()

	// OnTransition runs after every committed profile change.
	//
	// Hooks run outside the controller lock, one at a time and in commit
	// order, even when evaluations race on timer goroutines. A hook may call
	// back into the controller; hooks of a nested transition run after the
	// current hook returns.
	OnTransition func(from, to State)

	Logger *zap.Logger
}

// Controller is the transition state machine. All state reads and writes
// and every applicator call happen under mu, so evaluations triggered from
// timers never interleave their region mutations.
type Controller struct {
	mu         sync.Mutex
	reader     signal.Reader
	applicator *compensation.Applicator
	state      State

	debouncer     *Debouncer
	refreshCharts func()
	onTransition  func(from, to State)
	logger        *zap.Logger

	// hooks is filled under mu at commit time and drained by whoever holds
	// hookMu.
	hooks  []namedHook
	hookMu sync.Mutex
}

type namedHook struct {
	name string
	fn   func()
}

// New creates a controller in the Unclassified state.
func New(reader signal.Reader, surface compensation.Surface, catalog compensation.Catalog, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		reader:        reader,
		applicator:    compensation.NewApplicator(surface, catalog),
		state:         State{Profile: compensation.Unclassified},
		debouncer:     NewDebouncer(opts.Debounce),
		refreshCharts: opts.RefreshCharts,
		onTransition:  opts.OnTransition,
		logger:        logger,
	}
}

// Current returns a copy of the state.
func (c *Controller) Current() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Applied returns the overrides currently on the surface.
func (c *Controller) Applied() compensation.Set {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applicator.Applied()
}

// Start performs the startup evaluation.
func (c *Controller) Start(ctx context.Context) (Result, error) {
	c.logger.Debug("starting tier controller")
	return c.Evaluate(ctx)
}

// Evaluate samples the viewport and transitions if the profile changed.
// A failed transition leaves the state untouched; the error is logged and
// returned, and later evaluations proceed normally.
func (c *Controller) Evaluate(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res, err := c.step()
	if err != nil {
		c.logger.Error("tier transition aborted",
			zap.Stringer("from", res.From),
			zap.Stringer("to", res.To),
			zap.Int("width_px", res.Signal.WidthPx),
			zap.Error(err))
		return res, err
	}
	if !res.Changed {
		return res, nil
	}

	rep := res.Report
	c.logger.Info("tier transition",
		zap.Stringer("from", res.From),
		zap.Stringer("to", res.To),
		zap.Int("width_px", res.Signal.WidthPx),
		zap.Int("applied", len(rep.Applied)),
		zap.Int("reverted", len(rep.Reverted)),
		zap.Int("skipped", len(rep.Skipped)))
	c.deliverHooks()
	return res, nil
}

// step is the locked part of Evaluate. A panic from the reader or the
// surface fails the evaluation instead of leaving mu held.
func (c *Controller) step() (res Result, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluation panicked: %v", r)
			c.state.Failures++
			c.state.LastError = err
		}
	}()

	sig := c.reader.Read()
	from := c.state
	to := compensation.Profile{Tier: layout.Classify(sig), Touch: sig.IsTouchDevice}
	res = Result{Signal: sig, From: from.Profile, To: to}
	c.state.Signal = sig

	if to == from.Profile && !c.applicator.Pending() {
		return res, nil
	}

	rep, err := c.applicator.ApplyTransition(from.Profile, to)
	if err != nil {
		c.state.Failures++
		c.state.LastError = err
		return res, err
	}
	if to == from.Profile {
		// Deferred writes settled; the profile did not move.
		res.Report = rep
		return res, nil
	}

	c.state.Profile = to
	c.state.Transitions++
	c.state.LastError = nil
	committed := c.state
	res.Changed = true
	res.Report = rep

	if from.Profile.Tier != to.Tier && c.refreshCharts != nil {
		c.hooks = append(c.hooks, namedHook{"refresh_charts", c.refreshCharts})
	}
	if c.onTransition != nil {
		c.hooks = append(c.hooks, namedHook{"on_transition", func() { c.onTransition(from, committed) }})
	}
	return res, nil
}

// deliverHooks runs queued hooks in commit order. Only one goroutine
// drains at a time; a caller that finds the drain busy leaves its hooks to
// the current drainer, which re-checks the queue after letting go.
func (c *Controller) deliverHooks() {
	for {
		if !c.hookMu.TryLock() {
			return
		}
		for {
			h, ok := c.nextHook()
			if !ok {
				break
			}
			c.callHook(h.name, h.fn)
		}
		c.hookMu.Unlock()

		c.mu.Lock()
		more := len(c.hooks) > 0
		c.mu.Unlock()
		if !more {
			return
		}
	}
}

func (c *Controller) nextHook() (namedHook, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.hooks) == 0 {
		return namedHook{}, false
	}
	h := c.hooks[0]
	c.hooks = c.hooks[1:]
	return h, true
}

// NotifyResize schedules a debounced evaluation. Only the last call of a
// burst evaluates, with the signal read when the window closes.
func (c *Controller) NotifyResize() {
	c.debouncer.Trigger(func() {
		// Failures are logged inside Evaluate.
		_, _ = c.Evaluate(context.Background())
	})
}

// Sync re-applies the current profile's set. Hosts call it after regions
// appeared or vanished, e.g. on page switches.
func (c *Controller) Sync() (compensation.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Profile == compensation.Unclassified {
		return compensation.Report{}, nil
	}
	rep, err := c.applicator.Sync(c.state.Profile)
	if err != nil {
		c.state.Failures++
		c.state.LastError = err
		c.logger.Error("region sync aborted", zap.Stringer("profile", c.state.Profile), zap.Error(err))
	}
	return rep, err
}

// Reconfigure swaps the compensation catalog and re-applies the current
// profile under it. On failure the old catalog stays in effect.
func (c *Controller) Reconfigure(catalog compensation.Catalog) (compensation.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rep, err := c.applicator.Replace(catalog, c.state.Profile)
	if err != nil {
		c.state.Failures++
		c.state.LastError = err
		c.logger.Error("catalog reload aborted", zap.Error(err))
		return rep, err
	}
	c.logger.Info("catalog reloaded",
		zap.Stringer("profile", c.state.Profile),
		zap.Int("applied", len(rep.Applied)),
		zap.Int("reverted", len(rep.Reverted)))
	return rep, nil
}

// Close cancels any pending debounced evaluation.
func (c *Controller) Close() {
	c.debouncer.Cancel()
}

// Serve runs the controller against host event channels until ctx is done.
func (c *Controller) Serve(ctx context.Context, resizes <-chan struct{}, catalogs <-chan compensation.Catalog) error {
	defer c.Close()
	if _, err := c.Start(ctx); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-resizes:
			if !ok {
				resizes = nil
				continue
			}
			c.NotifyResize()
		case cat, ok := <-catalogs:
			if !ok {
				catalogs = nil
				continue
			}
			_, _ = c.Reconfigure(cat)
		}
	}
}

func (c *Controller) callHook(name string, fn func()) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("transition hook panicked", zap.String("hook", name), zap.Any("panic", r))
		}
	}()
	fn()
}
