package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"sgsd/internal/clocks"
	"sgsd/internal/core/countdown"
	"sgsd/internal/core/model"

	"github.com/google/uuid"
)

var (
	// ErrRunning indicates the request needs an idle timer.
	ErrRunning = errors.New("timer is running")
	// ErrClosed indicates Run has returned.
	ErrClosed = errors.New("controller closed")
)

// Display receives the tray label.
type Display interface {
	SetDisplayText(text string)
}

// RunningDisplay is implemented by displays that also track whether the
// countdown is running. SetRunning is called before every SetDisplayText.
type RunningDisplay interface {
	Display
	SetRunning(running bool)
}

// Notifier dispatches a completion notification to the host platform.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// Notification is a single completion alert. ID is unique per completion so
// the host does not coalesce it with an earlier one.
type Notification struct {
	ID    string
	Title string
	Body  string
}

// Status is a point-in-time view of the countdown.
type Status struct {
	Running   bool
	Remaining int
	Duration  int
	Text      string
}

// Options contains runtime options for the Controller.
type Options struct {
	TickInterval time.Duration
	// Strict panics on invariant violations instead of rejecting the request.
	Strict bool
	NewID  func() string
}

type commandKind int

const (
	commandToggle commandKind = iota
	commandStart
	commandStop
	commandTick
	commandSnapshot
	commandReconfigure
)

type command struct {
	kind       commandKind
	generation uint64
	config     model.TimerConfig
	reply      chan result
}

type result struct {
	status Status
	err    error
}

// Controller serializes every countdown transition on the goroutine running
// Run and turns them into display updates and notifications.
type Controller struct {
	config   model.TimerConfig
	options  Options
	timer    *countdown.Timer
	display  Display
	notifier Notifier
	logger   *slog.Logger

	commands chan command
	done     chan struct{}
	started  atomic.Bool

	// Owned by the Run goroutine.
	generation uint64
	text       string
	runCtx     context.Context

	// Notification deliveries still in flight.
	deliveries sync.WaitGroup

	mu        sync.Mutex
	observers []chan Event
	closed    bool
}

// New creates a Controller. Call Run to start processing requests.
func New(config model.TimerConfig, clock clocks.Clock, display Display, notifier Notifier, logger *slog.Logger, options Options) (*Controller, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.NewID == nil {
		options.NewID = uuid.NewString
	}
	options.Strict = options.Strict || strictDefault
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	timer, err := countdown.New(config.Duration, clock, options.TickInterval)
	if err != nil {
		return nil, err
	}

	return &Controller{
		config:   config,
		options:  options,
		timer:    timer,
		display:  display,
		notifier: notifier,
		logger:   logger.With("component", "controller"),
		commands: make(chan command),
		done:     make(chan struct{}),
	}, nil
}

// Subscribe registers a new observer channel. Events are dropped for observers
// whose buffer is full. The channel is closed when Run returns.
func (keeper *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.observers = append(keeper.observers, ch)
	return ch
}

// Run processes requests and ticks until ctx is cancelled. The timer is
// disarmed and pending notification deliveries have finished on return.
func (keeper *Controller) Run(ctx context.Context) error {
	if !keeper.started.CompareAndSwap(false, true) {
		return errors.New("run controller: already started")
	}
	keeper.runCtx = ctx
	defer keeper.shutdown()

	keeper.render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-keeper.commands:
			status, err := keeper.handle(cmd)
			if cmd.reply != nil {
				cmd.reply <- result{status: status, err: err}
			}
		}
	}
}

// Toggle starts an idle countdown or stops a running one.
func (keeper *Controller) Toggle(ctx context.Context) (Status, error) {
	return keeper.call(ctx, command{kind: commandToggle})
}

// Start begins a countdown. Starting a running countdown is an invariant
// violation.
func (keeper *Controller) Start(ctx context.Context) (Status, error) {
	return keeper.call(ctx, command{kind: commandStart})
}

// Stop cancels a running countdown. Stopping an idle countdown is an invariant
// violation. No tick affects the countdown after Stop returns.
func (keeper *Controller) Stop(ctx context.Context) (Status, error) {
	return keeper.call(ctx, command{kind: commandStop})
}

// Snapshot returns the current status.
func (keeper *Controller) Snapshot(ctx context.Context) (Status, error) {
	return keeper.call(ctx, command{kind: commandSnapshot})
}

// Reconfigure swaps duration, glyphs and notification copy. Only allowed while
// idle.
func (keeper *Controller) Reconfigure(ctx context.Context, config model.TimerConfig) (Status, error) {
	if err := config.Validate(); err != nil {
		return Status{}, err
	}
	return keeper.call(ctx, command{kind: commandReconfigure, config: config})
}

func (keeper *Controller) call(ctx context.Context, cmd command) (Status, error) {
	cmd.reply = make(chan result, 1)
	select {
	case keeper.commands <- cmd:
	case <-keeper.done:
		return Status{}, ErrClosed
	case <-ctx.Done():
		return Status{}, ctx.Err()
	}
	select {
	case res := <-cmd.reply:
		return res.status, res.err
	case <-keeper.done:
	}
	// Run may have replied just before returning.
	select {
	case res := <-cmd.reply:
		return res.status, res.err
	default:
		return Status{}, ErrClosed
	}
}

// post delivers a tick from the clock goroutine.
func (keeper *Controller) post(cmd command) {
	select {
	case keeper.commands <- cmd:
	case <-keeper.done:
	}
}

func (keeper *Controller) handle(cmd command) (Status, error) {
	switch cmd.kind {
	case commandToggle:
		if keeper.timer.Running() {
			return keeper.stop()
		}
		return keeper.start()
	case commandStart:
		return keeper.start()
	case commandStop:
		return keeper.stop()
	case commandTick:
		keeper.tick(cmd.generation)
		return keeper.status(), nil
	case commandSnapshot:
		return keeper.status(), nil
	case commandReconfigure:
		return keeper.reconfigure(cmd.config)
	}
	return keeper.status(), fmt.Errorf("handle command: unknown kind %d", cmd.kind)
}

func (keeper *Controller) start() (Status, error) {
	generation := keeper.generation + 1
	err := keeper.timer.Start(func() {
		keeper.post(command{kind: commandTick, generation: generation})
	})
	if err != nil {
		return keeper.status(), keeper.violation(err)
	}
	keeper.generation = generation

	keeper.logger.Info("countdown started", "duration", keeper.timer.Duration())
	keeper.render()
	keeper.emit(Event{Type: EventStarted, Remaining: keeper.timer.Remaining(), Text: keeper.text, At: time.Now()})
	return keeper.status(), nil
}

func (keeper *Controller) stop() (Status, error) {
	remaining := keeper.timer.Remaining()
	if err := keeper.timer.Stop(); err != nil {
		return keeper.status(), keeper.violation(err)
	}
	keeper.generation++

	keeper.logger.Info("countdown stopped", "remaining", remaining)
	keeper.render()
	keeper.emit(Event{Type: EventStopped, Remaining: keeper.timer.Remaining(), Text: keeper.text, At: time.Now()})
	return keeper.status(), nil
}

func (keeper *Controller) tick(generation uint64) {
	if generation != keeper.generation || !keeper.timer.Running() {
		keeper.logger.Debug("dropped stale tick", "generation", generation, "current", keeper.generation)
		return
	}

	remaining, err := keeper.timer.Tick()
	if err != nil {
		_ = keeper.violation(err)
		return
	}
	if remaining > 0 {
		keeper.render()
		keeper.emit(Event{Type: EventTick, Remaining: remaining, Text: keeper.text, At: time.Now()})
		return
	}
	keeper.complete()
}

func (keeper *Controller) complete() {
	keeper.timer.Reset()
	keeper.generation++
	keeper.render()

	notification := Notification{
		ID:    keeper.options.NewID(),
		Title: keeper.config.Notification.Title,
		Body:  keeper.config.Notification.Body,
	}
	keeper.logger.Info("countdown completed", "notification_id", notification.ID)
	keeper.emit(Event{Type: EventCompleted, Text: keeper.text, NotificationID: notification.ID, At: time.Now()})
	keeper.dispatch(notification)
}

// dispatch delivers the notification without holding up the countdown.
func (keeper *Controller) dispatch(notification Notification) {
	if keeper.notifier == nil {
		keeper.logger.Debug("no notifier configured", "notification_id", notification.ID)
		return
	}
	ctx := keeper.runCtx
	keeper.deliveries.Add(1)
	go func() {
		defer keeper.deliveries.Done()
		err := keeper.notifier.Notify(ctx, notification)
		if err != nil {
			keeper.logger.Warn("notification delivery failed", "notification_id", notification.ID, "error", err)
			keeper.emit(Event{Type: EventNotifyFailed, NotificationID: notification.ID, Message: err.Error(), At: time.Now()})
			return
		}
		keeper.logger.Debug("notification delivered", "notification_id", notification.ID)
		keeper.emit(Event{Type: EventNotified, NotificationID: notification.ID, At: time.Now()})
	}()
}

func (keeper *Controller) reconfigure(config model.TimerConfig) (Status, error) {
	if keeper.timer.Running() {
		return keeper.status(), fmt.Errorf("reconfigure: %w", ErrRunning)
	}
	if err := keeper.timer.SetDuration(config.Duration); err != nil {
		return keeper.status(), fmt.Errorf("reconfigure: %w", err)
	}
	keeper.config = config

	keeper.logger.Info("countdown reconfigured", "duration", config.Duration)
	keeper.render()
	keeper.emit(Event{Type: EventReconfigured, Remaining: keeper.timer.Remaining(), Text: keeper.text, At: time.Now()})
	return keeper.status(), nil
}

func (keeper *Controller) violation(err error) error {
	keeper.logger.Error("rejected transition", "error", err)
	if keeper.options.Strict {
		panic(err)
	}
	return err
}

func (keeper *Controller) render() {
	if keeper.timer.Running() {
		keeper.text = fmt.Sprintf("%s %s", keeper.config.Glyphs.Running, countdown.Clock(keeper.timer.Remaining()))
	} else {
		keeper.text = keeper.config.Glyphs.Idle
	}
	if keeper.display == nil {
		return
	}
	if state, ok := keeper.display.(RunningDisplay); ok {
		state.SetRunning(keeper.timer.Running())
	}
	keeper.display.SetDisplayText(keeper.text)
}

func (keeper *Controller) status() Status {
	return Status{
		Running:   keeper.timer.Running(),
		Remaining: keeper.timer.Remaining(),
		Duration:  keeper.timer.Duration(),
		Text:      keeper.text,
	}
}

func (keeper *Controller) shutdown() {
	keeper.timer.Reset()
	close(keeper.done)
	keeper.deliveries.Wait()

	keeper.mu.Lock()
	observers := keeper.observers
	keeper.observers = nil
	keeper.closed = true
	keeper.mu.Unlock()

	for _, ch := range observers {
		close(ch)
	}
}

func (keeper *Controller) emit(event Event) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	for _, ch := range keeper.observers {
		select {
		case ch <- event:
		default:
		}
	}
}
