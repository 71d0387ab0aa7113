package carousel

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/handiism/sjt-catalog/internal/view"
)

// DefaultInterval is the autoplay period when none is configured.
const DefaultInterval = 8000 * time.Millisecond

// ErrNoSlides is returned by New for an empty slide set.
var ErrNoSlides = errors.New("carousel has no slides")

// Slide describes one slide.
type Slide struct {
	Title      string
	Caption    string
	Background string

	// Active marks the slide to show first. The first active slide wins.
	Active bool
}

// State is the autoplay state.
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// EventKind identifies an input to the state machine.
type EventKind int

const (
	EventInit EventKind = iota
	EventPointerEnter
	EventPointerLeave
	EventVisible
	EventHidden
	EventTick
	EventPrev
	EventNext
	EventGoTo
)

// Event is an input to the state machine. Index is used by EventGoTo and
// Gen by EventTick.
type Event struct {
	Kind  EventKind
	Index int
	Gen   uint64
}

// Tick is posted by a fired timer.
type Tick struct {
	Gen uint64
}

type transition func(c *Carousel, ev Event)

var transitions = map[EventKind]transition{
	EventInit:         (*Carousel).start,
	EventPointerLeave: (*Carousel).start,
	EventVisible:      (*Carousel).start,
	EventPointerEnter: (*Carousel).stop,
	EventHidden:       (*Carousel).stop,
	EventTick:         (*Carousel).tick,
	EventPrev: func(c *Carousel, ev Event) {
		c.navigate(c.index - 1)
	},
	EventNext: func(c *Carousel, ev Event) {
		c.navigate(c.index + 1)
	},
	EventGoTo: func(c *Carousel, ev Event) {
		c.navigate(ev.Index)
	},
}

// Carousel holds the slider state for one instance.
type Carousel struct {
	slides *view.Container
	dots   *view.Container

	n             int
	index         int
	interval      time.Duration
	reducedMotion bool

	sched   Scheduler
	pending Timer
	gen     uint64

	notify    func(Tick)
	ticks     chan Tick
	done      chan struct{}
	closeOnce sync.Once

	dotLabel func(k int) string
	logger   *slog.Logger
}

// Option configures a Carousel.
type Option func(*Carousel)

// WithInterval sets the autoplay period. Zero or negative disables autoplay.
func WithInterval(d time.Duration) Option {
	return func(c *Carousel) { c.interval = d }
}

// WithReducedMotion disables autoplay when on is true.
func WithReducedMotion(on bool) Option {
	return func(c *Carousel) { c.reducedMotion = on }
}

// WithScheduler replaces the timer source.
func WithScheduler(s Scheduler) Option {
	return func(c *Carousel) { c.sched = s }
}

// WithNotify makes fired timers call f instead of posting to Ticks.
// f runs on the timer goroutine.
func WithNotify(f func(Tick)) Option {
	return func(c *Carousel) { c.notify = f }
}

// WithDotLabel sets the accessible label of dot k (zero based).
func WithDotLabel(f func(k int) string) Option {
	return func(c *Carousel) { c.dotLabel = f }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *Carousel) { c.logger = l }
}

// New renders the slides, builds the dot set once when dots is non-nil and
// applies the Init transition.
func New(slides []Slide, slideView, dots *view.Container, opts ...Option) (*Carousel, error) {
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}

	c := &Carousel{
		slides:   slideView,
		dots:     dots,
		n:        len(slides),
		interval: DefaultInterval,
		sched:    SystemScheduler{},
		ticks:    make(chan Tick),
		done:     make(chan struct{}),
		dotLabel: func(k int) string { return fmt.Sprintf("Ir al slide %d", k+1) },
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notify == nil {
		c.notify = c.post
	}

	els := make([]view.Element, len(slides))
	for i, s := range slides {
		els[i] = view.Element{
			Role:       view.RoleSlide,
			Label:      s.Title,
			Caption:    s.Caption,
			Background: s.Background,
			Key:        strconv.Itoa(i),
		}
	}
	c.index = firstActive(slides)
	c.slides.Replace(els...)
	c.buildDots()
	c.show(c.index)

	c.Handle(Event{Kind: EventInit})
	return c, nil
}

// Handle applies ev through the transition table.
func (c *Carousel) Handle(ev Event) {
	t, ok := transitions[ev.Kind]
	if !ok {
		return
	}
	t(c, ev)
}

// Next shows the following slide and restarts the countdown.
func (c *Carousel) Next() { c.Handle(Event{Kind: EventNext}) }

// Prev shows the preceding slide and restarts the countdown.
func (c *Carousel) Prev() { c.Handle(Event{Kind: EventPrev}) }

// GoTo shows slide k, wrapping in both directions, and restarts the countdown.
func (c *Carousel) GoTo(k int) { c.Handle(Event{Kind: EventGoTo, Index: k}) }

// PointerEnter pauses autoplay.
func (c *Carousel) PointerEnter() { c.Handle(Event{Kind: EventPointerEnter}) }

// PointerLeave resumes autoplay.
func (c *Carousel) PointerLeave() { c.Handle(Event{Kind: EventPointerLeave}) }

// SetVisible resumes autoplay when visible and pauses it when hidden.
func (c *Carousel) SetVisible(visible bool) {
	if visible {
		c.Handle(Event{Kind: EventVisible})
		return
	}
	c.Handle(Event{Kind: EventHidden})
}

// HandleTick applies a tick posted by a timer.
func (c *Carousel) HandleTick(t Tick) {
	c.Handle(Event{Kind: EventTick, Gen: t.Gen})
}

// Ticks returns the channel fired timers post to when no WithNotify
// callback was given.
func (c *Carousel) Ticks() <-chan Tick {
	return c.ticks
}

// Close cancels the pending timer and releases any timer goroutine waiting
// to post.
func (c *Carousel) Close() {
	c.stop(Event{})
	c.closeOnce.Do(func() { close(c.done) })
}

// Index returns the current slide index.
func (c *Carousel) Index() int { return c.index }

// Len returns the number of slides.
func (c *Carousel) Len() int { return c.n }

// Interval returns the autoplay period.
func (c *Carousel) Interval() time.Duration { return c.interval }

// State reports whether a timer is pending.
func (c *Carousel) State() State {
	if c.pending != nil {
		return StateRunning
	}
	return StateIdle
}

// Autoplay reports whether the machine may ever enter Running.
func (c *Carousel) Autoplay() bool {
	return !c.reducedMotion && c.interval > 0
}

// Wrap resolves k to a slide index in [0, n).
func Wrap(k, n int) int {
	return ((k % n) + n) % n
}

func (c *Carousel) start(Event) {
	if !c.Autoplay() {
		return
	}
	c.stop(Event{})

	c.gen++
	gen := c.gen
	notify := c.notify
	c.pending = c.sched.AfterFunc(c.interval, func() {
		notify(Tick{Gen: gen})
	})
}

func (c *Carousel) stop(Event) {
	if c.pending == nil {
		return
	}
	c.pending.Stop()
	c.pending = nil
}

func (c *Carousel) tick(ev Event) {
	if c.pending == nil || ev.Gen != c.gen {
		c.logger.Debug("stale carousel tick", "gen", ev.Gen, "current", c.gen)
		return
	}
	c.pending = nil
	c.show(c.index + 1)
	c.start(ev)
}

func (c *Carousel) navigate(k int) {
	c.stop(Event{})
	c.show(k)
	c.start(Event{})
}

func (c *Carousel) show(k int) {
	c.index = Wrap(k, c.n)
	c.slides.Toggle(func(i int, _ view.Element) bool { return i == c.index })
	if c.dots != nil {
		c.dots.Toggle(func(i int, _ view.Element) bool { return i == c.index })
	}
}

func (c *Carousel) buildDots() {
	if c.dots == nil {
		return
	}
	els := make([]view.Element, c.n)
	for k := range els {
		els[k] = view.Element{
			Role:      view.RoleDot,
			Key:       strconv.Itoa(k),
			AriaLabel: c.dotLabel(k),
		}
	}
	c.dots.Replace(els...)
}

func firstActive(slides []Slide) int {
	for i, s := range slides {
		if s.Active {
			return i
		}
	}
	return 0
}

func (c *Carousel) post(t Tick) {
	select {
	case c.ticks <- t:
	case <-c.done:
	}
}
