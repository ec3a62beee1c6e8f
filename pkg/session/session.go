// Package session drives interactive previews: parameter changes are
// debounced, computations run one at a time, and results that a newer
// change has superseded are dropped.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/user/laserpreview/pkg/orchestrator"
	"github.com/user/laserpreview/pkg/ports"
)

// DefaultDelay is the debounce interval between the last change and the
// start of a computation.
const DefaultDelay = 200 * time.Millisecond

// RenderFunc computes one preview. Orchestrator.Render satisfies it.
type RenderFunc func(ctx context.Context, req orchestrator.RenderRequest) (orchestrator.RenderResult, error)

// Update is delivered for every computation that is still current when it
// finishes.
type Update struct {
	Generation uint64
	Request    orchestrator.RenderRequest
	Result     orchestrator.RenderResult
	Err        error
}

// Options configures a Session.
type Options struct {
	Delay    time.Duration // 0 means DefaultDelay
	OnUpdate func(Update)  // called from the computing goroutine
	Logger   ports.Logger
}

// Session owns the debounce timer and the generation counter of one
// interactive preview.
type Session struct {
	render   RenderFunc
	delay    time.Duration
	onUpdate func(Update)
	logger   ports.Logger

	ctx    context.Context
	cancel context.CancelFunc

	generation atomic.Uint64
	runMu      sync.Mutex // one computation at a time
	wg         sync.WaitGroup

	mu     sync.Mutex // guards the fields below
	timer  *time.Timer
	latest *Update
	closed bool
}

// New creates a session around render.
func New(render RenderFunc, opts Options) *Session {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		render:   render,
		delay:    opts.Delay,
		onUpdate: opts.OnUpdate,
		ctx:      ctx,
		cancel:   cancel,
	}
	if opts.Logger != nil {
		s.logger = opts.Logger.WithComponent("session")
	}
	return s
}

// Update records a parameter change and (re)arms the debounce timer. It
// returns the generation assigned to req, or 0 once the session is closed.
func (s *Session) Update(req orchestrator.RenderRequest) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}

	gen := s.generation.Add(1)
	s.stopTimer()

	s.wg.Add(1)
	s.timer = time.AfterFunc(s.delay, func() { s.fire(gen, req) })
	s.debug("Generation %d scheduled in %v", gen, s.delay)
	return gen
}

// stopTimer cancels the pending timer. Callers hold s.mu.
func (s *Session) stopTimer() {
	if s.timer != nil && s.timer.Stop() {
		// the callback will never run
		s.wg.Done()
	}
	s.timer = nil
}

func (s *Session) fire(gen uint64, req orchestrator.RenderRequest) {
	defer s.wg.Done()

	if !s.current(gen) {
		return
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	// superseded while waiting for the previous computation
	if !s.current(gen) {
		return
	}

	s.debug("Generation %d computing", gen)
	result, err := s.render(s.ctx, req)

	s.mu.Lock()
	if s.closed || s.ctx.Err() != nil || gen != s.generation.Load() {
		s.mu.Unlock()
		s.debug("Generation %d discarded", gen)
		return
	}
	u := Update{Generation: gen, Request: req, Result: result, Err: err}
	if err == nil {
		s.latest = &u
	}
	s.mu.Unlock()

	if s.onUpdate != nil {
		s.onUpdate(u)
	}
}

func (s *Session) current(gen uint64) bool {
	return s.ctx.Err() == nil && gen == s.generation.Load()
}

// Latest returns the most recent successful update.
func (s *Session) Latest() (Update, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return Update{}, false
	}
	return *s.latest, true
}

// Generation returns the newest generation handed out by Update.
func (s *Session) Generation() uint64 {
	return s.generation.Load()
}

// Close cancels any pending or running computation and waits for it to
// return. Later calls to Update are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.stopTimer()
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Session) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
