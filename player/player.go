// Package player drives video playback for clip review: it loads a video,
// seeks, and plays a clip interval, pausing automatically at the clip end.
package player

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"
)

// DefaultPollInterval is how often the clip end is checked during playback.
const DefaultPollInterval = 200 * time.Millisecond

// ErrNoClip is returned by WaitClip when no clip is playing.
var ErrNoClip = errors.New("player: no clip playing")

// Backend is the media player being controlled.
type Backend interface {
	// Load opens a video reference (a video id, URL or file path).
	Load(ref string) error
	Seek(sec float64) error
	SetPaused(paused bool) error
	TimePos() (float64, error)
	Paused() (bool, error)
}

// Options configures a Player.
type Options struct {
	PollInterval time.Duration
	Logger       *slog.Logger
}

// Player wraps a Backend with clip playback. It is safe for concurrent use.
type Player struct {
	backend  Backend
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	clipEnd *float64
	poll    *pollSession
}

// pollSession is one clip-end watcher goroutine.
type pollSession struct {
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *pollSession) stop() {
	s.cancel()
	<-s.done
}

// New creates a player over backend.
func New(backend Backend, opts Options) *Player {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Player{
		backend:  backend,
		interval: opts.PollInterval,
		logger:   opts.Logger.With("component", "player"),
	}
}

// LoadVideo opens ref from the beginning, paused, dropping any pending clip end.
func (p *Player) LoadVideo(ref string) error {
	p.ClearClipEnd()
	if err := p.backend.Load(ref); err != nil {
		return err
	}
	if err := p.backend.Seek(0); err != nil {
		return err
	}
	return p.backend.SetPaused(true)
}

// SeekTo jumps to an absolute position in seconds.
func (p *Player) SeekTo(sec float64) error {
	return p.backend.Seek(sec)
}

// Play resumes playback. A pending clip end is watched again.
func (p *Player) Play() error {
	if err := p.backend.SetPaused(false); err != nil {
		return err
	}
	p.mu.Lock()
	if p.clipEnd != nil && p.poll == nil {
		p.startPollLocked(*p.clipEnd)
	}
	p.mu.Unlock()
	return nil
}

// Pause pauses playback and stops watching the clip end. The clip end is
// kept so Play continues the clip.
func (p *Player) Pause() error {
	p.stopPoll()
	return p.backend.SetPaused(true)
}

// CurrentTime returns the playback position in seconds.
func (p *Player) CurrentTime() (float64, error) {
	return p.backend.TimePos()
}

// PlayClip seeks to start, plays, and pauses once the position reaches end.
// A clip already playing is replaced.
func (p *Player) PlayClip(start, end float64) error {
	p.stopPoll()
	p.mu.Lock()
	p.clipEnd = &end
	p.mu.Unlock()

	if err := p.backend.Seek(start); err != nil {
		return err
	}
	if err := p.backend.SetPaused(false); err != nil {
		return err
	}

	p.mu.Lock()
	if p.poll == nil && p.clipEnd != nil {
		p.startPollLocked(end)
	}
	p.mu.Unlock()
	p.logger.Debug("playing clip", "start", start, "end", end)
	return nil
}

// ClearClipEnd stops the automatic pause; playback continues past the clip.
func (p *Player) ClearClipEnd() {
	p.mu.Lock()
	p.clipEnd = nil
	p.mu.Unlock()
	p.stopPoll()
}

// ClipEnd returns the pending clip end, if any.
func (p *Player) ClipEnd() (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.clipEnd == nil {
		return 0, false
	}
	return *p.clipEnd, true
}

// WaitClip blocks until the clip being watched stops (reached its end, was
// paused or replaced) or ctx is done.
func (p *Player) WaitClip(ctx context.Context) error {
	p.mu.Lock()
	poll := p.poll
	p.mu.Unlock()
	if poll == nil {
		return ErrNoClip
	}
	select {
	case <-poll.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the poll goroutine. The backend is not closed.
func (p *Player) Close() {
	p.stopPoll()
}

func (p *Player) stopPoll() {
	p.mu.Lock()
	poll := p.poll
	p.poll = nil
	p.mu.Unlock()
	if poll != nil {
		poll.stop()
	}
}

func (p *Player) startPollLocked(end float64) {
	ctx, cancel := context.WithCancel(context.Background())
	session := &pollSession{cancel: cancel, done: make(chan struct{})}
	p.poll = session
	go p.watch(ctx, session, end)
}

// watch pauses playback once the position reaches end. It exits early when
// cancelled, when playback is paused from elsewhere, or on backend errors.
func (p *Player) watch(ctx context.Context, session *pollSession, end float64) {
	defer close(session.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		paused, err := p.backend.Paused()
		if err != nil {
			p.logger.Warn("poll paused state", "error", err)
			p.detach(session, false)
			return
		}
		if paused {
			p.detach(session, false)
			return
		}

		pos, err := p.backend.TimePos()
		if err != nil {
			p.logger.Warn("poll position", "error", err)
			p.detach(session, false)
			return
		}
		if pos >= end {
			if err := p.backend.SetPaused(true); err != nil {
				p.logger.Warn("pause at clip end", "error", err)
			}
			p.logger.Debug("clip end reached", "pos", pos, "end", end)
			p.detach(session, true)
			return
		}
	}
}

// detach forgets session if it is still current, optionally clearing the clip end.
func (p *Player) detach(session *pollSession, clearEnd bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.poll != session {
		return
	}
	p.poll = nil
	if clearEnd {
		p.clipEnd = nil
	}
	session.cancel()
}
