package player

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeBackend struct {
	mu      sync.Mutex
	loaded  string
	pos     float64
	paused  bool
	seeks   []float64
	pauses  int
	posErr  error
	advance float64
}

func (f *fakeBackend) Load(ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loaded = ref
	f.paused = false
	return nil
}

func (f *fakeBackend) Seek(sec float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pos = sec
	f.seeks = append(f.seeks, sec)
	return nil
}

func (f *fakeBackend) SetPaused(paused bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paused = paused
	if paused {
		f.pauses++
	}
	return nil
}

// TimePos advances the position by advance on every read while playing.
func (f *fakeBackend) TimePos() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.posErr != nil {
		return 0, f.posErr
	}
	if !f.paused {
		f.pos += f.advance
	}
	return f.pos, nil
}

func (f *fakeBackend) Paused() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused, nil
}

func (f *fakeBackend) isPaused() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paused
}

func newTestPlayer(b *fakeBackend) *Player {
	return New(b, Options{PollInterval: 5 * time.Millisecond})
}

func TestPlayClipPausesAtEnd(t *testing.T) {
	b := &fakeBackend{advance: 1}
	p := newTestPlayer(b)
	defer p.Close()

	require.NoError(t, p.PlayClip(498, 509))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, p.WaitClip(ctx))

	assert.True(t, b.isPaused())
	pos, err := p.CurrentTime()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pos, 509.0)
	_, pending := p.ClipEnd()
	assert.False(t, pending)
	assert.Equal(t, []float64{498}, b.seeks)
}

func TestPauseStopsPollButKeepsClipEnd(t *testing.T) {
	b := &fakeBackend{}
	p := newTestPlayer(b)
	defer p.Close()

	require.NoError(t, p.PlayClip(10, 20))
	require.NoError(t, p.Pause())
	assert.ErrorIs(t, p.WaitClip(context.Background()), ErrNoClip)

	end, pending := p.ClipEnd()
	assert.True(t, pending)
	assert.Equal(t, 20.0, end)

	b.mu.Lock()
	b.advance = 5
	b.mu.Unlock()
	require.NoError(t, p.Play())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, p.WaitClip(ctx))
	assert.True(t, b.isPaused())
}

func TestExternalPauseEndsPoll(t *testing.T) {
	b := &fakeBackend{}
	p := newTestPlayer(b)
	defer p.Close()

	require.NoError(t, p.PlayClip(10, 20))
	require.NoError(t, b.SetPaused(true))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, p.WaitClip(ctx))
	_, pending := p.ClipEnd()
	assert.True(t, pending, "an external pause keeps the clip end")
}

func TestNewClipReplacesPoll(t *testing.T) {
	b := &fakeBackend{}
	p := newTestPlayer(b)
	defer p.Close()

	require.NoError(t, p.PlayClip(10, 20))
	first := p.poll
	require.NoError(t, p.PlayClip(30, 40))

	select {
	case <-first.done:
	case <-time.After(time.Second):
		t.Fatal("first poll still running")
	}
	end, _ := p.ClipEnd()
	assert.Equal(t, 40.0, end)
}

func TestClearClipEndAndLoadVideo(t *testing.T) {
	b := &fakeBackend{}
	p := newTestPlayer(b)
	defer p.Close()

	require.NoError(t, p.PlayClip(10, 20))
	p.ClearClipEnd()
	_, pending := p.ClipEnd()
	assert.False(t, pending)
	assert.ErrorIs(t, p.WaitClip(context.Background()), ErrNoClip)

	require.NoError(t, p.PlayClip(10, 20))
	require.NoError(t, p.LoadVideo("ZabnNjou_PI"))
	assert.Equal(t, "ZabnNjou_PI", b.loaded)
	assert.True(t, b.isPaused())
	_, pending = p.ClipEnd()
	assert.False(t, pending)
}

func TestBackendErrorEndsPoll(t *testing.T) {
	b := &fakeBackend{posErr: errors.New("socket closed")}
	p := newTestPlayer(b)
	defer p.Close()

	require.NoError(t, p.PlayClip(10, 20))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, p.WaitClip(ctx))
}

func TestSeekTo(t *testing.T) {
	b := &fakeBackend{}
	p := newTestPlayer(b)
	require.NoError(t, p.SeekTo(42))
	pos, err := p.CurrentTime()
	require.NoError(t, err)
	assert.Equal(t, 42.0, pos)
}
