package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/simplereplay-cli/player"
)

var _ player.Backend = (*Client)(nil)

// fakeMpv answers IPC commands on a Unix socket, emitting an event line
// before every reply the way mpv interleaves events.
type fakeMpv struct {
	mu       sync.Mutex
	commands [][]any
	props    map[string]any
}

func startFakeMpv(t *testing.T) (string, *fakeMpv) {
	t.Helper()
	sock := filepath.Join(t.TempDir(), "mpv.sock")
	ln, err := net.Listen("unix", sock)
	require.NoError(t, err)

	f := &fakeMpv{props: map[string]any{"time-pos": 12.5, "pause": true}}
	done := make(chan struct{})
	t.Cleanup(func() {
		ln.Close()
		<-done
	})

	go func() {
		defer close(done)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		for {
			line, err := r.ReadBytes('\n')
			if err != nil {
				return
			}
			var req ipcRequest
			if json.Unmarshal(line, &req) != nil {
				return
			}
			resp := f.handle(req)
			conn.Write([]byte(`{"event":"playback-restart"}` + "\n"))
			data, _ := json.Marshal(resp)
			conn.Write(append(data, '\n'))
		}
	}()
	return sock, f
}

func (f *fakeMpv) handle(req ipcRequest) ipcResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, req.Command)
	resp := ipcResponse{RequestID: req.RequestID, Error: "success"}
	switch req.Command[0] {
	case "get_property":
		v, ok := f.props[req.Command[1].(string)]
		if !ok {
			resp.Error = "property not found"
		}
		resp.Data = v
	case "set_property":
		f.props[req.Command[1].(string)] = req.Command[2]
	}
	return resp
}

func (f *fakeMpv) command(i int) []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commands[i]
}

func TestClientBackendCommands(t *testing.T) {
	sock, f := startFakeMpv(t)
	c := NewClient(sock)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.ConnectWait(ctx))
	defer c.Close()

	require.NoError(t, c.Load("ZabnNjou_PI"))
	assert.Equal(t, []any{"loadfile", "https://www.youtube.com/watch?v=ZabnNjou_PI", "replace"}, f.command(0))

	require.NoError(t, c.Seek(498))
	assert.Equal(t, []any{"seek", 498.0, "absolute"}, f.command(1))

	paused, err := c.Paused()
	require.NoError(t, err)
	assert.True(t, paused)

	require.NoError(t, c.SetPaused(false))
	paused, err = c.Paused()
	require.NoError(t, err)
	assert.False(t, paused)

	pos, err := c.TimePos()
	require.NoError(t, err)
	assert.Equal(t, 12.5, pos)

	_, err = c.Duration()
	assert.ErrorContains(t, err, "property not found")
}

func TestClientNotConnected(t *testing.T) {
	c := NewClient(filepath.Join(t.TempDir(), "missing.sock"))
	_, err := c.TimePos()
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.ErrorIs(t, c.Connect(), ErrSocketNotFound)
	assert.False(t, c.IsConnected())
}
