package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/user/simplereplay-cli/pkg/videoref"
)

// DefaultSocketPath is the default Unix socket path for mpv IPC.
const DefaultSocketPath = "/tmp/simplereplay-mpv.sock"

// replyTimeout bounds how long a command waits for mpv to answer.
const replyTimeout = 5 * time.Second

var (
	// ErrNotConnected is returned when attempting operations on a disconnected client.
	ErrNotConnected = errors.New("mpv: not connected")
	// ErrSocketNotFound is returned when the socket cannot be dialled.
	ErrSocketNotFound = errors.New("mpv: socket not found - is mpv running with --input-ipc-server?")
)

type ipcRequest struct {
	Command   []any  `json:"command"`
	RequestID uint64 `json:"request_id"`
}

// ipcResponse is a command reply. Event lines share the socket and decode
// with a zero RequestID.
type ipcResponse struct {
	Data      any    `json:"data"`
	RequestID uint64 `json:"request_id"`
	Error     string `json:"error"`
}

// Client is an mpv IPC client over a Unix socket. It implements player.Backend.
// Commands are serialized; each waits for the reply carrying its request id.
type Client struct {
	socketPath string

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
	lastID uint64
}

// NewClient creates a client for socketPath, or DefaultSocketPath when empty.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}
	return &Client{socketPath: socketPath}
}

// Connect dials the socket. Connecting twice is a no-op.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return nil
	}
	conn, err := net.DialTimeout("unix", c.socketPath, time.Second)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSocketNotFound, err)
	}
	c.conn, c.reader = conn, bufio.NewReader(conn)
	return nil
}

// ConnectWait retries Connect until it succeeds or ctx is done. mpv creates
// its socket a moment after the process starts.
func (c *Client) ConnectWait(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		err := c.Connect()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return err
		case <-ticker.C:
		}
	}
}

// Close drops the connection. mpv keeps running.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn, c.reader = nil, nil
	return err
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *Client) SocketPath() string {
	return c.socketPath
}

// Load replaces the current file. Video ids are expanded to watch URLs,
// which mpv resolves through yt-dlp.
func (c *Client) Load(ref string) error {
	_, err := c.call("loadfile", videoref.WatchURL(ref), "replace")
	return err
}

// Seek jumps to an absolute position in seconds.
func (c *Client) Seek(sec float64) error {
	_, err := c.call("seek", sec, "absolute")
	return err
}

func (c *Client) SetPaused(paused bool) error {
	return c.SetProperty("pause", paused)
}

// TimePos returns the playback position in seconds.
func (c *Client) TimePos() (float64, error) {
	return c.floatProperty("time-pos")
}

// Duration returns the length of the loaded video in seconds.
func (c *Client) Duration() (float64, error) {
	return c.floatProperty("duration")
}

func (c *Client) Paused() (bool, error) {
	v, err := c.GetProperty("pause")
	if err != nil {
		return false, err
	}
	paused, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("mpv: pause is %T, not bool", v)
	}
	return paused, nil
}

// GetProperty reads an mpv property such as "path" or "time-pos".
func (c *Client) GetProperty(name string) (any, error) {
	return c.call("get_property", name)
}

// SetProperty writes an mpv property such as "pause".
func (c *Client) SetProperty(name string, value any) error {
	_, err := c.call("set_property", name, value)
	return err
}

func (c *Client) floatProperty(name string) (float64, error) {
	v, err := c.GetProperty(name)
	if err != nil {
		return 0, err
	}
	// JSON numbers decode as float64.
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("mpv: %s is %T, not a number", name, v)
	}
	return f, nil
}

// call writes {"command": [command, args...], "request_id": n} as one line
// and returns the data of the reply with the same request id.
func (c *Client) call(command string, args ...any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil, ErrNotConnected
	}

	c.lastID++
	req := ipcRequest{Command: append([]any{command}, args...), RequestID: c.lastID}
	line, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("mpv: encode %s: %w", command, err)
	}
	if err := c.conn.SetDeadline(time.Now().Add(replyTimeout)); err != nil {
		return nil, fmt.Errorf("mpv: %w", err)
	}
	defer c.conn.SetDeadline(time.Time{})

	if _, err := c.conn.Write(append(line, '\n')); err != nil {
		return nil, fmt.Errorf("mpv: send %s: %w", command, err)
	}

	for {
		raw, err := c.reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("mpv: read reply to %s: %w", command, err)
		}
		var resp ipcResponse
		if json.Unmarshal(raw, &resp) != nil || resp.RequestID != req.RequestID {
			continue
		}
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("mpv: %s: %s", command, resp.Error)
		}
		return resp.Data, nil
	}
}
