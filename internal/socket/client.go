package socket

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Client sends commands to a running instance
type Client struct {
	socketPath string
	timeout    time.Duration
}

// FindRunningInstance returns the socket path and pid of the most recently
// started instance
func FindRunningInstance() (string, int, error) {
	socketDir := SocketDir()

	var newest string
	var newestTime time.Time
	err := filepath.WalkDir(socketDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // the directory may not exist yet
		}
		name := d.Name()
		if d.IsDir() || !strings.HasPrefix(name, socketPrefix) || !strings.HasSuffix(name, socketSuffix) {
			return nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest, newestTime = path, info.ModTime()
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return "", 0, fmt.Errorf("error scanning socket directory: %w", err)
	}
	if newest == "" {
		return "", 0, fmt.Errorf("no running tui-flamechart instance found in %s", socketDir)
	}

	pidStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(newest), socketPrefix), socketSuffix)
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		pid = 0
	}
	return newest, pid, nil
}

// NewClient creates a client for the socket at socketPath
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}
	return &Client{socketPath: socketPath, timeout: 15 * time.Second}, nil
}

// Send sends msg and waits for the response
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var response Response
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}
	return &response, nil
}

// SendLoad asks the instance to load the dataset at path. Relative paths
// are resolved against the caller's working directory.
func (c *Client) SendLoad(path string) (*Response, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return c.Send(Message{Command: CommandLoad, Path: abs})
}

// SendSearch lists the nodes matching query
func (c *Client) SendSearch(query string) (*Response, error) {
	return c.Send(Message{Command: CommandSearch, Query: query})
}

// SendSelect selects the first node matching query
func (c *Client) SendSelect(query string) (*Response, error) {
	return c.Send(Message{Command: CommandSelect, Query: query})
}

// SendStatus asks for a description of the loaded dataset
func (c *Client) SendStatus() (*Response, error) {
	return c.Send(Message{Command: CommandStatus})
}
