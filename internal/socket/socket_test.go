package socket

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, opts ...func(*Server)) (*Server, *Client) {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	server, err := NewServer(os.Getpid())
	require.NoError(t, err)
	t.Cleanup(server.Stop)
	for _, opt := range opts {
		opt(server)
	}
	server.Start()

	client, err := NewClient(server.SocketPath())
	require.NoError(t, err)
	return server, client
}

func receive(t *testing.T, server *Server) Message {
	t.Helper()
	select {
	case msg := <-server.Messages():
		return msg
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for message")
		return Message{}
	}
}

func TestSendLoad(t *testing.T) {
	server, client := startServer(t)

	response, err := client.SendLoad("testdata/trace.json")
	require.NoError(t, err)
	assert.True(t, response.Success, response.Message)

	msg := receive(t, server)
	assert.Equal(t, CommandLoad, msg.Command)
	assert.True(t, filepath.IsAbs(msg.Path))
	assert.Equal(t, "trace.json", filepath.Base(msg.Path))
	assert.Nil(t, msg.ResponseChan, "load is acknowledged without waiting")
}

func TestSynchronousCommandWaitsForReply(t *testing.T) {
	server, client := startServer(t)

	go func() {
		msg := <-server.Messages()
		Reply(msg, &Response{Success: true, Message: "2 matches", Results: []string{"a", "b"}})
	}()

	response, err := client.SendSearch("type:cpu")
	require.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, []string{"a", "b"}, response.Results)
}

func TestSynchronousCommandTimesOut(t *testing.T) {
	server, client := startServer(t, func(s *Server) {
		s.replyTimeout = 50 * time.Millisecond
	})

	response, err := client.SendStatus()
	require.NoError(t, err)
	assert.False(t, response.Success)
	assert.Equal(t, "Command timed out", response.Message)

	msg := receive(t, server)
	assert.Equal(t, CommandStatus, msg.Command)
}

func TestMissingCommand(t *testing.T) {
	_, client := startServer(t)

	response, err := client.Send(Message{Path: "x"})
	require.NoError(t, err)
	assert.False(t, response.Success)
	assert.Equal(t, "Missing command field", response.Message)
}

func TestReplyIgnoresQueuedCommands(t *testing.T) {
	assert.NotPanics(t, func() {
		Reply(Message{Command: CommandLoad}, &Response{Success: true})
	})
}

func TestFindRunningInstance(t *testing.T) {
	server, _ := startServer(t)

	socketPath, pid, err := FindRunningInstance()
	require.NoError(t, err)
	assert.Equal(t, server.SocketPath(), socketPath)
	assert.Equal(t, os.Getpid(), pid)
}

func TestFindRunningInstanceNone(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	_, _, err := FindRunningInstance()
	assert.Error(t, err)
}
