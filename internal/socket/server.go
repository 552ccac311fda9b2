package socket

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"time"
)

const (
	socketPrefix = "tfc-"
	socketSuffix = ".sock"

	defaultReplyTimeout = 10 * time.Second
)

// SocketDir returns the directory holding the sockets of running instances:
// $XDG_RUNTIME_DIR/tui-flamechart, or ~/.local/share/tui-flamechart
func SocketDir() string {
	if xdgRuntime := os.Getenv("XDG_RUNTIME_DIR"); xdgRuntime != "" {
		return filepath.Join(xdgRuntime, "tui-flamechart")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "tui-flamechart")
}

// Server accepts commands on a Unix socket and hands them to the UI loop
// through Messages
type Server struct {
	socketPath   string
	listener     net.Listener
	msgChan      chan Message
	stopChan     chan struct{}
	replyTimeout time.Duration
}

// NewServer listens on SocketDir()/tfc-<pid>.sock
func NewServer(pid int) (*Server, error) {
	return NewServerAt(SocketDir(), pid)
}

// NewServerAt listens on dir/tfc-<pid>.sock
func NewServerAt(dir string, pid int) (*Server, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	socketPath := filepath.Join(dir, fmt.Sprintf("%s%d%s", socketPrefix, pid, socketSuffix))

	// a stale socket of a crashed instance with the same pid
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}

	log.Printf("Socket server listening on: %s", socketPath)

	return &Server{
		socketPath:   socketPath,
		listener:     listener,
		msgChan:      make(chan Message, 10),
		stopChan:     make(chan struct{}),
		replyTimeout: defaultReplyTimeout,
	}, nil
}

// Start begins accepting connections
func (s *Server) Start() {
	go s.acceptLoop()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopChan:
				return
			default:
				log.Printf("Error accepting connection: %v", err)
				continue
			}
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)
	reply := func(r *Response) {
		if err := encoder.Encode(r); err != nil {
			log.Printf("Error sending response: %v", err)
		}
	}

	var msg Message
	if err := decoder.Decode(&msg); err != nil {
		if err != io.EOF {
			log.Printf("Error decoding message: %v", err)
		}
		reply(&Response{Message: fmt.Sprintf("Invalid message format: %v", err)})
		return
	}

	if msg.Command == "" {
		reply(&Response{Message: "Missing command field"})
		return
	}

	if synchronous(msg.Command) {
		msg.ResponseChan = make(chan *Response, 1)
	}

	select {
	case s.msgChan <- msg:
		if msg.ResponseChan == nil {
			reply(&Response{Success: true, Message: "Command queued"})
			return
		}
		select {
		case response := <-msg.ResponseChan:
			reply(response)
		case <-time.After(s.replyTimeout):
			reply(&Response{Message: "Command timed out"})
		case <-s.stopChan:
			reply(&Response{Message: "Server is shutting down"})
		}
	case <-s.stopChan:
		reply(&Response{Message: "Server is shutting down"})
	}
}

// Messages returns the channel of received commands
func (s *Server) Messages() <-chan Message {
	return s.msgChan
}

// SocketPath returns the path of the Unix socket
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Stop closes the listener and removes the socket file
func (s *Server) Stop() {
	close(s.stopChan)
	if s.listener != nil {
		s.listener.Close()
	}
	if s.socketPath != "" {
		os.Remove(s.socketPath)
	}
	log.Printf("Socket server stopped")
}

// Reply answers a synchronous message. It does nothing for queued commands.
func Reply(msg Message, r *Response) {
	if msg.ResponseChan == nil {
		return
	}
	select {
	case msg.ResponseChan <- r:
	default:
		log.Printf("Dropping second reply to %s", msg.Command)
	}
}
