// Package socket lets another process control a running chart over a Unix
// socket with newline separated JSON messages
package socket

// Message is a command sent to the running tui-flamechart instance
type Message struct {
	Command string `json:"command"`
	Path    string `json:"path,omitempty"`  // load
	Query   string `json:"query,omitempty"` // search, select

	// set by the server for commands that answer with data
	ResponseChan chan *Response `json:"-"`
}

// Response is the server's answer to a message
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Results []string `json:"results,omitempty"`
}

// Command types
const (
	CommandLoad   = "load"   // replace the dataset with the file at Path
	CommandSearch = "search" // list the nodes matching Query
	CommandSelect = "select" // select and focus the first match of Query
	CommandStatus = "status" // describe the loaded dataset and the view
)

// synchronous reports whether the sender waits for the command's result
func synchronous(command string) bool {
	switch command {
	case CommandSearch, CommandSelect, CommandStatus:
		return true
	}
	return false
}
