package app

import (
	"fmt"
	"log"
	"strings"

	"github.com/pstuifzand/tui-flamechart/internal/flat"
	"github.com/pstuifzand/tui-flamechart/internal/search"
	"github.com/pstuifzand/tui-flamechart/internal/socket"
	"github.com/pstuifzand/tui-flamechart/internal/ui"
)

// maxSocketResults caps the nodes listed in a search reply
const maxSocketResults = 100

// handleSocketMessage processes messages received from the Unix socket
func (a *App) handleSocketMessage(msg socket.Message) {
	log.Printf("Received socket message: command=%s, path=%s, query=%s", msg.Command, msg.Path, msg.Query)

	switch msg.Command {
	case socket.CommandLoad:
		a.handleLoadCommand(msg)
	case socket.CommandSearch:
		socket.Reply(msg, a.handleSearchCommand(msg))
	case socket.CommandSelect:
		socket.Reply(msg, a.handleSelectCommand(msg))
	case socket.CommandStatus:
		socket.Reply(msg, a.handleStatusCommand())
	default:
		log.Printf("Unknown socket command: %s", msg.Command)
		socket.Reply(msg, &socket.Response{Message: "unknown command: " + msg.Command})
	}
}

// handleLoadCommand replaces the dataset. The sender was answered when the
// message was queued, so failures only reach the status line and the log.
func (a *App) handleLoadCommand(msg socket.Message) {
	if msg.Path == "" {
		log.Printf("Load command missing path")
		return
	}
	if err := a.LoadFile(msg.Path); err != nil {
		a.SetError(err)
	}
}

func (a *App) handleSearchCommand(msg socket.Message) *socket.Response {
	nodes, resp := a.socketSearch(msg.Query)
	if resp != nil {
		return resp
	}

	total := len(nodes)
	if total > maxSocketResults {
		nodes = nodes[:maxSocketResults]
	}
	out, err := ui.NewSearchOutputFormatter(a.engine.Options().TimeUnits).FormatResults(nodes, ui.OutputFormatText, nil)
	if err != nil {
		return &socket.Response{Message: err.Error()}
	}

	var results []string
	if out = strings.TrimRight(out, "\n"); out != "" {
		results = strings.Split(out, "\n")
	}
	return &socket.Response{
		Success: true,
		Message: fmt.Sprintf("%d matches", total),
		Results: results,
	}
}

func (a *App) handleSelectCommand(msg socket.Message) *socket.Response {
	nodes, resp := a.socketSearch(msg.Query)
	if resp != nil {
		return resp
	}
	if len(nodes) == 0 {
		return &socket.Response{Message: fmt.Sprintf("no match for %q", msg.Query)}
	}
	a.selectNode(nodes[0])
	return &socket.Response{
		Success: true,
		Message: "selected " + nodes[0].Name(),
		Results: []string{nodes[0].Name()},
	}
}

// socketSearch runs query against the loaded dataset. A non-nil response
// is an error to send back.
func (a *App) socketSearch(query string) ([]*flat.Node, *socket.Response) {
	if a.dataset == nil {
		return nil, &socket.Response{Message: "no dataset loaded"}
	}
	if strings.TrimSpace(query) == "" {
		return nil, &socket.Response{Message: "empty query"}
	}
	nodes, err := search.Search(a.nodes(), query)
	if err != nil {
		return nil, &socket.Response{Message: err.Error()}
	}
	return nodes, nil
}

func (a *App) handleStatusCommand() *socket.Response {
	if a.dataset == nil {
		return &socket.Response{Success: true, Message: "no dataset loaded"}
	}

	view := a.engine.View()
	units := a.engine.Options().TimeUnits
	from := view.PositionX()
	results := []string{
		"title: " + a.title(),
		"file: " + a.filePath,
		fmt.Sprintf("nodes: %d", a.flame.Tree().Len()),
		fmt.Sprintf("levels: %d", a.flame.Tree().MaxLevel()+1),
		fmt.Sprintf("view: %s - %s %s", a.formatTime(from), a.formatTime(from+view.RealView()), units),
	}
	if n := a.flame.Selected(); n != nil {
		results = append(results, fmt.Sprintf("selected: %s (%s %s)", n.Name(), a.formatTime(n.Duration), units))
	}
	return &socket.Response{Success: true, Message: a.title(), Results: results}
}
