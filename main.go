package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-flamechart/internal/app"
	"github.com/pstuifzand/tui-flamechart/internal/flat"
	"github.com/pstuifzand/tui-flamechart/internal/search"
	"github.com/pstuifzand/tui-flamechart/internal/socket"
	"github.com/pstuifzand/tui-flamechart/internal/storage"
	"github.com/pstuifzand/tui-flamechart/internal/ui"
)

func main() {
	debug := flag.Bool("debug", false, "Enable debug mode (shows key events in status)")
	load := flag.String("load", "", "Open a dataset in a running tui-flamechart instance")
	configPath := flag.String("config", "", "Config file (default ~/.config/tui-flamechart/config.toml)")
	themeName := flag.String("theme", "", "Theme name, overrides the config file")
	query := flag.String("query", "", "Search the dataset and print the matches instead of starting the UI")
	format := flag.String("format", "text", "Output format for -query: text, fields, json, jsonl")
	fields := flag.String("fields", "", "Comma separated fields for -query (name,type,start,duration,self,level,path)")
	units := flag.String("units", "", "Time units for -query output, overrides the dataset")
	selectQuery := flag.String("select", "", "Select the first match in a running instance")
	status := flag.Bool("status", false, "Print the state of a running instance")
	flag.Parse()

	args := flag.Args()
	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	// Batch and remote modes write to stdout and never open the terminal
	log.SetOutput(io.Discard)
	var remote func(*socket.Client) (*socket.Response, error)
	switch {
	case *selectQuery != "":
		remote = func(c *socket.Client) (*socket.Response, error) { return c.SendSelect(*selectQuery) }
	case *status:
		remote = (*socket.Client).SendStatus
	case *query != "" && filePath == "":
		remote = func(c *socket.Client) (*socket.Response, error) { return c.SendSearch(*query) }
	}
	if remote != nil {
		if err := runRemote(remote); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *query != "" {
		if err := runQuery(filePath, *query, *format, *fields, *units); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logFile, err := os.Create("tfc.log")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if *load != "" {
		if err := sendLoad(*load); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Dataset sent to running instance")
		return
	}

	application, err := app.NewApp(app.Options{
		File:       filePath,
		ConfigPath: *configPath,
		Theme:      *themeName,
		Debug:      *debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}

// runQuery prints the nodes of the dataset at path that match query
func runQuery(path, query, format, fields, units string) error {
	outputFormat, err := ui.ParseFormatFlag(format)
	if err != nil {
		return err
	}

	ds, err := storage.Load(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	nodes, err := search.Search(flat.Build(ds.Nodes).Nodes(), query)
	if err != nil {
		return err
	}

	if units == "" {
		units = ds.Units
	}
	out, err := ui.NewSearchOutputFormatter(units).FormatResults(nodes, outputFormat, ui.ParseFieldsFlag(fields))
	if err != nil {
		return err
	}
	if out != "" {
		fmt.Println(strings.TrimRight(out, "\n"))
	}
	return nil
}

// sendLoad asks a running instance to open path
func sendLoad(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(abs); err != nil {
		return err
	}

	client, err := connect()
	if err != nil {
		return err
	}
	_, err = send(client, func(c *socket.Client) (*socket.Response, error) { return c.SendLoad(abs) })
	return err
}

// runRemote sends one request to a running instance and prints the reply
func runRemote(request func(*socket.Client) (*socket.Response, error)) error {
	client, err := connect()
	if err != nil {
		return err
	}
	response, err := send(client, request)
	if err != nil {
		return err
	}
	if len(response.Results) == 0 {
		fmt.Println(response.Message)
	}
	for _, line := range response.Results {
		fmt.Println(line)
	}
	return nil
}

func connect() (*socket.Client, error) {
	socketPath, pid, err := socket.FindRunningInstance()
	if err != nil {
		return nil, err
	}
	log.Printf("Found running instance at PID %d: %s", pid, socketPath)

	client, err := socket.NewClient(socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return client, nil
}

func send(client *socket.Client, request func(*socket.Client) (*socket.Response, error)) (*socket.Response, error) {
	response, err := request(client)
	if err != nil {
		return nil, fmt.Errorf("failed to send command: %w", err)
	}
	if !response.Success {
		return nil, fmt.Errorf("server error: %s", response.Message)
	}
	return response, nil
}
