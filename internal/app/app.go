package app

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-flamechart/internal/chart"
	"github.com/pstuifzand/tui-flamechart/internal/config"
	"github.com/pstuifzand/tui-flamechart/internal/flamechart"
	"github.com/pstuifzand/tui-flamechart/internal/flat"
	"github.com/pstuifzand/tui-flamechart/internal/history"
	"github.com/pstuifzand/tui-flamechart/internal/interaction"
	"github.com/pstuifzand/tui-flamechart/internal/model"
	"github.com/pstuifzand/tui-flamechart/internal/schedule"
	"github.com/pstuifzand/tui-flamechart/internal/socket"
	"github.com/pstuifzand/tui-flamechart/internal/storage"
	"github.com/pstuifzand/tui-flamechart/internal/theme"
	"github.com/pstuifzand/tui-flamechart/internal/ui"
)

const (
	historySize = 100
	messageTTL  = 3 * time.Second
)

// Options configure NewApp
type Options struct {
	File       string // dataset to open at startup
	ConfigPath string // "" uses ~/.config/tui-flamechart/config.toml
	Theme      string // overrides the theme of the config file
	Debug      bool
	NoSocket   bool
}

// App is the main application controller
type App struct {
	screen       *ui.Screen
	canvas       *ui.Canvas
	engine       *chart.Engine
	interactions *interaction.Engine
	flame        *flamechart.Plugin

	search   *ui.Search
	command  *ui.Prompt
	help     *ui.HelpScreen
	splash   *ui.SplashScreen
	messages *ui.MessageLogger

	cfg          *config.Config
	configPath   string
	dataset      *model.Dataset
	filePath     string
	socketServer *socket.Server

	keybindings        []KeyBinding
	pendingKeybindings []PendingKeyBinding
	pendingKey         rune

	mouseDown  bool
	dirty      bool
	lastStatus string
	quit       bool
	debugMode  bool
}

// NewApp opens the terminal and creates the application
func NewApp(opts Options) (*App, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	themeName := cfg.Theme
	if opts.Theme != "" {
		themeName = opts.Theme
	}

	screen, err := ui.NewScreen(theme.LoadThemeOrDefault(themeName))
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	screen.EnableMouse()

	a := newApp(screen, cfg, nil, newPersistedHistories())
	a.configPath = opts.ConfigPath
	a.debugMode = opts.Debug

	if opts.File != "" {
		if err := a.LoadFile(opts.File); err != nil {
			screen.Close()
			return nil, err
		}
	}

	if !opts.NoSocket {
		server, err := socket.NewServer(os.Getpid())
		if err != nil {
			log.Printf("socket server disabled: %v", err)
		} else {
			server.Start()
			a.socketServer = server
		}
	}

	return a, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

type histories struct {
	command, search *ui.History
}

// newPersistedHistories loads the prompt histories. Failing to read them
// leaves them empty.
func newPersistedHistories() histories {
	manager, err := history.NewManager()
	if err != nil {
		log.Printf("history disabled: %v", err)
		return histories{}
	}
	command, err := ui.NewHistoryWithManager(historySize, manager, "commands")
	if err != nil {
		log.Printf("load command history: %v", err)
	}
	search, err := ui.NewHistoryWithManager(historySize, manager, "search")
	if err != nil {
		log.Printf("load search history: %v", err)
	}
	return histories{command: command, search: search}
}

// newApp builds the application on an initialized screen. A nil clock runs
// deferred chart work on the event loop.
func newApp(screen *ui.Screen, cfg *config.Config, clock schedule.Clock, h histories) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{
		screen:       screen,
		canvas:       ui.NewCanvas(screen),
		interactions: interaction.New(),
		search:       ui.NewSearch(h.search),
		command:      ui.NewCommandPrompt(h.command),
		help:         ui.NewHelpScreen(),
		splash:       ui.NewSplashScreen(),
		messages:     ui.NewMessageLogger(50, messageTTL),
		cfg:          cfg,
		dirty:        true,
	}
	if clock == nil {
		clock = schedule.NewLoopClock(a.post)
	}

	a.engine = chart.New(a.canvas, a.interactions, 0, 0)
	a.engine.SetStyles(stylesFromTheme(screen.Theme))
	a.engine.AddPlugin(chart.NewRuler())
	a.flame = flamechart.New(clock)
	a.engine.AddPlugin(a.flame)
	a.flame.Subscribe(a.handleNotification)
	a.applySettings()
	a.layout()

	a.keybindings = a.InitializeKeybindings()
	a.pendingKeybindings = a.InitializePendingKeybindings()
	a.help.SetKeybindings(a.helpEntries())

	a.splash.Show()
	return a
}

// stylesFromTheme takes the chart colors from the theme. Colors the theme
// leaves at the terminal default keep the chart defaults.
func stylesFromTheme(t *theme.Theme) chart.Styles {
	s := chart.DefaultStyles()
	set := func(dst *string, c tcell.Color) {
		if hex := theme.ToHex(c); hex != "" {
			*dst = hex
		}
	}
	set(&s.BlockTextColor, t.Colors.BlockText)
	set(&s.GridLineColor, t.Colors.GridLine)
	set(&s.SelectionColor, t.Colors.Selection)
	set(&s.RulerColor, t.Colors.RulerBackground)
	set(&s.FontColor, t.Colors.RulerText)
	return s
}

// callbackEvent carries a deferred callback into the event loop
type callbackEvent struct {
	tcell.EventTime
	f func()
}

func (a *App) post(f func()) {
	ev := &callbackEvent{f: f}
	ev.SetEventNow()
	if err := a.screen.PostEvent(ev); err != nil {
		log.Printf("drop deferred callback: %v", err)
	}
}

// Run starts the main event loop
func (a *App) Run() error {
	defer a.Close()

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			event := a.screen.PollEvent()
			eventChan <- event
			if event == nil {
				break
			}
		}
	}()

	var socketMessages <-chan socket.Message
	if a.socketServer != nil {
		socketMessages = a.socketServer.Messages()
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	a.draw()
	for !a.quit {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return nil
			}
			a.handleEvent(ev)
		case msg := <-socketMessages:
			a.handleSocketMessage(msg)
			a.dirty = true
		case <-ticker.C:
			if a.dirty || a.statusText() != a.lastStatus {
				a.draw()
			}
		}
	}

	return nil
}

// Close stops the socket server and restores the terminal
func (a *App) Close() error {
	if a.socketServer != nil {
		a.socketServer.Stop()
		a.socketServer = nil
	}
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// layout gives the chart every row except the header and the status line
func (a *App) layout() {
	width, height := a.screen.Size()
	rows := max(height-2, 0)
	a.canvas.SetArea(0, 1, width, rows)
	a.engine.Resize(a.canvas.PixelSize())
}

// applySettings pushes the configuration into the chart. Units named by the
// dataset win unless time_units was set explicitly.
func (a *App) applySettings() {
	a.engine.SetSettings(a.cfg)
	if a.dataset != nil && a.dataset.Units != "" && a.cfg.Get("time_units") == "" {
		a.engine.SetTimeUnits(a.dataset.Units)
	}
	a.dirty = true
}

// LoadFile replaces the dataset with the file at path
func (a *App) LoadFile(path string) error {
	ds, err := storage.Load(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	a.SetDataset(ds, path)
	return nil
}

// SetDataset shows ds. path is only used for the header.
func (a *App) SetDataset(ds *model.Dataset, path string) {
	a.dataset = ds
	a.filePath = path

	a.flame.SetData(ds.Nodes)
	a.applySettings()
	a.search.SetNodes(a.flame.Tree().Nodes())
	a.splash.Hide()

	log.Printf("dataset loaded: %s (%d nodes)", path, a.flame.Tree().Len())
	a.SetStatus(fmt.Sprintf("Loaded %s (%d nodes)", a.title(), a.flame.Tree().Len()))
}

func (a *App) title() string {
	switch {
	case a.dataset != nil && a.dataset.Title != "":
		return a.dataset.Title
	case a.filePath != "":
		return a.filePath
	default:
		return "untitled"
	}
}

func (a *App) handleNotification(n flamechart.Notification) {
	if n.Kind != flamechart.KindSelect {
		return
	}
	a.dirty = true
	if n.Node != nil {
		log.Printf("selected %s at level %d", n.Node.Name(), n.Node.Level)
	}
}

// draw renders a frame of the chart and the widgets around it
func (a *App) draw() {
	a.dirty = false
	a.screen.Clear()
	width, height := a.screen.Size()

	if a.splash.IsVisible() {
		a.splash.Render(a.screen)
	} else {
		a.engine.Render()
		a.drawHeader(width)
	}

	a.drawStatusLine(height - 1)
	a.help.Render(a.screen)
	a.screen.Show()
}

func (a *App) drawHeader(width int) {
	style := a.screen.HeaderStyle()
	a.screen.FillLine(0, 0, style)
	x := a.screen.DrawStringLimited(0, 0, " "+a.title(), width, style)

	if node := a.flame.Selected(); node != nil {
		info := fmt.Sprintf("%s  %s %s ", node.Name(), a.formatTime(node.Duration), a.engine.Options().TimeUnits)
		infoWidth := ui.StringWidth(info)
		if x+2+infoWidth <= width {
			a.screen.DrawString(width-infoWidth, 0, info, a.screen.StatusMessageStyle())
		}
	}
}

func (a *App) drawStatusLine(y int) {
	switch {
	case a.command.IsActive():
		a.command.Render(a.screen, y, "")
		a.lastStatus = ""
		return
	case a.search.IsActive():
		a.search.Render(a.screen, y)
		a.lastStatus = ""
		return
	}

	a.lastStatus = a.statusText()
	style := a.screen.StatusMessageStyle()
	if msg, ok := a.messages.Current(); ok && msg.Error {
		style = a.screen.StatusErrorStyle()
	} else if !ok && a.pendingKey != 0 {
		style = a.screen.StatusModeStyle()
	}
	a.screen.FillLine(0, y, style)
	a.screen.DrawStringLimited(0, y, a.lastStatus, a.screen.GetWidth(), style)

	if status := a.search.Status(); status != "" {
		a.screen.DrawString(a.screen.GetWidth()-ui.StringWidth(status), y, status, a.screen.SearchResultCountStyle())
	}
}

// statusText is the newest message, or a hint when nothing was said
// recently
func (a *App) statusText() string {
	if msg, ok := a.messages.Current(); ok {
		return msg.Text
	}
	if a.pendingKey != 0 {
		return string(a.pendingKey) + "-"
	}
	return "? help  : command  / search"
}

// handleEvent dispatches one terminal event
func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *callbackEvent:
		ev.f()
		return
	case *tcell.EventResize:
		a.screen.Sync()
		a.layout()
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventKey:
		a.handleKey(ev)
	}
	a.dirty = true
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch {
	case a.command.IsActive():
		cmd, res := a.command.HandleKey(ev)
		if res == ui.PromptSubmit {
			a.handleCommand(cmd)
		}
	case a.search.IsActive():
		if a.search.HandleKey(ev) == ui.PromptSubmit {
			a.selectNode(a.search.Current())
		}
	case a.help.IsVisible():
		a.handleHelpKey(ev)
	default:
		a.handleKeypress(ev)
	}
}

func (a *App) handleHelpKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.help.Hide()
	case tcell.KeyDown:
		a.help.Scroll(1)
	case tcell.KeyUp:
		a.help.Scroll(-1)
	case tcell.KeyPgDn:
		a.help.Scroll(10)
	case tcell.KeyPgUp:
		a.help.Scroll(-10)
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?', 'q':
			a.help.Hide()
		case 'j':
			a.help.Scroll(1)
		case 'k':
			a.help.Scroll(-1)
		}
	}
}

// handleKeypress handles a single keypress in normal mode
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if a.debugMode {
		a.SetStatus(fmt.Sprintf("Key: %v | Rune: %q | Modifiers: %v", ev.Key(), ev.Rune(), ev.Modifiers()))
	}

	if a.pendingKey != 0 {
		prefix := a.pendingKey
		a.pendingKey = 0
		if ev.Key() != tcell.KeyRune {
			return
		}
		if pkb := a.GetPendingKeyBindingByPrefix(prefix); pkb != nil {
			if kb, ok := pkb.Sequences[ev.Rune()]; ok {
				kb.Handler(a)
			}
		}
		return
	}

	switch ev.Key() {
	case tcell.KeyLeft:
		a.panColumns(-1)
		return
	case tcell.KeyRight:
		a.panColumns(1)
		return
	case tcell.KeyUp:
		a.scrollLevels(-1)
		return
	case tcell.KeyDown:
		a.scrollLevels(1)
		return
	case tcell.KeyEnter:
		a.focusSelection()
		return
	case tcell.KeyEscape:
		a.flame.ClearSelection()
		a.messages.Clear()
		return
	case tcell.KeyCtrlL:
		a.screen.Sync()
		return
	case tcell.KeyRune:
	default:
		return
	}

	r := ev.Rune()
	if a.IsPendingKeyPrefix(r) {
		a.pendingKey = r
		return
	}
	if kb := a.GetKeybindingByKey(r); kb != nil {
		kb.Handler(a)
	}
}

// handleMouse feeds the interaction engine with chart pixels. The wheel
// zooms around the mouse; with Shift it scrolls levels.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	x, y, inside := a.canvas.CellToPixel(col, row)
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		if !inside {
			return
		}
		if ev.Modifiers()&tcell.ModShift != 0 {
			a.scrollLevels(-1)
		} else {
			a.zoomAt(x, zoomStep)
		}
	case buttons&tcell.WheelDown != 0:
		if !inside {
			return
		}
		if ev.Modifiers()&tcell.ModShift != 0 {
			a.scrollLevels(1)
		} else {
			a.zoomAt(x, 1/zoomStep)
		}
	case buttons&tcell.WheelLeft != 0:
		a.panColumns(-1)
	case buttons&tcell.WheelRight != 0:
		a.panColumns(1)
	case buttons&tcell.Button1 != 0:
		if !a.mouseDown {
			if !inside {
				return
			}
			a.mouseDown = true
			a.interactions.HandleMouseDown(x, y)
			return
		}
		if inside {
			a.interactions.HandleMouseMove(x, y)
		}
	case a.mouseDown:
		a.mouseDown = false
		if !inside {
			last := a.interactions.Mouse()
			x, y = last.X, last.Y
		}
		a.interactions.HandleMouseUp(x, y)
	case inside:
		a.interactions.HandleMouseMove(x, y)
	default:
		a.interactions.HandleMouseLeave()
	}
}

// SetStatus shows msg in the status line
func (a *App) SetStatus(msg string) {
	a.messages.AddMessage(msg)
	a.dirty = true
}

// SetError shows err in the status line and logs it
func (a *App) SetError(err error) {
	log.Printf("error: %v", err)
	a.messages.AddError(err.Error())
	a.dirty = true
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// Selected returns the selected node
func (a *App) Selected() *flat.Node {
	return a.flame.Selected()
}
