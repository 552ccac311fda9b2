// Package flamechart draws a timing tree as a flame chart. Nodes are merged
// into clusters so a frame costs time proportional to the screen, and
// clicks on a cluster resolve back to the member node under the mouse.
package flamechart

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/pstuifzand/tui-flamechart/internal/chart"
	"github.com/pstuifzand/tui-flamechart/internal/cluster"
	"github.com/pstuifzand/tui-flamechart/internal/config"
	"github.com/pstuifzand/tui-flamechart/internal/flat"
	"github.com/pstuifzand/tui-flamechart/internal/interaction"
	"github.com/pstuifzand/tui-flamechart/internal/model"
	"github.com/pstuifzand/tui-flamechart/internal/render"
	"github.com/pstuifzand/tui-flamechart/internal/schedule"
)

// ReferenceZoomSlack is how far the zoom may fall below the zoom the static
// clusters were built at before they are rebuilt
const ReferenceZoomSlack = 0.5

// Kind tells what a notification is about
type Kind int

const (
	KindSelect Kind = iota
	KindHover
)

func (k Kind) String() string {
	if k == KindHover {
		return "hover"
	}
	return "select"
}

// Notification reports a change of the selected or hovered node. Node is
// nil when nothing is selected or hovered anymore.
type Notification struct {
	Kind Kind
	Node *flat.Node
}

type settings struct {
	stackUpwards     bool
	mergeOrder       string
	thresholds       cluster.Thresholds
	minDrawableWidth float64
}

func defaultSettings() settings {
	c := config.DefaultChart()
	return settings{
		mergeOrder:       c.MergeOrder,
		thresholds:       cluster.DefaultThresholds(),
		minDrawableWidth: c.MinDrawableWidth,
	}
}

// Plugin is the flame chart. It implements chart.Plugin and chart.Bounded.
type Plugin struct {
	name         string
	engine       *chart.RenderEngine
	interactions interaction.Source
	clock        schedule.Clock
	hitRebuild   *schedule.Debouncer

	tree     *flat.Tree
	metas    []cluster.Meta
	static   *cluster.Static
	actual   []cluster.Cluster
	refZoom  float64
	min, max float64
	maxLevel int

	positionY float64
	colors    *ColorTable
	selected  *flat.Node
	hovered   *flat.Node

	// generation changes whenever the dataset is replaced; pending
	// callbacks of an older generation do nothing
	generation int

	settings    settings
	subscribers []func(Notification)
}

// New creates a flame chart plugin. Deferred work runs on clock; nil means
// real timers.
func New(clock schedule.Clock) *Plugin {
	if clock == nil {
		clock = schedule.RealClock{}
	}
	delay := time.Duration(config.DefaultChart().HitRebuildDelayMS) * time.Millisecond
	return &Plugin{
		name:       "flameChartPlugin",
		clock:      clock,
		hitRebuild: schedule.NewDebouncer(clock, delay),
		colors:     NewColorTable(),
		settings:   defaultSettings(),
	}
}

func (p *Plugin) Name() string { return p.name }

func (p *Plugin) Init(engine *chart.RenderEngine, interactions interaction.Source) {
	p.engine = engine
	p.interactions = interactions

	interactions.OnChangePosition(p.handlePositionChange)
	interactions.OnSelect(p.handleSelect)
	interactions.OnHover(p.handleHover)
	interactions.OnUp(p.handleMouseUp)

	if p.tree != nil {
		p.initData()
	}
}

func (p *Plugin) SetSettings(cfg *config.Config) {
	c := cfg.EffectiveChart()
	prev := p.settings

	p.settings = settings{
		stackUpwards:     c.StackUpwards,
		mergeOrder:       c.MergeOrder,
		thresholds:       cfg.Thresholds(),
		minDrawableWidth: c.MinDrawableWidth,
	}

	p.colors.SetHueStep(c.HueStep)
	p.colors.SetUserColors(c.Colors)

	if delay := cfg.HitRebuildDelay(); delay != p.hitRebuild.Delay() {
		p.hitRebuild.Cancel()
		p.hitRebuild = schedule.NewDebouncer(p.clock, delay)
	}

	rebuild := prev.mergeOrder != p.settings.mergeOrder || prev.thresholds != p.settings.thresholds
	if rebuild && p.engine != nil && p.tree != nil {
		p.initData()
	}
}

// SetData replaces the dataset and fits it into the view
func (p *Plugin) SetData(roots []*model.Node) {
	p.generation++
	p.hitRebuild.Cancel()

	p.parseData(roots)
	p.reset()

	if p.engine == nil {
		return
	}
	p.engine.RecalcMinMax()
	p.engine.ResetParentView()
	p.initData()
}

func (p *Plugin) parseData(roots []*model.Node) {
	p.tree = flat.Build(roots)
	p.min, p.max = p.tree.MinMax()
	p.maxLevel = p.tree.MaxLevel()
	p.metas, p.static, p.actual = nil, nil, nil
	log.Printf("flame chart: %d nodes, %d levels", p.tree.Len(), p.maxLevel+1)
}

func (p *Plugin) reset() {
	p.colors.Reset()
	p.positionY = 0
	p.selected = nil
	p.hovered = nil
}

// initData groups the nodes and builds the static clusters at the current
// zoom
func (p *Plugin) initData() {
	order := p.tree.RowOrder()
	if p.settings.mergeOrder == config.MergeOrderPreorder {
		order = p.tree.Nodes()
	}
	p.metas = cluster.Metaclusterize(order)
	p.buildStatic()
}

func (p *Plugin) buildStatic() {
	p.refZoom = p.engine.Zoom()
	p.static = cluster.Clusterize(p.metas, p.refZoom, p.settings.thresholds)
	log.Printf("flame chart: %d static clusters at zoom %g", p.static.Len(), p.refZoom)
}

// MinMax returns the time range of the dataset
func (p *Plugin) MinMax() (float64, float64, bool) {
	if p.tree == nil || p.tree.Len() == 0 {
		return 0, 0, false
	}
	return p.min, p.max, true
}

// Tree returns the flattened dataset, nil before SetData
func (p *Plugin) Tree() *flat.Tree { return p.tree }

// Clusters returns the clusters of the last frame
func (p *Plugin) Clusters() []cluster.Cluster { return p.actual }

// Static returns the static clusters
func (p *Plugin) Static() *cluster.Static { return p.static }

func (p *Plugin) Selected() *flat.Node { return p.selected }

func (p *Plugin) Hovered() *flat.Node { return p.hovered }

// PositionY returns the vertical scroll offset in pixels
func (p *Plugin) PositionY() float64 { return p.positionY }

func (p *Plugin) Colors() *ColorTable { return p.colors }

// Subscribe registers fn for select and hover changes
func (p *Plugin) Subscribe(fn func(Notification)) {
	p.subscribers = append(p.subscribers, fn)
}

func (p *Plugin) emit(n Notification) {
	for _, fn := range p.subscribers {
		fn(n)
	}
}

func (p *Plugin) reclusterize() {
	if p.static == nil {
		p.actual = nil
		return
	}

	zoom := p.engine.Zoom()
	if zoom < p.refZoom*ReferenceZoomSlack {
		p.buildStatic()
	}

	from := p.engine.PositionX()
	p.actual = cluster.Reclusterize(p.static, zoom, from, from+p.engine.RealView(), p.settings.thresholds)
}

// calcRect projects a time range on a row to band pixels. Blocks lose a
// third of their width, or one pixel once wider than three, to leave a gap
// between neighbours.
func (p *Plugin) calcRect(start, duration float64, level int) (x, y, w float64) {
	w = duration * p.engine.Zoom()
	x = p.engine.TimeToPosition(start)

	if p.settings.stackUpwards {
		level = p.maxLevel - level
	}
	y = float64(level)*(p.engine.BlockHeight()+1) - p.positionY

	switch {
	case w <= 0.1:
		w = 0.1
	case w >= 3:
		w--
	default:
		w -= w / 3
	}
	return x, y, w
}

func (p *Plugin) visible(x, y, w float64) bool {
	return x+w > 0 && x < p.engine.Width() &&
		y+p.engine.BlockHeight() > 0 && y < p.engine.Height()
}

func (p *Plugin) Render() {
	p.reclusterize()

	blockHeight := p.engine.BlockHeight()
	styles := p.engine.Styles()
	mouse := p.interactions.Mouse()

	for i := range p.actual {
		c := &p.actual[i]
		x, y, w := p.calcRect(c.Start, c.Duration(), c.Level)
		if !p.visible(x, y, w) {
			continue
		}

		// only the row under the mouse is hit-testable until the
		// debounced rebuild registers every cluster
		if mouse.Y >= y && mouse.Y <= y+blockHeight {
			p.interactions.AddHitRegion(interaction.KindCluster, c, x, y, w, blockHeight)
		}

		if w >= p.settings.minDrawableWidth {
			p.engine.AddRect(render.Rect{
				X: x, Y: y, W: w, H: blockHeight,
				Color:   p.colors.Get(c.Type, c.Color),
				Pattern: c.Pattern,
			}, render.LayerBlocks)

			if c.Badge != "" {
				p.renderBadge(c.Badge, x, y, w)
			}
		}

		if w >= p.engine.MinTextWidth() && len(c.Nodes) == 1 {
			p.engine.AddText(render.Text{
				Text: c.Nodes[0].Name(),
				X:    x, Y: y, W: w,
				Color: styles.BlockTextColor,
			}, render.LayerLabels)
		}
	}

	if p.selected != nil {
		x, y, w := p.calcRect(p.selected.Start, p.selected.Duration, p.selected.Level)
		p.engine.AddStroke(render.Rect{
			X: x, Y: y, W: w, H: blockHeight,
			Color: styles.SelectionColor,
		}, render.LayerLabels)
	}

	gen := p.generation
	p.hitRebuild.Schedule(func() {
		if gen != p.generation {
			return
		}
		p.rebuildHitRegions()
	})
}

func (p *Plugin) renderBadge(badge string, x, y, w float64) {
	size := p.engine.Styles().BadgeSize
	badgeWidth := size * 2 / math.Sqrt2
	pattern := "node-badge-" + badge

	p.engine.CreateCachedPattern(render.Pattern{
		Name:      pattern,
		Kind:      "triangles",
		Color:     badge,
		Width:     badgeWidth,
		Align:     "top",
		Direction: "top-left",
	})
	p.engine.AddRect(render.Rect{
		X: x, Y: y, W: min(badgeWidth, w), H: p.engine.BlockHeight(),
		Color:   render.Transparent,
		Pattern: pattern,
	}, render.LayerBadges)
}

// rebuildHitRegions registers every visible cluster of the last frame
func (p *Plugin) rebuildHitRegions() {
	p.interactions.ClearHitRegions()
	blockHeight := p.engine.BlockHeight()
	for i := range p.actual {
		c := &p.actual[i]
		x, y, w := p.calcRect(c.Start, c.Duration(), c.Level)
		if p.visible(x, y, w) {
			p.interactions.AddHitRegion(interaction.KindCluster, c, x, y, w, blockHeight)
		}
	}
}

// findNodeInCluster returns the member of the region's cluster whose own
// rectangle contains the mouse
func (p *Plugin) findNodeInCluster(region *interaction.HitRegion) *flat.Node {
	if region == nil || region.Kind != interaction.KindCluster {
		return nil
	}
	c, ok := region.Data.(*cluster.Cluster)
	if !ok {
		return nil
	}

	mouse := p.interactions.Mouse()
	blockHeight := p.engine.BlockHeight()
	for _, n := range c.Nodes {
		x, y, w := p.calcRect(n.Start, n.Duration, n.Level)
		if mouse.X >= x && mouse.X <= x+w && mouse.Y >= y && mouse.Y <= y+blockHeight {
			return n
		}
	}
	return nil
}

func (p *Plugin) handleSelect(region *interaction.HitRegion) {
	node := p.findNodeInCluster(region)
	if node == p.selected {
		return
	}
	p.selected = node
	p.engine.Render()
	p.emit(Notification{Kind: KindSelect, Node: node})
}

func (p *Plugin) handleHover(region *interaction.HitRegion) {
	node := p.findNodeInCluster(region)
	if node == p.hovered {
		return
	}
	p.hovered = node
	p.emit(Notification{Kind: KindHover, Node: node})
}

func (p *Plugin) handlePositionChange(d interaction.Delta) {
	p.interactions.SetCursor(interaction.CursorGrabbing)
	p.Pan(d.DX, d.DY)
}

func (p *Plugin) handleMouseUp() {
	p.interactions.ClearCursor()
}

// Pan moves the view by dx pixels in time and dy pixels vertically and
// renders when anything moved
func (p *Plugin) Pan(dx, dy float64) {
	startY := p.positionY
	p.positionY = max(p.positionY+dy, 0)

	movedX := p.engine.TryToChangePosition(dx)
	if movedX || p.positionY != startY {
		p.engine.Render()
	}
}

// SelectNode selects n, brings it into view and renders
func (p *Plugin) SelectNode(n *flat.Node) {
	if n == nil {
		return
	}
	changed := n != p.selected
	p.selected = n

	p.engine.Parent().FocusRange(n.Start, n.End())
	p.ScrollToLevel(n.Level)
	p.engine.Render()

	if changed {
		p.emit(Notification{Kind: KindSelect, Node: n})
	}
}

// ClearSelection drops the selection and renders
func (p *Plugin) ClearSelection() {
	if p.selected == nil {
		return
	}
	p.selected = nil
	p.engine.Render()
	p.emit(Notification{Kind: KindSelect})
}

// ScrollToLevel scrolls vertically so that the row of level is in the band
func (p *Plugin) ScrollToLevel(level int) {
	if p.settings.stackUpwards {
		level = p.maxLevel - level
	}
	rowHeight := p.engine.BlockHeight() + 1
	top := float64(level) * rowHeight

	switch {
	case top < p.positionY:
		p.positionY = top
	case top+rowHeight > p.positionY+p.engine.Height():
		p.positionY = max(top+rowHeight-p.engine.Height(), 0)
	}
}

func (p *Plugin) RenderTooltip() bool {
	if p.hovered == nil {
		return false
	}

	options := p.engine.Options()
	switch options.Tooltip {
	case chart.TooltipDisabled:
		return true
	case chart.TooltipCustom:
		if options.TooltipFunc != nil {
			options.TooltipFunc(p.hovered, p.engine, p.interactions.GlobalMouse())
			return true
		}
	}

	p.engine.RenderTooltipFromData(p.tooltipLines(p.hovered), p.interactions.GlobalMouse())
	return true
}

func (p *Plugin) tooltipLines(n *flat.Node) []render.TooltipLine {
	accuracy := p.engine.Accuracy() + 2
	units := p.engine.TimeUnits()
	format := func(v float64) string {
		return strconv.FormatFloat(v, 'f', accuracy, 64)
	}

	duration := fmt.Sprintf("duration: %s %s", format(n.Duration), units)
	if len(n.Source.Children) > 0 {
		duration += fmt.Sprintf(" (self %s %s)", format(n.Source.SelfTime()), units)
	}

	lines := []render.TooltipLine{
		{Text: n.Name()},
		{Text: duration},
	}
	if !p.engine.Options().NonSequential {
		lines = append(lines, render.TooltipLine{Text: "start: " + format(n.Start)})
	}
	return lines
}

func (p *Plugin) PostRender() {}
