package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"routeview/internal/geo"
	"routeview/internal/metrics"
	"routeview/internal/overlay"
	"routeview/internal/render"
	"routeview/internal/route"
)

// ViewMode represents the current view mode
type ViewMode int

const (
	ViewModeMap ViewMode = iota
	ViewModeDetail
)

const (
	panStepX = 4
	panStepY = 2

	listWidth    = 44
	detailWidth  = 50
	detailHeight = 7
)

// Options configures the application
type Options struct {
	Waypoints []route.Waypoint
	// Path is the route geometry; the waypoints themselves when empty
	Path  []geo.LatLon
	Index *geo.FeatureIndex

	Zoom     float64
	MinZoom  float64
	MaxZoom  float64
	ZoomSnap float64
	Aspect   float64
	Padding  geo.Point

	FrameInterval time.Duration
	Logger        *slog.Logger
	Metrics       *metrics.Metrics
}

// App is the main application controller
type App struct {
	screen      tcell.Screen
	mapView     *MapView
	layer       *overlay.Layer
	listView    *WaypointList
	detailView  *DetailView
	currentView ViewMode

	waypoints []route.Waypoint
	coords    []geo.LatLon
	padding   geo.Point
	interval  time.Duration
	log       *slog.Logger

	routeLine *render.Path
	markers   *render.MarkerSet
	model     *render.Sprite

	dragging     bool
	dragX, dragY int
}

// NewApp initializes screen and wires the overlays to the map
func NewApp(screen tcell.Screen, opts Options) (*App, error) {
	if len(opts.Waypoints) == 0 {
		return nil, route.ErrNoWaypoints
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 100 * time.Millisecond
	}
	if opts.MaxZoom <= 0 {
		opts.MinZoom, opts.MaxZoom, opts.ZoomSnap = 1, 18, 1
	}
	if opts.Zoom <= 0 {
		opts.Zoom = 13
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse()
	screen.Clear()

	width, height := screen.Size()
	coords := route.Coords(opts.Waypoints)

	view := geo.NewView(coords[0], opts.Zoom, width, height-1, opts.Aspect).
		WithZoomRange(opts.MinZoom, opts.MaxZoom, opts.ZoomSnap).
		WithZoom(opts.Zoom)

	a := &App{
		screen:    screen,
		mapView:   NewMapView(view, opts.Index, opts.Logger),
		waypoints: opts.Waypoints,
		coords:    coords,
		padding:   opts.Padding,
		interval:  opts.FrameInterval,
		log:       opts.Logger,
		routeLine: render.NewPath('*', render.StyleRoute),
		model:     render.NewSprite(render.TruckArt, render.StyleModel),
	}
	a.layer = overlay.NewLayer(a.mapView, overlay.WithLogger(opts.Logger), overlay.WithMetrics(opts.Metrics))

	markers := make([]render.Marker, len(opts.Waypoints))
	for i, w := range opts.Waypoints {
		markers[i] = render.Marker{Glyph: markerGlyph(i), Label: w.Name, Feed: w.Feed != ""}
	}
	a.markers = render.NewMarkerSet(markers)

	a.listView = NewWaypointList(opts.Waypoints, 0, 0, listWidth, 0)
	a.detailView = NewDetailView(0, 0, detailWidth, detailHeight)
	a.layout(width, height)

	path := opts.Path
	if len(path) == 0 {
		path = coords
	}
	if err := a.register(path); err != nil {
		screen.Fini()
		return nil, err
	}

	a.mapView.SetReady()
	if _, err := a.layer.FitToWaypoints(coords, a.padding); err != nil {
		a.log.Warn("failed to fit waypoints", "error", err)
	}

	return a, nil
}

func (a *App) register(path []geo.LatLon) error {
	bindings := []overlay.Binding{
		{ID: "route", Anchors: path, Apply: a.routeLine.Apply},
		{ID: "feeds", Anchors: a.coords, Apply: a.markers.Apply},
		{
			ID:      "model",
			Anchors: a.coords[len(a.coords)-1:],
			Offset:  a.model.Offset(),
			Apply:   overlay.ApplyPoint(a.model.Apply),
		},
	}
	for _, b := range bindings {
		if _, err := a.layer.Register(b); err != nil {
			return fmt.Errorf("failed to register %s overlay: %w", b.ID, err)
		}
	}
	return nil
}

var errQuit = errors.New("quit")

// Run starts the application main loop
func (a *App) Run(ctx context.Context) error {
	defer a.cleanup()

	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	defer close(stop)
	go a.screen.ChannelEvents(events, stop)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.frame()
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			a.frame()

		case ev := <-events:
			if err := a.handleEvent(ev); errors.Is(err, errQuit) {
				return nil
			}
		}
	}
}

// frame runs one projection pass if the view changed and redraws
func (a *App) frame() {
	a.markers.Tick()
	a.layer.Frame()
	a.render()
}

// render renders the current view to the screen
func (a *App) render() {
	a.screen.Clear()

	a.mapView.Draw(a.screen, a.routeLine, a.markers, a.model)

	switch a.currentView {
	case ViewModeMap:
		a.listView.Draw(a.screen)
	case ViewModeDetail:
		a.showSelected()
		a.detailView.Draw(a.screen)
	}
	a.drawStatus()

	a.screen.Show()
}

func (a *App) drawStatus() {
	width, height := a.screen.Size()
	view := a.mapView.Current()
	text := fmt.Sprintf(" zoom %.0f  center %s  | arrows pan  +/- zoom  f fit  tab list  q quit", view.Zoom(), view.Center())

	i := 0
	for _, ch := range text {
		if i >= width {
			break
		}
		a.screen.SetContent(i, height-1, ch, nil, render.StyleStatus)
		i++
	}
	for ; i < width; i++ {
		a.screen.SetContent(i, height-1, ' ', nil, render.StyleStatus)
	}
}

// handleEvent processes keyboard, mouse and resize events
func (a *App) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.handleResize()
	}
	return nil
}

func (a *App) handleKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape:
		if a.currentView == ViewModeDetail {
			a.currentView = ViewModeMap
			return nil
		}
		return errQuit

	case tcell.KeyEnter:
		if a.currentView == ViewModeMap {
			a.currentView = ViewModeDetail
		}

	case tcell.KeyTab:
		a.listView.SetFocused(!a.listView.Focused())
		a.highlightSelected()

	case tcell.KeyUp:
		if a.listView.Focused() {
			if a.listView.SelectPrev() {
				a.centerOnSelected()
			}
		} else {
			a.mapView.Pan(0, -panStepY)
		}

	case tcell.KeyDown:
		if a.listView.Focused() {
			if a.listView.SelectNext() {
				a.centerOnSelected()
			}
		} else {
			a.mapView.Pan(0, panStepY)
		}

	case tcell.KeyLeft:
		a.mapView.Pan(-panStepX, 0)

	case tcell.KeyRight:
		a.mapView.Pan(panStepX, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return errQuit
		case 'h':
			a.mapView.Pan(-panStepX, 0)
		case 'l':
			a.mapView.Pan(panStepX, 0)
		case 'k':
			a.mapView.Pan(0, -panStepY)
		case 'j':
			a.mapView.Pan(0, panStepY)
		case '+', '=':
			a.mapView.ZoomIn()
		case '-', '_':
			a.mapView.ZoomOut()
		case 'f', 'F':
			if _, err := a.layer.FitToWaypoints(a.coords, a.padding); err != nil {
				a.log.Warn("failed to fit waypoints", "error", err)
			}
		}
	}
	return nil
}

// handleMouse pans while the primary button is dragged
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	if ev.Buttons()&tcell.ButtonPrimary == 0 {
		a.dragging = false
		return
	}
	if a.dragging && (x != a.dragX || y != a.dragY) {
		a.mapView.Pan(a.dragX-x, a.dragY-y)
	}
	a.dragging = true
	a.dragX, a.dragY = x, y
}

// handleResize handles terminal resize events
func (a *App) handleResize() {
	a.screen.Sync()
	a.layout(a.screen.Size())
}

// layout places the panels and sizes the map above the status line
func (a *App) layout(width, height int) {
	listHeight := min(len(a.waypoints)+2, 12)
	a.listView.UpdateDimensions(0, height-1-listHeight, listWidth, listHeight)
	a.detailView.UpdateDimensions(0, height-1-detailHeight, detailWidth, detailHeight)
	a.mapView.Resize(width, max(height-1, 1))
}

func (a *App) centerOnSelected() {
	w, _, ok := a.listView.Selected()
	if !ok {
		return
	}
	a.mapView.SetCenter(w.Coord)
	a.highlightSelected()
}

func (a *App) highlightSelected() {
	_, i, ok := a.listView.Selected()
	if !ok || !a.listView.Focused() {
		a.markers.Select(-1)
		return
	}
	a.markers.Select(i)
}

func (a *App) showSelected() {
	w, i, ok := a.listView.Selected()
	if !ok {
		a.detailView.SetWaypoint(nil, geo.Point{}, false)
		return
	}
	cell, placed := a.markers.Position(i)
	a.detailView.SetWaypoint(&w, cell, placed)
}

// cleanup performs cleanup before exit
func (a *App) cleanup() {
	a.layer.Close()
	a.mapView.Dispose()
	a.screen.Fini()
}
