package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"routeview/internal/cache"
	"routeview/internal/config"
	"routeview/internal/debug"
	"routeview/internal/geo"
	"routeview/internal/metrics"
	"routeview/internal/route"
	"routeview/internal/ui"
)

func main() {
	// Parse command line flags
	help := flag.Bool("h", false, "Show help message")
	configPath := flag.String("c", "", "Config file (default: ./routeview.yaml if present)")
	debugLog := flag.String("d", "", "Debug log file (e.g., debug.log)")
	waypointsPath := flag.String("w", "", "Waypoints GeoJSON file (default: built-in demo route)")
	zoom := flag.Float64("z", 13, "Initial zoom level before fitting to waypoints")
	aspectRatio := flag.Float64("a", 2.0, "Character aspect ratio - adjust for font width (1.0-4.0, default: 2.0)")
	provider := flag.String("p", "straight", "Route provider: straight or google")
	offline := flag.Bool("offline", false, "Do not download missing base map data")
	flag.Parse()

	if *help {
		fmt.Println("routeview - Terminal route viewer with map overlays")
		fmt.Println("\nUsage: routeview [options]")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line win over file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "d":
			cfg.Debug.File = *debugLog
		case "w":
			cfg.Route.Waypoints = *waypointsPath
		case "z":
			cfg.Map.Zoom = *zoom
		case "a":
			cfg.Map.Aspect = *aspectRatio
		case "p":
			cfg.Route.Provider = *provider
		case "offline":
			cfg.Data.Offline = *offline
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up debug logging if requested
	if cfg.Debug.File != "" {
		logFile, err := os.Create(cfg.Debug.File)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to create debug log: %v\n", err)
		} else {
			defer logFile.Close()
			level, _ := cfg.Debug.SlogLevel()
			debug.Setup(logFile, level)
			debug.Log("routeview debug log started")
			fmt.Printf("Debug logging enabled: %s\n", cfg.Debug.File)
		}
	}
	log := debug.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)
	if cfg.Metrics.Addr != "" {
		go metrics.Serve(ctx, cfg.Metrics.Addr, reg, log)
	}

	// Waypoints
	waypoints := route.DefaultWaypoints()
	if cfg.Route.Waypoints != "" {
		waypoints, err = route.LoadWaypoints(cfg.Route.Waypoints)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Printf("Loaded %d waypoints\n", len(waypoints))

	// Route geometry
	routes, err := route.NewProvider(route.Config{
		Type:    route.ProviderType(cfg.Route.Provider),
		APIKey:  cfg.Route.APIKey,
		Logger:  log,
		Metrics: m,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	var path []geo.LatLon
	if len(waypoints) > 1 {
		routeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		path, err = routes.Route(routeCtx, route.Coords(waypoints))
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: no route: %v\n", err)
		}
	}

	// Base map
	cacheManager, err := cache.NewManager(cfg.Data.CacheDir, cache.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize cache: %v\n", err)
		os.Exit(1)
	}
	if !cfg.Data.Offline {
		fmt.Println("Checking Natural Earth data...")
		if err := cacheManager.EnsureData(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to download map data: %v\n", err)
			os.Exit(1)
		}
	}
	if missing := cacheManager.Missing(); len(missing) > 0 {
		fmt.Printf("Warning: %d base map layers unavailable\n", len(missing))
	}

	fmt.Println("Loading geographic features...")
	loader := geo.NewShapefileLoader(cacheManager.GetCacheDir(), log)
	index := geo.NewFeatureIndex(loader.LoadAll())
	fmt.Printf("Indexed %d features\n", index.Len())

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		os.Exit(1)
	}

	app, err := ui.NewApp(screen, ui.Options{
		Waypoints:     waypoints,
		Path:          path,
		Index:         index,
		Zoom:          cfg.Map.Zoom,
		MinZoom:       cfg.Map.MinZoom,
		MaxZoom:       cfg.Map.MaxZoom,
		ZoomSnap:      cfg.Map.ZoomSnap,
		Aspect:        cfg.Map.Aspect,
		Padding:       geo.Point{X: cfg.Map.PaddingX, Y: cfg.Map.PaddingY},
		FrameInterval: cfg.Map.FrameInterval,
		Logger:        log,
		Metrics:       m,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create application: %v\n", err)
		os.Exit(1)
	}

	// Run with panic recovery to ensure terminal is always restored
	func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "\nPanic: %v\n", r)
			}
		}()

		if err := app.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	fmt.Println("\nGoodbye!")
}
