package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/ayusman/dinojump/internal/app"
	"github.com/ayusman/dinojump/internal/config"
	"github.com/ayusman/dinojump/internal/server"
	"github.com/ayusman/dinojump/internal/store"
	"github.com/ayusman/dinojump/internal/tray"
	"github.com/ayusman/dinojump/internal/view"
)

func main() {
	fmt.Println("Dino Jump - hand gesture runner")

	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Invalid configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		config.Exitf("Failed to create data directory: %v", err)
	}

	st, err := store.New(cfg.DatabasePath())
	if err != nil {
		config.Exitf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(app.Config{
		Store:           st,
		PluginDir:       cfg.PluginDir,
		CameraID:        cfg.CameraID,
		MotionThresh:    cfg.MotionThreshold,
		ClosedThreshold: cfg.ClosedThreshold,
		Aggregation:     cfg.AggregationRule(),
		Verbose:         cfg.Verbose,
	})

	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}
	a.StartHooks(ctx)

	if cfg.NoCamera {
		log.Println("Camera disabled, waiting for landmarks on /api/ws")
	} else if err := a.Start(ctx); err != nil {
		log.Printf("Camera unavailable (%v), waiting for landmarks on /api/ws", err)
	}
	defer a.Stop()

	webDir := cfg.StaticDir
	if webDir == "" {
		webDir = findWebDir(cfg.DataDir)
	}
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		App:       a,
	})
	go func() {
		if err := srv.Run(ctx, cfg.Addr); err != nil {
			log.Printf("Server failed: %v", err)
			stop()
		}
	}()

	if cfg.Headless {
		runHeadless(ctx, stop, a, cfg)
	} else {
		g := view.New(a, nil, cfg.TPS)
		g.CloseOn(ctx.Done())
		if err := view.Run(g); err != nil {
			log.Printf("Window closed with error: %v", err)
		}
		stop()
	}

	a.WaitHooks()
	log.Println("Bye")
}

// runHeadless ticks the game in the background and shows it in the tray.
func runHeadless(ctx context.Context, stop context.CancelFunc, a *app.App, cfg config.Config) {
	go func() {
		if err := a.Run(ctx, cfg.TPS); err != nil {
			log.Printf("Game loop stopped: %v", err)
		}
	}()

	t := tray.New()
	t.SetEnabled(a.GesturesEnabled())
	t.OnToggle(a.SetGesturesEnabled)
	t.OnNewGame(a.NewGame)
	t.OnDashboard(func() { openBrowser(dashboardURL(cfg.Addr)) })
	t.OnQuit(stop)

	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				t.Quit()
				return
			case <-ticker.C:
			}
			snap := a.Snapshot()
			t.SetStatus(tray.Status{
				State:     snap.State.String(),
				ScoreText: snap.ScoreText,
				HighText:  snap.HighScoreText,
			})
		}
	}()

	t.Run()
}

func dashboardURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/"
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and <dataDir>/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	dataWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(dataWebDir); err == nil && info.IsDir() {
		return dataWebDir
	}

	return ""
}
