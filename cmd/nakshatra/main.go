package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ayusman/nakshatra/internal/app"
	"github.com/ayusman/nakshatra/internal/config"
	"github.com/ayusman/nakshatra/internal/server"
	"github.com/ayusman/nakshatra/internal/store"
	"github.com/ayusman/nakshatra/internal/tray"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	fmt.Println("Nakshatra - Gesture-Controlled Planetarium")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the telemetry store
	dbPath := cfg.DB.Path
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		dataDir := filepath.Join(homeDir, ".nakshatra")
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		dbPath = filepath.Join(dataDir, "nakshatra.db")
	}

	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	a := app.New(cfg, st)
	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	// Find the web renderer directory
	staticDir := cfg.Server.StaticDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		fmt.Printf("Serving renderer from: %s\n", staticDir)
	}

	srv := server.New(server.Config{
		StaticDir:  staticDir,
		Store:      st,
		Camera:     a.Camera(),
		State:      a.State(),
		Controller: a.Controller(),
	})
	defer srv.Close()

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.Server.Addr)
		if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	tr := tray.New()
	tr.OnToggle(a.SetEnabled)
	tr.OnQuit(a.Stop)

	// Mirror the current gesture and focus into the tray menu. While
	// tracking is paused the last gesture is stale, so show that instead.
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			snap := a.State().Snapshot()
			if tr.IsEnabled() {
				tr.SetStatus(string(snap.Gesture), string(snap.Focus))
			} else {
				tr.SetStatus("paused", string(snap.Focus))
			}
		}
	}()

	// Blocks until quit is selected from the tray menu.
	tr.Run()
}

// findWebDir searches for the web renderer directory in common locations.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
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

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".nakshatra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
