package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/smartfinancehub/content-engine/internal/config"
	"github.com/smartfinancehub/content-engine/internal/server"
)

var (
	Version   string = "dev"
	Commit    string = "unknown"
	BuildTime string = "unknown"
)

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showHelp {
		fmt.Printf("Smart Finance Hub Content Engine Server\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nEnvironment Variables:\n")
		fmt.Printf("  GEN_API_KEY           Text-generation API key (required)\n")
		fmt.Printf("  CONSOLE_AUTH_TOKEN    Bearer token for mutating console routes\n")
		fmt.Printf("  SLACK_BOT_TOKEN       Slack bot token (optional)\n")
		fmt.Printf("  GITHUB_TOKEN          GitHub token for site publication (optional)\n")
		fmt.Printf("  STORE_BACKEND         Article store: file, gcs or postgres (default: file)\n")
		fmt.Printf("  CONFIG_DIR            Directory with settings/topics/keywords JSON (default: config)\n")
		fmt.Printf("  PORT                  Server port (default: 8080)\n")
		fmt.Printf("  HOST                  Server host (default: 0.0.0.0)\n")
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("Smart Finance Hub Content Engine Server\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Commit: %s\n", Commit)
		fmt.Printf("Build Time: %s\n", BuildTime)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := server.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer app.Close()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      app.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Schedule the pipeline sweeps.
	c := cron.New()

	if _, err := c.AddFunc(cfg.Settings.GenerateSchedule, func() {
		log.Printf("🕐 Scheduled generation starting (%d articles)", cfg.Settings.DailyArticleCount)
		summary, err := app.Generate.GenerateBatch(ctx, cfg.Settings.DailyArticleCount)
		if err != nil {
			log.Printf("❌ Scheduled generation failed: %v", err)
			return
		}
		log.Printf("✅ Scheduled generation completed: %d succeeded, %d failed", summary.Succeeded, summary.Failed)
	}); err != nil {
		log.Fatalf("Failed to schedule generation: %v", err)
	}

	if _, err := c.AddFunc(cfg.Settings.PublishSweepSchedule, func() {
		published, err := app.Review.PublishDue(ctx)
		if err != nil {
			log.Printf("❌ Scheduled publish sweep failed: %v", err)
			return
		}
		if len(published) > 0 {
			log.Printf("✅ Publish sweep released %d articles", len(published))
		}
	}); err != nil {
		log.Fatalf("Failed to schedule publish sweep: %v", err)
	}

	if _, err := c.AddFunc(cfg.Settings.ArchiveSweepSchedule, func() {
		log.Printf("🕐 Archive sweep starting")
		if _, err := app.Archive.Sweep(ctx); err != nil {
			log.Printf("❌ Archive sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule archive sweep: %v", err)
	}

	log.Printf("📅 Schedules: generate %q, publish sweep %q, archive sweep %q",
		cfg.Settings.GenerateSchedule, cfg.Settings.PublishSweepSchedule, cfg.Settings.ArchiveSweepSchedule)

	c.Start()
	defer c.Stop()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("🚀 Starting console server on %s:%s", cfg.Host, cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-sigChan
	log.Println("🛑 Shutting down server...")

	cancel()
	c.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("✅ Server stopped")
}
