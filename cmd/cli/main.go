package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/smartfinancehub/content-engine/internal/config"
	"github.com/smartfinancehub/content-engine/internal/server"
)

func usage() {
	fmt.Printf("Smart Finance Hub Content Engine CLI\n\n")
	fmt.Printf("Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Printf("Commands:\n")
	fmt.Printf("  generate [-count n] [-topic id]   Generate draft articles\n")
	fmt.Printf("  publish <article-id>              Publish an approved article\n")
	fmt.Printf("  publish-due                       Publish every article whose schedule arrived\n")
	fmt.Printf("  archive-sweep                     Archive aged-out published articles\n")
	fmt.Printf("  regenerate-site                   Rebuild the whole static site\n")
	fmt.Printf("  stats                             Print pipeline counts\n")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	app, err := server.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer app.Close()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate":
		fs := flag.NewFlagSet("generate", flag.ExitOnError)
		count := fs.Int("count", 1, "Number of articles to generate")
		topic := fs.String("topic", "", "Explicit topic id (overrides -count)")
		fs.Parse(args)

		if *topic != "" {
			item, err := app.Generate.GenerateOne(ctx, *topic)
			if err != nil {
				log.Fatalf("Generation failed: %v", err)
			}
			fmt.Printf("Generated %q (%s, score %d)\n", item.Title, item.Status, item.Score)
			return
		}

		summary, err := app.Generate.GenerateBatch(ctx, *count)
		if err != nil {
			log.Fatalf("Generation failed: %v", err)
		}
		fmt.Printf("Generated %d articles (%d failed)\n", summary.Succeeded, summary.Failed)

	case "publish":
		if len(args) != 1 {
			log.Fatal("Usage: publish <article-id>")
		}
		article, err := app.Review.Publish(ctx, args[0])
		if err != nil {
			log.Fatalf("Publish failed: %v", err)
		}
		fmt.Printf("Published %q at %s\n", article.Title, article.URL)

	case "publish-due":
		published, err := app.Review.PublishDue(ctx)
		if err != nil {
			log.Fatalf("Publish sweep failed: %v", err)
		}
		fmt.Printf("Published %d scheduled articles\n", len(published))

	case "archive-sweep":
		summary, err := app.Archive.Sweep(ctx)
		if err != nil {
			log.Fatalf("Archive sweep failed: %v", err)
		}
		fmt.Printf("Examined %d published articles, archived %d\n", summary.Examined, len(summary.Archived))

	case "regenerate-site":
		if err := app.Review.RegenerateSite(ctx); err != nil {
			log.Fatalf("Site regeneration failed: %v", err)
		}
		fmt.Println("Site regenerated")

	case "stats":
		stats, err := app.Stats.Stats(ctx)
		if err != nil {
			log.Fatalf("Stats failed: %v", err)
		}
		for status, count := range stats.Counts {
			fmt.Printf("%-10s %d\n", status, count)
		}
		fmt.Printf("%-10s %d\n", "total", stats.Total)

	case "help", "-help", "--help":
		usage()

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		usage()
		os.Exit(1)
	}
}
