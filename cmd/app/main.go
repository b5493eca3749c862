package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/enjleezdev/theappez/internal/adapters/cli"
	"github.com/enjleezdev/theappez/internal/ai"
	"github.com/enjleezdev/theappez/internal/app"
	"github.com/enjleezdev/theappez/internal/db"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: app <command> [args]")
		fmt.Fprintln(os.Stderr, "Commands: warehouses, items, item, report, archive, reprint")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	var agent ai.SuggestionService
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		agent = ai.NewAgent(apiKey)
	}

	svc := app.NewAppService(pool, agent)
	cli.Run(ctx, svc, os.Args[1:])
}
