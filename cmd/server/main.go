package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/useraccounts/internal/server"
	"github.com/dmitrijs2005/useraccounts/internal/server/config"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
