package main

import (
	"log"
	"os"

	"strike-bot/bot"
	"strike-bot/config"
	"strike-bot/handlers"
	"strike-bot/utils/database/guilds"
	strikes_db "strike-bot/utils/database/strikes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if err := os.MkdirAll("./data", os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	db, err := strikes_db.Init(cfg.DBPath)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	if err := guilds.Init(db); err != nil {
		log.Fatalf("Error creating guild settings table: %v", err)
	}

	b, err := bot.New(cfg, db)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}

	handlers.Register(b)

	b.Run()

	defer b.Close()
}
