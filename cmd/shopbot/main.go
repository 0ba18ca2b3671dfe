package main

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	corecmd "github.com/m3rciful/shopbot/core/cmd"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	if err := corecmd.Run(corecmd.Options{DefaultConfigPath: "config.yaml"}); err != nil {
		log.Printf("shopbot: %v", err)
		os.Exit(1)
	}
}
