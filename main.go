package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/uzresk/azure-ocr-samples/cmd"
	"github.com/uzresk/azure-ocr-samples/internal/utils"
)

func main() {
	// .env is optional; the environment may already hold the credentials
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		utils.ExitOnError("Error loading .env file", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := fang.Execute(ctx, cmd.RootCmd); err != nil {
		stop()
		os.Exit(1)
	}
}
