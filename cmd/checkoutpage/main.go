// Command checkoutpage is a command-line client for the Checkout Page API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/andyle182810/checkoutpage/cmd/checkoutpage/commands"
	"github.com/andyle182810/checkoutpage/internal/config"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = commands.NewRootCommand(cfg, os.Stdout).ExecuteContext(ctx)

	stop()

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", commands.Describe(err))
		os.Exit(1)
	}
}
