package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/lodestone-mc/lodestone/pkg/output/styles"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, styles.GetStyle("Error").Render("Error:"), err)
		stop()
		os.Exit(1)
	}
}
