package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/promptkit/internal/logger"
)

func main() {
	app := &cli.Command{
		Name:  "promptkit",
		Usage: "Chat prompt template assembly CLI",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			renderCmd(),
			encodeCmd(),
			listConfigsCmd(),
			serveCmd(),
			versionCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildLogger() logger.Logger {
	level := logger.ParseLevel(logLevel)
	if debug {
		level = slog.LevelDebug
	}
	if logFormat == "json" {
		return logger.JSON(os.Stderr, level)
	}
	return logger.Text(os.Stderr, level)
}
