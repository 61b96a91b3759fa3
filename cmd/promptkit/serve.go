package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/promptkit/internal/api"
	"github.com/samcharles93/promptkit/internal/model"
	"github.com/samcharles93/promptkit/internal/tokenizer"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		rps         int64
		burst       int64
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the template assembly REST API",
		Flags: append(commonTemplateFlags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.Int64Flag{
				Name:        "rps",
				Usage:       "assembly requests per second (0 = unlimited)",
				Destination: &rps,
			},
			&cli.Int64Flag{
				Name:        "burst",
				Usage:       "rate limit burst size",
				Value:       8,
				Destination: &burst,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyServeConfig(cmd, LoadConfig(), &addr, &rps, &burst)
			log := buildLogger()

			// The API resolves configs per request; only the tokenizer is
			// loaded up front.
			if tokenizerJSONPath == "" {
				return cli.Exit("error: --tokenizer-json is required", 1)
			}
			tok, err := tokenizer.LoadBPEFile(tokenizerJSONPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			server := api.NewServer(api.ServerConfig{
				Registry:          model.NewRegistry(),
				Tokenizer:         tok,
				Log:               log,
				RequestsPerSecond: float64(rps),
				Burst:             int(burst),
			})

			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)

			log.Info("starting server", "address", addr)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
