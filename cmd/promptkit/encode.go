package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/promptkit/internal/dataset"
)

func encodeCmd() *cli.Command {
	var (
		inputPath  string
		outputPath string
	)

	return &cli.Command{
		Name:  "encode",
		Usage: "Encode a JSONL conversation dataset into training records",
		Flags: append(commonTemplateFlags(),
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "input JSONL file (default stdin)",
				Destination: &inputPath,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "output JSONL file (default stdout)",
				Destination: &outputPath,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyTemplateConfig(cmd, LoadConfig())
			log := buildLogger()

			cfg, tok, err := resolveTemplateSetup()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			var in io.Reader = os.Stdin
			if inputPath != "" {
				f, err := os.Open(inputPath)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				defer f.Close()
				in = f
			}

			var out io.Writer = os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				defer f.Close()
				out = f
			}

			enc := &dataset.Encoder{Config: cfg, Tokenizer: tok}
			stats, err := enc.EncodeStream(in, out, log)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			log.Info("dataset encoded",
				"config", cfg.Name,
				"read", stats.Read,
				"encoded", stats.Encoded,
				"failed", stats.Failed)
			return nil
		},
	}
}
