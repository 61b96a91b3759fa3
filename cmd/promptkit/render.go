package main

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/promptkit/internal/dataset"
	"github.com/samcharles93/promptkit/internal/model"
	"github.com/samcharles93/promptkit/internal/tokenizer"
)

func renderCmd() *cli.Command {
	var (
		inputPath  string
		jsonOutput bool
	)

	return &cli.Command{
		Name:  "render",
		Usage: "Assemble one conversation into tokens, masks and group",
		Flags: append(commonTemplateFlags(),
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"i"},
				Usage:       "path to conversation JSON file",
				Destination: &inputPath,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "emit the encoded record as JSON",
				Destination: &jsonOutput,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			applyTemplateConfig(cmd, LoadConfig())

			if inputPath == "" {
				return cli.Exit("error: --input is required", 1)
			}
			cfg, tok, err := resolveTemplateSetup()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			conv, err := dataset.LoadConversationJSON(inputPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			enc := &dataset.Encoder{Config: cfg, Tokenizer: tok}
			rec, err := enc.EncodeConversation(conv)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			if jsonOutput {
				out, err := json.Marshal(rec)
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			targets := 0
			for _, m := range rec.Masks {
				if m {
					targets++
				}
			}
			fmt.Printf("config:  %s\n", cfg.Name)
			fmt.Printf("group:   %d\n", rec.Group)
			fmt.Printf("tokens:  %d (%d targets)\n", len(rec.Tokens), targets)
			fmt.Printf("ids:     %v\n", rec.Tokens)
			fmt.Printf("targets: %s\n", maskString(rec.Masks))
			return nil
		},
	}
}

// maskString renders masks as a compact .#-string, # marking targets.
func maskString(masks []bool) string {
	out := make([]byte, len(masks))
	for i, m := range masks {
		if m {
			out[i] = '#'
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}

// resolveTemplateSetup loads the registry config and tokenizer the shared
// template flags point at.
func resolveTemplateSetup() (*model.Config, tokenizer.Tokenizer, error) {
	if configName == "" {
		return nil, nil, fmt.Errorf("--config is required")
	}
	cfg, err := model.NewRegistry().Lookup(configName)
	if err != nil {
		return nil, nil, err
	}
	if tokenizerJSONPath == "" {
		return nil, nil, fmt.Errorf("--tokenizer-json is required")
	}
	if _, err := os.Stat(tokenizerJSONPath); err != nil {
		return nil, nil, err
	}
	tok, err := tokenizer.LoadBPEFile(tokenizerJSONPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, tok, nil
}
