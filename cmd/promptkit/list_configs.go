package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/promptkit/internal/model"
)

func listConfigsCmd() *cli.Command {
	return &cli.Command{
		Name:    "list-configs",
		Aliases: []string{"ls", "configs"},
		Usage:   "List registered model configs",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reg := model.NewRegistry()

			fmt.Printf("%-16s %-14s %-8s %-18s %-6s %s\n",
				"NAME", "MODEL", "CTX", "EOT", "BOS", "PREFIX")
			for _, name := range reg.Names() {
				cfg, err := reg.Lookup(name)
				if err != nil {
					return err
				}
				bos := cfg.BOSToken
				if bos == "" {
					bos = "-"
				}
				prefix := "table"
				if cfg.Prefix.Conditional() {
					prefix = "conditional"
				}
				fmt.Printf("%-16s %-14s %-8d %-18s %-6s %s\n",
					name, cfg.Name, cfg.MaxContext, cfg.EOTToken, bos, prefix)
			}
			return nil
		},
	}
}
