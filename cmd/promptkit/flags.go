package main

import "github.com/urfave/cli/v3"

var (
	configName        string
	tokenizerJSONPath string
	logLevel          string
	logFormat         string
	debug             bool
)

func commonTemplateFlags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"C"},
			Usage:       "model config name (see list-configs)",
			Destination: &configName,
		},
		&cli.StringFlag{
			Name:        "tokenizer-json",
			Usage:       "path to tokenizer.json",
			Destination: &tokenizerJSONPath,
		},
	}, loggingFlags()...)
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}
