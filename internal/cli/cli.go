package cli

import (
	"os"

	"github.com/KOFI-GYIMAH/github-digest/pkg/logger"
	"github.com/urfave/cli/v2"
)

const Version = "0.1.0"

const helpTemplate = `{{.Name}} - {{.Usage}}

Usage: {{.HelpName}}

Configuration is read from the environment and an optional .env file.
`

// NewApp builds a flagless command. DEBUG=true turns on debug logging.
func NewApp(name, usage string, action cli.ActionFunc) *cli.App {
	return &cli.App{
		Name:                  name,
		Usage:                 usage,
		Version:               "v" + Version,
		CustomAppHelpTemplate: helpTemplate,
		HideHelpCommand:       true,
		Before: func(*cli.Context) error {
			if os.Getenv("DEBUG") == "true" {
				logger.SetLevel(logger.LevelDebug)
			}
			return nil
		},
		Action: action,
	}
}
