package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	appcli "github.com/KOFI-GYIMAH/github-digest/internal/cli"
	"github.com/KOFI-GYIMAH/github-digest/internal/config"
	"github.com/KOFI-GYIMAH/github-digest/internal/github"
	"github.com/KOFI-GYIMAH/github-digest/internal/llm"
	"github.com/KOFI-GYIMAH/github-digest/internal/service"
	"github.com/KOFI-GYIMAH/github-digest/pkg/errors"
	"github.com/KOFI-GYIMAH/github-digest/pkg/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := appcli.NewApp("ghreport", "Summarize your recent GitHub pushes with a language model", run)
	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Error("‼️ %v", err)
		stop()
		os.Exit(errors.ExitCode(err))
	}
}

func run(c *cli.Context) error {
	// * Load configuration
	cfg, err := config.LoadConfiguration()
	if err != nil {
		return err
	}
	if err := cfg.Validate(true); err != nil {
		return err
	}

	githubClient := github.NewClient(cfg.GitHubToken, cfg.GitHubAPIURL)
	model := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)

	logger.Info("Collecting push events for %s (model %s)", cfg.GitHubUser, model.Model())

	report, err := service.NewReportService(githubClient, model, cfg.GitHubUser).Run(c.Context)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, "\nGenerated Report:")
	fmt.Fprintln(c.App.Writer, report)
	return nil
}
