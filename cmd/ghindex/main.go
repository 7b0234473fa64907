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
	"github.com/KOFI-GYIMAH/github-digest/internal/queue"
	"github.com/KOFI-GYIMAH/github-digest/internal/service"
	"github.com/KOFI-GYIMAH/github-digest/pkg/errors"
	"github.com/KOFI-GYIMAH/github-digest/pkg/logger"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := appcli.NewApp("ghindex", "Flatten your repositories' files and commits into records for embedding", run)
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
	if err := cfg.Validate(false); err != nil {
		return err
	}

	githubClient := github.NewClient(cfg.GitHubToken, cfg.GitHubAPIURL)

	repos, err := githubClient.ListUserRepositories(c.Context)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(repos),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription("[cyan]Processing repositories[reset]"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	embedding := service.NewEmbeddingService(githubClient, cfg.GitHubUser, cfg.Workers).WithProgress(bar)
	records, err := embedding.PrepareRecords(c.Context, repos)
	_ = bar.Finish()
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Prepared %d items for embedding.\n", len(records))

	if cfg.RabbitMQURL == "" {
		logger.Debug("RABBITMQ_URL not set, records not published")
		return nil
	}

	publisher, err := queue.NewRecordPublisher(cfg.RabbitMQURL)
	if err != nil {
		return err
	}
	defer publisher.Close()

	_, err = publisher.Publish(c.Context, records)
	return err
}
