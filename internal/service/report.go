package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/KOFI-GYIMAH/github-digest/internal/github"
	"github.com/KOFI-GYIMAH/github-digest/internal/llm"
	"github.com/KOFI-GYIMAH/github-digest/internal/models"
	"github.com/KOFI-GYIMAH/github-digest/pkg/errors"
	"github.com/KOFI-GYIMAH/github-digest/pkg/logger"
)

// * EventSource is the part of the GitHub client the report pipeline needs
type EventSource interface {
	ListPushEvents(ctx context.Context, user string) ([]github.Event, error)
	GetCommitFiles(ctx context.Context, repoFullName, sha string) ([]github.CommitFile, error)
}

type ReportService struct {
	github EventSource
	llm    llm.Completer
	user   string
}

func NewReportService(githubClient EventSource, completer llm.Completer, user string) *ReportService {
	return &ReportService{
		github: githubClient,
		llm:    completer,
		user:   user,
	}
}

// CollectCommits turns the user's recent push events into commit summaries,
// one per pushed commit, in event order then commit order.
func (s *ReportService) CollectCommits(ctx context.Context) ([]models.CommitSummary, error) {
	events, err := s.github.ListPushEvents(ctx, s.user)
	if err != nil {
		return nil, fmt.Errorf("failed to list push events: %w", err)
	}

	logger.Info("Found %d push events for %s", len(events), s.user)

	commits := make([]models.CommitSummary, 0)
	for _, event := range events {
		for _, pushed := range event.Payload.Commits {
			files, err := s.github.GetCommitFiles(ctx, event.Repo.Name, pushed.SHA)
			if err != nil {
				return nil, fmt.Errorf("failed to get changes of %s@%s: %w", event.Repo.Name, pushed.SHA, err)
			}

			changes := make([]models.Change, 0, len(files))
			for _, f := range files {
				changes = append(changes, models.Change{
					Filename:  f.Filename,
					Additions: f.Additions,
					Deletions: f.Deletions,
					Patch:     models.TruncatePatch(f.Patch),
				})
			}

			commits = append(commits, models.CommitSummary{
				Repository: event.Repo.Name,
				Author:     pushed.Author.Name,
				Date:       event.CreatedAt,
				SHA:        pushed.SHA,
				Message:    pushed.Message,
				Changes:    changes,
			})
		}
	}

	return commits, nil
}

// GenerateReport asks the model for a summary of commits. It always makes
// exactly one completion call, even for no commits, and returns the reply
// untouched.
func (s *ReportService) GenerateReport(ctx context.Context, commits []models.CommitSummary) (string, error) {
	if commits == nil {
		commits = []models.CommitSummary{}
	}

	data, err := json.MarshalIndent(commits, "", "  ")
	if err != nil {
		return "", errors.New(
			"REPORT_ERROR",
			"Failed to serialize commit data",
			"Could not encode commit data for the report prompt",
			err,
			errors.LevelError,
		)
	}

	return s.llm.Complete(ctx, reportSystemPrompt, fmt.Sprintf(reportPromptTemplate, data))
}

// Run is the whole report pipeline: collect, then summarize.
func (s *ReportService) Run(ctx context.Context) (string, error) {
	commits, err := s.CollectCommits(ctx)
	if err != nil {
		return "", err
	}

	logger.Info("Generating report for %d commits", len(commits))
	return s.GenerateReport(ctx, commits)
}
