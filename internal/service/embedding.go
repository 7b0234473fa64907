package service

import (
	"context"
	"fmt"

	"github.com/KOFI-GYIMAH/github-digest/internal/github"
	"github.com/KOFI-GYIMAH/github-digest/internal/models"
	"github.com/KOFI-GYIMAH/github-digest/internal/worker"
	"github.com/KOFI-GYIMAH/github-digest/pkg/logger"
)

// * RepositorySource is the part of the GitHub client the index pipeline needs
type RepositorySource interface {
	WalkContents(ctx context.Context, owner, repo, path string) ([]github.FileContent, error)
	ListCommits(ctx context.Context, owner, repo string) ([]github.Commit, error)
}

// Progress is notified once per finished repository.
type Progress interface {
	Add(n int) error
}

type EmbeddingService struct {
	github   RepositorySource
	owner    string
	workers  int
	progress Progress
}

func NewEmbeddingService(githubClient RepositorySource, owner string, workers int) *EmbeddingService {
	return &EmbeddingService{
		github:  githubClient,
		owner:   owner,
		workers: workers,
	}
}

func (s *EmbeddingService) WithProgress(p Progress) *EmbeddingService {
	s.progress = p
	return s
}

// PrepareRecords flattens every repository into records: all of its files
// first, then all of its commits. Repositories keep their listing order
// even when they are fetched in parallel.
func (s *EmbeddingService) PrepareRecords(ctx context.Context, repos []github.Repository) ([]models.Record, error) {
	perRepo, err := worker.RunOrdered(ctx, s.workers, len(repos), func(ctx context.Context, i int) ([]models.Record, error) {
		records, err := s.prepareRepository(ctx, repos[i].Name)
		if err != nil {
			return nil, err
		}
		if s.progress != nil {
			_ = s.progress.Add(1)
		}
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0)
	for _, batch := range perRepo {
		records = append(records, batch...)
	}
	return records, nil
}

func (s *EmbeddingService) prepareRepository(ctx context.Context, repo string) ([]models.Record, error) {
	logger.Info("Processing repository %s", repo)

	files, err := s.github.WalkContents(ctx, s.owner, repo, "")
	if err != nil {
		return nil, fmt.Errorf("failed to walk contents of %s: %w", repo, err)
	}

	commits, err := s.github.ListCommits(ctx, s.owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits of %s: %w", repo, err)
	}

	records := make([]models.Record, 0, len(files)+len(commits))
	for _, f := range files {
		records = append(records, models.ContentRecord{
			Repo:    repo,
			Path:    f.Path,
			Content: f.Content,
		})
	}

	for _, c := range commits {
		records = append(records, models.HistoryRecord{
			Repo:    repo,
			SHA:     c.SHA,
			Message: c.Commit.Message,
			Author:  c.Commit.Author.Name,
			Date:    c.Commit.Author.Date,
		})
	}

	logger.Debug("%s: %d files, %d commits", repo, len(files), len(commits))
	return records, nil
}
