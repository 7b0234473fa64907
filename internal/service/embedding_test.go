package service

import (
	"context"
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/github-digest/internal/github"
	"github.com/KOFI-GYIMAH/github-digest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func historyCommit(sha, message, author string, date time.Time) github.Commit {
	c := github.Commit{SHA: sha}
	c.Commit.Message = message
	c.Commit.Author = github.CommitAuthor{Name: author, Date: date}
	return c
}

func repos(names ...string) []github.Repository {
	out := make([]github.Repository, 0, len(names))
	for _, n := range names {
		r := github.Repository{Name: n, FullName: "octocat/" + n}
		r.Owner.Login = "octocat"
		out = append(out, r)
	}
	return out
}

func TestEmbeddingService_PrepareRecords_Order(t *testing.T) {
	date := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	for _, workers := range []int{1, 2} {
		gh := new(MockGitHubClient)
		gh.On("WalkContents", mock.Anything, "octocat", "repo1", "").
			Return([]github.FileContent{{Path: "a.go", Content: "package a"}}, nil)
		gh.On("ListCommits", mock.Anything, "octocat", "repo1").
			Return([]github.Commit{historyCommit("s1", "first", "Ann", date)}, nil)
		gh.On("WalkContents", mock.Anything, "octocat", "repo2", "").
			After(20*time.Millisecond).
			Return([]github.FileContent{{Path: "b.go", Content: "package b"}}, nil)
		gh.On("ListCommits", mock.Anything, "octocat", "repo2").
			Return([]github.Commit{historyCommit("s2", "second", "Bob", date)}, nil)

		progress := &countingProgress{}
		service := NewEmbeddingService(gh, "octocat", workers).WithProgress(progress)

		records, err := service.PrepareRecords(context.Background(), repos("repo1", "repo2"))

		require.NoError(t, err)
		assert.Equal(t, []models.Record{
			models.ContentRecord{Repo: "repo1", Path: "a.go", Content: "package a"},
			models.HistoryRecord{Repo: "repo1", SHA: "s1", Message: "first", Author: "Ann", Date: date},
			models.ContentRecord{Repo: "repo2", Path: "b.go", Content: "package b"},
			models.HistoryRecord{Repo: "repo2", SHA: "s2", Message: "second", Author: "Bob", Date: date},
		}, records)
		assert.Equal(t, int64(2), progress.n.Load())
		gh.AssertExpectations(t)
	}
}

func TestEmbeddingService_PrepareRecords_ContentBeforeHistory(t *testing.T) {
	date := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	gh := new(MockGitHubClient)
	gh.On("WalkContents", mock.Anything, "octocat", "solo", "").Return([]github.FileContent{
		{Path: "README.md", Content: "# solo"},
		{Path: "cmd/main.go", Content: "package main"},
	}, nil)
	gh.On("ListCommits", mock.Anything, "octocat", "solo").Return([]github.Commit{
		historyCommit("c2", "second", "Ann", date),
		historyCommit("c1", "first", "Ann", date.Add(-time.Hour)),
	}, nil)

	records, err := NewEmbeddingService(gh, "octocat", 1).PrepareRecords(context.Background(), repos("solo"))

	require.NoError(t, err)
	require.Len(t, records, 4)
	kinds := []models.RecordKind{records[0].Kind(), records[1].Kind(), records[2].Kind(), records[3].Kind()}
	assert.Equal(t, []models.RecordKind{models.KindFile, models.KindFile, models.KindCommit, models.KindCommit}, kinds)
	assert.Equal(t, "cmd/main.go", records[1].(models.ContentRecord).Path)
	assert.Equal(t, "c1", records[3].(models.HistoryRecord).SHA)
}

func TestEmbeddingService_PrepareRecords_NoRepositories(t *testing.T) {
	records, err := NewEmbeddingService(new(MockGitHubClient), "octocat", 1).PrepareRecords(context.Background(), nil)

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestEmbeddingService_PrepareRecords_ErrorPropagates(t *testing.T) {
	gh := new(MockGitHubClient)
	gh.On("WalkContents", mock.Anything, "octocat", "broken", "").Return([]github.FileContent{}, nil)
	gh.On("ListCommits", mock.Anything, "octocat", "broken").Return(nil, assert.AnError)

	records, err := NewEmbeddingService(gh, "octocat", 1).PrepareRecords(context.Background(), repos("broken", "never"))

	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to list commits of broken")
	assert.Nil(t, records)
	gh.AssertNotCalled(t, "WalkContents", mock.Anything, "octocat", "never", "")
}
