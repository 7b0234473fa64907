package service

import (
	"context"
	"sync/atomic"

	"github.com/KOFI-GYIMAH/github-digest/internal/github"
	"github.com/stretchr/testify/mock"
)

type MockGitHubClient struct {
	mock.Mock
}

func (m *MockGitHubClient) ListPushEvents(ctx context.Context, user string) ([]github.Event, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]github.Event), args.Error(1)
}

func (m *MockGitHubClient) GetCommitFiles(ctx context.Context, repoFullName, sha string) ([]github.CommitFile, error) {
	args := m.Called(ctx, repoFullName, sha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]github.CommitFile), args.Error(1)
}

func (m *MockGitHubClient) WalkContents(ctx context.Context, owner, repo, path string) ([]github.FileContent, error) {
	args := m.Called(ctx, owner, repo, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]github.FileContent), args.Error(1)
}

func (m *MockGitHubClient) ListCommits(ctx context.Context, owner, repo string) ([]github.Commit, error) {
	args := m.Called(ctx, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]github.Commit), args.Error(1)
}

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

type countingProgress struct {
	n atomic.Int64
}

func (p *countingProgress) Add(n int) error {
	p.n.Add(int64(n))
	return nil
}
