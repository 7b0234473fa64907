package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/KOFI-GYIMAH/github-digest/internal/github"
	"github.com/KOFI-GYIMAH/github-digest/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pushEvent(repo string, created time.Time, shas ...string) github.Event {
	e := github.Event{Type: github.PushEventType, CreatedAt: created}
	e.Repo.Name = repo
	for _, sha := range shas {
		c := github.PushCommit{SHA: sha, Message: "commit " + sha}
		c.Author.Name = "Octo Cat"
		e.Payload.Commits = append(e.Payload.Commits, c)
	}
	return e
}

func TestNewReportService(t *testing.T) {
	service := NewReportService(new(MockGitHubClient), new(MockCompleter), "octocat")

	assert.NotNil(t, service)
	assert.Equal(t, "octocat", service.user)
}

func TestReportService_CollectCommits(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	longPatch := strings.Repeat("+", 900)

	gh := new(MockGitHubClient)
	gh.On("ListPushEvents", mock.Anything, "octocat").Return([]github.Event{
		pushEvent("octocat/alpha", created, "a1", "a2"),
		pushEvent("octocat/beta", created.Add(-time.Hour), "b1"),
	}, nil)
	gh.On("GetCommitFiles", mock.Anything, "octocat/alpha", "a1").Return([]github.CommitFile{
		{Filename: "main.go", Additions: 10, Deletions: 2, Patch: longPatch},
		{Filename: "logo.png"},
	}, nil)
	gh.On("GetCommitFiles", mock.Anything, "octocat/alpha", "a2").Return([]github.CommitFile{}, nil)
	gh.On("GetCommitFiles", mock.Anything, "octocat/beta", "b1").Return([]github.CommitFile{
		{Filename: "README.md", Additions: 1, Patch: "@@ -0,0 +1 @@\n+hello"},
	}, nil)

	service := NewReportService(gh, new(MockCompleter), "octocat")
	commits, err := service.CollectCommits(context.Background())

	require.NoError(t, err)
	require.Len(t, commits, 3)

	assert.Equal(t, "octocat/alpha", commits[0].Repository)
	assert.Equal(t, "a1", commits[0].SHA)
	assert.Equal(t, "Octo Cat", commits[0].Author)
	assert.Equal(t, "commit a1", commits[0].Message)
	assert.Equal(t, created, commits[0].Date)
	require.Len(t, commits[0].Changes, 2)
	assert.Len(t, commits[0].Changes[0].Patch, models.MaxPatchLength)
	assert.Equal(t, 10, commits[0].Changes[0].Additions)
	assert.Equal(t, "", commits[0].Changes[1].Patch)

	assert.Equal(t, "a2", commits[1].SHA)
	assert.NotNil(t, commits[1].Changes)
	assert.Empty(t, commits[1].Changes)

	assert.Equal(t, "octocat/beta", commits[2].Repository)
	assert.Equal(t, created.Add(-time.Hour), commits[2].Date)

	gh.AssertExpectations(t)
}

func TestReportService_CollectCommits_ListError(t *testing.T) {
	gh := new(MockGitHubClient)
	gh.On("ListPushEvents", mock.Anything, "octocat").Return(nil, assert.AnError)

	service := NewReportService(gh, new(MockCompleter), "octocat")
	commits, err := service.CollectCommits(context.Background())

	require.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, commits)
	gh.AssertNotCalled(t, "GetCommitFiles", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportService_GenerateReport_Empty(t *testing.T) {
	tests := []struct {
		name  string
		input []models.CommitSummary
	}{
		{name: "nil", input: nil},
		{name: "empty", input: []models.CommitSummary{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := new(MockCompleter)
			completer.On("Complete", mock.Anything, reportSystemPrompt, mock.MatchedBy(func(prompt string) bool {
				return strings.Contains(prompt, "Commit Data:\n[]\n")
			})).Return("Nothing happened.\n", nil).Once()

			service := NewReportService(new(MockGitHubClient), completer, "octocat")
			report, err := service.GenerateReport(context.Background(), tt.input)

			require.NoError(t, err)
			assert.Equal(t, "Nothing happened.\n", report)
			completer.AssertNumberOfCalls(t, "Complete", 1)
		})
	}
}

func TestReportService_GenerateReport_SerializesCommits(t *testing.T) {
	commits := []models.CommitSummary{{
		Repository: "octocat/alpha",
		Author:     "Octo Cat",
		Date:       time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		SHA:        "a1",
		Message:    "Add feature",
		Changes:    []models.Change{{Filename: "main.go", Additions: 3, Deletions: 1, Patch: "+x"}},
	}}
	expected, err := json.MarshalIndent(commits, "", "  ")
	require.NoError(t, err)

	var gotPrompt string
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, reportSystemPrompt, mock.Anything).
		Run(func(args mock.Arguments) { gotPrompt = args.String(2) }).
		Return("report text", nil)

	service := NewReportService(new(MockGitHubClient), completer, "octocat")
	report, err := service.GenerateReport(context.Background(), commits)

	require.NoError(t, err)
	assert.Equal(t, "report text", report)
	assert.Contains(t, gotPrompt, string(expected))
	assert.Contains(t, gotPrompt, "overview of the repositories affected")
	completer.AssertNumberOfCalls(t, "Complete", 1)
}

func TestReportService_GenerateReport_ErrorPropagates(t *testing.T) {
	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError)

	service := NewReportService(new(MockGitHubClient), completer, "octocat")
	report, err := service.GenerateReport(context.Background(), nil)

	require.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, report)
}

func TestReportService_Run(t *testing.T) {
	gh := new(MockGitHubClient)
	gh.On("ListPushEvents", mock.Anything, "octocat").Return([]github.Event{}, nil)

	completer := new(MockCompleter)
	completer.On("Complete", mock.Anything, reportSystemPrompt, mock.Anything).Return("quiet week", nil).Once()

	service := NewReportService(gh, completer, "octocat")
	report, err := service.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "quiet week", report)
	completer.AssertExpectations(t)
}
