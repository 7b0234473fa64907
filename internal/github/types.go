package github

import "time"

const PushEventType = "PushEvent"

type Event struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Repo      struct {
		Name string `json:"name"`
	} `json:"repo"`
	Payload PushPayload `json:"payload"`
}

type PushPayload struct {
	Commits []PushCommit `json:"commits"`
}

type PushCommit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Author  struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"author"`
}

// * CommitFile is one entry of the "files" array of a single-commit response.
type CommitFile struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Patch     string `json:"patch"`
}

type commitDetail struct {
	SHA   string       `json:"sha"`
	Files []CommitFile `json:"files"`
}

type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	Owner    struct {
		Login string `json:"login"`
	} `json:"owner"`
}

type CommitAuthor struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

type Commit struct {
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url"`
	Commit  struct {
		Message string       `json:"message"`
		Author  CommitAuthor `json:"author"`
	} `json:"commit"`
}

const (
	ContentTypeFile = "file"
	ContentTypeDir  = "dir"
)

// * ContentEntry is one item of a directory listing from the contents API.
type ContentEntry struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Encoding string `json:"encoding,omitempty"`
	Content  string `json:"content,omitempty"`
}

// * FileContent is a decoded file produced by the content walker.
type FileContent struct {
	Path    string
	Content string
}
