package models

import "time"

// MaxPatchLength bounds Change.Patch, counted in characters.
const MaxPatchLength = 500

// * Commit of a push event, with its changed files, as handed to the report
type CommitSummary struct {
	Repository string    `json:"repository"`
	Author     string    `json:"author"`
	Date       time.Time `json:"date"`
	SHA        string    `json:"sha"`
	Message    string    `json:"message"`
	Changes    []Change  `json:"changes"`
}

type Change struct {
	Filename  string `json:"filename"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Patch     string `json:"patch"`
}

// TruncatePatch keeps the first MaxPatchLength characters of patch. The cut
// is by rune, so multi-byte characters are never split, but it may land in
// the middle of a diff line.
func TruncatePatch(patch string) string {
	if len(patch) <= MaxPatchLength {
		return patch
	}

	count := 0
	for i := range patch {
		if count == MaxPatchLength {
			return patch[:i]
		}
		count++
	}
	return patch
}
