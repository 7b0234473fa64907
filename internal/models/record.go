package models

import (
	"encoding/json"
	"time"
)

type RecordKind string

const (
	KindFile   RecordKind = "file"
	KindCommit RecordKind = "commit"
)

// Record is one item prepared for embedding. It is either a ContentRecord or
// a HistoryRecord; Kind is the discriminant and is written as "type" in JSON.
type Record interface {
	Kind() RecordKind
	record()
}

type ContentRecord struct {
	Repo    string `json:"repo"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

func (ContentRecord) Kind() RecordKind { return KindFile }
func (ContentRecord) record()          {}

func (r ContentRecord) MarshalJSON() ([]byte, error) {
	type plain ContentRecord
	return json.Marshal(struct {
		Type RecordKind `json:"type"`
		plain
	}{KindFile, plain(r)})
}

type HistoryRecord struct {
	Repo    string    `json:"repo"`
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
}

func (HistoryRecord) Kind() RecordKind { return KindCommit }
func (HistoryRecord) record()          {}

func (r HistoryRecord) MarshalJSON() ([]byte, error) {
	type plain HistoryRecord
	return json.Marshal(struct {
		Type RecordKind `json:"type"`
		plain
	}{KindCommit, plain(r)})
}
