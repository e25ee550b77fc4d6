// Package journal keeps a durable local log of submission attempts and their
// per-stage outcomes. Journal writes are best-effort: a journal failure never
// fails a submission.
package journal

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates no journal entry exists for the given id.
var ErrNotFound = errors.New("submission not found")

// Entry is one recorded submission attempt.
type Entry struct {
	ID           string    `json:"id"`
	RecordID     string    `json:"recordId,omitempty"`
	Success      bool      `json:"success"`
	Message      string    `json:"message,omitempty"`
	Warning      string    `json:"warning,omitempty"`
	PDFGenerated bool      `json:"pdfGenerated"`
	EmailSent    bool      `json:"emailSent"`
	PDFUploaded  bool      `json:"pdfUploaded"`
	PDFURL       string    `json:"pdfUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Store is the journal persistence boundary.
type Store interface {
	AppendEntry(ctx context.Context, entry Entry) error
	GetEntry(ctx context.Context, id string) (Entry, error)
}
