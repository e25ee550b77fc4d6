// Package api exposes the intake HTTP endpoints: transaction submission,
// on-demand cover-sheet generation, per-step validation, and submission
// attempt lookups.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/harborlight/intake/internal/form"
	"github.com/harborlight/intake/internal/journal"
	"github.com/harborlight/intake/internal/notify"
	"github.com/harborlight/intake/internal/pipeline"
	"github.com/harborlight/intake/internal/recordstore"
)

// Submitter runs the full submission pipeline for one attempt.
type Submitter interface {
	Submit(ctx context.Context, data form.TransactionFormData, target recordstore.Target) pipeline.Result
}

// RecordSource loads a previously persisted transaction record.
type RecordSource interface {
	Get(ctx context.Context, target recordstore.Target, recordID string) (form.TransactionFormData, error)
}

// Handlers serves the intake API. The dispatcher and journal may be nil;
// the affected endpoints then degrade instead of failing at startup.
type Handlers struct {
	submitter  Submitter
	records    RecordSource
	renderer   pipeline.Renderer
	dispatcher pipeline.Dispatcher
	journal    journal.Store
	target     recordstore.Target
	clock      func() time.Time
}

// New constructs the API handlers. A nil clock defaults to time.Now.
func New(submitter Submitter, records RecordSource, renderer pipeline.Renderer, dispatcher pipeline.Dispatcher, journalStore journal.Store, target recordstore.Target, clock func() time.Time) *Handlers {
	if clock == nil {
		clock = time.Now
	}
	return &Handlers{
		submitter:  submitter,
		records:    records,
		renderer:   renderer,
		dispatcher: dispatcher,
		journal:    journalStore,
		target:     target,
		clock:      clock,
	}
}

var _ pipeline.Dispatcher = (*notify.Mailer)(nil)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
