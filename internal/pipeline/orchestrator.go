// Package pipeline sequences the submission stages: persist the transaction
// record, then generate, email, and archive the cover sheet.
//
// Persistence is the only required stage. The durable, business-critical fact
// is that a transaction record exists; the document, email, and archive
// stages are conveniences whose failure is reported as a warning on an
// otherwise successful submission. There is no retry, no cancellation once a
// submission has started, and no compensation if a downstream stage fails
// after persistence succeeded.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/harborlight/intake/internal/form"
	"github.com/harborlight/intake/internal/journal"
	"github.com/harborlight/intake/internal/notify"
	platformid "github.com/harborlight/intake/internal/platform/id"
	"github.com/harborlight/intake/internal/recordstore"
)

// Stage names, in execution order.
const (
	StagePersist  = "persist"
	StageGenerate = "generate"
	StageNotify   = "notify"
	StageArchive  = "archive"
)

// Persister creates the durable transaction record and accepts the archive
// back-reference.
type Persister interface {
	Create(ctx context.Context, data form.TransactionFormData, target recordstore.Target) (string, error)
	AttachCoverSheet(ctx context.Context, target recordstore.Target, recordID, url string) error
}

// Renderer produces the cover-sheet document.
type Renderer interface {
	Render(data form.TransactionFormData, roleLabel string) ([]byte, error)
}

// Dispatcher emails the cover sheet to the operator.
type Dispatcher interface {
	Send(ctx context.Context, pdf []byte, data form.TransactionFormData, roleLabel string) (notify.Outcome, error)
}

// Archiver uploads the cover sheet to blob storage.
type Archiver interface {
	Upload(ctx context.Context, pdf []byte, recordID, filename string) (string, error)
}

// Details reports the best-effort stage outcomes of a successful submission.
type Details struct {
	PDFGenerated bool   `json:"pdfGenerated"`
	EmailSent    bool   `json:"emailSent"`
	PDFUploaded  bool   `json:"pdfUploaded"`
	PDFURL       string `json:"pdfUrl,omitempty"`
}

// Result is the shaped submission response.
type Result struct {
	Success  bool        `json:"success"`
	RecordID string      `json:"recordId,omitempty"`
	Message  string      `json:"message"`
	Warning  string      `json:"warning,omitempty"`
	Details  Details     `json:"details"`
	Steps    []StepState `json:"steps"`
	Err      error       `json:"-"`
}

// Orchestrator runs the submission pipeline.
type Orchestrator struct {
	persister  Persister
	renderer   Renderer
	dispatcher Dispatcher
	archiver   Archiver
	journal    journal.Store
	clock      func() time.Time
	newID      func() (string, error)
}

// New constructs an Orchestrator. The journal store may be nil, in which case
// attempts are not recorded. A nil clock defaults to time.Now.
func New(persister Persister, renderer Renderer, dispatcher Dispatcher, archiver Archiver, journalStore journal.Store, clock func() time.Time) *Orchestrator {
	if clock == nil {
		clock = time.Now
	}
	return &Orchestrator{
		persister:  persister,
		renderer:   renderer,
		dispatcher: dispatcher,
		archiver:   archiver,
		journal:    journalStore,
		clock:      clock,
		newID:      platformid.NewID,
	}
}

// Submit runs the pipeline for one submission attempt. Stages execute
// strictly in order; the persist stage is required, the rest are best-effort.
func (o *Orchestrator) Submit(ctx context.Context, data form.TransactionFormData, target recordstore.Target) Result {
	roleLabel := data.RoleLabel()

	var (
		recordID     string
		pdf          []byte
		filename     string
		pdfURL       string
		emailOutcome notify.Outcome
	)

	stages := []Stage{
		{
			Name:     StagePersist,
			Label:    "Saving transaction",
			Required: true,
			Run: func(ctx context.Context) error {
				id, err := o.persister.Create(ctx, data, target)
				if err != nil {
					return err
				}
				recordID = id
				return nil
			},
		},
		{
			Name:  StageGenerate,
			Label: "Generating cover sheet",
			Run: func(ctx context.Context) error {
				rendered, err := o.renderer.Render(data, roleLabel)
				if err != nil {
					return err
				}
				pdf = rendered
				filename = notify.Filename(roleLabel, o.clock())
				return nil
			},
		},
		{
			Name:  StageNotify,
			Label: "Emailing cover sheet",
			Run: func(ctx context.Context) error {
				outcome, err := o.dispatcher.Send(ctx, pdf, data, roleLabel)
				if err != nil {
					return err
				}
				emailOutcome = outcome
				if outcome.Filename != "" {
					filename = outcome.Filename
				}
				return nil
			},
		},
		{
			Name:  StageArchive,
			Label: "Archiving cover sheet",
			Run: func(ctx context.Context) error {
				url, err := o.archiver.Upload(ctx, pdf, recordID, filename)
				if err != nil {
					return err
				}
				pdfURL = url
				return o.persister.AttachCoverSheet(ctx, target, recordID, url)
			},
		},
	}

	tracker := NewTracker(stages)
	results := runStages(ctx, stages, tracker)

	result := o.shapeResult(results, recordID, pdfURL, emailOutcome)
	result.Steps = tracker.Steps()
	o.record(ctx, result)
	return result
}

func (o *Orchestrator) shapeResult(results []StageResult, recordID, pdfURL string, emailOutcome notify.Outcome) Result {
	byName := make(map[string]StageResult, len(results))
	for _, r := range results {
		byName[r.Name] = r
	}

	if persist := byName[StagePersist]; persist.Failed() {
		return Result{
			Success: false,
			Message: "Failed to save the transaction record",
			Err:     persist.Err,
		}
	}

	result := Result{
		Success:  true,
		RecordID: recordID,
		Message:  "Transaction submitted successfully",
		Details: Details{
			PDFGenerated: byName[StageGenerate].Ran && byName[StageGenerate].Err == nil,
			EmailSent:    emailOutcome.Sent,
			PDFUploaded:  pdfURL != "",
			PDFURL:       pdfURL,
		},
	}

	switch {
	case byName[StageGenerate].Failed():
		result.Warning = "The transaction was saved, but the cover sheet could not be generated"
	case byName[StageNotify].Failed():
		result.Warning = "The transaction was saved, but the cover sheet email could not be sent"
	case byName[StageArchive].Failed():
		result.Warning = "The transaction was saved, but the cover sheet could not be archived"
	}
	return result
}

// record journals the attempt. Journal failures are logged and absorbed; they
// never alter the submission outcome.
func (o *Orchestrator) record(ctx context.Context, result Result) {
	if o.journal == nil {
		return
	}
	id, err := o.newID()
	if err != nil {
		log.Printf("journal id: %v", err)
		return
	}
	message := result.Message
	if result.Err != nil {
		message = fmt.Sprintf("%s: %v", result.Message, result.Err)
	}
	entry := journal.Entry{
		ID:           id,
		RecordID:     result.RecordID,
		Success:      result.Success,
		Message:      message,
		Warning:      result.Warning,
		PDFGenerated: result.Details.PDFGenerated,
		EmailSent:    result.Details.EmailSent,
		PDFUploaded:  result.Details.PDFUploaded,
		PDFURL:       result.Details.PDFURL,
		CreatedAt:    o.clock(),
	}
	if err := o.journal.AppendEntry(ctx, entry); err != nil {
		log.Printf("journal append: %v", err)
	}
}
