package pipeline

import (
	"context"
	"time"

	"github.com/harborlight/intake/internal/form"
	"github.com/harborlight/intake/internal/journal"
	"github.com/harborlight/intake/internal/notify"
	"github.com/harborlight/intake/internal/recordstore"
)

type fakePersister struct {
	createCalls int
	createErr   error
	recordID    string
	attachCalls int
	attachErr   error
	attachedURL string
}

func (f *fakePersister) Create(context.Context, form.TransactionFormData, recordstore.Target) (string, error) {
	f.createCalls++
	if f.createErr != nil {
		return "", f.createErr
	}
	if f.recordID == "" {
		return "rec001", nil
	}
	return f.recordID, nil
}

func (f *fakePersister) AttachCoverSheet(_ context.Context, _ recordstore.Target, _ string, url string) error {
	f.attachCalls++
	if f.attachErr != nil {
		return f.attachErr
	}
	f.attachedURL = url
	return nil
}

type fakeRenderer struct {
	calls int
	err   error
}

func (f *fakeRenderer) Render(form.TransactionFormData, string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

type fakeDispatcher struct {
	calls   int
	err     error
	outcome notify.Outcome
}

func (f *fakeDispatcher) Send(context.Context, []byte, form.TransactionFormData, string) (notify.Outcome, error) {
	f.calls++
	if f.err != nil {
		return notify.Outcome{}, f.err
	}
	if f.outcome == (notify.Outcome{}) {
		return notify.Outcome{Sent: true, Filename: "sheet.pdf"}, nil
	}
	return f.outcome, nil
}

type fakeArchiver struct {
	calls int
	err   error
	url   string
}

func (f *fakeArchiver) Upload(context.Context, []byte, string, string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.url == "" {
		return "https://cdn.example.com/sheet.pdf", nil
	}
	return f.url, nil
}

type fakeJournal struct {
	entries []journal.Entry
	err     error
}

func (f *fakeJournal) AppendEntry(_ context.Context, entry journal.Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeJournal) GetEntry(context.Context, string) (journal.Entry, error) {
	return journal.Entry{}, journal.ErrNotFound
}

func notifyUnconfiguredOutcome() notify.Outcome {
	return notify.Outcome{Sent: false, Message: "email transport is not configured"}
}

func testClock() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
}
