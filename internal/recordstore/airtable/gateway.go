// Package airtable implements the record store gateway against an
// Airtable-compatible base.
package airtable

import (
	"context"

	"github.com/mehanizm/airtable"

	apperrors "github.com/harborlight/intake/internal/platform/errors"
	"github.com/harborlight/intake/internal/recordstore"
)

// Gateway talks to the Airtable API. Methods honor context cancellation
// before issuing a call; the underlying client does not support per-request
// contexts.
type Gateway struct {
	client *airtable.Client
}

var _ recordstore.Gateway = (*Gateway)(nil)

// New returns a Gateway authenticated with the given API key.
func New(apiKey string) *Gateway {
	return &Gateway{client: airtable.NewClient(apiKey)}
}

// CreateRecord creates one record and returns its generated id.
func (g *Gateway) CreateRecord(ctx context.Context, baseID, tableID string, fields map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	table := g.client.GetTable(baseID, tableID)
	created, err := table.AddRecords(&airtable.Records{
		Records: []*airtable.Record{{Fields: fields}},
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindUpstream, "add record", err)
	}
	if created == nil || len(created.Records) == 0 {
		return "", apperrors.E(apperrors.KindUpstream, "record store returned no created records")
	}
	return created.Records[0].ID, nil
}

// GetRecord reads one record's fields.
func (g *Gateway) GetRecord(ctx context.Context, baseID, tableID, recordID string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	record, err := g.client.GetTable(baseID, tableID).GetRecord(recordID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindUpstream, "get record", err)
	}
	if record == nil {
		return nil, apperrors.E(apperrors.KindNotFound, "record not found")
	}
	return record.Fields, nil
}

// UpdateRecord performs a partial update on one record, leaving all other
// fields untouched.
func (g *Gateway) UpdateRecord(ctx context.Context, baseID, tableID, recordID string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	record, err := g.client.GetTable(baseID, tableID).GetRecord(recordID)
	if err != nil {
		return apperrors.Wrap(apperrors.KindUpstream, "get record for update", err)
	}
	if record == nil {
		return apperrors.E(apperrors.KindNotFound, "record not found")
	}
	if _, err := record.UpdateRecordPartial(fields); err != nil {
		return apperrors.Wrap(apperrors.KindUpstream, "update record", err)
	}
	return nil
}
