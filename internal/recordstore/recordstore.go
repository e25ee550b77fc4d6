// Package recordstore persists transaction intake records to the external
// field-name-keyed record store.
//
// The store is the durable system of record: a submission exists once its
// parent record is created. Client sub-records are created first and linked
// back to the parent as buyer and seller link lists. The only mutation this
// package ever performs on an existing record is the single cover-sheet
// back-reference write.
package recordstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harborlight/intake/internal/form"
)

var (
	// ErrNotConfigured indicates the record store gateway is missing.
	ErrNotConfigured = errors.New("record store is not configured")
	// ErrTargetRequired indicates the base or table identifier is missing.
	ErrTargetRequired = errors.New("record store base and table are required")
)

// Target addresses one table within the external record store.
type Target struct {
	BaseID         string
	TableID        string
	ClientsTableID string
}

// Gateway is the transport boundary to the external record store.
type Gateway interface {
	CreateRecord(ctx context.Context, baseID, tableID string, fields map[string]any) (string, error)
	GetRecord(ctx context.Context, baseID, tableID, recordID string) (map[string]any, error)
	UpdateRecord(ctx context.Context, baseID, tableID, recordID string, fields map[string]any) error
}

// Persister maps form data onto external field identifiers and creates the
// transaction record.
type Persister struct {
	gateway Gateway
}

// NewPersister returns a Persister backed by the given gateway. A nil gateway
// yields a Persister whose operations fail with ErrNotConfigured.
func NewPersister(gateway Gateway) *Persister {
	return &Persister{gateway: gateway}
}

// Create persists the transaction. Clients are created first as child
// records; their ids are grouped by type and attached to the parent record as
// two link lists. Any failure is fatal to the whole submission.
func (p *Persister) Create(ctx context.Context, data form.TransactionFormData, target Target) (string, error) {
	if p == nil || p.gateway == nil {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(target.BaseID) == "" || strings.TrimSpace(target.TableID) == "" {
		return "", ErrTargetRequired
	}

	var buyerIDs, sellerIDs []string
	if target.ClientsTableID != "" {
		for i, client := range data.Clients {
			id, err := p.gateway.CreateRecord(ctx, target.BaseID, target.ClientsTableID, clientFields(client))
			if err != nil {
				return "", fmt.Errorf("create client record %d: %w", i, err)
			}
			if client.Type == form.ClientTypeSeller {
				sellerIDs = append(sellerIDs, id)
			} else {
				buyerIDs = append(buyerIDs, id)
			}
		}
	}

	fields := BuildFields(data)
	if len(buyerIDs) > 0 {
		fields[FieldBuyers] = buyerIDs
	}
	if len(sellerIDs) > 0 {
		fields[FieldSellers] = sellerIDs
	}

	recordID, err := p.gateway.CreateRecord(ctx, target.BaseID, target.TableID, fields)
	if err != nil {
		return "", fmt.Errorf("create transaction record: %w", err)
	}
	return recordID, nil
}

// Get reads one transaction record and rebuilds the scalar portion of the
// form data from its fields. Linked client records are not resolved.
func (p *Persister) Get(ctx context.Context, target Target, recordID string) (form.TransactionFormData, error) {
	if p == nil || p.gateway == nil {
		return form.TransactionFormData{}, ErrNotConfigured
	}
	fields, err := p.gateway.GetRecord(ctx, target.BaseID, target.TableID, recordID)
	if err != nil {
		return form.TransactionFormData{}, fmt.Errorf("get transaction record: %w", err)
	}
	return FormFromFields(fields), nil
}

// AttachCoverSheet writes the archived cover-sheet URL onto the record. This
// is the single back-reference write permitted on persisted records.
func (p *Persister) AttachCoverSheet(ctx context.Context, target Target, recordID, url string) error {
	if p == nil || p.gateway == nil {
		return ErrNotConfigured
	}
	if err := p.gateway.UpdateRecord(ctx, target.BaseID, target.TableID, recordID, map[string]any{
		FieldCoverSheetURL: url,
	}); err != nil {
		return fmt.Errorf("attach cover sheet: %w", err)
	}
	return nil
}
