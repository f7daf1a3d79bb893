package webhook

import (
	"context"
	"errors"

	"github.com/ManuelReschke/HookFox/app/models"
	"github.com/ManuelReschke/HookFox/app/repository"
)

// RepositoryLedger stores deliveries in the webhook_events table.
type RepositoryLedger struct {
	repo repository.WebhookEventRepository
}

func NewRepositoryLedger(repo repository.WebhookEventRepository) *RepositoryLedger {
	return &RepositoryLedger{repo: repo}
}

// Record inserts the delivery once per provider and delivery id. A repeated
// delivery whose first attempt failed or is still running is handed out
// again; one that already succeeded is reported as processed.
func (l *RepositoryLedger) Record(ctx context.Context, d Delivery) (LedgerEntry, error) {
	event := &models.WebhookEvent{
		Provider:       d.Provider,
		DeliveryID:     d.ID,
		EventType:      d.EventType,
		PayloadJSON:    string(d.Payload),
		SignatureValid: d.Verified,
	}
	created, stored, err := l.repo.CreateIfNotExists(ctx, event)
	if err != nil {
		return LedgerEntry{}, err
	}
	if stored == nil {
		return LedgerEntry{}, errors.New("ledger returned no row")
	}
	return LedgerEntry{
		ID:        stored.ID,
		Processed: !created && stored.Succeeded(),
	}, nil
}

func (l *RepositoryLedger) Complete(ctx context.Context, entryID uint, processingError string) error {
	if entryID == 0 {
		return errors.New("ledger entry id is required")
	}
	return l.repo.MarkProcessed(ctx, entryID, processingError)
}
