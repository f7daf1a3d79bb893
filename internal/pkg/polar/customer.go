package polar

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/HookFox/app/models"
	"github.com/ManuelReschke/HookFox/app/repository"
	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
)

// CustomerCreated stores the customer. The profile link is only written when
// the customer carries a user_id; without one the event still succeeds.
func (r *Reconciler) CustomerCreated(ctx context.Context, env webhook.Envelope, c *Customer) (webhook.Result, error) {
	userID := userIDFrom(c.Metadata)

	if userID == "" {
		// keep a linkage written by an earlier checkout
		if _, err := r.Customers.GetByID(ctx, c.ID); err == nil {
			log.Infof("[Polar] Customer %s created without user_id, already known", c.ID)
			return webhook.Success("Customer created without user_id"), nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			return webhook.Result{}, storeFailure("load customer", "Customer", c.ID, err)
		}
	}

	customer := &models.Customer{ID: c.ID, UserID: userID, Email: c.Email}
	if err := customer.SetMetadata(c.Metadata); err != nil {
		return webhook.Result{}, webhook.DecodeError("Invalid customer metadata", err)
	}
	if err := r.Customers.Upsert(ctx, customer); err != nil {
		return webhook.Result{}, storeFailure("store customer", "Customer", c.ID, err)
	}

	if userID == "" {
		log.Infof("[Polar] Customer %s created without user_id, skipping profile update", c.ID)
		return webhook.Success("Customer created without user_id"), nil
	}

	if err := r.linkProfile(ctx, userID, c.ID); err != nil {
		return webhook.Result{}, err
	}
	log.Infof("[Polar] Customer %s linked to user %s", c.ID, userID)
	return webhook.Success("Customer created and profile updated"), nil
}

// CustomerUpdated refreshes email and metadata of a known customer.
func (r *Reconciler) CustomerUpdated(ctx context.Context, env webhook.Envelope, c *Customer) (webhook.Result, error) {
	customer := &models.Customer{}
	if err := customer.SetMetadata(c.Metadata); err != nil {
		return webhook.Result{}, webhook.DecodeError("Invalid customer metadata", err)
	}

	updates := map[string]any{
		"email":         c.Email,
		"metadata_json": customer.MetadataJSON,
	}
	if userID := userIDFrom(c.Metadata); userID != "" {
		updates["user_id"] = userID
	}

	if err := r.Customers.UpdateByID(ctx, c.ID, updates); err != nil {
		log.Errorf("[Polar] Failed to update customer %s: %v", c.ID, err)
		return webhook.Result{}, storeFailure("update customer", "Customer", c.ID, err)
	}
	log.Infof("[Polar] Customer updated: %s", c.ID)
	return webhook.Success("Customer updated successfully"), nil
}
