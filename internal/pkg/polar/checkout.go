package polar

import (
	"context"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/HookFox/app/models"
	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
)

func (r *Reconciler) CheckoutCreated(ctx context.Context, env webhook.Envelope, c *Checkout) (webhook.Result, error) {
	log.Infof("[Polar] Checkout created: %s (%s)", c.ID, c.Status)
	return webhook.Success("Checkout created logged"), nil
}

// CheckoutUpdated links the paying customer to the user once the checkout
// succeeded. Every other status is acknowledged without a write.
func (r *Reconciler) CheckoutUpdated(ctx context.Context, env webhook.Envelope, c *Checkout) (webhook.Result, error) {
	if c.Status != CheckoutStatusSucceeded {
		log.Infof("[Polar] Checkout %s not succeeded (%s), skipping", c.ID, c.Status)
		return webhook.Success("Checkout not succeeded, skipping"), nil
	}

	userID := userIDFrom(c.Metadata)
	if userID == "" {
		log.Errorf("[Polar] Checkout %s: no user_id in metadata", c.ID)
		return webhook.Result{}, webhook.CorrelationError("No user_id in metadata")
	}
	if c.CustomerID == "" {
		log.Errorf("[Polar] Checkout %s: no customer_id", c.ID)
		return webhook.Result{}, webhook.CorrelationError("No customer_id on checkout")
	}

	customer := &models.Customer{ID: c.CustomerID, UserID: userID, Email: c.CustomerEmail}
	if err := customer.SetMetadata(c.Metadata); err != nil {
		return webhook.Result{}, webhook.DecodeError("Invalid checkout metadata", err)
	}
	if err := r.Customers.Upsert(ctx, customer); err != nil {
		return webhook.Result{}, storeFailure("store customer", "Customer", c.CustomerID, err)
	}

	if err := r.linkProfile(ctx, userID, c.CustomerID); err != nil {
		return webhook.Result{}, err
	}

	log.Infof("[Polar] Checkout %s: linked customer %s to user %s", c.ID, c.CustomerID, userID)
	return webhook.Success("Checkout processed successfully"), nil
}

func (r *Reconciler) linkProfile(ctx context.Context, userID, customerID string) error {
	err := r.Profiles.UpdateByUserID(ctx, userID, map[string]any{"polar_customer_id": customerID})
	if err != nil {
		log.Errorf("[Polar] Failed to update profile of user %s: %v", userID, err)
		return storeFailure("update profile of user", "Profile of user", userID, err)
	}
	return nil
}
