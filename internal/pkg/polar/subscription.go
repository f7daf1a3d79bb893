package polar

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/HookFox/app/models"
	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
)

func (r *Reconciler) SubscriptionCreated(ctx context.Context, env webhook.Envelope, s *Subscription) (webhook.Result, error) {
	userID := userIDFrom(s.Metadata)
	if userID == "" {
		userID = env.MetadataString(metadataUserID)
	}
	if userID == "" {
		log.Errorf("[Polar] Subscription %s: no user_id in metadata", s.ID)
		return webhook.Result{}, webhook.CorrelationError("No user_id in metadata")
	}
	if err := checkStatus(s); err != nil {
		return webhook.Result{}, err
	}

	sub := &models.Subscription{
		ID:                 s.ID,
		UserID:             userID,
		PolarProductID:     s.ProductID,
		PolarPriceID:       s.PriceID,
		Status:             s.Status,
		CurrentPeriodStart: s.CurrentPeriodStart,
		CurrentPeriodEnd:   s.CurrentPeriodEnd,
		CancelAtPeriodEnd:  models.BoolToFlag(s.CancelAtPeriodEnd),
	}
	if err := r.Subscriptions.Create(ctx, sub); err != nil {
		log.Errorf("[Polar] Failed to create subscription %s: %v", s.ID, err)
		return webhook.Result{}, storeFailure("create subscription", "Subscription", s.ID, err)
	}

	log.Infof("[Polar] Subscription %s created for user %s", s.ID, userID)
	return webhook.Success("Subscription created successfully"), nil
}

func (r *Reconciler) SubscriptionUpdated(ctx context.Context, env webhook.Envelope, s *Subscription) (webhook.Result, error) {
	if err := checkStatus(s); err != nil {
		return webhook.Result{}, err
	}
	updates := withPeriods(s, map[string]any{
		"status":               s.Status,
		"cancel_at_period_end": models.BoolToFlag(s.CancelAtPeriodEnd),
	})
	return r.updateSubscription(ctx, s, updates, "updated")
}

func (r *Reconciler) SubscriptionCanceled(ctx context.Context, env webhook.Envelope, s *Subscription) (webhook.Result, error) {
	return r.updateSubscription(ctx, s, map[string]any{
		"status":               models.SubscriptionStatusCanceled,
		"cancel_at_period_end": models.BoolToFlag(true),
	}, "canceled")
}

func (r *Reconciler) SubscriptionActive(ctx context.Context, env webhook.Envelope, s *Subscription) (webhook.Result, error) {
	return r.updateSubscription(ctx, s, withPeriods(s, map[string]any{
		"status": models.SubscriptionStatusActive,
	}), "activated")
}

func (r *Reconciler) SubscriptionRevoked(ctx context.Context, env webhook.Envelope, s *Subscription) (webhook.Result, error) {
	return r.updateSubscription(ctx, s, map[string]any{
		"status": models.SubscriptionStatusCanceled,
	}, "revoked")
}

func (r *Reconciler) SubscriptionUncanceled(ctx context.Context, env webhook.Envelope, s *Subscription) (webhook.Result, error) {
	if err := checkStatus(s); err != nil {
		return webhook.Result{}, err
	}
	return r.updateSubscription(ctx, s, map[string]any{
		"status":               s.Status,
		"cancel_at_period_end": models.BoolToFlag(false),
	}, "uncanceled")
}

// updateSubscription applies a status transition. A missing row is a failure,
// transitions never create subscriptions.
func (r *Reconciler) updateSubscription(ctx context.Context, s *Subscription, updates map[string]any, verb string) (webhook.Result, error) {
	if err := r.Subscriptions.UpdateByID(ctx, s.ID, updates); err != nil {
		log.Errorf("[Polar] Failed to mark subscription %s %s: %v", s.ID, verb, err)
		return webhook.Result{}, storeFailure("update subscription", "Subscription", s.ID, err)
	}
	log.Infof("[Polar] Subscription %s %s", s.ID, verb)
	return webhook.Success("Subscription " + verb + " successfully"), nil
}

// checkStatus rejects a payload status the store cannot hold. Only handlers
// that persist the payload status call it.
func checkStatus(s *Subscription) error {
	if !models.IsValidSubscriptionStatus(s.Status) {
		return webhook.DecodeError(fmt.Sprintf("Invalid subscription status %q", s.Status), nil)
	}
	return nil
}

// withPeriods adds the billing period columns the payload carries. Absent
// periods keep their stored values.
func withPeriods(s *Subscription, updates map[string]any) map[string]any {
	if s.CurrentPeriodStart != nil {
		updates["current_period_start"] = s.CurrentPeriodStart
	}
	if s.CurrentPeriodEnd != nil {
		updates["current_period_end"] = s.CurrentPeriodEnd
	}
	return updates
}
