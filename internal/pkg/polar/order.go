package polar

import (
	"context"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/HookFox/app/models"
	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
)

func (r *Reconciler) OrderCreated(ctx context.Context, env webhook.Envelope, o *Order) (webhook.Result, error) {
	log.Infof("[Polar] Order created: %s", o.ID)
	return webhook.Success("Order created logged"), nil
}

// OrderPaid inserts the order. The user comes from the order metadata, then
// from the event metadata.
func (r *Reconciler) OrderPaid(ctx context.Context, env webhook.Envelope, o *Order) (webhook.Result, error) {
	userID := userIDFrom(o.Metadata)
	if userID == "" {
		userID = env.MetadataString(metadataUserID)
	}
	if userID == "" {
		log.Errorf("[Polar] Order %s: no user_id in metadata", o.ID)
		return webhook.Result{}, webhook.CorrelationError("No user_id in metadata")
	}

	currency := o.Currency
	if currency == "" {
		currency = "usd"
	}
	order := &models.Order{
		ID:             o.ID,
		UserID:         userID,
		PolarProductID: o.ProductID,
		PolarPriceID:   o.ProductPriceID,
		Status:         models.OrderStatusPaid,
		Amount:         o.Amount,
		Currency:       currency,
	}
	if err := r.Orders.Create(ctx, order); err != nil {
		log.Errorf("[Polar] Failed to create order %s: %v", o.ID, err)
		return webhook.Result{}, storeFailure("create order", "Order", o.ID, err)
	}

	log.Infof("[Polar] Order %s created for user %s", o.ID, userID)
	return webhook.Success("Order processed successfully"), nil
}

// OrderRefunded marks the order refunded, or partially refunded when the
// refunded amount is below the order amount.
func (r *Reconciler) OrderRefunded(ctx context.Context, env webhook.Envelope, o *Order) (webhook.Result, error) {
	status := refundStatus(o.Amount, o.RefundedAmount)
	updates := map[string]any{"status": status}
	if o.RefundedAmount > 0 {
		updates["refunded_amount"] = o.RefundedAmount
	}

	if err := r.Orders.UpdateByID(ctx, o.ID, updates); err != nil {
		log.Errorf("[Polar] Failed to refund order %s: %v", o.ID, err)
		return webhook.Result{}, storeFailure("refund order", "Order", o.ID, err)
	}

	log.Infof("[Polar] Order %s %s", o.ID, status)
	return webhook.Success("Order refunded successfully"), nil
}

func refundStatus(amount, refunded int64) string {
	if refunded > 0 && refunded < amount {
		return models.OrderStatusPartiallyRefunded
	}
	return models.OrderStatusRefunded
}
