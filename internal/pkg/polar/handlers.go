package polar

import (
	"github.com/ManuelReschke/HookFox/app/models"
	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
)

// RegisterHandlers binds every Polar event type to its reconciliation handler.
func RegisterHandlers(reg *webhook.Registry, r *Reconciler) error {
	handlers := map[string]webhook.Handler{
		EventCheckoutCreated:        webhook.Typed(r.CheckoutCreated),
		EventCheckoutUpdated:        webhook.Typed(r.CheckoutUpdated),
		EventCustomerCreated:        webhook.Typed(r.CustomerCreated),
		EventCustomerUpdated:        webhook.Typed(r.CustomerUpdated),
		EventOrderCreated:           webhook.Typed(r.OrderCreated),
		EventOrderPaid:              webhook.Typed(r.OrderPaid),
		EventOrderRefunded:          webhook.Typed(r.OrderRefunded),
		EventSubscriptionCreated:    webhook.Typed(r.SubscriptionCreated),
		EventSubscriptionUpdated:    webhook.Typed(r.SubscriptionUpdated),
		EventSubscriptionCanceled:   webhook.Typed(r.SubscriptionCanceled),
		EventSubscriptionActive:     webhook.Typed(r.SubscriptionActive),
		EventSubscriptionRevoked:    webhook.Typed(r.SubscriptionRevoked),
		EventSubscriptionUncanceled: webhook.Typed(r.SubscriptionUncanceled),
	}
	for eventType, h := range handlers {
		if err := reg.Register(eventType, h); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry with all Polar handlers registered.
func NewRegistry(r *Reconciler) *webhook.Registry {
	reg := webhook.NewRegistry(models.WebhookProviderPolar)
	if err := RegisterHandlers(reg, r); err != nil {
		panic(err)
	}
	return reg
}
