package polar

import (
	"errors"
	"fmt"

	"github.com/ManuelReschke/HookFox/app/repository"
	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
)

// Reconciler applies Polar events to the store. Every handler is a single
// idempotent write keyed by the provider's id.
type Reconciler struct {
	Customers     repository.CustomerRepository
	Orders        repository.OrderRepository
	Subscriptions repository.SubscriptionRepository
	Profiles      repository.ProfileRepository
}

func NewReconciler(repos *repository.Repositories) *Reconciler {
	return &Reconciler{
		Customers:     repos.Customer,
		Orders:        repos.Order,
		Subscriptions: repos.Subscription,
		Profiles:      repos.Profile,
	}
}

// storeFailure classifies a repository error for the given entity.
func storeFailure(action, entity, id string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return webhook.NotFoundError(fmt.Sprintf("%s %s not found", entity, id), err)
	case errors.Is(err, repository.ErrDuplicate):
		return webhook.DuplicateError(fmt.Sprintf("%s %s already exists", entity, id), err)
	default:
		return webhook.StoreError(fmt.Sprintf("Failed to %s %s", action, id), err)
	}
}
