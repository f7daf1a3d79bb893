package webhook

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

const unknownPayloadLogLimit = 512

// Handler reconciles one event type.
type Handler interface {
	Handle(ctx context.Context, env Envelope) (Result, error)
}

type HandlerFunc func(ctx context.Context, env Envelope) (Result, error)

func (f HandlerFunc) Handle(ctx context.Context, env Envelope) (Result, error) {
	return f(ctx, env)
}

// Registry maps event type tags to handlers for one provider.
type Registry struct {
	provider string

	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry(provider string) *Registry {
	return &Registry{
		provider: provider,
		handlers: make(map[string]Handler),
	}
}

func (r *Registry) Provider() string {
	return r.provider
}

func (r *Registry) Register(eventType string, h Handler) error {
	if eventType == "" {
		return fmt.Errorf("%s: event type is required", r.provider)
	}
	if h == nil {
		return fmt.Errorf("%s: handler for %q is nil", r.provider, eventType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[eventType]; exists {
		return fmt.Errorf("%s: handler for %q already registered", r.provider, eventType)
	}
	r.handlers[eventType] = h
	return nil
}

func (r *Registry) MustRegister(eventType string, h Handler) {
	if err := r.Register(eventType, h); err != nil {
		panic(err)
	}
}

// Types returns the registered event types, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func (r *Registry) lookup(eventType string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[eventType]
	return h, ok
}

// Dispatch runs the handler registered for env.Type. Unknown types succeed.
// A handler error comes back both as a failed Result and as the classified
// error; panics are recovered as store failures.
func (r *Registry) Dispatch(ctx context.Context, env Envelope) (res Result, err error) {
	h, ok := r.lookup(env.Type)
	if !ok {
		log.Infof("[Webhook] %s: unhandled event %s payload=%s", r.provider, env.Type, truncate(env.Data, unknownPayloadLogLimit))
		return Success("Unhandled event: " + env.Type), nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("[Webhook] %s: handler for %s panicked: %v", r.provider, env.Type, rec)
			err = StoreError("Internal error while processing "+env.Type, fmt.Errorf("panic: %v", rec))
			res = Failure(Message(err))
		}
	}()

	res, err = h.Handle(ctx, env)
	if err != nil {
		var werr *Error
		if !errors.As(err, &werr) && KindOf(err) == ErrStore {
			err = StoreError("Failed to process "+env.Type, err)
		}
		log.Warnf("[Webhook] %s: %s failed: %v", r.provider, env.Type, err)
		return Failure(Message(err)), err
	}
	return res, nil
}
