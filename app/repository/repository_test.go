package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/HookFox/app/models"
	"github.com/ManuelReschke/HookFox/internal/pkg/database"
)

func newTestRepositories(t *testing.T) *Repositories {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return NewFactory(db).GetRepositories()
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(errors.New("Error 1062: Duplicate entry 'x' for key 'PRIMARY'")), ErrDuplicate)
	assert.ErrorIs(t, translateError(errors.New("UNIQUE constraint failed: orders.id")), ErrDuplicate)

	other := errors.New("connection refused")
	assert.Equal(t, other, translateError(other))
}

func TestOrderRepository(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	order := &models.Order{ID: "ord_1", UserID: "u1", Status: models.OrderStatusPaid, Amount: 1000, Currency: "usd"}
	require.NoError(t, repos.Order.Create(ctx, order))
	assert.ErrorIs(t, repos.Order.Create(ctx, &models.Order{ID: "ord_1", UserID: "u2", Amount: 1}), ErrDuplicate)

	require.NoError(t, repos.Order.UpdateByID(ctx, "ord_1", map[string]any{"status": models.OrderStatusRefunded, "refunded_amount": int64(1000)}))
	stored, err := repos.Order.GetByID(ctx, "ord_1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusRefunded, stored.Status)
	assert.Equal(t, "u1", stored.UserID)

	assert.ErrorIs(t, repos.Order.UpdateByID(ctx, "ord_404", map[string]any{"status": "paid"}), ErrNotFound)
	_, err = repos.Order.GetByID(ctx, "ord_404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerRepository_Upsert(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.Customer.Upsert(ctx, &models.Customer{ID: "cus_1", UserID: "u1", Email: "a@example.com"}))
	require.NoError(t, repos.Customer.Upsert(ctx, &models.Customer{ID: "cus_1", UserID: "u2", Email: "b@example.com"}))

	stored, err := repos.Customer.GetByID(ctx, "cus_1")
	require.NoError(t, err)
	assert.Equal(t, "u2", stored.UserID)
	assert.Equal(t, "b@example.com", stored.Email)
}

func TestSubscriptionRepository(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	sub := &models.Subscription{ID: "sub_1", UserID: "u1", Status: models.SubscriptionStatusActive}
	require.NoError(t, repos.Subscription.Create(ctx, sub))
	require.NoError(t, repos.Subscription.UpdateByID(ctx, "sub_1", map[string]any{"cancel_at_period_end": models.BoolToFlag(true)}))

	stored, err := repos.Subscription.GetByID(ctx, "sub_1")
	require.NoError(t, err)
	assert.True(t, stored.WillCancel())
	assert.Equal(t, models.SubscriptionStatusActive, stored.Status)
}

func TestProfileRepository(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	require.NoError(t, repos.Profile.Create(ctx, &models.UserProfile{UserID: "u1", Email: "u1@example.com"}))
	require.NoError(t, repos.Profile.UpdateByUserID(ctx, "u1", map[string]any{"polar_customer_id": "cus_1"}))

	profile, err := repos.Profile.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, profile.PolarCustomerID)
	assert.Equal(t, "cus_1", *profile.PolarCustomerID)

	assert.ErrorIs(t, repos.Profile.UpdateByUserID(ctx, "u404", map[string]any{"polar_customer_id": "cus_2"}), ErrNotFound)
}

func TestWebhookEventRepository(t *testing.T) {
	repos := newTestRepositories(t)
	ctx := context.Background()

	event := &models.WebhookEvent{Provider: models.WebhookProviderPolar, DeliveryID: "msg_1", EventType: "order.paid", PayloadJSON: "{}", SignatureValid: true}
	created, stored, err := repos.WebhookEvent.CreateIfNotExists(ctx, event)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotZero(t, stored.ID)

	again := &models.WebhookEvent{Provider: models.WebhookProviderPolar, DeliveryID: "msg_1", EventType: "order.paid", PayloadJSON: "{}", SignatureValid: true}
	created, dup, err := repos.WebhookEvent.CreateIfNotExists(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, stored.ID, dup.ID)

	// same delivery id from another provider is a separate row
	other := &models.WebhookEvent{Provider: models.WebhookProviderOneSignal, DeliveryID: "msg_1", EventType: "notification.clicked", PayloadJSON: "{}"}
	created, _, err = repos.WebhookEvent.CreateIfNotExists(ctx, other)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, repos.WebhookEvent.MarkProcessed(ctx, stored.ID, "Failed to create order ord_1"))
	failed, err := repos.WebhookEvent.ListFailed(ctx, models.WebhookProviderPolar, 10)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "msg_1", failed[0].DeliveryID)

	require.NoError(t, repos.WebhookEvent.MarkProcessed(ctx, stored.ID, ""))
	reloaded, err := repos.WebhookEvent.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Succeeded())

	failed, err = repos.WebhookEvent.ListFailed(ctx, "", 10)
	require.NoError(t, err)
	assert.Empty(t, failed)
}
