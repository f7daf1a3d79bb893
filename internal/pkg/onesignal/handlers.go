package onesignal

import (
	"context"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/HookFox/app/models"
	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
)

func handleDisplayed(ctx context.Context, env webhook.Envelope, n *Notification) (webhook.Result, error) {
	log.Infof("[OneSignal] Notification displayed: notification_id=%s player_id=%s external_user_id=%s heading=%q at=%s",
		n.NotificationID, n.PlayerID, n.ExternalUserID, n.Heading, n.Time().Format("2006-01-02T15:04:05Z"))
	return processed(env), nil
}

func handleClicked(ctx context.Context, env webhook.Envelope, n *Notification) (webhook.Result, error) {
	log.Infof("[OneSignal] Notification clicked: notification_id=%s player_id=%s external_user_id=%s heading=%q url=%s at=%s",
		n.NotificationID, n.PlayerID, n.ExternalUserID, n.Heading, n.URL, n.Time().Format("2006-01-02T15:04:05Z"))
	return processed(env), nil
}

func handleDismissed(ctx context.Context, env webhook.Envelope, n *Notification) (webhook.Result, error) {
	log.Infof("[OneSignal] Notification dismissed: notification_id=%s player_id=%s external_user_id=%s at=%s",
		n.NotificationID, n.PlayerID, n.ExternalUserID, n.Time().Format("2006-01-02T15:04:05Z"))
	return processed(env), nil
}

func processed(env webhook.Envelope) webhook.Result {
	return webhook.Success("Processed " + env.Type)
}

// RegisterHandlers binds the notification events. They are logged only.
func RegisterHandlers(reg *webhook.Registry) error {
	if err := reg.Register(EventNotificationDisplayed, webhook.Typed(handleDisplayed)); err != nil {
		return err
	}
	if err := reg.Register(EventNotificationClicked, webhook.Typed(handleClicked)); err != nil {
		return err
	}
	return reg.Register(EventNotificationDismissed, webhook.Typed(handleDismissed))
}

func NewRegistry() *webhook.Registry {
	reg := webhook.NewRegistry(models.WebhookProviderOneSignal)
	if err := RegisterHandlers(reg); err != nil {
		panic(err)
	}
	return reg
}
