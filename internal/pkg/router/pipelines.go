package router

import (
	"sort"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/HookFox/app/models"
	"github.com/ManuelReschke/HookFox/internal/pkg/config"
	"github.com/ManuelReschke/HookFox/internal/pkg/onesignal"
	"github.com/ManuelReschke/HookFox/internal/pkg/polar"
	"github.com/ManuelReschke/HookFox/internal/pkg/webhook"
)

// signatureHeaders are added to the CORS allow list per provider.
var signatureHeaders = map[string][]string{
	models.WebhookProviderPolar:     {webhook.HeaderWebhookID, webhook.HeaderWebhookTimestamp, webhook.HeaderWebhookSignature},
	models.WebhookProviderOneSignal: {webhook.HeaderOneSignalSignature},
}

// NewPipelines builds one pipeline per provider from the configuration.
func NewPipelines(deps Dependencies) map[string]*webhook.Pipeline {
	cfg := deps.Config
	policy := webhook.StatusPolicy{
		AckCorrelationFailures: cfg.Webhook.AckCorrelationFailures,
		AckDuplicates:          cfg.Webhook.AckDuplicates,
	}

	polarPipeline := &webhook.Pipeline{
		Registry: polar.NewRegistry(polar.NewReconciler(deps.Repos)),
		Decode:   webhook.DecodeEnvelope,
		Verifier: verifier(models.WebhookProviderPolar, cfg.Polar, func() webhook.Verifier {
			return webhook.NewStandardVerifier(cfg.Polar.Secret, cfg.Polar.TimestampTolerance)
		}),
		Policy: policy,
	}
	oneSignalPipeline := &webhook.Pipeline{
		Registry: onesignal.NewRegistry(),
		Decode:   onesignal.Decode,
		Verifier: verifier(models.WebhookProviderOneSignal, cfg.OneSignal, func() webhook.Verifier {
			return webhook.NewHexVerifier(cfg.OneSignal.Secret, webhook.HeaderOneSignalSignature)
		}),
		Policy: policy,
	}

	pipelines := map[string]*webhook.Pipeline{
		models.WebhookProviderPolar:     polarPipeline,
		models.WebhookProviderOneSignal: oneSignalPipeline,
	}
	for _, p := range pipelines {
		if deps.Repos != nil && deps.Repos.WebhookEvent != nil {
			p.Ledger = webhook.NewRepositoryLedger(deps.Repos.WebhookEvent)
		}
		if deps.Archive != nil {
			p.Archive = deps.Archive
		}
		if c := deps.counter(); c != nil {
			p.Metrics = c
		}
	}
	return pipelines
}

// verifier returns nil when verification is switched off. A missing secret
// still yields a verifier, which then rejects every request.
func verifier(provider string, cfg config.ProviderConfig, build func() webhook.Verifier) webhook.Verifier {
	if !cfg.VerifySignatures {
		log.Warnf("[Webhook] %s: signature verification is DISABLED", provider)
		return nil
	}
	if cfg.Secret == "" {
		log.Errorf("[Webhook] %s: signature verification is enabled but no secret is configured, deliveries will fail", provider)
	}
	return build()
}

func providerNames(pipelines map[string]*webhook.Pipeline) []string {
	names := make([]string, 0, len(pipelines))
	for name := range pipelines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
