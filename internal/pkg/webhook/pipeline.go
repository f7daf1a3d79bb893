package webhook

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Outcomes recorded per delivery.
const (
	OutcomeProcessed = "processed"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
)

// Delivery is one verified request as seen by the side channels.
type Delivery struct {
	Provider   string
	ID         string
	EventType  string
	Payload    []byte
	Verified   bool
	ReceivedAt time.Time
}

// DeliveryID returns the webhook-id header or a content hash of the body.
func DeliveryID(headers Headers, rawBody []byte) string {
	if headers != nil {
		if id := strings.TrimSpace(headers.Get(HeaderWebhookID)); id != "" {
			return id
		}
	}
	sum := sha256.Sum256(rawBody)
	return "hash:" + hex.EncodeToString(sum[:])
}

// LedgerEntry is the stored record of a delivery. Processed is set when an
// earlier delivery with the same id already succeeded.
type LedgerEntry struct {
	ID        uint
	Processed bool
}

type Ledger interface {
	Record(ctx context.Context, d Delivery) (LedgerEntry, error)
	Complete(ctx context.Context, entryID uint, processingError string) error
}

type Archiver interface {
	Archive(ctx context.Context, d Delivery) error
}

type Recorder interface {
	Record(ctx context.Context, provider, eventType, outcome string) error
}

// Response is what the transport writes back.
type Response struct {
	Status int
	Result Result
}

// Pipeline runs verify, archive, decode, ledger, dispatch for one provider.
// Only Registry is required. A nil Verifier disables signature checks.
type Pipeline struct {
	Registry *Registry
	Decode   Decoder
	Verifier Verifier
	Ledger   Ledger
	Archive  Archiver
	Metrics  Recorder
	Policy   StatusPolicy
}

func (p *Pipeline) provider() string {
	return p.Registry.Provider()
}

// Process handles one raw request body. rawBody must be the exact bytes received.
func (p *Pipeline) Process(ctx context.Context, rawBody []byte, headers Headers) Response {
	provider := p.provider()

	verified := false
	if p.Verifier == nil {
		log.Warnf("[Webhook] %s: signature verification disabled", provider)
	} else {
		if err := p.Verifier.Verify(rawBody, headers); err != nil {
			if errors.Is(err, ErrConfiguration) {
				log.Errorf("[Webhook] %s: %v", provider, err)
			} else {
				log.Warnf("[Webhook] %s: rejected delivery: %v", provider, err)
			}
			p.count(ctx, "", OutcomeRejected)
			return p.respond(Failure(Message(err)), err)
		}
		verified = true
	}

	delivery := Delivery{
		Provider:   provider,
		ID:         DeliveryID(headers, rawBody),
		Payload:    rawBody,
		Verified:   verified,
		ReceivedAt: time.Now().UTC(),
	}
	if p.Archive != nil {
		if err := p.Archive.Archive(ctx, delivery); err != nil {
			log.Warnf("[Webhook] %s: archive of %s failed: %v", provider, delivery.ID, err)
		}
	}

	env, err := p.decode(rawBody)
	if err != nil {
		log.Warnf("[Webhook] %s: %v", provider, err)
		p.count(ctx, "", OutcomeInvalid)
		return p.respond(Failure(Message(err)), err)
	}
	delivery.EventType = env.Type

	var entry *LedgerEntry
	if p.Ledger != nil {
		e, lerr := p.Ledger.Record(ctx, delivery)
		if lerr != nil {
			log.Warnf("[Webhook] %s: ledger record of %s failed: %v", provider, delivery.ID, lerr)
		} else {
			if e.Processed {
				log.Infof("[Webhook] %s: delivery %s (%s) already processed", provider, delivery.ID, env.Type)
				p.count(ctx, env.Type, OutcomeDuplicate)
				return p.respond(Success("Event already processed"), nil)
			}
			entry = &e
		}
	}

	return p.dispatch(ctx, env, entry)
}

// Redeliver dispatches a stored payload again. Verification and the ledger
// insert are skipped since both happened when the delivery was received.
func (p *Pipeline) Redeliver(ctx context.Context, entryID uint, rawBody []byte) Response {
	env, err := p.decode(rawBody)
	if err != nil {
		if p.Ledger != nil && entryID != 0 {
			_ = p.Ledger.Complete(ctx, entryID, err.Error())
		}
		return p.respond(Failure(Message(err)), err)
	}

	var entry *LedgerEntry
	if entryID != 0 {
		entry = &LedgerEntry{ID: entryID}
	}
	return p.dispatch(ctx, env, entry)
}

func (p *Pipeline) dispatch(ctx context.Context, env Envelope, entry *LedgerEntry) Response {
	res, err := p.Registry.Dispatch(ctx, env)

	if entry != nil && p.Ledger != nil {
		processingError := ""
		if err != nil {
			processingError = err.Error()
		} else if !res.Success {
			processingError = res.Message
		}
		if cerr := p.Ledger.Complete(ctx, entry.ID, processingError); cerr != nil {
			log.Warnf("[Webhook] %s: ledger update of entry %d failed: %v", p.provider(), entry.ID, cerr)
		}
	}

	outcome := OutcomeProcessed
	if err != nil || !res.Success {
		outcome = OutcomeFailed
	}
	p.count(ctx, env.Type, outcome)

	return p.respond(res, err)
}

func (p *Pipeline) decode(rawBody []byte) (Envelope, error) {
	if p.Decode != nil {
		return p.Decode(rawBody)
	}
	return DecodeEnvelope(rawBody)
}

func (p *Pipeline) respond(res Result, err error) Response {
	status := p.Policy.HTTPStatus(res, err)
	if status == fiber.StatusOK && err != nil {
		log.Infof("[Webhook] %s: acknowledged handled failure: %s", p.provider(), res.Message)
	}
	return Response{Status: status, Result: res}
}

func (p *Pipeline) count(ctx context.Context, eventType, outcome string) {
	if p.Metrics == nil {
		return
	}
	if eventType == "" {
		eventType = "unknown"
	}
	if err := p.Metrics.Record(ctx, p.provider(), eventType, outcome); err != nil {
		log.Debugf("[Webhook] %s: metrics update failed: %v", p.provider(), err)
	}
}
