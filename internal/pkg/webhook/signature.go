package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	HeaderWebhookID          = "webhook-id"
	HeaderWebhookTimestamp   = "webhook-timestamp"
	HeaderWebhookSignature   = "webhook-signature"
	HeaderOneSignalSignature = "x-onesignal-signature"

	standardSignatureVersion = "v1"
)

// Headers gives read access to request headers; http.Header and the fiber
// adapter both satisfy it.
type Headers interface {
	Get(key string) string
}

// Verifier authenticates a raw request body. It returns nil, an
// ErrAuthentication or an ErrConfiguration error.
type Verifier interface {
	Verify(rawBody []byte, headers Headers) error
}

// StandardHeaders are the three Standard Webhooks headers bound into the signature.
type StandardHeaders struct {
	ID        string
	Timestamp string
	Signature string
}

func StandardHeadersFrom(h Headers) StandardHeaders {
	return StandardHeaders{
		ID:        strings.TrimSpace(h.Get(HeaderWebhookID)),
		Timestamp: strings.TrimSpace(h.Get(HeaderWebhookTimestamp)),
		Signature: strings.TrimSpace(h.Get(HeaderWebhookSignature)),
	}
}

func (h StandardHeaders) complete() bool {
	return h.ID != "" && h.Timestamp != "" && h.Signature != ""
}

// SignStandard returns the base64 HMAC-SHA256 of "{id}.{timestamp}.{body}".
func SignStandard(rawBody []byte, id, timestamp, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	mac.Write([]byte{'.'})
	mac.Write([]byte(timestamp))
	mac.Write([]byte{'.'})
	mac.Write(rawBody)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// VerifyStandardSignature checks the space separated "v1,<base64>" list of
// the signature header. Any matching entry verifies the body.
func VerifyStandardSignature(rawBody []byte, headers StandardHeaders, secret string) bool {
	if secret == "" || !headers.complete() {
		return false
	}

	expected := []byte(SignStandard(rawBody, headers.ID, headers.Timestamp, secret))
	matched := false
	for _, entry := range strings.Fields(headers.Signature) {
		version, sig, ok := strings.Cut(entry, ",")
		if !ok || version != standardSignatureVersion {
			continue
		}
		// no early return, every entry is compared
		if hmac.Equal([]byte(sig), expected) {
			matched = true
		}
	}
	return matched
}

// SignHex returns the lowercase hex HMAC-SHA256 of the body.
func SignHex(rawBody []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHexSignature compares a hex HMAC-SHA256 of the body, ignoring case.
func VerifyHexSignature(rawBody []byte, signature, secret string) bool {
	sig := strings.TrimSpace(signature)
	if sig == "" || secret == "" {
		return false
	}

	decodedSig, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	return hmac.Equal(mac.Sum(nil), decodedSig)
}

// StandardVerifier verifies Standard Webhooks signatures (Polar).
type StandardVerifier struct {
	Secret string
	// Tolerance rejects timestamps further than this from Now. Zero disables the check.
	Tolerance time.Duration
	Now       func() time.Time
}

func NewStandardVerifier(secret string, tolerance time.Duration) *StandardVerifier {
	return &StandardVerifier{Secret: secret, Tolerance: tolerance, Now: time.Now}
}

func (v *StandardVerifier) Verify(rawBody []byte, headers Headers) error {
	if v.Secret == "" {
		return ConfigurationError("Webhook secret not configured")
	}

	h := StandardHeadersFrom(headers)
	if !h.complete() {
		return AuthenticationError("Missing webhook headers")
	}
	if !VerifyStandardSignature(rawBody, h, v.Secret) {
		return AuthenticationError("Invalid webhook signature")
	}

	if v.Tolerance > 0 {
		ts, err := strconv.ParseInt(h.Timestamp, 10, 64)
		if err != nil {
			return AuthenticationError("Invalid webhook timestamp")
		}
		now := time.Now
		if v.Now != nil {
			now = v.Now
		}
		drift := now().Unix() - ts
		if math.Abs(float64(drift)) > v.Tolerance.Seconds() {
			return AuthenticationError("Webhook timestamp outside tolerance")
		}
	}
	return nil
}

// HexVerifier verifies a hex digest carried in a single header (OneSignal).
type HexVerifier struct {
	Secret string
	Header string
}

func NewHexVerifier(secret, header string) *HexVerifier {
	return &HexVerifier{Secret: secret, Header: header}
}

func (v *HexVerifier) Verify(rawBody []byte, headers Headers) error {
	if v.Secret == "" {
		return ConfigurationError("Webhook secret not configured")
	}

	sig := strings.TrimSpace(headers.Get(v.Header))
	if sig == "" {
		return AuthenticationError("Missing signature")
	}
	if !VerifyHexSignature(rawBody, sig, v.Secret) {
		return AuthenticationError("Invalid signature")
	}
	return nil
}
