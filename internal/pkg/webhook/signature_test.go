package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test"

func referenceSignature(id, timestamp string, body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id + "." + timestamp + "." + string(body)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func flipBit(s string, i int) string {
	b := []byte(s)
	b[i] ^= 0x01
	return string(b)
}

func TestVerifyStandardSignature(t *testing.T) {
	body := []byte(`{"type":"order.paid","data":{"id":"ord_1"}}`)
	headers := StandardHeaders{
		ID:        "msg_2Lk",
		Timestamp: "1700000000",
		Signature: "v1," + referenceSignature("msg_2Lk", "1700000000", body, testSecret),
	}

	assert.True(t, VerifyStandardSignature(body, headers, testSecret))
	assert.Equal(t, referenceSignature(headers.ID, headers.Timestamp, body, testSecret), SignStandard(body, headers.ID, headers.Timestamp, testSecret))

	t.Run("body bit flip", func(t *testing.T) {
		for i := range body {
			mutated := []byte(flipBit(string(body), i))
			require.False(t, VerifyStandardSignature(mutated, headers, testSecret), "byte %d", i)
		}
	})

	t.Run("timestamp bit flip", func(t *testing.T) {
		h := headers
		h.Timestamp = flipBit(headers.Timestamp, 3)
		assert.False(t, VerifyStandardSignature(body, h, testSecret))
	})

	t.Run("signature bit flip", func(t *testing.T) {
		h := headers
		h.Signature = flipBit(headers.Signature, 5)
		assert.False(t, VerifyStandardSignature(body, h, testSecret))
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert.False(t, VerifyStandardSignature(body, headers, "other"))
	})

	t.Run("empty secret", func(t *testing.T) {
		assert.False(t, VerifyStandardSignature(body, headers, ""))
	})
}

func TestVerifyStandardSignature_AnyV1EntryMatches(t *testing.T) {
	body := []byte(`{"type":"checkout.created","data":{}}`)
	correct := referenceSignature("msg_1", "1700000000", body, testSecret)

	headers := StandardHeaders{ID: "msg_1", Timestamp: "1700000000", Signature: "v1,aaaa v1," + correct}
	assert.True(t, VerifyStandardSignature(body, headers, testSecret))

	// only v1 entries count
	headers.Signature = "v2," + correct + " v1,aaaa"
	assert.False(t, VerifyStandardSignature(body, headers, testSecret))
}

func TestVerifyStandardSignature_MissingHeaders(t *testing.T) {
	body := []byte(`{}`)
	sig := "v1," + referenceSignature("msg_1", "1700000000", body, testSecret)

	cases := map[string]StandardHeaders{
		"missing id":        {Timestamp: "1700000000", Signature: sig},
		"missing timestamp": {ID: "msg_1", Signature: sig},
		"missing signature": {ID: "msg_1", Timestamp: "1700000000"},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			assert.False(t, VerifyStandardSignature(body, h, testSecret))
		})
	}
}

func TestVerifyStandardSignature_EmptyBody(t *testing.T) {
	sig := "v1," + referenceSignature("msg_1", "1", nil, testSecret)
	assert.True(t, VerifyStandardSignature([]byte{}, StandardHeaders{ID: "msg_1", Timestamp: "1", Signature: sig}, testSecret))
}

func TestVerifyHexSignature(t *testing.T) {
	body := []byte(`{"event":"notification.clicked"}`)
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, VerifyHexSignature(body, valid, testSecret))
	assert.True(t, VerifyHexSignature(body, strings.ToUpper(valid), testSecret))
	assert.Equal(t, valid, SignHex(body, testSecret))
	assert.False(t, VerifyHexSignature(body, "deadbeef", testSecret))
	assert.False(t, VerifyHexSignature(body, "not-hex", testSecret))
	assert.False(t, VerifyHexSignature(body, "", testSecret))
	assert.False(t, VerifyHexSignature(body, valid, ""))
	assert.False(t, VerifyHexSignature([]byte(`{"event":"notification.clicke"}`), valid, testSecret))
}

func signedHeaders(body []byte, id, timestamp, secret string) http.Header {
	h := http.Header{}
	h.Set(HeaderWebhookID, id)
	h.Set(HeaderWebhookTimestamp, timestamp)
	h.Set(HeaderWebhookSignature, "v1,"+SignStandard(body, id, timestamp, secret))
	return h
}

func TestStandardVerifier(t *testing.T) {
	body := []byte(`{"type":"order.paid","data":{}}`)

	t.Run("valid", func(t *testing.T) {
		v := NewStandardVerifier(testSecret, 0)
		assert.NoError(t, v.Verify(body, signedHeaders(body, "msg_1", "1700000000", testSecret)))
	})

	t.Run("missing secret is a configuration error", func(t *testing.T) {
		v := NewStandardVerifier("", 0)
		err := v.Verify(body, signedHeaders(body, "msg_1", "1700000000", testSecret))
		assert.True(t, errors.Is(err, ErrConfiguration))
	})

	t.Run("missing header", func(t *testing.T) {
		v := NewStandardVerifier(testSecret, 0)
		h := signedHeaders(body, "msg_1", "1700000000", testSecret)
		h.Del(HeaderWebhookTimestamp)
		err := v.Verify(body, h)
		assert.True(t, errors.Is(err, ErrAuthentication))
		assert.Equal(t, "Missing webhook headers", Message(err))
	})

	t.Run("invalid signature", func(t *testing.T) {
		v := NewStandardVerifier(testSecret, 0)
		err := v.Verify(body, signedHeaders(body, "msg_1", "1700000000", "other"))
		assert.True(t, errors.Is(err, ErrAuthentication))
	})

	t.Run("tolerance", func(t *testing.T) {
		now := time.Unix(1700000000, 0)
		v := &StandardVerifier{Secret: testSecret, Tolerance: 5 * time.Minute, Now: func() time.Time { return now }}

		assert.NoError(t, v.Verify(body, signedHeaders(body, "msg_1", "1700000100", testSecret)))

		err := v.Verify(body, signedHeaders(body, "msg_1", "1699990000", testSecret))
		assert.True(t, errors.Is(err, ErrAuthentication))
		assert.Equal(t, "Webhook timestamp outside tolerance", Message(err))

		err = v.Verify(body, signedHeaders(body, "msg_1", "soon", testSecret))
		assert.True(t, errors.Is(err, ErrAuthentication))
	})
}

func TestHexVerifier(t *testing.T) {
	body := []byte(`{"event":"notification.displayed"}`)
	v := NewHexVerifier(testSecret, HeaderOneSignalSignature)

	h := http.Header{}
	err := v.Verify(body, h)
	assert.True(t, errors.Is(err, ErrAuthentication))
	assert.Equal(t, "Missing signature", Message(err))

	h.Set(HeaderOneSignalSignature, SignHex(body, testSecret))
	assert.NoError(t, v.Verify(body, h))

	err = NewHexVerifier("", HeaderOneSignalSignature).Verify(body, h)
	assert.True(t, errors.Is(err, ErrConfiguration))
}
