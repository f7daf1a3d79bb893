package webhook

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusPolicy_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		err  error
		ack  bool
		dup  bool
		want int
	}{
		{name: "success", res: Success("ok"), want: http.StatusOK},
		{name: "failed result", res: Failure("nope"), want: http.StatusInternalServerError},
		{name: "configuration", err: ConfigurationError("x"), want: http.StatusInternalServerError},
		{name: "authentication", err: AuthenticationError("x"), want: http.StatusUnauthorized},
		{name: "decode", err: DecodeError("x", nil), want: http.StatusBadRequest},
		{name: "correlation", err: CorrelationError("x"), want: http.StatusInternalServerError},
		{name: "correlation acknowledged", err: CorrelationError("x"), ack: true, want: http.StatusOK},
		{name: "not found", err: NotFoundError("x", nil), want: http.StatusInternalServerError},
		{name: "duplicate", err: DuplicateError("x", nil), want: http.StatusInternalServerError},
		{name: "duplicate acknowledged", err: DuplicateError("x", nil), dup: true, want: http.StatusOK},
		{name: "store", err: StoreError("x", errors.New("db")), want: http.StatusInternalServerError},
		{name: "unclassified", err: errors.New("?"), want: http.StatusInternalServerError},
		{name: "wrapped sentinel", err: fmt.Errorf("ctx: %w", ErrDecode), want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := StatusPolicy{AckCorrelationFailures: tt.ack, AckDuplicates: tt.dup}
			assert.Equal(t, tt.want, p.HTTPStatus(tt.res, tt.err))
		})
	}
}

func TestKindOf_OutermostWins(t *testing.T) {
	inner := NotFoundError("Order not found", nil)
	outer := StoreError("Failed to process order.refunded", inner)

	assert.Equal(t, ErrStore, KindOf(outer))
	assert.True(t, errors.Is(outer, ErrNotFound))
	assert.Nil(t, KindOf(nil))
	assert.Equal(t, "Failed to process order.refunded: Order not found", outer.Error())
	assert.Equal(t, "Failed to process order.refunded", Message(outer))
}
