package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Typed adapts a handler working on a concrete payload type. The event data
// is decoded into T and validated with its `validate` tags before fn runs;
// both failures are decode errors.
func Typed[T any](fn func(ctx context.Context, env Envelope, payload *T) (Result, error)) Handler {
	return HandlerFunc(func(ctx context.Context, env Envelope) (Result, error) {
		payload, err := DecodePayload[T](env)
		if err != nil {
			return Result{}, err
		}
		return fn(ctx, env, payload)
	})
}

func DecodePayload[T any](env Envelope) (*T, error) {
	var payload T
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, DecodeError(fmt.Sprintf("Invalid %s payload", env.Type), err)
	}

	if err := validate.Struct(&payload); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
			return nil, DecodeError(fmt.Sprintf("Invalid %s payload: missing or invalid %s", env.Type, strings.Join(fields, ", ")), err)
		}
		return nil, DecodeError(fmt.Sprintf("Invalid %s payload", env.Type), err)
	}
	return &payload, nil
}
