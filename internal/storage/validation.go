package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/subkitapp/subkit/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidLink  = errors.New("invalid growth link weight")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateItem validates a recurring item before persistence.
func validateItem(item *model.RecurringItem) error {
	if item == nil {
		return fmt.Errorf("%w: item", ErrNilParameter)
	}
	return item.Validate()
}

// validateLinkWeight rejects weights outside the known enum.
func validateLinkWeight(weight model.LinkWeight) error {
	if weight != model.WeightPrimary && weight != model.WeightSecondary {
		return fmt.Errorf("%w: %q", ErrInvalidLink, weight)
	}
	return nil
}
