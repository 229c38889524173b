package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput signals a malformed request payload.
	ErrInvalidInput = errors.New("invalid input")
	// ErrClassificationUnavailable signals that the NLU service returned nothing usable.
	ErrClassificationUnavailable = errors.New("classification unavailable")
	// ErrLookupFailed signals a failed entity store lookup.
	ErrLookupFailed = errors.New("lookup failed")
	// ErrUnmappedAction signals an action or intent no search service handles.
	ErrUnmappedAction = errors.New("unmapped action")
	// ErrRephraseExhausted signals that every generative credential failed.
	ErrRephraseExhausted = errors.New("rephrase exhausted")
	// ErrGenerativeProvider signals a failed call to the generative model.
	ErrGenerativeProvider = errors.New("generative provider error")
	// ErrNoAPIKeys signals an empty generative credential list.
	ErrNoAPIKeys = errors.New("no generative api keys configured")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

// ExhaustedError wraps ErrRephraseExhausted with the number of credentials tried.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("%s after %d attempts", ErrRephraseExhausted.Error(), e.Attempts)
	}
	return fmt.Sprintf("%s after %d attempts: %v", ErrRephraseExhausted.Error(), e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return ErrRephraseExhausted }
