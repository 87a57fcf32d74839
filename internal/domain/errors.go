package domain

import "errors"

// Domain errors.
var (
	// ErrInvalidShortsURL is returned when the URL is missing or is not a Shorts URL.
	ErrInvalidShortsURL = errors.New("invalid YouTube Shorts URL")

	// ErrConsentRequired is returned when YouTube serves the consent interstitial.
	ErrConsentRequired = errors.New("blocked by consent page")

	// ErrSequenceNotFound is returned when the page has no embedded sequence variable.
	ErrSequenceNotFound = errors.New("could not find Shorts sequence data in HTML")

	// ErrAPIKeyNotFound is returned when the page has no INNERTUBE_API_KEY.
	ErrAPIKeyNotFound = errors.New("innertube API key not found")

	// ErrContinuationNotFound is returned when the page has no sequenceParams token.
	ErrContinuationNotFound = errors.New("sequenceParams not found")

	// ErrInnerTubeFailed is returned when the reel watch sequence call fails.
	ErrInnerTubeFailed = errors.New("innertube request failed")

	// ErrMalformedJSON is returned when decoded data is not valid JSON.
	ErrMalformedJSON = errors.New("malformed sequence JSON")

	// ErrFetchFailed is returned when the page fetch itself fails.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrUnknownStrategy is returned for an unregistered extraction strategy.
	ErrUnknownStrategy = errors.New("unknown extraction strategy")
)

// ExtractionError wraps an error with extraction context.
type ExtractionError struct {
	Strategy string
	Op       string
	Err      error

	// DebugKeys reports which required page values were found.
	DebugKeys map[string]bool
}

func (e *ExtractionError) Error() string {
	if e.Strategy != "" {
		return e.Op + " [" + e.Strategy + "]: " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(strategy, op string, err error) *ExtractionError {
	return &ExtractionError{
		Strategy: strategy,
		Op:       op,
		Err:      err,
	}
}
