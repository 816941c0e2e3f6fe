package diffpattern

import (
	"errors"
	"fmt"
)

// Errors returned at the configuration and input boundaries.
var (
	ErrInvalidThreshold = errors.New("similarity threshold must be between 0.0 and 1.0")
	ErrNoChanges        = errors.New("no changes found")
	ErrNoInput          = errors.New("no input: specify --commit, --commit-range or --diff-file")
	ErrUnknownFormat    = errors.New("unknown output format")
)

// DefaultSimilarityThreshold is the threshold used when none is configured.
const DefaultSimilarityThreshold = 0.7

// Config holds the engine settings.
type Config struct {
	// SimilarityThreshold is validated and reported but exact-match
	// clustering ignores it and the structural pairer uses a fixed 0.3
	// gate, so it currently changes no result.
	SimilarityThreshold float64
	// MarkupAware enables the markup rewrite rules and structural pairing.
	MarkupAware bool
	// Verbose emits progress logging. It affects no computed result.
	Verbose bool
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{SimilarityThreshold: DefaultSimilarityThreshold}
}

// Validate rejects configurations the engine must never see.
func (c Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, c.SimilarityThreshold)
	}
	return nil
}
