// Package extract recovers the Shorts autoplay queue from a fetched watch page.
package extract

import (
	"context"
	"fmt"
	"sort"

	"github.com/iconidentify/shortsnext/internal/config"
	"github.com/iconidentify/shortsnext/internal/domain"
)

// Strategy names an extraction approach.
type Strategy string

const (
	StrategySequence Strategy = config.StrategySequence
	StrategyScan     Strategy = config.StrategyScan
	StrategyRPC      Strategy = config.StrategyRPC
)

// Page is the request-scoped input to an extractor.
type Page struct {
	URL            string
	CurrentVideoID domain.VideoID
	HTML           string
}

// Extractor turns a watch page into a list of next videos.
type Extractor interface {
	Strategy() Strategy
	Extract(ctx context.Context, page *Page) (*domain.NextResult, error)
}

// Registry maps strategy names to extractors.
type Registry struct {
	extractors map[Strategy]Extractor
}

// NewRegistry creates a registry holding the given extractors.
func NewRegistry(extractors ...Extractor) *Registry {
	r := &Registry{extractors: make(map[Strategy]Extractor, len(extractors))}
	for _, e := range extractors {
		r.extractors[e.Strategy()] = e
	}
	return r
}

// Get returns the extractor registered for s.
func (r *Registry) Get(s Strategy) (Extractor, error) {
	e, ok := r.extractors[s]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, s)
	}
	return e, nil
}

// Strategies lists registered strategy names in sorted order.
func (r *Registry) Strategies() []Strategy {
	names := make([]Strategy, 0, len(r.extractors))
	for s := range r.extractors {
		names = append(names, s)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
