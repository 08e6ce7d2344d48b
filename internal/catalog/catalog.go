// Package catalog serves the list of popular drinks offered for quick logging.
// Drinks come from the first provider in a chain that answers: the remote
// backend, then the local cache, then the list built into the binary.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/vbonduro/drinklog/internal/domain"
	"github.com/vbonduro/drinklog/internal/metrics"
)

var (
	// ErrEmpty is returned by a provider that answered with no drinks.
	ErrEmpty = errors.New("catalog: provider returned no drinks")
	// ErrUnavailable is returned when no provider in the chain answered.
	ErrUnavailable = errors.New("catalog: no provider available")
	// ErrSuperseded is returned by a refresh that a newer one replaced.
	ErrSuperseded = errors.New("catalog: refresh superseded")
)

// Provider is a source of catalog drinks.
type Provider interface {
	Name() string
	Drinks(ctx context.Context) ([]domain.CatalogDrink, error)
}

// Failure records one provider that did not answer.
type Failure struct {
	Provider string
	Err      error
}

// Result is the outcome of walking a Chain.
type Result struct {
	Drinks []domain.CatalogDrink
	Source string
	Trail  []Failure
}

// Chain tries providers in order until one returns a non-empty list.
type Chain []Provider

func (c Chain) Fetch(ctx context.Context) (Result, error) {
	var res Result
	for _, p := range c {
		if p == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		drinks, err := p.Drinks(ctx)
		if err == nil && len(drinks) == 0 {
			err = ErrEmpty
		}
		metrics.RecordCatalogFetch(p.Name(), err)
		if err != nil {
			res.Trail = append(res.Trail, Failure{Provider: p.Name(), Err: err})
			continue
		}

		res.Drinks = drinks
		res.Source = p.Name()
		return res, nil
	}

	errs := make([]error, 0, len(res.Trail))
	for _, f := range res.Trail {
		errs = append(errs, fmt.Errorf("%s: %w", f.Provider, f.Err))
	}
	return res, fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}
