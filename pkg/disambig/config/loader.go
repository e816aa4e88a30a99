package config

import (
	"fmt"

	"github.com/cognicore/disambig/internal/internalerr"
	"github.com/cognicore/disambig/pkg/disambig/confusable"
	"github.com/cognicore/disambig/pkg/disambig/normalize"
	"github.com/cognicore/disambig/pkg/disambig/score"
)

// NamedSet is a validated confusable set with its configured name.
type NamedSet struct {
	Name string
	Set  confusable.Set
}

// Variant is one order/smoothing combination to train and evaluate.
type Variant struct {
	Order     normalize.Order
	Smoothing score.Smoothing
}

// ConfusableSets validates and builds every configured set.
func (c *Config) ConfusableSets() ([]NamedSet, error) {
	out := make([]NamedSet, 0, len(c.Sets))
	names := make(map[string]bool, len(c.Sets))
	for i, sc := range c.Sets {
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("set-%d", i+1)
		}
		if names[name] {
			return nil, fmt.Errorf("duplicate set name %q: %w", name, internalerr.ErrInvalidConfig)
		}
		names[name] = true

		set, err := confusable.New(sc.Words...)
		if err != nil {
			return nil, fmt.Errorf("set %q: %w", name, err)
		}
		out = append(out, NamedSet{Name: name, Set: set})
	}
	return out, nil
}

// Variants expands orders × smoothing. A unigram order is only paired with
// no smoothing, since smoothing cannot change its ranking.
func (c *Config) Variants() ([]Variant, error) {
	if len(c.Orders) == 0 {
		return nil, fmt.Errorf("no orders configured: %w", internalerr.ErrInvalidConfig)
	}
	smoothing := c.Smoothing
	if len(smoothing) == 0 {
		smoothing = []string{"none"}
	}

	var out []Variant
	seen := make(map[Variant]bool)
	for _, on := range c.Orders {
		o, err := normalize.ParseOrder(on)
		if err != nil {
			return nil, err
		}
		for _, ss := range smoothing {
			s, err := score.ParseSmoothing(ss)
			if err != nil {
				return nil, err
			}
			if o == normalize.Unigram {
				s = score.None
			}
			v := Variant{Order: o, Smoothing: s}
			if seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}
