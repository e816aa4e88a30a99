package normalize

import (
	"fmt"
	"strings"

	"github.com/cognicore/disambig/internal/internalerr"
)

// Boundary markers padded around every normalized sentence.
// They contain angle brackets, which the corpus tokenizer never emits.
const (
	BOS = "<s>"
	EOS = "</s>"
)

// Order is the context width of a model: how many tokens a count-table key holds.
type Order int

const (
	Unigram Order = 1
	Bigram  Order = 2
	Trigram Order = 3
)

// Pad returns the number of boundary markers on each side of a sentence
// for this order: 0 for unigram, 1 for bigram, 2 for trigram.
func (o Order) Pad() int {
	if o <= Unigram {
		return 0
	}
	return int(o) - 1
}

// Valid reports whether o is one of the supported orders.
func (o Order) Valid() bool {
	return o >= Unigram && o <= Trigram
}

func (o Order) String() string {
	switch o {
	case Unigram:
		return "unigram"
	case Bigram:
		return "bigram"
	case Trigram:
		return "trigram"
	}
	return fmt.Sprintf("order(%d)", int(o))
}

// ParseOrder maps "unigram"/"bigram"/"trigram" (or "1"/"2"/"3") to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unigram", "1":
		return Unigram, nil
	case "bigram", "2":
		return Bigram, nil
	case "trigram", "3":
		return Trigram, nil
	}
	return 0, fmt.Errorf("unknown order %q: %w", s, internalerr.ErrInvalidConfig)
}

// Normalizer lowercases tokens and wraps a sentence in boundary markers.
// The same Normalizer must be used for training and evaluation, otherwise
// context windows will not match the count tables.
type Normalizer struct {
	Pad int
}

// ForOrder returns the normalizer matching an order's padding.
func ForOrder(o Order) Normalizer {
	return Normalizer{Pad: o.Pad()}
}

// Normalize returns a new lowercased, padded sentence. The input is not modified.
//
// A sentence that already carries Pad leading BOS and Pad trailing EOS markers
// is only lowercased, so normalizing twice yields the same result.
func (n Normalizer) Normalize(tokens []string) []string {
	padded := n.isPadded(tokens)
	pad := n.Pad
	if padded {
		pad = 0
	}

	out := make([]string, 0, len(tokens)+2*pad)
	for i := 0; i < pad; i++ {
		out = append(out, BOS)
	}
	for _, tok := range tokens {
		out = append(out, strings.ToLower(tok))
	}
	for i := 0; i < pad; i++ {
		out = append(out, EOS)
	}
	return out
}

// NormalizeCorpus normalizes every sentence of a corpus.
func (n Normalizer) NormalizeCorpus(corpus [][]string) [][]string {
	out := make([][]string, len(corpus))
	for i, s := range corpus {
		out[i] = n.Normalize(s)
	}
	return out
}

// Offset is the shift between a raw token index and its normalized index.
func (n Normalizer) Offset() int {
	return n.Pad
}

func (n Normalizer) isPadded(tokens []string) bool {
	if n.Pad == 0 || len(tokens) < 2*n.Pad {
		return false
	}
	for i := 0; i < n.Pad; i++ {
		if tokens[i] != BOS || tokens[len(tokens)-1-i] != EOS {
			return false
		}
	}
	return true
}
