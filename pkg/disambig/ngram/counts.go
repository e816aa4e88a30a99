package ngram

import (
	"github.com/cognicore/disambig/pkg/disambig/confusable"
	"github.com/cognicore/disambig/pkg/disambig/normalize"
)

// Tables holds n-gram occurrence counts for orders 1..Order.
// Tables returned by Count, CountParallel or Counter.Tables are not
// modified afterwards and may be read concurrently.
type Tables struct {
	Order    normalize.Order
	N        int64                // total tokens counted
	Unigrams map[string]int64     // token -> count
	Bigrams  map[[2]string]int64  // (w1, w2) -> count
	Trigrams map[[3]string]int64  // (w1, w2, w3) -> count
}

// NewTables creates empty tables for the given order.
func NewTables(order normalize.Order) *Tables {
	t := &Tables{
		Order:    order,
		Unigrams: make(map[string]int64),
	}
	if order >= normalize.Bigram {
		t.Bigrams = make(map[[2]string]int64)
	}
	if order >= normalize.Trigram {
		t.Trigrams = make(map[[3]string]int64)
	}
	return t
}

// Unigram returns the count of a single token, 0 when unseen.
func (t *Tables) Unigram(w string) int64 {
	return t.Unigrams[w]
}

// Bigram returns the count of (w1, w2), 0 when unseen or not tracked.
func (t *Tables) Bigram(w1, w2 string) int64 {
	if t.Bigrams == nil {
		return 0
	}
	return t.Bigrams[[2]string{w1, w2}]
}

// Trigram returns the count of (w1, w2, w3), 0 when unseen or not tracked.
func (t *Tables) Trigram(w1, w2, w3 string) int64 {
	if t.Trigrams == nil {
		return 0
	}
	return t.Trigrams[[3]string{w1, w2, w3}]
}

// VocabularySize returns the number of distinct tokens, boundary markers included.
func (t *Tables) VocabularySize() int {
	return len(t.Unigrams)
}

// Merge adds every count of other into t, key by key.
func (t *Tables) Merge(other *Tables) {
	t.N += other.N
	for k, v := range other.Unigrams {
		t.Unigrams[k] += v
	}
	if t.Bigrams != nil {
		for k, v := range other.Bigrams {
			t.Bigrams[k] += v
		}
	}
	if t.Trigrams != nil {
		for k, v := range other.Trigrams {
			t.Trigrams[k] += v
		}
	}
}

// addWindow counts one window of 1..3 consecutive tokens.
func (t *Tables) addWindow(w []string) {
	switch len(w) {
	case 1:
		t.Unigrams[w[0]]++
		t.N++
	case 2:
		if t.Bigrams != nil {
			t.Bigrams[[2]string{w[0], w[1]}]++
		}
	case 3:
		if t.Trigrams != nil {
			t.Trigrams[[3]string{w[0], w[1], w[2]}]++
		}
	}
}

// Counter accumulates counts over a stream of normalized sentences.
// Sentences are treated as one concatenated token stream, so windows
// span from one sentence's trailing markers into the next one's leading markers.
type Counter struct {
	tables *Tables
	tail   []string // last Order-1 tokens of the stream so far
}

// NewCounter creates a counter for the given order.
func NewCounter(order normalize.Order) *Counter {
	return &Counter{tables: NewTables(order)}
}

// AddSentence counts every window ending inside the sentence.
func (c *Counter) AddSentence(tokens []string) {
	keep := int(c.tables.Order) - 1
	for _, tok := range tokens {
		c.tables.addWindow([]string{tok})
		if len(c.tail) >= 1 {
			c.tables.addWindow([]string{c.tail[len(c.tail)-1], tok})
		}
		if len(c.tail) >= 2 {
			c.tables.addWindow([]string{c.tail[len(c.tail)-2], c.tail[len(c.tail)-1], tok})
		}
		if keep > 0 {
			c.tail = append(c.tail, tok)
			if len(c.tail) > keep {
				c.tail = c.tail[len(c.tail)-keep:]
			}
		}
	}
}

// Tables hands over the accumulated tables. The counter must not be used afterwards.
func (c *Counter) Tables() *Tables {
	t := c.tables
	c.tables = nil
	return t
}

// Count builds the count tables of a normalized corpus.
func Count(corpus [][]string, order normalize.Order) *Tables {
	c := NewCounter(order)
	for _, s := range corpus {
		c.AddSentence(s)
	}
	return c.Tables()
}

// DefaultGuess returns the member of set with the highest unigram count.
// Ties go to the member that comes first in the set's order.
func DefaultGuess(t *Tables, set confusable.Set) string {
	best := set.At(0)
	bestCount := t.Unigram(best)
	for i := 1; i < set.Len(); i++ {
		m := set.At(i)
		if c := t.Unigram(m); c > bestCount {
			best, bestCount = m, c
		}
	}
	return best
}
