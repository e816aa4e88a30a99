package ngram

import (
	"reflect"
	"testing"

	"github.com/cognicore/disambig/internal/fixture"
	"github.com/cognicore/disambig/pkg/disambig/confusable"
	"github.com/cognicore/disambig/pkg/disambig/normalize"
)

func countFixture(order normalize.Order) *Tables {
	corpus := normalize.ForOrder(order).NormalizeCorpus(fixture.Sentences())
	return Count(corpus, order)
}

func TestCountBoundaryTokens(t *testing.T) {
	tables := countFixture(normalize.Bigram)

	if got := tables.Unigram("<s>"); got != 6 {
		t.Errorf("Unigram(<s>) = %d, want 6 (one per sentence)", got)
	}
	if got := tables.Bigram("</s>", "<s>"); got != 5 {
		t.Errorf("Bigram(</s>, <s>) = %d, want 5 (sentence transitions)", got)
	}
}

func TestCountVocabulary(t *testing.T) {
	tables := countFixture(normalize.Bigram)

	if got := tables.VocabularySize(); got != 68 {
		t.Errorf("VocabularySize() = %d, want 68", got)
	}
	if tables.Unigram("there") != 3 || tables.Unigram("their") != 2 || tables.Unigram("they're") != 2 {
		t.Errorf("unexpected confusable counts: there=%d their=%d they're=%d",
			tables.Unigram("there"), tables.Unigram("their"), tables.Unigram("they're"))
	}
}

func TestCountTrigrams(t *testing.T) {
	tables := countFixture(normalize.Trigram)

	if got := tables.Trigram("source", "said", "there"); got != 1 {
		t.Errorf("Trigram(source, said, there) = %d, want 1", got)
	}
	if got := tables.Trigram("</s>", "</s>", "<s>"); got != 5 {
		t.Errorf("Trigram(</s>, </s>, <s>) = %d, want 5", got)
	}
	if got := tables.Unigram("<s>"); got != 12 {
		t.Errorf("Unigram(<s>) = %d, want 12 with two markers per sentence", got)
	}
}

func TestCountUnigramOrderSkipsHigherTables(t *testing.T) {
	tables := countFixture(normalize.Unigram)

	if tables.Bigrams != nil || tables.Trigrams != nil {
		t.Error("Unigram tables should not track bigrams or trigrams")
	}
	if tables.Bigram("said", "there") != 0 {
		t.Error("Absent table should read as zero")
	}
	if tables.Unigram("<s>") != 0 {
		t.Error("Unigram normalization adds no boundary markers")
	}
}

func TestCountTotal(t *testing.T) {
	corpus := [][]string{{"<s>", "a", "</s>"}, {"<s>", "b", "b", "</s>"}}
	tables := Count(corpus, normalize.Bigram)

	if tables.N != 7 {
		t.Errorf("N = %d, want 7", tables.N)
	}
	if tables.Bigram("b", "b") != 1 {
		t.Errorf("Bigram(b, b) = %d, want 1", tables.Bigram("b", "b"))
	}
}

func TestCountNonNegative(t *testing.T) {
	tables := countFixture(normalize.Trigram)

	for k, v := range tables.Unigrams {
		if v < 0 {
			t.Errorf("negative unigram count for %q", k)
		}
	}
	for k, v := range tables.Bigrams {
		if v < 0 {
			t.Errorf("negative bigram count for %v", k)
		}
	}
	for k, v := range tables.Trigrams {
		if v < 0 {
			t.Errorf("negative trigram count for %v", k)
		}
	}
}

func TestMerge(t *testing.T) {
	a := Count([][]string{{"<s>", "x", "</s>"}}, normalize.Bigram)
	b := Count([][]string{{"<s>", "x", "y", "</s>"}}, normalize.Bigram)
	a.Merge(b)

	if a.Unigram("x") != 2 {
		t.Errorf("Unigram(x) = %d, want 2", a.Unigram("x"))
	}
	if a.Bigram("<s>", "x") != 2 {
		t.Errorf("Bigram(<s>, x) = %d, want 2", a.Bigram("<s>", "x"))
	}
	if a.N != 7 {
		t.Errorf("N = %d, want 7", a.N)
	}
}

func TestCountParallelMatchesSerial(t *testing.T) {
	var raw [][]string
	for i := 0; i < 5; i++ {
		raw = append(raw, fixture.Sentences()...)
	}

	for _, order := range []normalize.Order{normalize.Unigram, normalize.Bigram, normalize.Trigram} {
		corpus := normalize.ForOrder(order).NormalizeCorpus(raw)
		serial := Count(corpus, order)
		for _, workers := range []int{2, 3, 4} {
			parallel := CountParallel(corpus, order, workers)
			if !reflect.DeepEqual(serial, parallel) {
				t.Errorf("%s with %d workers: parallel tables differ from serial", order, workers)
			}
		}
	}
}

func TestDefaultGuess(t *testing.T) {
	tables := countFixture(normalize.Bigram)

	if got := DefaultGuess(tables, confusable.TheirThere); got != "there" {
		t.Errorf("DefaultGuess = %q, want there", got)
	}
}

func TestDefaultGuessTieTakesFirstInSetOrder(t *testing.T) {
	tables := Count([][]string{{"<s>", "their", "they're", "</s>"}}, normalize.Bigram)

	// their and they're both occur once, there never.
	if got := DefaultGuess(tables, confusable.TheirThere); got != "their" {
		t.Errorf("DefaultGuess = %q, want their", got)
	}

	reordered := confusable.MustNew("they're", "there", "their")
	if got := DefaultGuess(tables, reordered); got != "they're" {
		t.Errorf("DefaultGuess = %q, want they're", got)
	}
}

func TestDefaultGuessEmptyTables(t *testing.T) {
	tables := NewTables(normalize.Bigram)

	if got := DefaultGuess(tables, confusable.TheirThere); !confusable.TheirThere.Contains(got) {
		t.Errorf("DefaultGuess = %q, should be a set member", got)
	}
}
