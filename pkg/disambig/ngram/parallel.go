package ngram

import (
	"sync"

	"github.com/cognicore/disambig/pkg/disambig/normalize"
)

// CountParallel counts a normalized corpus split into contiguous shards,
// one goroutine per shard, and merges the partial tables.
//
// Windows that straddle two shards are added afterwards from the shard
// edges, so the result equals Count(corpus, order).
func CountParallel(corpus [][]string, order normalize.Order, workers int) *Tables {
	if workers <= 1 || len(corpus) < 2*workers {
		return Count(corpus, order)
	}

	shards := shard(corpus, workers)
	keep := int(order) - 1
	for _, s := range shards {
		if streamLen(s) < keep {
			// A shard too short to cover a full seam; windows could span three shards.
			return Count(corpus, order)
		}
	}

	partial := make([]*Tables, len(shards))
	var wg sync.WaitGroup
	for i, s := range shards {
		wg.Add(1)
		go func(i int, s [][]string) {
			defer wg.Done()
			partial[i] = Count(s, order)
		}(i, s)
	}
	wg.Wait()

	out := NewTables(order)
	for _, p := range partial {
		out.Merge(p)
	}
	for i := 1; i < len(shards); i++ {
		addSeam(out, lastTokens(shards[i-1], keep), firstTokens(shards[i], keep))
	}
	return out
}

func shard(corpus [][]string, n int) [][][]string {
	size := (len(corpus) + n - 1) / n
	var shards [][][]string
	for start := 0; start < len(corpus); start += size {
		end := start + size
		if end > len(corpus) {
			end = len(corpus)
		}
		shards = append(shards, corpus[start:end])
	}
	return shards
}

// addSeam counts the windows that start in tail and end in head.
func addSeam(t *Tables, tail, head []string) {
	stream := make([]string, 0, len(tail)+len(head))
	stream = append(stream, tail...)
	stream = append(stream, head...)

	for end := len(tail); end < len(stream); end++ {
		for k := 2; k <= int(t.Order); k++ {
			start := end - k + 1
			if start < 0 || start >= len(tail) {
				continue
			}
			t.addWindow(stream[start : end+1])
		}
	}
}

func streamLen(corpus [][]string) int {
	n := 0
	for _, s := range corpus {
		n += len(s)
	}
	return n
}

func lastTokens(corpus [][]string, k int) []string {
	out := make([]string, 0, k)
	for i := len(corpus) - 1; i >= 0 && len(out) < k; i-- {
		s := corpus[i]
		for j := len(s) - 1; j >= 0 && len(out) < k; j-- {
			out = append(out, s[j])
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func firstTokens(corpus [][]string, k int) []string {
	out := make([]string, 0, k)
	for _, s := range corpus {
		for _, tok := range s {
			if len(out) == k {
				return out
			}
			out = append(out, tok)
		}
	}
	return out
}
