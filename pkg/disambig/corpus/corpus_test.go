package corpus

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestTokenizerWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"apostrophe", "They're over there.", []string{"They're", "over", "there", "."}},
		{"curly apostrophe", "it’s fine", []string{"it's", "fine"}},
		{"hyphen", "a well-known fact", []string{"a", "well-known", "fact"}},
		{"punctuation", "Hello, world!", []string{"Hello", ",", "world", "!"}},
		{"quotes", "'their'", []string{"'", "their", "'"}},
		{"ellipsis", "wait... what", []string{"wait", "...", "what"}},
		{"angle brackets dropped", "<s> x </s>", []string{"s", "x", "/", "s"}},
		{"empty", "   ", nil},
	}

	tok := NewTokenizer()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tok.Words(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Words(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestTokenizerSentences(t *testing.T) {
	got := NewTokenizer().Sentences("Is it there? Yes! Their dog... barked")
	want := [][]string{
		{"Is", "it", "there", "?"},
		{"Yes", "!"},
		{"Their", "dog", "..."},
		{"barked"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sentences = %q, want %q", got, want)
	}
}

func TestTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	os.WriteFile(path, []byte("Their dog barked .\n\nThey're here\n"), 0644)

	got, err := Open(path).Sentences(context.Background())
	if err != nil {
		t.Fatalf("Sentences: %v", err)
	}
	want := [][]string{{"Their", "dog", "barked", "."}, {"They're", "here"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestGzipTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := gzip.NewWriter(f)
	zw.Write([]byte("over there\nsomewhere else\n"))
	zw.Close()
	f.Close()

	src := Open(path)
	if _, ok := src.(TextFile); !ok {
		t.Fatalf("Open(%q) = %T, want TextFile", path, src)
	}
	got, err := src.Sentences(context.Background())
	if err != nil {
		t.Fatalf("Sentences: %v", err)
	}
	if len(got) != 2 || got[0][1] != "there" {
		t.Errorf("unexpected sentences %q", got)
	}
}

func TestJSONLFileSkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.jsonl")
	content := `{"text": "Their plan failed. There was no backup."}
not json
{"text": "They're late!"}
`
	os.WriteFile(path, []byte(content), 0644)

	got, err := Open(path).Sentences(context.Background())
	if err != nil {
		t.Fatalf("Sentences: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 sentences, got %d: %q", len(got), got)
	}
	if got[2][0] != "They're" {
		t.Errorf("third sentence = %q", got[2])
	}
}

func TestHTMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	content := `<html><head><style>p { color: red }</style><script>var their = 1;</script></head>
<body><h1>News</h1><p>They're <b>over</b> there.</p><p>Their cat sleeps.</p></body></html>`
	os.WriteFile(path, []byte(content), 0644)

	got, err := Open(path).Sentences(context.Background())
	if err != nil {
		t.Fatalf("Sentences: %v", err)
	}

	joined := make([]string, len(got))
	for i, s := range got {
		joined[i] = strings.Join(s, " ")
	}
	all := strings.Join(joined, " | ")
	if strings.Contains(all, "var") || strings.Contains(all, "color") {
		t.Errorf("script or style text leaked: %q", all)
	}
	if !strings.Contains(all, "They're over there .") {
		t.Errorf("missing paragraph text: %q", all)
	}
	if !strings.Contains(all, "Their cat sleeps .") {
		t.Errorf("missing second paragraph: %q", all)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(context.Background(), "/nonexistent/corpus.txt"); err == nil {
		t.Error("Load should fail on a missing file")
	}
}

func TestLoadConcatenates(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	os.WriteFile(a, []byte("one\n"), 0644)
	os.WriteFile(b, []byte("two\nthree\n"), 0644)

	got, err := Load(context.Background(), a, b)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 3 || got[0][0] != "one" || got[2][0] != "three" {
		t.Errorf("unexpected corpus %q", got)
	}
}

func TestSplit(t *testing.T) {
	var corpus [][]string
	for i := 0; i < 10; i++ {
		corpus = append(corpus, []string{string(rune('a' + i))})
	}

	train, test, err := Split(corpus, 0.8, 1)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(train) != 8 || len(test) != 2 {
		t.Fatalf("Split sizes = %d/%d, want 8/2", len(train), len(test))
	}

	seen := make(map[string]int)
	for _, s := range append(append([][]string{}, train...), test...) {
		seen[s[0]]++
	}
	if len(seen) != 10 {
		t.Errorf("Split lost or duplicated sentences: %v", seen)
	}

	train2, test2, _ := Split(corpus, 0.8, 1)
	if !reflect.DeepEqual(train, train2) || !reflect.DeepEqual(test, test2) {
		t.Error("Same seed should give the same split")
	}

	train[0][0] = "mutated"
	for _, s := range corpus {
		if s[0] == "mutated" {
			t.Error("Split should not share sentence slices with its input")
		}
	}
}

func TestSplitRejectsBadRatio(t *testing.T) {
	for _, r := range []float64{0, 1, -0.5, 1.5} {
		if _, _, err := Split([][]string{{"a"}}, r, 1); err == nil {
			t.Errorf("Split with ratio %v should fail", r)
		}
	}
}
