package corpus

import (
	"strings"
	"unicode"
)

// Tokenizer splits running text into sentences of word and punctuation tokens.
// Case is preserved; normalization happens later, at training time.
type Tokenizer struct{}

// NewTokenizer creates a tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Sentences splits text on '.', '!' and '?' and tokenizes each sentence.
// The terminator is kept as the sentence's last token.
func (t *Tokenizer) Sentences(text string) [][]string {
	var out [][]string
	var cur []string
	for _, tok := range t.Words(text) {
		cur = append(cur, tok)
		if isTerminator(tok) {
			out = append(out, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// Words tokenizes text without splitting it into sentences.
// Apostrophes and hyphens between letters stay inside the word
// ("they're", "well-known"); other punctuation becomes its own token.
func (t *Tokenizer) Words(text string) []string {
	runes := []rune(text)
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			current.WriteRune(r)
		case isJoiner(r) && current.Len() > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]):
			if r == '’' {
				r = '\''
			}
			current.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			if r == '<' || r == '>' {
				// reserved for boundary markers
				continue
			}
			tokens = append(tokens, string(r))
		default:
			flush()
		}
	}
	flush()

	return mergeEllipses(tokens)
}

func isJoiner(r rune) bool {
	return r == '\'' || r == '’' || r == '-'
}

func isTerminator(tok string) bool {
	if tok == "!" || tok == "?" {
		return true
	}
	return tok != "" && strings.Trim(tok, ".") == ""
}

// mergeEllipses folds runs of "." into one token so "wait..." ends a single sentence.
func mergeEllipses(tokens []string) []string {
	out := tokens[:0]
	for _, tok := range tokens {
		if tok == "." && len(out) > 0 && strings.Trim(out[len(out)-1], ".") == "" {
			out[len(out)-1] += "."
			continue
		}
		out = append(out, tok)
	}
	return out
}
