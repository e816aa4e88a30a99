package corpus

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Source supplies tokenized sentences of raw (original-case) tokens.
type Source interface {
	Sentences(ctx context.Context) ([][]string, error)
}

// Open picks a Source from the file name:
// .html/.htm → HTMLFile, .jsonl → JSONLFile, anything else → TextFile.
// A trailing .gz is decompressed transparently.
func Open(path string) Source {
	base := strings.TrimSuffix(strings.ToLower(path), ".gz")
	switch filepath.Ext(base) {
	case ".html", ".htm":
		return HTMLFile{Path: path}
	case ".jsonl":
		return JSONLFile{Path: path}
	}
	return TextFile{Path: path}
}

// Load reads every path and concatenates the sentences in order.
func Load(ctx context.Context, paths ...string) ([][]string, error) {
	var all [][]string
	for _, p := range paths {
		s, err := Open(p).Sentences(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, s...)
	}
	return all, nil
}

// TextFile holds one sentence per line.
type TextFile struct {
	Path string
}

// Sentences implements Source.
func (f TextFile) Sentences(ctx context.Context) ([][]string, error) {
	rc, err := openFile(f.Path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	tok := NewTokenizer()
	var out [][]string
	err = scanLines(ctx, rc, func(_ int, line string) {
		if words := tok.Words(line); len(words) > 0 {
			out = append(out, words)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return out, nil
}

// JSONLFile holds one JSON document per line with the body under "text".
type JSONLFile struct {
	Path string
}

type jsonlDoc struct {
	Text string `json:"text"`
}

// Sentences implements Source. Malformed lines are skipped with a warning.
func (f JSONLFile) Sentences(ctx context.Context) ([][]string, error) {
	rc, err := openFile(f.Path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	tok := NewTokenizer()
	var out [][]string
	err = scanLines(ctx, rc, func(n int, line string) {
		var doc jsonlDoc
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", n, f.Path, err)
			return
		}
		out = append(out, tok.Sentences(doc.Text)...)
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return out, nil
}

// HTMLFile extracts the visible text of an HTML document.
type HTMLFile struct {
	Path string
}

// Sentences implements Source.
func (f HTMLFile) Sentences(ctx context.Context) ([][]string, error) {
	rc, err := openFile(f.Path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := ExtractText(rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	return NewTokenizer().Sentences(text), nil
}

// ExtractText returns the text nodes of an HTML document, skipping
// script and style elements. Block elements end with a newline.
func ExtractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && isBlock(n.Data) {
			buf.WriteByte('\n')
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String()), nil
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "br", "li", "h1", "h2", "h3", "h4", "h5", "h6", "tr", "blockquote", "section", "article":
		return true
	}
	return false
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g gzipFile) Close() error {
	g.Reader.Close()
	return g.f.Close()
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("gunzip %s: %w", path, err)
	}
	return gzipFile{Reader: zr, f: f}, nil
}

func scanLines(ctx context.Context, r io.Reader, fn func(n int, line string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		if n%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fn(n, line)
	}
	return scanner.Err()
}
