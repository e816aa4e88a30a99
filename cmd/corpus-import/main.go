package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/disambig/pkg/disambig/corpus"
	"github.com/cognicore/disambig/pkg/disambig/store"
	"github.com/cognicore/disambig/pkg/disambig/store/sqlite"
)

func main() {
	var (
		dbPath  = flag.String("db", "disambig.db", "SQLite database path")
		source  = flag.String("source", "", "Source name (default: each file's base name)")
		replace = flag.Bool("replace", false, "Drop existing sentences of the source before importing")
		list    = flag.Bool("list", false, "List imported sources and exit")
		remove  = flag.String("delete", "", "Delete a source and exit")
	)
	flag.Parse()

	ctx := context.Background()

	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	switch {
	case *list:
		if err := listSources(ctx, st, os.Stdout); err != nil {
			log.Fatalf("list sources: %v", err)
		}
		return
	case *remove != "":
		if err := st.DeleteSource(ctx, *remove); err != nil {
			log.Fatalf("delete %s: %v", *remove, err)
		}
		log.Printf("deleted source %s", *remove)
		return
	}

	if flag.NArg() == 0 {
		log.Fatal("usage: corpus-import [-db path] [-source name] file...")
	}

	total, err := importFiles(ctx, st, *source, *replace, flag.Args())
	if err != nil {
		log.Fatalf("import: %v", err)
	}
	log.Printf("imported %d sentences into %s", total, *dbPath)
}

// importFiles stores the sentences of every file. With an empty source name
// each file becomes its own source.
func importFiles(ctx context.Context, st store.Store, source string, replace bool, paths []string) (int, error) {
	cleared := make(map[string]bool)
	total := 0
	for _, p := range paths {
		name := source
		if name == "" {
			name = sourceName(p)
		}

		sentences, err := corpus.Open(p).Sentences(ctx)
		if err != nil {
			return total, err
		}

		if replace && !cleared[name] {
			if err := st.DeleteSource(ctx, name); err != nil {
				return total, err
			}
			cleared[name] = true
		}

		n, err := st.AddSentences(ctx, name, sentences)
		if err != nil {
			return total, fmt.Errorf("store %s: %w", p, err)
		}
		log.Printf("%s: %d sentences -> %s", p, n, name)
		total += n
	}
	return total, nil
}

// sourceName strips directories and extensions: "data/news.jsonl.gz" -> "news".
func sourceName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func listSources(ctx context.Context, st store.Store, w io.Writer) error {
	sources, err := st.Sources(ctx)
	if err != nil {
		return err
	}
	for _, s := range sources {
		fmt.Fprintf(w, "%-24s %8d sentences %10d tokens\n", s.Name, s.Sentences, s.Tokens)
	}
	return nil
}
