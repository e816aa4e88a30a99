package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cognicore/disambig/pkg/disambig"
	"github.com/cognicore/disambig/pkg/disambig/config"
	"github.com/cognicore/disambig/pkg/disambig/corpus"
	"github.com/cognicore/disambig/pkg/disambig/eval"
	"github.com/cognicore/disambig/pkg/disambig/normalize"
	"github.com/cognicore/disambig/pkg/disambig/report"
	"github.com/cognicore/disambig/pkg/disambig/resolve"
	"github.com/cognicore/disambig/pkg/disambig/store"
	"github.com/cognicore/disambig/pkg/disambig/store/sqlite"
)

const randomVariant = "random"

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration (optional, defaults to their/there/they're)")
		corpusArg  = flag.String("corpus", "", "Comma-separated corpus files (.txt, .jsonl, .html, optionally .gz)")
		dbPath     = flag.String("db", "", "SQLite database for stored corpora and run history")
		sources    = flag.String("source", "", "Comma-separated sources to read from -db instead of files")
		format     = flag.String("format", "table", "Report format: table or json")
		history    = flag.Int("history", 0, "Print the last N recorded runs and exit")
	)
	flag.Parse()

	ctx := context.Background()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	if *corpusArg != "" {
		cfg.Corpus = splitList(*corpusArg)
	}
	if *dbPath != "" {
		cfg.DB = *dbPath
	}

	var st store.Store
	if cfg.DB != "" {
		var err error
		st, err = sqlite.OpenSQLite(ctx, cfg.DB)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		defer st.Close()
	}

	if *history > 0 {
		if st == nil {
			log.Fatal("--history requires --db")
		}
		if err := printHistory(ctx, st, *history); err != nil {
			log.Fatalf("history: %v", err)
		}
		return
	}

	sentences, err := loadCorpus(ctx, cfg.Corpus, st, splitList(*sources))
	if err != nil {
		log.Fatalf("load corpus: %v", err)
	}
	log.Printf("loaded %d sentences", len(sentences))

	rep, runs, err := evaluate(cfg, sentences, time.Now())
	if err != nil {
		log.Fatalf("evaluate: %v", err)
	}

	if st != nil {
		for _, r := range runs {
			if err := st.SaveRun(ctx, r); err != nil {
				log.Fatalf("save run %s: %v", r.ID, err)
			}
		}
		log.Printf("recorded %d runs in %s", len(runs), cfg.DB)
	}

	if err := rep.Write(os.Stdout, *format); err != nil {
		log.Fatalf("write report: %v", err)
	}
}

// loadCorpus reads the named store sources when given, the corpus files otherwise.
func loadCorpus(ctx context.Context, files []string, st store.Store, sources []string) ([][]string, error) {
	if len(sources) > 0 {
		if st == nil {
			return nil, errors.New("--source requires --db")
		}
		var all [][]string
		for _, name := range sources {
			s, err := st.Sentences(ctx, name)
			if err != nil {
				return nil, err
			}
			all = append(all, s...)
		}
		return all, nil
	}
	if len(files) == 0 {
		return nil, errors.New("no corpus given (use --corpus, --source or the config's corpus list)")
	}
	return corpus.Load(ctx, files...)
}

// evaluate splits the corpus and scores the baseline, a random guesser and
// every configured variant for each confusable set. Sets that never occur in
// the test split are skipped with a log line.
func evaluate(cfg *config.Config, sentences [][]string, now time.Time) (*report.Report, []store.Run, error) {
	sets, err := cfg.ConfusableSets()
	if err != nil {
		return nil, nil, err
	}
	variants, err := cfg.Variants()
	if err != nil {
		return nil, nil, err
	}

	train, test, err := corpus.Split(sentences, cfg.Split.Ratio, cfg.Split.Seed)
	if err != nil {
		return nil, nil, err
	}

	rep := report.New(len(train), len(test))
	var runs []store.Run

	record := func(ns config.NamedSet, variant, def string, res eval.Result) {
		row := rep.Add(ns.Name, variant, res)
		run := store.Run{
			ID:        store.NewRunID(now),
			Variant:   variant,
			SetName:   ns.Name,
			Members:   ns.Set.Members(),
			Default:   def,
			Correct:   res.Correct,
			Total:     res.Total,
			Accuracy:  res.Accuracy,
			TrainSize: len(train),
			TestSize:  len(test),
			CreatedAt: now,
		}
		row.RunID = run.ID
		runs = append(runs, run)
	}

	for _, ns := range sets {
		base, err := disambig.New(disambig.Options{Set: ns.Set, Order: normalize.Unigram})
		if err != nil {
			return nil, nil, err
		}
		if err := base.Train(train); err != nil {
			return nil, nil, fmt.Errorf("set %s: train baseline: %w", ns.Name, err)
		}
		def, err := base.DefaultGuess()
		if err != nil {
			return nil, nil, err
		}

		res, err := eval.Evaluate(resolve.Baseline{Default: def}, base.Normalizer(), ns.Set, test)
		if errors.Is(err, eval.ErrNoConfusables) {
			log.Printf("set %s: no confusable words in test split, skipped", ns.Name)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("set %s: baseline: %w", ns.Name, err)
		}
		record(ns, report.BaselineVariant, def, res)

		res, err = eval.Evaluate(resolve.NewRandom(ns.Set, cfg.Split.Seed), base.Normalizer(), ns.Set, test)
		if err != nil {
			return nil, nil, fmt.Errorf("set %s: random: %w", ns.Name, err)
		}
		record(ns, randomVariant, def, res)

		for _, v := range variants {
			m, err := disambig.New(disambig.Options{
				Set:       ns.Set,
				Order:     v.Order,
				Smoothing: v.Smoothing,
				Workers:   cfg.Workers,
			})
			if err != nil {
				return nil, nil, err
			}
			if err := m.Train(train); err != nil {
				return nil, nil, fmt.Errorf("set %s: train %s: %w", ns.Name, m.Variant(), err)
			}
			res, err := m.Evaluate(test)
			if err != nil {
				return nil, nil, fmt.Errorf("set %s: evaluate %s: %w", ns.Name, m.Variant(), err)
			}
			record(ns, m.Variant(), def, res)
		}
	}

	rep.ComputeReductions()
	return rep, runs, nil
}

func printHistory(ctx context.Context, st store.Store, limit int) error {
	runs, err := st.Runs(ctx, limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  %-12s %-16s %6.2f%% (%d/%d)  %s\n",
			r.CreatedAt.Local().Format(time.DateTime), r.SetName, r.Variant,
			r.Accuracy, r.Correct, r.Total, r.ID)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
