// Package main provides the Sibyl command-line interface.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/sibyl-nlp/sibyl/fetcher"
	"github.com/sibyl-nlp/sibyl/lexicon"
	"github.com/sibyl-nlp/sibyl/llm"
	"github.com/sibyl-nlp/sibyl/oracle"
	"github.com/sibyl-nlp/sibyl/repository"
	"github.com/sibyl-nlp/sibyl/tokenizer"
)

const version = "v0.1.0-dev"

func usage() {
	fmt.Println("Sibyl - vocabulary-constrained sentence oracle")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  fetch      Crawl a site into the corpus repository")
	fmt.Println("  build      Build a dictionary from a corpus")
	fmt.Println("  predict    Generate a constrained sentence")
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("[sibyl] ")

	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("Sibyl %s\n", version)
	case "fetch":
		runFetch(os.Args[2:])
	case "build":
		runBuild(os.Args[2:])
	case "predict":
		runPredict(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func runFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	startURL := fs.String("url", "", "departure point for the crawl")
	domains := fs.String("domains", "", "comma-separated allowed domains (empty = any)")
	depth := fs.Int("depth", 2, "maximum crawl depth (0 = unlimited)")
	limit := fs.Int("limit", 50, "maximum pages to save (0 = unlimited)")
	source := fs.String("source", "web", "corpus source name")
	lang := fs.String("lang", "en", "BCP 47 language tag for fetched documents")
	dsn := fs.String("dsn", "user=sibyl dbname=sibyl sslmode=disable", "postgres connection string")
	fs.Parse(args)

	if *startURL == "" {
		log.Fatal("fetch: -url is required")
	}

	tag, err := language.Parse(*lang)
	if err != nil {
		log.Fatalf("fetch: bad language tag %q: %v", *lang, err)
	}

	repo, err := repository.Open(*dsn)
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}
	defer repo.Close()

	err = fetcher.NewPageFetcher().Fetch(fetcher.Options{
		StartURL:       *startURL,
		AllowedDomains: splitList(*domains),
		MaxDepth:       *depth,
		PageLimit:      *limit,
		Language:       tag,
		Source:         *source,
		Sink:           repo,
	})
	if err != nil {
		log.Fatalf("fetch: %v", err)
	}
}

func runBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	in := fs.String("in", "", "corpus text file (overrides -dsn)")
	dsn := fs.String("dsn", "", "postgres connection string to read the corpus from")
	source := fs.String("source", "", "repository corpus source to build from (empty = all)")
	out := fs.String("out", "sibyl.dict", "output dictionary file")
	minCount := fs.Int("min", lexicon.DefaultMinCount, "minimum word occurrence count")
	fs.Parse(args)

	corpus, err := loadCorpus(*in, *dsn, *source)
	if err != nil {
		log.Fatalf("build: %v", err)
	}

	d := lexicon.Build(corpus, *minCount)
	if d.Warning != "" {
		log.Printf("build: %s", d.Warning)
	}
	if err := d.Save(*out); err != nil {
		log.Fatalf("build: %v", err)
	}
	log.Printf("wrote %d entries to %s", len(d.Entries), *out)
}

func loadCorpus(path, dsn, source string) (string, error) {
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read corpus file: %w", err)
		}
		return string(raw), nil
	}
	if dsn == "" {
		return "", fmt.Errorf("either -in or -dsn is required")
	}

	repo, err := repository.Open(dsn)
	if err != nil {
		return "", err
	}
	defer repo.Close()

	return repo.CorpusText(source)
}

func runPredict(args []string) {
	fs := flag.NewFlagSet("predict", flag.ExitOnError)
	dict := fs.String("dict", "sibyl.dict", "dictionary file")
	seed := fs.String("seed", "", "seed phrase")
	mode := fs.String("mode", string(oracle.ModeDelegated), "generation mode: ranked, sampled or delegated")
	length := fs.Int("length", 8, "requested sentence length in words")
	temperature := fs.Float64("temp", 1.0, "sampling temperature")
	model := fs.String("model", "llama3", "external model identifier for delegated mode")
	baseURL := fs.String("ollama", llm.DefaultBaseURL, "base URL of the text generation service")
	encoding := fs.String("encoding", "cl100k_base", "tiktoken encoding for prompt budgeting")
	fs.Parse(args)

	vocab, err := lexicon.Load(*dict)
	if err != nil {
		log.Fatalf("predict: %v", err)
	}

	opts := []oracle.Option{oracle.WithModel(llm.NewClient(*baseURL))}
	if budget, err := tokenizer.NewBudget(*encoding); err == nil {
		opts = append(opts, oracle.WithPromptBudget(budget, 2048))
	} else {
		log.Printf("predict: prompt budgeting disabled: %v", err)
	}

	o := oracle.New(vocab, opts...)
	res, err := o.Predict(context.Background(), *seed, oracle.Options{
		Length:      *length,
		Mode:        oracle.Mode(*mode),
		Temperature: *temperature,
		Model:       *model,
	})
	if err != nil {
		log.Fatalf("predict: %v", err)
	}

	if res.Warning != "" {
		log.Printf("warning: %s", res.Warning)
	}
	fmt.Println(res.Text)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
