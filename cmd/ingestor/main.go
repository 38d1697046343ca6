package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/samirrijal/routeguide/internal/adapters/dataset"
	"github.com/samirrijal/routeguide/internal/adapters/postgres"
	"github.com/samirrijal/routeguide/internal/core/domain"
	"github.com/samirrijal/routeguide/internal/core/ports"
	"github.com/samirrijal/routeguide/internal/pkg/config"
)

// ingestor replaces the features table with the contents of one or more
// dataset files or http(s) URLs, concatenated in argument order.
func main() {
	cfg, err := config.Load("routeguide-ingestor")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sources := os.Args[1:]
	if len(sources) == 0 {
		sources = []string{cfg.Dataset.Path}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	log.Printf("RouteGuide ingestor: %d sources", len(sources))

	client := &http.Client{Timeout: 120 * time.Second}

	results := make([][]domain.Feature, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	sem := make(chan struct{}, 4) // max 4 concurrent downloads

	for i, src := range sources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i], errs[i] = load(ctx, client, src, cfg.Dataset.Format)
		}()
	}
	wg.Wait()

	var all []domain.Feature
	for i, src := range sources {
		if errs[i] != nil {
			log.Fatalf("ERROR [%s]: %v", src, errs[i])
		}
		log.Printf("[%s] %d features", src, len(results[i]))
		all = append(all, results[i]...)
	}

	if err := store(ctx, postgres.NewFeatureRepo(db), all); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("ingestion complete: %d features", len(all))
}

func store(ctx context.Context, w ports.FeatureWriter, features []domain.Feature) error {
	if err := w.ReplaceAll(ctx, features); err != nil {
		return fmt.Errorf("replace features: %w", err)
	}
	return nil
}

// load reads one source. An empty format is inferred from the name.
func load(ctx context.Context, client *http.Client, src, format string) ([]domain.Feature, error) {
	if format == "" {
		format = dataset.InferFormat(src)
	}

	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		f, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return dataset.Decode(f, format)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, src)
	}
	return dataset.Decode(resp.Body, format)
}
