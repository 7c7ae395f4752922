package batch

import (
	"context"
	"fmt"
	"sync"

	"Fatih/internal/calc/analysis"
	"Fatih/internal/metrics"
)

// Configuration is one named parameter set in a comparison.
type Configuration struct {
	Name string `json:"name"`
	analysis.Input
}

type CompareInput struct {
	Items []Configuration `json:"items"`
}

// Item is the outcome for one configuration. Exactly one of Result and Error is set.
type Item struct {
	Name   string           `json:"name"`
	Result *analysis.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

type CompareResult struct {
	Results []Item `json:"results"`
	Failed  int    `json:"failed"`
}

// Compare runs every configuration independently on up to workers
// goroutines. A failing configuration does not stop the others. Results keep
// input order.
func Compare(ctx context.Context, in CompareInput, workers int) (CompareResult, error) {
	if len(in.Items) == 0 {
		return CompareResult{}, fmt.Errorf("no items")
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(in.Items) {
		workers = len(in.Items)
	}

	out := CompareResult{Results: make([]Item, len(in.Items))}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out.Results[i] = run(in.Items[i], i)
			}
		}()
	}

	var err error
feed:
	for i := range in.Items {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if err != nil {
		return CompareResult{}, err
	}

	for _, item := range out.Results {
		if item.Error != "" {
			out.Failed++
			metrics.BatchItems.WithLabelValues("failed").Inc()
		} else {
			metrics.BatchItems.WithLabelValues("ok").Inc()
		}
	}
	return out, nil
}

func run(cfg Configuration, i int) Item {
	name := cfg.Name
	if name == "" {
		name = fmt.Sprintf("Configuration %d", i+1)
	}
	res, err := analysis.Run(cfg.Input)
	if err != nil {
		return Item{Name: name, Error: err.Error()}
	}
	return Item{Name: name, Result: &res}
}
