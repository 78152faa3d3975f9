package transformer

import (
	"context"
	"time"

	"github.com/Financial-Times/significant-individuals-bods-transformer/bods"
	si "github.com/Financial-Times/significant-individuals-bods-transformer/significantindividual"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Converter is what the service needs from bods.Converter
type Converter interface {
	Convert(record si.SignificantIndividual) (bods.Bundle, error)
}

// Result is the outcome for one record of a batch
type Result struct {
	Index  int
	Bundle *bods.Bundle
	Err    error
}

type Service struct {
	converter Converter
	workers   int
	metrics   *Metrics
}

func NewService(converter Converter, workers int, metrics *Metrics) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{converter: converter, workers: workers, metrics: metrics}
}

// Convert converts a single record and records the outcome
func (s *Service) Convert(record si.SignificantIndividual) (bods.Bundle, error) {
	start := time.Now()
	bundle, err := s.converter.Convert(record)
	s.metrics.observe(start, err)
	return bundle, err
}

// ConvertAll converts every record independently. A failing record never stops the
// others; results come back in input order. Records not started before ctx is done
// carry ctx.Err().
func (s *Service) ConvertAll(ctx context.Context, records []si.SignificantIndividual) []Result {
	results := make([]Result, len(records))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i := range records {
		i := i
		if err := ctx.Err(); err != nil {
			results[i] = Result{Index: i, Err: err}
			continue
		}
		g.Go(func() error {
			bundle, err := s.Convert(records[i])
			if err != nil {
				log.WithField("index", i).WithError(err).Warn("failed to convert significant individual")
				results[i] = Result{Index: i, Err: err}
				return nil
			}
			results[i] = Result{Index: i, Bundle: &bundle}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
