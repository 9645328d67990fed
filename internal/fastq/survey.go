package fastq

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
)

type SurveyOptions struct {
	// Reads is the number of records sampled from the start of the file.
	Reads int
	// MinMatch is the length of the adapter prefix searched for.
	MinMatch int
	// MinLen is the shortest insert counted as usable.
	MinLen int
	// BatchSize is the number of records handed to one worker.
	BatchSize int
}

func DefaultSurveyOptions() SurveyOptions {
	return SurveyOptions{Reads: 10000, MinMatch: 8, MinLen: 18, BatchSize: 1000}
}

// Survey is the adapter content of a read sample.
type Survey struct {
	Reads       int64
	WithAdapter int64
	TooShort    int64
	MeanError   float64
}

// AdapterRate is the percentage of sampled reads carrying the adapter.
func (s Survey) AdapterRate() float64 {
	if s.Reads == 0 {
		return 0
	}
	return float64(s.WithAdapter) / float64(s.Reads) * 100
}

func phred33ToError(qual byte) float64 {
	return math.Pow(10, -(float64(qual)-33)/10.0)
}

func meanError(quality []byte) float64 {
	total := 0.0
	for _, q := range quality {
		total += phred33ToError(q)
	}
	return total / float64(len(quality))
}

type tally struct {
	reads, withAdapter, tooShort int64
	// reads with a quality line; only these contribute to errSum
	scored int64
	errSum float64
}

func surveyBatch(batch []*Read, prefix string, minLen int, out chan<- tally, wg *sync.WaitGroup) {
	defer wg.Done()

	var t tally
	for _, read := range batch {
		t.reads++
		if len(read.Quality) > 0 {
			t.scored++
			t.errSum += meanError([]byte(read.Quality))
		}
		i := strings.Index(read.Sequence, prefix)
		if i == -1 {
			continue
		}
		t.withAdapter++
		if i < minLen {
			t.tooShort++
		}
	}
	out <- t
}

// SurveyFile samples the first opts.Reads records of path and counts how
// many carry the first opts.MinMatch bases of adapter.
func SurveyFile(path, adapter string, opts SurveyOptions) (Survey, error) {
	if opts.MinMatch <= 0 || opts.MinMatch > len(adapter) {
		return Survey{}, fmt.Errorf("adapter %q shorter than the %d bases surveyed", adapter, opts.MinMatch)
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultSurveyOptions().BatchSize
	}

	r, err := Open(path)
	if err != nil {
		return Survey{}, err
	}
	defer r.Close()

	prefix := strings.ToUpper(adapter[:opts.MinMatch])
	results := make(chan tally)
	done := make(chan Survey)
	var wg sync.WaitGroup

	go func() {
		var (
			s      Survey
			scored int64
			errSum float64
		)
		for t := range results {
			s.Reads += t.reads
			s.WithAdapter += t.withAdapter
			s.TooShort += t.tooShort
			scored += t.scored
			errSum += t.errSum
		}
		if scored > 0 {
			s.MeanError = errSum / float64(scored)
		}
		done <- s
	}()

	batch := make([]*Read, 0, opts.BatchSize)
	var readErr error
	for n := 0; opts.Reads <= 0 || n < opts.Reads; n++ {
		read, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			readErr = err
			break
		}
		batch = append(batch, read)

		if len(batch) == opts.BatchSize {
			wg.Add(1)
			go surveyBatch(batch, prefix, opts.MinLen, results, &wg)
			batch = make([]*Read, 0, opts.BatchSize)
		}
	}
	if len(batch) > 0 {
		wg.Add(1)
		go surveyBatch(batch, prefix, opts.MinLen, results, &wg)
	}

	wg.Wait()
	close(results)
	s := <-done

	if readErr != nil {
		return Survey{}, readErr
	}
	return s, nil
}
