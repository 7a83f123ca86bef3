package normalize

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/mahiyapatil/smart-financial-parser/internal/common"
	"github.com/mahiyapatil/smart-financial-parser/internal/model"
)

// FailureKind identifies which field could not be resolved.
type FailureKind string

const (
	// FailureDate means the date field was empty or unparseable.
	FailureDate FailureKind = "date"
	// FailureAmount means the amount field was empty or unparseable.
	FailureAmount FailureKind = "amount"
)

// Failure reports one excluded record: the row it came from, which field
// failed, and the offending raw value. Intended for a collaborator's audit
// log; raw internal error detail never leaves the pipeline.
type Failure struct {
	Row   int
	Kind  FailureKind
	Value string
}

// Result holds the outcome of normalizing one batch. Transactions keeps
// input order with failed records removed.
type Result struct {
	Transactions []*model.Transaction
	Failures     []Failure
}

// Config holds configuration options for the normalization pipeline.
type Config struct {
	Workers     int
	FuzzyCutoff float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Workers:     runtime.NumCPU(),
		FuzzyCutoff: DefaultFuzzyCutoff,
	}
}

// Pipeline orchestrates the four resolvers per record. Records are
// independent, so the batch fans out across a worker pool; the resolvers
// hold only immutable tables and need no synchronization.
type Pipeline struct {
	dates      *DateResolver
	amounts    *AmountResolver
	merchants  *MerchantResolver
	categories *CategoryInferencer
	workers    int
}

// NewPipeline creates a pipeline with default resolvers and configuration.
func NewPipeline() *Pipeline {
	return NewPipelineWithConfig(DefaultConfig())
}

// NewPipelineWithConfig creates a pipeline with custom configuration.
func NewPipelineWithConfig(cfg Config) *Pipeline {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	cutoff := cfg.FuzzyCutoff
	if cutoff <= 0 {
		cutoff = DefaultFuzzyCutoff
	}
	return &Pipeline{
		dates:      NewDateResolver(),
		amounts:    NewAmountResolver(),
		merchants:  NewMerchantResolverWithTable(DefaultMerchantMappings(), cutoff),
		categories: NewCategoryInferencer(),
		workers:    workers,
	}
}

// Normalize resolves every record in the batch. Per-record failures are
// local: a record that fails date or amount resolution is excluded and
// reported in Result.Failures, and the rest of the batch proceeds. The
// optional progress callback fires once per record from worker goroutines.
func (p *Pipeline) Normalize(ctx context.Context, records []model.RawRecord, progress func()) *Result {
	slots := make([]slot, len(records))
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				txn, failure := p.normalizeOne(records[i], i)
				slots[i] = slot{txn: txn, failure: failure}
				if progress != nil {
					progress()
				}
			}
		}()
	}

	for i := range records {
		select {
		case <-ctx.Done():
			close(indices)
			wg.Wait()
			return p.collect(slots[:i])
		case indices <- i:
		}
	}
	close(indices)
	wg.Wait()

	return p.collect(slots)
}

// slot is the order-preserving result cell for one input index.
type slot struct {
	txn     *model.Transaction
	failure *Failure
}

func (p *Pipeline) collect(slots []slot) *Result {
	result := &Result{}
	for _, s := range slots {
		if s.txn != nil {
			result.Transactions = append(result.Transactions, s.txn)
		}
		if s.failure != nil {
			result.Failures = append(result.Failures, *s.failure)
		}
	}
	return result
}

// normalizeOne resolves a single record. Row numbers are zero-based batch
// indices; the caller maps them back to source rows.
func (p *Pipeline) normalizeOne(rec model.RawRecord, row int) (*model.Transaction, *Failure) {
	date, err := p.dates.Resolve(rec.Date)
	if err != nil {
		p.logFailure("date unresolved", err, rec.Date, row)
		return nil, &Failure{Row: row, Kind: FailureDate, Value: rec.Date}
	}

	amount, err := p.amounts.Resolve(rec.Amount)
	if err != nil {
		p.logFailure("amount unresolved", err, rec.Amount, row)
		return nil, &Failure{Row: row, Kind: FailureAmount, Value: rec.Amount}
	}

	merchant := p.merchants.Resolve(rec.MerchantName)
	category := p.categories.Infer(merchant, rec.Category)

	return &model.Transaction{
		Date:               date,
		MerchantName:       rec.MerchantName,
		NormalizedMerchant: merchant,
		Amount:             amount.Value,
		Currency:           amount.Currency,
		Category:           category,
		IsRefund:           amount.IsNegative,
	}, nil
}

// Empty fields are expected noise and log as warnings; anything else failed
// an actual parse and logs as an error.
func (p *Pipeline) logFailure(msg string, err error, value string, row int) {
	if errors.Is(err, common.ErrEmptyValue) {
		common.LogWarn(msg, common.Fields{"row": row, "value": value})
		return
	}
	common.LogError(err, msg, common.Fields{"row": row, "value": value})
}
