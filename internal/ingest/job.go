package ingest

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RecordResult reports one skipped input record.
type RecordResult struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Summary is the terminal report of one batch run.
type Summary struct {
	Inserted int            `json:"inserted"`
	Skipped  int            `json:"skipped"`
	Skips    []RecordResult `json:"skips,omitempty"`
}

// Job loads validated recipe records into the store.
type Job struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewJob(db *gorm.DB, log *zap.Logger) *Job {
	return &Job{db: db, log: log}
}

// Run validates and inserts each record in input order. A failed record —
// whether it fails validation or the insert itself — is counted, logged and
// skipped; the batch always continues and prior inserts are never rolled
// back. Re-running the same input re-inserts duplicates: there is no dedup
// key.
func (j *Job) Run(ctx context.Context, records []map[string]interface{}) *Summary {
	summary := &Summary{}

	for i, raw := range records {
		rec, err := ValidateRecord(raw)
		if err != nil {
			j.skip(summary, i, err)
			continue
		}

		if err := j.db.WithContext(ctx).Create(rec).Error; err != nil {
			j.skip(summary, i, err)
			continue
		}

		summary.Inserted++
	}

	return summary
}

func (j *Job) skip(summary *Summary, index int, err error) {
	summary.Skipped++
	summary.Skips = append(summary.Skips, RecordResult{Index: index, Reason: err.Error()})
	j.log.Warn("skipping invalid recipe record",
		zap.Int("index", index),
		zap.Error(err),
	)
}
