// Package transient detects expired cache entries that were never purged.
//
// A transient lives as two correlated rows: a value row and a timeout row
// whose stored value is the expiry epoch. An entry is expired when that
// epoch is positive (zero means "never expires") and strictly in the past.
// Expired entries linger because the platform only deletes them lazily on
// the next read, so a table can carry megabytes of dead cache.
package transient

import (
	"context"
	"fmt"
	"time"

	"github.com/TABARC-Code/wp-options-table-auditor/internal/options"
)

// Querier is the slice of the row store the scanner needs.
type Querier interface {
	ExpiredTransients(ctx context.Context, family options.Family, now time.Time, limit int) ([]options.TransientPair, error)
	CountExpiredTransients(ctx context.Context, family options.Family, now time.Time) (int64, error)
}

// Expired is one expired pair as reported, with a human-readable rendering
// of the expiry epoch alongside the raw value.
type Expired struct {
	TimeoutName  string `json:"timeout_name"`
	ValueName    string `json:"value_name,omitempty"`
	ExpiresEpoch int64  `json:"expires_epoch"`
	ExpiredAtUTC string `json:"expired_at_utc"`
	SizeBytes    int64  `json:"size_bytes"`
}

// FamilyReport holds the scan outcome for one naming family. ExpiredCount
// is exact; Sample is bounded by the scan limit and ordered
// soonest-expired first.
type FamilyReport struct {
	Family       string    `json:"family"`
	ExpiredCount int64     `json:"expired_count"`
	Sample       []Expired `json:"sample"`
}

// Report covers both families.
type Report struct {
	Plain   FamilyReport `json:"plain"`
	Network FamilyReport `json:"network"`
}

// TotalExpired returns the combined exact expired count.
func (r Report) TotalExpired() int64 {
	return r.Plain.ExpiredCount + r.Network.ExpiredCount
}

// Scan runs the expiry detection for both families against q, using now as
// the expiry cutoff. limit bounds each family's sample independently.
func Scan(ctx context.Context, q Querier, now time.Time, limit int) (Report, error) {
	var report Report
	for _, family := range options.Families() {
		fr, err := scanFamily(ctx, q, family, now, limit)
		if err != nil {
			return Report{}, err
		}
		if family == options.FamilyNetwork {
			report.Network = fr
		} else {
			report.Plain = fr
		}
	}
	return report, nil
}

func scanFamily(ctx context.Context, q Querier, family options.Family, now time.Time, limit int) (FamilyReport, error) {
	count, err := q.CountExpiredTransients(ctx, family, now)
	if err != nil {
		return FamilyReport{}, fmt.Errorf("count expired %s transients: %w", family, err)
	}

	pairs, err := q.ExpiredTransients(ctx, family, now, limit)
	if err != nil {
		return FamilyReport{}, fmt.Errorf("sample expired %s transients: %w", family, err)
	}

	sample := make([]Expired, 0, len(pairs))
	for _, p := range pairs {
		sample = append(sample, Expired{
			TimeoutName:  p.TimeoutName,
			ValueName:    p.ValueName,
			ExpiresEpoch: p.ExpiresEpoch,
			ExpiredAtUTC: time.Unix(p.ExpiresEpoch, 0).UTC().Format(time.RFC3339),
			SizeBytes:    p.SizeBytes,
		})
	}

	return FamilyReport{
		Family:       family.String(),
		ExpiredCount: count,
		Sample:       sample,
	}, nil
}
