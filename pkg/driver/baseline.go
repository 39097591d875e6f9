package driver

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// BaselineRecord is the stored outcome of a fixture from an earlier run.
type BaselineRecord struct {
	Fixture   string    `json:"fixture" boltholdKey:"Fixture"`
	Status    Status    `json:"status" boltholdIndex:"Status"`
	Result    string    `json:"result"`
	Error     string    `json:"error"`
	Stdout    []string  `json:"stdout"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Baseline persists fixture outcomes in a bolt database.
type Baseline struct {
	db *bolthold.Store
}

// OpenBaseline opens or creates the baseline database at path.
func OpenBaseline(path string) (*Baseline, error) {
	db, err := bolthold.Open(path, 0o644, &bolthold.Options{
		Encoder: json.Marshal,
		Decoder: json.Unmarshal,
		Options: &bbolt.Options{
			Timeout:      5 * time.Second,
			NoGrowSync:   bbolt.DefaultOptions.NoGrowSync,
			FreelistType: bbolt.DefaultOptions.FreelistType,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "baseline: open %s", path)
	}
	return &Baseline{db: db}, nil
}

func (b *Baseline) Close() error {
	return b.db.Close()
}

// Record stores outcomes, replacing earlier records of the same fixtures.
func (b *Baseline) Record(outcomes []*Outcome) error {
	now := time.Now()
	for _, o := range outcomes {
		record := &BaselineRecord{
			Fixture:   o.Fixture,
			Status:    o.Status,
			Result:    o.Result,
			Error:     o.Error,
			Stdout:    o.Stdout,
			UpdatedAt: now,
		}
		if err := b.db.Upsert(o.Fixture, record); err != nil {
			return errors.Wrapf(err, "baseline: record %s", o.Fixture)
		}
	}
	return nil
}

// Lookup returns the stored record for a fixture, or nil when there is none.
func (b *Baseline) Lookup(fixture string) (*BaselineRecord, error) {
	var record BaselineRecord
	if err := b.db.Get(fixture, &record); err != nil {
		if errors.Is(err, bolthold.ErrNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "baseline: lookup %s", fixture)
	}
	return &record, nil
}

// Passing lists the fixtures recorded as passing, sorted.
func (b *Baseline) Passing() ([]string, error) {
	var records []BaselineRecord
	if err := b.db.Find(&records, bolthold.Where("Status").Eq(StatusPass)); err != nil {
		return nil, errors.Wrap(err, "baseline: find passing")
	}
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Fixture)
	}
	sort.Strings(names)
	return names, nil
}

// Comparison classifies a run against the baseline.
type Comparison struct {
	// Regressions passed in the baseline and fail now.
	Regressions []string
	// Fixed failed in the baseline and pass now.
	Fixed []string
	// Unrecorded have no baseline entry.
	Unrecorded []string
}

func (b *Baseline) Compare(outcomes []*Outcome) (Comparison, error) {
	var cmp Comparison
	for _, o := range outcomes {
		record, err := b.Lookup(o.Fixture)
		if err != nil {
			return cmp, err
		}
		switch {
		case record == nil:
			cmp.Unrecorded = append(cmp.Unrecorded, o.Fixture)
		case record.Status == StatusPass && o.Status == StatusFail:
			cmp.Regressions = append(cmp.Regressions, o.Fixture)
		case record.Status == StatusFail && o.Status == StatusPass:
			cmp.Fixed = append(cmp.Fixed, o.Fixture)
		}
	}
	return cmp, nil
}
