package analytics

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SatishBanchhere/abc-classes-sub002/internal/models"
)

// NameIndex resolves subject/topic ids to display names. Questions whose
// ids resolve to nothing are simply not counted in the name sets, which is
// how dangling references fall out of scoped rollups.
type NameIndex struct {
	subjects map[string]string
	topics   map[string]string
}

func NewNameIndex(subjects []*models.Subject, topics []*models.Topic) *NameIndex {
	ix := &NameIndex{
		subjects: make(map[string]string, len(subjects)),
		topics:   make(map[string]string, len(topics)),
	}
	for _, s := range subjects {
		ix.subjects[s.ID] = s.Name
	}
	for _, t := range topics {
		ix.topics[t.ID] = t.Name
	}
	return ix
}

func (ix *NameIndex) SubjectName(id string) (string, bool) {
	name, ok := ix.subjects[id]
	return name, ok
}

func (ix *NameIndex) TopicName(id string) (string, bool) {
	name, ok := ix.topics[id]
	return name, ok
}

// FoldOptions tunes what a fold accumulates beyond plain counts.
type FoldOptions struct {
	// Names enables distinct subject/topic name tracking.
	Names *NameIndex
	// PreviewLimit, when positive, captures a truncated description
	// preview of at most that many characters per observed question.
	PreviewLimit int
	// MaxPreviews caps captured previews per bucket; zero means no cap.
	MaxPreviews int
}

// Bucket is the accumulator for one grouping key. All fields are filled in
// a single pass; derived metrics are computed afterwards by the calculators.
type Bucket struct {
	Count int

	Difficulty   *Histogram
	Types        *Histogram
	Dates        *Histogram
	SubjectNames *Histogram
	TopicNames   *Histogram

	DescLenSum int
	DescLenMin int
	DescLenMax int

	WithOptions   int
	WithSolutions int

	LastCreated time.Time
	Previews    []string
}

// NewBucket returns an empty accumulator, also usable standalone for
// dimension-agnostic totals.
func NewBucket() *Bucket {
	return &Bucket{
		Difficulty:   NewHistogram(),
		Types:        NewHistogram(),
		Dates:        NewHistogram(),
		SubjectNames: NewHistogram(),
		TopicNames:   NewHistogram(),
	}
}

// Observe folds one question into the bucket.
func (b *Bucket) Observe(q *models.Question, opts FoldOptions) {
	b.Count++

	b.Difficulty.Add(string(q.Difficulty.Normalize()))

	qType := q.QuestionType
	if qType == "" {
		qType = "unknown"
	}
	b.Types.Add(qType)

	if !q.CreatedAt.IsZero() {
		b.Dates.Add(DateKey(q.CreatedAt))
		if q.CreatedAt.After(b.LastCreated) {
			b.LastCreated = q.CreatedAt
		}
	}

	if opts.Names != nil {
		if name, ok := opts.Names.SubjectName(q.SubjectID); ok {
			b.SubjectNames.Add(name)
		}
		if name, ok := opts.Names.TopicName(q.TopicID); ok {
			b.TopicNames.Add(name)
		}
	}

	length := utf8.RuneCountInString(q.Description)
	b.DescLenSum += length
	if b.Count == 1 || length < b.DescLenMin {
		b.DescLenMin = length
	}
	if length > b.DescLenMax {
		b.DescLenMax = length
	}

	if q.HasOptions() {
		b.WithOptions++
	}
	if q.HasSolution() {
		b.WithSolutions++
	}

	if opts.PreviewLimit > 0 {
		if opts.MaxPreviews == 0 || len(b.Previews) < opts.MaxPreviews {
			b.Previews = append(b.Previews, Preview(q.Description, opts.PreviewLimit))
		}
	}
}

// KeyFunc computes the grouping key for a question. Returning ok=false
// excludes the question from this grouping (e.g. a record without a
// createdAt has no date key) without affecting other folds.
type KeyFunc func(q *models.Question) (string, bool)

// Rollup holds the buckets of one fold, keyed by composite strings.
// Bucket order follows first encounter in the input, so identical input
// snapshots produce identical output ordering.
type Rollup struct {
	keys    []string
	buckets map[string]*Bucket
}

// Fold groups questions into buckets in a single linear pass.
func Fold(questions []*models.Question, key KeyFunc, opts FoldOptions) *Rollup {
	r := &Rollup{buckets: make(map[string]*Bucket)}
	for _, q := range questions {
		k, ok := key(q)
		if !ok {
			continue
		}
		b, exists := r.buckets[k]
		if !exists {
			b = NewBucket()
			r.buckets[k] = b
			r.keys = append(r.keys, k)
		}
		b.Observe(q, opts)
	}
	return r
}

// Accumulate folds every question into a single dimension-agnostic bucket.
func Accumulate(questions []*models.Question, opts FoldOptions) *Bucket {
	b := NewBucket()
	for _, q := range questions {
		b.Observe(q, opts)
	}
	return b
}

// Keys returns bucket keys in first-encounter order.
func (r *Rollup) Keys() []string {
	return r.keys
}

// Bucket returns the accumulator for key.
func (r *Rollup) Bucket(key string) (*Bucket, bool) {
	b, ok := r.buckets[key]
	return b, ok
}

// Len returns the number of buckets.
func (r *Rollup) Len() int {
	return len(r.keys)
}

const (
	keySep    = '|'
	keyEscape = '\\'
)

// CompositeKey joins dimension values into a stable, case-sensitive key.
// Separator and escape characters inside a value are escaped, so a name
// containing "|" cannot alias another key or shift later dimensions.
func CompositeKey(parts ...string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteByte(keySep)
		}
		for _, r := range part {
			if r == keySep || r == keyEscape {
				b.WriteByte(keyEscape)
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SplitKey splits a composite key back into its dimension values,
// undoing CompositeKey's escaping.
func SplitKey(key string) []string {
	parts := make([]string, 0, 4)
	var b strings.Builder
	escaped := false
	for _, r := range key {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == keyEscape:
			escaped = true
		case r == keySep:
			parts = append(parts, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	parts = append(parts, b.String())
	return parts
}

// DateKey formats a timestamp as an ISO calendar date.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// HourKey formats the hour-of-day as a zero-padded label.
func HourKey(t time.Time) string {
	return t.Format("15")
}

// WeekKey formats a year + zero-padded ISO week label, e.g. "2026-W07".
// Dates near January 1st may land in the neighboring ISO year; this
// approximate grouping is kept so historical report values stay stable.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
