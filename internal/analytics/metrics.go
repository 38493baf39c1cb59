package analytics

import (
	"math"
	"unicode/utf8"

	"github.com/SatishBanchhere/abc-classes-sub002/internal/models"
)

// DistributionEntry is one slice of a percentage distribution.
type DistributionEntry struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PercentageDistribution converts a histogram into labeled percentage
// entries relative to the histogram's own total. Percentages are rounded
// to one decimal; an empty histogram yields an empty slice.
func PercentageDistribution(h *Histogram) []DistributionEntry {
	total := h.Total()
	if total == 0 {
		return []DistributionEntry{}
	}
	entries := make([]DistributionEntry, 0, h.Len())
	for _, key := range h.Keys() {
		count := h.Count(key)
		entries = append(entries, DistributionEntry{
			Label:      key,
			Count:      count,
			Percentage: Round1(float64(count) / float64(total) * 100),
		})
	}
	return entries
}

// AverageDifficultyScore returns the weighted mean difficulty of a
// difficulty histogram (Easy=1, Medium=2, Hard=3, anything else 2),
// rounded to two decimals. An empty histogram scores zero.
func AverageDifficultyScore(h *Histogram) float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	sum := 0
	for _, key := range h.Keys() {
		sum += h.Count(key) * models.DifficultyLevel(key).Score()
	}
	return Round2(float64(sum) / float64(total))
}

// PresenceRate returns flagged/total as a percentage rounded to one
// decimal, zero when total is zero.
func PresenceRate(flagged, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round1(float64(flagged) / float64(total) * 100)
}

// LengthStats summarizes description lengths for a bucket.
type LengthStats struct {
	Avg int `json:"avg"`
	Min int `json:"min"`
	Max int `json:"max"`
}

// LengthStatsOf derives average/min/max description length from a bucket.
// The average is rounded to the nearest integer; min/max are exact.
func LengthStatsOf(b *Bucket) LengthStats {
	if b.Count == 0 {
		return LengthStats{}
	}
	return LengthStats{
		Avg: int(math.Round(float64(b.DescLenSum) / float64(b.Count))),
		Min: b.DescLenMin,
		Max: b.DescLenMax,
	}
}

// PeakBucket returns the label with the highest count. Ties go to the
// label first added to the histogram, so repeated runs over the same
// snapshot return the same peak. ok is false for an empty histogram.
func PeakBucket(h *Histogram) (label string, ok bool) {
	best := -1
	for _, key := range h.Keys() {
		if c := h.Count(key); c > best {
			best = c
			label = key
			ok = true
		}
	}
	return label, ok
}

// Preview truncates s to at most limit characters, appending "..." when
// anything was cut off.
func Preview(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
