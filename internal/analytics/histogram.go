package analytics

// Histogram is a label -> count mapping that remembers first-insertion
// order. Iteration order is the order labels were first added, which is
// what makes "most frequent" tie-breaks reproducible across runs.
type Histogram struct {
	keys   []string
	counts map[string]int
}

func NewHistogram() *Histogram {
	return &Histogram{counts: make(map[string]int)}
}

// Add increments the count for key by one.
func (h *Histogram) Add(key string) {
	h.AddN(key, 1)
}

// AddN increments the count for key by n, registering the key on first use.
func (h *Histogram) AddN(key string, n int) {
	if _, ok := h.counts[key]; !ok {
		h.keys = append(h.keys, key)
	}
	h.counts[key] += n
}

// Count returns the count for key, zero if the key was never added.
func (h *Histogram) Count(key string) int {
	return h.counts[key]
}

// Total returns the sum of all counts.
func (h *Histogram) Total() int {
	total := 0
	for _, c := range h.counts {
		total += c
	}
	return total
}

// Keys returns the labels in first-insertion order. The returned slice is
// shared; callers must not mutate it.
func (h *Histogram) Keys() []string {
	return h.keys
}

// Len returns the number of distinct labels.
func (h *Histogram) Len() int {
	return len(h.keys)
}

// ToMap returns a plain map copy of the histogram.
func (h *Histogram) ToMap() map[string]int {
	out := make(map[string]int, len(h.keys))
	for _, k := range h.keys {
		out[k] = h.counts[k]
	}
	return out
}
