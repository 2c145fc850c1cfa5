package stream

import "strings"

// Aggregator concatenates frame fragments in arrival order and republishes
// the accumulated text after every addition. Aggregation is append-only:
// fragments are never reordered or deduplicated.
type Aggregator struct {
	sb      strings.Builder
	publish func(accumulated string)
}

// NewAggregator creates an aggregator. publish may be nil; otherwise it is
// invoked with the full accumulated string after each non-empty fragment.
func NewAggregator(publish func(string)) *Aggregator {
	return &Aggregator{publish: publish}
}

// Add consumes a frame, ignoring frames that carry no text fragment.
func (a *Aggregator) Add(f *Frame) {
	delta := f.Delta()
	if delta == "" {
		return
	}
	a.sb.WriteString(delta)
	if a.publish != nil {
		a.publish(a.sb.String())
	}
}

// Content returns the text accumulated so far.
func (a *Aggregator) Content() string {
	return a.sb.String()
}
