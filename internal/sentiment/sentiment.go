// Package sentiment holds the single bucketing rule shared by news
// filtering, analytics summaries and chat context.
package sentiment

import (
	"fmt"
	"math"
	"strings"
)

type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

func Classify(score float64) Label {
	if score > positiveThreshold {
		return Positive
	}
	if score < negativeThreshold {
		return Negative
	}
	return Neutral
}

// Filter selects articles by bucket. The zero value and FilterAll match
// everything.
type Filter string

const FilterAll Filter = "all"

func ParseFilter(s string) (Filter, error) {
	switch v := Filter(strings.ToLower(strings.TrimSpace(s))); v {
	case "", FilterAll:
		return FilterAll, nil
	case Filter(Positive), Filter(Neutral), Filter(Negative):
		return v, nil
	default:
		return "", fmt.Errorf("unknown sentiment filter %q", s)
	}
}

func (f Filter) Matches(score float64) bool {
	if f == "" || f == FilterAll {
		return true
	}
	return Label(f) == Classify(score)
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Round3 rounds half away from zero to three decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
