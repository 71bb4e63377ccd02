// Package summary implements the pure financial summarization algorithms:
// category bucketing with an "Other" rollup, goal/budget progress arithmetic,
// and recurring-charge frequency/urgency classification. Everything here is
// a pure function over already-fetched data; no I/O, no clocks except those
// passed in.
package summary

import (
	"math"
	"sort"
)

// minorShareThreshold is the share below which a category is rolled into
// the synthetic "Other" bucket.
const minorShareThreshold = 0.10

// OtherBucketName is the name of the synthetic rollup bucket.
const OtherBucketName = "Other"

// BucketedCategory is a named spend amount inside a bucketed breakdown.
type BucketedCategory struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Buckets is the result of bucketing a category-spend map.
// Major holds categories with share >= 10% plus the aggregate "Other"
// bucket; Minor holds the individual categories behind "Other", sorted
// descending, for drill-in.
type Buckets struct {
	Major []BucketedCategory `json:"major"`
	Minor []BucketedCategory `json:"minor"`
}

// Total returns the grand total across all major buckets. Because the
// rollup is lossless this equals the sum of the input spend map.
func (b Buckets) Total() float64 {
	var total float64
	for _, c := range b.Major {
		total += c.Value
	}
	return total
}

// OtherTotal returns the aggregate value of the "Other" bucket, 0 if absent.
func (b Buckets) OtherTotal() float64 {
	var total float64
	for _, c := range b.Minor {
		total += c.Value
	}
	return total
}

// Bucket groups a category->amount map into major buckets and an "Other"
// rollup. Categories whose share of the total is >= 10% pass through
// verbatim; the rest aggregate into a single "Other" entry and are retained
// individually in Minor. "Other" exists iff at least one category fell
// under the threshold, and it competes in the descending sort by its
// aggregate value. A zero total yields empty buckets.
func Bucket(spend map[string]float64) Buckets {
	var total float64
	for _, v := range spend {
		total += v
	}
	if total == 0 {
		return Buckets{}
	}

	var major, minor []BucketedCategory
	var otherTotal float64
	for name, value := range spend {
		if value/total >= minorShareThreshold {
			major = append(major, BucketedCategory{Name: name, Value: value})
		} else {
			minor = append(minor, BucketedCategory{Name: name, Value: value})
			otherTotal += value
		}
	}

	if len(minor) > 0 {
		major = append(major, BucketedCategory{Name: OtherBucketName, Value: otherTotal})
	}

	sortDescending(major)
	sortDescending(minor)

	return Buckets{Major: major, Minor: minor}
}

func sortDescending(cats []BucketedCategory) {
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].Value != cats[j].Value {
			return cats[i].Value > cats[j].Value
		}
		return cats[i].Name < cats[j].Name // deterministic order for equal values
	})
}

// DrillEntry is one minor category in the expanded "Other" view, with its
// share of the "Other" subtotal and of the grand total. Percentages are
// rounded to one decimal here, at presentation time; the underlying
// amounts stay exact.
type DrillEntry struct {
	Name           string  `json:"name"`
	Value          float64 `json:"value"`
	PercentOfOther float64 `json:"percent_of_other"`
	PercentOfTotal float64 `json:"percent_of_total"`
}

// DrillIn expands the "Other" bucket into its individual categories.
// Returns nil when there is nothing rolled up.
func DrillIn(b Buckets) []DrillEntry {
	if len(b.Minor) == 0 {
		return nil
	}
	grandTotal := b.Total()
	otherTotal := b.OtherTotal()

	entries := make([]DrillEntry, 0, len(b.Minor))
	for _, c := range b.Minor {
		e := DrillEntry{Name: c.Name, Value: c.Value}
		if otherTotal > 0 {
			e.PercentOfOther = roundOneDecimal(c.Value / otherTotal * 100)
		}
		if grandTotal > 0 {
			e.PercentOfTotal = roundOneDecimal(c.Value / grandTotal * 100)
		}
		entries = append(entries, e)
	}
	return entries
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
