package summary_test

import (
	"math"
	"testing"

	"github.com/mlehnert/pf-dashboard-bff-go/internal/summary"
)

const tolerance = 1e-9

func sumValues(cats []summary.BucketedCategory) float64 {
	var total float64
	for _, c := range cats {
		total += c.Value
	}
	return total
}

func TestBucket_MixedMajorAndMinor(t *testing.T) {
	spend := map[string]float64{
		"grocery":    500,
		"restaurant": 300,
		"utilities":  100, // exactly 10% -> major
		"shopping":   80,
		"fitness":    20,
	}

	b := summary.Bucket(spend)

	// grocery, restaurant and utilities clear the threshold; shopping and
	// fitness roll into Other (100).
	want := []summary.BucketedCategory{
		{Name: "grocery", Value: 500},
		{Name: "restaurant", Value: 300},
		{Name: "utilities", Value: 100},
		{Name: "Other", Value: 100},
	}
	if len(b.Major) != len(want) {
		t.Fatalf("expected %d major buckets, got %d: %+v", len(want), len(b.Major), b.Major)
	}
	for i, w := range want {
		if b.Major[i].Name != w.Name || math.Abs(b.Major[i].Value-w.Value) > tolerance {
			t.Errorf("major[%d]: expected %+v, got %+v", i, w, b.Major[i])
		}
	}

	if len(b.Minor) != 2 {
		t.Fatalf("expected 2 minor categories, got %d", len(b.Minor))
	}
	if b.Minor[0].Name != "shopping" || b.Minor[1].Name != "fitness" {
		t.Errorf("expected minor sorted descending [shopping fitness], got %+v", b.Minor)
	}
}

func TestBucket_SpecScenario(t *testing.T) {
	// spend totalling 1000: grocery 50%, restaurant 30%, rest under 10%.
	spend := map[string]float64{
		"grocery":    500,
		"restaurant": 300,
		"utilities":  90,
		"shopping":   80,
		"fitness":    30,
	}

	b := summary.Bucket(spend)

	if len(b.Major) != 3 {
		t.Fatalf("expected 3 major buckets, got %d: %+v", len(b.Major), b.Major)
	}
	if b.Major[0].Name != "grocery" || b.Major[1].Name != "restaurant" || b.Major[2].Name != "Other" {
		t.Errorf("unexpected major order: %+v", b.Major)
	}
	if math.Abs(b.Major[2].Value-200) > tolerance {
		t.Errorf("expected Other = 200, got %f", b.Major[2].Value)
	}
	if len(b.Minor) != 3 || b.Minor[0].Name != "utilities" || b.Minor[1].Name != "shopping" || b.Minor[2].Name != "fitness" {
		t.Errorf("expected minor [utilities shopping fitness], got %+v", b.Minor)
	}
}

func TestBucket_Lossless(t *testing.T) {
	cases := []map[string]float64{
		{"a": 100},
		{"a": 1, "b": 2, "c": 3, "d": 4},
		{"rent": 1200.55, "coffee": 3.45, "grocery": 250.10, "subs": 14.99},
		{"x": 0.1, "y": 0.2, "z": 99.7},
	}
	for _, spend := range cases {
		var total float64
		for _, v := range spend {
			total += v
		}
		b := summary.Bucket(spend)
		if math.Abs(sumValues(b.Major)-total) > 1e-6 {
			t.Errorf("bucketing lost value for %v: major sum %f, spend sum %f",
				spend, sumValues(b.Major), total)
		}
	}
}

func TestBucket_ZeroTotal(t *testing.T) {
	b := summary.Bucket(map[string]float64{})
	if len(b.Major) != 0 || len(b.Minor) != 0 {
		t.Errorf("expected empty buckets for empty spend, got %+v", b)
	}

	b = summary.Bucket(map[string]float64{"a": 0, "b": 0})
	if len(b.Major) != 0 || len(b.Minor) != 0 {
		t.Errorf("expected empty buckets for zero-valued spend, got %+v", b)
	}
}

func TestBucket_SingleCategory(t *testing.T) {
	b := summary.Bucket(map[string]float64{"rent": 800})
	if len(b.Major) != 1 || b.Major[0].Name != "rent" {
		t.Fatalf("expected single major bucket, got %+v", b.Major)
	}
	if len(b.Minor) != 0 {
		t.Errorf("expected no Other bucket for a single category, got %+v", b.Minor)
	}
}

func TestBucket_AllMinor(t *testing.T) {
	// 20 categories at 5% each: everything rolls into a single Other bucket.
	spend := make(map[string]float64, 20)
	for _, name := range []string{
		"a", "b", "c", "d", "e", "f", "g", "h", "i", "j",
		"k", "l", "m", "n", "o", "p", "q", "r", "s", "t",
	} {
		spend[name] = 5
	}

	b := summary.Bucket(spend)
	if len(b.Major) != 1 || b.Major[0].Name != "Other" {
		t.Fatalf("expected a single Other major bucket, got %+v", b.Major)
	}
	if math.Abs(b.Major[0].Value-100) > tolerance {
		t.Errorf("expected Other to hold 100%% of spend (100), got %f", b.Major[0].Value)
	}
	if len(b.Minor) != 20 {
		t.Errorf("expected all 20 categories in minor, got %d", len(b.Minor))
	}
}

func TestDrillIn_Percentages(t *testing.T) {
	spend := map[string]float64{
		"grocery":    500,
		"restaurant": 300,
		"utilities":  90,
		"shopping":   80,
		"fitness":    30,
	}

	entries := summary.DrillIn(summary.Bucket(spend))
	if len(entries) != 3 {
		t.Fatalf("expected 3 drill entries, got %d", len(entries))
	}

	// utilities: 90/200 = 45% of Other, 90/1000 = 9% of total.
	if entries[0].Name != "utilities" {
		t.Fatalf("expected utilities first, got %s", entries[0].Name)
	}
	if entries[0].PercentOfOther != 45.0 {
		t.Errorf("expected 45.0%% of Other, got %f", entries[0].PercentOfOther)
	}
	if entries[0].PercentOfTotal != 9.0 {
		t.Errorf("expected 9.0%% of total, got %f", entries[0].PercentOfTotal)
	}

	// fitness: 30/200 = 15%, 30/1000 = 3%.
	if entries[2].PercentOfOther != 15.0 || entries[2].PercentOfTotal != 3.0 {
		t.Errorf("unexpected fitness percentages: %+v", entries[2])
	}
}

func TestDrillIn_RoundsToOneDecimal(t *testing.T) {
	spend := map[string]float64{
		"big": 900,
		"a":   33,
		"b":   33,
		"c":   34,
	}
	entries := summary.DrillIn(summary.Bucket(spend))
	// a: 33/100 = 33% of Other, 33/1000 = 3.3% of total.
	for _, e := range entries {
		if e.PercentOfOther != math.Round(e.PercentOfOther*10)/10 {
			t.Errorf("percent_of_other not rounded to one decimal: %f", e.PercentOfOther)
		}
		if e.PercentOfTotal != math.Round(e.PercentOfTotal*10)/10 {
			t.Errorf("percent_of_total not rounded to one decimal: %f", e.PercentOfTotal)
		}
	}
}

func TestDrillIn_NoMinor(t *testing.T) {
	if entries := summary.DrillIn(summary.Bucket(map[string]float64{"rent": 800})); entries != nil {
		t.Errorf("expected nil drill entries without an Other bucket, got %+v", entries)
	}
}
