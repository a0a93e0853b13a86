package hclust

import (
	"errors"
	"math"
	"testing"
)

func TestLinkageUpdate_HandComputed(t *testing.T) {
	// Merging x (size 2) and y (size 1) at distance dxy = 2, measured
	// against a cluster i of size 3 with dxi = 3 and dyi = 5.
	const (
		dxi, dyi, dxy = 3.0, 5.0, 2.0
		nx, ny, ni    = 2, 1, 3
	)
	tests := []struct {
		linkage Linkage
		want    float64
	}{
		{LinkageSingle, 3},
		{LinkageComplete, 5},
		// (2*3 + 1*5) / 3
		{LinkageAverage, 11.0 / 3},
		{LinkageWeighted, 4},
		// sqrt((2*9 + 1*25 - 2*1*4/3) / 3)
		{LinkageCentroid, math.Sqrt((43 - 8.0/3) / 3)},
		// sqrt(0.5*(9+25) - 0.25*4)
		{LinkageMedian, 4},
		// sqrt((5*9 + 4*25 - 3*4) / 6)
		{LinkageWard, math.Sqrt(133.0 / 6)},
	}
	for _, tc := range tests {
		got := tc.linkage.update(dxi, dyi, dxy, nx, ny, ni)
		if !almostEqual(got, tc.want, floatTol) {
			t.Errorf("%v: update = %v, want %v", tc.linkage, got, tc.want)
		}
	}
}

func TestLinkageUpdate_ClampsNegativeRadicand(t *testing.T) {
	// Median with dxi = dyi = 0 and dxy > 0 has a negative radicand.
	if got := LinkageMedian.update(0, 0, 1, 1, 1, 1); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestLinkageMonotonic(t *testing.T) {
	for l := range linkageNames {
		want := l != LinkageCentroid && l != LinkageMedian
		if l.Monotonic() != want {
			t.Errorf("%v.Monotonic() = %v, want %v", l, l.Monotonic(), want)
		}
	}
}

func TestParseLinkage(t *testing.T) {
	for l, name := range linkageNames {
		got, err := ParseLinkage(name)
		if err != nil || got != l {
			t.Errorf("ParseLinkage(%q) = %v, %v; want %v", name, got, err, l)
		}
	}
	if got, err := ParseLinkage("Ward"); err != nil || got != LinkageWard {
		t.Errorf("ParseLinkage(Ward) = %v, %v; want ward", got, err)
	}
	if _, err := ParseLinkage("flexible"); !errors.Is(err, ErrUnsupportedLinkage) {
		t.Errorf("expected ErrUnsupportedLinkage, got %v", err)
	}
}

func TestCentroidInversion(t *testing.T) {
	// Three mutually equidistant points. Merging any two places their
	// centroid sqrt(3)/2 from the third, below the first merge height.
	flat := []float64{
		0, 1, 1,
		1, 0, 1,
		1, 1, 0,
	}
	dm, err := NewDistanceMatrix(flat, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, linkage := range []Linkage{LinkageCentroid, LinkageMedian} {
		cfg := DefaultConfig()
		cfg.Linkage = linkage
		d, err := BuildDendrogram(dm, cfg)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", linkage, err)
		}
		if d.Merges[0].Left != 0 || d.Merges[0].Right != 1 || d.Merges[0].Distance != 1 {
			t.Errorf("%v: first merge = %+v, want (0,1) at 1", linkage, d.Merges[0])
		}
		if !almostEqual(d.Merges[1].Distance, math.Sqrt(3)/2, floatTol) {
			t.Errorf("%v: second merge at %v, want %v", linkage, d.Merges[1].Distance, math.Sqrt(3)/2)
		}
		if d.Monotonic() {
			t.Errorf("%v: expected an inversion to be preserved", linkage)
		}
	}
}
