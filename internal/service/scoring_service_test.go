package service

import (
	"reflect"
	"testing"
)

func TestGrade(t *testing.T) {
	svc := NewScoringService()

	cases := []struct {
		name     string
		selected []string
		correct  []string
		points   int
		wantOK   bool
		wantPts  float64
	}{
		{"exact match", []string{"A"}, []string{"A"}, 2, true, 2},
		{"multi label match", []string{"A", "C"}, []string{"C", "A"}, 3, true, 3},
		{"case and whitespace ignored", []string{" a ", "c"}, []string{"A", "C"}, 1, true, 1},
		{"subset is wrong", []string{"A"}, []string{"A", "C"}, 2, false, 0},
		{"superset is wrong", []string{"A", "B", "C"}, []string{"A", "C"}, 2, false, 0},
		{"disjoint is wrong", []string{"B"}, []string{"A"}, 5, false, 0},
		{"duplicate labels collapse", []string{"A", "a", "A"}, []string{"A"}, 4, true, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotOK, gotPts := svc.Grade(tc.selected, tc.correct, tc.points)
			if gotOK != tc.wantOK || gotPts != tc.wantPts {
				t.Fatalf("Grade(%v, %v, %d) = (%v, %v), want (%v, %v)",
					tc.selected, tc.correct, tc.points, gotOK, gotPts, tc.wantOK, tc.wantPts)
			}
		})
	}
}

func TestLabelRoundTrip(t *testing.T) {
	joined := joinLabels([]string{" A ", "", "C"})
	if joined != "A,C" {
		t.Fatalf("joinLabels = %q, want %q", joined, "A,C")
	}
	if got := splitLabels(joined); !reflect.DeepEqual(got, []string{"A", "C"}) {
		t.Fatalf("splitLabels(%q) = %v", joined, got)
	}
	if got := splitLabels("  "); got != nil {
		t.Fatalf("splitLabels of blank = %v, want nil", got)
	}
}
