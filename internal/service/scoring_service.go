package service

import "strings"

// ScoringService grades one submitted answer set against the correct set.
type ScoringService interface {
	// Grade returns whether the selection is correct and the awarded score.
	// Correct means exact set equality, case-insensitive and trimmed; no
	// partial credit for subsets or supersets. Awarded score is the full
	// points value or zero.
	Grade(selected, correct []string, points int) (bool, float64)
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

func (s *scoringService) Grade(selected, correct []string, points int) (bool, float64) {
	if !labelSetsEqual(selected, correct) {
		return false, 0
	}
	return true, float64(points)
}

func labelSetsEqual(a, b []string) bool {
	setA := labelSet(a)
	setB := labelSet(b)
	if len(setA) != len(setB) {
		return false
	}
	for label := range setA {
		if _, ok := setB[label]; !ok {
			return false
		}
	}
	return true
}

func labelSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if l = normalizeLabel(l); l != "" {
			set[l] = struct{}{}
		}
	}
	return set
}

func normalizeLabel(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

// joinLabels and splitLabels convert between the wire/API label slices and
// the comma-joined storage form.
func joinLabels(labels []string) string {
	trimmed := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			trimmed = append(trimmed, l)
		}
	}
	return strings.Join(trimmed, ",")
}

func splitLabels(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	var labels []string
	for _, l := range strings.Split(joined, ",") {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}
