package model

import "strings"

// Question is a multiple-choice question. IDs are dense: at any point the
// bank holds IDs 1..N with no gaps; deletions trigger a renumbering pass.
//
// Options holds one choice per line in "A. Some text" form; CorrectAnswers
// holds the winning labels comma-joined ("A,C"). Both match the storage
// format, so the same model round-trips through either backend unchanged.
type Question struct {
	ID             int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Text           string `gorm:"type:text;not null" json:"text"`
	Options        string `gorm:"type:text;not null" json:"options"`
	CorrectAnswers string `gorm:"not null" json:"correct_answers"`
	Points         int    `gorm:"not null" json:"points"`
}

// Option is a single parsed choice.
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// OptionList parses the raw Options block into labeled choices, skipping
// blank lines. A line without a '.' separator becomes a label-only option.
func (q Question) OptionList() []Option {
	var opts []Option
	for _, line := range strings.Split(q.Options, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		label, text := line, ""
		if idx := strings.Index(line, "."); idx >= 0 {
			label = strings.TrimSpace(line[:idx])
			text = strings.TrimSpace(line[idx+1:])
		}
		opts = append(opts, Option{Label: label, Text: text})
	}
	return opts
}

// Labels returns the option labels in declaration order.
func (q Question) Labels() []string {
	opts := q.OptionList()
	labels := make([]string, 0, len(opts))
	for _, o := range opts {
		labels = append(labels, o.Label)
	}
	return labels
}

// CorrectLabels splits the comma-joined correct answers, trimmed, keeping
// order. An empty CorrectAnswers yields nil.
func (q Question) CorrectLabels() []string {
	if strings.TrimSpace(q.CorrectAnswers) == "" {
		return nil
	}
	var labels []string
	for _, l := range strings.Split(q.CorrectAnswers, ",") {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}
