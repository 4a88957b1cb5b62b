package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lshigami/Stonechat/internal/model"
	"github.com/lshigami/Stonechat/internal/repository"
)

// Format selects the document renderer.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "xlsx", "excel":
		return FormatXLSX, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// TableData is the renderer input: ordered columns, ordered rows, already
// stringified.
type TableData struct {
	Columns []string
	Rows    [][]string
}

// Document is a rendered, downloadable report.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders result sets into downloadable documents: a styled
// workbook or a paginated PDF report, both highlighting correct/incorrect
// rows.
type ExportService interface {
	// ParticipantResults exports the participant's latest-answer snapshot.
	ParticipantResults(ctx context.Context, email string, format Format) (*Document, error)
	// ParticipantLedger exports a participant's full submission history.
	ParticipantLedger(ctx context.Context, email string, format Format) (*Document, error)
	// Statistics exports the aggregate per-participant summary table.
	Statistics(ctx context.Context, format Format) (*Document, error)
}

type exportService struct {
	responses repository.ResponseRepository
	stats     StatsService
}

func NewExportService(responses repository.ResponseRepository, stats StatsService) ExportService {
	return &exportService{responses: responses, stats: stats}
}

func (s *exportService) ParticipantResults(ctx context.Context, email string, format Format) (*Document, error) {
	state, err := s.responses.State(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(state.Answers) == 0 {
		return nil, ErrNoExportData
	}
	data := TableData{Columns: []string{"timestamp", "question id", "selected answers", "is correct", "score"}}
	sorted := append([]model.ParticipantAnswer(nil), state.Answers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].QuestionID < sorted[j].QuestionID })
	for _, a := range sorted {
		data.Rows = append(data.Rows, []string{
			a.Timestamp, strconv.Itoa(a.QuestionID), a.Selected,
			formatCorrect(a.IsCorrect), formatNumber(a.Score),
		})
	}
	return s.render(data, format, "Quiz Results Report", email, resultFilename(email))
}

func (s *exportService) ParticipantLedger(ctx context.Context, email string, format Format) (*Document, error) {
	records, err := s.responses.FindRecordsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoExportData
	}
	data := TableData{Columns: []string{"email", "question id", "selected answers", "is correct", "score", "timestamp", "edit no"}}
	for _, rec := range records {
		data.Rows = append(data.Rows, []string{
			rec.Email, strconv.Itoa(rec.QuestionID), rec.Selected,
			formatCorrect(rec.IsCorrect), formatNumber(rec.Score),
			rec.Timestamp, strconv.Itoa(rec.EditNo),
		})
	}
	return s.render(data, format, "Participant Results Report", email, resultFilename(email))
}

func (s *exportService) Statistics(ctx context.Context, format Format) (*Document, error) {
	stats, err := s.stats.Aggregate(ctx)
	if err != nil {
		return nil, err
	}
	data := TableData{Columns: []string{"email", "answered", "correct", "unanswered", "total score", "accuracy %"}}
	for _, row := range stats.Rows {
		data.Rows = append(data.Rows, []string{
			row.Email, strconv.Itoa(row.Answered), strconv.Itoa(row.Correct),
			strconv.Itoa(row.Unanswered), formatNumber(row.TotalScore),
			formatNumber(row.AccuracyPct),
		})
	}
	return s.render(data, format, "Participant Statistics Report", "", "participant_statistics")
}

func (s *exportService) render(data TableData, format Format, title, email, basename string) (*Document, error) {
	switch format {
	case FormatPDF:
		payload, err := renderPDF(data, title, email)
		if err != nil {
			return nil, err
		}
		return &Document{
			Filename:    basename + ".pdf",
			ContentType: "application/pdf",
			Data:        payload,
		}, nil
	default:
		payload, err := renderWorkbook(data, "Results")
		if err != nil {
			return nil, err
		}
		return &Document{
			Filename:    basename + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        payload,
		}, nil
	}
}

// resultFilename derives the participant filename from the email local part.
func resultFilename(email string) string {
	local := email
	if idx := strings.Index(email, "@"); idx >= 0 {
		local = email[:idx]
	}
	return "results_" + local
}

func formatCorrect(ok bool) string {
	if ok {
		return "True"
	}
	return "False"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
