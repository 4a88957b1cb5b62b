package service

import (
	"context"
	"math"
	"sort"

	"github.com/lshigami/Stonechat/internal/dto"
	"github.com/lshigami/Stonechat/internal/model"
	"github.com/lshigami/Stonechat/internal/repository"
)

// StatsService derives per-participant summaries from the ledger. The ledger
// carries full edit history, so aggregation dedupes by question, keeping only
// each participant's highest edit round per question (latest wins).
type StatsService interface {
	Aggregate(ctx context.Context) (*dto.StatsResponse, error)
}

type statsService struct {
	bank      QuestionBankService
	responses repository.ResponseRepository
}

func NewStatsService(bank QuestionBankService, responses repository.ResponseRepository) StatsService {
	return &statsService{bank: bank, responses: responses}
}

func (s *statsService) Aggregate(ctx context.Context) (*dto.StatsResponse, error) {
	questions, err := s.bank.LoadOrdered(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.responses.FindAllRecords(ctx)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]map[int]model.ResponseRecord)
	for _, rec := range records {
		perQuestion, ok := latest[rec.Email]
		if !ok {
			perQuestion = make(map[int]model.ResponseRecord)
			latest[rec.Email] = perQuestion
		}
		if prev, ok := perQuestion[rec.QuestionID]; !ok || rec.EditNo >= prev.EditNo {
			perQuestion[rec.QuestionID] = rec
		}
	}

	total := len(questions)
	rows := make([]dto.ParticipantStatsRow, 0, len(latest))
	for email, perQuestion := range latest {
		row := dto.ParticipantStatsRow{Email: email, Answered: len(perQuestion)}
		for _, rec := range perQuestion {
			if rec.IsCorrect {
				row.Correct++
			}
			row.TotalScore += rec.Score
		}
		row.Unanswered = total - row.Answered
		if row.Answered > 0 {
			row.AccuracyPct = round1(float64(row.Correct) / float64(row.Answered) * 100)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Email < rows[j].Email })

	return &dto.StatsResponse{TotalQuestions: total, Rows: rows}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
