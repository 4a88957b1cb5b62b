package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lshigami/Stonechat/internal/dto"
	"github.com/lshigami/Stonechat/internal/model"
	"github.com/lshigami/Stonechat/internal/repository"
	"github.com/rs/zerolog/log"
)

// SubmissionService runs the per-participant submission state machine: each
// participant gets model.MaxEditRounds submission rounds, each round may
// answer or re-answer any subset of questions, and round number
// EditCount+1 tags every ledger record written during it.
type SubmissionService interface {
	// QuizView assembles the question set for taking the quiz, with the
	// participant's previous selections and remaining rounds.
	QuizView(ctx context.Context, email string) (*dto.QuizView, error)
	// SubmitRound grades and records one edit round. Rejected wholesale
	// with ErrEditLimitReached once the round budget is spent.
	SubmitRound(ctx context.Context, email string, req dto.SubmissionRequest) (*dto.SubmissionResult, error)
	// Results returns the participant's latest-answer history, orphaned
	// entries included, with summary metrics.
	Results(ctx context.Context, email string) (*dto.ParticipantResults, error)
}

type submissionService struct {
	bank      QuestionBankService
	responses repository.ResponseRepository
	scoring   ScoringService
	now       func() time.Time
}

func NewSubmissionService(bank QuestionBankService, responses repository.ResponseRepository, scoring ScoringService) SubmissionService {
	return &submissionService{bank: bank, responses: responses, scoring: scoring, now: time.Now}
}

func (s *submissionService) QuizView(ctx context.Context, email string) (*dto.QuizView, error) {
	questions, err := s.bank.LoadOrdered(ctx)
	if err != nil {
		return nil, err
	}
	state, err := s.responses.State(ctx, email)
	if err != nil {
		return nil, err
	}

	view := &dto.QuizView{
		TotalQuestions:  len(questions),
		RemainingRounds: state.RemainingRounds(),
		Questions:       make([]dto.QuizQuestion, 0, len(questions)),
	}
	for _, q := range questions {
		quizQ := dto.QuizQuestion{ID: q.ID, Text: q.Text, Points: q.Points}
		for _, opt := range q.OptionList() {
			quizQ.Options = append(quizQ.Options, dto.OptionResponse{Label: opt.Label, Text: opt.Text})
		}
		if prev, ok := state.AnswerFor(q.ID); ok {
			quizQ.PreviousSelection = splitLabels(prev.Selected)
		}
		view.Questions = append(view.Questions, quizQ)
	}
	return view, nil
}

func (s *submissionService) SubmitRound(ctx context.Context, email string, req dto.SubmissionRequest) (*dto.SubmissionResult, error) {
	state, err := s.responses.State(ctx, email)
	if err != nil {
		return nil, err
	}
	if state.EditCount >= model.MaxEditRounds {
		return nil, ErrEditLimitReached
	}

	questions, err := s.bank.LoadOrdered(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[int]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}
	}
	selectedByID := make(map[int][]string, len(req.Answers))
	for _, answer := range req.Answers {
		if _, ok := known[answer.QuestionID]; !ok {
			log.Warn().Int("question_id", answer.QuestionID).Str("email", email).
				Msg("SubmitRound: answer for unknown question, skipping")
			continue
		}
		selectedByID[answer.QuestionID] = answer.Selected
	}

	round := state.EditCount + 1
	timestamp := s.now().Format(model.TimestampLayout)
	result := &dto.SubmissionResult{RoundNumber: round}

	// Records are written in question order, one ledger append plus one
	// state upsert per answered question. There is no rollback: a failure
	// mid-round leaves the earlier writes committed.
	for _, q := range questions {
		selected := splitLabels(joinLabels(selectedByID[q.ID]))
		if len(selected) == 0 {
			continue // unanswered, not wrong: no record at all
		}
		isCorrect, score := s.scoring.Grade(selected, q.CorrectLabels(), q.Points)
		joined := joinLabels(selected)

		record := &model.ResponseRecord{
			Email:      email,
			QuestionID: q.ID,
			Selected:   joined,
			IsCorrect:  isCorrect,
			Score:      score,
			Timestamp:  timestamp,
			EditNo:     round,
		}
		if err := s.responses.AppendRecord(ctx, record); err != nil {
			return nil, fmt.Errorf("recording answer for question %d: %w", q.ID, err)
		}
		if err := s.responses.UpsertAnswer(ctx, email, model.ParticipantAnswer{
			QuestionID: q.ID,
			Timestamp:  timestamp,
			Selected:   joined,
			IsCorrect:  isCorrect,
			Score:      score,
		}); err != nil {
			return nil, fmt.Errorf("updating state for question %d: %w", q.ID, err)
		}
		result.Answers = append(result.Answers, dto.GradedAnswer{
			QuestionID: q.ID,
			Selected:   selected,
			IsCorrect:  isCorrect,
			Score:      score,
		})
	}

	// One counter bump per round, regardless of how many questions it
	// touched.
	if err := s.responses.SetEditCount(ctx, email, round); err != nil {
		return nil, fmt.Errorf("advancing edit counter: %w", err)
	}
	result.RemainingRounds = model.MaxEditRounds - round
	return result, nil
}

func (s *submissionService) Results(ctx context.Context, email string) (*dto.ParticipantResults, error) {
	questions, err := s.bank.LoadOrdered(ctx)
	if err != nil {
		return nil, err
	}
	state, err := s.responses.State(ctx, email)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]model.Question, len(questions))
	maxScore := 0.0
	for _, q := range questions {
		byID[q.ID] = q
		maxScore += float64(q.Points)
	}

	answers := append([]model.ParticipantAnswer(nil), state.Answers...)
	sort.Slice(answers, func(i, j int) bool { return answers[i].QuestionID < answers[j].QuestionID })

	results := &dto.ParticipantResults{Entries: make([]dto.ResultEntry, 0, len(answers))}
	correct := 0
	score := 0.0
	for _, a := range answers {
		entry := dto.ResultEntry{
			QuestionID: a.QuestionID,
			Selected:   splitLabels(a.Selected),
			IsCorrect:  a.IsCorrect,
			Score:      a.Score,
			Timestamp:  a.Timestamp,
		}
		if q, ok := byID[a.QuestionID]; ok {
			entry.QuestionText = q.Text
			entry.CorrectLabels = q.CorrectLabels()
			for _, opt := range q.OptionList() {
				entry.Options = append(entry.Options, dto.OptionResponse{Label: opt.Label, Text: opt.Text})
			}
		} else {
			// Question removed by admin after this answer; the history row
			// stays, flagged, keyed by the ID it was written with.
			entry.Orphaned = true
		}
		if a.IsCorrect {
			correct++
		}
		score += a.Score
		results.Entries = append(results.Entries, entry)
	}

	results.Summary = dto.ResultsSummary{
		TotalQuestions:  len(questions),
		Answered:        len(answers),
		Correct:         correct,
		Score:           score,
		MaxScore:        maxScore,
		RemainingRounds: state.RemainingRounds(),
	}
	return results, nil
}
