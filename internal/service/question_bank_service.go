package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/lshigami/Stonechat/internal/dto"
	"github.com/lshigami/Stonechat/internal/model"
	"github.com/lshigami/Stonechat/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuestionBankService owns the question lifecycle and the ID-contiguity
// invariant: IDs always form 1..N with no gaps, in stable relative order.
type QuestionBankService interface {
	List(ctx context.Context) ([]dto.QuestionDetail, error)
	Add(ctx context.Context, req dto.QuestionRequest) (*dto.QuestionDetail, error)
	Edit(ctx context.Context, id int, req dto.QuestionRequest) (*dto.QuestionDetail, error)
	Delete(ctx context.Context, id int) error
	// LoadOrdered returns the bank sorted by ID, renumbering first if the
	// stored ID set has gaps.
	LoadOrdered(ctx context.Context) ([]model.Question, error)
}

type questionBankService struct {
	questions repository.QuestionRepository
}

func NewQuestionBankService(questions repository.QuestionRepository) QuestionBankService {
	return &questionBankService{questions: questions}
}

func (s *questionBankService) List(ctx context.Context) ([]dto.QuestionDetail, error) {
	questions, err := s.LoadOrdered(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]dto.QuestionDetail, 0, len(questions))
	for _, q := range questions {
		details = append(details, questionDetail(q))
	}
	return details, nil
}

func (s *questionBankService) Add(ctx context.Context, req dto.QuestionRequest) (*dto.QuestionDetail, error) {
	question := model.Question{
		Text:           req.Text,
		Options:        req.Options,
		CorrectAnswers: joinLabels(req.CorrectLabels),
		Points:         req.Points,
	}
	if err := validateQuestion(question); err != nil {
		return nil, err
	}

	existing, err := s.LoadOrdered(ctx)
	if err != nil {
		return nil, err
	}
	nextID := 1
	if n := len(existing); n > 0 {
		nextID = existing[n-1].ID + 1
	}
	question.ID = nextID

	if err := s.questions.Create(ctx, &question); err != nil {
		return nil, fmt.Errorf("creating question: %w", err)
	}
	detail := questionDetail(question)
	return &detail, nil
}

func (s *questionBankService) Edit(ctx context.Context, id int, req dto.QuestionRequest) (*dto.QuestionDetail, error) {
	question := model.Question{
		ID:             id,
		Text:           req.Text,
		Options:        req.Options,
		CorrectAnswers: joinLabels(req.CorrectLabels),
		Points:         req.Points,
	}
	if err := validateQuestion(question); err != nil {
		return nil, err
	}
	if err := s.questions.Update(ctx, &question); err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("updating question %d: %w", id, err)
	}
	detail := questionDetail(question)
	return &detail, nil
}

func (s *questionBankService) Delete(ctx context.Context, id int) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("deleting question %d: %w", id, err)
	}
	// Close the gap immediately so the invariant holds for the next reader.
	if _, err := s.LoadOrdered(ctx); err != nil {
		return err
	}
	return nil
}

func (s *questionBankService) LoadOrdered(ctx context.Context) ([]model.Question, error) {
	questions, err := s.questions.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })

	if isContiguous(questions) {
		return questions, nil
	}

	log.Warn().Int("count", len(questions)).Msg("Question IDs not contiguous, renumbering")
	for i := range questions {
		want := i + 1
		if questions[i].ID == want {
			continue
		}
		if err := s.questions.UpdateID(ctx, questions[i].ID, want); err != nil {
			return nil, fmt.Errorf("renumbering question %d -> %d: %w", questions[i].ID, want, err)
		}
		questions[i].ID = want
	}
	return questions, nil
}

func isContiguous(sorted []model.Question) bool {
	for i, q := range sorted {
		if q.ID != i+1 {
			return false
		}
	}
	return true
}

func validateQuestion(q model.Question) error {
	if q.Points < 1 {
		return ErrInvalidPoints
	}
	labels := q.Labels()
	if len(labels) == 0 {
		return ErrNoOptions
	}
	known := labelSet(labels)
	for _, correct := range q.CorrectLabels() {
		if _, ok := known[normalizeLabel(correct)]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownLabel, correct)
		}
	}
	return nil
}

func questionDetail(q model.Question) dto.QuestionDetail {
	detail := dto.QuestionDetail{
		ID:            q.ID,
		Text:          q.Text,
		RawOptions:    q.Options,
		CorrectLabels: q.CorrectLabels(),
		Points:        q.Points,
	}
	for _, opt := range q.OptionList() {
		detail.Options = append(detail.Options, dto.OptionResponse{Label: opt.Label, Text: opt.Text})
	}
	return detail
}
