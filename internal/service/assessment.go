package service

import (
	"errors"
	"fmt"

	"diascreen/internal/classifier"
	"diascreen/internal/features"
	"diascreen/internal/models"
	"diascreen/internal/repository"
	"diascreen/internal/risk"

	"go.uber.org/zap"
)

// AssessmentSummary is the response payload for one scored assessment.
// Recommendations are recomputed from the inputs on every request and
// are not persisted.
type AssessmentSummary struct {
	ID              int64    `json:"id"`
	RiskLevel       string   `json:"risk_level"`
	Confidence      float64  `json:"confidence"`
	Color           string   `json:"color"`
	Timeline        string   `json:"timeline"`
	Recommendations []string `json:"recommendations"`
}

type AssessmentService interface {
	Assess(username string, form map[string]string) (*AssessmentSummary, error)
	History(username string) ([]models.Assessment, error)
}

type assessmentService struct {
	adapter *classifier.Adapter
	repo    repository.AssessmentRepository
	logger  *zap.Logger
}

func NewAssessmentService(adapter *classifier.Adapter, repo repository.AssessmentRepository, logger *zap.Logger) AssessmentService {
	return &assessmentService{
		adapter: adapter,
		repo:    repo,
		logger:  logger,
	}
}

// Assess runs the full pipeline: build the feature vector, score it,
// apply the risk policy, persist the record. A parse failure or an
// unavailable model stops the request before anything touches the
// store.
func (s *assessmentService) Assess(username string, form map[string]string) (*AssessmentSummary, error) {
	vector, fields, err := features.Build(form)
	if err != nil {
		return nil, err
	}

	probability, err := s.adapter.Score(vector)
	if err != nil {
		if errors.Is(err, classifier.ErrUnavailable) {
			return nil, err
		}
		s.logger.Error("Failed to score feature vector", zap.Error(err))
		return nil, fmt.Errorf("score: %w", err)
	}

	result := risk.Classify(probability, fields)
	confidence := risk.Confidence(probability)

	record := &models.Assessment{
		Username:      username,
		Pregnancies:   fields.Pregnancies,
		Glucose:       fields.Glucose,
		BloodPressure: fields.BloodPressure,
		SkinThickness: fields.SkinThickness,
		Insulin:       fields.Insulin,
		BMI:           fields.BMI,
		Age:           fields.Age,
		RiskLevel:     result.Tier,
		Confidence:    confidence,
		Timeline:      result.Timeline,
	}

	if err := s.repo.Save(record); err != nil {
		s.logger.Error("Failed to persist assessment",
			zap.String("username", username),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Assessment saved",
		zap.String("username", username),
		zap.String("risk_level", result.Tier),
		zap.Float64("confidence", confidence))

	return &AssessmentSummary{
		ID:              record.ID,
		RiskLevel:       result.Tier,
		Confidence:      confidence,
		Color:           result.Color,
		Timeline:        result.Timeline,
		Recommendations: result.Recommendations,
	}, nil
}

// History returns the user's assessments, most recent first.
func (s *assessmentService) History(username string) ([]models.Assessment, error) {
	assessments, err := s.repo.ListByUsername(username)
	if err != nil {
		s.logger.Error("Failed to list assessments",
			zap.String("username", username),
			zap.Error(err))
		return nil, err
	}
	return assessments, nil
}
