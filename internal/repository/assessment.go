package repository

import (
	"fmt"

	"diascreen/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type AssessmentRepository interface {
	Save(a *models.Assessment) error
	ListByUsername(username string) ([]models.Assessment, error)
}

type assessmentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAssessmentRepository(db *sqlx.DB, logger *zap.Logger) AssessmentRepository {
	return &assessmentRepository{db: db, logger: logger}
}

// Save writes one assessment in a single statement. The insert either
// lands fully or not at all; a rejected write leaves no partial row.
func (r *assessmentRepository) Save(a *models.Assessment) error {
	query := `INSERT INTO assessments
	          (username, pregnancies, glucose, blood_pressure, skin_thickness, insulin, bmi, age, risk_level, confidence, timeline)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id, created_at`
	err := r.db.QueryRowx(query,
		a.Username, a.Pregnancies, a.Glucose, a.BloodPressure, a.SkinThickness,
		a.Insulin, a.BMI, a.Age, a.RiskLevel, a.Confidence, a.Timeline,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("save assessment: %w", err)
	}
	return nil
}

// ListByUsername returns the user's assessments, most recent first.
func (r *assessmentRepository) ListByUsername(username string) ([]models.Assessment, error) {
	assessments := []models.Assessment{}
	query := `SELECT id, username, pregnancies, glucose, blood_pressure, skin_thickness, insulin, bmi, age, risk_level, confidence, timeline, created_at
	          FROM assessments
	          WHERE username = $1
	          ORDER BY id DESC`
	if err := r.db.Select(&assessments, query, username); err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return assessments, nil
}
