package models

import "time"

// Assessment represents one prediction stored in the 'assessments' table.
// Inputs and derived outputs are written together exactly once; rows are
// never updated or deleted.
type Assessment struct {
	ID            int64     `db:"id" json:"id"`
	Username      string    `db:"username" json:"username"`
	Pregnancies   int       `db:"pregnancies" json:"pregnancies"`
	Glucose       int       `db:"glucose" json:"glucose"`
	BloodPressure int       `db:"blood_pressure" json:"blood_pressure"`
	SkinThickness int       `db:"skin_thickness" json:"skin_thickness"`
	Insulin       int       `db:"insulin" json:"insulin"`
	BMI           float64   `db:"bmi" json:"bmi"`
	Age           int       `db:"age" json:"age"`
	RiskLevel     string    `db:"risk_level" json:"risk_level"`
	Confidence    float64   `db:"confidence" json:"confidence"`
	Timeline      string    `db:"timeline" json:"timeline"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
