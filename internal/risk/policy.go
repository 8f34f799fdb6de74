// Package risk maps a classifier probability to a risk tier, a display
// color, a progression timeline and a list of recommendations. It is
// pure: no I/O, no randomness, identical inputs yield identical output.
package risk

import (
	"math"

	"diascreen/internal/features"
)

// Tier labels
const (
	TierLow  = "Low Risk"
	TierPre  = "Pre-Diabetic Risk"
	TierHigh = "High Risk"
)

// Display colors matching the tier labels.
const (
	ColorSuccess = "success"
	ColorWarning = "warning"
	ColorDanger  = "danger"
)

// Result is the full policy output for one assessment.
type Result struct {
	Tier            string
	Color           string
	Timeline        string
	Recommendations []string
}

var lowRecommendations = []string{
	"Maintain balanced low-glycemic diet.",
	"Exercise 30 minutes daily.",
	"Annual fasting glucose test.",
	"Maintain healthy BMI.",
	"Keep consistent sleep schedule.",
}

var preRecommendations = []string{
	"Adopt structured low-carb diet.",
	"45 minutes of physical activity daily.",
	"Monitor blood glucose every 3-6 months.",
	"Reduce body weight by 5-10%.",
	"Consult doctor about HbA1c testing.",
}

var highRecommendations = []string{
	"Consult endocrinologist immediately.",
	"Get HbA1c and fasting glucose tests.",
	"Follow medically supervised diet plan.",
	"Daily glucose monitoring advised.",
	"Start structured weight management program.",
}

// Classify buckets the probability into a tier using half-open
// intervals ([0,0.25), [0.25,0.50), [0.50,1]) and appends the
// supplementary per-field recommendations. Supplementary rules are
// additive and independent of the tier.
func Classify(probability float64, f features.FieldSet) Result {
	var r Result
	switch {
	case probability < 0.25:
		r.Tier = TierLow
		r.Color = ColorSuccess
		r.Timeline = "Low short-term risk (0-3 years). Maintain healthy lifestyle."
		r.Recommendations = append(r.Recommendations, lowRecommendations...)
	case probability < 0.50:
		r.Tier = TierPre
		r.Color = ColorWarning
		r.Timeline = "Moderate progression risk within 3-7 years without intervention."
		r.Recommendations = append(r.Recommendations, preRecommendations...)
	default:
		r.Tier = TierHigh
		r.Color = ColorDanger
		r.Timeline = "High likelihood of progression in near future without medical care."
		r.Recommendations = append(r.Recommendations, highRecommendations...)
	}

	if f.Glucose > 140 {
		r.Recommendations = append(r.Recommendations, "Elevated glucose detected: reduce refined sugars.")
	}
	if f.BMI >= 30 {
		r.Recommendations = append(r.Recommendations, "High BMI detected: initiate weight-loss program.")
	}
	if f.BloodPressure > 90 {
		r.Recommendations = append(r.Recommendations, "Elevated blood pressure: adopt low-sodium diet.")
	}
	if f.Insulin > 180 {
		r.Recommendations = append(r.Recommendations, "Possible insulin resistance detected.")
	}
	if f.Age > 45 {
		r.Recommendations = append(r.Recommendations, "Annual metabolic screening recommended.")
	}

	return r
}

// Confidence expresses a probability as a percentage rounded to two
// decimals, the form persisted with each assessment.
func Confidence(probability float64) float64 {
	return math.Round(probability*100*100) / 100
}
