// Package classifier wraps the pre-trained diabetes model and its
// feature scaler. Both artifacts are JSON exports of the fitted
// estimators, loaded once at process start and read-only afterwards.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// ErrUnavailable is returned by Score when the model artifacts failed to
// load at startup. Callers match it with errors.Is.
var ErrUnavailable = errors.New("model unavailable")

const (
	scalerFile = "diabetes_scaler.json"
	modelFile  = "diabetes_model.json"
)

// scalerArtifact holds the standardization parameters fitted on the
// training distribution: x' = (x - mean) / scale, per feature.
type scalerArtifact struct {
	Features []string  `json:"features"`
	Mean     []float64 `json:"mean"`
	Scale    []float64 `json:"scale"`
}

// modelArtifact holds the fitted logistic-regression parameters.
type modelArtifact struct {
	Features  []string  `json:"features"`
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

// Adapter scores feature vectors against the loaded artifacts. A nil
// inner state means the adapter is disabled and every Score fails fast.
type Adapter struct {
	scaler *scalerArtifact
	model  *modelArtifact
}

// Load reads both artifacts from dir and validates that they agree on
// feature order and arity.
func Load(dir string) (*Adapter, error) {
	var scaler scalerArtifact
	if err := readArtifact(filepath.Join(dir, scalerFile), &scaler); err != nil {
		return nil, fmt.Errorf("load scaler: %w", err)
	}
	var model modelArtifact
	if err := readArtifact(filepath.Join(dir, modelFile), &model); err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	if len(scaler.Features) == 0 || len(scaler.Mean) != len(scaler.Features) || len(scaler.Scale) != len(scaler.Features) {
		return nil, fmt.Errorf("scaler artifact is inconsistent: %d features, %d means, %d scales",
			len(scaler.Features), len(scaler.Mean), len(scaler.Scale))
	}
	if len(model.Coef) != len(model.Features) {
		return nil, fmt.Errorf("model artifact is inconsistent: %d features, %d coefficients",
			len(model.Features), len(model.Coef))
	}
	if len(model.Features) != len(scaler.Features) {
		return nil, fmt.Errorf("model expects %d features but scaler was fitted on %d",
			len(model.Features), len(scaler.Features))
	}
	for i, name := range model.Features {
		if scaler.Features[i] != name {
			return nil, fmt.Errorf("feature order mismatch at %d: model %q, scaler %q", i, name, scaler.Features[i])
		}
	}

	return &Adapter{scaler: &scaler, model: &model}, nil
}

// Disabled constructs an adapter whose Score always fails with
// ErrUnavailable. Used when artifact loading fails at startup so the
// rest of the service keeps running.
func Disabled() *Adapter {
	return &Adapter{}
}

// Ready reports whether both artifacts are loaded.
func (a *Adapter) Ready() bool {
	return a.scaler != nil && a.model != nil
}

// Arity returns the expected feature-vector length, or 0 when disabled.
func (a *Adapter) Arity() int {
	if !a.Ready() {
		return 0
	}
	return len(a.model.Features)
}

// Score standardizes the raw vector with the fitted scaler and returns
// the calibrated probability of the positive class. Scaling must happen
// before the model is applied; the model was fitted on standardized
// inputs and produces silently wrong probabilities on raw ones.
func (a *Adapter) Score(vector []float64) (float64, error) {
	if !a.Ready() {
		return 0, ErrUnavailable
	}
	if len(vector) != len(a.model.Features) {
		return 0, fmt.Errorf("expected %d features, got %d", len(a.model.Features), len(vector))
	}

	z := a.model.Intercept
	for i, x := range vector {
		scaled := (x - a.scaler.Mean[i]) / a.scaler.Scale[i]
		z += a.model.Coef[i] * scaled
	}

	return 1 / (1 + math.Exp(-z)), nil
}

func readArtifact(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
