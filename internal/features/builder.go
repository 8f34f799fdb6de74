package features

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidInput marks any failure to assemble a feature vector from
// submitted form fields. Callers match it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Kind declares how a form field is parsed.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
)

// FieldSpec names a form field and its numeric kind.
type FieldSpec struct {
	Name string
	Kind Kind
}

// Fields lists the clinical inputs in the exact order the classifier
// was trained on. The vector built from a form follows this order.
var Fields = []FieldSpec{
	{Name: "Pregnancies", Kind: KindInt},
	{Name: "Glucose", Kind: KindInt},
	{Name: "BloodPressure", Kind: KindInt},
	{Name: "SkinThickness", Kind: KindInt},
	{Name: "Insulin", Kind: KindInt},
	{Name: "BMI", Kind: KindFloat},
	{Name: "Age", Kind: KindInt},
}

// FieldSet carries the parsed values for the policy engine and the store.
type FieldSet struct {
	Pregnancies   int
	Glucose       int
	BloodPressure int
	SkinThickness int
	Insulin       int
	BMI           float64
	Age           int
}

// ParseError reports which field could not be parsed. It unwraps to
// ErrInvalidInput.
type ParseError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrInvalidInput }

// Build parses the named form fields into a fixed-order numeric vector
// and a typed FieldSet. Any missing or non-numeric field fails the whole
// build; no partial vector is ever returned. Values are not
// range-checked beyond parseability.
func Build(form map[string]string) ([]float64, FieldSet, error) {
	var fs FieldSet
	vector := make([]float64, 0, len(Fields))

	for _, spec := range Fields {
		raw, ok := form[spec.Name]
		if !ok {
			return nil, FieldSet{}, &ParseError{Field: spec.Name, Reason: "missing"}
		}

		var value float64
		switch spec.Kind {
		case KindInt:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, FieldSet{}, &ParseError{Field: spec.Name, Value: raw, Reason: "not an integer"}
			}
			value = float64(n)
		case KindFloat:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, FieldSet{}, &ParseError{Field: spec.Name, Value: raw, Reason: "not a number"}
			}
			value = f
		}

		switch spec.Name {
		case "Pregnancies":
			fs.Pregnancies = int(value)
		case "Glucose":
			fs.Glucose = int(value)
		case "BloodPressure":
			fs.BloodPressure = int(value)
		case "SkinThickness":
			fs.SkinThickness = int(value)
		case "Insulin":
			fs.Insulin = int(value)
		case "BMI":
			fs.BMI = value
		case "Age":
			fs.Age = int(value)
		}

		vector = append(vector, value)
	}

	return vector, fs, nil
}
