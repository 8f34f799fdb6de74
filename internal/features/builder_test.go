package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() map[string]string {
	return map[string]string{
		"Pregnancies":   "2",
		"Glucose":       "85",
		"BloodPressure": "66",
		"SkinThickness": "29",
		"Insulin":       "0",
		"BMI":           "26.6",
		"Age":           "31",
	}
}

func TestBuild(t *testing.T) {
	vector, fields, err := Build(validForm())
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 85, 66, 29, 0, 26.6, 31}, vector)
	assert.Equal(t, FieldSet{
		Pregnancies:   2,
		Glucose:       85,
		BloodPressure: 66,
		SkinThickness: 29,
		Insulin:       0,
		BMI:           26.6,
		Age:           31,
	}, fields)
}

func TestBuildMissingField(t *testing.T) {
	form := validForm()
	delete(form, "Insulin")

	vector, _, err := Build(form)
	require.Error(t, err)
	assert.Nil(t, vector)
	assert.ErrorIs(t, err, ErrInvalidInput)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Insulin", parseErr.Field)
}

func TestBuildNonNumeric(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"int field with text", "Glucose", "abc"},
		{"int field with float", "Age", "31.5"},
		{"float field with text", "BMI", "heavy"},
		{"empty value", "Pregnancies", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			form[tt.field] = tt.value

			vector, _, err := Build(form)
			require.Error(t, err)
			assert.Nil(t, vector)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.field, parseErr.Field)
		})
	}
}

func TestBuildAcceptsOutOfRangeValues(t *testing.T) {
	// Only parseability is validated; implausible values pass through.
	form := validForm()
	form["Age"] = "-5"
	form["Glucose"] = "99999"

	_, fields, err := Build(form)
	require.NoError(t, err)
	assert.Equal(t, -5, fields.Age)
	assert.Equal(t, 99999, fields.Glucose)
}

func TestBuildVectorOrderMatchesFields(t *testing.T) {
	require.Len(t, Fields, 7)

	vector, _, err := Build(validForm())
	require.NoError(t, err)
	require.Len(t, vector, len(Fields))

	// BMI is the only float field and the only non-integral value here.
	assert.Equal(t, 26.6, vector[5])
}
