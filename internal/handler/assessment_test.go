package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"diascreen/internal/classifier"
	"diascreen/internal/features"
	"diascreen/internal/middleware"
	"diascreen/internal/models"
	"diascreen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeAssessmentService struct {
	summary   *service.AssessmentSummary
	history   []models.Assessment
	assessErr error
	listErr   error

	gotUsername string
	gotForm     map[string]string
}

func (f *fakeAssessmentService) Assess(username string, form map[string]string) (*service.AssessmentSummary, error) {
	f.gotUsername = username
	f.gotForm = form
	if f.assessErr != nil {
		return nil, f.assessErr
	}
	return f.summary, nil
}

func (f *fakeAssessmentService) History(username string) ([]models.Assessment, error) {
	f.gotUsername = username
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.history, nil
}

func assessmentRouter(svc service.AssessmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAssessmentHandler(svc, zap.NewNop())
	authed := router.Group("/api", func(c *gin.Context) {
		c.Set(middleware.ContextUsernameKey, "alice")
	})
	authed.POST("/assessments", h.Predict)
	authed.GET("/assessments", h.History)
	return router
}

func postForm(router *gin.Engine, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/assessments", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validValues() url.Values {
	return url.Values{
		"Pregnancies":   {"2"},
		"Glucose":       {"85"},
		"BloodPressure": {"66"},
		"SkinThickness": {"29"},
		"Insulin":       {"0"},
		"BMI":           {"26.6"},
		"Age":           {"31"},
	}
}

func TestPredict(t *testing.T) {
	svc := &fakeAssessmentService{summary: &service.AssessmentSummary{
		ID:         1,
		RiskLevel:  "Low Risk",
		Confidence: 12.0,
		Color:      "success",
		Timeline:   "Low short-term risk (0-3 years). Maintain healthy lifestyle.",
	}}
	router := assessmentRouter(svc)

	rec := postForm(router, validValues())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Low Risk")
	assert.Equal(t, "alice", svc.gotUsername)
	assert.Equal(t, "26.6", svc.gotForm["BMI"])
}

func TestPredictErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"parse error", &features.ParseError{Field: "Glucose", Reason: "not an integer"}, http.StatusBadRequest},
		{"model unavailable", classifier.ErrUnavailable, http.StatusServiceUnavailable},
		{"persistence error", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAssessmentService{assessErr: tt.err}
			router := assessmentRouter(svc)

			rec := postForm(router, validValues())
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPredictOmitsMissingFields(t *testing.T) {
	svc := &fakeAssessmentService{summary: &service.AssessmentSummary{}}
	router := assessmentRouter(svc)

	values := validValues()
	values.Del("Insulin")
	postForm(router, values)

	// The handler forwards only submitted fields; the builder decides
	// what is missing.
	_, ok := svc.gotForm["Insulin"]
	assert.False(t, ok)
}

func TestHistory(t *testing.T) {
	svc := &fakeAssessmentService{history: []models.Assessment{
		{ID: 2, Username: "alice", RiskLevel: "High Risk"},
		{ID: 1, Username: "alice", RiskLevel: "Low Risk"},
	}}
	router := assessmentRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/assessments", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":2`)
	assert.Equal(t, "alice", svc.gotUsername)
}

func TestHistoryError(t *testing.T) {
	svc := &fakeAssessmentService{listErr: errors.New("db down")}
	router := assessmentRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/assessments", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
