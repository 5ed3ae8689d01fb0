package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-report-gateway/internal/dto"
	"github.com/noah-isme/sma-report-gateway/pkg/database"
	appErrors "github.com/noah-isme/sma-report-gateway/pkg/errors"
)

type reportServiceMock struct {
	outcome     *database.Outcome
	rows        []database.Row
	err         error
	created     *dto.CreateReportRequest
	deletedRoll int64
}

func (m *reportServiceMock) Create(ctx context.Context, req dto.CreateReportRequest) (*database.Outcome, error) {
	m.created = &req
	return m.outcome, m.err
}

func (m *reportServiceMock) List(ctx context.Context) ([]database.Row, error) {
	return m.rows, m.err
}

func (m *reportServiceMock) UpdateGrade(ctx context.Context, req dto.UpdateReportGradeRequest) (*database.Outcome, error) {
	return m.outcome, m.err
}

func (m *reportServiceMock) UpdateSemester(ctx context.Context, req dto.UpdateReportSemesterRequest) (*database.Outcome, error) {
	return m.outcome, m.err
}

func (m *reportServiceMock) Delete(ctx context.Context, rollID int64) (*database.Outcome, error) {
	m.deletedRoll = rollID
	return m.outcome, m.err
}

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestReportHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &reportServiceMock{outcome: &database.Outcome{AffectedRows: 1, InsertID: 5}}
	handler := NewReportHandler(svc)

	payload := []byte(`{"CLASS":"VII","SECTION":"C","ROLLID":99,"GRADE":"B","SEMISTER":"3Rd","CLASS_ATTENDED":90}`)
	c, w := newGinContext(http.MethodPost, "/report", payload)

	handler.Create(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, int64(99), *svc.created.RollID)

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 1.0, data["affectedRows"])
	assert.Equal(t, 5.0, data["insertId"])
}

func TestReportHandlerCreateInvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &reportServiceMock{}
	handler := NewReportHandler(svc)

	c, w := newGinContext(http.MethodPost, "/report", []byte(`{"ROLLID":"ninety-nine"`))

	handler.Create(c)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Nil(t, svc.created)
	errBody := decodeEnvelope(t, w)["error"].(map[string]interface{})
	assert.Equal(t, appErrors.ErrMalformedRequest.Code, errBody["code"])
}

func TestReportHandlerListFailureIsOpaque(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cause := appErrors.Wrap(assert.AnError, appErrors.ErrQueryFailed.Code, appErrors.ErrQueryFailed.Status, appErrors.ErrQueryFailed.Message)
	handler := NewReportHandler(&reportServiceMock{err: cause})

	c, w := newGinContext(http.MethodGet, "/report", nil)

	handler.List(c)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestReportHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &reportServiceMock{outcome: &database.Outcome{AffectedRows: 0}}
	handler := NewReportHandler(svc)

	c, w := newGinContext(http.MethodDelete, "/reports/12345", nil)
	c.Params = gin.Params{{Key: "id", Value: "12345"}}

	handler.Delete(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(12345), svc.deletedRoll)
}

func TestReportHandlerDeleteNonNumericID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &reportServiceMock{}
	handler := NewReportHandler(svc)

	c, w := newGinContext(http.MethodDelete, "/reports/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.Delete(c)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Zero(t, svc.deletedRoll)
}

func TestReportHandlerUpdateGradePoolExhausted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewReportHandler(&reportServiceMock{err: appErrors.Clone(appErrors.ErrPoolExhausted, "")})

	c, w := newGinContext(http.MethodPut, "/report", []byte(`{"GRADE":"B++","SECTION":"D","ROLLID":99}`))

	handler.UpdateGrade(c)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
