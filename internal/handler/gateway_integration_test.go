package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-report-gateway/internal/repository"
	"github.com/noah-isme/sma-report-gateway/internal/service"
	"github.com/noah-isme/sma-report-gateway/pkg/config"
	"github.com/noah-isme/sma-report-gateway/pkg/database"
)

const poolLimit = 3

var fixtureSchema = []string{
	`CREATE TABLE studentreport (CLASS TEXT, SECTION TEXT, ROLLID INTEGER, GRADE TEXT, SEMISTER TEXT, CLASS_ATTENDED INTEGER)`,
	`CREATE TABLE company (COMPANY_ID TEXT, COMPANY_NAME TEXT, COMPANY_CITY TEXT)`,
	`CREATE TABLE daysorder (ORD_NUM INTEGER, ORD_AMOUNT REAL, AGENT_CODE TEXT)`,
	`INSERT INTO company VALUES ('18', 'Order All', 'Boston'), ('15', 'Jack Hill Ltd', 'London')`,
	`INSERT INTO daysorder VALUES (200100, 1000, 'A003'), (200110, 3000, 'A010'), (200107, 4500, 'A010')`,
}

type gateway struct {
	router *gin.Engine
	pool   *database.Pool
}

func newGateway(t *testing.T) *gateway {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(config.DatabaseConfig{
		Driver:    config.DriverSQLite,
		Path:      filepath.Join(t.TempDir(), "sample.db"),
		PoolLimit: poolLimit,
	})
	require.NoError(t, err)
	for _, stmt := range fixtureSchema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	metrics := service.NewMetricsService()
	pool := database.NewPool(db, poolLimit, 2*time.Second, metrics, nil)
	t.Cleanup(func() { _ = pool.Close() })
	metrics.RegisterPool(pool.Stats)
	exec := database.NewExecutor(pool, 5*time.Second, metrics, nil)

	handlers := Handlers{
		Report:  NewReportHandler(service.NewReportService(repository.NewReportRepository(exec), nil, nil)),
		Lookup:  NewLookupHandler(service.NewLookupService(repository.NewCompanyRepository(exec), repository.NewDaysOrderRepository(exec), nil)),
		Metrics: NewMetricsHandler(metrics, pool),
	}
	return &gateway{router: NewRouter(RouterConfig{Metrics: metrics}, handlers), pool: pool}
}

type envelope struct {
	Data  json.RawMessage        `json:"data"`
	Error map[string]interface{} `json:"error"`
}

func (g *gateway) do(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w.Code, env
}

func (g *gateway) reports(t *testing.T) []map[string]interface{} {
	t.Helper()
	status, env := g.do(t, http.MethodGet, "/report", nil)
	require.Equal(t, http.StatusOK, status)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	return rows
}

func outcomeOf(t *testing.T, env envelope) database.Outcome {
	t.Helper()
	var outcome database.Outcome
	require.NoError(t, json.Unmarshal(env.Data, &outcome))
	return outcome
}

func report(class, section string, rollID int, grade, semester string, attended int) map[string]interface{} {
	return map[string]interface{}{
		"CLASS": class, "SECTION": section, "ROLLID": rollID,
		"GRADE": grade, "SEMISTER": semester, "CLASS_ATTENDED": attended,
	}
}

func TestGatewayCreateThenList(t *testing.T) {
	g := newGateway(t)

	status, env := g.do(t, http.MethodPost, "/report", report("VII", "C", 99, "B", "3Rd", 90))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), outcomeOf(t, env).AffectedRows)

	rows := g.reports(t)
	require.Len(t, rows, 1)
	assert.Equal(t, "VII", rows[0]["CLASS"])
	assert.Equal(t, "C", rows[0]["SECTION"])
	assert.Equal(t, 99.0, rows[0]["ROLLID"])
	assert.Equal(t, "B", rows[0]["GRADE"])
	assert.Equal(t, "3Rd", rows[0]["SEMISTER"])
	assert.Equal(t, 90.0, rows[0]["CLASS_ATTENDED"])
}

func TestGatewayUpdateGradeTouchesOnlyMatchingRoll(t *testing.T) {
	g := newGateway(t)
	for _, r := range []map[string]interface{}{
		report("VII", "C", 99, "B", "3Rd", 90),
		report("VIII", "A", 12, "A", "1St", 75),
	} {
		status, _ := g.do(t, http.MethodPost, "/report", r)
		require.Equal(t, http.StatusOK, status)
	}

	status, env := g.do(t, http.MethodPut, "/report", map[string]interface{}{"GRADE": "B++", "SECTION": "D", "ROLLID": 99})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), outcomeOf(t, env).AffectedRows)

	for _, row := range g.reports(t) {
		switch row["ROLLID"] {
		case 99.0:
			assert.Equal(t, "B++", row["GRADE"])
			assert.Equal(t, "D", row["SECTION"])
		case 12.0:
			assert.Equal(t, "A", row["GRADE"])
			assert.Equal(t, "A", row["SECTION"])
		default:
			t.Fatalf("unexpected row %v", row)
		}
	}
}

func TestGatewayPatchSemester(t *testing.T) {
	g := newGateway(t)
	status, _ := g.do(t, http.MethodPost, "/report", report("VII", "C", 99, "B", "3Rd", 90))
	require.Equal(t, http.StatusOK, status)

	status, env := g.do(t, http.MethodPatch, "/reports", map[string]interface{}{"SEMISTER": "4Th", "SECTION": "E", "ROLLID": 99})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), outcomeOf(t, env).AffectedRows)

	rows := g.reports(t)
	require.Len(t, rows, 1)
	assert.Equal(t, "4Th", rows[0]["SEMISTER"])
	assert.Equal(t, "E", rows[0]["SECTION"])
	assert.Equal(t, "B", rows[0]["GRADE"])
}

func TestGatewayDeleteAbsentRollIsZeroRowSuccess(t *testing.T) {
	g := newGateway(t)

	status, env := g.do(t, http.MethodDelete, "/reports/4242", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(0), outcomeOf(t, env).AffectedRows)
}

func TestGatewayDeleteExistingRoll(t *testing.T) {
	g := newGateway(t)
	status, _ := g.do(t, http.MethodPost, "/report", report("VII", "C", 99, "B", "3Rd", 90))
	require.Equal(t, http.StatusOK, status)

	status, env := g.do(t, http.MethodDelete, "/reports/99", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(1), outcomeOf(t, env).AffectedRows)
	assert.Empty(t, g.reports(t))
}

func TestGatewayCreateMissingRollIDIsRejected(t *testing.T) {
	g := newGateway(t)

	body := report("VII", "C", 0, "B", "3Rd", 90)
	delete(body, "ROLLID")
	status, env := g.do(t, http.MethodPost, "/report", body)
	require.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "MALFORMED_REQUEST", env.Error["code"])
	assert.Empty(t, g.reports(t))
}

func TestGatewayCompanyLookups(t *testing.T) {
	g := newGateway(t)

	status, env := g.do(t, http.MethodGet, "/company", nil)
	require.Equal(t, http.StatusOK, status)
	var companies []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &companies))
	assert.Len(t, companies, 2)

	status, env = g.do(t, http.MethodGet, "/company/18", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &companies))
	require.Len(t, companies, 1)
	assert.Equal(t, "Order All", companies[0]["COMPANY_NAME"])

	status, env = g.do(t, http.MethodGet, "/company/does-not-exist", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestGatewayDaysOrderLookup(t *testing.T) {
	g := newGateway(t)

	status, env := g.do(t, http.MethodGet, "/daysorder?code=A010", nil)
	require.Equal(t, http.StatusOK, status)
	var orders []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	assert.Len(t, orders, 2)

	status, _ = g.do(t, http.MethodGet, "/daysorder", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestGatewayQueryFailureIsOpaque500(t *testing.T) {
	g := newGateway(t)
	ctx := context.Background()

	lease, err := g.pool.Acquire(ctx)
	require.NoError(t, err)
	_, err = lease.Conn().ExecContext(ctx, `DROP TABLE daysorder`)
	require.NoError(t, err)
	g.pool.Release(lease)

	status, env := g.do(t, http.MethodGet, "/daysorder?code=A010", nil)
	require.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "QUERY_FAILED", env.Error["code"])
	assert.NotContains(t, env.Error["message"], "no such table")
	assert.Equal(t, uint64(1), g.pool.Stats().Destroyed)
}

func TestGatewayConcurrentRequestsUpToLimitComplete(t *testing.T) {
	g := newGateway(t)

	var wg sync.WaitGroup
	statuses := make(chan int, poolLimit*4)
	for i := 0; i < poolLimit*4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			g.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/company", nil))
			statuses <- w.Code
		}()
	}
	wg.Wait()
	close(statuses)

	for status := range statuses {
		assert.Equal(t, http.StatusOK, status)
	}
	stats := g.pool.Stats()
	assert.Equal(t, int64(0), stats.InUse)
	assert.LessOrEqual(t, stats.Open, poolLimit)
}

func TestGatewayReadyReportsPool(t *testing.T) {
	g := newGateway(t)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()
	g.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"limit":3`)
}
