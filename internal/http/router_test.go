package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jeremiahbrem/biztime/internal/data/repos"
	"github.com/jeremiahbrem/biztime/internal/data/repos/testutil"
	httpH "github.com/jeremiahbrem/biztime/internal/http/handlers"
	"github.com/jeremiahbrem/biztime/internal/observability"
	"github.com/jeremiahbrem/biztime/internal/services"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.DB(t)
	log := testutil.Logger(t)

	companyRepo := repos.NewCompanyRepo(db, log)
	invoiceRepo := repos.NewInvoiceRepo(db, log)
	industryRepo := repos.NewIndustryRepo(db, log)

	r := NewRouter(RouterConfig{
		Log:             log,
		Metrics:         observability.NewMetrics(observability.MetricsConfig{Enabled: true}),
		CompanyHandler:  httpH.NewCompanyHandler(log, services.NewCompanyService(db, log, companyRepo, invoiceRepo)),
		InvoiceHandler:  httpH.NewInvoiceHandler(log, services.NewInvoiceService(db, log, invoiceRepo)),
		IndustryHandler: httpH.NewIndustryHandler(log, services.NewIndustryService(db, log, industryRepo, companyRepo)),
		HealthHandler:   httpH.NewHealthHandler(db),
	})
	return r, db
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Header().Get("Content-Type") != "" && bytes.HasPrefix(rec.Body.Bytes(), []byte("{")) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	env, ok := body["error"].(map[string]any)
	require.True(t, ok, "missing error envelope: %v", body)
	code, _ := env["code"].(string)
	return code
}

func TestHealthRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, _ := do(t, r, nethttp.MethodGet, "/healthcheck", nil)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec, _ = do(t, r, nethttp.MethodGet, "/readyz", nil)
	assert.Equal(t, nethttp.StatusOK, rec.Code)

	rec, _ = do(t, r, nethttp.MethodGet, "/metrics", nil)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `resource="healthcheck",op="list"`)
}

func TestCompanyRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, body := do(t, r, nethttp.MethodPost, "/companies", gin.H{"name": "Apple Computer", "description": "Maker of OSX."})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, map[string]any{"code": "apple-computer", "name": "Apple Computer", "description": "Maker of OSX."}, body["company"])

	rec, body = do(t, r, nethttp.MethodPost, "/companies", gin.H{"name": "Apple Computer"})
	assert.Equal(t, nethttp.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", errorCode(t, body))

	rec, body = do(t, r, nethttp.MethodPost, "/companies", gin.H{"description": "no name"})
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", errorCode(t, body))

	rec, body = do(t, r, nethttp.MethodGet, "/companies", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, []any{map[string]any{"code": "apple-computer", "name": "Apple Computer"}}, body["companies"])

	rec, body = do(t, r, nethttp.MethodGet, "/companies/apple-computer", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	company := body["company"].(map[string]any)
	assert.Equal(t, []any{}, company["industries"])
	assert.Equal(t, []any{}, company["invoices"])

	rec, body = do(t, r, nethttp.MethodPut, "/companies/apple-computer", gin.H{"code": "apple", "name": "Apple"})
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "Not allowed", body["error"].(map[string]any)["message"])

	rec, body = do(t, r, nethttp.MethodPut, "/companies/apple-computer", gin.H{"name": "Apple", "description": "Think different."})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Apple", body["company"].(map[string]any)["name"])

	rec, _ = do(t, r, nethttp.MethodPut, "/companies/nope", gin.H{"name": "Nobody"})
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)

	rec, body = do(t, r, nethttp.MethodDelete, "/companies/apple-computer", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "deleted", body["message"])

	rec, body = do(t, r, nethttp.MethodGet, "/companies/apple-computer", nil)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, body))
}

func TestInvoiceRoutes(t *testing.T) {
	r, db := newTestRouter(t)
	testutil.SeedCompany(t, context.Background(), db, "ibm", "IBM", "Big blue.")

	rec, body := do(t, r, nethttp.MethodPost, "/invoices", gin.H{"comp_code": "ibm", "amt": 400})
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	invoice := body["invoice"].(map[string]any)
	assert.Equal(t, "ibm", invoice["comp_code"])
	assert.Equal(t, 400.0, invoice["amt"])
	assert.Equal(t, false, invoice["paid"])
	assert.Nil(t, invoice["paid_date"])
	id := int64(invoice["id"].(float64))

	rec, _ = do(t, r, nethttp.MethodPost, "/invoices", gin.H{"comp_code": "nope", "amt": 10})
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)

	rec, _ = do(t, r, nethttp.MethodPost, "/invoices", gin.H{"comp_code": "ibm"})
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)

	for _, raw := range []string{`{"comp_code":"ibm","amt":0.001}`, `{"comp_code":"ibm","amt":1e20}`} {
		rec, body = do(t, r, nethttp.MethodPost, "/invoices", raw)
		assert.Equal(t, nethttp.StatusBadRequest, rec.Code, raw)
		assert.Equal(t, "invalid_request", errorCode(t, body))
	}

	path := "/invoices/" + jsonNumber(id)
	rec, body = do(t, r, nethttp.MethodGet, path, nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	detail := body["invoice"].(map[string]any)
	assert.Equal(t, map[string]any{"code": "ibm", "name": "IBM", "description": "Big blue."}, detail["company"])
	assert.NotContains(t, detail, "comp_code")

	rec, _ = do(t, r, nethttp.MethodGet, "/invoices/abc", nil)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)

	rec, _ = do(t, r, nethttp.MethodPut, path, gin.H{"id": 9, "amt": 10})
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)

	rec, _ = do(t, r, nethttp.MethodPut, path, `{"amt":1e20}`)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)

	rec, body = do(t, r, nethttp.MethodPut, path, gin.H{"amt": 500, "paid": true})
	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	invoice = body["invoice"].(map[string]any)
	assert.Equal(t, true, invoice["paid"])
	assert.NotNil(t, invoice["paid_date"])

	rec, body = do(t, r, nethttp.MethodGet, "/invoices", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Len(t, body["invoices"], 1)

	rec, _ = do(t, r, nethttp.MethodDelete, path, nil)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	rec, _ = do(t, r, nethttp.MethodDelete, path, nil)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
}

func TestIndustryRoutes(t *testing.T) {
	r, db := newTestRouter(t)
	ctx := context.Background()
	testutil.SeedCompany(t, ctx, db, "apple", "Apple Computer", "Maker of OSX.")
	testutil.SeedCompany(t, ctx, db, "ibm", "IBM", "Big blue.")

	rec, body := do(t, r, nethttp.MethodGet, "/industries", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, []any{}, body["industries"])

	for _, ind := range []gin.H{
		{"i_code": "tech", "industry": "Technology"},
		{"i_code": "ent", "industry": "Entertainment"},
		{"i_code": "bus", "industry": "Business Services"},
	} {
		rec, body = do(t, r, nethttp.MethodPost, "/industries", ind)
		require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, map[string]any(ind), body["industry"])
	}

	rec, _ = do(t, r, nethttp.MethodPost, "/industries", gin.H{"i_code": "tech", "industry": "Tech"})
	assert.Equal(t, nethttp.StatusConflict, rec.Code)

	for _, link := range [][2]string{{"tech", "ibm"}, {"ent", "apple"}, {"tech", "apple"}} {
		rec, body = do(t, r, nethttp.MethodPost, "/industries/"+link[0], gin.H{"comp_code": link[1]})
		require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, map[string]any{"indust_code": link[0], "comp_code": link[1]}, body["association"])
	}

	rec, _ = do(t, r, nethttp.MethodPost, "/industries/tech", gin.H{"comp_code": "ibm"})
	assert.Equal(t, nethttp.StatusConflict, rec.Code)
	rec, _ = do(t, r, nethttp.MethodPost, "/industries/nope", gin.H{"comp_code": "ibm"})
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)

	rec, _ = do(t, r, nethttp.MethodGet, "/industries", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"industries":[
		{"i_code":"tech","industry":"Technology","companies":["ibm","apple"]},
		{"i_code":"ent","industry":"Entertainment","companies":["apple"]}
	]}`, rec.Body.String())

	rec, body = do(t, r, nethttp.MethodGet, "/companies/apple", nil)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, []any{"Entertainment", "Technology"}, body["company"].(map[string]any)["industries"])
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)
	rec, body := do(t, r, nethttp.MethodGet, "/nope", nil)
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, body))
}

func jsonNumber(id int64) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}
