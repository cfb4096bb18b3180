package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"financetracker/config"
	"financetracker/db/memory"
	"financetracker/ledger"
	"financetracker/summary"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testStore  *memory.Store
	testRouter *gin.Engine

	testScope  = ledger.Scope{UserID: "user_test"}
	otherScope = ledger.Scope{UserID: "user_other"}
	orgScope   = ledger.Scope{UserID: "user_test", OrgID: "org_test"}

	// testNow pins the default summary window.
	testNow = time.Date(2024, 3, 31, 15, 0, 0, 0, time.UTC)
)

// dataResponse is the envelope every successful response uses
type dataResponse[T any] struct {
	Data T `json:"data"`
}

// TestMain sets up the test environment
func TestMain(m *testing.M) {
	// Set gin to test mode
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{CORSAllowOrigins: []string{"http://localhost:3000"}}
	testRouter = setupRouter(cfg, zerolog.Nop())
	cleanupTestData()

	os.Exit(m.Run())
}

// cleanupTestData swaps in an empty store
func cleanupTestData() {
	testStore = memory.New()
	queries = testStore
	aggregator = summary.NewAggregator(testStore, summary.Config{
		DefaultWindow: summary.WindowTrailing,
		TrailingDays:  30,
		Now:           func() time.Time { return testNow },
	})
}

// createTestAccount creates an account in scope and returns its ID
func createTestAccount(t *testing.T, scope ledger.Scope, name string, role ledger.AccountRole) string {
	t.Helper()
	a, err := testStore.CreateAccount(context.Background(), scope, ledger.CreateAccountParams{Name: name, Role: role})
	require.NoError(t, err)
	return a.ID
}

// createTestCategory creates a category in scope and returns its ID
func createTestCategory(t *testing.T, scope ledger.Scope, name string) string {
	t.Helper()
	c, err := testStore.CreateCategory(context.Background(), scope, ledger.CreateCategoryParams{Name: name})
	require.NoError(t, err)
	return c.ID
}

// createTestTransaction creates a transaction and returns its ID
func createTestTransaction(t *testing.T, scope ledger.Scope, accountID string, categoryID *string, amount int64, date string) string {
	t.Helper()
	d, err := time.Parse(summary.DateLayout, date)
	require.NoError(t, err)

	created, err := testStore.CreateTransactions(context.Background(), scope, []ledger.CreateTransactionParams{{
		Amount:     amount,
		Payee:      "Test payee",
		Date:       d,
		AccountID:  accountID,
		CategoryID: categoryID,
	}})
	require.NoError(t, err)
	return created[0].ID
}

// makeRequest makes an HTTP request as the default test user
func makeRequest(method, url string, body io.Reader) *httptest.ResponseRecorder {
	return makeScopedRequest(method, url, body, testScope)
}

// makeScopedRequest makes an HTTP request carrying the identity headers of scope
func makeScopedRequest(method, url string, body io.Reader, scope ledger.Scope) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if scope.UserID != "" {
		req.Header.Set(userIDHeader, scope.UserID)
	}
	if scope.OrgID != "" {
		req.Header.Set(orgIDHeader, scope.OrgID)
	}

	recorder := httptest.NewRecorder()
	testRouter.ServeHTTP(recorder, req)

	return recorder
}

// makeJSONRequest marshals payload and makes an HTTP request with it
func makeJSONRequest(t *testing.T, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return makeRequest(method, url, bytes.NewBuffer(body))
}

// makeMultipartRequest makes a file upload request with extra form fields
func makeMultipartRequest(url string, fields map[string]string, fieldName, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for k, v := range fields {
		writer.WriteField(k, v)
	}
	if fieldName != "" {
		part, err := writer.CreateFormFile(fieldName, fileName)
		if err != nil {
			panic(err)
		}
		part.Write(fileContent)
	}
	writer.Close()

	req := httptest.NewRequest("POST", url, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(userIDHeader, testScope.UserID)

	recorder := httptest.NewRecorder()
	testRouter.ServeHTTP(recorder, req)

	return recorder
}

// parseJSONResponse helper function to parse JSON response
func parseJSONResponse(recorder *httptest.ResponseRecorder, target interface{}) error {
	return json.Unmarshal(recorder.Body.Bytes(), target)
}

// assertErrorResponse checks the status code and that an error message is present
func assertErrorResponse(t *testing.T, resp *httptest.ResponseRecorder, status int) string {
	t.Helper()
	assert.Equal(t, status, resp.Code, resp.Body.String())

	var errorResp map[string]string
	require.NoError(t, parseJSONResponse(resp, &errorResp))
	assert.NotEmpty(t, errorResp["error"])
	return errorResp["error"]
}

func TestHealthEndpoints(t *testing.T) {
	cleanupTestData()

	t.Run("liveness needs no identity", func(t *testing.T) {
		resp := makeScopedRequest("GET", "/healthz", nil, ledger.Scope{})
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("readiness pings the store", func(t *testing.T) {
		resp := makeScopedRequest("GET", "/readyz", nil, ledger.Scope{})
		assert.Equal(t, http.StatusOK, resp.Code)

		var body map[string]string
		require.NoError(t, parseJSONResponse(resp, &body))
		assert.Equal(t, "ready", body["status"])
	})
}

func TestRequireScope(t *testing.T) {
	cleanupTestData()

	t.Run("should reject requests without a user", func(t *testing.T) {
		for _, url := range []string{"/api/accounts", "/api/categories", "/api/transactions", "/api/summary"} {
			resp := makeScopedRequest("GET", url, nil, ledger.Scope{})
			msg := assertErrorResponse(t, resp, http.StatusUnauthorized)
			assert.Equal(t, "Unauthorized.", msg, url)
		}
	})

	t.Run("should reject an org without a user", func(t *testing.T) {
		resp := makeScopedRequest("GET", "/api/accounts", nil, ledger.Scope{OrgID: "org_test"})
		assertErrorResponse(t, resp, http.StatusUnauthorized)
	})

	t.Run("should echo a request id", func(t *testing.T) {
		resp := makeRequest("GET", "/api/accounts", nil)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.NotEmpty(t, resp.Header().Get("X-Request-ID"))
	})
}
