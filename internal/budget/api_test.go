package budget_test

import (
	"net/http"
	"testing"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/budget"
	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestEnvironment(t *testing.T) (*gin.Engine, testutil.Hierarchy) {
	t.Helper()

	pool := testutil.SetupTestDB(t)
	h := testutil.SeedHierarchy(t, pool)
	budgetHandler := budget.NewHandler(budget.NewService(budget.NewRepository(pool), testutil.NewRecordingPublisher()))

	router := testutil.SetupTestRouter()
	group := router.Group("/api/v1/budgets")
	group.POST("", budgetHandler.Create)
	group.GET("", budgetHandler.List)
	group.GET("/by-code/:code", budgetHandler.GetByCode)
	group.GET("/:id", budgetHandler.Get)
	group.PUT("/:id", budgetHandler.Update)
	group.DELETE("/:id", budgetHandler.Deactivate)
	group.POST("/:id/complete", budgetHandler.Complete)
	group.POST("/:id/cancel", budgetHandler.Cancel)

	return router, h
}

func createBudget(t *testing.T, router *gin.Engine, projectID, code string) budget.Response {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/budgets",
		Body: budget.CreateRequest{
			ProjectID: projectID, Code: code, Name: "Capex " + code,
			Currency: "krw", TotalAmount: decimal.RequireFromString("2500000.50"),
		},
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response budget.Response
	testutil.ParseResponse(t, recorder, &response)
	return response
}

func TestCreateBudget_UpperCasesCurrency(t *testing.T) {
	router, h := setupTestEnvironment(t)

	created := createBudget(t, router, h.Project.ID, "BGT-2")

	assert.Equal(t, "KRW", created.Currency)
	assert.True(t, decimal.RequireFromString("2500000.50").Equal(created.TotalAmount), created.TotalAmount.String())
	assert.Equal(t, h.Project.ID, created.ProjectID)
}

func TestCreateBudget_Rejected(t *testing.T) {
	router, h := setupTestEnvironment(t)

	testCases := []struct {
		name       string
		request    budget.CreateRequest
		wantStatus int
		wantCode   string
	}{
		{name: "unknown project", request: budget.CreateRequest{ProjectID: uuid.NewString(), Code: "BGT-9", Name: "x", Currency: "USD"}, wantStatus: http.StatusUnprocessableEntity, wantCode: "DATA-001"},
		{name: "duplicate code", request: budget.CreateRequest{ProjectID: h.Project.ID, Code: h.Budget.Code, Name: "x", Currency: "USD"}, wantStatus: http.StatusConflict, wantCode: "DATA-002"},
		{name: "bad currency", request: budget.CreateRequest{ProjectID: h.Project.ID, Code: "BGT-9", Name: "x", Currency: "US"}, wantStatus: http.StatusBadRequest, wantCode: "ERROR-001"},
		{name: "negative total", request: budget.CreateRequest{ProjectID: h.Project.ID, Code: "BGT-9", Name: "x", Currency: "USD", TotalAmount: decimal.NewFromInt(-5)}, wantStatus: http.StatusBadRequest, wantCode: "ERROR-001"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost, URL: "/api/v1/budgets", Body: tc.request,
			})

			assert.Equal(t, tc.wantStatus, recorder.Code)
			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.Equal(t, tc.wantCode, errorResponse.Code)
		})
	}
}

func TestBudgetCompleteThenCancel(t *testing.T) {
	// Given: Active budget
	router, h := setupTestEnvironment(t)
	base := "/api/v1/budgets/" + h.Budget.ID

	// When: Complete, complete again, cancel
	complete := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodPost, URL: base + "/complete"})
	again := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodPost, URL: base + "/complete"})
	cancel := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodPost, URL: base + "/cancel"})

	// Then: Completed is terminal for cancel
	assert.Equal(t, http.StatusNoContent, complete.Code)
	assert.Equal(t, http.StatusConflict, again.Code)
	assert.Equal(t, http.StatusConflict, cancel.Code)

	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, again, &errorResponse)
	assert.Equal(t, "DATA-004", errorResponse.Code)
	testutil.ParseResponse(t, cancel, &errorResponse)
	assert.Equal(t, "DATA-005", errorResponse.Code)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: base})
	var stored budget.Response
	testutil.ParseResponse(t, recorder, &stored)
	assert.Equal(t, "completed", stored.Status)
}

func TestListBudgets_ByProject(t *testing.T) {
	// Given: Seeded budget plus a newer one
	router, h := setupTestEnvironment(t)
	newer := createBudget(t, router, h.Project.ID, "BGT-2")

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/v1/budgets?projectId=" + h.Project.ID,
	})

	// Then: Newest first
	require.Equal(t, http.StatusOK, recorder.Code)
	var responses []budget.Response
	testutil.ParseResponse(t, recorder, &responses)
	require.Len(t, responses, 2)
	assert.Equal(t, newer.ID, responses[0].ID)
	assert.Equal(t, h.Budget.ID, responses[1].ID)
}
