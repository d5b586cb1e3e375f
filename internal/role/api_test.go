package role_test

import (
	"net/http"
	"testing"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/role"
	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/events"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestEnvironment(t *testing.T) (*gin.Engine, *testutil.RecordingPublisher) {
	t.Helper()

	pool := testutil.SetupTestDB(t)
	publisher := testutil.NewRecordingPublisher()
	roleHandler := role.NewHandler(role.NewService(role.NewRepository(pool), publisher))

	router := testutil.SetupTestRouter()
	group := router.Group("/api/v1/roles")
	group.POST("", roleHandler.Create)
	group.GET("", roleHandler.List)
	group.GET("/:id", roleHandler.Get)
	group.PUT("/:id", roleHandler.Update)
	group.DELETE("/:id", roleHandler.Deactivate)
	group.POST("/:id/activate", roleHandler.Activate)
	group.POST("/:id/suspend", roleHandler.Suspend)

	return router, publisher
}

func createRole(t *testing.T, router *gin.Engine, request role.CreateRequest) role.Response {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost, URL: "/api/v1/roles", Body: request,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response role.Response
	testutil.ParseResponse(t, recorder, &response)
	return response
}

func post(t *testing.T, router *gin.Engine, url string) (int, string) {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodPost, URL: url})
	if recorder.Code == http.StatusNoContent {
		return recorder.Code, ""
	}
	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	return recorder.Code, errorResponse.Code
}

func TestCreateRole_NormalizesCode(t *testing.T) {
	// Given
	router, publisher := setupTestEnvironment(t)

	// When: Lower-case code
	created := createRole(t, router, role.CreateRequest{Code: "project_lead", Name: "Project lead"})

	// Then: Stored upper case, active by default
	assert.Equal(t, "PROJECT_LEAD", created.Code)
	assert.Equal(t, "active", created.Status)
	assert.Equal(t, []string{events.Created}, publisher.Types())

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/roles/project_lead"})
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestCreateRole_Rejected(t *testing.T) {
	router, _ := setupTestEnvironment(t)
	createRole(t, router, role.CreateRequest{Code: "AUDITOR", Name: "Auditor"})

	testCases := []struct {
		name       string
		request    role.CreateRequest
		wantStatus int
		wantCode   string
	}{
		{name: "malformed code", request: role.CreateRequest{Code: "no-dash!", Name: "x"}, wantStatus: http.StatusBadRequest, wantCode: "ROLE-001"},
		{name: "duplicate code", request: role.CreateRequest{Code: "auditor", Name: "again"}, wantStatus: http.StatusConflict, wantCode: "DATA-002"},
		{name: "terminal status", request: role.CreateRequest{Code: "CLOSER", Name: "x", Status: "completed"}, wantStatus: http.StatusConflict, wantCode: "DATA-005"},
		{name: "missing name", request: role.CreateRequest{Code: "EMPTY"}, wantStatus: http.StatusBadRequest, wantCode: "ERROR-001"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost, URL: "/api/v1/roles", Body: tc.request,
			})

			assert.Equal(t, tc.wantStatus, recorder.Code)
			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.Equal(t, tc.wantCode, errorResponse.Code)
		})
	}
}

func TestRoleLifecycle(t *testing.T) {
	// Given: An active role
	router, publisher := setupTestEnvironment(t)
	createRole(t, router, role.CreateRequest{Code: "REVIEWER", Name: "Reviewer"})
	base := "/api/v1/roles/REVIEWER"

	// When / Then: Each step in order
	steps := []struct {
		action     string
		wantStatus int
		wantCode   string
	}{
		{action: "/suspend", wantStatus: http.StatusNoContent},
		{action: "/suspend", wantStatus: http.StatusConflict, wantCode: "DATA-004"},
		{action: "/activate", wantStatus: http.StatusNoContent},
		{action: "/activate", wantStatus: http.StatusConflict, wantCode: "DATA-004"},
	}
	for _, step := range steps {
		status, code := post(t, router, base+step.action)
		assert.Equal(t, step.wantStatus, status, step.action)
		assert.Equal(t, step.wantCode, code, step.action)
	}

	// Deactivate, then activate brings it back
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodDelete, URL: base})
	require.Equal(t, http.StatusNoContent, recorder.Code)
	status, _ := post(t, router, base+"/activate")
	assert.Equal(t, http.StatusNoContent, status)

	assert.Equal(t, []string{events.Created, events.Status, events.Status, events.Status, events.Status}, publisher.Types())
}

func TestSuspendPendingRole_InvalidTransition(t *testing.T) {
	// Given: A role awaiting approval
	router, _ := setupTestEnvironment(t)
	created := createRole(t, router, role.CreateRequest{Code: "DRAFTER", Name: "Drafter", Status: "pending"})
	require.Equal(t, "pending", created.Status)

	// When: Suspend (only active roles can be suspended)
	status, code := post(t, router, "/api/v1/roles/DRAFTER/suspend")

	// Then
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DATA-005", code)
}

func TestRoleTransition_NotFound(t *testing.T) {
	router, _ := setupTestEnvironment(t)

	status, code := post(t, router, "/api/v1/roles/GHOST/activate")

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "DATA-003", code)
}

func TestUpdateRole_KeepsCode(t *testing.T) {
	// Given
	router, _ := setupTestEnvironment(t)
	createRole(t, router, role.CreateRequest{Code: "EDITOR", Name: "Editor"})
	name := "Senior editor"

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPut, URL: "/api/v1/roles/EDITOR", Body: role.UpdateRequest{Name: &name},
	})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var updated role.Response
	testutil.ParseResponse(t, recorder, &updated)
	assert.Equal(t, "EDITOR", updated.Code)
	assert.Equal(t, "Senior editor", updated.Name)
	assert.Equal(t, "active", updated.Status)
}
