package project_test

import (
	"net/http"
	"testing"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/model"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/project"
	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/events"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnvironment mounts the project routes on a seeded database
func setupTestEnvironment(t *testing.T) (*gin.Engine, testutil.Hierarchy, *testutil.RecordingPublisher) {
	t.Helper()

	pool := testutil.SetupTestDB(t)
	h := testutil.SeedHierarchy(t, pool)
	publisher := testutil.NewRecordingPublisher()

	projectHandler := project.NewHandler(project.NewService(project.NewRepository(pool), publisher))

	router := testutil.SetupTestRouter()
	group := router.Group("/api/v1/projects")
	group.POST("", projectHandler.Create)
	group.GET("", projectHandler.List)
	group.GET("/by-code/:code", projectHandler.GetByCode)
	group.GET("/:id", projectHandler.Get)
	group.PUT("/:id", projectHandler.Update)
	group.DELETE("/:id", projectHandler.Deactivate)
	group.POST("/:id/complete", projectHandler.Complete)
	group.POST("/:id/cancel", projectHandler.Cancel)

	return router, h, publisher
}

func createProject(t *testing.T, router *gin.Engine, companyID, code string) project.Response {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/projects",
		Body:   project.CreateRequest{CompanyID: companyID, Code: code, Name: "Project " + code},
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response project.Response
	testutil.ParseResponse(t, recorder, &response)
	return response
}

func errorCode(t *testing.T, body testutil.TestRequest, router *gin.Engine) (int, string) {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, router, body)
	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	return recorder.Code, errorResponse.Code
}

func TestCreateProject_Success(t *testing.T) {
	// Given: Seeded company
	router, h, publisher := setupTestEnvironment(t)

	// When: Create a project under it
	created := createProject(t, router, h.Company.ID, "NEW-1")

	// Then: Defaults applied and event published
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, h.Company.ID, created.CompanyID)
	assert.Equal(t, "active", created.Status)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
	assert.Equal(t, []string{events.Created}, publisher.Types())
}

func TestCreateProject_UnknownCompany(t *testing.T) {
	// Given: Setup test environment
	router, _, publisher := setupTestEnvironment(t)

	// When: Create under a random company id
	status, code := errorCode(t, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/projects",
		Body:   project.CreateRequest{CompanyID: uuid.NewString(), Code: "ORPHAN", Name: "Orphan"},
	}, router)

	// Then: 422 invalid reference, nothing published
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "DATA-001", code)
	assert.Empty(t, publisher.Events())
}

func TestCreateProject_DuplicateCode(t *testing.T) {
	// Given: Seeded project PRJ-1
	router, h, _ := setupTestEnvironment(t)

	// When: Create another with the same code
	status, code := errorCode(t, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/projects",
		Body:   project.CreateRequest{CompanyID: h.Company.ID, Code: "PRJ-1", Name: "Copy"},
	}, router)

	// Then: 409
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DATA-002", code)
}

func TestCreateProject_ValidationError(t *testing.T) {
	router, h, _ := setupTestEnvironment(t)

	testCases := []struct {
		name string
		body map[string]any
	}{
		{name: "missing company", body: map[string]any{"code": "X1", "name": "X"}},
		{name: "company not uuid", body: map[string]any{"companyId": "acme", "code": "X1", "name": "X"}},
		{name: "bad code", body: map[string]any{"companyId": h.Company.ID, "code": "no spaces!", "name": "X"}},
		{name: "unknown status", body: map[string]any{"companyId": h.Company.ID, "code": "X1", "name": "X", "status": "archived"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, code := errorCode(t, testutil.TestRequest{Method: http.MethodPost, URL: "/api/v1/projects", Body: tc.body}, router)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, sharedError.ValidationFailed.Code, code)
		})
	}
}

func TestCreateProject_InvalidPeriod(t *testing.T) {
	router, h, _ := setupTestEnvironment(t)

	status, code := errorCode(t, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/projects",
		Body: map[string]any{
			"companyId": h.Company.ID, "code": "LATE", "name": "Late",
			"startDate": "2024-06-01T00:00:00Z", "endDate": "2024-01-01T00:00:00Z",
		},
	}, router)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "PROJECT-001", code)
}

func TestGetProject(t *testing.T) {
	// Given: Seeded project
	router, h, _ := setupTestEnvironment(t)

	// When/Then: by id
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/projects/" + h.Project.ID})
	require.Equal(t, http.StatusOK, recorder.Code)
	var byID project.Response
	testutil.ParseResponse(t, recorder, &byID)
	assert.Equal(t, "PRJ-1", byID.Code)

	// by code
	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/projects/by-code/PRJ-1"})
	require.Equal(t, http.StatusOK, recorder.Code)
	var byCode project.Response
	testutil.ParseResponse(t, recorder, &byCode)
	assert.Equal(t, h.Project.ID, byCode.ID)

	// missing
	status, code := errorCode(t, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/projects/" + uuid.NewString()}, router)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "DATA-003", code)
}

func TestListProjects_Filters(t *testing.T) {
	// Given: Seeded project plus a deactivated one
	router, h, _ := setupTestEnvironment(t)
	second := createProject(t, router, h.Company.ID, "PRJ-2")
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodDelete, URL: "/api/v1/projects/" + second.ID})
	require.Equal(t, http.StatusNoContent, recorder.Code)

	testCases := []struct {
		name  string
		query string
		codes []string
	}{
		{name: "all", query: "", codes: []string{"PRJ-2", "PRJ-1"}},
		{name: "inactive", query: "?status=inactive", codes: []string{"PRJ-2"}},
		{name: "company and active", query: "?companyId=" + h.Company.ID + "&status=active", codes: []string{"PRJ-1"}},
		{name: "other company", query: "?companyId=" + uuid.NewString(), codes: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/projects" + tc.query})
			require.Equal(t, http.StatusOK, recorder.Code)

			var responses []project.Response
			testutil.ParseResponse(t, recorder, &responses)
			codes := []string{}
			for _, r := range responses {
				codes = append(codes, r.Code)
			}
			assert.Equal(t, tc.codes, codes)
		})
	}

	// Unknown status filter is a 400
	status, code := errorCode(t, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/projects?status=archived"}, router)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, sharedError.ValidationFailed.Code, code)
}

func TestUpdateProject(t *testing.T) {
	// Given: Seeded project
	router, h, publisher := setupTestEnvironment(t)
	name := "Tower B"

	// When: Rename it
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPut,
		URL:    "/api/v1/projects/" + h.Project.ID,
		Body:   project.UpdateRequest{Name: &name},
	})

	// Then: Other fields and status kept, updatedAt moved
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var updated project.Response
	testutil.ParseResponse(t, recorder, &updated)
	assert.Equal(t, "Tower B", updated.Name)
	assert.Equal(t, "PRJ-1", updated.Code)
	assert.Equal(t, "active", updated.Status)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	assert.Equal(t, []string{events.Updated}, publisher.Types())
}

func TestUpdateProject_StatusRules(t *testing.T) {
	// Given: Seeded project, deactivated
	router, h, _ := setupTestEnvironment(t)
	suspended := "suspended"
	active := "active"

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPut,
		URL:    "/api/v1/projects/" + h.Project.ID,
		Body:   project.UpdateRequest{Status: &suspended},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodDelete, URL: "/api/v1/projects/" + h.Project.ID})
	require.Equal(t, http.StatusNoContent, recorder.Code)

	// When: Try to reactivate through update
	status, code := errorCode(t, testutil.TestRequest{
		Method: http.MethodPut,
		URL:    "/api/v1/projects/" + h.Project.ID,
		Body:   project.UpdateRequest{Status: &active},
	}, router)

	// Then: Invalid transition
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DATA-005", code)
}

func TestUpdateProject_NotFound(t *testing.T) {
	router, _, _ := setupTestEnvironment(t)
	name := "Nothing"

	status, code := errorCode(t, testutil.TestRequest{
		Method: http.MethodPut,
		URL:    "/api/v1/projects/" + uuid.NewString(),
		Body:   project.UpdateRequest{Name: &name},
	}, router)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "DATA-003", code)
}

func TestProjectStatusEndpoints(t *testing.T) {
	// Given: Seeded project
	router, h, publisher := setupTestEnvironment(t)
	url := "/api/v1/projects/" + h.Project.ID

	// When/Then: complete succeeds once
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodPost, URL: url + "/complete"})
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	status, code := errorCode(t, testutil.TestRequest{Method: http.MethodPost, URL: url + "/complete"}, router)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DATA-004", code)

	// cancelling a completed project is refused
	status, code = errorCode(t, testutil.TestRequest{Method: http.MethodPost, URL: url + "/cancel"}, router)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DATA-005", code)

	// deactivating an unknown project is a 404
	status, code = errorCode(t, testutil.TestRequest{Method: http.MethodDelete, URL: "/api/v1/projects/" + uuid.NewString()}, router)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "DATA-003", code)

	published := publisher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, events.Status, published[0].Type)
	assert.Equal(t, model.StatusCompleted.String(), published[0].Status)
}
