package attribute_test

import (
	"net/http"
	"testing"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/attribute"
	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestEnvironment(t *testing.T) (*gin.Engine, testutil.Hierarchy) {
	t.Helper()

	pool := testutil.SetupTestDB(t)
	h := testutil.SeedHierarchy(t, pool)
	attributeHandler := attribute.NewHandler(attribute.NewService(attribute.NewRepository(pool), testutil.NewRecordingPublisher()))

	router := testutil.SetupTestRouter()
	group := router.Group("/api/v1/attributes")
	group.POST("", attributeHandler.Create)
	group.GET("", attributeHandler.List)
	group.DELETE("/:id", attributeHandler.Deactivate)

	return router, h
}

func TestCreateAttribute_DataType(t *testing.T) {
	router, h := setupTestEnvironment(t)

	testCases := []struct {
		name       string
		dataType   string
		wantStatus int
	}{
		{name: "number", dataType: "number", wantStatus: http.StatusCreated},
		{name: "date", dataType: "date", wantStatus: http.StatusCreated},
		{name: "unsupported", dataType: "json", wantStatus: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/attributes",
				Body: attribute.CreateRequest{
					CompanyID: h.Company.ID, Code: "ATTR-" + tc.name, Name: tc.name, DataType: tc.dataType,
				},
			})
			assert.Equal(t, tc.wantStatus, recorder.Code, recorder.Body.String())
		})
	}
}

func TestListAttributes_ByCompanyAndStatus(t *testing.T) {
	// Given: Seeded LABOUR attribute deactivated
	router, h := setupTestEnvironment(t)
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodDelete, URL: "/api/v1/attributes/" + h.Attribute.ID})
	require.Equal(t, http.StatusNoContent, recorder.Code)

	// When
	active := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/v1/attributes?companyId=" + h.Company.ID + "&status=active",
	})
	inactive := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/v1/attributes?companyId=" + h.Company.ID + "&status=inactive",
	})

	// Then
	assert.JSONEq(t, "[]", active.Body.String())
	var responses []attribute.Response
	testutil.ParseResponse(t, inactive, &responses)
	require.Len(t, responses, 1)
	assert.Equal(t, h.Attribute.ID, responses[0].ID)
}

func TestDeactivateAttribute_Unknown(t *testing.T) {
	router, _ := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodDelete, URL: "/api/v1/attributes/00000000-0000-0000-0000-000000000000"})

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "DATA-003", errorResponse.Code)
}
