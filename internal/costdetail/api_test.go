package costdetail_test

import (
	"net/http"
	"testing"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/costdetail"
	sharedError "github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/events"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestEnvironment(t *testing.T) (*gin.Engine, testutil.Hierarchy, *testutil.RecordingPublisher) {
	t.Helper()

	pool := testutil.SetupTestDB(t)
	h := testutil.SeedHierarchy(t, pool)
	publisher := testutil.NewRecordingPublisher()

	detailHandler := costdetail.NewHandler(costdetail.NewService(costdetail.NewRepository(pool), publisher))

	router := testutil.SetupTestRouter()
	group := router.Group("/api/v1/cost-details")
	group.POST("", detailHandler.Create)
	group.GET("", detailHandler.List)
	group.GET("/:id", detailHandler.Get)
	group.PUT("/:id", detailHandler.Update)
	group.POST("/:id/deactivate", detailHandler.Deactivate)
	group.DELETE("/:id", detailHandler.Delete)

	return router, h, publisher
}

func createLine(t *testing.T, router *gin.Engine, h testutil.Hierarchy, quantity, unitCost string) costdetail.Response {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/cost-details",
		Body: costdetail.CreateRequest{
			ActivityID:  h.Activity.ID,
			AttributeID: h.Attribute.ID,
			Quantity:    decimal.RequireFromString(quantity),
			UnitCost:    decimal.RequireFromString(unitCost),
		},
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response costdetail.Response
	testutil.ParseResponse(t, recorder, &response)
	return response
}

func TestCreateCostDetail_ComputesAmount(t *testing.T) {
	// Given: Seeded activity and attribute
	router, h, _ := setupTestEnvironment(t)

	// When: Create a line
	line := createLine(t, router, h, "3", "19.99")

	// Then: Amount is quantity times unit cost
	assert.True(t, decimal.RequireFromString("59.97").Equal(line.Amount), line.Amount.String())
	assert.Equal(t, "active", line.Status)
}

func TestCreateCostDetail_UnknownAttribute(t *testing.T) {
	// Given: Seeded activity only matters here
	router, h, _ := setupTestEnvironment(t)

	// When: Reference an attribute that does not exist
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/cost-details",
		Body: costdetail.CreateRequest{
			ActivityID:  h.Activity.ID,
			AttributeID: uuid.NewString(),
			Quantity:    decimal.NewFromInt(1),
			UnitCost:    decimal.NewFromInt(1),
		},
	})

	// Then: Invalid reference
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "DATA-001", errorResponse.Code)
}

func TestCreateCostDetail_NegativeQuantity(t *testing.T) {
	router, h, _ := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/cost-details",
		Body: map[string]any{
			"activityId": h.Activity.ID, "attributeId": h.Attribute.ID,
			"quantity": "-1", "unitCost": "10",
		},
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateCostDetail_RecomputesAmount(t *testing.T) {
	// Given: Existing line
	router, h, _ := setupTestEnvironment(t)
	line := createLine(t, router, h, "2", "10")
	quantity := decimal.NewFromInt(5)

	// When: Change the quantity
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPut,
		URL:    "/api/v1/cost-details/" + line.ID,
		Body:   costdetail.UpdateRequest{Quantity: &quantity},
	})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var updated costdetail.Response
	testutil.ParseResponse(t, recorder, &updated)
	assert.True(t, decimal.NewFromInt(50).Equal(updated.Amount), updated.Amount.String())
}

func TestDeleteCostDetail(t *testing.T) {
	// Given: Existing line
	router, h, publisher := setupTestEnvironment(t)
	line := createLine(t, router, h, "1", "1")
	url := "/api/v1/cost-details/" + line.ID

	// When: Delete twice
	first := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodDelete, URL: url})
	second := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodDelete, URL: url})

	// Then: Gone after the first, NotFound on the second
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusNotFound, second.Code)

	get := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: url})
	assert.Equal(t, http.StatusNotFound, get.Code)
	assert.Equal(t, []string{events.Created, events.Deleted}, publisher.Types())
}

func TestDeactivateCostDetail_ThenFilterByStatus(t *testing.T) {
	// Given: Two lines
	router, h, _ := setupTestEnvironment(t)
	kept := createLine(t, router, h, "1", "1")
	retired := createLine(t, router, h, "2", "2")

	// When: Deactivate one, twice
	first := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodPost, URL: "/api/v1/cost-details/" + retired.ID + "/deactivate"})
	second := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodPost, URL: "/api/v1/cost-details/" + retired.ID + "/deactivate"})

	// Then
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, http.StatusConflict, second.Code)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/cost-details?activityId=" + h.Activity.ID + "&status=active",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var responses []costdetail.Response
	testutil.ParseResponse(t, recorder, &responses)
	require.Len(t, responses, 1)
	assert.Equal(t, kept.ID, responses[0].ID)
}
