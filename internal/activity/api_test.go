package activity_test

import (
	"net/http"
	"testing"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/activity"
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
	activityHandler := activity.NewHandler(activity.NewService(activity.NewRepository(pool), testutil.NewRecordingPublisher()))

	router := testutil.SetupTestRouter()
	group := router.Group("/api/v1/activities")
	group.POST("", activityHandler.Create)
	group.GET("", activityHandler.List)
	group.GET("/by-code/:code", activityHandler.GetByCode)
	group.GET("/:id", activityHandler.Get)
	group.PUT("/:id", activityHandler.Update)

	return router, h
}

func TestGetActivity_Total(t *testing.T) {
	// Given: Seeded activity, 10 x 12.50
	router, h := setupTestEnvironment(t)

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/activities/by-code/ACT-1"})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code)
	var response activity.Response
	testutil.ParseResponse(t, recorder, &response)
	assert.Equal(t, h.Activity.ID, response.ID)
	assert.True(t, decimal.RequireFromString("125").Equal(response.Total), response.Total.String())
}

func TestUpdateActivity_MoveToMissingChapter(t *testing.T) {
	// Given
	router, h := setupTestEnvironment(t)
	missing := uuid.NewString()

	// When: Re-parent onto a chapter that does not exist
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPut, URL: "/api/v1/activities/" + h.Activity.ID, Body: activity.UpdateRequest{ChapterID: &missing},
	})

	// Then: Invalid reference, stored row untouched
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "DATA-001", errorResponse.Code)

	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/api/v1/activities/" + h.Activity.ID})
	var stored activity.Response
	testutil.ParseResponse(t, recorder, &stored)
	assert.Equal(t, h.Chapter.ID, stored.ChapterID)
}

func TestCreateActivity_InChapter(t *testing.T) {
	router, h := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/activities",
		Body: activity.CreateRequest{
			ChapterID: h.Chapter.ID, Code: "ACT-2", Name: "Backfill", Unit: "m3",
			Quantity: decimal.RequireFromString("4.5"), UnitPrice: decimal.RequireFromString("8"),
		},
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/v1/activities?chapterId=" + h.Chapter.ID + "&status=active",
	})
	var responses []activity.Response
	testutil.ParseResponse(t, recorder, &responses)
	require.Len(t, responses, 2)
	assert.Equal(t, "ACT-2", responses[0].Code)
	assert.True(t, decimal.NewFromInt(36).Equal(responses[0].Total))
}
