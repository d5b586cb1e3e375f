package chapter_test

import (
	"net/http"
	"testing"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/chapter"
	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestEnvironment(t *testing.T) (*gin.Engine, testutil.Hierarchy) {
	t.Helper()

	pool := testutil.SetupTestDB(t)
	h := testutil.SeedHierarchy(t, pool)
	chapterHandler := chapter.NewHandler(chapter.NewService(chapter.NewRepository(pool), testutil.NewRecordingPublisher()))

	router := testutil.SetupTestRouter()
	group := router.Group("/api/v1/chapters")
	group.POST("", chapterHandler.Create)
	group.GET("", chapterHandler.List)
	group.GET("/:id", chapterHandler.Get)
	group.PUT("/:id", chapterHandler.Update)
	group.DELETE("/:id", chapterHandler.Deactivate)

	return router, h
}

func createChapter(t *testing.T, router *gin.Engine, request chapter.CreateRequest) chapter.Response {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost, URL: "/api/v1/chapters", Body: request,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response chapter.Response
	testutil.ParseResponse(t, recorder, &response)
	return response
}

func TestListChapters_ByBudgetInSortOrder(t *testing.T) {
	// Given: Seeded chapter (order 1) plus two more created out of order
	router, h := setupTestEnvironment(t)
	last := createChapter(t, router, chapter.CreateRequest{BudgetID: h.Budget.ID, Code: "CH-9", Name: "Finishing", SortOrder: 9})
	first := createChapter(t, router, chapter.CreateRequest{BudgetID: h.Budget.ID, Code: "CH-0", Name: "Permits", SortOrder: 0})

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet, URL: "/api/v1/chapters?budgetId=" + h.Budget.ID,
	})

	// Then: Ordered by sortOrder, not by creation time
	require.Equal(t, http.StatusOK, recorder.Code)
	var responses []chapter.Response
	testutil.ParseResponse(t, recorder, &responses)
	require.Len(t, responses, 3)
	assert.Equal(t, []string{first.ID, h.Chapter.ID, last.ID},
		[]string{responses[0].ID, responses[1].ID, responses[2].ID})
}

func TestUpdateChapter_PatchKeepsOtherFields(t *testing.T) {
	// Given
	router, h := setupTestEnvironment(t)
	order := 5

	// When: Change only the sort order
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPut, URL: "/api/v1/chapters/" + h.Chapter.ID, Body: chapter.UpdateRequest{SortOrder: &order},
	})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var updated chapter.Response
	testutil.ParseResponse(t, recorder, &updated)
	assert.Equal(t, 5, updated.SortOrder)
	assert.Equal(t, h.Chapter.Code, updated.Code)
	assert.Equal(t, h.Chapter.Name, updated.Name)
	assert.True(t, updated.UpdatedAt.After(h.Chapter.UpdatedAt) || updated.UpdatedAt.Equal(h.Chapter.UpdatedAt))
}
