package chapter

import (
	"net/http"

	"github.com/changhyeonkim/budget-admin/go-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var request CreateRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.service.Create(c.Request.Context(), &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// List handles GET /chapters?budgetId=&status=
func (h *Handler) List(c *gin.Context) {
	status, _, ok := handler.StatusQuery(c)
	if !ok {
		return
	}

	response, err := h.service.List(c.Request.Context(), c.Query("budgetId"), status)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) Get(c *gin.Context) {
	response, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetByCode(c *gin.Context) {
	response, err := h.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) Update(c *gin.Context) {
	var request UpdateRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.service.Update(c.Request.Context(), c.Param("id"), &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) Deactivate(c *gin.Context) {
	if err := h.service.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
