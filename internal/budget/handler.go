package budget

import (
	"context"
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

// List handles GET /budgets?projectId=&status=
func (h *Handler) List(c *gin.Context) {
	status, _, ok := handler.StatusQuery(c)
	if !ok {
		return
	}

	response, err := h.service.List(c.Request.Context(), c.Query("projectId"), status)
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
	h.changeStatus(c, h.service.Deactivate)
}

func (h *Handler) Complete(c *gin.Context) {
	h.changeStatus(c, h.service.Complete)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.service.Cancel)
}

func (h *Handler) changeStatus(c *gin.Context, apply func(ctx context.Context, id string) error) {
	if err := apply(c.Request.Context(), c.Param("id")); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
