package handler

import (
	"net/http"
	"strconv"

	"visitorlog/internal/apierror"
	"visitorlog/internal/dto"
	"visitorlog/internal/middleware"
	"visitorlog/internal/service"

	"github.com/gin-gonic/gin"
)

type VisitorsHandler struct{ svc service.VisitorService }

func NewVisitorsHandler(svc service.VisitorService) *VisitorsHandler {
	return &VisitorsHandler{svc: svc}
}

// List godoc
// @Summary List all visitors with creator names
// @Tags visitors
// @Produce json
// @Success 200 {array} dto.VisitorResponse
// @Router /v1/visitors [get]
func (h *VisitorsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VisitorsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Check in a visitor
// @Tags visitors
// @Accept json
// @Produce json
// @Param body body dto.SaveVisitorRequest true "Visitor fields"
// @Success 201 {object} dto.CreateVisitorResponse
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/visitors [post]
func (h *VisitorsHandler) Create(c *gin.Context) {
	var req dto.SaveVisitorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.Add(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateVisitorResponse{ID: id, Message: "Visitor checked in"})
}

func (h *VisitorsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.SaveVisitorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Update(c.Request.Context(), middleware.GetPrincipal(c), id, req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Visitor updated"})
}

// Exit godoc
// @Summary Check out a visitor
// @Tags visitors
// @Accept json
// @Produce json
// @Param id path int true "Visitor ID"
// @Param body body dto.CloseVisitorRequest true "Exit time (HH:MM)"
// @Success 200 {object} map[string]string
// @Router /v1/visitors/{id}/exit [post]
func (h *VisitorsHandler) Exit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CloseVisitorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Close(c.Request.Context(), middleware.GetPrincipal(c), id, req.ExitTime); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Exit recorded"})
}

func (h *VisitorsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Visitor deleted"})
}

// pathID parses the :id path parameter; IDs are positive integers.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return 0, false
	}
	return id, true
}
