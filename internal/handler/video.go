package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidvault/backend/internal/model"
	"github.com/vidvault/backend/internal/service"
)

type VideoHandler struct {
	svc *service.VideoService
}

func NewVideoHandler(svc *service.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// Dashboard godoc
// @Summary List active videos
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.VideoListItem
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /dashboard [get]
func (h *VideoHandler) Dashboard(c *gin.Context) {
	list, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Play godoc
// @Summary Get embed URL for a video
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} model.VideoPlayResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /video/{id}/play [get]
func (h *VideoHandler) Play(c *gin.Context) {
	res, err := h.svc.Play(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid video id"})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "Video not found"})
		default:
			c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}
