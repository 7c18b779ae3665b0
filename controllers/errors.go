package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/gastro-os/floorplan"
	"github.com/yeremiapane/gastro-os/services"
	"github.com/yeremiapane/gastro-os/utils"
)

var errStatus = []struct {
	err  error
	code int
}{
	{floorplan.ErrNoTenant, http.StatusUnauthorized},
	{floorplan.ErrTableNotFound, http.StatusNotFound},
	{floorplan.ErrLabelNotFound, http.StatusNotFound},
	{services.ErrFloorNotFound, http.StatusNotFound},
	{floorplan.ErrNoSession, http.StatusConflict},
	{floorplan.ErrSessionActive, http.StatusConflict},
	{floorplan.ErrPointerMismatch, http.StatusConflict},
	{services.ErrLastFloor, http.StatusConflict},
	{floorplan.ErrInvalidShape, http.StatusBadRequest},
	{floorplan.ErrInvalidStatus, http.StatusBadRequest},
	{floorplan.ErrInvalidDragKind, http.StatusBadRequest},
	{floorplan.ErrEmptyLabelName, http.StatusBadRequest},
	{floorplan.ErrSelfMerge, http.StatusBadRequest},
	{services.ErrEmptyName, http.StatusBadRequest},
	{services.ErrInvalidCapacity, http.StatusBadRequest},
	{services.ErrInvalidGrid, http.StatusBadRequest},
}

// statusFor maps service errors to HTTP codes. Anything unknown is a 500.
func statusFor(err error) int {
	for _, e := range errStatus {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return http.StatusInternalServerError
}

func respondServiceError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		utils.ErrorLogger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	utils.RespondError(c, code, err)
}
