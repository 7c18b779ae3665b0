package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/gastro-os/middlewares"
	"github.com/yeremiapane/gastro-os/services"
	"github.com/yeremiapane/gastro-os/utils"
)

type AdminController struct {
	Salon *services.SalonService
}

func NewAdminController(salon *services.SalonService) *AdminController {
	return &AdminController{Salon: salon}
}

// GetDashboardStats counts floors, tables per status, groups and seats.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	stats, err := ac.Salon.Stats(middlewares.Scope(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}
