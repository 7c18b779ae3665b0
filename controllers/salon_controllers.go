package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/gastro-os/floorplan"
	"github.com/yeremiapane/gastro-os/middlewares"
	"github.com/yeremiapane/gastro-os/realtime"
	"github.com/yeremiapane/gastro-os/services"
	"github.com/yeremiapane/gastro-os/utils"
)

// SalonController manages floors, tables and labels outside the editor.
type SalonController struct {
	Salon *services.SalonService
	Hub   *realtime.Hub
}

func NewSalonController(salon *services.SalonService, hub *realtime.Hub) *SalonController {
	if hub == nil {
		hub = realtime.Default()
	}
	return &SalonController{Salon: salon, Hub: hub}
}

// ---------------------------------------------------------------------
// Floors
// ---------------------------------------------------------------------

func (sc *SalonController) ListFloors(c *gin.Context) {
	floors, err := sc.Salon.ListFloors(middlewares.Scope(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of floors", floors)
}

func (sc *SalonController) CreateFloor(c *gin.Context) {
	var req services.FloorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	floor, err := sc.Salon.CreateFloor(middlewares.Scope(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("New floor created: %s (order=%d)", floor.Name, floor.Order)
	utils.RespondJSON(c, http.StatusCreated, "Floor created successfully", floor)
}

func (sc *SalonController) UpdateFloor(c *gin.Context) {
	var req services.FloorUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	floor, err := sc.Salon.UpdateFloor(middlewares.Scope(c), c.Param("floor_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Floor updated", floor)
}

func (sc *SalonController) DeleteFloor(c *gin.Context) {
	if err := sc.Salon.DeleteFloor(middlewares.Scope(c), c.Param("floor_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Floor deleted successfully", nil)
}

// ---------------------------------------------------------------------
// Tables
// ---------------------------------------------------------------------

// floorParam returns the floor_id query parameter or the first floor.
func (sc *SalonController) floorParam(c *gin.Context) (string, error) {
	if id := c.Query("floor_id"); id != "" {
		return id, nil
	}
	first, err := sc.Salon.FirstFloor(middlewares.Scope(c))
	if err != nil {
		return "", err
	}
	return first.ID, nil
}

func (sc *SalonController) ListTables(c *gin.Context) {
	floorID, err := sc.floorParam(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	tables, err := sc.Salon.ListTables(middlewares.Scope(c), floorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (sc *SalonController) CreateTable(c *gin.Context) {
	var req services.TableInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := sc.Salon.CreateTable(middlewares.Scope(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", table.Name, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

func (sc *SalonController) UpdateTable(c *gin.Context) {
	var req services.TableUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := sc.Salon.UpdateTableDetails(middlewares.Scope(c), c.Param("table_id"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// UpdateTableStatus switches a table between free, occupied and dirty and
// pushes the new status to the restaurant's clients right away.
func (sc *SalonController) UpdateTableStatus(c *gin.Context) {
	var body struct {
		Status floorplan.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	scope := middlewares.Scope(c)
	tableID := c.Param("table_id")
	if err := sc.Salon.ChangeTableStatus(scope, tableID, body.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	table, err := sc.Salon.GetTable(scope, tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sc.Hub.BroadcastTableStatus(scope.TenantID, map[string]interface{}{
		"table_id": table.ID,
		"status":   table.Status,
		"floor_id": table.FloorID,
	})

	utils.InfoLogger.Printf("Table %s status changed to %s", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

func (sc *SalonController) DeleteTable(c *gin.Context) {
	if err := sc.Salon.DeleteTable(middlewares.Scope(c), c.Param("table_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted successfully", nil)
}

// ---------------------------------------------------------------------
// Labels
// ---------------------------------------------------------------------

func (sc *SalonController) ListLabels(c *gin.Context) {
	floorID, err := sc.floorParam(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	labels, err := sc.Salon.ListLabels(middlewares.Scope(c), floorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of labels", labels)
}

func (sc *SalonController) CreateLabel(c *gin.Context) {
	var req struct {
		Name    string  `json:"name" binding:"required"`
		FloorID *string `json:"floor_id"`
		X       int     `json:"pos_x"`
		Y       int     `json:"pos_y"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	label, err := sc.Salon.CreateLabel(middlewares.Scope(c), floorplan.LabelInput{
		Name:    req.Name,
		FloorID: req.FloorID,
		X:       floorplan.Snap(float64(req.X)),
		Y:       floorplan.Snap(float64(req.Y)),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Label created successfully", label)
}

func (sc *SalonController) UpdateLabel(c *gin.Context) {
	var req services.LabelUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := sc.Salon.UpdateLabel(middlewares.Scope(c), c.Param("label_id"), req); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Label updated", nil)
}

func (sc *SalonController) DeleteLabel(c *gin.Context) {
	if err := sc.Salon.DeleteLabel(middlewares.Scope(c), c.Param("label_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Label deleted successfully", nil)
}
