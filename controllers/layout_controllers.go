package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/gastro-os/floorplan"
	"github.com/yeremiapane/gastro-os/middlewares"
	"github.com/yeremiapane/gastro-os/services"
	"github.com/yeremiapane/gastro-os/utils"
)

// LayoutController exposes the floor editor. Every call acts on the
// caller's own working copy of the floor and answers with its snapshot.
type LayoutController struct {
	Layouts *services.LayoutService
}

func NewLayoutController(layouts *services.LayoutService) *LayoutController {
	return &LayoutController{Layouts: layouts}
}

type pointerRequest struct {
	Pointer floorplan.Pointer `json:"pointer"`
}

type beginDragRequest struct {
	Kind      floorplan.DragKind  `json:"kind" binding:"required"`
	TargetID  string              `json:"target_id"`
	Pointer   floorplan.Pointer   `json:"pointer"`
	Modifiers floorplan.Modifiers `json:"modifiers"`
}

// editor returns the scope, user and floor the request addresses.
func editor(c *gin.Context) (floorplan.Scope, uint, string) {
	return middlewares.Scope(c), middlewares.CurrentUserID(c), c.Param("floor_id")
}

func respondSnapshot(c *gin.Context, message string, snap floorplan.Snapshot, err error) {
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, snap)
}

func (lc *LayoutController) GetLayout(c *gin.Context) {
	scope, userID, floorID := editor(c)
	snap, err := lc.Layouts.Snapshot(scope, userID, floorID)
	respondSnapshot(c, "Floor layout", snap, err)
}

func (lc *LayoutController) BeginDrag(c *gin.Context) {
	var req beginDragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	scope, userID, floorID := editor(c)
	snap, err := lc.Layouts.BeginDrag(scope, userID, floorID, req.Kind, req.TargetID, req.Pointer, req.Modifiers)
	respondSnapshot(c, "Drag started", snap, err)
}

func (lc *LayoutController) MoveDrag(c *gin.Context) {
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	scope, userID, floorID := editor(c)
	snap, err := lc.Layouts.UpdateDrag(scope, userID, floorID, req.Pointer)
	respondSnapshot(c, "Drag updated", snap, err)
}

func (lc *LayoutController) EndDrag(c *gin.Context) {
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	scope, userID, floorID := editor(c)
	snap, err := lc.Layouts.EndDrag(scope, userID, floorID, req.Pointer)
	respondSnapshot(c, "Drag finished", snap, err)
}

// AbandonDrag is sent when the client loses pointer capture.
func (lc *LayoutController) AbandonDrag(c *gin.Context) {
	var req struct {
		PointerID int `json:"pointer_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	scope, userID, floorID := editor(c)
	snap, err := lc.Layouts.AbandonDrag(scope, userID, floorID, req.PointerID)
	respondSnapshot(c, "Drag abandoned", snap, err)
}

func (lc *LayoutController) Merge(c *gin.Context) {
	var req struct {
		SourceID string `json:"source_id" binding:"required"`
		TargetID string `json:"target_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	scope, userID, floorID := editor(c)
	snap, err := lc.Layouts.MergeTables(scope, userID, floorID, req.SourceID, req.TargetID)
	respondSnapshot(c, "Tables merged", snap, err)
}

// Ungroup splits the group of table_id, or of the current selection when
// no table is given.
func (lc *LayoutController) Ungroup(c *gin.Context) {
	var req struct {
		TableID string `json:"table_id"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}
	scope, userID, floorID := editor(c)
	snap, err := lc.Layouts.Ungroup(scope, userID, floorID, req.TableID)
	respondSnapshot(c, "Tables ungrouped", snap, err)
}

func (lc *LayoutController) ChangeShape(c *gin.Context) {
	var req struct {
		Shape floorplan.Shape `json:"shape" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	scope, userID, floorID := editor(c)
	snap, err := lc.Layouts.ChangeShape(scope, userID, floorID, c.Param("table_id"), req.Shape)
	respondSnapshot(c, "Shape changed", snap, err)
}

func (lc *LayoutController) AddLabel(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	scope, userID, floorID := editor(c)
	label, err := lc.Layouts.AddLabel(scope, userID, floorID, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Label created successfully", label)
}

func (lc *LayoutController) RemoveLabel(c *gin.Context) {
	scope, userID, floorID := editor(c)
	snap, err := lc.Layouts.RemoveLabel(scope, userID, floorID, c.Param("label_id"))
	respondSnapshot(c, "Label removed", snap, err)
}
