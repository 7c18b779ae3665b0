package services

import (
	"github.com/yeremiapane/gastro-os/floorplan"
	"github.com/yeremiapane/gastro-os/models"
)

type TableStats struct {
	Free     int64 `json:"free"`
	Occupied int64 `json:"occupied"`
	Dirty    int64 `json:"dirty"`
}

// SalonStats summarizes a restaurant's floor plan for the dashboard.
type SalonStats struct {
	Floors        int64      `json:"floors"`
	Tables        int64      `json:"tables"`
	Groups        int64      `json:"groups"`
	Seats         int64      `json:"seats"`
	OccupiedSeats int64      `json:"occupied_seats"`
	TableStats    TableStats `json:"table_stats"`
}

func (s *SalonService) Stats(scope floorplan.Scope) (SalonStats, error) {
	db, err := s.db(scope)
	if err != nil {
		return SalonStats{}, err
	}

	var stats SalonStats
	if err := db.Model(&models.Floor{}).Where("restaurant_id = ?", scope.TenantID).Count(&stats.Floors).Error; err != nil {
		return SalonStats{}, err
	}

	var rows []struct {
		Status string
		Count  int64
		Seats  int64
	}
	if err := db.Model(&models.Table{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(capacity), 0) AS seats").
		Where("restaurant_id = ?", scope.TenantID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return SalonStats{}, err
	}
	for _, row := range rows {
		stats.Tables += row.Count
		stats.Seats += row.Seats
		switch floorplan.Status(row.Status) {
		case floorplan.StatusFree:
			stats.TableStats.Free = row.Count
		case floorplan.StatusOccupied:
			stats.TableStats.Occupied = row.Count
			stats.OccupiedSeats = row.Seats
		case floorplan.StatusDirty:
			stats.TableStats.Dirty = row.Count
		}
	}

	if err := db.Model(&models.Table{}).
		Where("restaurant_id = ? AND group_id IS NOT NULL", scope.TenantID).
		Distinct("group_id").
		Count(&stats.Groups).Error; err != nil {
		return SalonStats{}, err
	}
	return stats, nil
}
