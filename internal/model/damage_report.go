package model

import "time"

// Damage report status values. New reports start as Not Fixed; staff move
// them to Fixed or Replaced as the issue is resolved.
const (
	StatusNotFixed = "Not Fixed"
	StatusFixed    = "Fixed"
	StatusReplaced = "Replaced"
)

// ValidReportStatus reports whether s is a known damage report status.
func ValidReportStatus(s string) bool {
	return s == StatusNotFixed || s == StatusFixed || s == StatusReplaced
}

// DamageReport represents a defect record tied to a room as stored in the
// `damage_reports` table. The room reference is required; deleting the room
// deletes its reports (ON DELETE CASCADE in the schema).
type DamageReport struct {
	ID          uint64    // damage_reports.id
	RoomID      uint64    // damage_reports.room_id
	AssetType   string    // damage_reports.asset_type (same enum as assets)
	Description string    // damage_reports.description
	Status      string    // damage_reports.status (default Not Fixed)
	ReportedAt  time.Time // damage_reports.reported_at
	UpdatedAt   time.Time // damage_reports.updated_at
}
