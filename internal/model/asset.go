package model

import "time"

// Asset type categories. The same set is used for the asset_type column on
// damage reports, so a report can be filed for an item category without
// pointing at a specific asset row.
const (
	AssetTypeBed      = "Bed"
	AssetTypeTable    = "Table"
	AssetTypeChair    = "Chair"
	AssetTypeCupboard = "Cupboard"
	AssetTypeFan      = "Fan"
	AssetTypeLight    = "Light"
	AssetTypeOther    = "Other"
)

// Asset condition values.
const (
	ConditionGood    = "Good"
	ConditionDamaged = "Damaged"
)

// ValidAssetType reports whether s is one of the asset type categories.
func ValidAssetType(s string) bool {
	switch s {
	case AssetTypeBed, AssetTypeTable, AssetTypeChair, AssetTypeCupboard,
		AssetTypeFan, AssetTypeLight, AssetTypeOther:
		return true
	}
	return false
}

// ValidCondition reports whether s is a known asset condition.
func ValidCondition(s string) bool {
	return s == ConditionGood || s == ConditionDamaged
}

// Asset represents an inventory item as stored in the `assets` table. An
// asset may be placed in a room or kept unassigned; when its room is
// deleted the reference becomes nil rather than deleting the asset.
type Asset struct {
	ID            uint64    // assets.id
	Name          string    // assets.name
	AssetType     string    // assets.asset_type
	TotalQuantity int       // assets.total_quantity (default 1)
	Condition     string    // assets.condition (default Good)
	RoomID        *uint64   // assets.room_id (nullable, ON DELETE SET NULL)
	CreatedAt     time.Time // assets.created_at
	UpdatedAt     time.Time // assets.updated_at
}
