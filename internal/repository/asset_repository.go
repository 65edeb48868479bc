package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sahanmw/hostel-inventory/internal/model"
)

// AssetRepo provides access to the assets table.
type AssetRepo struct{ DB *sql.DB }

func NewAssetRepo(db *sql.DB) *AssetRepo { return &AssetRepo{DB: db} }

// AssetDetail is the wire representation of an asset. RoomDisplay carries
// the room number of the linked room for display; both it and the room id
// are nil for unassigned assets.
type AssetDetail struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	AssetType     string    `json:"asset_type"`
	TotalQuantity int       `json:"total_quantity"`
	Condition     string    `json:"condition"`
	RoomID        *uint64   `json:"room"`
	RoomDisplay   *string   `json:"room_display"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// condition is a reserved word in MySQL, hence the backticks.
const assetDetailSelect = "SELECT a.id, a.name, a.asset_type, a.total_quantity, a.`condition`, a.room_id, r.room_number, a.created_at, a.updated_at FROM assets a LEFT JOIN rooms r ON r.id = a.room_id"

func scanAssetDetail(rs rowScanner) (AssetDetail, error) {
	var d AssetDetail
	var roomID sql.NullInt64
	var roomNumber sql.NullString
	err := rs.Scan(&d.ID, &d.Name, &d.AssetType, &d.TotalQuantity, &d.Condition,
		&roomID, &roomNumber, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return AssetDetail{}, err
	}
	if roomID.Valid {
		v := uint64(roomID.Int64)
		d.RoomID = &v
	}
	if roomNumber.Valid {
		v := roomNumber.String
		d.RoomDisplay = &v
	}
	return d, nil
}

// List returns all assets, newest first.
func (r *AssetRepo) List(ctx context.Context) ([]AssetDetail, error) {
	rows, err := r.DB.QueryContext(ctx, assetDetailSelect+" ORDER BY a.created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AssetDetail
	for rows.Next() {
		d, err := scanAssetDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Get returns a single asset. ErrNotFound is returned when the id does not
// exist.
func (r *AssetRepo) Get(ctx context.Context, id uint64) (AssetDetail, error) {
	d, err := scanAssetDetail(r.DB.QueryRowContext(ctx, assetDetailSelect+" WHERE a.id=?", id))
	if err == sql.ErrNoRows {
		return AssetDetail{}, ErrNotFound
	}
	return d, err
}

// Create inserts an asset and returns it with the generated id and
// timestamps.
func (r *AssetRepo) Create(ctx context.Context, a *model.Asset) (AssetDetail, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO assets (name, asset_type, total_quantity, `condition`, room_id) VALUES (?,?,?,?,?)",
		a.Name, a.AssetType, a.TotalQuantity, a.Condition, a.RoomID)
	if err != nil {
		return AssetDetail{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return AssetDetail{}, err
	}
	return r.Get(ctx, uint64(id))
}

// Update replaces the writable columns of an asset and returns the fresh
// row. Passing a nil RoomID detaches the asset from its room.
func (r *AssetRepo) Update(ctx context.Context, id uint64, a *model.Asset) (AssetDetail, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE assets SET name=?, asset_type=?, total_quantity=?, `condition`=?, room_id=? WHERE id=?",
		a.Name, a.AssetType, a.TotalQuantity, a.Condition, a.RoomID, id)
	if err != nil {
		return AssetDetail{}, err
	}
	return r.Get(ctx, id)
}

// Delete removes an asset. ErrNotFound is returned when the id does not
// exist.
func (r *AssetRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM assets WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of assets in the table.
func (r *AssetRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM assets").Scan(&n)
	return n, err
}
