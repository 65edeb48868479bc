package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sahanmw/hostel-inventory/internal/model"
)

// DamageReportRepo provides access to the damage_reports table.
type DamageReportRepo struct{ DB *sql.DB }

func NewDamageReportRepo(db *sql.DB) *DamageReportRepo { return &DamageReportRepo{DB: db} }

// DamageReportDetail is the wire representation of a damage report. The
// room number of the referenced room is joined in for display.
type DamageReportDetail struct {
	ID          uint64    `json:"id"`
	RoomID      uint64    `json:"room"`
	RoomNumber  string    `json:"room_number"`
	AssetType   string    `json:"asset_type"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	ReportedAt  time.Time `json:"reported_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const reportDetailSelect = `
	SELECT d.id, d.room_id, r.room_number, d.asset_type, d.description,
	       d.status, d.reported_at, d.updated_at
	FROM damage_reports d
	JOIN rooms r ON r.id = d.room_id`

func scanReportDetail(rs rowScanner) (DamageReportDetail, error) {
	var d DamageReportDetail
	err := rs.Scan(&d.ID, &d.RoomID, &d.RoomNumber, &d.AssetType,
		&d.Description, &d.Status, &d.ReportedAt, &d.UpdatedAt)
	if err != nil {
		return DamageReportDetail{}, err
	}
	return d, nil
}

// List returns all damage reports, newest first.
func (r *DamageReportRepo) List(ctx context.Context) ([]DamageReportDetail, error) {
	rows, err := r.DB.QueryContext(ctx, reportDetailSelect+" ORDER BY d.reported_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DamageReportDetail
	for rows.Next() {
		d, err := scanReportDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Get returns a single damage report. ErrNotFound is returned when the id
// does not exist.
func (r *DamageReportRepo) Get(ctx context.Context, id uint64) (DamageReportDetail, error) {
	d, err := scanReportDetail(r.DB.QueryRowContext(ctx, reportDetailSelect+" WHERE d.id=?", id))
	if err == sql.ErrNoRows {
		return DamageReportDetail{}, ErrNotFound
	}
	return d, err
}

// Create inserts a damage report and returns it with the generated id and
// timestamps. The caller must have validated that the room exists.
func (r *DamageReportRepo) Create(ctx context.Context, rep *model.DamageReport) (DamageReportDetail, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO damage_reports (room_id, asset_type, description, status) VALUES (?,?,?,?)",
		rep.RoomID, rep.AssetType, rep.Description, rep.Status)
	if err != nil {
		return DamageReportDetail{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return DamageReportDetail{}, err
	}
	return r.Get(ctx, uint64(id))
}

// Update replaces the writable columns of a damage report and returns the
// fresh row.
func (r *DamageReportRepo) Update(ctx context.Context, id uint64, rep *model.DamageReport) (DamageReportDetail, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE damage_reports SET room_id=?, asset_type=?, description=?, status=? WHERE id=?",
		rep.RoomID, rep.AssetType, rep.Description, rep.Status, id)
	if err != nil {
		return DamageReportDetail{}, err
	}
	return r.Get(ctx, id)
}

// Delete removes a damage report. ErrNotFound is returned when the id does
// not exist.
func (r *DamageReportRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM damage_reports WHERE id=?", id)
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

// CountByStatus returns the number of reports currently in the given
// status. The dashboard uses this to count open (Not Fixed) reports.
func (r *DamageReportRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM damage_reports WHERE status=?", status).Scan(&n)
	return n, err
}
