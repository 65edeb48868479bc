package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/sahanmw/hostel-inventory/internal/model"
)

// ErrRoomNumberExists is returned when creating or updating a room with a
// room number that is already taken.
var ErrRoomNumberExists = errors.New("room number already exists")

// RoomRepo provides access to the rooms table.
type RoomRepo struct{ DB *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{DB: db} }

// RoomDetail is the wire representation of a room. AssetCount is computed
// with a join instead of being stored, so the value is always current.
type RoomDetail struct {
	ID         uint64    `json:"id"`
	RoomNumber string    `json:"room_number"`
	HostelName string    `json:"hostel_name"`
	Floor      *int      `json:"floor"`
	Capacity   int       `json:"capacity"`
	AssetCount int       `json:"asset_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func scanRoomDetail(rs rowScanner) (RoomDetail, error) {
	var d RoomDetail
	var floor sql.NullInt64
	err := rs.Scan(&d.ID, &d.RoomNumber, &d.HostelName, &floor, &d.Capacity,
		&d.AssetCount, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return RoomDetail{}, err
	}
	if floor.Valid {
		v := int(floor.Int64)
		d.Floor = &v
	}
	return d, nil
}

// List returns all rooms ordered by hostel name then room number, each
// with the number of assets currently placed in it.
func (r *RoomRepo) List(ctx context.Context) ([]RoomDetail, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT r.id, r.room_number, r.hostel_name, r.floor, r.capacity,
		       COUNT(a.id), r.created_at, r.updated_at
		FROM rooms r
		LEFT JOIN assets a ON a.room_id = r.id
		GROUP BY r.id
		ORDER BY r.hostel_name, r.room_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RoomDetail
	for rows.Next() {
		d, err := scanRoomDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Get returns a single room with its asset count. ErrNotFound is returned
// when the id does not exist.
func (r *RoomRepo) Get(ctx context.Context, id uint64) (RoomDetail, error) {
	d, err := scanRoomDetail(r.DB.QueryRowContext(ctx, `
		SELECT r.id, r.room_number, r.hostel_name, r.floor, r.capacity,
		       COUNT(a.id), r.created_at, r.updated_at
		FROM rooms r
		LEFT JOIN assets a ON a.room_id = r.id
		WHERE r.id = ?
		GROUP BY r.id`, id))
	if err == sql.ErrNoRows {
		return RoomDetail{}, ErrNotFound
	}
	return d, err
}

// Create inserts a room and returns it with the generated id, timestamps
// and a zero asset count.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) (RoomDetail, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO rooms (room_number, hostel_name, floor, capacity) VALUES (?,?,?,?)",
		room.RoomNumber, room.HostelName, room.Floor, room.Capacity)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return RoomDetail{}, ErrRoomNumberExists
		}
		return RoomDetail{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return RoomDetail{}, err
	}
	return r.Get(ctx, uint64(id))
}

// Update replaces the writable columns of a room and returns the fresh row.
func (r *RoomRepo) Update(ctx context.Context, id uint64, room *model.Room) (RoomDetail, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE rooms SET room_number=?, hostel_name=?, floor=?, capacity=? WHERE id=?",
		room.RoomNumber, room.HostelName, room.Floor, room.Capacity, id)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return RoomDetail{}, ErrRoomNumberExists
		}
		return RoomDetail{}, err
	}
	return r.Get(ctx, id)
}

// Delete removes a room. The schema cascades the deletion to its damage
// reports and detaches its assets.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM rooms WHERE id=?", id)
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

// Exists reports whether a room id is present. Used to validate the room
// reference on assets and damage reports before writing.
func (r *RoomRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM rooms WHERE id=?", id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the number of rooms in the table.
func (r *RoomRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM rooms").Scan(&n)
	return n, err
}
