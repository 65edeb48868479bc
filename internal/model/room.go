package model

import "time"

// Room represents a physical space in a hostel as stored in the `rooms`
// table. Room numbers are unique across the whole system. Deleting a room
// cascades to its damage reports and clears the room reference on its
// assets; both actions are performed by the database itself.
type Room struct {
	ID         uint64    // rooms.id
	RoomNumber string    // rooms.room_number (unique)
	HostelName string    // rooms.hostel_name
	Floor      *int      // rooms.floor (nullable)
	Capacity   int       // rooms.capacity (default 2)
	CreatedAt  time.Time // rooms.created_at
	UpdatedAt  time.Time // rooms.updated_at
}
