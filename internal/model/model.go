// Package model defines the core domain types for the room booking system.
package model

import "time"

// BookingStatus is the lifecycle state of a booking. The only permitted
// transition is ActiveStatus → CancelledStatus; cancelled bookings are kept
// for auditing, never deleted.
type BookingStatus string

const (
	ActiveStatus    BookingStatus = "ACTIVE"
	CancelledStatus BookingStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	return s == ActiveStatus || s == CancelledStatus
}

// CanTransitionTo reports whether the status may move to next.
// CANCELLED is terminal; re-cancelling is allowed so cancellation stays
// idempotent.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return next == CancelledStatus
}

// Room is a bookable meeting room. Static reference data, seeded at startup.
type Room struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Color    string `json:"color"`
}

// Booking represents a reservation of a room for a time interval.
// StartTime and EndTime are absolute UTC timestamps; the interval is
// half-open, [StartTime, EndTime).
type Booking struct {
	ID        int64         `json:"id"`
	Reference string        `json:"reference"`
	RoomID    int64         `json:"room_id"`
	Room      *Room         `json:"room,omitempty"`
	Title     string        `json:"title"`
	OwnerName string        `json:"owner_name"`
	Notes     string        `json:"notes,omitempty"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// CreateBookingRequest is the payload for creating a new booking.
type CreateBookingRequest struct {
	Title     string `json:"title"`
	OwnerName string `json:"ownerName"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Notes     string `json:"notes"`
	RoomID    int64  `json:"roomId"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
