// Package repository implements all database queries for the room booking
// system. It uses pgx directly (no ORM) for transparency and performance.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erimkun/meeting-room-booking/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ConflictError is returned when an active booking already occupies part of
// the requested interval in the same room.
type ConflictError struct {
	Existing model.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot already booked: %q (%s - %s)",
		e.Existing.Title,
		e.Existing.StartTime.UTC().Format("15:04"),
		e.Existing.EndTime.UTC().Format("15:04"),
	)
}

const bookingColumns = `b.id, b.reference, b.room_id, b.title, b.owner_name,
	b.notes, b.start_time, b.end_time, b.status, b.created_at`

// BookingRepository handles persistence for bookings.
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// Book inserts a booking after verifying the slot is free, atomically.
//
// A naive read-then-write (SELECT for overlaps, then INSERT) lets two
// concurrent requests for the same slot both pass the check and both insert,
// double-booking the room. To serialise competing requests, the overlap check
// runs inside a transaction that first takes a row-level lock on the room
// with SELECT ... FOR UPDATE: a second transaction for the same room blocks
// until the first commits, and then sees its insert.
func (r *BookingRepository) Book(ctx context.Context, b model.Booking) (booking *model.Booking, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Lock the room row. Also resolves the room reference for the response.
	var room model.Room
	err = tx.QueryRow(ctx,
		`SELECT id, name, capacity, color FROM rooms WHERE id = $1 FOR UPDATE`,
		b.RoomID,
	).Scan(&room.ID, &room.Name, &room.Capacity, &room.Color)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock room row: %w", err)
	}

	// Half-open overlap test: back-to-back bookings do not conflict.
	var existing model.Booking
	err = tx.QueryRow(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings b
		 WHERE b.room_id = $1 AND b.status = $2
		   AND b.start_time < $4 AND b.end_time > $3
		 ORDER BY b.start_time ASC
		 LIMIT 1`,
		b.RoomID, model.ActiveStatus, b.StartTime, b.EndTime,
	).Scan(&existing.ID, &existing.Reference, &existing.RoomID, &existing.Title,
		&existing.OwnerName, &existing.Notes, &existing.StartTime, &existing.EndTime,
		&existing.Status, &existing.CreatedAt)
	if err == nil {
		return nil, &ConflictError{Existing: existing}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check overlap: %w", err)
	}

	b.Reference = uuid.New().String()
	b.Status = model.ActiveStatus
	b.CreatedAt = time.Now().UTC()

	err = tx.QueryRow(ctx,
		`INSERT INTO bookings (reference, room_id, title, owner_name, notes,
			start_time, end_time, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		b.Reference, b.RoomID, b.Title, b.OwnerName, b.Notes,
		b.StartTime, b.EndTime, b.Status, b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	b.Room = &room
	return &b, nil
}

// Cancel flips the booking to CANCELLED and returns the updated record.
// The update is unconditional, so cancelling an already-cancelled booking
// succeeds and leaves it cancelled. Returns ErrNotFound for an unknown id.
func (r *BookingRepository) Cancel(ctx context.Context, id int64) (*model.Booking, error) {
	var b model.Booking
	err := r.db.QueryRow(ctx,
		`UPDATE bookings b SET status = $2
		 WHERE b.id = $1
		 RETURNING `+bookingColumns,
		id, model.CancelledStatus,
	).Scan(&b.ID, &b.Reference, &b.RoomID, &b.Title, &b.OwnerName,
		&b.Notes, &b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	var room model.Room
	err = r.db.QueryRow(ctx,
		`SELECT id, name, capacity, color FROM rooms WHERE id = $1`,
		b.RoomID,
	).Scan(&room.ID, &room.Name, &room.Capacity, &room.Color)
	if err != nil {
		return nil, fmt.Errorf("load room for booking %d: %w", b.ID, err)
	}
	b.Room = &room

	return &b, nil
}

// ListByRange returns all bookings, any status, whose start time falls within
// [start, end], ordered ascending by start time. A non-nil roomID narrows the
// result to one room. Each booking carries its room reference.
func (r *BookingRepository) ListByRange(ctx context.Context, roomID *int64, start, end time.Time) ([]model.Booking, error) {
	query := `SELECT ` + bookingColumns + `, r.id, r.name, r.capacity, r.color
		 FROM bookings b
		 JOIN rooms r ON r.id = b.room_id
		 WHERE b.start_time >= $1 AND b.start_time <= $2`
	args := []any{start, end}
	if roomID != nil {
		query += ` AND b.room_id = $3`
		args = append(args, *roomID)
	}
	query += ` ORDER BY b.start_time ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		var room model.Room
		if err := rows.Scan(&b.ID, &b.Reference, &b.RoomID, &b.Title, &b.OwnerName,
			&b.Notes, &b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt,
			&room.ID, &room.Name, &room.Capacity, &room.Color); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.Room = &room
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// FindOverlapping returns the first active booking in the room whose interval
// overlaps [start, end), or nil when the slot is free. This is the read-only
// form of the check Book performs under its lock; the service uses it to
// reject conflicts early without contending for the room row.
func (r *BookingRepository) FindOverlapping(ctx context.Context, roomID int64, start, end time.Time) (*model.Booking, error) {
	var b model.Booking
	err := r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings b
		 WHERE b.room_id = $1 AND b.status = $2
		   AND b.start_time < $4 AND b.end_time > $3
		 ORDER BY b.start_time ASC
		 LIMIT 1`,
		roomID, model.ActiveStatus, start, end,
	).Scan(&b.ID, &b.Reference, &b.RoomID, &b.Title, &b.OwnerName,
		&b.Notes, &b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find overlapping booking: %w", err)
	}
	return &b, nil
}
