// Package service implements the booking validator and orchestration between
// HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erimkun/meeting-room-booking/internal/model"
	"github.com/erimkun/meeting-room-booking/internal/repository"
	"github.com/erimkun/meeting-room-booking/internal/schedule"
)

// ErrOutOfHours is returned when the requested interval falls outside the
// 08:30-17:00 working window.
var ErrOutOfHours = errors.New("booking must fall within working hours (08:30-17:00)")

// ErrInvalidInterval is returned when the start time is not before the end time.
var ErrInvalidInterval = errors.New("start time must be before end time")

// MissingFieldError names the first absent required field of a request.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return e.Field + " is required"
}

// InvalidTimestampError names a field whose value did not parse as a timestamp.
type InvalidTimestampError struct {
	Field string
	Value string
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("%s is not a valid timestamp: %q", e.Field, e.Value)
}

// BookingStore is the persistence surface the validator and orchestration
// depend on.
type BookingStore interface {
	Book(ctx context.Context, b model.Booking) (*model.Booking, error)
	Cancel(ctx context.Context, id int64) (*model.Booking, error)
	ListByRange(ctx context.Context, roomID *int64, start, end time.Time) ([]model.Booking, error)
	FindOverlapping(ctx context.Context, roomID int64, start, end time.Time) (*model.Booking, error)
}

// RoomStore resolves room references.
type RoomStore interface {
	List(ctx context.Context) ([]model.Room, error)
	GetByID(ctx context.Context, id int64) (*model.Room, error)
}

// BookingService orchestrates booking business operations.
type BookingService struct {
	bookings BookingStore
	rooms    RoomStore
}

// NewBookingService constructs a BookingService with its dependencies.
func NewBookingService(bookings BookingStore, rooms RoomStore) *BookingService {
	return &BookingService{bookings: bookings, rooms: rooms}
}

// validateFields checks required fields and parses the timestamps, returning
// the normalized interval in UTC. It fails on the first missing field, in a
// fixed order: title, ownerName, startTime, endTime, roomId.
func validateFields(req model.CreateBookingRequest) (start, end time.Time, err error) {
	if strings.TrimSpace(req.Title) == "" {
		return start, end, &MissingFieldError{Field: "title"}
	}
	if strings.TrimSpace(req.OwnerName) == "" {
		return start, end, &MissingFieldError{Field: "ownerName"}
	}
	if req.StartTime == "" {
		return start, end, &MissingFieldError{Field: "startTime"}
	}
	if req.EndTime == "" {
		return start, end, &MissingFieldError{Field: "endTime"}
	}
	if req.RoomID == 0 {
		return start, end, &MissingFieldError{Field: "roomId"}
	}

	start, err = time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return start, end, &InvalidTimestampError{Field: "startTime", Value: req.StartTime}
	}
	end, err = time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return start, end, &InvalidTimestampError{Field: "endTime", Value: req.EndTime}
	}
	return start.UTC(), end.UTC(), nil
}

// validateWorkingHours accepts only intervals that fit the working window.
// Slots are generated in UTC, so the hour-of-day check runs in UTC too; an
// interval ending exactly at close is valid.
func validateWorkingHours(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidInterval
	}
	if !schedule.WithinWorkingHours(start, end) {
		return ErrOutOfHours
	}
	return nil
}

// CreateBooking validates the request (fields, then hours, then overlap,
// short-circuiting on the first failure) and persists the booking. The store
// repeats the overlap check under a room lock, so two concurrent requests for
// the same slot cannot both succeed; the read-only check here only rejects
// obvious conflicts before taking that lock.
func (s *BookingService) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	start, end, err := validateFields(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.rooms.GetByID(ctx, req.RoomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("room %d: %w", req.RoomID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("resolve room: %w", err)
	}

	if err := validateWorkingHours(start, end); err != nil {
		return nil, err
	}

	existing, err := s.bookings.FindOverlapping(ctx, req.RoomID, start, end)
	if err != nil {
		return nil, fmt.Errorf("check overlap: %w", err)
	}
	if existing != nil {
		return nil, &repository.ConflictError{Existing: *existing}
	}

	booking, err := s.bookings.Book(ctx, model.Booking{
		RoomID:    req.RoomID,
		Title:     strings.TrimSpace(req.Title),
		OwnerName: strings.TrimSpace(req.OwnerName),
		Notes:     strings.TrimSpace(req.Notes),
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		var conflict *repository.ConflictError
		if errors.Is(err, repository.ErrNotFound) || errors.As(err, &conflict) {
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

// CancelBooking flips the booking to CANCELLED. Cancelling twice is not an
// error; the record simply stays cancelled.
func (s *BookingService) CancelBooking(ctx context.Context, id int64) (*model.Booking, error) {
	booking, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	return booking, nil
}

// ListBookings returns all bookings, any status, whose start time falls
// within [start, end], ascending, optionally narrowed to one room.
func (s *BookingService) ListBookings(ctx context.Context, roomID *int64, start, end time.Time) ([]model.Booking, error) {
	return s.bookings.ListByRange(ctx, roomID, start, end)
}

// ListBookingsForDay returns the bookings whose start time falls on the given
// UTC calendar day.
func (s *BookingService) ListBookingsForDay(ctx context.Context, roomID *int64, day time.Time) ([]model.Booking, error) {
	start, end := schedule.DayBounds(day)
	return s.bookings.ListByRange(ctx, roomID, start, end)
}

// ListRooms returns the bookable rooms.
func (s *BookingService) ListRooms(ctx context.Context) ([]model.Room, error) {
	return s.rooms.List(ctx)
}

// DaySlots returns the bookable slot labels for one day. They derive from the
// same working-hours constants the validator enforces.
func (s *BookingService) DaySlots() []string {
	return schedule.DaySlots()
}
