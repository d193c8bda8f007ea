// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/erimkun/meeting-room-booking/internal/model"
	"github.com/erimkun/meeting-room-booking/internal/repository"
	"github.com/erimkun/meeting-room-booking/internal/service"
	"github.com/go-chi/chi/v5"
)

// BookingHandler holds all HTTP handlers for the booking API.
type BookingHandler struct {
	svc *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// validationError reports whether err is a client-correctable rejection whose
// message may be surfaced verbatim.
func validationError(err error) bool {
	var missing *service.MissingFieldError
	var badTime *service.InvalidTimestampError
	var conflict *repository.ConflictError
	return errors.As(err, &missing) ||
		errors.As(err, &badTime) ||
		errors.As(err, &conflict) ||
		errors.Is(err, service.ErrInvalidInterval) ||
		errors.Is(err, service.ErrOutOfHours)
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// CreateBooking handles POST /bookings
// Validates the request (fields, working hours, overlap) and stores the
// booking, returning the created record with its room.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), req)
	if err != nil {
		switch {
		case validationError(err):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("create booking: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to create booking")
		}
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// ListBookings handles GET /bookings?date=YYYY-MM-DD or ?start=...&end=...
// Returns all bookings, any status, in the range, ascending by start time.
// An optional roomId parameter narrows the result to one room.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var roomID *int64
	if raw := q.Get("roomId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "roomId must be an integer")
			return
		}
		roomID = &id
	}

	var bookings []model.Booking
	var err error
	switch {
	case q.Get("date") != "":
		var day time.Time
		day, err = time.Parse("2006-01-02", q.Get("date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
			return
		}
		bookings, err = h.svc.ListBookingsForDay(r.Context(), roomID, day)
	case q.Get("start") != "" && q.Get("end") != "":
		var start, end time.Time
		start, err = time.Parse("2006-01-02", q.Get("start"))
		if err == nil {
			end, err = time.Parse("2006-01-02", q.Get("end"))
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, "start and end must be formatted YYYY-MM-DD")
			return
		}
		// End of the range is inclusive of the whole end day.
		bookings, err = h.svc.ListBookings(r.Context(), roomID, start, end.Add(24*time.Hour-time.Nanosecond))
	default:
		writeError(w, http.StatusBadRequest, "date or start/end query parameters are required")
		return
	}
	if err != nil {
		log.Printf("list bookings: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch bookings")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if bookings == nil {
		bookings = []model.Booking{}
	}

	writeJSON(w, http.StatusOK, bookings)
}

// CancelBooking handles DELETE /bookings/{id}
// Soft-deletes: the booking transitions to CANCELLED and is returned.
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "booking id must be an integer")
		return
	}

	booking, err := h.svc.CancelBooking(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "booking not found")
			return
		}
		log.Printf("cancel booking %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to cancel booking")
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// ListRooms handles GET /rooms
func (h *BookingHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.ListRooms(r.Context())
	if err != nil {
		log.Printf("list rooms: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list rooms")
		return
	}

	if rooms == nil {
		rooms = []model.Room{}
	}

	writeJSON(w, http.StatusOK, rooms)
}

// ListSlots handles GET /slots
// Returns the 30-minute slot labels of the working window, so clients render
// exactly the slots the validator accepts.
func (h *BookingHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.DaySlots())
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
