package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/erimkun/meeting-room-booking/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RoomRepository handles persistence for rooms.
type RoomRepository struct {
	db *pgxpool.Pool
}

// NewRoomRepository constructs a RoomRepository.
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

// List returns all rooms ordered by id.
func (r *RoomRepository) List(ctx context.Context) ([]model.Room, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, capacity, color FROM rooms ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []model.Room
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.Color); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// GetByID returns a single room or ErrNotFound.
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	var room model.Room
	err := r.db.QueryRow(ctx,
		`SELECT id, name, capacity, color FROM rooms WHERE id = $1`,
		id,
	).Scan(&room.ID, &room.Name, &room.Capacity, &room.Color)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}

// Seed upserts the fixed set of meeting rooms. Safe to run on every start.
func (r *RoomRepository) Seed(ctx context.Context) error {
	rooms := []model.Room{
		{ID: 1, Name: "Meeting Room 1", Capacity: 10, Color: "blue"},
		{ID: 2, Name: "Meeting Room (Ground Floor)", Capacity: 8, Color: "red"},
		{ID: 3, Name: "Meeting Room (Management)", Capacity: 12, Color: "yellow"},
	}
	for _, room := range rooms {
		_, err := r.db.Exec(ctx,
			`INSERT INTO rooms (id, name, capacity, color)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (id) DO UPDATE
			 SET name = EXCLUDED.name, capacity = EXCLUDED.capacity, color = EXCLUDED.color`,
			room.ID, room.Name, room.Capacity, room.Color,
		)
		if err != nil {
			return fmt.Errorf("seed room %d: %w", room.ID, err)
		}
	}
	return nil
}
