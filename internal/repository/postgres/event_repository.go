package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
	"github.com/fadeyibigbolahan/mbjobs-backend/internal/domain/event"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e event.Event) error {
	e.ID = common.NewUUID()
	e.CreatedAt = time.Now().UTC()
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to encode event payload", err)
	}
	var userID any
	if e.UserID != nil {
		userID = *e.UserID
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO events (id, name, user_id, payload, created_at) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Name, userID, payload, e.CreatedAt)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to create event", err)
	}
	return nil
}
