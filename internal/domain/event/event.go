package event

import (
	"context"
	"time"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
)

// Event is a best-effort signal for the external notification
// dispatcher. Services emit these on every meaningful mutation and
// ignore delivery failures; the dispatcher owns retries.
type Event struct {
	ID        common.UUID       `json:"id"`
	Name      string            `json:"name"`
	UserID    *common.UUID      `json:"user_id,omitempty"`
	Payload   map[string]string `json:"payload,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, e Event) error
}
