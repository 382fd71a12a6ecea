package plan

import (
	"context"

	"github.com/fadeyibigbolahan/mbjobs-backend/internal/common"
)

// Plan is a pricing tier from the plan catalog. MaxApprentices is the
// posting quota: the number of concurrently active jobs the plan allows.
type Plan struct {
	ID             common.UUID `json:"id"`
	Title          string      `json:"title"`
	Subtitle       string      `json:"subtitle,omitempty"`
	MonthlyPrice   float64     `json:"monthly_price"`
	MaxApprentices int         `json:"max_apprentices"`
	Description    string      `json:"description,omitempty"`
	Features       []string    `json:"features,omitempty"`
	Popular        bool        `json:"popular"`
}

type Repository interface {
	GetByID(ctx context.Context, id common.UUID) (*Plan, error)
	List(ctx context.Context) ([]Plan, error)
}
