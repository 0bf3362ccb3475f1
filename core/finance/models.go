package finance

import (
	"time"

	"github.com/trezcool/academia/core"
)

// Payment statuses
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

type Expense struct {
	ID          int          `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Amount      core.Decimal `json:"amount" db:"amount"`
	Category    string       `json:"category" db:"category"`
	Date        time.Time    `json:"date" db:"date"`
	Description string       `json:"description" db:"description"`
}

type ProjectPayment struct {
	ID          int          `json:"id" db:"id"`
	ProjectID   int          `json:"projectId" db:"project_id"`
	Amount      core.Decimal `json:"amount" db:"amount"`
	Date        time.Time    `json:"date" db:"date"`
	Status      string       `json:"status" db:"status"` // completed | pending
	Description string       `json:"description" db:"description"`
}

// Insertable shapes

type NewExpense struct {
	Title       string       `json:"title" validate:"required"`
	Amount      core.Decimal `json:"amount" validate:"gt=0"`
	Category    string       `json:"category" validate:"required"`
	Date        time.Time    `json:"date"`
	Description string       `json:"description"`
}

func (ne *NewExpense) Validate() error {
	ne.Title = core.CleanString(ne.Title)
	ne.Category = core.CleanString(ne.Category)
	return core.Validate.Struct(ne)
}

type NewProjectPayment struct {
	ProjectID   int          `json:"projectId" validate:"required"`
	Amount      core.Decimal `json:"amount" validate:"gte=0"`
	Date        time.Time    `json:"date"`
	Status      string       `json:"status" validate:"omitempty,oneof=completed pending"`
	Description string       `json:"description"`
}

func (np *NewProjectPayment) Validate() error { return core.Validate.Struct(np) }

// Patch shapes; nil fields keep the stored value.

type UpdateExpense struct {
	Title       *string       `json:"title" validate:"omitempty,min=1"`
	Amount      *core.Decimal `json:"amount" validate:"omitempty,gt=0"`
	Category    *string       `json:"category" validate:"omitempty,min=1"`
	Date        *time.Time    `json:"date"`
	Description *string       `json:"description"`
}

func (ue *UpdateExpense) Validate() error { return core.Validate.Struct(ue) }

type UpdateProjectPayment struct {
	ProjectID   *int          `json:"projectId"`
	Amount      *core.Decimal `json:"amount" validate:"omitempty,gte=0"`
	Date        *time.Time    `json:"date"`
	Status      *string       `json:"status" validate:"omitempty,oneof=completed pending"`
	Description *string       `json:"description"`
}

func (up *UpdateProjectPayment) Validate() error { return core.Validate.Struct(up) }
