package project

import (
	"time"

	"github.com/trezcool/academia/core"
)

// Project statuses
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusOnHold    = "on-hold"
)

// Task statuses
const (
	TaskAssigned   = "assigned"
	TaskInProgress = "in-progress"
	TaskCompleted  = "completed"
)

type Project struct {
	ID          int          `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	ClientID    *int         `json:"clientId" db:"client_id"`
	ManagerID   *int         `json:"managerId" db:"manager_id"`
	Status      string       `json:"status" db:"status"` // active | completed | on-hold
	Budget      core.Decimal `json:"budget" db:"budget"`
	StartDate   *time.Time   `json:"startDate" db:"start_date"`
	EndDate     *time.Time   `json:"endDate" db:"end_date"`
}

type Client struct {
	ID       int    `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Phone    string `json:"phone" db:"phone"`
	Industry string `json:"industry" db:"industry"`
}

type Milestone struct {
	ID          int        `json:"id" db:"id"`
	ProjectID   int        `json:"projectId" db:"project_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	DueDate     *time.Time `json:"dueDate" db:"due_date"`
	Completed   bool       `json:"completed" db:"completed"`
	Order       int        `json:"order" db:"order"` // sequence within the project
}

type Task struct {
	ID          int        `json:"id" db:"id"`
	ProjectID   int        `json:"projectId" db:"project_id"`
	MilestoneID *int       `json:"milestoneId" db:"milestone_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	AssignedTo  *int       `json:"assignedTo" db:"assigned_to"`
	Status      string     `json:"status" db:"status"` // assigned | in-progress | completed
	DueDate     *time.Time `json:"dueDate" db:"due_date"`
}

// Insertable shapes

type NewProject struct {
	Title       string       `json:"title" validate:"required"`
	Description string       `json:"description"`
	ClientID    *int         `json:"clientId"`
	ManagerID   *int         `json:"managerId"`
	Status      string       `json:"status" validate:"omitempty,oneof=active completed on-hold"`
	Budget      core.Decimal `json:"budget" validate:"gte=0"`
	StartDate   *time.Time   `json:"startDate"`
	EndDate     *time.Time   `json:"endDate"`
}

func (np *NewProject) Validate() error {
	np.Title = core.CleanString(np.Title)
	return core.Validate.Struct(np)
}

type NewClient struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Industry string `json:"industry"`
}

func (nc *NewClient) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Email = core.CleanString(nc.Email, true)
	return core.Validate.Struct(nc)
}

type NewMilestone struct {
	ProjectID   int        `json:"projectId" validate:"required"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   bool       `json:"completed"`
	Order       int        `json:"order" validate:"gte=0"`
}

func (nm *NewMilestone) Validate() error {
	nm.Title = core.CleanString(nm.Title)
	return core.Validate.Struct(nm)
}

type NewTask struct {
	ProjectID   int        `json:"projectId" validate:"required"`
	MilestoneID *int       `json:"milestoneId"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	AssignedTo  *int       `json:"assignedTo"`
	Status      string     `json:"status" validate:"omitempty,oneof=assigned in-progress completed"`
	DueDate     *time.Time `json:"dueDate"`
}

func (nt *NewTask) Validate() error {
	nt.Title = core.CleanString(nt.Title)
	return core.Validate.Struct(nt)
}

// Patch shapes; nil fields keep the stored value.

type UpdateProject struct {
	Title       *string       `json:"title" validate:"omitempty,min=1"`
	Description *string       `json:"description"`
	ClientID    *int          `json:"clientId"`
	ManagerID   *int          `json:"managerId"`
	Status      *string       `json:"status" validate:"omitempty,oneof=active completed on-hold"`
	Budget      *core.Decimal `json:"budget" validate:"omitempty,gte=0"`
	StartDate   *time.Time    `json:"startDate"`
	EndDate     *time.Time    `json:"endDate"`
}

func (up *UpdateProject) Validate() error { return core.Validate.Struct(up) }

type UpdateClient struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Industry *string `json:"industry"`
}

func (uc *UpdateClient) Validate() error { return core.Validate.Struct(uc) }

type UpdateMilestone struct {
	ProjectID   *int       `json:"projectId"`
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   *bool      `json:"completed"`
	Order       *int       `json:"order" validate:"omitempty,gte=0"`
}

func (um *UpdateMilestone) Validate() error { return core.Validate.Struct(um) }

type UpdateTask struct {
	ProjectID   *int       `json:"projectId"`
	MilestoneID *int       `json:"milestoneId"`
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Description *string    `json:"description"`
	AssignedTo  *int       `json:"assignedTo"`
	Status      *string    `json:"status" validate:"omitempty,oneof=assigned in-progress completed"`
	DueDate     *time.Time `json:"dueDate"`
}

func (ut *UpdateTask) Validate() error { return core.Validate.Struct(ut) }

// StatusOnly reports whether the patch touches nothing but the status field.
// Task assignees may move their own tasks along the board but not reshape them.
func (ut *UpdateTask) StatusOnly() bool {
	return ut.ProjectID == nil && ut.MilestoneID == nil && ut.Title == nil &&
		ut.Description == nil && ut.AssignedTo == nil && ut.DueDate == nil
}
