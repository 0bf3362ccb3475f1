package finance

import (
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	CreateExpense(exp Expense) (Expense, error)
	QueryAllExpenses() ([]Expense, error)
	QueryExpensesByCategory(category string) ([]Expense, error)
	GetExpenseByID(id int) (Expense, error)
	UpdateExpense(id int, patch UpdateExpense) (Expense, error)
	DeleteExpense(id int) (bool, error)

	CreatePayment(pmt ProjectPayment) (ProjectPayment, error)
	QueryAllPayments() ([]ProjectPayment, error)
	QueryPaymentsByProject(projectID int) ([]ProjectPayment, error)
	GetPaymentByID(id int) (ProjectPayment, error)
	UpdatePayment(id int, patch UpdateProjectPayment) (ProjectPayment, error)
	DeletePayment(id int) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CreateExpense(ne NewExpense) (Expense, error) {
	date := ne.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	exp := Expense{
		Title:       ne.Title,
		Amount:      ne.Amount,
		Category:    ne.Category,
		Date:        date,
		Description: ne.Description,
	}
	return svc.repo.CreateExpense(exp)
}

func (svc *Service) QueryAllExpenses() ([]Expense, error) { return svc.repo.QueryAllExpenses() }
func (svc *Service) GetExpenseByID(id int) (Expense, error) {
	return svc.repo.GetExpenseByID(id)
}
func (svc *Service) QueryExpensesByCategory(category string) ([]Expense, error) {
	return svc.repo.QueryExpensesByCategory(category)
}
func (svc *Service) DeleteExpense(id int) (bool, error) { return svc.repo.DeleteExpense(id) }

func (svc *Service) UpdateExpense(id int, ue UpdateExpense) (Expense, error) {
	return svc.repo.UpdateExpense(id, ue)
}

func (svc *Service) CreatePayment(np NewProjectPayment) (ProjectPayment, error) {
	date := np.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	status := np.Status
	if status == "" {
		status = PaymentPending
	}
	pmt := ProjectPayment{
		ProjectID:   np.ProjectID,
		Amount:      np.Amount,
		Date:        date,
		Status:      status,
		Description: np.Description,
	}
	return svc.repo.CreatePayment(pmt)
}

func (svc *Service) QueryAllPayments() ([]ProjectPayment, error) { return svc.repo.QueryAllPayments() }
func (svc *Service) GetPaymentByID(id int) (ProjectPayment, error) {
	return svc.repo.GetPaymentByID(id)
}
func (svc *Service) QueryPaymentsByProject(projectID int) ([]ProjectPayment, error) {
	return svc.repo.QueryPaymentsByProject(projectID)
}
func (svc *Service) DeletePayment(id int) (bool, error) { return svc.repo.DeletePayment(id) }

func (svc *Service) UpdatePayment(id int, up UpdateProjectPayment) (ProjectPayment, error) {
	return svc.repo.UpdatePayment(id, up)
}
