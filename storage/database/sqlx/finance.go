package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/finance"
)

const (
	expenseCols = `id, title, amount, category, date, description`
	paymentCols = `id, project_id, amount, date, status, description`
)

type financeRepository struct {
	db *sqlx.DB
}

func NewFinanceRepository(db *sqlx.DB) *financeRepository {
	return &financeRepository{db: db}
}

// Expenses

func (repo *financeRepository) CreateExpense(exp finance.Expense) (finance.Expense, error) {
	query := `
INSERT INTO expense (title, amount, category, date, description)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + expenseCols
	err := repo.db.Get(&exp, query, exp.Title, exp.Amount, exp.Category, exp.Date, exp.Description)
	return exp, errors.Wrap(err, "creating expense")
}

func (repo *financeRepository) QueryAllExpenses() ([]finance.Expense, error) {
	exps := make([]finance.Expense, 0)
	err := repo.db.Select(&exps, `SELECT `+expenseCols+` FROM expense ORDER BY id`)
	return exps, errors.Wrap(err, "querying expenses")
}

func (repo *financeRepository) QueryExpensesByCategory(category string) ([]finance.Expense, error) {
	exps := make([]finance.Expense, 0)
	err := repo.db.Select(&exps, `SELECT `+expenseCols+` FROM expense WHERE category = $1 ORDER BY id`, category)
	return exps, errors.Wrap(err, "querying expenses by category")
}

func (repo *financeRepository) GetExpenseByID(id int) (finance.Expense, error) {
	var exp finance.Expense
	if err := repo.db.Get(&exp, `SELECT `+expenseCols+` FROM expense WHERE id = $1`, id); err != nil {
		return exp, notFoundOrWrap(err, finance.ErrNotFound, "getting expense")
	}
	return exp, nil
}

func (repo *financeRepository) UpdateExpense(id int, patch finance.UpdateExpense) (finance.Expense, error) {
	query := `
UPDATE expense
SET title       = COALESCE($2, title),
    amount      = COALESCE($3, amount),
    category    = COALESCE($4, category),
    date        = COALESCE($5, date),
    description = COALESCE($6, description)
WHERE id = $1
RETURNING ` + expenseCols
	var exp finance.Expense
	err := repo.db.Get(&exp, query, id, patch.Title, patch.Amount, patch.Category, patch.Date, patch.Description)
	if err != nil {
		return exp, notFoundOrWrap(err, finance.ErrNotFound, "updating expense")
	}
	return exp, nil
}

func (repo *financeRepository) DeleteExpense(id int) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM expense WHERE id = $1`, id)
	return deleted(res, err, "deleting expense")
}

// Project payments

func (repo *financeRepository) CreatePayment(pmt finance.ProjectPayment) (finance.ProjectPayment, error) {
	query := `
INSERT INTO project_payment (project_id, amount, date, status, description)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + paymentCols
	err := repo.db.Get(&pmt, query, pmt.ProjectID, pmt.Amount, pmt.Date, pmt.Status, pmt.Description)
	return pmt, errors.Wrap(err, "creating project payment")
}

func (repo *financeRepository) QueryAllPayments() ([]finance.ProjectPayment, error) {
	pmts := make([]finance.ProjectPayment, 0)
	err := repo.db.Select(&pmts, `SELECT `+paymentCols+` FROM project_payment ORDER BY id`)
	return pmts, errors.Wrap(err, "querying project payments")
}

func (repo *financeRepository) QueryPaymentsByProject(projectID int) ([]finance.ProjectPayment, error) {
	pmts := make([]finance.ProjectPayment, 0)
	err := repo.db.Select(
		&pmts, `SELECT `+paymentCols+` FROM project_payment WHERE project_id = $1 ORDER BY id`, projectID)
	return pmts, errors.Wrap(err, "querying project payments by project")
}

func (repo *financeRepository) GetPaymentByID(id int) (finance.ProjectPayment, error) {
	var pmt finance.ProjectPayment
	if err := repo.db.Get(&pmt, `SELECT `+paymentCols+` FROM project_payment WHERE id = $1`, id); err != nil {
		return pmt, notFoundOrWrap(err, finance.ErrNotFound, "getting project payment")
	}
	return pmt, nil
}

func (repo *financeRepository) UpdatePayment(id int, patch finance.UpdateProjectPayment) (finance.ProjectPayment, error) {
	query := `
UPDATE project_payment
SET project_id  = COALESCE($2, project_id),
    amount      = COALESCE($3, amount),
    date        = COALESCE($4, date),
    status      = COALESCE($5, status),
    description = COALESCE($6, description)
WHERE id = $1
RETURNING ` + paymentCols
	var pmt finance.ProjectPayment
	err := repo.db.Get(&pmt, query, id, patch.ProjectID, patch.Amount, patch.Date, patch.Status, patch.Description)
	if err != nil {
		return pmt, notFoundOrWrap(err, finance.ErrNotFound, "updating project payment")
	}
	return pmt, nil
}

func (repo *financeRepository) DeletePayment(id int) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM project_payment WHERE id = $1`, id)
	return deleted(res, err, "deleting project payment")
}
