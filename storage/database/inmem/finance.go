package inmemdb

import (
	"sort"

	"github.com/trezcool/academia/core/finance"
)

type financeRepository struct {
	db *DB
}

func NewFinanceRepository(db *DB) finance.Repository {
	return &financeRepository{db: db}
}

// Expenses

func (repo *financeRepository) CreateExpense(exp finance.Expense) (finance.Expense, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	exp.ID = repo.db.nextID("expense")
	repo.db.expenses[exp.ID] = &exp
	return exp, nil
}

func (repo *financeRepository) queryExpenses(filter func(finance.Expense) bool) []finance.Expense {
	exps := make([]finance.Expense, 0)
	for _, e := range repo.db.expenses {
		if filter == nil || filter(*e) {
			exps = append(exps, *e)
		}
	}
	sort.Slice(exps, func(i, j int) bool { return exps[i].ID < exps[j].ID })
	return exps
}

func (repo *financeRepository) QueryAllExpenses() ([]finance.Expense, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryExpenses(nil), nil
}

func (repo *financeRepository) QueryExpensesByCategory(category string) ([]finance.Expense, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryExpenses(func(e finance.Expense) bool { return e.Category == category }), nil
}

func (repo *financeRepository) GetExpenseByID(id int) (finance.Expense, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if e, ok := repo.db.expenses[id]; ok {
		return *e, nil
	}
	return finance.Expense{}, finance.ErrNotFound
}

func (repo *financeRepository) UpdateExpense(id int, patch finance.UpdateExpense) (finance.Expense, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	exp, ok := repo.db.expenses[id]
	if !ok {
		return finance.Expense{}, finance.ErrNotFound
	}
	if patch.Title != nil {
		exp.Title = *patch.Title
	}
	if patch.Amount != nil {
		exp.Amount = *patch.Amount
	}
	if patch.Category != nil {
		exp.Category = *patch.Category
	}
	if patch.Date != nil {
		exp.Date = *patch.Date
	}
	if patch.Description != nil {
		exp.Description = *patch.Description
	}
	return *exp, nil
}

func (repo *financeRepository) DeleteExpense(id int) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.expenses[id]; !ok {
		return false, nil
	}
	delete(repo.db.expenses, id)
	return true, nil
}

// Project payments

func (repo *financeRepository) CreatePayment(pmt finance.ProjectPayment) (finance.ProjectPayment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	pmt.ID = repo.db.nextID("project_payment")
	repo.db.payments[pmt.ID] = &pmt
	return pmt, nil
}

func (repo *financeRepository) queryPayments(filter func(finance.ProjectPayment) bool) []finance.ProjectPayment {
	pmts := make([]finance.ProjectPayment, 0)
	for _, p := range repo.db.payments {
		if filter == nil || filter(*p) {
			pmts = append(pmts, *p)
		}
	}
	sort.Slice(pmts, func(i, j int) bool { return pmts[i].ID < pmts[j].ID })
	return pmts
}

func (repo *financeRepository) QueryAllPayments() ([]finance.ProjectPayment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryPayments(nil), nil
}

func (repo *financeRepository) QueryPaymentsByProject(projectID int) ([]finance.ProjectPayment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryPayments(func(p finance.ProjectPayment) bool { return p.ProjectID == projectID }), nil
}

func (repo *financeRepository) GetPaymentByID(id int) (finance.ProjectPayment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if p, ok := repo.db.payments[id]; ok {
		return *p, nil
	}
	return finance.ProjectPayment{}, finance.ErrNotFound
}

func (repo *financeRepository) UpdatePayment(id int, patch finance.UpdateProjectPayment) (finance.ProjectPayment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	pmt, ok := repo.db.payments[id]
	if !ok {
		return finance.ProjectPayment{}, finance.ErrNotFound
	}
	if patch.ProjectID != nil {
		pmt.ProjectID = *patch.ProjectID
	}
	if patch.Amount != nil {
		pmt.Amount = *patch.Amount
	}
	if patch.Date != nil {
		pmt.Date = *patch.Date
	}
	if patch.Status != nil {
		pmt.Status = *patch.Status
	}
	if patch.Description != nil {
		pmt.Description = *patch.Description
	}
	return *pmt, nil
}

func (repo *financeRepository) DeletePayment(id int) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.payments[id]; !ok {
		return false, nil
	}
	delete(repo.db.payments, id)
	return true, nil
}
