package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/trezcool/academia/core/finance"
	"github.com/trezcool/academia/core/project"
	"github.com/trezcool/academia/core/user"
	testutil "github.com/trezcool/academia/tests"
)

func Test_financeApi_expenses(t *testing.T) {
	app, svcs := setup(t)

	accountant := testutil.CreateUser(t, svcs.usrRepo, "Beans", "beans", "beans@test.cd", "", user.RoleFinance)
	employee := testutil.CreateUser(t, svcs.usrRepo, "Worker", "worker", "worker@test.cd", "", user.RoleEmployee)

	rent, err := svcs.finSvc.CreateExpense(finance.NewExpense{Title: "Office rent", Amount: 1200, Category: "facilities"})
	if err != nil {
		t.Fatalf("CreateExpense(): %v", err)
	}
	coffee, err := svcs.finSvc.CreateExpense(finance.NewExpense{Title: "Coffee beans", Amount: 35, Category: "supplies"})
	if err != nil {
		t.Fatalf("CreateExpense(): %v", err)
	}

	forbidden := marchallObj(t, httpErr{Error: "permission denied"})

	tests := []httpTest{
		{name: "Auth required", path: "/v1/expenses", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Employees have no business here", path: "/v1/expenses", token: getToken(t, employee), wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "Finance lists all", path: "/v1/expenses", token: getToken(t, accountant), wantCode: http.StatusOK, wantData: marchallList(t, rent, coffee)},
		{name: "Category filter", path: "/v1/expenses?category=supplies", token: getToken(t, accountant), wantCode: http.StatusOK, wantData: marchallList(t, coffee)},
		{name: "Unknown category is empty", path: "/v1/expenses?category=travel", token: getToken(t, accountant), wantCode: http.StatusOK, wantData: marchallList(t)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_financeApi_createExpense(t *testing.T) {
	app, svcs := setup(t)

	accountant := testutil.CreateUser(t, svcs.usrRepo, "Beans", "beans", "beans@test.cd", "", user.RoleFinance)
	manager := testutil.CreateUser(t, svcs.usrRepo, "Manager", "manager", "manager@test.cd", "", user.RoleProjectManager)

	tests := []httpTest{
		{
			name: "Managers cannot spend", token: getToken(t, manager),
			body:     marchallObj(t, map[string]interface{}{"title": "Team retreat", "amount": 5000, "category": "events"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Amount must be positive", token: getToken(t, accountant),
			body:     marchallObj(t, map[string]interface{}{"title": "Team retreat", "amount": 0, "category": "events"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"amount": "amount must be greater than 0"}),
		},
		{
			name: "Recorded", token: getToken(t, accountant),
			body:     marchallObj(t, map[string]interface{}{"title": "Team retreat", "amount": "4999.99", "category": "events"}),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/expenses", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if rec.Code == http.StatusCreated {
				var exp finance.Expense
				if err := json.Unmarshal(rec.Body.Bytes(), &exp); err != nil {
					t.Fatalf("unmarshalling Expense: %v", err)
				}
				if exp.Amount != 4999.99 {
					t.Errorf("amount = %v; want 4999.99", exp.Amount)
				}
				if exp.Date.IsZero() {
					t.Error("date should default to the current time")
				}
			}
		})
	}
}

func Test_financeApi_payments(t *testing.T) {
	app, svcs := setup(t)

	accountant := testutil.CreateUser(t, svcs.usrRepo, "Beans", "beans", "beans@test.cd", "", user.RoleFinance)
	manager := testutil.CreateUser(t, svcs.usrRepo, "Manager", "manager", "manager@test.cd", "", user.RoleProjectManager)
	employee := testutil.CreateUser(t, svcs.usrRepo, "Worker", "worker", "worker@test.cd", "", user.RoleEmployee)

	prj, err := svcs.prjSvc.CreateProject(project.NewProject{Title: "Website", ManagerID: &manager.ID})
	if err != nil {
		t.Fatalf("CreateProject(): %v", err)
	}

	body := marchallObj(t, map[string]interface{}{"projectId": prj.ID, "amount": 2500})

	// managers may look but not touch
	req, rec := newAuthRequest(http.MethodPost, "/v1/project-payments", getToken(t, manager), body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusForbidden, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodPost, "/v1/project-payments", getToken(t, accountant), body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var pmt finance.ProjectPayment
	if err := json.Unmarshal(rec.Body.Bytes(), &pmt); err != nil {
		t.Fatalf("unmarshalling ProjectPayment: %v", err)
	}
	if pmt.Status != finance.PaymentPending {
		t.Errorf("status = %q; want %q", pmt.Status, finance.PaymentPending)
	}

	payPath := fmt.Sprintf("/v1/project-payments/%d", pmt.ID)
	projPath := fmt.Sprintf("/v1/projects/%d/payments", prj.ID)

	tests := []httpTest{
		{name: "Finance reads", method: http.MethodGet, path: payPath, token: getToken(t, accountant), wantCode: http.StatusOK},
		{name: "Manager reads", method: http.MethodGet, path: payPath, token: getToken(t, manager), wantCode: http.StatusOK},
		{
			name: "Employee cannot read", method: http.MethodGet, path: payPath, token: getToken(t, employee),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{name: "Manager lists project payments", method: http.MethodGet, path: projPath, token: getToken(t, manager), wantCode: http.StatusOK},
		{
			name:   "Finance marks it completed", method: http.MethodPut, path: payPath, token: getToken(t, accountant),
			body: []byte(`{"status": "completed"}`), wantCode: http.StatusOK,
		},
		{name: "Finance deletes", method: http.MethodDelete, path: payPath, token: getToken(t, accountant), wantCode: http.StatusNoContent},
		{
			name: "Gone is gone", method: http.MethodDelete, path: payPath, token: getToken(t, accountant),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
