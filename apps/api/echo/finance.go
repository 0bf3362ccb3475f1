package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/finance"
)

type financeApi struct {
	svc *finance.Service
}

func registerFinanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *finance.Service) {
	api := financeApi{svc: svc}

	eg := g.Group("/expenses", jwt)
	eg.GET("", api.queryExpenses, authorize("expense", "list"))
	eg.POST("", api.createExpense, authorize("expense", "create"))
	eg.GET("/:id", api.retrieveExpense, authorize("expense", "read"))
	eg.PUT("/:id", api.updateExpense, authorize("expense", "update"))
	eg.DELETE("/:id", api.destroyExpense, authorize("expense", "delete"))

	pg := g.Group("/project-payments", jwt)
	pg.GET("", api.queryPayments, authorize("project-payment", "list"))
	pg.POST("", api.createPayment, authorize("project-payment", "create"))
	pg.GET("/:id", api.retrievePayment, authorize("project-payment", "read"))
	pg.PUT("/:id", api.updatePayment, authorize("project-payment", "update"))
	pg.DELETE("/:id", api.destroyPayment, authorize("project-payment", "delete"))

	g.GET("/projects/:id/payments", api.queryProjectPayments, jwt, authorize("project-payment", "list-by-project"))
}

// Expenses

func (api *financeApi) createExpense(ctx echo.Context) error {
	var data finance.NewExpense
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExpense")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	exp, err := api.svc.CreateExpense(data)
	if err != nil {
		return errors.Wrap(err, "creating expense")
	}
	return ctx.JSON(http.StatusCreated, exp)
}

func (api *financeApi) queryExpenses(ctx echo.Context) error {
	if category := ctx.QueryParam("category"); category != "" {
		exps, err := api.svc.QueryExpensesByCategory(category)
		if err != nil {
			return errors.Wrap(err, "querying expenses by category")
		}
		return ctx.JSON(http.StatusOK, exps)
	}

	exps, err := api.svc.QueryAllExpenses()
	if err != nil {
		return errors.Wrap(err, "querying expenses")
	}
	return ctx.JSON(http.StatusOK, exps)
}

func (api *financeApi) retrieveExpense(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	exp, err := api.svc.GetExpenseByID(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, exp)
}

func (api *financeApi) updateExpense(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data finance.UpdateExpense
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateExpense")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	exp, err := api.svc.UpdateExpense(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, exp)
}

func (api *financeApi) destroyExpense(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	ok, err := api.svc.DeleteExpense(id)
	if err != nil {
		return errors.Wrap(err, "deleting expense")
	}
	if !ok {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Project payments

func (api *financeApi) createPayment(ctx echo.Context) error {
	var data finance.NewProjectPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProjectPayment")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	pmt, err := api.svc.CreatePayment(data)
	if err != nil {
		return errors.Wrap(err, "creating project payment")
	}
	return ctx.JSON(http.StatusCreated, pmt)
}

func (api *financeApi) queryPayments(ctx echo.Context) error {
	pmts, err := api.svc.QueryAllPayments()
	if err != nil {
		return errors.Wrap(err, "querying project payments")
	}
	return ctx.JSON(http.StatusOK, pmts)
}

func (api *financeApi) retrievePayment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	pmt, err := api.svc.GetPaymentByID(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, pmt)
}

func (api *financeApi) updatePayment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data finance.UpdateProjectPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProjectPayment")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	pmt, err := api.svc.UpdatePayment(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, pmt)
}

func (api *financeApi) destroyPayment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	ok, err := api.svc.DeletePayment(id)
	if err != nil {
		return errors.Wrap(err, "deleting project payment")
	}
	if !ok {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *financeApi) queryProjectPayments(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	pmts, err := api.svc.QueryPaymentsByProject(id)
	if err != nil {
		return errors.Wrap(err, "querying payments by project")
	}
	return ctx.JSON(http.StatusOK, pmts)
}
