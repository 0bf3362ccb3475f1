package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/project"
	"github.com/trezcool/academia/core/user"
)

type projectApi struct {
	svc *project.Service
}

func registerProjectAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *project.Service) {
	api := projectApi{svc: svc}

	pg := g.Group("/projects", jwt)
	pg.GET("", api.queryProjects, authorize("project", "list"))
	pg.POST("", api.createProject, authorize("project", "create"))
	pg.GET("/:id", api.retrieveProject, authorize("project", "read"))
	pg.PUT("/:id", api.updateProject, authorize("project", "update"))
	pg.DELETE("/:id", api.destroyProject, authorize("project", "delete"))
	pg.GET("/:id/milestones", api.queryProjectMilestones, authorize("milestone", "list"))
	pg.GET("/:id/tasks", api.queryProjectTasks, authorize("task", "list"))

	cg := g.Group("/clients", jwt)
	cg.GET("", api.queryClients, authorize("client", "list"))
	cg.POST("", api.createClient, authorize("client", "create"))
	cg.GET("/:id", api.retrieveClient, authorize("client", "read"))
	cg.PUT("/:id", api.updateClient, authorize("client", "update"))
	cg.DELETE("/:id", api.destroyClient, authorize("client", "delete"))

	mg := g.Group("/milestones", jwt)
	mg.GET("", api.queryMilestones, authorize("milestone", "list"))
	mg.POST("", api.createMilestone, authorize("milestone", "create"))
	mg.GET("/:id", api.retrieveMilestone, authorize("milestone", "read"))
	mg.PUT("/:id", api.updateMilestone, authorize("milestone", "update"))
	mg.DELETE("/:id", api.destroyMilestone, authorize("milestone", "delete"))

	tg := g.Group("/tasks", jwt)
	tg.GET("", api.queryTasks, authorize("task", "list"))
	tg.POST("", api.createTask, authorize("task", "create"))
	tg.GET("/:id", api.retrieveTask, authorize("task", "read"))
	tg.PUT("/:id", api.updateTask, authorize("task", "update"))
	tg.DELETE("/:id", api.destroyTask, authorize("task", "delete"))

	g.GET("/employees/:id/tasks", api.queryEmployeeTasks, jwt, authorize("task", "list-by-assignee"))
}

// Projects

func (api *projectApi) createProject(ctx echo.Context) error {
	var data project.NewProject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProject")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	prj, err := api.svc.CreateProject(data)
	if err != nil {
		return errors.Wrap(err, "creating project")
	}
	return ctx.JSON(http.StatusCreated, prj)
}

// queryProjects scopes the listing: employees only see projects they have
// tasks in.
func (api *projectApi) queryProjects(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if claims.Role == user.RoleEmployee {
		prjs, err := api.svc.QueryProjectsByAssignee(claims.UserID())
		if err != nil {
			return errors.Wrap(err, "querying projects by assignee")
		}
		return ctx.JSON(http.StatusOK, prjs)
	}

	prjs, err := api.svc.QueryAllProjects()
	if err != nil {
		return errors.Wrap(err, "querying projects")
	}
	return ctx.JSON(http.StatusOK, prjs)
}

func (api *projectApi) retrieveProject(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	prj, err := api.svc.GetProjectByID(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, prj)
}

func (api *projectApi) updateProject(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data project.UpdateProject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProject")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	prj, err := api.svc.UpdateProject(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, prj)
}

func (api *projectApi) destroyProject(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	ok, err := api.svc.DeleteProject(id)
	if err != nil {
		return errors.Wrap(err, "deleting project")
	}
	if !ok {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *projectApi) queryProjectMilestones(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	mss, err := api.svc.QueryMilestonesByProject(id)
	if err != nil {
		return errors.Wrap(err, "querying project milestones")
	}
	return ctx.JSON(http.StatusOK, mss)
}

func (api *projectApi) queryProjectTasks(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	tasks, err := api.svc.QueryTasksByProject(id)
	if err != nil {
		return errors.Wrap(err, "querying project tasks")
	}
	return ctx.JSON(http.StatusOK, tasks)
}

// Clients

func (api *projectApi) createClient(ctx echo.Context) error {
	var data project.NewClient
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClient")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	cli, err := api.svc.CreateClient(data)
	if err != nil {
		return errors.Wrap(err, "creating client")
	}
	return ctx.JSON(http.StatusCreated, cli)
}

func (api *projectApi) queryClients(ctx echo.Context) error {
	clis, err := api.svc.QueryAllClients()
	if err != nil {
		return errors.Wrap(err, "querying clients")
	}
	return ctx.JSON(http.StatusOK, clis)
}

func (api *projectApi) retrieveClient(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	cli, err := api.svc.GetClientByID(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cli)
}

func (api *projectApi) updateClient(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data project.UpdateClient
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClient")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	cli, err := api.svc.UpdateClient(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cli)
}

func (api *projectApi) destroyClient(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	ok, err := api.svc.DeleteClient(id)
	if err != nil {
		return errors.Wrap(err, "deleting client")
	}
	if !ok {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Milestones

func (api *projectApi) createMilestone(ctx echo.Context) error {
	var data project.NewMilestone
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMilestone")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	ms, err := api.svc.CreateMilestone(data)
	if err != nil {
		return errors.Wrap(err, "creating milestone")
	}
	return ctx.JSON(http.StatusCreated, ms)
}

func (api *projectApi) queryMilestones(ctx echo.Context) error {
	mss, err := api.svc.QueryAllMilestones()
	if err != nil {
		return errors.Wrap(err, "querying milestones")
	}
	return ctx.JSON(http.StatusOK, mss)
}

func (api *projectApi) retrieveMilestone(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	ms, err := api.svc.GetMilestoneByID(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ms)
}

func (api *projectApi) updateMilestone(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data project.UpdateMilestone
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMilestone")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	ms, err := api.svc.UpdateMilestone(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ms)
}

func (api *projectApi) destroyMilestone(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	ok, err := api.svc.DeleteMilestone(id)
	if err != nil {
		return errors.Wrap(err, "deleting milestone")
	}
	if !ok {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Tasks

func (api *projectApi) createTask(ctx echo.Context) error {
	var data project.NewTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	task, err := api.svc.CreateTask(data)
	if err != nil {
		return errors.Wrap(err, "creating task")
	}
	return ctx.JSON(http.StatusCreated, task)
}

func (api *projectApi) queryTasks(ctx echo.Context) error {
	tasks, err := api.svc.QueryAllTasks()
	if err != nil {
		return errors.Wrap(err, "querying tasks")
	}
	return ctx.JSON(http.StatusOK, tasks)
}

func (api *projectApi) retrieveTask(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	task, err := api.svc.GetTaskByID(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, task)
}

// updateTask lets admin and project managers reshape any task. An employee
// may only move a task assigned to them along the board, touching nothing
// but its status.
func (api *projectApi) updateTask(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data project.UpdateTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTask")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if !(claims.Role == user.RoleAdmin || claims.Role == user.RoleProjectManager) {
		if !data.StatusOnly() {
			return errHttpForbidden
		}
		task, err := api.svc.GetTaskByID(id)
		if err != nil {
			return err
		}
		if task.AssignedTo == nil || *task.AssignedTo != claims.UserID() {
			return errHttpForbidden
		}
	}

	if err := data.Validate(); err != nil {
		return err
	}
	task, err := api.svc.UpdateTask(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, task)
}

func (api *projectApi) destroyTask(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	ok, err := api.svc.DeleteTask(id)
	if err != nil {
		return errors.Wrap(err, "deleting task")
	}
	if !ok {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *projectApi) queryEmployeeTasks(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	tasks, err := api.svc.QueryTasksByAssignee(id)
	if err != nil {
		return errors.Wrap(err, "querying tasks by assignee")
	}
	return ctx.JSON(http.StatusOK, tasks)
}
