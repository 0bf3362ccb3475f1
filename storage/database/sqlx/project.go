package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/project"
)

const (
	projectCols   = `id, title, description, client_id, manager_id, status, budget, start_date, end_date`
	clientCols    = `id, name, email, phone, industry`
	milestoneCols = `id, project_id, title, description, due_date, completed, "order"`
	taskCols      = `id, project_id, milestone_id, title, description, assigned_to, status, due_date`
)

type projectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) *projectRepository {
	return &projectRepository{db: db}
}

// Projects

func (repo *projectRepository) CreateProject(prj project.Project) (project.Project, error) {
	query := `
INSERT INTO project (title, description, client_id, manager_id, status, budget, start_date, end_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + projectCols
	err := repo.db.Get(
		&prj, query,
		prj.Title, prj.Description, prj.ClientID, prj.ManagerID, prj.Status, prj.Budget, prj.StartDate, prj.EndDate)
	return prj, errors.Wrap(err, "creating project")
}

func (repo *projectRepository) QueryAllProjects() ([]project.Project, error) {
	prjs := make([]project.Project, 0)
	err := repo.db.Select(&prjs, `SELECT `+projectCols+` FROM project ORDER BY id`)
	return prjs, errors.Wrap(err, "querying projects")
}

func (repo *projectRepository) QueryProjectsByManager(managerID int) ([]project.Project, error) {
	prjs := make([]project.Project, 0)
	err := repo.db.Select(&prjs, `SELECT `+projectCols+` FROM project WHERE manager_id = $1 ORDER BY id`, managerID)
	return prjs, errors.Wrap(err, "querying projects by manager")
}

func (repo *projectRepository) QueryProjectsByAssignee(userID int) ([]project.Project, error) {
	prjs := make([]project.Project, 0)
	query := `
SELECT DISTINCT p.id, p.title, p.description, p.client_id, p.manager_id, p.status, p.budget, p.start_date, p.end_date
FROM project p
         JOIN task t ON t.project_id = p.id
WHERE t.assigned_to = $1
ORDER BY p.id`
	err := repo.db.Select(&prjs, query, userID)
	return prjs, errors.Wrap(err, "querying projects by assignee")
}

func (repo *projectRepository) GetProjectByID(id int) (project.Project, error) {
	var prj project.Project
	if err := repo.db.Get(&prj, `SELECT `+projectCols+` FROM project WHERE id = $1`, id); err != nil {
		return prj, notFoundOrWrap(err, project.ErrNotFound, "getting project")
	}
	return prj, nil
}

func (repo *projectRepository) UpdateProject(id int, patch project.UpdateProject) (project.Project, error) {
	query := `
UPDATE project
SET title       = COALESCE($2, title),
    description = COALESCE($3, description),
    client_id   = COALESCE($4, client_id),
    manager_id  = COALESCE($5, manager_id),
    status      = COALESCE($6, status),
    budget      = COALESCE($7, budget),
    start_date  = COALESCE($8, start_date),
    end_date    = COALESCE($9, end_date)
WHERE id = $1
RETURNING ` + projectCols
	var prj project.Project
	err := repo.db.Get(
		&prj, query, id,
		patch.Title, patch.Description, patch.ClientID, patch.ManagerID,
		patch.Status, patch.Budget, patch.StartDate, patch.EndDate)
	if err != nil {
		return prj, notFoundOrWrap(err, project.ErrNotFound, "updating project")
	}
	return prj, nil
}

func (repo *projectRepository) DeleteProject(id int) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM project WHERE id = $1`, id)
	return deleted(res, err, "deleting project")
}

// Clients

func (repo *projectRepository) CreateClient(cli project.Client) (project.Client, error) {
	query := `
INSERT INTO client (name, email, phone, industry)
VALUES ($1, $2, $3, $4)
RETURNING ` + clientCols
	err := repo.db.Get(&cli, query, cli.Name, cli.Email, cli.Phone, cli.Industry)
	return cli, errors.Wrap(err, "creating client")
}

func (repo *projectRepository) QueryAllClients() ([]project.Client, error) {
	clis := make([]project.Client, 0)
	err := repo.db.Select(&clis, `SELECT `+clientCols+` FROM client ORDER BY id`)
	return clis, errors.Wrap(err, "querying clients")
}

func (repo *projectRepository) GetClientByID(id int) (project.Client, error) {
	var cli project.Client
	if err := repo.db.Get(&cli, `SELECT `+clientCols+` FROM client WHERE id = $1`, id); err != nil {
		return cli, notFoundOrWrap(err, project.ErrNotFound, "getting client")
	}
	return cli, nil
}

func (repo *projectRepository) UpdateClient(id int, patch project.UpdateClient) (project.Client, error) {
	query := `
UPDATE client
SET name     = COALESCE($2, name),
    email    = COALESCE($3, email),
    phone    = COALESCE($4, phone),
    industry = COALESCE($5, industry)
WHERE id = $1
RETURNING ` + clientCols
	var cli project.Client
	err := repo.db.Get(&cli, query, id, patch.Name, patch.Email, patch.Phone, patch.Industry)
	if err != nil {
		return cli, notFoundOrWrap(err, project.ErrNotFound, "updating client")
	}
	return cli, nil
}

func (repo *projectRepository) DeleteClient(id int) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM client WHERE id = $1`, id)
	return deleted(res, err, "deleting client")
}

// Milestones

func (repo *projectRepository) CreateMilestone(ms project.Milestone) (project.Milestone, error) {
	query := `
INSERT INTO milestone (project_id, title, description, due_date, completed, "order")
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + milestoneCols
	err := repo.db.Get(&ms, query, ms.ProjectID, ms.Title, ms.Description, ms.DueDate, ms.Completed, ms.Order)
	return ms, errors.Wrap(err, "creating milestone")
}

func (repo *projectRepository) QueryAllMilestones() ([]project.Milestone, error) {
	mss := make([]project.Milestone, 0)
	err := repo.db.Select(&mss, `SELECT `+milestoneCols+` FROM milestone ORDER BY id`)
	return mss, errors.Wrap(err, "querying milestones")
}

func (repo *projectRepository) QueryMilestonesByProject(projectID int) ([]project.Milestone, error) {
	mss := make([]project.Milestone, 0)
	err := repo.db.Select(
		&mss, `SELECT `+milestoneCols+` FROM milestone WHERE project_id = $1 ORDER BY "order"`, projectID)
	return mss, errors.Wrap(err, "querying milestones by project")
}

func (repo *projectRepository) GetMilestoneByID(id int) (project.Milestone, error) {
	var ms project.Milestone
	if err := repo.db.Get(&ms, `SELECT `+milestoneCols+` FROM milestone WHERE id = $1`, id); err != nil {
		return ms, notFoundOrWrap(err, project.ErrNotFound, "getting milestone")
	}
	return ms, nil
}

func (repo *projectRepository) UpdateMilestone(id int, patch project.UpdateMilestone) (project.Milestone, error) {
	query := `
UPDATE milestone
SET project_id  = COALESCE($2, project_id),
    title       = COALESCE($3, title),
    description = COALESCE($4, description),
    due_date    = COALESCE($5, due_date),
    completed   = COALESCE($6, completed),
    "order"     = COALESCE($7, "order")
WHERE id = $1
RETURNING ` + milestoneCols
	var ms project.Milestone
	err := repo.db.Get(&ms, query, id, patch.ProjectID, patch.Title, patch.Description, patch.DueDate, patch.Completed, patch.Order)
	if err != nil {
		return ms, notFoundOrWrap(err, project.ErrNotFound, "updating milestone")
	}
	return ms, nil
}

func (repo *projectRepository) DeleteMilestone(id int) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM milestone WHERE id = $1`, id)
	return deleted(res, err, "deleting milestone")
}

// Tasks

func (repo *projectRepository) CreateTask(task project.Task) (project.Task, error) {
	query := `
INSERT INTO task (project_id, milestone_id, title, description, assigned_to, status, due_date)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + taskCols
	err := repo.db.Get(
		&task, query,
		task.ProjectID, task.MilestoneID, task.Title, task.Description,
		task.AssignedTo, task.Status, task.DueDate)
	return task, errors.Wrap(err, "creating task")
}

func (repo *projectRepository) QueryAllTasks() ([]project.Task, error) {
	tasks := make([]project.Task, 0)
	err := repo.db.Select(&tasks, `SELECT `+taskCols+` FROM task ORDER BY id`)
	return tasks, errors.Wrap(err, "querying tasks")
}

func (repo *projectRepository) QueryTasksByProject(projectID int) ([]project.Task, error) {
	tasks := make([]project.Task, 0)
	err := repo.db.Select(&tasks, `SELECT `+taskCols+` FROM task WHERE project_id = $1 ORDER BY id`, projectID)
	return tasks, errors.Wrap(err, "querying tasks by project")
}

func (repo *projectRepository) QueryTasksByMilestone(milestoneID int) ([]project.Task, error) {
	tasks := make([]project.Task, 0)
	err := repo.db.Select(&tasks, `SELECT `+taskCols+` FROM task WHERE milestone_id = $1 ORDER BY id`, milestoneID)
	return tasks, errors.Wrap(err, "querying tasks by milestone")
}

func (repo *projectRepository) QueryTasksByAssignee(userID int) ([]project.Task, error) {
	tasks := make([]project.Task, 0)
	err := repo.db.Select(&tasks, `SELECT `+taskCols+` FROM task WHERE assigned_to = $1 ORDER BY id`, userID)
	return tasks, errors.Wrap(err, "querying tasks by assignee")
}

func (repo *projectRepository) GetTaskByID(id int) (project.Task, error) {
	var task project.Task
	if err := repo.db.Get(&task, `SELECT `+taskCols+` FROM task WHERE id = $1`, id); err != nil {
		return task, notFoundOrWrap(err, project.ErrNotFound, "getting task")
	}
	return task, nil
}

func (repo *projectRepository) UpdateTask(id int, patch project.UpdateTask) (project.Task, error) {
	query := `
UPDATE task
SET project_id   = COALESCE($2, project_id),
    milestone_id = COALESCE($3, milestone_id),
    title        = COALESCE($4, title),
    description  = COALESCE($5, description),
    assigned_to  = COALESCE($6, assigned_to),
    status       = COALESCE($7, status),
    due_date     = COALESCE($8, due_date)
WHERE id = $1
RETURNING ` + taskCols
	var task project.Task
	err := repo.db.Get(
		&task, query, id,
		patch.ProjectID, patch.MilestoneID, patch.Title, patch.Description,
		patch.AssignedTo, patch.Status, patch.DueDate)
	if err != nil {
		return task, notFoundOrWrap(err, project.ErrNotFound, "updating task")
	}
	return task, nil
}

func (repo *projectRepository) DeleteTask(id int) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM task WHERE id = $1`, id)
	return deleted(res, err, "deleting task")
}
