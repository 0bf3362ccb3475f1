package inmemdb

import (
	"sort"

	"github.com/trezcool/academia/core/project"
)

type projectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) project.Repository {
	return &projectRepository{db: db}
}

// Projects

func (repo *projectRepository) CreateProject(prj project.Project) (project.Project, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	prj.ID = repo.db.nextID("project")
	repo.db.projects[prj.ID] = &prj
	return prj, nil
}

func (repo *projectRepository) queryProjects(filter func(project.Project) bool) []project.Project {
	prjs := make([]project.Project, 0)
	for _, p := range repo.db.projects {
		if filter == nil || filter(*p) {
			prjs = append(prjs, *p)
		}
	}
	sort.Slice(prjs, func(i, j int) bool { return prjs[i].ID < prjs[j].ID })
	return prjs
}

func (repo *projectRepository) QueryAllProjects() ([]project.Project, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryProjects(nil), nil
}

func (repo *projectRepository) QueryProjectsByManager(managerID int) ([]project.Project, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryProjects(func(p project.Project) bool {
		return p.ManagerID != nil && *p.ManagerID == managerID
	}), nil
}

func (repo *projectRepository) QueryProjectsByAssignee(userID int) ([]project.Project, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	prjIDs := make(map[int]bool)
	for _, task := range repo.db.tasks {
		if task.AssignedTo != nil && *task.AssignedTo == userID {
			prjIDs[task.ProjectID] = true
		}
	}
	return repo.queryProjects(func(p project.Project) bool { return prjIDs[p.ID] }), nil
}

func (repo *projectRepository) GetProjectByID(id int) (project.Project, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if p, ok := repo.db.projects[id]; ok {
		return *p, nil
	}
	return project.Project{}, project.ErrNotFound
}

func (repo *projectRepository) UpdateProject(id int, patch project.UpdateProject) (project.Project, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	prj, ok := repo.db.projects[id]
	if !ok {
		return project.Project{}, project.ErrNotFound
	}
	if patch.Title != nil {
		prj.Title = *patch.Title
	}
	if patch.Description != nil {
		prj.Description = *patch.Description
	}
	if patch.ClientID != nil {
		prj.ClientID = patch.ClientID
	}
	if patch.ManagerID != nil {
		prj.ManagerID = patch.ManagerID
	}
	if patch.Status != nil {
		prj.Status = *patch.Status
	}
	if patch.Budget != nil {
		prj.Budget = *patch.Budget
	}
	if patch.StartDate != nil {
		prj.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		prj.EndDate = patch.EndDate
	}
	return *prj, nil
}

func (repo *projectRepository) DeleteProject(id int) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.projects[id]; !ok {
		return false, nil
	}
	delete(repo.db.projects, id)
	repo.db.sweepProject(id)
	return true, nil
}

// Clients

func (repo *projectRepository) CreateClient(cli project.Client) (project.Client, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cli.ID = repo.db.nextID("client")
	repo.db.clients[cli.ID] = &cli
	return cli, nil
}

func (repo *projectRepository) QueryAllClients() ([]project.Client, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	clis := make([]project.Client, 0, len(repo.db.clients))
	for _, c := range repo.db.clients {
		clis = append(clis, *c)
	}
	sort.Slice(clis, func(i, j int) bool { return clis[i].ID < clis[j].ID })
	return clis, nil
}

func (repo *projectRepository) GetClientByID(id int) (project.Client, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.clients[id]; ok {
		return *c, nil
	}
	return project.Client{}, project.ErrNotFound
}

func (repo *projectRepository) UpdateClient(id int, patch project.UpdateClient) (project.Client, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cli, ok := repo.db.clients[id]
	if !ok {
		return project.Client{}, project.ErrNotFound
	}
	if patch.Name != nil {
		cli.Name = *patch.Name
	}
	if patch.Email != nil {
		cli.Email = *patch.Email
	}
	if patch.Phone != nil {
		cli.Phone = *patch.Phone
	}
	if patch.Industry != nil {
		cli.Industry = *patch.Industry
	}
	return *cli, nil
}

func (repo *projectRepository) DeleteClient(id int) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.clients[id]; !ok {
		return false, nil
	}
	delete(repo.db.clients, id)
	repo.db.sweepClient(id)
	return true, nil
}

// Milestones

func (repo *projectRepository) CreateMilestone(ms project.Milestone) (project.Milestone, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	ms.ID = repo.db.nextID("milestone")
	repo.db.milestones[ms.ID] = &ms
	return ms, nil
}

func (repo *projectRepository) queryMilestones(filter func(project.Milestone) bool) []project.Milestone {
	mss := make([]project.Milestone, 0)
	for _, m := range repo.db.milestones {
		if filter == nil || filter(*m) {
			mss = append(mss, *m)
		}
	}
	sort.Slice(mss, func(i, j int) bool {
		if mss[i].ProjectID != mss[j].ProjectID {
			return mss[i].ProjectID < mss[j].ProjectID
		}
		if mss[i].Order != mss[j].Order {
			return mss[i].Order < mss[j].Order
		}
		return mss[i].ID < mss[j].ID
	})
	return mss
}

func (repo *projectRepository) QueryAllMilestones() ([]project.Milestone, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryMilestones(nil), nil
}

func (repo *projectRepository) QueryMilestonesByProject(projectID int) ([]project.Milestone, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryMilestones(func(m project.Milestone) bool { return m.ProjectID == projectID }), nil
}

func (repo *projectRepository) GetMilestoneByID(id int) (project.Milestone, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if m, ok := repo.db.milestones[id]; ok {
		return *m, nil
	}
	return project.Milestone{}, project.ErrNotFound
}

func (repo *projectRepository) UpdateMilestone(id int, patch project.UpdateMilestone) (project.Milestone, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	ms, ok := repo.db.milestones[id]
	if !ok {
		return project.Milestone{}, project.ErrNotFound
	}
	if patch.ProjectID != nil {
		ms.ProjectID = *patch.ProjectID
	}
	if patch.Title != nil {
		ms.Title = *patch.Title
	}
	if patch.Description != nil {
		ms.Description = *patch.Description
	}
	if patch.DueDate != nil {
		ms.DueDate = patch.DueDate
	}
	if patch.Completed != nil {
		ms.Completed = *patch.Completed
	}
	if patch.Order != nil {
		ms.Order = *patch.Order
	}
	return *ms, nil
}

func (repo *projectRepository) DeleteMilestone(id int) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.milestones[id]; !ok {
		return false, nil
	}
	delete(repo.db.milestones, id)
	repo.db.sweepMilestone(id)
	return true, nil
}

// Tasks

func (repo *projectRepository) CreateTask(task project.Task) (project.Task, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	task.ID = repo.db.nextID("task")
	repo.db.tasks[task.ID] = &task
	return task, nil
}

func (repo *projectRepository) queryTasks(filter func(project.Task) bool) []project.Task {
	tasks := make([]project.Task, 0)
	for _, t := range repo.db.tasks {
		if filter == nil || filter(*t) {
			tasks = append(tasks, *t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

func (repo *projectRepository) QueryAllTasks() ([]project.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryTasks(nil), nil
}

func (repo *projectRepository) QueryTasksByProject(projectID int) ([]project.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryTasks(func(t project.Task) bool { return t.ProjectID == projectID }), nil
}

func (repo *projectRepository) QueryTasksByMilestone(milestoneID int) ([]project.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryTasks(func(t project.Task) bool {
		return t.MilestoneID != nil && *t.MilestoneID == milestoneID
	}), nil
}

func (repo *projectRepository) QueryTasksByAssignee(userID int) ([]project.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryTasks(func(t project.Task) bool {
		return t.AssignedTo != nil && *t.AssignedTo == userID
	}), nil
}

func (repo *projectRepository) GetTaskByID(id int) (project.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if t, ok := repo.db.tasks[id]; ok {
		return *t, nil
	}
	return project.Task{}, project.ErrNotFound
}

func (repo *projectRepository) UpdateTask(id int, patch project.UpdateTask) (project.Task, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	task, ok := repo.db.tasks[id]
	if !ok {
		return project.Task{}, project.ErrNotFound
	}
	if patch.ProjectID != nil {
		task.ProjectID = *patch.ProjectID
	}
	if patch.MilestoneID != nil {
		task.MilestoneID = patch.MilestoneID
	}
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.AssignedTo != nil {
		task.AssignedTo = patch.AssignedTo
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	return *task, nil
}

func (repo *projectRepository) DeleteTask(id int) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.tasks[id]; !ok {
		return false, nil
	}
	delete(repo.db.tasks, id)
	return true, nil
}
