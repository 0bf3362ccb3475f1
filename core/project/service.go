package project

import (
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	CreateProject(prj Project) (Project, error)
	QueryAllProjects() ([]Project, error)
	QueryProjectsByManager(managerID int) ([]Project, error)
	QueryProjectsByAssignee(userID int) ([]Project, error)
	GetProjectByID(id int) (Project, error)
	UpdateProject(id int, patch UpdateProject) (Project, error)
	DeleteProject(id int) (bool, error)

	CreateClient(cli Client) (Client, error)
	QueryAllClients() ([]Client, error)
	GetClientByID(id int) (Client, error)
	UpdateClient(id int, patch UpdateClient) (Client, error)
	DeleteClient(id int) (bool, error)

	CreateMilestone(ms Milestone) (Milestone, error)
	QueryAllMilestones() ([]Milestone, error)
	QueryMilestonesByProject(projectID int) ([]Milestone, error)
	GetMilestoneByID(id int) (Milestone, error)
	UpdateMilestone(id int, patch UpdateMilestone) (Milestone, error)
	DeleteMilestone(id int) (bool, error)

	CreateTask(task Task) (Task, error)
	QueryAllTasks() ([]Task, error)
	QueryTasksByProject(projectID int) ([]Task, error)
	QueryTasksByMilestone(milestoneID int) ([]Task, error)
	QueryTasksByAssignee(userID int) ([]Task, error)
	GetTaskByID(id int) (Task, error)
	UpdateTask(id int, patch UpdateTask) (Task, error)
	DeleteTask(id int) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CreateProject(np NewProject) (Project, error) {
	status := np.Status
	if status == "" {
		status = StatusActive
	}
	prj := Project{
		Title:       np.Title,
		Description: np.Description,
		ClientID:    np.ClientID,
		ManagerID:   np.ManagerID,
		Status:      status,
		Budget:      np.Budget,
		StartDate:   np.StartDate,
		EndDate:     np.EndDate,
	}
	return svc.repo.CreateProject(prj)
}

func (svc *Service) QueryAllProjects() ([]Project, error) { return svc.repo.QueryAllProjects() }
func (svc *Service) GetProjectByID(id int) (Project, error) {
	return svc.repo.GetProjectByID(id)
}
func (svc *Service) QueryProjectsByManager(managerID int) ([]Project, error) {
	return svc.repo.QueryProjectsByManager(managerID)
}

// QueryProjectsByAssignee returns the projects a user has at least one task in.
func (svc *Service) QueryProjectsByAssignee(userID int) ([]Project, error) {
	return svc.repo.QueryProjectsByAssignee(userID)
}
func (svc *Service) DeleteProject(id int) (bool, error) { return svc.repo.DeleteProject(id) }

func (svc *Service) UpdateProject(id int, up UpdateProject) (Project, error) {
	return svc.repo.UpdateProject(id, up)
}

func (svc *Service) CreateClient(nc NewClient) (Client, error) {
	cli := Client{
		Name:     nc.Name,
		Email:    nc.Email,
		Phone:    nc.Phone,
		Industry: nc.Industry,
	}
	return svc.repo.CreateClient(cli)
}

func (svc *Service) QueryAllClients() ([]Client, error)   { return svc.repo.QueryAllClients() }
func (svc *Service) GetClientByID(id int) (Client, error) { return svc.repo.GetClientByID(id) }
func (svc *Service) DeleteClient(id int) (bool, error)    { return svc.repo.DeleteClient(id) }

func (svc *Service) UpdateClient(id int, uc UpdateClient) (Client, error) {
	return svc.repo.UpdateClient(id, uc)
}

func (svc *Service) CreateMilestone(nm NewMilestone) (Milestone, error) {
	ms := Milestone{
		ProjectID:   nm.ProjectID,
		Title:       nm.Title,
		Description: nm.Description,
		DueDate:     nm.DueDate,
		Completed:   nm.Completed,
		Order:       nm.Order,
	}
	return svc.repo.CreateMilestone(ms)
}

func (svc *Service) QueryAllMilestones() ([]Milestone, error) {
	return svc.repo.QueryAllMilestones()
}
func (svc *Service) GetMilestoneByID(id int) (Milestone, error) {
	return svc.repo.GetMilestoneByID(id)
}
func (svc *Service) QueryMilestonesByProject(projectID int) ([]Milestone, error) {
	return svc.repo.QueryMilestonesByProject(projectID)
}
func (svc *Service) DeleteMilestone(id int) (bool, error) { return svc.repo.DeleteMilestone(id) }

func (svc *Service) UpdateMilestone(id int, um UpdateMilestone) (Milestone, error) {
	return svc.repo.UpdateMilestone(id, um)
}

func (svc *Service) CreateTask(nt NewTask) (Task, error) {
	status := nt.Status
	if status == "" {
		status = TaskAssigned
	}
	task := Task{
		ProjectID:   nt.ProjectID,
		MilestoneID: nt.MilestoneID,
		Title:       nt.Title,
		Description: nt.Description,
		AssignedTo:  nt.AssignedTo,
		Status:      status,
		DueDate:     nt.DueDate,
	}
	return svc.repo.CreateTask(task)
}

func (svc *Service) QueryAllTasks() ([]Task, error) { return svc.repo.QueryAllTasks() }
func (svc *Service) GetTaskByID(id int) (Task, error) {
	return svc.repo.GetTaskByID(id)
}
func (svc *Service) QueryTasksByProject(projectID int) ([]Task, error) {
	return svc.repo.QueryTasksByProject(projectID)
}
func (svc *Service) QueryTasksByMilestone(milestoneID int) ([]Task, error) {
	return svc.repo.QueryTasksByMilestone(milestoneID)
}
func (svc *Service) QueryTasksByAssignee(userID int) ([]Task, error) {
	return svc.repo.QueryTasksByAssignee(userID)
}
func (svc *Service) DeleteTask(id int) (bool, error) { return svc.repo.DeleteTask(id) }

func (svc *Service) UpdateTask(id int, ut UpdateTask) (Task, error) {
	return svc.repo.UpdateTask(id, ut)
}
