package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/trezcool/academia/core/project"
	"github.com/trezcool/academia/core/user"
	testutil "github.com/trezcool/academia/tests"
)

func Test_projectApi_queryProjects(t *testing.T) {
	app, svcs := setup(t)

	manager := testutil.CreateUser(t, svcs.usrRepo, "Manager", "manager", "manager@test.cd", "", user.RoleProjectManager)
	employee := testutil.CreateUser(t, svcs.usrRepo, "Worker", "worker", "worker@test.cd", "", user.RoleEmployee)
	idle := testutil.CreateUser(t, svcs.usrRepo, "Idle", "idle", "idle@test.cd", "", user.RoleEmployee)
	student := testutil.CreateUser(t, svcs.usrRepo, "Hero", "hero", "hero@test.cd", "", user.RoleStudent)

	prj1, err := svcs.prjSvc.CreateProject(project.NewProject{Title: "Website", ManagerID: &manager.ID})
	if err != nil {
		t.Fatalf("CreateProject(): %v", err)
	}
	prj2, err := svcs.prjSvc.CreateProject(project.NewProject{Title: "Mobile App", ManagerID: &manager.ID})
	if err != nil {
		t.Fatalf("CreateProject(): %v", err)
	}
	if _, err = svcs.prjSvc.CreateTask(project.NewTask{
		ProjectID: prj1.ID, Title: "Landing page", AssignedTo: &employee.ID,
	}); err != nil {
		t.Fatalf("CreateTask(): %v", err)
	}

	tests := []httpTest{
		{name: "Manager sees all", token: getToken(t, manager), wantCode: http.StatusOK, wantData: marchallList(t, prj1, prj2)},
		{
			// employees only see projects they have tasks in
			name: "Employee sees own-task projects", token: getToken(t, employee),
			wantCode: http.StatusOK, wantData: marchallList(t, prj1),
		},
		{name: "Unassigned employee sees none", token: getToken(t, idle), wantCode: http.StatusOK, wantData: marchallList(t)},
		{
			name: "Students get no listing", token: getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/projects", tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_projectApi_updateTask(t *testing.T) {
	app, svcs := setup(t)

	manager := testutil.CreateUser(t, svcs.usrRepo, "Manager", "manager", "manager@test.cd", "", user.RoleProjectManager)
	employee := testutil.CreateUser(t, svcs.usrRepo, "Worker", "worker", "worker@test.cd", "", user.RoleEmployee)
	other := testutil.CreateUser(t, svcs.usrRepo, "Other", "other", "other@test.cd", "", user.RoleEmployee)

	prj, err := svcs.prjSvc.CreateProject(project.NewProject{Title: "Website", ManagerID: &manager.ID})
	if err != nil {
		t.Fatalf("CreateProject(): %v", err)
	}
	task, err := svcs.prjSvc.CreateTask(project.NewTask{ProjectID: prj.ID, Title: "Landing page", AssignedTo: &employee.ID})
	if err != nil {
		t.Fatalf("CreateTask(): %v", err)
	}

	path := fmt.Sprintf("/v1/tasks/%d", task.ID)

	tests := []httpTest{
		{
			// assignees may only move their own tasks along the board
			name: "Assignee status-only update", path: path, token: getToken(t, employee),
			body: []byte(`{"status": "in-progress"}`), wantCode: http.StatusOK,
		},
		{
			name: "Assignee cannot reshape the task", path: path, token: getToken(t, employee),
			body: []byte(`{"status": "completed", "title": "Renamed"}`), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Unrelated employee rejected", path: path, token: getToken(t, other),
			body: []byte(`{"status": "completed"}`), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Manager reshapes freely", path: path, token: getToken(t, manager),
			body: []byte(`{"title": "Landing page v2", "status": "completed"}`), wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	got, err := svcs.prjSvc.GetTaskByID(task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID(): %v", err)
	}
	if got.Title != "Landing page v2" {
		t.Errorf("title = %q; want %q", got.Title, "Landing page v2")
	}
	if got.Status != project.TaskCompleted {
		t.Errorf("status = %q; want %q", got.Status, project.TaskCompleted)
	}
}

func Test_projectApi_employeeTasks(t *testing.T) {
	app, svcs := setup(t)

	manager := testutil.CreateUser(t, svcs.usrRepo, "Manager", "manager", "manager@test.cd", "", user.RoleProjectManager)
	employee := testutil.CreateUser(t, svcs.usrRepo, "Worker", "worker", "worker@test.cd", "", user.RoleEmployee)
	other := testutil.CreateUser(t, svcs.usrRepo, "Other", "other", "other@test.cd", "", user.RoleEmployee)

	prj, err := svcs.prjSvc.CreateProject(project.NewProject{Title: "Website", ManagerID: &manager.ID})
	if err != nil {
		t.Fatalf("CreateProject(): %v", err)
	}
	task, err := svcs.prjSvc.CreateTask(project.NewTask{ProjectID: prj.ID, Title: "Landing page", AssignedTo: &employee.ID})
	if err != nil {
		t.Fatalf("CreateTask(): %v", err)
	}

	path := fmt.Sprintf("/v1/employees/%d/tasks", employee.ID)

	tests := []httpTest{
		{name: "Manager lists anyone's", path: path, token: getToken(t, manager), wantCode: http.StatusOK, wantData: marchallList(t, task)},
		{name: "Own listing", path: path, token: getToken(t, employee), wantCode: http.StatusOK, wantData: marchallList(t, task)},
		{
			name: "Someone else's listing", path: path, token: getToken(t, other),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_projectApi_milestones(t *testing.T) {
	app, svcs := setup(t)

	manager := testutil.CreateUser(t, svcs.usrRepo, "Manager", "manager", "manager@test.cd", "", user.RoleProjectManager)

	prj, err := svcs.prjSvc.CreateProject(project.NewProject{Title: "Website", ManagerID: &manager.ID})
	if err != nil {
		t.Fatalf("CreateProject(): %v", err)
	}

	token := getToken(t, manager)
	body := marchallObj(t, map[string]interface{}{"projectId": prj.ID, "title": "Design", "order": 1})

	req, rec := newAuthRequest(http.MethodPost, "/v1/milestones", token, body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var ms project.Milestone
	if err := json.Unmarshal(rec.Body.Bytes(), &ms); err != nil {
		t.Fatalf("unmarshalling Milestone: %v", err)
	}
	if ms.Completed {
		t.Error("a new milestone should not be completed")
	}

	req, rec = newAuthRequest(http.MethodPut, fmt.Sprintf("/v1/milestones/%d", ms.ID), token, []byte(`{"completed": true}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodGet, fmt.Sprintf("/v1/projects/%d/milestones", prj.ID), token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
	}
	var mss []project.Milestone
	if err := json.Unmarshal(rec.Body.Bytes(), &mss); err != nil {
		t.Fatalf("unmarshalling milestones: %v", err)
	}
	if len(mss) != 1 || !mss[0].Completed {
		t.Errorf("milestones = %+v; want the one completed milestone", mss)
	}
}

func Test_projectApi_deleteProjectKeepsClient(t *testing.T) {
	app, svcs := setup(t)

	admin := testutil.CreateUser(t, svcs.usrRepo, "Admin", "admin", "admin@test.cd", "", user.RoleAdmin)

	cli, err := svcs.prjSvc.CreateClient(project.NewClient{Name: "ACME", Email: "contact@acme.cd"})
	if err != nil {
		t.Fatalf("CreateClient(): %v", err)
	}
	prj, err := svcs.prjSvc.CreateProject(project.NewProject{Title: "Website", ClientID: &cli.ID})
	if err != nil {
		t.Fatalf("CreateProject(): %v", err)
	}
	ms, err := svcs.prjSvc.CreateMilestone(project.NewMilestone{ProjectID: prj.ID, Title: "Design", Order: 1})
	if err != nil {
		t.Fatalf("CreateMilestone(): %v", err)
	}

	req, rec := newAuthRequest(http.MethodDelete, fmt.Sprintf("/v1/projects/%d", prj.ID), getToken(t, admin))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusNoContent, rec.Body.String())
	}

	// dependants go with the project, the client stays
	if _, err = svcs.prjSvc.GetMilestoneByID(ms.ID); err != project.ErrNotFound {
		t.Errorf("GetMilestoneByID() err = %v; want ErrNotFound", err)
	}
	if _, err = svcs.prjSvc.GetClientByID(cli.ID); err != nil {
		t.Errorf("GetClientByID() err = %v; want nil", err)
	}
}
