package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/trezcool/academia/core/user"
	testutil "github.com/trezcool/academia/tests"
)

func Test_userApi_login(t *testing.T) {
	app, svcs := setup(t)

	student := testutil.CreateUser(t, svcs.usrRepo, "Hero", "hero", "hero@test.cd", "LordOfTheRings", user.RoleStudent)
	_ = student

	tests := []httpTest{
		{
			name: "empty payload", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"username": "this field is required", "password": "this field is required"}),
		},
		{
			name: "unknown user", body: []byte(`{"username": "ghost", "password": "nope"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name: "wrong password", body: []byte(`{"username": "hero", "password": "nope"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{name: "login by username", body: []byte(`{"username": "hero", "password": "LordOfTheRings"}`), wantCode: http.StatusOK},
		{name: "login by email", body: []byte(`{"username": "hero@test.cd", "password": "LordOfTheRings"}`), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				var resp map[string]string
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshalling LoginResponse: %v", err)
				}
				if resp["token"] == "" {
					t.Error("expected a token in the response")
				}
			}
		})
	}
}

func Test_userApi_create(t *testing.T) {
	app, svcs := setup(t)

	admin := testutil.CreateUser(t, svcs.usrRepo, "Admin", "admin", "admin@test.cd", "", user.RoleAdmin)
	student := testutil.CreateUser(t, svcs.usrRepo, "Hero", "hero", "hero@test.cd", "", user.RoleStudent)

	body := []byte(`{
		"username": "newbie", "name": "New Bie", "email": "newbie@test.cd", "role": "student",
		"password": "G4ndalf!Grey", "password_confirm": "G4ndalf!Grey"
	}`)

	tests := []httpTest{
		{name: "Auth required", body: body, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", body: body, token: getToken(t, student), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			// the password policy kicks in before uniqueness
			name: "weak password", token: getToken(t, admin), wantCode: http.StatusBadRequest,
			body: []byte(`{"username": "weakling", "name": "X", "email": "x@test.cd", "role": "student",
				"password": "pwd", "password_confirm": "pwd"}`),
			wantData: marchallObj(t, map[string]string{"password": "password must contain at least 8 characters"}),
		},
		{
			name: "duplicate username", token: getToken(t, admin), wantCode: http.StatusBadRequest,
			body: []byte(`{"username": "hero", "name": "X", "email": "x@test.cd", "role": "student",
				"password": "G4ndalf!Grey", "password_confirm": "G4ndalf!Grey"}`),
			wantData: marchallObj(t, map[string]string{"username": "a user with this username already exists"}),
		},
		{name: "created", body: body, token: getToken(t, admin), wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/users", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusCreated {
				// the password hash must never leak
				if strings.Contains(rec.Body.String(), "password") {
					t.Errorf("password serialized in response: %s", rec.Body.String())
				}
			}
		})
	}
}

func Test_userApi_query(t *testing.T) {
	app, svcs := setup(t)

	admin := testutil.CreateUser(t, svcs.usrRepo, "Admin", "admin", "admin@test.cd", "", user.RoleAdmin)
	student := testutil.CreateUser(t, svcs.usrRepo, "Hero", "hero", "hero@test.cd", "", user.RoleStudent)
	teacher := testutil.CreateUser(t, svcs.usrRepo, "Teacher", "teacher", "teacher@test.cd", "", user.RoleInstructor)

	adminToken := getToken(t, admin)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/users", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", path: "/v1/users", token: getToken(t, student), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			// the requester is left out of an unfiltered listing
			name: "Get all excludes requester", path: "/v1/users", token: adminToken,
			wantCode: http.StatusOK, wantData: marchallList(t, student, teacher),
		},
		{
			// a role filter returns the full membership, requester included
			name: "role=admin includes requester", path: "/v1/users?role=admin", token: adminToken,
			wantCode: http.StatusOK, wantData: marchallList(t, admin),
		},
		{
			name: "role=instructor", path: "/v1/users?role=instructor", token: adminToken,
			wantCode: http.StatusOK, wantData: marchallList(t, teacher),
		},
		{
			name: "role (unknown)", path: "/v1/users?role=lol", token: adminToken,
			wantCode: http.StatusOK, wantData: marchallList(t),
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

func Test_userApi_retrieve(t *testing.T) {
	app, svcs := setup(t)

	admin := testutil.CreateUser(t, svcs.usrRepo, "Admin", "admin", "admin@test.cd", "", user.RoleAdmin)
	student := testutil.CreateUser(t, svcs.usrRepo, "Hero", "hero", "hero@test.cd", "", user.RoleStudent)
	other := testutil.CreateUser(t, svcs.usrRepo, "Other", "other", "other@test.cd", "", user.RoleStudent)

	tests := []httpTest{
		{
			name: "Admin can retrieve anyone", path: fmt.Sprintf("/v1/users/%d", student.ID), token: getToken(t, admin),
			wantCode: http.StatusOK, wantData: marchallObj(t, student),
		},
		{
			name: "Own account", path: fmt.Sprintf("/v1/users/%d", student.ID), token: getToken(t, student),
			wantCode: http.StatusOK, wantData: marchallObj(t, student),
		},
		{
			name: "Someone else's account", path: fmt.Sprintf("/v1/users/%d", other.ID), token: getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Not found", path: "/v1/users/666", token: getToken(t, admin),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "user not found"}),
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

func Test_userApi_update(t *testing.T) {
	app, svcs := setup(t)

	admin := testutil.CreateUser(t, svcs.usrRepo, "Admin", "admin", "admin@test.cd", "", user.RoleAdmin)
	student := testutil.CreateUser(t, svcs.usrRepo, "Hero", "hero", "hero@test.cd", "", user.RoleStudent)

	tests := []httpTest{
		{
			name: "Non-admin cannot change role", path: fmt.Sprintf("/v1/users/%d", student.ID), token: getToken(t, student),
			body: []byte(`{"role": "admin"}`), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Own name change", path: fmt.Sprintf("/v1/users/%d", student.ID), token: getToken(t, student),
			body: []byte(`{"name": "Hero Renamed"}`), wantCode: http.StatusOK,
		},
		{
			name: "Admin changes role", path: fmt.Sprintf("/v1/users/%d", student.ID), token: getToken(t, admin),
			body: []byte(`{"role": "employee"}`), wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	usr, err := svcs.usrSvc.GetByID(student.ID)
	if err != nil {
		t.Fatalf("GetByID(): %v", err)
	}
	if usr.Name != "Hero Renamed" {
		t.Errorf("name = %q; want %q", usr.Name, "Hero Renamed")
	}
	if usr.Role != user.RoleEmployee {
		t.Errorf("role = %q; want %q", usr.Role, user.RoleEmployee)
	}
}

func Test_userApi_destroy(t *testing.T) {
	app, svcs := setup(t)

	admin := testutil.CreateUser(t, svcs.usrRepo, "Admin", "admin", "admin@test.cd", "", user.RoleAdmin)
	student := testutil.CreateUser(t, svcs.usrRepo, "Hero", "hero", "hero@test.cd", "", user.RoleStudent)

	adminToken := getToken(t, admin)

	tests := []httpTest{
		{
			name: "Admin required", path: fmt.Sprintf("/v1/users/%d", admin.ID), token: getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "No suicide", path: fmt.Sprintf("/v1/users/%d", admin.ID), token: adminToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{name: "Deleted", path: fmt.Sprintf("/v1/users/%d", student.ID), token: adminToken, wantCode: http.StatusNoContent},
		{
			// deleting an absent row reads as not found
			name: "Delete again", path: fmt.Sprintf("/v1/users/%d", student.ID), token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodDelete, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
