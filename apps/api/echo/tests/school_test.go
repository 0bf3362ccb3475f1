package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/trezcool/academia/core/school"
	"github.com/trezcool/academia/core/user"
	testutil "github.com/trezcool/academia/tests"
)

func Test_schoolApi_createCourse(t *testing.T) {
	app, svcs := setup(t)

	teacher := testutil.CreateUser(t, svcs.usrRepo, "Teacher", "teacher", "teacher@test.cd", "", user.RoleInstructor)
	student := testutil.CreateUser(t, svcs.usrRepo, "Hero", "hero", "hero@test.cd", "", user.RoleStudent)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Students cannot create courses", token: getToken(t, student),
			body:     []byte(`{"title": "Bad Idea 101", "fee": 10}`),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Missing title", token: getToken(t, teacher), body: []byte(`{"fee": 10}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"title": "this field is required"}),
		},
		{
			// browsers post fees as strings; they coerce and serialize back as numbers
			name: "Fee posted as a string", token: getToken(t, teacher),
			body:     []byte(`{"title": "Go 101", "description": "Intro", "fee": "49.99"}`),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/courses", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusCreated {
				var resp map[string]interface{}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshalling Course: %v", err)
				}
				if fee, ok := resp["fee"].(float64); !ok || fee != 49.99 {
					t.Errorf("fee = %v; want 49.99 as a number", resp["fee"])
				}
			}
		})
	}
}

func Test_schoolApi_courseLifecycle(t *testing.T) {
	app, svcs := setup(t)

	admin := testutil.CreateUser(t, svcs.usrRepo, "Admin", "admin", "admin@test.cd", "", user.RoleAdmin)
	teacher := testutil.CreateUser(t, svcs.usrRepo, "Teacher", "teacher", "teacher@test.cd", "", user.RoleInstructor)

	crs, err := svcs.schSvc.CreateCourse(school.NewCourse{Title: "Go 101", Fee: 49.99, InstructorID: &teacher.ID})
	if err != nil {
		t.Fatalf("CreateCourse(): %v", err)
	}

	adminToken := getToken(t, admin)

	tests := []httpTest{
		{
			name: "retrieve", method: http.MethodGet, path: fmt.Sprintf("/v1/courses/%d", crs.ID), token: adminToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, crs),
		},
		{
			name: "update", method: http.MethodPut, path: fmt.Sprintf("/v1/courses/%d", crs.ID), token: getToken(t, teacher),
			body: []byte(`{"description": "Introduction to Go"}`), wantCode: http.StatusOK,
		},
		{
			name: "instructors cannot delete", method: http.MethodDelete, path: fmt.Sprintf("/v1/courses/%d", crs.ID),
			token: getToken(t, teacher), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{name: "delete", method: http.MethodDelete, path: fmt.Sprintf("/v1/courses/%d", crs.ID), token: adminToken, wantCode: http.StatusNoContent},
		{
			name: "delete again", method: http.MethodDelete, path: fmt.Sprintf("/v1/courses/%d", crs.ID), token: adminToken,
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

func Test_schoolApi_enrollments(t *testing.T) {
	app, svcs := setup(t)

	admin := testutil.CreateUser(t, svcs.usrRepo, "Admin", "admin", "admin@test.cd", "", user.RoleAdmin)
	student := testutil.CreateUser(t, svcs.usrRepo, "Hero", "hero", "hero@test.cd", "", user.RoleStudent)
	other := testutil.CreateUser(t, svcs.usrRepo, "Other", "other", "other@test.cd", "", user.RoleStudent)

	crs, err := svcs.schSvc.CreateCourse(school.NewCourse{Title: "Go 101", Fee: 49.99})
	if err != nil {
		t.Fatalf("CreateCourse(): %v", err)
	}
	enr, err := svcs.schSvc.CreateEnrollment(school.NewEnrollment{
		StudentID: student.ID, CourseID: crs.ID, PaymentStatus: school.PaymentPending,
	})
	if err != nil {
		t.Fatalf("CreateEnrollment(): %v", err)
	}

	adminToken := getToken(t, admin)
	dupBody := marchallObj(t, map[string]interface{}{
		"studentId": student.ID, "courseId": crs.ID, "paymentStatus": "pending",
	})

	tests := []httpTest{
		{
			name: "Students cannot enroll themselves", method: http.MethodPost, path: "/v1/enrollments",
			token: getToken(t, student), body: dupBody,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			// one enrollment per (student, course) pair
			name: "Duplicate pair rejected", method: http.MethodPost, path: "/v1/enrollments",
			token: adminToken, body: dupBody, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"courseId": "a matching enrollment already exists for this student"}),
		},
		{
			name: "Student reads own enrollment", method: http.MethodGet, path: fmt.Sprintf("/v1/enrollments/%d", enr.ID),
			token: getToken(t, student), wantCode: http.StatusOK, wantData: marchallObj(t, enr),
		},
		{
			name: "Student cannot read someone else's enrollment", method: http.MethodGet, path: fmt.Sprintf("/v1/enrollments/%d", enr.ID),
			token: getToken(t, other), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Student lists own enrollments", method: http.MethodGet, path: "/v1/enrollments",
			token: getToken(t, student), wantCode: http.StatusOK, wantData: marchallList(t, enr),
		},
		{
			name: "Other student sees none", method: http.MethodGet, path: "/v1/enrollments",
			token: getToken(t, other), wantCode: http.StatusOK, wantData: marchallList(t),
		},
		{
			name: "Own student listing", method: http.MethodGet, path: fmt.Sprintf("/v1/students/%d/enrollments", student.ID),
			token: getToken(t, student), wantCode: http.StatusOK, wantData: marchallList(t, enr),
		},
		{
			name: "Someone else's student listing", method: http.MethodGet, path: fmt.Sprintf("/v1/students/%d/enrollments", student.ID),
			token: getToken(t, other), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name: "Course enrollments", method: http.MethodGet, path: fmt.Sprintf("/v1/courses/%d/enrollments", crs.ID),
			token: adminToken, wantCode: http.StatusOK, wantData: marchallList(t, enr),
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

func Test_schoolApi_quizResults(t *testing.T) {
	app, svcs := setup(t)

	teacher := testutil.CreateUser(t, svcs.usrRepo, "Teacher", "teacher", "teacher@test.cd", "", user.RoleInstructor)
	student := testutil.CreateUser(t, svcs.usrRepo, "Hero", "hero", "hero@test.cd", "", user.RoleStudent)

	crs, err := svcs.schSvc.CreateCourse(school.NewCourse{Title: "Go 101", Fee: 0})
	if err != nil {
		t.Fatalf("CreateCourse(): %v", err)
	}
	qz, err := svcs.schSvc.CreateQuiz(school.NewQuiz{CourseID: crs.ID, Title: "Basics"})
	if err != nil {
		t.Fatalf("CreateQuiz(): %v", err)
	}

	// a student submitting under someone else's ID still records their own
	body := marchallObj(t, map[string]interface{}{"quizId": qz.ID, "studentId": teacher.ID, "score": 80})
	req, rec := newAuthRequest(http.MethodPost, "/v1/quiz-results", getToken(t, student), body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var res school.QuizResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshalling QuizResult: %v", err)
	}
	if res.StudentID != student.ID {
		t.Errorf("studentId = %d; want requester's %d", res.StudentID, student.ID)
	}

	// instructors may record for anyone
	body = marchallObj(t, map[string]interface{}{"quizId": qz.ID, "studentId": student.ID, "score": 95})
	req, rec = newAuthRequest(http.MethodPost, "/v1/quiz-results", getToken(t, teacher), body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	// results by quiz are gated to staff
	tests := []httpTest{
		{
			name: "Student cannot list quiz results", path: fmt.Sprintf("/v1/quizzes/%d/results", qz.ID),
			token: getToken(t, student), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{name: "Instructor lists quiz results", path: fmt.Sprintf("/v1/quizzes/%d/results", qz.ID), token: getToken(t, teacher), wantCode: http.StatusOK},
		{name: "Student lists own results", path: fmt.Sprintf("/v1/students/%d/quiz-results", student.ID), token: getToken(t, student), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_schoolApi_comments(t *testing.T) {
	app, svcs := setup(t)

	teacher := testutil.CreateUser(t, svcs.usrRepo, "Teacher", "teacher", "teacher@test.cd", "", user.RoleInstructor)
	student := testutil.CreateUser(t, svcs.usrRepo, "Hero", "hero", "hero@test.cd", "", user.RoleStudent)

	crs, err := svcs.schSvc.CreateCourse(school.NewCourse{Title: "Go 101", Fee: 0})
	if err != nil {
		t.Fatalf("CreateCourse(): %v", err)
	}
	cnt, err := svcs.schSvc.CreateContent(school.NewCourseContent{
		CourseID: crs.ID, Title: "Hello", Type: school.ContentVideo, Content: "https://youtu.be/abc", Order: 1,
	})
	if err != nil {
		t.Fatalf("CreateContent(): %v", err)
	}

	// the comment is posted under the requester's identity no matter the payload
	body := marchallObj(t, map[string]interface{}{"contentId": cnt.ID, "userId": 666, "comment": "Great video!"})
	req, rec := newAuthRequest(http.MethodPost, "/v1/comments", getToken(t, student), body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var cmt school.Comment
	if err := json.Unmarshal(rec.Body.Bytes(), &cmt); err != nil {
		t.Fatalf("unmarshalling Comment: %v", err)
	}
	if cmt.UserID != student.ID {
		t.Errorf("userId = %d; want requester's %d", cmt.UserID, student.ID)
	}
	if cmt.DatePosted.IsZero() {
		t.Error("datePosted should default to now")
	}

	req, rec = newAuthRequest(http.MethodGet, fmt.Sprintf("/v1/course-contents/%d/comments", cnt.ID), getToken(t, student))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
	}
	var comments []school.Comment
	if err := json.Unmarshal(rec.Body.Bytes(), &comments); err != nil {
		t.Fatalf("unmarshalling comments: %v", err)
	}
	if len(comments) != 1 {
		t.Errorf("len(comments) = %d; want 1", len(comments))
	}

	// the moderation listing is staff-only
	req, rec = newAuthRequest(http.MethodGet, "/v1/comments", getToken(t, student))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("code = %v; want %v", rec.Code, http.StatusForbidden)
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/comments", getToken(t, teacher))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &comments); err != nil {
		t.Fatalf("unmarshalling comments: %v", err)
	}
	if len(comments) != 1 {
		t.Errorf("len(comments) = %d; want 1", len(comments))
	}
}
