package inmemdb_test

import (
	"testing"
	"time"

	"github.com/trezcool/academia/core/project"
	"github.com/trezcool/academia/core/school"
	"github.com/trezcool/academia/core/user"
	inmemdb "github.com/trezcool/academia/storage/database/inmem"
	testutil "github.com/trezcool/academia/tests"
)

func openDB(t *testing.T) *inmemdb.DB {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("Open(): %v", err)
	}
	return db
}

func TestSchoolRepository_deleteCourseCascades(t *testing.T) {
	db := openDB(t)
	usrRepo := inmemdb.NewUserRepository(db)
	repo := inmemdb.NewSchoolRepository(db)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", user.RoleStudent)

	course, err := repo.CreateCourse(school.Course{Title: "Go 101", Fee: 50})
	if err != nil {
		t.Fatalf("CreateCourse(): %v", err)
	}
	content, err := repo.CreateContent(school.CourseContent{CourseID: course.ID, Title: "Intro", Type: school.ContentVideo, Content: "https://youtu.be/x", Order: 1})
	if err != nil {
		t.Fatalf("CreateContent(): %v", err)
	}
	enr, err := repo.CreateEnrollment(school.Enrollment{StudentID: student.ID, CourseID: course.ID, EnrollmentDate: time.Now().UTC(), PaymentStatus: school.PaymentPending})
	if err != nil {
		t.Fatalf("CreateEnrollment(): %v", err)
	}
	quiz, err := repo.CreateQuiz(school.Quiz{CourseID: course.ID, Title: "Week 1", ContentID: &content.ID})
	if err != nil {
		t.Fatalf("CreateQuiz(): %v", err)
	}
	qn, err := repo.CreateQuestion(school.QuizQuestion{QuizID: quiz.ID, Question: "Is Go fun?", Type: school.QuestionTrueFalse, CorrectAnswer: "true", Order: 1})
	if err != nil {
		t.Fatalf("CreateQuestion(): %v", err)
	}
	cmt, err := repo.CreateComment(school.Comment{ContentID: content.ID, UserID: student.ID, Comment: "nice", DatePosted: time.Now().UTC()})
	if err != nil {
		t.Fatalf("CreateComment(): %v", err)
	}

	ok, err := repo.DeleteCourse(course.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteCourse() = (%v, %v); want (true, nil)", ok, err)
	}

	if _, err = repo.GetContentByID(content.ID); err != school.ErrNotFound {
		t.Errorf("content survived the course: err = %v", err)
	}
	if _, err = repo.GetEnrollmentByID(enr.ID); err != school.ErrNotFound {
		t.Errorf("enrollment survived the course: err = %v", err)
	}
	if _, err = repo.GetQuizByID(quiz.ID); err != school.ErrNotFound {
		t.Errorf("quiz survived the course: err = %v", err)
	}
	if _, err = repo.GetQuestionByID(qn.ID); err != school.ErrNotFound {
		t.Errorf("question survived the quiz: err = %v", err)
	}
	if _, err = repo.GetCommentByID(cmt.ID); err != school.ErrNotFound {
		t.Errorf("comment survived the content: err = %v", err)
	}
	// the student is untouched
	if _, err = usrRepo.GetUserByID(student.ID); err != nil {
		t.Errorf("GetUserByID() err = %v; want nil", err)
	}
}

func TestUserRepository_deleteUserClearsReferences(t *testing.T) {
	db := openDB(t)
	usrRepo := inmemdb.NewUserRepository(db)
	schRepo := inmemdb.NewSchoolRepository(db)
	prjRepo := inmemdb.NewProjectRepository(db)

	teacher := testutil.CreateUser(t, usrRepo, "Prof", "prof", "prof@test.cd", "", user.RoleInstructor)

	course, err := schRepo.CreateCourse(school.Course{Title: "Go 101", InstructorID: &teacher.ID})
	if err != nil {
		t.Fatalf("CreateCourse(): %v", err)
	}
	prj, err := prjRepo.CreateProject(project.Project{Title: "Website", Status: project.StatusActive, ManagerID: &teacher.ID})
	if err != nil {
		t.Fatalf("CreateProject(): %v", err)
	}
	task, err := prjRepo.CreateTask(project.Task{ProjectID: prj.ID, Title: "Landing page", Status: project.TaskAssigned, AssignedTo: &teacher.ID})
	if err != nil {
		t.Fatalf("CreateTask(): %v", err)
	}
	enr, err := schRepo.CreateEnrollment(school.Enrollment{StudentID: teacher.ID, CourseID: course.ID, PaymentStatus: school.PaymentCompleted})
	if err != nil {
		t.Fatalf("CreateEnrollment(): %v", err)
	}

	ok, err := usrRepo.DeleteUser(teacher.ID)
	if err != nil || !ok {
		t.Fatalf("DeleteUser() = (%v, %v); want (true, nil)", ok, err)
	}

	// owned rows go away, optional references get cleared
	if _, err = schRepo.GetEnrollmentByID(enr.ID); err != school.ErrNotFound {
		t.Errorf("enrollment survived the user: err = %v", err)
	}
	if course, err = schRepo.GetCourseByID(course.ID); err != nil {
		t.Fatalf("GetCourseByID(): %v", err)
	}
	if course.InstructorID != nil {
		t.Errorf("course.InstructorID = %v; want nil", *course.InstructorID)
	}
	if prj, err = prjRepo.GetProjectByID(prj.ID); err != nil {
		t.Fatalf("GetProjectByID(): %v", err)
	}
	if prj.ManagerID != nil {
		t.Errorf("project.ManagerID = %v; want nil", *prj.ManagerID)
	}
	if task, err = prjRepo.GetTaskByID(task.ID); err != nil {
		t.Fatalf("GetTaskByID(): %v", err)
	}
	if task.AssignedTo != nil {
		t.Errorf("task.AssignedTo = %v; want nil", *task.AssignedTo)
	}
}

func TestSchoolRepository_enrollmentUniqueness(t *testing.T) {
	db := openDB(t)
	usrRepo := inmemdb.NewUserRepository(db)
	repo := inmemdb.NewSchoolRepository(db)

	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", user.RoleStudent)

	course, err := repo.CreateCourse(school.Course{Title: "Go 101"})
	if err != nil {
		t.Fatalf("CreateCourse(): %v", err)
	}
	other, err := repo.CreateCourse(school.Course{Title: "Go 201"})
	if err != nil {
		t.Fatalf("CreateCourse(): %v", err)
	}

	if err = repo.CheckEnrollmentUniqueness(student.ID, course.ID); err != nil {
		t.Fatalf("CheckEnrollmentUniqueness() err = %v; want nil", err)
	}
	if _, err = repo.CreateEnrollment(school.Enrollment{StudentID: student.ID, CourseID: course.ID, PaymentStatus: school.PaymentPending}); err != nil {
		t.Fatalf("CreateEnrollment(): %v", err)
	}

	if err = repo.CheckEnrollmentUniqueness(student.ID, course.ID); err != school.ErrEnrollmentExists {
		t.Errorf("CheckEnrollmentUniqueness() err = %v; want ErrEnrollmentExists", err)
	}
	if err = repo.CheckEnrollmentUniqueness(student.ID, other.ID); err != nil {
		t.Errorf("CheckEnrollmentUniqueness() err = %v; want nil for another course", err)
	}
}

func TestProjectRepository_patchKeepsUntouchedFields(t *testing.T) {
	db := openDB(t)
	repo := inmemdb.NewProjectRepository(db)

	prj, err := repo.CreateProject(project.Project{
		Title:       "Website",
		Description: "Corporate site",
		Status:      project.StatusActive,
		Budget:      10000,
	})
	if err != nil {
		t.Fatalf("CreateProject(): %v", err)
	}

	title := "Website v2"
	got, err := repo.UpdateProject(prj.ID, project.UpdateProject{Title: &title})
	if err != nil {
		t.Fatalf("UpdateProject(): %v", err)
	}

	if got.Title != title {
		t.Errorf("title = %q; want %q", got.Title, title)
	}
	if got.Description != prj.Description {
		t.Errorf("description = %q; want untouched %q", got.Description, prj.Description)
	}
	if got.Status != prj.Status {
		t.Errorf("status = %q; want untouched %q", got.Status, prj.Status)
	}
	if got.Budget != prj.Budget {
		t.Errorf("budget = %v; want untouched %v", got.Budget, prj.Budget)
	}
}

func TestProjectRepository_queryProjectsByAssignee(t *testing.T) {
	db := openDB(t)
	usrRepo := inmemdb.NewUserRepository(db)
	repo := inmemdb.NewProjectRepository(db)

	employee := testutil.CreateUser(t, usrRepo, "Worker", "worker", "worker@test.cd", "", user.RoleEmployee)

	prj1, err := repo.CreateProject(project.Project{Title: "Website", Status: project.StatusActive})
	if err != nil {
		t.Fatalf("CreateProject(): %v", err)
	}
	if _, err = repo.CreateProject(project.Project{Title: "Mobile App", Status: project.StatusActive}); err != nil {
		t.Fatalf("CreateProject(): %v", err)
	}
	// two tasks in one project must not duplicate it in the listing
	for _, title := range []string{"Landing page", "Contact form"} {
		if _, err = repo.CreateTask(project.Task{ProjectID: prj1.ID, Title: title, Status: project.TaskAssigned, AssignedTo: &employee.ID}); err != nil {
			t.Fatalf("CreateTask(): %v", err)
		}
	}

	prjs, err := repo.QueryProjectsByAssignee(employee.ID)
	if err != nil {
		t.Fatalf("QueryProjectsByAssignee(): %v", err)
	}
	if len(prjs) != 1 || prjs[0].ID != prj1.ID {
		t.Errorf("projects = %+v; want just %q", prjs, prj1.Title)
	}
}
