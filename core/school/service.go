package school

import (
	"time"

	"github.com/pkg/errors"
	"github.com/trezcool/academia/core"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrEnrollmentExists = errors.New("a matching enrollment already exists for this student")
)

type Repository interface {
	CheckEnrollmentUniqueness(studentID, courseID int) error

	CreateCourse(course Course) (Course, error)
	QueryAllCourses() ([]Course, error)
	GetCourseByID(id int) (Course, error)
	UpdateCourse(id int, patch UpdateCourse) (Course, error)
	DeleteCourse(id int) (bool, error)

	CreateContent(content CourseContent) (CourseContent, error)
	QueryAllContents() ([]CourseContent, error)
	QueryContentsByCourse(courseID int) ([]CourseContent, error)
	GetContentByID(id int) (CourseContent, error)
	UpdateContent(id int, patch UpdateCourseContent) (CourseContent, error)
	DeleteContent(id int) (bool, error)

	CreateEnrollment(enr Enrollment) (Enrollment, error)
	QueryAllEnrollments() ([]Enrollment, error)
	QueryEnrollmentsByStudent(studentID int) ([]Enrollment, error)
	QueryEnrollmentsByCourse(courseID int) ([]Enrollment, error)
	GetEnrollmentByID(id int) (Enrollment, error)
	UpdateEnrollment(id int, patch UpdateEnrollment) (Enrollment, error)
	DeleteEnrollment(id int) (bool, error)

	CreateQuiz(quiz Quiz) (Quiz, error)
	QueryAllQuizzes() ([]Quiz, error)
	QueryQuizzesByCourse(courseID int) ([]Quiz, error)
	GetQuizByID(id int) (Quiz, error)
	UpdateQuiz(id int, patch UpdateQuiz) (Quiz, error)
	DeleteQuiz(id int) (bool, error)

	CreateQuestion(qn QuizQuestion) (QuizQuestion, error)
	QueryAllQuestions() ([]QuizQuestion, error)
	QueryQuestionsByQuiz(quizID int) ([]QuizQuestion, error)
	GetQuestionByID(id int) (QuizQuestion, error)
	UpdateQuestion(id int, patch UpdateQuizQuestion) (QuizQuestion, error)
	DeleteQuestion(id int) (bool, error)

	CreateResult(res QuizResult) (QuizResult, error)
	QueryAllResults() ([]QuizResult, error)
	QueryResultsByQuiz(quizID int) ([]QuizResult, error)
	QueryResultsByStudent(studentID int) ([]QuizResult, error)
	GetResultByID(id int) (QuizResult, error)

	CreateComment(cmt Comment) (Comment, error)
	QueryAllComments() ([]Comment, error)
	QueryCommentsByContent(contentID int) ([]Comment, error)
	GetCommentByID(id int) (Comment, error)
	DeleteComment(id int) (bool, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CheckEnrollmentUniqueness checks that no enrollment exists for the
// (student, course) pair and returns a ValidationError on conflict.
func (svc *Service) CheckEnrollmentUniqueness(studentID, courseID int) error {
	if err := svc.repo.CheckEnrollmentUniqueness(studentID, courseID); err != nil {
		if errors.Is(err, ErrEnrollmentExists) {
			return core.NewValidationError(err, core.FieldError{Field: "courseId", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) CreateCourse(nc NewCourse) (Course, error) {
	course := Course{
		Title:        nc.Title,
		Description:  nc.Description,
		Fee:          nc.Fee,
		InstructorID: nc.InstructorID,
	}
	return svc.repo.CreateCourse(course)
}

func (svc *Service) QueryAllCourses() ([]Course, error)       { return svc.repo.QueryAllCourses() }
func (svc *Service) GetCourseByID(id int) (Course, error)     { return svc.repo.GetCourseByID(id) }
func (svc *Service) DeleteCourse(id int) (bool, error)        { return svc.repo.DeleteCourse(id) }

func (svc *Service) UpdateCourse(id int, uc UpdateCourse) (Course, error) {
	return svc.repo.UpdateCourse(id, uc)
}

func (svc *Service) CreateContent(nc NewCourseContent) (CourseContent, error) {
	content := CourseContent{
		CourseID: nc.CourseID,
		Title:    nc.Title,
		Type:     nc.Type,
		Content:  nc.Content,
		Order:    nc.Order,
	}
	return svc.repo.CreateContent(content)
}

func (svc *Service) QueryAllContents() ([]CourseContent, error) { return svc.repo.QueryAllContents() }
func (svc *Service) GetContentByID(id int) (CourseContent, error) {
	return svc.repo.GetContentByID(id)
}
func (svc *Service) QueryContentsByCourse(courseID int) ([]CourseContent, error) {
	return svc.repo.QueryContentsByCourse(courseID)
}
func (svc *Service) DeleteContent(id int) (bool, error) { return svc.repo.DeleteContent(id) }

func (svc *Service) UpdateContent(id int, uc UpdateCourseContent) (CourseContent, error) {
	return svc.repo.UpdateContent(id, uc)
}

func (svc *Service) CreateEnrollment(ne NewEnrollment) (Enrollment, error) {
	date := ne.EnrollmentDate
	if date.IsZero() {
		date = time.Now().UTC()
	}
	enr := Enrollment{
		StudentID:      ne.StudentID,
		CourseID:       ne.CourseID,
		EnrollmentDate: date,
		PaymentStatus:  ne.PaymentStatus,
		AmountPaid:     ne.AmountPaid,
	}
	return svc.repo.CreateEnrollment(enr)
}

func (svc *Service) QueryAllEnrollments() ([]Enrollment, error) {
	return svc.repo.QueryAllEnrollments()
}
func (svc *Service) GetEnrollmentByID(id int) (Enrollment, error) {
	return svc.repo.GetEnrollmentByID(id)
}
func (svc *Service) QueryEnrollmentsByStudent(studentID int) ([]Enrollment, error) {
	return svc.repo.QueryEnrollmentsByStudent(studentID)
}
func (svc *Service) QueryEnrollmentsByCourse(courseID int) ([]Enrollment, error) {
	return svc.repo.QueryEnrollmentsByCourse(courseID)
}
func (svc *Service) DeleteEnrollment(id int) (bool, error) { return svc.repo.DeleteEnrollment(id) }

func (svc *Service) UpdateEnrollment(id int, ue UpdateEnrollment) (Enrollment, error) {
	return svc.repo.UpdateEnrollment(id, ue)
}

func (svc *Service) CreateQuiz(nq NewQuiz) (Quiz, error) {
	quiz := Quiz{
		CourseID:  nq.CourseID,
		Title:     nq.Title,
		ContentID: nq.ContentID,
	}
	return svc.repo.CreateQuiz(quiz)
}

func (svc *Service) QueryAllQuizzes() ([]Quiz, error)   { return svc.repo.QueryAllQuizzes() }
func (svc *Service) GetQuizByID(id int) (Quiz, error)   { return svc.repo.GetQuizByID(id) }
func (svc *Service) DeleteQuiz(id int) (bool, error)    { return svc.repo.DeleteQuiz(id) }
func (svc *Service) QueryQuizzesByCourse(courseID int) ([]Quiz, error) {
	return svc.repo.QueryQuizzesByCourse(courseID)
}

func (svc *Service) UpdateQuiz(id int, uq UpdateQuiz) (Quiz, error) {
	return svc.repo.UpdateQuiz(id, uq)
}

func (svc *Service) CreateQuestion(nq NewQuizQuestion) (QuizQuestion, error) {
	qn := QuizQuestion{
		QuizID:        nq.QuizID,
		Question:      nq.Question,
		Type:          nq.Type,
		Options:       nq.Options,
		CorrectAnswer: nq.CorrectAnswer,
		Order:         nq.Order,
	}
	return svc.repo.CreateQuestion(qn)
}

func (svc *Service) QueryAllQuestions() ([]QuizQuestion, error) { return svc.repo.QueryAllQuestions() }
func (svc *Service) GetQuestionByID(id int) (QuizQuestion, error) {
	return svc.repo.GetQuestionByID(id)
}
func (svc *Service) QueryQuestionsByQuiz(quizID int) ([]QuizQuestion, error) {
	return svc.repo.QueryQuestionsByQuiz(quizID)
}
func (svc *Service) DeleteQuestion(id int) (bool, error) { return svc.repo.DeleteQuestion(id) }

func (svc *Service) UpdateQuestion(id int, uq UpdateQuizQuestion) (QuizQuestion, error) {
	return svc.repo.UpdateQuestion(id, uq)
}

func (svc *Service) CreateResult(nr NewQuizResult) (QuizResult, error) {
	taken := nr.DateTaken
	if taken.IsZero() {
		taken = time.Now().UTC()
	}
	res := QuizResult{
		QuizID:    nr.QuizID,
		StudentID: nr.StudentID,
		Score:     nr.Score,
		DateTaken: taken,
	}
	return svc.repo.CreateResult(res)
}

func (svc *Service) QueryAllResults() ([]QuizResult, error) { return svc.repo.QueryAllResults() }
func (svc *Service) GetResultByID(id int) (QuizResult, error) {
	return svc.repo.GetResultByID(id)
}
func (svc *Service) QueryResultsByQuiz(quizID int) ([]QuizResult, error) {
	return svc.repo.QueryResultsByQuiz(quizID)
}
func (svc *Service) QueryResultsByStudent(studentID int) ([]QuizResult, error) {
	return svc.repo.QueryResultsByStudent(studentID)
}

func (svc *Service) CreateComment(nc NewComment) (Comment, error) {
	cmt := Comment{
		ContentID:  nc.ContentID,
		UserID:     nc.UserID,
		Comment:    nc.Comment,
		DatePosted: time.Now().UTC(),
	}
	return svc.repo.CreateComment(cmt)
}

func (svc *Service) QueryAllComments() ([]Comment, error) { return svc.repo.QueryAllComments() }
func (svc *Service) GetCommentByID(id int) (Comment, error) {
	return svc.repo.GetCommentByID(id)
}
func (svc *Service) QueryCommentsByContent(contentID int) ([]Comment, error) {
	return svc.repo.QueryCommentsByContent(contentID)
}
func (svc *Service) DeleteComment(id int) (bool, error) { return svc.repo.DeleteComment(id) }
