package sqlxrepos

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/school"
)

const (
	courseCols     = `id, title, description, fee, instructor_id`
	contentCols    = `id, course_id, title, type, content, "order"`
	enrollmentCols = `id, student_id, course_id, enrollment_date, payment_status, amount_paid`
	quizCols       = `id, course_id, title, content_id`
	questionCols   = `id, quiz_id, question, type, options, correct_answer, "order"`
	resultCols     = `id, quiz_id, student_id, score, date_taken`
	commentCols    = `id, content_id, user_id, comment, date_posted`
)

type schoolRepository struct {
	db *sqlx.DB
}

func NewSchoolRepository(db *sqlx.DB) *schoolRepository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) CheckEnrollmentUniqueness(studentID, courseID int) error {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM enrollment WHERE student_id = $1 AND course_id = $2)`
	if err := repo.db.Get(&exists, query, studentID, courseID); err != nil {
		return errors.Wrap(err, "checking enrollment uniqueness")
	}
	if exists {
		return school.ErrEnrollmentExists
	}
	return nil
}

// Courses

func (repo *schoolRepository) CreateCourse(course school.Course) (school.Course, error) {
	query := `
INSERT INTO course (title, description, fee, instructor_id)
VALUES ($1, $2, $3, $4)
RETURNING ` + courseCols
	err := repo.db.Get(&course, query, course.Title, course.Description, course.Fee, course.InstructorID)
	return course, errors.Wrap(err, "creating course")
}

func (repo *schoolRepository) QueryAllCourses() ([]school.Course, error) {
	courses := make([]school.Course, 0)
	err := repo.db.Select(&courses, `SELECT `+courseCols+` FROM course ORDER BY id`)
	return courses, errors.Wrap(err, "querying courses")
}

func (repo *schoolRepository) GetCourseByID(id int) (school.Course, error) {
	var course school.Course
	if err := repo.db.Get(&course, `SELECT `+courseCols+` FROM course WHERE id = $1`, id); err != nil {
		return course, notFoundOrWrap(err, school.ErrNotFound, "getting course")
	}
	return course, nil
}

func (repo *schoolRepository) UpdateCourse(id int, patch school.UpdateCourse) (school.Course, error) {
	query := `
UPDATE course
SET title         = COALESCE($2, title),
    description   = COALESCE($3, description),
    fee           = COALESCE($4, fee),
    instructor_id = COALESCE($5, instructor_id)
WHERE id = $1
RETURNING ` + courseCols
	var course school.Course
	err := repo.db.Get(&course, query, id, patch.Title, patch.Description, patch.Fee, patch.InstructorID)
	if err != nil {
		return course, notFoundOrWrap(err, school.ErrNotFound, "updating course")
	}
	return course, nil
}

func (repo *schoolRepository) DeleteCourse(id int) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM course WHERE id = $1`, id)
	return deleted(res, err, "deleting course")
}

// Course contents

func (repo *schoolRepository) CreateContent(content school.CourseContent) (school.CourseContent, error) {
	query := `
INSERT INTO course_content (course_id, title, type, content, "order")
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + contentCols
	err := repo.db.Get(&content, query, content.CourseID, content.Title, content.Type, content.Content, content.Order)
	return content, errors.Wrap(err, "creating course content")
}

func (repo *schoolRepository) QueryAllContents() ([]school.CourseContent, error) {
	contents := make([]school.CourseContent, 0)
	err := repo.db.Select(&contents, `SELECT `+contentCols+` FROM course_content ORDER BY course_id, "order"`)
	return contents, errors.Wrap(err, "querying course contents")
}

func (repo *schoolRepository) QueryContentsByCourse(courseID int) ([]school.CourseContent, error) {
	contents := make([]school.CourseContent, 0)
	err := repo.db.Select(
		&contents, `SELECT `+contentCols+` FROM course_content WHERE course_id = $1 ORDER BY "order"`, courseID)
	return contents, errors.Wrap(err, "querying course contents")
}

func (repo *schoolRepository) GetContentByID(id int) (school.CourseContent, error) {
	var content school.CourseContent
	if err := repo.db.Get(&content, `SELECT `+contentCols+` FROM course_content WHERE id = $1`, id); err != nil {
		return content, notFoundOrWrap(err, school.ErrNotFound, "getting course content")
	}
	return content, nil
}

func (repo *schoolRepository) UpdateContent(id int, patch school.UpdateCourseContent) (school.CourseContent, error) {
	query := `
UPDATE course_content
SET course_id = COALESCE($2, course_id),
    title     = COALESCE($3, title),
    type      = COALESCE($4, type),
    content   = COALESCE($5, content),
    "order"   = COALESCE($6, "order")
WHERE id = $1
RETURNING ` + contentCols
	var content school.CourseContent
	err := repo.db.Get(&content, query, id, patch.CourseID, patch.Title, patch.Type, patch.Content, patch.Order)
	if err != nil {
		return content, notFoundOrWrap(err, school.ErrNotFound, "updating course content")
	}
	return content, nil
}

func (repo *schoolRepository) DeleteContent(id int) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM course_content WHERE id = $1`, id)
	return deleted(res, err, "deleting course content")
}

// Enrollments

func (repo *schoolRepository) CreateEnrollment(enr school.Enrollment) (school.Enrollment, error) {
	query := `
INSERT INTO enrollment (student_id, course_id, enrollment_date, payment_status, amount_paid)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + enrollmentCols
	err := repo.db.Get(
		&enr, query, enr.StudentID, enr.CourseID, enr.EnrollmentDate, enr.PaymentStatus, enr.AmountPaid)
	return enr, errors.Wrap(err, "creating enrollment")
}

func (repo *schoolRepository) QueryAllEnrollments() ([]school.Enrollment, error) {
	enrs := make([]school.Enrollment, 0)
	err := repo.db.Select(&enrs, `SELECT `+enrollmentCols+` FROM enrollment ORDER BY id`)
	return enrs, errors.Wrap(err, "querying enrollments")
}

func (repo *schoolRepository) QueryEnrollmentsByStudent(studentID int) ([]school.Enrollment, error) {
	enrs := make([]school.Enrollment, 0)
	err := repo.db.Select(
		&enrs, `SELECT `+enrollmentCols+` FROM enrollment WHERE student_id = $1 ORDER BY id`, studentID)
	return enrs, errors.Wrap(err, "querying enrollments by student")
}

func (repo *schoolRepository) QueryEnrollmentsByCourse(courseID int) ([]school.Enrollment, error) {
	enrs := make([]school.Enrollment, 0)
	err := repo.db.Select(
		&enrs, `SELECT `+enrollmentCols+` FROM enrollment WHERE course_id = $1 ORDER BY id`, courseID)
	return enrs, errors.Wrap(err, "querying enrollments by course")
}

func (repo *schoolRepository) GetEnrollmentByID(id int) (school.Enrollment, error) {
	var enr school.Enrollment
	if err := repo.db.Get(&enr, `SELECT `+enrollmentCols+` FROM enrollment WHERE id = $1`, id); err != nil {
		return enr, notFoundOrWrap(err, school.ErrNotFound, "getting enrollment")
	}
	return enr, nil
}

func (repo *schoolRepository) UpdateEnrollment(id int, patch school.UpdateEnrollment) (school.Enrollment, error) {
	query := `
UPDATE enrollment
SET student_id      = COALESCE($2, student_id),
    course_id       = COALESCE($3, course_id),
    enrollment_date = COALESCE($4, enrollment_date),
    payment_status  = COALESCE($5, payment_status),
    amount_paid     = COALESCE($6, amount_paid)
WHERE id = $1
RETURNING ` + enrollmentCols
	var enr school.Enrollment
	err := repo.db.Get(
		&enr, query, id,
		patch.StudentID, patch.CourseID, patch.EnrollmentDate, patch.PaymentStatus, patch.AmountPaid)
	if err != nil {
		return enr, notFoundOrWrap(err, school.ErrNotFound, "updating enrollment")
	}
	return enr, nil
}

func (repo *schoolRepository) DeleteEnrollment(id int) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM enrollment WHERE id = $1`, id)
	return deleted(res, err, "deleting enrollment")
}

// Quizzes

func (repo *schoolRepository) CreateQuiz(quiz school.Quiz) (school.Quiz, error) {
	query := `
INSERT INTO quiz (course_id, title, content_id)
VALUES ($1, $2, $3)
RETURNING ` + quizCols
	err := repo.db.Get(&quiz, query, quiz.CourseID, quiz.Title, quiz.ContentID)
	return quiz, errors.Wrap(err, "creating quiz")
}

func (repo *schoolRepository) QueryAllQuizzes() ([]school.Quiz, error) {
	quizzes := make([]school.Quiz, 0)
	err := repo.db.Select(&quizzes, `SELECT `+quizCols+` FROM quiz ORDER BY id`)
	return quizzes, errors.Wrap(err, "querying quizzes")
}

func (repo *schoolRepository) QueryQuizzesByCourse(courseID int) ([]school.Quiz, error) {
	quizzes := make([]school.Quiz, 0)
	err := repo.db.Select(&quizzes, `SELECT `+quizCols+` FROM quiz WHERE course_id = $1 ORDER BY id`, courseID)
	return quizzes, errors.Wrap(err, "querying quizzes by course")
}

func (repo *schoolRepository) GetQuizByID(id int) (school.Quiz, error) {
	var quiz school.Quiz
	if err := repo.db.Get(&quiz, `SELECT `+quizCols+` FROM quiz WHERE id = $1`, id); err != nil {
		return quiz, notFoundOrWrap(err, school.ErrNotFound, "getting quiz")
	}
	return quiz, nil
}

func (repo *schoolRepository) UpdateQuiz(id int, patch school.UpdateQuiz) (school.Quiz, error) {
	query := `
UPDATE quiz
SET course_id  = COALESCE($2, course_id),
    title      = COALESCE($3, title),
    content_id = COALESCE($4, content_id)
WHERE id = $1
RETURNING ` + quizCols
	var quiz school.Quiz
	err := repo.db.Get(&quiz, query, id, patch.CourseID, patch.Title, patch.ContentID)
	if err != nil {
		return quiz, notFoundOrWrap(err, school.ErrNotFound, "updating quiz")
	}
	return quiz, nil
}

func (repo *schoolRepository) DeleteQuiz(id int) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM quiz WHERE id = $1`, id)
	return deleted(res, err, "deleting quiz")
}

// Quiz questions

func (repo *schoolRepository) CreateQuestion(qn school.QuizQuestion) (school.QuizQuestion, error) {
	query := `
INSERT INTO quiz_question (quiz_id, question, type, options, correct_answer, "order")
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + questionCols
	err := repo.db.Get(&qn, query, qn.QuizID, qn.Question, qn.Type, qn.Options, qn.CorrectAnswer, qn.Order)
	return qn, errors.Wrap(err, "creating quiz question")
}

func (repo *schoolRepository) QueryAllQuestions() ([]school.QuizQuestion, error) {
	qns := make([]school.QuizQuestion, 0)
	err := repo.db.Select(&qns, `SELECT `+questionCols+` FROM quiz_question ORDER BY quiz_id, "order"`)
	return qns, errors.Wrap(err, "querying quiz questions")
}

func (repo *schoolRepository) QueryQuestionsByQuiz(quizID int) ([]school.QuizQuestion, error) {
	qns := make([]school.QuizQuestion, 0)
	err := repo.db.Select(
		&qns, `SELECT `+questionCols+` FROM quiz_question WHERE quiz_id = $1 ORDER BY "order"`, quizID)
	return qns, errors.Wrap(err, "querying quiz questions")
}

func (repo *schoolRepository) GetQuestionByID(id int) (school.QuizQuestion, error) {
	var qn school.QuizQuestion
	if err := repo.db.Get(&qn, `SELECT `+questionCols+` FROM quiz_question WHERE id = $1`, id); err != nil {
		return qn, notFoundOrWrap(err, school.ErrNotFound, "getting quiz question")
	}
	return qn, nil
}

func (repo *schoolRepository) UpdateQuestion(id int, patch school.UpdateQuizQuestion) (school.QuizQuestion, error) {
	query := `
UPDATE quiz_question
SET quiz_id        = COALESCE($2, quiz_id),
    question       = COALESCE($3, question),
    type           = COALESCE($4, type),
    options        = COALESCE($5, options),
    correct_answer = COALESCE($6, correct_answer),
    "order"        = COALESCE($7, "order")
WHERE id = $1
RETURNING ` + questionCols
	var qn school.QuizQuestion
	err := repo.db.Get(
		&qn, query, id,
		patch.QuizID, patch.Question, patch.Type, patch.Options, patch.CorrectAnswer, patch.Order)
	if err != nil {
		return qn, notFoundOrWrap(err, school.ErrNotFound, "updating quiz question")
	}
	return qn, nil
}

func (repo *schoolRepository) DeleteQuestion(id int) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM quiz_question WHERE id = $1`, id)
	return deleted(res, err, "deleting quiz question")
}

// Quiz results

func (repo *schoolRepository) CreateResult(result school.QuizResult) (school.QuizResult, error) {
	query := `
INSERT INTO quiz_result (quiz_id, student_id, score, date_taken)
VALUES ($1, $2, $3, $4)
RETURNING ` + resultCols
	err := repo.db.Get(&result, query, result.QuizID, result.StudentID, result.Score, result.DateTaken)
	return result, errors.Wrap(err, "creating quiz result")
}

func (repo *schoolRepository) QueryAllResults() ([]school.QuizResult, error) {
	results := make([]school.QuizResult, 0)
	err := repo.db.Select(&results, `SELECT `+resultCols+` FROM quiz_result ORDER BY id`)
	return results, errors.Wrap(err, "querying quiz results")
}

func (repo *schoolRepository) QueryResultsByQuiz(quizID int) ([]school.QuizResult, error) {
	results := make([]school.QuizResult, 0)
	err := repo.db.Select(&results, `SELECT `+resultCols+` FROM quiz_result WHERE quiz_id = $1 ORDER BY id`, quizID)
	return results, errors.Wrap(err, "querying quiz results by quiz")
}

func (repo *schoolRepository) QueryResultsByStudent(studentID int) ([]school.QuizResult, error) {
	results := make([]school.QuizResult, 0)
	err := repo.db.Select(
		&results, `SELECT `+resultCols+` FROM quiz_result WHERE student_id = $1 ORDER BY id`, studentID)
	return results, errors.Wrap(err, "querying quiz results by student")
}

func (repo *schoolRepository) GetResultByID(id int) (school.QuizResult, error) {
	var result school.QuizResult
	if err := repo.db.Get(&result, `SELECT `+resultCols+` FROM quiz_result WHERE id = $1`, id); err != nil {
		return result, notFoundOrWrap(err, school.ErrNotFound, "getting quiz result")
	}
	return result, nil
}

// Comments

func (repo *schoolRepository) CreateComment(cmt school.Comment) (school.Comment, error) {
	query := `
INSERT INTO comment (content_id, user_id, comment, date_posted)
VALUES ($1, $2, $3, $4)
RETURNING ` + commentCols
	err := repo.db.Get(&cmt, query, cmt.ContentID, cmt.UserID, cmt.Comment, cmt.DatePosted)
	return cmt, errors.Wrap(err, "creating comment")
}

func (repo *schoolRepository) QueryAllComments() ([]school.Comment, error) {
	cmts := make([]school.Comment, 0)
	err := repo.db.Select(&cmts, `SELECT `+commentCols+` FROM comment ORDER BY id`)
	return cmts, errors.Wrap(err, "querying comments")
}

func (repo *schoolRepository) QueryCommentsByContent(contentID int) ([]school.Comment, error) {
	cmts := make([]school.Comment, 0)
	err := repo.db.Select(
		&cmts, `SELECT `+commentCols+` FROM comment WHERE content_id = $1 ORDER BY date_posted`, contentID)
	return cmts, errors.Wrap(err, "querying comments by content")
}

func (repo *schoolRepository) GetCommentByID(id int) (school.Comment, error) {
	var cmt school.Comment
	if err := repo.db.Get(&cmt, `SELECT `+commentCols+` FROM comment WHERE id = $1`, id); err != nil {
		return cmt, notFoundOrWrap(err, school.ErrNotFound, "getting comment")
	}
	return cmt, nil
}

func (repo *schoolRepository) DeleteComment(id int) (bool, error) {
	res, err := repo.db.Exec(`DELETE FROM comment WHERE id = $1`, id)
	return deleted(res, err, "deleting comment")
}
