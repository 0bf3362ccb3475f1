package inmemdb

import (
	"sort"

	"github.com/trezcool/academia/core/school"
)

type schoolRepository struct {
	db *DB
}

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) CheckEnrollmentUniqueness(studentID, courseID int) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, enr := range repo.db.enrollments {
		if enr.StudentID == studentID && enr.CourseID == courseID {
			return school.ErrEnrollmentExists
		}
	}
	return nil
}

// Courses

func (repo *schoolRepository) CreateCourse(course school.Course) (school.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	course.ID = repo.db.nextID("course")
	repo.db.courses[course.ID] = &course
	return course, nil
}

func (repo *schoolRepository) QueryAllCourses() ([]school.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	courses := make([]school.Course, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		courses = append(courses, *c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (repo *schoolRepository) GetCourseByID(id int) (school.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.courses[id]; ok {
		return *c, nil
	}
	return school.Course{}, school.ErrNotFound
}

func (repo *schoolRepository) UpdateCourse(id int, patch school.UpdateCourse) (school.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	course, ok := repo.db.courses[id]
	if !ok {
		return school.Course{}, school.ErrNotFound
	}
	if patch.Title != nil {
		course.Title = *patch.Title
	}
	if patch.Description != nil {
		course.Description = *patch.Description
	}
	if patch.Fee != nil {
		course.Fee = *patch.Fee
	}
	if patch.InstructorID != nil {
		course.InstructorID = patch.InstructorID
	}
	return *course, nil
}

func (repo *schoolRepository) DeleteCourse(id int) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.courses[id]; !ok {
		return false, nil
	}
	delete(repo.db.courses, id)
	repo.db.sweepCourse(id)
	return true, nil
}

// Course contents

func (repo *schoolRepository) CreateContent(content school.CourseContent) (school.CourseContent, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	content.ID = repo.db.nextID("course_content")
	repo.db.contents[content.ID] = &content
	return content, nil
}

func (repo *schoolRepository) queryContents(filter func(school.CourseContent) bool) []school.CourseContent {
	contents := make([]school.CourseContent, 0)
	for _, c := range repo.db.contents {
		if filter == nil || filter(*c) {
			contents = append(contents, *c)
		}
	}
	sort.Slice(contents, func(i, j int) bool {
		if contents[i].CourseID != contents[j].CourseID {
			return contents[i].CourseID < contents[j].CourseID
		}
		if contents[i].Order != contents[j].Order {
			return contents[i].Order < contents[j].Order
		}
		return contents[i].ID < contents[j].ID
	})
	return contents
}

func (repo *schoolRepository) QueryAllContents() ([]school.CourseContent, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryContents(nil), nil
}

func (repo *schoolRepository) QueryContentsByCourse(courseID int) ([]school.CourseContent, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryContents(func(c school.CourseContent) bool { return c.CourseID == courseID }), nil
}

func (repo *schoolRepository) GetContentByID(id int) (school.CourseContent, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.contents[id]; ok {
		return *c, nil
	}
	return school.CourseContent{}, school.ErrNotFound
}

func (repo *schoolRepository) UpdateContent(id int, patch school.UpdateCourseContent) (school.CourseContent, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	content, ok := repo.db.contents[id]
	if !ok {
		return school.CourseContent{}, school.ErrNotFound
	}
	if patch.CourseID != nil {
		content.CourseID = *patch.CourseID
	}
	if patch.Title != nil {
		content.Title = *patch.Title
	}
	if patch.Type != nil {
		content.Type = *patch.Type
	}
	if patch.Content != nil {
		content.Content = *patch.Content
	}
	if patch.Order != nil {
		content.Order = *patch.Order
	}
	return *content, nil
}

func (repo *schoolRepository) DeleteContent(id int) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.contents[id]; !ok {
		return false, nil
	}
	delete(repo.db.contents, id)
	repo.db.sweepContent(id)
	return true, nil
}

// Enrollments

func (repo *schoolRepository) CreateEnrollment(enr school.Enrollment) (school.Enrollment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, e := range repo.db.enrollments {
		if e.StudentID == enr.StudentID && e.CourseID == enr.CourseID {
			return school.Enrollment{}, school.ErrEnrollmentExists
		}
	}
	enr.ID = repo.db.nextID("enrollment")
	repo.db.enrollments[enr.ID] = &enr
	return enr, nil
}

func (repo *schoolRepository) queryEnrollments(filter func(school.Enrollment) bool) []school.Enrollment {
	enrs := make([]school.Enrollment, 0)
	for _, e := range repo.db.enrollments {
		if filter == nil || filter(*e) {
			enrs = append(enrs, *e)
		}
	}
	sort.Slice(enrs, func(i, j int) bool { return enrs[i].ID < enrs[j].ID })
	return enrs
}

func (repo *schoolRepository) QueryAllEnrollments() ([]school.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryEnrollments(nil), nil
}

func (repo *schoolRepository) QueryEnrollmentsByStudent(studentID int) ([]school.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryEnrollments(func(e school.Enrollment) bool { return e.StudentID == studentID }), nil
}

func (repo *schoolRepository) QueryEnrollmentsByCourse(courseID int) ([]school.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryEnrollments(func(e school.Enrollment) bool { return e.CourseID == courseID }), nil
}

func (repo *schoolRepository) GetEnrollmentByID(id int) (school.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if e, ok := repo.db.enrollments[id]; ok {
		return *e, nil
	}
	return school.Enrollment{}, school.ErrNotFound
}

func (repo *schoolRepository) UpdateEnrollment(id int, patch school.UpdateEnrollment) (school.Enrollment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	enr, ok := repo.db.enrollments[id]
	if !ok {
		return school.Enrollment{}, school.ErrNotFound
	}
	if patch.StudentID != nil {
		enr.StudentID = *patch.StudentID
	}
	if patch.CourseID != nil {
		enr.CourseID = *patch.CourseID
	}
	if patch.EnrollmentDate != nil {
		enr.EnrollmentDate = *patch.EnrollmentDate
	}
	if patch.PaymentStatus != nil {
		enr.PaymentStatus = *patch.PaymentStatus
	}
	if patch.AmountPaid != nil {
		enr.AmountPaid = *patch.AmountPaid
	}
	return *enr, nil
}

func (repo *schoolRepository) DeleteEnrollment(id int) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.enrollments[id]; !ok {
		return false, nil
	}
	delete(repo.db.enrollments, id)
	return true, nil
}

// Quizzes

func (repo *schoolRepository) CreateQuiz(quiz school.Quiz) (school.Quiz, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	quiz.ID = repo.db.nextID("quiz")
	repo.db.quizzes[quiz.ID] = &quiz
	return quiz, nil
}

func (repo *schoolRepository) queryQuizzes(filter func(school.Quiz) bool) []school.Quiz {
	quizzes := make([]school.Quiz, 0)
	for _, q := range repo.db.quizzes {
		if filter == nil || filter(*q) {
			quizzes = append(quizzes, *q)
		}
	}
	sort.Slice(quizzes, func(i, j int) bool { return quizzes[i].ID < quizzes[j].ID })
	return quizzes
}

func (repo *schoolRepository) QueryAllQuizzes() ([]school.Quiz, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryQuizzes(nil), nil
}

func (repo *schoolRepository) QueryQuizzesByCourse(courseID int) ([]school.Quiz, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryQuizzes(func(q school.Quiz) bool { return q.CourseID == courseID }), nil
}

func (repo *schoolRepository) GetQuizByID(id int) (school.Quiz, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if q, ok := repo.db.quizzes[id]; ok {
		return *q, nil
	}
	return school.Quiz{}, school.ErrNotFound
}

func (repo *schoolRepository) UpdateQuiz(id int, patch school.UpdateQuiz) (school.Quiz, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	quiz, ok := repo.db.quizzes[id]
	if !ok {
		return school.Quiz{}, school.ErrNotFound
	}
	if patch.CourseID != nil {
		quiz.CourseID = *patch.CourseID
	}
	if patch.Title != nil {
		quiz.Title = *patch.Title
	}
	if patch.ContentID != nil {
		quiz.ContentID = patch.ContentID
	}
	return *quiz, nil
}

func (repo *schoolRepository) DeleteQuiz(id int) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.quizzes[id]; !ok {
		return false, nil
	}
	delete(repo.db.quizzes, id)
	repo.db.sweepQuiz(id)
	return true, nil
}

// Quiz questions

func (repo *schoolRepository) CreateQuestion(qn school.QuizQuestion) (school.QuizQuestion, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	qn.ID = repo.db.nextID("quiz_question")
	repo.db.questions[qn.ID] = &qn
	return qn, nil
}

func (repo *schoolRepository) queryQuestions(filter func(school.QuizQuestion) bool) []school.QuizQuestion {
	qns := make([]school.QuizQuestion, 0)
	for _, q := range repo.db.questions {
		if filter == nil || filter(*q) {
			qns = append(qns, *q)
		}
	}
	sort.Slice(qns, func(i, j int) bool {
		if qns[i].QuizID != qns[j].QuizID {
			return qns[i].QuizID < qns[j].QuizID
		}
		if qns[i].Order != qns[j].Order {
			return qns[i].Order < qns[j].Order
		}
		return qns[i].ID < qns[j].ID
	})
	return qns
}

func (repo *schoolRepository) QueryAllQuestions() ([]school.QuizQuestion, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryQuestions(nil), nil
}

func (repo *schoolRepository) QueryQuestionsByQuiz(quizID int) ([]school.QuizQuestion, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryQuestions(func(q school.QuizQuestion) bool { return q.QuizID == quizID }), nil
}

func (repo *schoolRepository) GetQuestionByID(id int) (school.QuizQuestion, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if q, ok := repo.db.questions[id]; ok {
		return *q, nil
	}
	return school.QuizQuestion{}, school.ErrNotFound
}

func (repo *schoolRepository) UpdateQuestion(id int, patch school.UpdateQuizQuestion) (school.QuizQuestion, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	qn, ok := repo.db.questions[id]
	if !ok {
		return school.QuizQuestion{}, school.ErrNotFound
	}
	if patch.QuizID != nil {
		qn.QuizID = *patch.QuizID
	}
	if patch.Question != nil {
		qn.Question = *patch.Question
	}
	if patch.Type != nil {
		qn.Type = *patch.Type
	}
	if patch.Options != nil {
		qn.Options = *patch.Options
	}
	if patch.CorrectAnswer != nil {
		qn.CorrectAnswer = *patch.CorrectAnswer
	}
	if patch.Order != nil {
		qn.Order = *patch.Order
	}
	return *qn, nil
}

func (repo *schoolRepository) DeleteQuestion(id int) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.questions[id]; !ok {
		return false, nil
	}
	delete(repo.db.questions, id)
	return true, nil
}

// Quiz results

func (repo *schoolRepository) CreateResult(res school.QuizResult) (school.QuizResult, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	res.ID = repo.db.nextID("quiz_result")
	repo.db.results[res.ID] = &res
	return res, nil
}

func (repo *schoolRepository) queryResults(filter func(school.QuizResult) bool) []school.QuizResult {
	results := make([]school.QuizResult, 0)
	for _, r := range repo.db.results {
		if filter == nil || filter(*r) {
			results = append(results, *r)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}

func (repo *schoolRepository) QueryAllResults() ([]school.QuizResult, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryResults(nil), nil
}

func (repo *schoolRepository) QueryResultsByQuiz(quizID int) ([]school.QuizResult, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryResults(func(r school.QuizResult) bool { return r.QuizID == quizID }), nil
}

func (repo *schoolRepository) QueryResultsByStudent(studentID int) ([]school.QuizResult, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryResults(func(r school.QuizResult) bool { return r.StudentID == studentID }), nil
}

func (repo *schoolRepository) GetResultByID(id int) (school.QuizResult, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if r, ok := repo.db.results[id]; ok {
		return *r, nil
	}
	return school.QuizResult{}, school.ErrNotFound
}

// Comments

func (repo *schoolRepository) CreateComment(cmt school.Comment) (school.Comment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cmt.ID = repo.db.nextID("comment")
	repo.db.comments[cmt.ID] = &cmt
	return cmt, nil
}

func (repo *schoolRepository) queryComments(filter func(school.Comment) bool) []school.Comment {
	cmts := make([]school.Comment, 0)
	for _, c := range repo.db.comments {
		if filter == nil || filter(*c) {
			cmts = append(cmts, *c)
		}
	}
	sort.Slice(cmts, func(i, j int) bool { return cmts[i].ID < cmts[j].ID })
	return cmts
}

func (repo *schoolRepository) QueryAllComments() ([]school.Comment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryComments(nil), nil
}

func (repo *schoolRepository) QueryCommentsByContent(contentID int) ([]school.Comment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.queryComments(func(c school.Comment) bool { return c.ContentID == contentID }), nil
}

func (repo *schoolRepository) GetCommentByID(id int) (school.Comment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.comments[id]; ok {
		return *c, nil
	}
	return school.Comment{}, school.ErrNotFound
}

func (repo *schoolRepository) DeleteComment(id int) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.comments[id]; !ok {
		return false, nil
	}
	delete(repo.db.comments, id)
	return true, nil
}
