package school

import (
	"time"

	"github.com/trezcool/academia/core"
)

// CourseContent types
const (
	ContentVideo = "video"
	ContentPDF   = "pdf"
)

// Enrollment payment statuses
const (
	PaymentCompleted = "completed"
	PaymentPending   = "pending"
	PaymentPartial   = "partial"
)

// QuizQuestion types
const (
	QuestionMultipleChoice = "multiple-choice"
	QuestionTrueFalse      = "true-false"
	QuestionFillInBlank    = "fill-in-blank"
)

type Course struct {
	ID           int          `json:"id" db:"id"`
	Title        string       `json:"title" db:"title"`
	Description  string       `json:"description" db:"description"`
	Fee          core.Decimal `json:"fee" db:"fee"`
	InstructorID *int         `json:"instructorId" db:"instructor_id"`
}

type CourseContent struct {
	ID       int    `json:"id" db:"id"`
	CourseID int    `json:"courseId" db:"course_id"`
	Title    string `json:"title" db:"title"`
	Type     string `json:"type" db:"type"`       // video | pdf
	Content  string `json:"content" db:"content"` // YouTube URL or PDF content
	Order    int    `json:"order" db:"order"`     // display sequence within the course
}

type Enrollment struct {
	ID             int          `json:"id" db:"id"`
	StudentID      int          `json:"studentId" db:"student_id"`
	CourseID       int          `json:"courseId" db:"course_id"`
	EnrollmentDate time.Time    `json:"enrollmentDate" db:"enrollment_date"`
	PaymentStatus  string       `json:"paymentStatus" db:"payment_status"` // completed | pending | partial
	AmountPaid     core.Decimal `json:"amountPaid" db:"amount_paid"`
}

type Quiz struct {
	ID        int    `json:"id" db:"id"`
	CourseID  int    `json:"courseId" db:"course_id"`
	Title     string `json:"title" db:"title"`
	ContentID *int   `json:"contentId" db:"content_id"`
}

type QuizQuestion struct {
	ID            int    `json:"id" db:"id"`
	QuizID        int    `json:"quizId" db:"quiz_id"`
	Question      string `json:"question" db:"question"`
	Type          string `json:"type" db:"type"`       // multiple-choice | true-false | fill-in-blank
	Options       string `json:"options" db:"options"` // JSON-serialized list for multiple choice
	CorrectAnswer string `json:"correctAnswer" db:"correct_answer"`
	Order         int    `json:"order" db:"order"`
}

type QuizResult struct {
	ID        int          `json:"id" db:"id"`
	QuizID    int          `json:"quizId" db:"quiz_id"`
	StudentID int          `json:"studentId" db:"student_id"`
	Score     core.Decimal `json:"score" db:"score"`
	DateTaken time.Time    `json:"dateTaken" db:"date_taken"`
}

type Comment struct {
	ID         int       `json:"id" db:"id"`
	ContentID  int       `json:"contentId" db:"content_id"`
	UserID     int       `json:"userId" db:"user_id"`
	Comment    string    `json:"comment" db:"comment"`
	DatePosted time.Time `json:"datePosted" db:"date_posted"`
}

// Insertable shapes

type NewCourse struct {
	Title        string       `json:"title" validate:"required"`
	Description  string       `json:"description"`
	Fee          core.Decimal `json:"fee" validate:"gte=0"`
	InstructorID *int         `json:"instructorId"`
}

func (nc *NewCourse) Validate() error {
	nc.Title = core.CleanString(nc.Title)
	return core.Validate.Struct(nc)
}

type NewCourseContent struct {
	CourseID int    `json:"courseId" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=video pdf"`
	Content  string `json:"content" validate:"required"`
	Order    int    `json:"order" validate:"gte=0"`
}

func (nc *NewCourseContent) Validate() error {
	nc.Title = core.CleanString(nc.Title)
	return core.Validate.Struct(nc)
}

type NewEnrollment struct {
	StudentID      int          `json:"studentId" validate:"required"`
	CourseID       int          `json:"courseId" validate:"required"`
	EnrollmentDate time.Time    `json:"enrollmentDate"`
	PaymentStatus  string       `json:"paymentStatus" validate:"required,oneof=completed pending partial"`
	AmountPaid     core.Decimal `json:"amountPaid" validate:"gte=0"`
}

func (ne *NewEnrollment) Validate(svc *Service) error {
	if err := core.Validate.Struct(ne); err != nil {
		return err
	}
	return svc.CheckEnrollmentUniqueness(ne.StudentID, ne.CourseID)
}

type NewQuiz struct {
	CourseID  int    `json:"courseId" validate:"required"`
	Title     string `json:"title" validate:"required"`
	ContentID *int   `json:"contentId"`
}

func (nq *NewQuiz) Validate() error {
	nq.Title = core.CleanString(nq.Title)
	return core.Validate.Struct(nq)
}

type NewQuizQuestion struct {
	QuizID        int    `json:"quizId" validate:"required"`
	Question      string `json:"question" validate:"required"`
	Type          string `json:"type" validate:"required,oneof=multiple-choice true-false fill-in-blank"`
	Options       string `json:"options"`
	CorrectAnswer string `json:"correctAnswer" validate:"required"`
	Order         int    `json:"order" validate:"gte=0"`
}

func (nq *NewQuizQuestion) Validate() error { return core.Validate.Struct(nq) }

type NewQuizResult struct {
	QuizID    int          `json:"quizId" validate:"required"`
	StudentID int          `json:"studentId" validate:"required"`
	Score     core.Decimal `json:"score" validate:"gte=0"`
	DateTaken time.Time    `json:"dateTaken"`
}

func (nr *NewQuizResult) Validate() error { return core.Validate.Struct(nr) }

type NewComment struct {
	ContentID int    `json:"contentId" validate:"required"`
	UserID    int    `json:"userId"` // always overridden with the requester's ID
	Comment   string `json:"comment" validate:"required"`
}

func (nc *NewComment) Validate() error {
	nc.Comment = core.CleanString(nc.Comment)
	return core.Validate.Struct(nc)
}

// Patch shapes; nil fields keep the stored value.

type UpdateCourse struct {
	Title        *string       `json:"title" validate:"omitempty,min=1"`
	Description  *string       `json:"description"`
	Fee          *core.Decimal `json:"fee" validate:"omitempty,gte=0"`
	InstructorID *int          `json:"instructorId"`
}

func (uc *UpdateCourse) Validate() error { return core.Validate.Struct(uc) }

type UpdateCourseContent struct {
	CourseID *int    `json:"courseId"`
	Title    *string `json:"title" validate:"omitempty,min=1"`
	Type     *string `json:"type" validate:"omitempty,oneof=video pdf"`
	Content  *string `json:"content" validate:"omitempty,min=1"`
	Order    *int    `json:"order" validate:"omitempty,gte=0"`
}

func (uc *UpdateCourseContent) Validate() error { return core.Validate.Struct(uc) }

type UpdateEnrollment struct {
	StudentID      *int          `json:"studentId"`
	CourseID       *int          `json:"courseId"`
	EnrollmentDate *time.Time    `json:"enrollmentDate"`
	PaymentStatus  *string       `json:"paymentStatus" validate:"omitempty,oneof=completed pending partial"`
	AmountPaid     *core.Decimal `json:"amountPaid" validate:"omitempty,gte=0"`
}

func (ue *UpdateEnrollment) Validate() error { return core.Validate.Struct(ue) }

type UpdateQuiz struct {
	CourseID  *int    `json:"courseId"`
	Title     *string `json:"title" validate:"omitempty,min=1"`
	ContentID *int    `json:"contentId"`
}

func (uq *UpdateQuiz) Validate() error { return core.Validate.Struct(uq) }

type UpdateQuizQuestion struct {
	QuizID        *int    `json:"quizId"`
	Question      *string `json:"question" validate:"omitempty,min=1"`
	Type          *string `json:"type" validate:"omitempty,oneof=multiple-choice true-false fill-in-blank"`
	Options       *string `json:"options"`
	CorrectAnswer *string `json:"correctAnswer" validate:"omitempty,min=1"`
	Order         *int    `json:"order" validate:"omitempty,gte=0"`
}

func (uq *UpdateQuizQuestion) Validate() error { return core.Validate.Struct(uq) }
