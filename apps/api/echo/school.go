package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/school"
	"github.com/trezcool/academia/core/user"
)

type schoolApi struct {
	svc *school.Service
}

func registerSchoolAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *school.Service) {
	api := schoolApi{svc: svc}

	cg := g.Group("/courses", jwt)
	cg.GET("", api.queryCourses, authorize("course", "list"))
	cg.POST("", api.createCourse, authorize("course", "create"))
	cg.GET("/:id", api.retrieveCourse, authorize("course", "read"))
	cg.PUT("/:id", api.updateCourse, authorize("course", "update"))
	cg.DELETE("/:id", api.destroyCourse, authorize("course", "delete"))
	cg.GET("/:id/contents", api.queryCourseContents, authorize("course-content", "list"))
	cg.GET("/:id/enrollments", api.queryCourseEnrollments, authorize("enrollment", "list-by-course"))
	cg.GET("/:id/quizzes", api.queryCourseQuizzes, authorize("quiz", "list"))

	ccg := g.Group("/course-contents", jwt)
	ccg.GET("", api.queryContents, authorize("course-content", "list"))
	ccg.POST("", api.createContent, authorize("course-content", "create"))
	ccg.GET("/:id", api.retrieveContent, authorize("course-content", "read"))
	ccg.PUT("/:id", api.updateContent, authorize("course-content", "update"))
	ccg.DELETE("/:id", api.destroyContent, authorize("course-content", "delete"))
	ccg.GET("/:id/comments", api.queryContentComments, authorize("comment", "list-by-content"))

	eg := g.Group("/enrollments", jwt)
	eg.GET("", api.queryEnrollments, authorize("enrollment", "list"))
	eg.POST("", api.createEnrollment, authorize("enrollment", "create"))
	eg.GET("/:id", api.retrieveEnrollment, authorize("enrollment", "read"))
	eg.PUT("/:id", api.updateEnrollment, authorize("enrollment", "update"))
	eg.DELETE("/:id", api.destroyEnrollment, authorize("enrollment", "delete"))

	qg := g.Group("/quizzes", jwt)
	qg.GET("", api.queryQuizzes, authorize("quiz", "list"))
	qg.POST("", api.createQuiz, authorize("quiz", "create"))
	qg.GET("/:id", api.retrieveQuiz, authorize("quiz", "read"))
	qg.PUT("/:id", api.updateQuiz, authorize("quiz", "update"))
	qg.DELETE("/:id", api.destroyQuiz, authorize("quiz", "delete"))
	qg.GET("/:id/questions", api.queryQuizQuestions, authorize("quiz-question", "list"))
	qg.GET("/:id/results", api.queryQuizResults, authorize("quiz-result", "list-by-quiz"))

	qqg := g.Group("/quiz-questions", jwt)
	qqg.GET("", api.queryQuestions, authorize("quiz-question", "list"))
	qqg.POST("", api.createQuestion, authorize("quiz-question", "create"))
	qqg.GET("/:id", api.retrieveQuestion, authorize("quiz-question", "read"))
	qqg.PUT("/:id", api.updateQuestion, authorize("quiz-question", "update"))
	qqg.DELETE("/:id", api.destroyQuestion, authorize("quiz-question", "delete"))

	qrg := g.Group("/quiz-results", jwt)
	qrg.GET("", api.queryResults, authorize("quiz-result", "list"))
	qrg.POST("", api.createResult, authorize("quiz-result", "create"))
	qrg.GET("/:id", api.retrieveResult, authorize("quiz-result", "read"))

	cmg := g.Group("/comments", jwt)
	cmg.GET("", api.queryComments, authorize("comment", "list"))
	cmg.POST("", api.createComment, authorize("comment", "create"))
	cmg.GET("/:id", api.retrieveComment, authorize("comment", "read"))
	cmg.DELETE("/:id", api.destroyComment, authorize("comment", "delete"))

	sg := g.Group("/students/:id", jwt)
	sg.GET("/enrollments", api.queryStudentEnrollments, authorize("enrollment", "list-by-student"))
	sg.GET("/quiz-results", api.queryStudentResults, authorize("quiz-result", "list-by-student"))
}

// Courses

func (api *schoolApi) createCourse(ctx echo.Context) error {
	var data school.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	crs, err := api.svc.CreateCourse(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *schoolApi) queryCourses(ctx echo.Context) error {
	courses, err := api.svc.QueryAllCourses()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *schoolApi) retrieveCourse(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	crs, err := api.svc.GetCourseByID(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *schoolApi) updateCourse(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data school.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	crs, err := api.svc.UpdateCourse(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *schoolApi) destroyCourse(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	ok, err := api.svc.DeleteCourse(id)
	if err != nil {
		return errors.Wrap(err, "deleting course")
	}
	if !ok {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *schoolApi) queryCourseContents(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	contents, err := api.svc.QueryContentsByCourse(id)
	if err != nil {
		return errors.Wrap(err, "querying course contents")
	}
	return ctx.JSON(http.StatusOK, contents)
}

func (api *schoolApi) queryCourseEnrollments(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	enrs, err := api.svc.QueryEnrollmentsByCourse(id)
	if err != nil {
		return errors.Wrap(err, "querying course enrollments")
	}
	return ctx.JSON(http.StatusOK, enrs)
}

func (api *schoolApi) queryCourseQuizzes(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	quizzes, err := api.svc.QueryQuizzesByCourse(id)
	if err != nil {
		return errors.Wrap(err, "querying course quizzes")
	}
	return ctx.JSON(http.StatusOK, quizzes)
}

// Course contents

func (api *schoolApi) createContent(ctx echo.Context) error {
	var data school.NewCourseContent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourseContent")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	cnt, err := api.svc.CreateContent(data)
	if err != nil {
		return errors.Wrap(err, "creating course content")
	}
	return ctx.JSON(http.StatusCreated, cnt)
}

func (api *schoolApi) queryContents(ctx echo.Context) error {
	contents, err := api.svc.QueryAllContents()
	if err != nil {
		return errors.Wrap(err, "querying course contents")
	}
	return ctx.JSON(http.StatusOK, contents)
}

func (api *schoolApi) retrieveContent(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	cnt, err := api.svc.GetContentByID(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cnt)
}

func (api *schoolApi) updateContent(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data school.UpdateCourseContent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourseContent")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	cnt, err := api.svc.UpdateContent(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cnt)
}

func (api *schoolApi) destroyContent(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	ok, err := api.svc.DeleteContent(id)
	if err != nil {
		return errors.Wrap(err, "deleting course content")
	}
	if !ok {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *schoolApi) queryContentComments(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	comments, err := api.svc.QueryCommentsByContent(id)
	if err != nil {
		return errors.Wrap(err, "querying content comments")
	}
	return ctx.JSON(http.StatusOK, comments)
}

// Enrollments

func (api *schoolApi) createEnrollment(ctx echo.Context) error {
	var data school.NewEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}
	enr, err := api.svc.CreateEnrollment(data)
	if err != nil {
		return errors.Wrap(err, "creating enrollment")
	}
	return ctx.JSON(http.StatusCreated, enr)
}

// queryEnrollments scopes the listing: students only ever see their own.
func (api *schoolApi) queryEnrollments(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if claims.Role == user.RoleStudent {
		enrs, err := api.svc.QueryEnrollmentsByStudent(claims.UserID())
		if err != nil {
			return errors.Wrap(err, "querying enrollments by student")
		}
		return ctx.JSON(http.StatusOK, enrs)
	}

	enrs, err := api.svc.QueryAllEnrollments()
	if err != nil {
		return errors.Wrap(err, "querying enrollments")
	}
	return ctx.JSON(http.StatusOK, enrs)
}

func (api *schoolApi) retrieveEnrollment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	enr, err := api.svc.GetEnrollmentByID(id)
	if err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if !(claims.Role == user.RoleAdmin || claims.Role == user.RoleInstructor) && enr.StudentID != claims.UserID() {
		return errHttpForbidden
	}
	return ctx.JSON(http.StatusOK, enr)
}

func (api *schoolApi) updateEnrollment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data school.UpdateEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEnrollment")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	enr, err := api.svc.UpdateEnrollment(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, enr)
}

func (api *schoolApi) destroyEnrollment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	ok, err := api.svc.DeleteEnrollment(id)
	if err != nil {
		return errors.Wrap(err, "deleting enrollment")
	}
	if !ok {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *schoolApi) queryStudentEnrollments(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	enrs, err := api.svc.QueryEnrollmentsByStudent(id)
	if err != nil {
		return errors.Wrap(err, "querying enrollments by student")
	}
	return ctx.JSON(http.StatusOK, enrs)
}

// Quizzes

func (api *schoolApi) createQuiz(ctx echo.Context) error {
	var data school.NewQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuiz")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	qz, err := api.svc.CreateQuiz(data)
	if err != nil {
		return errors.Wrap(err, "creating quiz")
	}
	return ctx.JSON(http.StatusCreated, qz)
}

func (api *schoolApi) queryQuizzes(ctx echo.Context) error {
	quizzes, err := api.svc.QueryAllQuizzes()
	if err != nil {
		return errors.Wrap(err, "querying quizzes")
	}
	return ctx.JSON(http.StatusOK, quizzes)
}

func (api *schoolApi) retrieveQuiz(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	qz, err := api.svc.GetQuizByID(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, qz)
}

func (api *schoolApi) updateQuiz(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data school.UpdateQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateQuiz")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	qz, err := api.svc.UpdateQuiz(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, qz)
}

func (api *schoolApi) destroyQuiz(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	ok, err := api.svc.DeleteQuiz(id)
	if err != nil {
		return errors.Wrap(err, "deleting quiz")
	}
	if !ok {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *schoolApi) queryQuizQuestions(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	questions, err := api.svc.QueryQuestionsByQuiz(id)
	if err != nil {
		return errors.Wrap(err, "querying quiz questions")
	}
	return ctx.JSON(http.StatusOK, questions)
}

func (api *schoolApi) queryQuizResults(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	results, err := api.svc.QueryResultsByQuiz(id)
	if err != nil {
		return errors.Wrap(err, "querying quiz results")
	}
	return ctx.JSON(http.StatusOK, results)
}

// Quiz questions

func (api *schoolApi) createQuestion(ctx echo.Context) error {
	var data school.NewQuizQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuizQuestion")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	qst, err := api.svc.CreateQuestion(data)
	if err != nil {
		return errors.Wrap(err, "creating quiz question")
	}
	return ctx.JSON(http.StatusCreated, qst)
}

func (api *schoolApi) queryQuestions(ctx echo.Context) error {
	questions, err := api.svc.QueryAllQuestions()
	if err != nil {
		return errors.Wrap(err, "querying quiz questions")
	}
	return ctx.JSON(http.StatusOK, questions)
}

func (api *schoolApi) retrieveQuestion(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	qst, err := api.svc.GetQuestionByID(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, qst)
}

func (api *schoolApi) updateQuestion(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data school.UpdateQuizQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateQuizQuestion")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	qst, err := api.svc.UpdateQuestion(id, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, qst)
}

func (api *schoolApi) destroyQuestion(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	ok, err := api.svc.DeleteQuestion(id)
	if err != nil {
		return errors.Wrap(err, "deleting quiz question")
	}
	if !ok {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Quiz results

// createResult records a submission. Students always submit under their own
// identity; admin and instructors may record for anyone.
func (api *schoolApi) createResult(ctx echo.Context) error {
	var data school.NewQuizResult
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuizResult")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if !(claims.Role == user.RoleAdmin || claims.Role == user.RoleInstructor) {
		data.StudentID = claims.UserID()
	}

	if err := data.Validate(); err != nil {
		return err
	}
	res, err := api.svc.CreateResult(data)
	if err != nil {
		return errors.Wrap(err, "creating quiz result")
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *schoolApi) queryResults(ctx echo.Context) error {
	results, err := api.svc.QueryAllResults()
	if err != nil {
		return errors.Wrap(err, "querying quiz results")
	}
	return ctx.JSON(http.StatusOK, results)
}

func (api *schoolApi) retrieveResult(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	res, err := api.svc.GetResultByID(id)
	if err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if !(claims.Role == user.RoleAdmin || claims.Role == user.RoleInstructor) && res.StudentID != claims.UserID() {
		return errHttpForbidden
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *schoolApi) queryStudentResults(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	results, err := api.svc.QueryResultsByStudent(id)
	if err != nil {
		return errors.Wrap(err, "querying quiz results by student")
	}
	return ctx.JSON(http.StatusOK, results)
}

// Comments

// createComment posts under the requester's identity; any userId in the
// payload is discarded.
func (api *schoolApi) createComment(ctx echo.Context) error {
	var data school.NewComment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewComment")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	data.UserID = claims.UserID()

	if err := data.Validate(); err != nil {
		return err
	}
	cmt, err := api.svc.CreateComment(data)
	if err != nil {
		return errors.Wrap(err, "creating comment")
	}
	return ctx.JSON(http.StatusCreated, cmt)
}

// queryComments lists every comment for moderation.
func (api *schoolApi) queryComments(ctx echo.Context) error {
	comments, err := api.svc.QueryAllComments()
	if err != nil {
		return errors.Wrap(err, "querying comments")
	}
	return ctx.JSON(http.StatusOK, comments)
}

func (api *schoolApi) retrieveComment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	cmt, err := api.svc.GetCommentByID(id)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cmt)
}

func (api *schoolApi) destroyComment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	ok, err := api.svc.DeleteComment(id)
	if err != nil {
		return errors.Wrap(err, "deleting comment")
	}
	if !ok {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}
