// Package inmemdb provides map-backed repositories sharing one DB. It backs
// tests and the "inmem" store backend; data does not survive a restart.
package inmemdb

import (
	"sync"

	"github.com/trezcool/academia/core/finance"
	"github.com/trezcool/academia/core/project"
	"github.com/trezcool/academia/core/school"
	"github.com/trezcool/academia/core/user"
)

// DB holds every table behind a single lock so that cross-table cascades
// stay consistent.
type DB struct {
	mutex sync.RWMutex
	seq   map[string]int

	users map[int]*user.User

	courses     map[int]*school.Course
	contents    map[int]*school.CourseContent
	enrollments map[int]*school.Enrollment
	quizzes     map[int]*school.Quiz
	questions   map[int]*school.QuizQuestion
	results     map[int]*school.QuizResult
	comments    map[int]*school.Comment

	projects   map[int]*project.Project
	clients    map[int]*project.Client
	milestones map[int]*project.Milestone
	tasks      map[int]*project.Task

	expenses map[int]*finance.Expense
	payments map[int]*finance.ProjectPayment
}

func Open() (*DB, error) {
	db := &DB{
		seq:         make(map[string]int),
		users:       make(map[int]*user.User),
		courses:     make(map[int]*school.Course),
		contents:    make(map[int]*school.CourseContent),
		enrollments: make(map[int]*school.Enrollment),
		quizzes:     make(map[int]*school.Quiz),
		questions:   make(map[int]*school.QuizQuestion),
		results:     make(map[int]*school.QuizResult),
		comments:    make(map[int]*school.Comment),
		projects:    make(map[int]*project.Project),
		clients:     make(map[int]*project.Client),
		milestones:  make(map[int]*project.Milestone),
		tasks:       make(map[int]*project.Task),
		expenses:    make(map[int]*finance.Expense),
		payments:    make(map[int]*finance.ProjectPayment),
	}
	return db, nil
}

// nextID must be called with the write lock held.
func (db *DB) nextID(table string) int {
	db.seq[table]++
	return db.seq[table]
}
