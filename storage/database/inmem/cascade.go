package inmemdb

// Cascade sweeps mirror the foreign key actions of the SQL schema: rows owned
// by the deleted parent go away, optional references are cleared. All sweeps
// must be called with the write lock held.

func (db *DB) sweepUser(id int) {
	for eid, enr := range db.enrollments {
		if enr.StudentID == id {
			delete(db.enrollments, eid)
		}
	}
	for rid, res := range db.results {
		if res.StudentID == id {
			delete(db.results, rid)
		}
	}
	for cid, cmt := range db.comments {
		if cmt.UserID == id {
			delete(db.comments, cid)
		}
	}
	for _, course := range db.courses {
		if course.InstructorID != nil && *course.InstructorID == id {
			course.InstructorID = nil
		}
	}
	for _, prj := range db.projects {
		if prj.ManagerID != nil && *prj.ManagerID == id {
			prj.ManagerID = nil
		}
	}
	for _, task := range db.tasks {
		if task.AssignedTo != nil && *task.AssignedTo == id {
			task.AssignedTo = nil
		}
	}
}

func (db *DB) sweepCourse(id int) {
	for cid, content := range db.contents {
		if content.CourseID == id {
			delete(db.contents, cid)
			db.sweepContent(cid)
		}
	}
	for eid, enr := range db.enrollments {
		if enr.CourseID == id {
			delete(db.enrollments, eid)
		}
	}
	for qid, quiz := range db.quizzes {
		if quiz.CourseID == id {
			delete(db.quizzes, qid)
			db.sweepQuiz(qid)
		}
	}
}

func (db *DB) sweepContent(id int) {
	for cid, cmt := range db.comments {
		if cmt.ContentID == id {
			delete(db.comments, cid)
		}
	}
	for _, quiz := range db.quizzes {
		if quiz.ContentID != nil && *quiz.ContentID == id {
			quiz.ContentID = nil
		}
	}
}

func (db *DB) sweepQuiz(id int) {
	for qid, qn := range db.questions {
		if qn.QuizID == id {
			delete(db.questions, qid)
		}
	}
	for rid, res := range db.results {
		if res.QuizID == id {
			delete(db.results, rid)
		}
	}
}

func (db *DB) sweepProject(id int) {
	for mid, ms := range db.milestones {
		if ms.ProjectID == id {
			delete(db.milestones, mid)
		}
	}
	for tid, task := range db.tasks {
		if task.ProjectID == id {
			delete(db.tasks, tid)
		}
	}
	for pid, pmt := range db.payments {
		if pmt.ProjectID == id {
			delete(db.payments, pid)
		}
	}
}

func (db *DB) sweepClient(id int) {
	for _, prj := range db.projects {
		if prj.ClientID != nil && *prj.ClientID == id {
			prj.ClientID = nil
		}
	}
}

func (db *DB) sweepMilestone(id int) {
	for _, task := range db.tasks {
		if task.MilestoneID != nil && *task.MilestoneID == id {
			task.MilestoneID = nil
		}
	}
}
