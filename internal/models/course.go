package models

import "time"

type Course struct {
	ID           int64    `json:"id"`
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	CreditWeight int      `json:"credit_weight"`
	Topics       []string `json:"topics"`
}

// Enrollment ties a user to a course. The weekly revision rotation cursor
// lives on the user row, advanced modulo the enrolled course count.
type Enrollment struct {
	UserID     int64     `json:"user_id"`
	CourseID   int64     `json:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// CourseProficiency mirrors the per-course counter subset plus the derived
// proficiency score for one (user, course) pair.
type CourseProficiency struct {
	UserID            int64     `json:"user_id"`
	CourseID          int64     `json:"course_id"`
	Upvotes           int       `json:"upvotes"`
	DownvotesLost     int       `json:"downvotes_lost"`
	DownvotesDefended int       `json:"downvotes_defended"`
	TasksCompleted    int       `json:"tasks_completed"`
	QuizzesPassed     int       `json:"quizzes_passed"`
	QuizzesFailed     int       `json:"quizzes_failed"`
	Proficiency       int       `json:"proficiency"`
	UpdatedAt         time.Time `json:"updated_at"`
}
