package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ValidDifficulties = map[Difficulty]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

type EventType string

const (
	EventQuiz       EventType = "quiz"
	EventMidsem     EventType = "midsem"
	EventEndsem     EventType = "endsem"
	EventAssignment EventType = "assignment"
)

var ValidEventTypes = map[EventType]bool{
	EventQuiz:       true,
	EventMidsem:     true,
	EventEndsem:     true,
	EventAssignment: true,
}

type TaskSource string

const (
	SourceAnnouncement   TaskSource = "announcement"
	SourceFallback       TaskSource = "fallback"
	SourceSundayRevision TaskSource = "sunday_revision"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskExpired    TaskStatus = "expired"
	TaskSuperseded TaskStatus = "superseded"
)

var ValidTaskStatuses = map[TaskStatus]bool{
	TaskPending:    true,
	TaskInProgress: true,
	TaskCompleted:  true,
	TaskExpired:    true,
	TaskSuperseded: true,
}

// taskTransitions is the full transition table for Task.Status. Completed,
// expired and superseded are terminal.
var taskTransitions = map[TaskStatus]map[TaskStatus]bool{
	TaskPending: {
		TaskInProgress: true,
		TaskCompleted:  true,
		TaskExpired:    true,
		TaskSuperseded: true,
	},
	TaskInProgress: {
		TaskCompleted: true,
		TaskExpired:   true,
	},
	TaskCompleted:  {},
	TaskExpired:    {},
	TaskSuperseded: {},
}

// CanTransition reports whether a task may move from one status to another.
func (s TaskStatus) CanTransition(next TaskStatus) bool {
	return taskTransitions[s][next]
}

// Announcement is a course event posted by an instructor. Posting one kicks
// off plan generation for its topic list.
type Announcement struct {
	ID        string    `json:"id"`
	CourseID  int64     `json:"course_id"`
	EventType EventType `json:"event_type"`
	Title     string    `json:"title"`
	Topics    []string  `json:"topics"`
	EventDate time.Time `json:"event_date"`
	CreatedAt time.Time `json:"created_at"`
}

// Task is one scheduled study unit. TokenStake and TokenReward are always
// equal; the decay engine re-syncs both when it shrinks a stale task.
type Task struct {
	ID             int64      `json:"id"`
	AnnouncementID *string    `json:"announcement_id,omitempty"`
	CourseID       int64      `json:"course_id"`
	Topic          string     `json:"topic"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Difficulty     Difficulty `json:"difficulty"`
	TokenStake     int        `json:"token_stake"`
	TokenReward    int        `json:"token_reward"`
	DurationHours  int        `json:"duration_hours"`
	ScheduledDate  time.Time  `json:"scheduled_date"`
	Deadline       time.Time  `json:"deadline"`
	PassNumber     int        `json:"pass_number"`
	DayIndex       int        `json:"day_index"`
	IsRevision     bool       `json:"is_revision"`
	Status         TaskStatus `json:"status"`
	Source         TaskSource `json:"source"`
	AssignedTo     *int64     `json:"assigned_to,omitempty"`
	SupersededBy   *string    `json:"superseded_by,omitempty"`
	DecayedAt      *time.Time `json:"decayed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type CreateAnnouncementRequest struct {
	CourseID  int64     `json:"course_id"`
	EventType EventType `json:"event_type"`
	Title     string    `json:"title"`
	Topics    []string  `json:"topics"`
	EventDate time.Time `json:"event_date"`
}

type PlanResponse struct {
	Announcement Announcement `json:"announcement"`
	TotalDays    int          `json:"total_days"`
	PassDays     [3]int       `json:"pass_days"`
	Tasks        []Task       `json:"tasks"`
	Superseded   int          `json:"superseded"`
}

type TaskListResponse struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}
