package schedule

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/apperr"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Courses & Enrollment ────────────────────────────────

func (s *Store) GetCourse(courseID int64) (*models.Course, error) {
	var c models.Course
	err := s.db.QueryRow(
		`SELECT id, code, name, credit_weight, topics FROM courses WHERE id = $1`,
		courseID,
	).Scan(&c.ID, &c.Code, &c.Name, &c.CreditWeight, pq.Array(&c.Topics))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("course %d", courseID)
	}
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	return &c, nil
}

// ListCoursesWithoutActiveAnnouncements returns courses with no upcoming
// event, the ones the weekly fallback plan keeps warm.
func (s *Store) ListCoursesWithoutActiveAnnouncements(now time.Time) ([]models.Course, error) {
	rows, err := s.db.Query(
		`SELECT c.id, c.code, c.name, c.credit_weight, c.topics
		 FROM courses c
		 WHERE NOT EXISTS (
		     SELECT 1 FROM announcements a
		     WHERE a.course_id = c.id AND a.event_date > $1
		 )
		 ORDER BY c.id`,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("list idle courses: %w", err)
	}
	defer rows.Close()

	return scanCourses(rows)
}

// ListUserCourses returns the user's enrolled courses in stable id order,
// which is the order the revision rotation index points into.
func (s *Store) ListUserCourses(userID int64) ([]models.Course, error) {
	rows, err := s.db.Query(
		`SELECT c.id, c.code, c.name, c.credit_weight, c.topics
		 FROM enrollments e
		 JOIN courses c ON c.id = e.course_id
		 WHERE e.user_id = $1
		 ORDER BY c.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list user courses: %w", err)
	}
	defer rows.Close()

	return scanCourses(rows)
}

func scanCourses(rows *sql.Rows) ([]models.Course, error) {
	var courses []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.CreditWeight, pq.Array(&c.Topics)); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (s *Store) ListUsersWithEnrollments() ([]int64, error) {
	rows, err := s.db.Query(`SELECT DISTINCT user_id FROM enrollments ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list enrolled users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AdvanceRotation moves the user's weekly revision cursor one course ahead,
// wrapping at the enrolled course count, and returns the new index.
func (s *Store) AdvanceRotation(userID int64, courseCount int) (int, error) {
	var idx int
	err := s.db.QueryRow(
		`UPDATE users SET revision_rotation_index = (revision_rotation_index + 1) % $2
		 WHERE id = $1
		 RETURNING revision_rotation_index`,
		userID, courseCount,
	).Scan(&idx)
	if err == sql.ErrNoRows {
		return 0, apperr.NotFoundf("user %d", userID)
	}
	if err != nil {
		return 0, fmt.Errorf("advance rotation: %w", err)
	}
	return idx, nil
}

// ── Announcements ───────────────────────────────────────

func (s *Store) CreateAnnouncement(a *models.Announcement) error {
	err := s.db.QueryRow(
		`INSERT INTO announcements (id, course_id, event_type, title, topics, event_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		a.ID, a.CourseID, a.EventType, a.Title, pq.Array(a.Topics), a.EventDate,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

// ── Tasks ───────────────────────────────────────────────

const taskColumns = `id, announcement_id, course_id, topic, title, content, difficulty,
	token_stake, token_reward, duration_hours, scheduled_date, deadline,
	pass_number, day_index, is_revision, status, source, assigned_to,
	superseded_by, decayed_at, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.AnnouncementID, &t.CourseID, &t.Topic, &t.Title,
		&t.Content, &t.Difficulty, &t.TokenStake, &t.TokenReward, &t.DurationHours,
		&t.ScheduledDate, &t.Deadline, &t.PassNumber, &t.DayIndex, &t.IsRevision,
		&t.Status, &t.Source, &t.AssignedTo, &t.SupersededBy, &t.DecayedAt, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) CreateTask(t *models.Task) error {
	err := s.db.QueryRow(
		`INSERT INTO tasks
		    (announcement_id, course_id, topic, title, content, difficulty,
		     token_stake, token_reward, duration_hours, scheduled_date, deadline,
		     pass_number, day_index, is_revision, status, source, assigned_to)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING id, created_at`,
		t.AnnouncementID, t.CourseID, t.Topic, t.Title, t.Content, t.Difficulty,
		t.TokenStake, t.TokenReward, t.DurationHours, t.ScheduledDate, t.Deadline,
		t.PassNumber, t.DayIndex, t.IsRevision, t.Status, t.Source, t.AssignedTo,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (s *Store) GetTask(taskID int64) (*models.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, taskID)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("task %d", taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// ListTasks returns tasks visible to the user: shared course tasks plus the
// user's personal ones, optionally narrowed by course and status.
func (s *Store) ListTasks(userID, courseID int64, status models.TaskStatus, limit, offset int) ([]models.Task, int, error) {
	where := []string{"(assigned_to IS NULL OR assigned_to = $1)"}
	args := []interface{}{userID}
	paramIdx := 2

	if courseID > 0 {
		where = append(where, fmt.Sprintf("course_id = $%d", paramIdx))
		args = append(args, courseID)
		paramIdx++
	}
	if status != "" {
		where = append(where, fmt.Sprintf("status = $%d", paramIdx))
		args = append(args, status)
		paramIdx++
	}
	clause := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE `+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM tasks WHERE %s
		 ORDER BY scheduled_date, day_index, id
		 LIMIT $%d OFFSET $%d`,
		taskColumns, clause, paramIdx, paramIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, total, rows.Err()
}

// SupersedePending retires open shared tasks of a course in favor of a new
// announcement. Tasks someone already started are left alone; the status
// filter is the guard.
func (s *Store) SupersedePending(courseID int64, supersededBy string) (int64, error) {
	result, err := s.db.Exec(
		`UPDATE tasks SET status = 'superseded', superseded_by = $2
		 WHERE course_id = $1
		   AND status = 'pending'
		   AND assigned_to IS NULL
		   AND source IN ('announcement', 'fallback')`,
		courseID, supersededBy,
	)
	if err != nil {
		return 0, fmt.Errorf("supersede tasks: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

// UpdateTaskContent fills in the generated study material.
func (s *Store) UpdateTaskContent(taskID int64, title, content string, durationHours int) error {
	_, err := s.db.Exec(
		`UPDATE tasks SET title = $2, content = $3, duration_hours = $4 WHERE id = $1`,
		taskID, title, content, durationHours,
	)
	return err
}

// ListCoveredTopics returns the course topics that already had a scheduled
// study day, ordered oldest coverage first.
func (s *Store) ListCoveredTopics(courseID int64, until time.Time) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT topic FROM tasks
		 WHERE course_id = $1 AND is_revision = FALSE AND scheduled_date <= $2
		 GROUP BY topic
		 ORDER BY MIN(scheduled_date), MIN(id)`,
		courseID, until,
	)
	if err != nil {
		return nil, fmt.Errorf("list covered topics: %w", err)
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var topic string
		if err := rows.Scan(&topic); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}
