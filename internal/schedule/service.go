package schedule

import (
	"context"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/apperr"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/economy"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/generator"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

// fallbackPlanDays is the length of the maintenance plan a course without an
// upcoming event gets each week.
const fallbackPlanDays = 7

type Service struct {
	store *Store
	gen   *generator.Generator
	rng   *rand.Rand
	now   func() time.Time
}

func NewService(store *Store, gen *generator.Generator) *Service {
	return &Service{
		store: store,
		gen:   gen,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

// ── Announcements & Plans ───────────────────────────────

// CreateAnnouncement validates the event, retires the course's open shared
// tasks, and lays out a priced three-pass study plan. Task content is filled
// in by the generator in the background; the plan itself returns immediately.
func (s *Service) CreateAnnouncement(req models.CreateAnnouncementRequest) (*models.PlanResponse, error) {
	course, err := s.store.GetCourse(req.CourseID)
	if err != nil {
		return nil, err
	}
	if !models.ValidEventTypes[req.EventType] {
		return nil, apperr.Validationf("invalid event type %q", req.EventType)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperr.Validationf("title is required")
	}

	topics := make([]string, 0, len(req.Topics))
	for _, t := range req.Topics {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	if len(topics) == 0 {
		return nil, apperr.Validationf("at least one topic is required")
	}

	now := s.now()
	if !req.EventDate.After(now) {
		return nil, apperr.Validationf("event date must be in the future")
	}

	ann := &models.Announcement{
		ID:        uuid.NewString(),
		CourseID:  course.ID,
		EventType: req.EventType,
		Title:     strings.TrimSpace(req.Title),
		Topics:    topics,
		EventDate: req.EventDate,
	}
	if err := s.store.CreateAnnouncement(ann); err != nil {
		return nil, err
	}

	superseded, err := s.store.SupersedePending(course.ID, ann.ID)
	if err != nil {
		return nil, err
	}

	plan := BuildSchedule(topics, now, req.EventDate)

	tasks := make([]models.Task, 0, len(plan.Slots))
	for _, slot := range plan.Slots {
		difficulty := PassDifficulty(slot.PassNumber)
		stake, _ := economy.PriceTask(difficulty, course.CreditWeight, now, req.EventDate)

		task := models.Task{
			AnnouncementID: &ann.ID,
			CourseID:       course.ID,
			Topic:          slot.Topic,
			Title:          slot.Topic,
			Difficulty:     difficulty,
			TokenStake:     stake,
			TokenReward:    stake,
			DurationHours:  2,
			ScheduledDate:  slot.Date,
			Deadline:       req.EventDate,
			PassNumber:     slot.PassNumber,
			DayIndex:       slot.DayIndex,
			IsRevision:     slot.PassNumber > 1,
			Status:         models.TaskPending,
			Source:         models.SourceAnnouncement,
		}
		if err := s.store.CreateTask(&task); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	go s.fillTaskContent(context.Background(), *course, tasks)

	log.Printf("[schedule] announcement %s: %d tasks over %d days, %d superseded",
		ann.ID, len(tasks), plan.TotalDays, superseded)

	return &models.PlanResponse{
		Announcement: *ann,
		TotalDays:    plan.TotalDays,
		PassDays:     plan.PassDays,
		Tasks:        tasks,
		Superseded:   int(superseded),
	}, nil
}

// fillTaskContent asks the generator for study material, one task at a time.
// A failure leaves the topic placeholder in place; the task is already
// priced and scheduled.
func (s *Service) fillTaskContent(ctx context.Context, course models.Course, tasks []models.Task) {
	for _, task := range tasks {
		gen, err := s.gen.GenerateTask(ctx, course, task.Topic, task.Difficulty, task.PassNumber)
		if err != nil {
			log.Printf("[schedule] WARN: failed to generate content for task %d: %v", task.ID, err)
			continue
		}
		if err := s.store.UpdateTaskContent(task.ID, gen.Title, gen.Content, gen.DurationHours); err != nil {
			log.Printf("[schedule] WARN: failed to save content for task %d: %v", task.ID, err)
		}
	}
}

// ── Task Reads ──────────────────────────────────────────

// GetTaskForUser returns the task if the user may see it. Personal tasks of
// other users read as missing.
func (s *Service) GetTaskForUser(userID, taskID int64) (*models.Task, error) {
	task, err := s.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.AssignedTo != nil && *task.AssignedTo != userID {
		return nil, apperr.NotFoundf("task %d", taskID)
	}
	return task, nil
}

func (s *Service) ListTasks(userID, courseID int64, status models.TaskStatus, limit, offset int) (*models.TaskListResponse, error) {
	if status != "" && !models.ValidTaskStatuses[status] {
		return nil, apperr.Validationf("invalid status %q", status)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	tasks, total, err := s.store.ListTasks(userID, courseID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	return &models.TaskListResponse{Tasks: tasks, Total: total}, nil
}

// ── Weekly Jobs ─────────────────────────────────────────

// RunWeeklyFallback lays a light one-week maintenance plan over every course
// with no upcoming event, so enrolled users always have something staked.
func (s *Service) RunWeeklyFallback(ctx context.Context) (int, error) {
	now := s.now()
	courses, err := s.store.ListCoursesWithoutActiveAnnouncements(now)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, course := range courses {
		if len(course.Topics) == 0 {
			continue
		}
		stake := economy.PriceTaskNoUrgency(models.DifficultyMedium, course.CreditWeight)
		start := now.UTC().Truncate(24 * time.Hour)
		deadline := start.AddDate(0, 0, fallbackPlanDays)

		var tasks []models.Task
		for d := 0; d < fallbackPlanDays; d++ {
			topic := course.Topics[d%len(course.Topics)]
			task := models.Task{
				CourseID:      course.ID,
				Topic:         topic,
				Title:         topic,
				Difficulty:    models.DifficultyMedium,
				TokenStake:    stake,
				TokenReward:   stake,
				DurationHours: 2,
				ScheduledDate: start.AddDate(0, 0, d),
				Deadline:      deadline,
				PassNumber:    1,
				DayIndex:      d,
				Status:        models.TaskPending,
				Source:        models.SourceFallback,
			}
			if err := s.store.CreateTask(&task); err != nil {
				log.Printf("[schedule] WARN: failed to create fallback task for course %d: %v", course.ID, err)
				continue
			}
			tasks = append(tasks, task)
			created++
		}
		s.fillTaskContent(ctx, course, tasks)
	}

	if created > 0 {
		log.Printf("[schedule] fallback plan created %d tasks across %d idle courses", created, len(courses))
	}
	return created, nil
}

// RunWeeklyRevision rotates each user to their next enrolled course and
// builds a personal revision round from the topics that course has already
// covered, favoring recent material.
func (s *Service) RunWeeklyRevision(ctx context.Context) (int, error) {
	now := s.now()
	today := now.UTC().Truncate(24 * time.Hour)

	userIDs, err := s.store.ListUsersWithEnrollments()
	if err != nil {
		return 0, err
	}

	created := 0
	for _, userID := range userIDs {
		courses, err := s.store.ListUserCourses(userID)
		if err != nil {
			log.Printf("[schedule] WARN: failed to list courses for user %d: %v", userID, err)
			continue
		}
		if len(courses) == 0 {
			continue
		}

		idx, err := s.store.AdvanceRotation(userID, len(courses))
		if err != nil {
			log.Printf("[schedule] WARN: failed to advance rotation for user %d: %v", userID, err)
			continue
		}
		course := courses[idx]

		covered, err := s.store.ListCoveredTopics(course.ID, today)
		if err != nil {
			log.Printf("[schedule] WARN: failed to list covered topics for course %d: %v", course.ID, err)
			continue
		}
		if len(covered) == 0 {
			continue
		}

		picked := SelectRevisionTopics(covered, s.rng)
		stake := economy.PriceTaskNoUrgency(models.DifficultyMedium, course.CreditWeight)

		uid := userID
		var tasks []models.Task
		for i, topic := range picked {
			task := models.Task{
				CourseID:      course.ID,
				Topic:         topic,
				Title:         topic,
				Difficulty:    models.DifficultyMedium,
				TokenStake:    stake,
				TokenReward:   stake,
				DurationHours: 2,
				ScheduledDate: today,
				Deadline:      today.AddDate(0, 0, 7),
				PassNumber:    1,
				DayIndex:      i,
				IsRevision:    true,
				Status:        models.TaskPending,
				Source:        models.SourceSundayRevision,
				AssignedTo:    &uid,
			}
			if err := s.store.CreateTask(&task); err != nil {
				log.Printf("[schedule] WARN: failed to create revision task for user %d: %v", userID, err)
				continue
			}
			tasks = append(tasks, task)
			created++
		}
		s.fillTaskContent(ctx, course, tasks)
	}

	if created > 0 {
		log.Printf("[schedule] weekly revision created %d personal tasks", created)
	}
	return created, nil
}
