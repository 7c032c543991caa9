package review

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/apperr"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/economy"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/generator"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/reputation"
)

type Service struct {
	store      *Store
	arbiter    *generator.Arbiter
	ledger     *economy.Store
	reputation *reputation.Service
	now        func() time.Time
}

func NewService(store *Store, arbiter *generator.Arbiter, ledger *economy.Store, reputation *reputation.Service) *Service {
	return &Service{
		store:      store,
		arbiter:    arbiter,
		ledger:     ledger,
		reputation: reputation,
		now:        time.Now,
	}
}

// Cast places a vote on a completed task. The wager is deducted up front
// and never comes back; it is the price of having an opinion. Upvotes
// settle on the spot, downvotes open a response window for the reviewee.
func (s *Service) Cast(userID int64, req models.CastReviewRequest) (*models.PeerReview, error) {
	if !models.ValidReviewTypes[req.Type] {
		return nil, apperr.Validationf("invalid review type %q", req.Type)
	}
	if req.Wager < 1 {
		return nil, apperr.Validationf("wager must be at least 1")
	}
	reason := strings.TrimSpace(req.Reason)
	if req.Type == models.ReviewDownvote && reason == "" {
		return nil, apperr.Validationf("a downvote needs a reason")
	}

	task, err := s.store.GetTask(req.TaskID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskCompleted {
		return nil, apperr.Conflictf("task %d is not completed", req.TaskID)
	}

	submission, err := s.store.LatestSubmission(req.TaskID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, apperr.Conflictf("task %d has no submitted work to review", req.TaskID)
	}
	if submission.UserID == userID {
		return nil, apperr.Conflictf("cannot review your own submission")
	}

	rev := &models.PeerReview{
		TaskID:        req.TaskID,
		ReviewerID:    userID,
		RevieweeID:    submission.UserID,
		Type:          req.Type,
		Wager:         req.Wager,
		Reason:        reason,
		DisputeStatus: models.DisputeNone,
	}
	if err := s.store.CreateReview(rev); err != nil {
		return nil, err
	}

	if _, err := s.ledger.Debit(userID, models.EntryReviewWager, req.Wager,
		fmt.Sprintf("review:%d", rev.ID),
		fmt.Sprintf("wager on %s of task %d", req.Type, req.TaskID)); err != nil {
		if delErr := s.store.DeleteReview(rev.ID); delErr != nil {
			log.Printf("[review] WARN: failed to remove unfunded review %d: %v", rev.ID, delErr)
		}
		return nil, err
	}

	switch req.Type {
	case models.ReviewUpvote:
		s.settleUpvote(rev, task)
	case models.ReviewDownvote:
		if !rev.DisputeStatus.CanTransition(models.DisputePendingResponse) {
			return nil, apperr.Conflictf("review %d cannot open a dispute", rev.ID)
		}
		if _, err := s.store.OpenDispute(rev.ID); err != nil {
			return nil, err
		}
	}

	return s.store.GetReview(rev.ID)
}

// Respond is the reviewee's one move against a downvote: concede it or
// contest it. A contested downvote goes straight to arbitration; if the
// arbiter call fails the review stays in ai_reviewing and a later respond
// call retries the arbitration with the recorded statement.
func (s *Service) Respond(ctx context.Context, userID, reviewID int64, req models.RespondReviewRequest) (*models.PeerReview, error) {
	rev, err := s.store.GetReview(reviewID)
	if err != nil {
		return nil, err
	}
	if rev.RevieweeID != userID {
		return nil, apperr.NotFoundf("review %d", reviewID)
	}

	task, err := s.store.GetTask(rev.TaskID)
	if err != nil {
		return nil, err
	}

	switch rev.DisputeStatus {
	case models.DisputePendingResponse:
		if req.Agree {
			moved, err := s.store.RespondAgree(reviewID, s.now().UTC())
			if err != nil {
				return nil, err
			}
			if !moved {
				return nil, apperr.Conflictf("review %d is not awaiting a response", reviewID)
			}
			s.settleDownvoterWins(rev, task)
			return s.store.GetReview(reviewID)
		}

		statement := strings.TrimSpace(req.Statement)
		if statement == "" {
			return nil, apperr.Validationf("a dispute needs a statement")
		}
		moved, err := s.store.RespondDispute(reviewID, statement)
		if err != nil {
			return nil, err
		}
		if !moved {
			return nil, apperr.Conflictf("review %d is not awaiting a response", reviewID)
		}
		if _, err := s.store.MarkAIReviewing(reviewID); err != nil {
			return nil, err
		}
		return s.arbitrate(ctx, rev, task, statement)

	case models.DisputeAIReviewing:
		// A previous arbitration call failed partway. The recorded
		// statement stands; agreeing is no longer on the table.
		if req.Agree {
			return nil, apperr.Conflictf("review %d is already under arbitration", reviewID)
		}
		statement := ""
		if rev.RevieweeStatement != nil {
			statement = *rev.RevieweeStatement
		}
		return s.arbitrate(ctx, rev, task, statement)

	default:
		return nil, apperr.Conflictf("review %d is not awaiting a response", reviewID)
	}
}

func (s *Service) arbitrate(ctx context.Context, rev *models.PeerReview, task *models.Task, statement string) (*models.PeerReview, error) {
	submission, err := s.store.LatestSubmission(rev.TaskID)
	if err != nil {
		return nil, err
	}
	theoryAnswer := ""
	if submission != nil && submission.TheoryAnswer != nil {
		theoryAnswer = *submission.TheoryAnswer
	}

	result, err := s.arbiter.Arbitrate(ctx, generator.DisputeMaterial{
		TaskTitle:         task.Title,
		TaskContent:       task.Content,
		TheoryAnswer:      theoryAnswer,
		DownvoteReason:    rev.Reason,
		RevieweeStatement: statement,
	})
	if err != nil {
		return nil, err
	}

	verdict := result.Verdict
	outcome := models.DisputeRevieweeWins
	if verdict.Decision == models.DecisionDownvoterCorrect {
		outcome = models.DisputeDownvoterWins
	}

	saved, err := s.store.SaveVerdict(rev.ID, verdict, outcome, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, apperr.Conflictf("review %d is no longer under arbitration", rev.ID)
	}

	if outcome == models.DisputeDownvoterWins {
		s.settleDownvoterWins(rev, task)
	} else {
		s.settleRevieweeWins(rev, task)
	}

	return s.store.GetReview(rev.ID)
}

// GetReview returns a review to its participants only.
func (s *Service) GetReview(userID, reviewID int64) (*models.PeerReview, error) {
	rev, err := s.store.GetReview(reviewID)
	if err != nil {
		return nil, err
	}
	if rev.ReviewerID != userID && rev.RevieweeID != userID {
		return nil, apperr.NotFoundf("review %d", reviewID)
	}
	return rev, nil
}

// ── Settlement ──────────────────────────────────────────

// settleUpvote credits nothing and charges nothing beyond the wager; its
// whole effect is the reviewee's reputation bump.
func (s *Service) settleUpvote(rev *models.PeerReview, task *models.Task) {
	settled, err := s.store.SettleReview(rev.ID, s.now().UTC())
	if err != nil {
		log.Printf("[review] WARN: failed to settle review %d: %v", rev.ID, err)
		return
	}
	if !settled {
		return
	}
	if err := s.reputation.BumpStats(rev.RevieweeID, task.CourseID, reputation.StatDelta{Upvotes: 1}); err != nil {
		log.Printf("[review] WARN: failed to bump stats for user %d: %v", rev.RevieweeID, err)
	}
	if err := s.reputation.RecomputeCourse(rev.RevieweeID, task.CourseID); err != nil {
		log.Printf("[review] WARN: failed to recompute reputation for user %d: %v", rev.RevieweeID, err)
	}
}

// settleDownvoterWins charges the reviewee the task's stake, clamped at
// their balance, and pays the downvoter double the wager.
func (s *Service) settleDownvoterWins(rev *models.PeerReview, task *models.Task) {
	settled, err := s.store.SettleReview(rev.ID, s.now().UTC())
	if err != nil {
		log.Printf("[review] WARN: failed to settle review %d: %v", rev.ID, err)
		return
	}
	if !settled {
		return
	}

	entry, err := s.ledger.Penalize(rev.RevieweeID, models.EntryReviewPenalty, task.TokenStake,
		fmt.Sprintf("review:%d", rev.ID),
		fmt.Sprintf("downvote upheld on task %d", rev.TaskID))
	if err != nil {
		log.Printf("[review] WARN: failed to charge reviewee %d for review %d: %v", rev.RevieweeID, rev.ID, err)
	} else if lost := -entry.Amount; lost > 0 {
		if err := s.ledger.AddTokenLoss(rev.RevieweeID, lost); err != nil {
			log.Printf("[review] WARN: failed to record token loss for user %d: %v", rev.RevieweeID, err)
		}
	}

	if _, err := s.ledger.Credit(rev.ReviewerID, models.EntryReviewPayout, 2*rev.Wager,
		fmt.Sprintf("review:%d", rev.ID),
		fmt.Sprintf("downvote payout on task %d", rev.TaskID)); err != nil {
		log.Printf("[review] WARN: failed to pay reviewer %d for review %d: %v", rev.ReviewerID, rev.ID, err)
	}

	if err := s.reputation.BumpStats(rev.RevieweeID, task.CourseID, reputation.StatDelta{DownvotesLost: 1}); err != nil {
		log.Printf("[review] WARN: failed to bump stats for user %d: %v", rev.RevieweeID, err)
	}
	if err := s.reputation.RecomputeCourse(rev.RevieweeID, task.CourseID); err != nil {
		log.Printf("[review] WARN: failed to recompute reputation for user %d: %v", rev.RevieweeID, err)
	}
}

// settleRevieweeWins moves no tokens. The downvoter's wager is already
// spent and the reviewee's defense only shows up in their counters.
func (s *Service) settleRevieweeWins(rev *models.PeerReview, task *models.Task) {
	settled, err := s.store.SettleReview(rev.ID, s.now().UTC())
	if err != nil {
		log.Printf("[review] WARN: failed to settle review %d: %v", rev.ID, err)
		return
	}
	if !settled {
		return
	}
	if err := s.reputation.BumpStats(rev.RevieweeID, task.CourseID, reputation.StatDelta{DownvotesDefended: 1}); err != nil {
		log.Printf("[review] WARN: failed to bump stats for user %d: %v", rev.RevieweeID, err)
	}
	if err := s.reputation.RecomputeCourse(rev.RevieweeID, task.CourseID); err != nil {
		log.Printf("[review] WARN: failed to recompute reputation for user %d: %v", rev.RevieweeID, err)
	}
}
