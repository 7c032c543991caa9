package models

import "time"

type ReviewType string

const (
	ReviewUpvote   ReviewType = "upvote"
	ReviewDownvote ReviewType = "downvote"
)

var ValidReviewTypes = map[ReviewType]bool{
	ReviewUpvote:   true,
	ReviewDownvote: true,
}

type DisputeStatus string

const (
	DisputeNone            DisputeStatus = "none"
	DisputePendingResponse DisputeStatus = "pending_response"
	DisputeAgreed          DisputeStatus = "agreed"
	DisputeDisputed        DisputeStatus = "disputed"
	DisputeAIReviewing     DisputeStatus = "ai_reviewing"
	DisputeDownvoterWins   DisputeStatus = "resolved_downvoter_wins"
	DisputeRevieweeWins    DisputeStatus = "resolved_reviewee_wins"
)

// disputeTransitions covers the downvote dispute flow. Upvotes never leave
// none. Terminal states have no successors.
var disputeTransitions = map[DisputeStatus]map[DisputeStatus]bool{
	DisputeNone: {
		DisputePendingResponse: true,
	},
	DisputePendingResponse: {
		DisputeAgreed:   true,
		DisputeDisputed: true,
	},
	DisputeDisputed: {
		DisputeAIReviewing: true,
	},
	DisputeAIReviewing: {
		DisputeDownvoterWins: true,
		DisputeRevieweeWins:  true,
	},
	DisputeAgreed:        {},
	DisputeDownvoterWins: {},
	DisputeRevieweeWins:  {},
}

func (s DisputeStatus) CanTransition(next DisputeStatus) bool {
	return disputeTransitions[s][next]
}

type ArbitrationDecision string

const (
	DecisionDownvoterCorrect ArbitrationDecision = "downvoter_correct"
	DecisionRevieweeCorrect  ArbitrationDecision = "reviewee_correct"
)

var ValidArbitrationDecisions = map[ArbitrationDecision]bool{
	DecisionDownvoterCorrect: true,
	DecisionRevieweeCorrect:  true,
}

// ArbitrationVerdict is the structured judgment returned by the external
// arbiter on a disputed downvote. The resolver never fabricates one.
type ArbitrationVerdict struct {
	Decision   ArbitrationDecision `json:"decision"`
	Confidence string              `json:"confidence"`
	Reasoning  string              `json:"reasoning"`
}

// PeerReview is one reviewer's vote on a completed task submission. Upvotes
// never enter the dispute flow; their DisputeStatus stays none.
type PeerReview struct {
	ID                int64               `json:"id"`
	TaskID            int64               `json:"task_id"`
	ReviewerID        int64               `json:"reviewer_id"`
	RevieweeID        int64               `json:"reviewee_id"`
	Type              ReviewType          `json:"type"`
	Wager             int                 `json:"wager"`
	Reason            string              `json:"reason"`
	DisputeStatus     DisputeStatus       `json:"dispute_status"`
	RevieweeStatement *string             `json:"reviewee_statement,omitempty"`
	Verdict           *ArbitrationVerdict `json:"verdict,omitempty"`
	Settled           bool                `json:"settled"`
	CreatedAt         time.Time           `json:"created_at"`
	ResolvedAt        *time.Time          `json:"resolved_at,omitempty"`
}

type CastReviewRequest struct {
	TaskID int64      `json:"task_id"`
	Type   ReviewType `json:"type"`
	Wager  int        `json:"wager"`
	Reason string     `json:"reason"`
}

type RespondReviewRequest struct {
	Agree     bool   `json:"agree"`
	Statement string `json:"statement"`
}
