package generator

import (
	"context"
	"fmt"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

// Arbiter rules on disputed downvotes. It never decides on its own: the
// ruling comes from the model response or not at all.
type Arbiter struct {
	llm LLMClient
}

// ArbitrationResult pairs the verdict with the token usage of the call.
type ArbitrationResult struct {
	Verdict      models.ArbitrationVerdict
	PromptTokens int
	OutputTokens int
}

func NewArbiter(llm LLMClient) *Arbiter {
	return &Arbiter{llm: llm}
}

// DisputeMaterial is everything the arbiter sees. Both sides' statements
// travel verbatim; the service layer adds nothing of its own.
type DisputeMaterial struct {
	TaskTitle         string
	TaskContent       string
	TheoryAnswer      string
	DownvoteReason    string
	RevieweeStatement string
}

// Arbitrate submits a dispute and returns the parsed verdict. A malformed
// response is an error, and the dispute stays unresolved.
func (a *Arbiter) Arbitrate(ctx context.Context, material DisputeMaterial) (*ArbitrationResult, error) {
	resp, err := a.llm.Generate(ctx, arbitrationSystemPrompt, BuildArbitrationPrompt(material))
	if err != nil {
		return nil, fmt.Errorf("arbitration call: %w", err)
	}

	verdict, err := ParseVerdict(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parse arbitration response: %w", err)
	}

	return &ArbitrationResult{
		Verdict:      *verdict,
		PromptTokens: resp.PromptTokens,
		OutputTokens: resp.OutputTokens,
	}, nil
}
