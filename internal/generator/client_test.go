package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

type stubLLM struct {
	content    string
	err        error
	calls      int
	lastSystem string
}

func (s *stubLLM) Generate(ctx context.Context, systemPrompt, userPrompt string) (*LLMResponse, error) {
	s.calls++
	s.lastSystem = systemPrompt
	if s.err != nil {
		return nil, s.err
	}
	return &LLMResponse{Content: s.content, PromptTokens: 10, OutputTokens: 20}, nil
}

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"http 429", errors.New("unexpected status 429 Too Many Requests"), true},
		{"rate limit type", errors.New(`{"type":"rate_limit_error"}`), true},
		{"quota message", errors.New("monthly quota exceeded"), true},
		{"overloaded", errors.New(`{"type":"overloaded_error"}`), true},
		{"credit exhaustion", errors.New("insufficient credit balance"), true},
		{"auth failure", errors.New("invalid x-api-key"), false},
		{"timeout", errors.New("context deadline exceeded"), false},
		{"bad request", errors.New("400 invalid_request_error"), false},
	}
	for _, tt := range tests {
		if got := isQuotaError(tt.err); got != tt.want {
			t.Errorf("%s: isQuotaError = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMockClient_ShapesRoundTrip(t *testing.T) {
	mock := NewMockClient()
	ctx := context.Background()

	taskResp, err := mock.Generate(ctx, taskSystemPrompt, "any")
	if err != nil {
		t.Fatalf("mock task generate: %v", err)
	}
	if _, err := ParseTaskContent(taskResp.Content); err != nil {
		t.Errorf("mock task content does not parse: %v", err)
	}

	quizResp, err := mock.Generate(ctx, quizSystemPrompt, "any")
	if err != nil {
		t.Fatalf("mock quiz generate: %v", err)
	}
	questions, err := ParseQuizBatch(quizResp.Content)
	if err != nil {
		t.Fatalf("mock quiz content does not parse: %v", err)
	}
	if len(questions) != models.MCQQuestionCount {
		t.Errorf("mock quiz has %d questions, want %d", len(questions), models.MCQQuestionCount)
	}

	verdictResp, err := mock.Generate(ctx, arbitrationSystemPrompt, "any")
	if err != nil {
		t.Fatalf("mock verdict generate: %v", err)
	}
	if _, err := ParseVerdict(verdictResp.Content); err != nil {
		t.Errorf("mock verdict does not parse: %v", err)
	}
}

func TestGenerator_GenerateQuiz(t *testing.T) {
	stub := &stubLLM{content: validQuizJSON()}
	gen := NewGenerator(stub)

	questions, err := gen.GenerateQuiz(context.Background(), models.Task{Topic: "relations", Difficulty: models.DifficultyMedium})
	if err != nil {
		t.Fatalf("GenerateQuiz: %v", err)
	}
	if len(questions) != models.MCQQuestionCount {
		t.Errorf("got %d questions, want %d", len(questions), models.MCQQuestionCount)
	}
	if stub.lastSystem != quizSystemPrompt {
		t.Errorf("quiz generation used wrong system prompt")
	}
}

func TestGenerator_GenerateTask_BadResponse(t *testing.T) {
	stub := &stubLLM{content: "not json"}
	gen := NewGenerator(stub)

	_, err := gen.GenerateTask(context.Background(), models.Course{Code: "MA201", Name: "Discrete Maths"}, "lattices", models.DifficultyEasy, 1)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "parse task response") {
		t.Errorf("error %q does not mention parse task response", err)
	}
}

func TestArbiter_Arbitrate(t *testing.T) {
	stub := &stubLLM{content: `{"decision":"downvoter_correct","confidence":"low","reasoning":"submission is off topic"}`}
	arbiter := NewArbiter(stub)

	result, err := arbiter.Arbitrate(context.Background(), DisputeMaterial{
		TaskTitle:      "Prove the handshake lemma",
		DownvoteReason: "no proof given",
	})
	if err != nil {
		t.Fatalf("Arbitrate: %v", err)
	}
	if result.Verdict.Decision != models.DecisionDownvoterCorrect {
		t.Errorf("decision = %q, want %q", result.Verdict.Decision, models.DecisionDownvoterCorrect)
	}
}

func TestArbiter_MalformedVerdict(t *testing.T) {
	stub := &stubLLM{content: `{"decision":"both_wrong","confidence":"high","reasoning":"r"}`}
	arbiter := NewArbiter(stub)

	if _, err := arbiter.Arbitrate(context.Background(), DisputeMaterial{}); err == nil {
		t.Fatal("expected error for malformed verdict")
	}
}

func TestArbiter_CallFailure(t *testing.T) {
	stub := &stubLLM{err: errors.New("boom")}
	arbiter := NewArbiter(stub)

	_, err := arbiter.Arbitrate(context.Background(), DisputeMaterial{})
	if err == nil || !strings.Contains(err.Error(), "arbitration call") {
		t.Errorf("error = %v, want wrapped arbitration call failure", err)
	}
}
