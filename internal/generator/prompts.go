package generator

import (
	"fmt"
	"strings"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

// ── Task generation ─────────────────────────────────────────

const taskSystemPrompt = `You are a study task author for a university focus app. You write one self-contained task per request: a concrete block of work a student can finish in a single sitting of one to four hours. Be specific about WHAT to do with the topic at hand, never generic study advice. Respond with JSON only.`

var passInstructions = map[int]string{
	1: "FIRST PASS: the student is seeing this topic for the first time. Build the task around reading, worked examples and note-taking. Target understanding, not speed.",
	2: "SECOND PASS: the student has covered the basics. Build the task around solving problems and reconstructing key results without notes.",
	3: "THIRD PASS: the exam is close. Build the task around timed drills, past-paper style questions and weak-spot repair.",
}

// BuildTaskPrompt assembles the user prompt for one scheduled study slot.
func BuildTaskPrompt(course models.Course, topic string, difficulty models.Difficulty, passNumber int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("COURSE: %s (%s)\n", course.Name, course.Code))
	sb.WriteString(fmt.Sprintf("TOPIC: %s\n", topic))
	sb.WriteString(fmt.Sprintf("DIFFICULTY: %s\n\n", difficulty))

	if instruction, ok := passInstructions[passNumber]; ok {
		sb.WriteString(instruction)
		sb.WriteString("\n\n")
	}

	sb.WriteString(`Write ONE task. Respond with JSON only:
{
  "title": "Short imperative title",
  "content": "Step-by-step instructions for the sitting...",
  "duration_hours": 2
}

duration_hours must be an integer between 1 and 4.`)

	return sb.String()
}

// ── Quiz generation ─────────────────────────────────────────

const quizSystemPrompt = `You are a quiz author for a university focus app. You write six multiple-choice questions that test whether a student actually did a given study task. Questions must be answerable from the task's subject matter alone, each with exactly four options and exactly one correct option. Respond with JSON only.`

// BuildQuizPrompt assembles the user prompt for a task's completion quiz.
func BuildQuizPrompt(task models.Task) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("TOPIC: %s\n", task.Topic))
	sb.WriteString(fmt.Sprintf("DIFFICULTY: %s\n\n", task.Difficulty))
	sb.WriteString("TASK THE STUDENT CLAIMS TO HAVE DONE:\n")
	sb.WriteString(task.Title)
	sb.WriteString("\n")
	sb.WriteString(task.Content)
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf(`Write exactly %d questions. Respond with JSON only:
{
  "questions": [
    {
      "prompt": "The question text...",
      "options": ["first option", "second option", "third option", "fourth option"],
      "correct_index": 0
    }
  ]
}

RULES:
- exactly %d questions
- exactly %d options per question
- correct_index is 0-based and points at the single correct option
- wrong options must be plausible to someone who skipped the task
- vary correct_index across the set`,
		models.MCQQuestionCount, models.MCQQuestionCount, models.MCQOptionCount))

	return sb.String()
}

// ── Dispute arbitration ─────────────────────────────────────

const arbitrationSystemPrompt = `You are the arbiter for disputed peer reviews in a university focus app. A reviewer downvoted a submission and staked tokens on it; the submitter disputes the downvote. Judge ONLY whether the downvote's stated reason holds against the submission, not whether the submission is perfect. Respond with JSON only.`

// BuildArbitrationPrompt lays out both sides of a dispute for the arbiter.
func BuildArbitrationPrompt(material DisputeMaterial) string {
	var sb strings.Builder

	sb.WriteString("TASK:\n")
	sb.WriteString(material.TaskTitle)
	sb.WriteString("\n")
	sb.WriteString(material.TaskContent)
	sb.WriteString("\n\nSUBMISSION UNDER REVIEW:\n")
	sb.WriteString(material.TheoryAnswer)
	sb.WriteString("\n\nDOWNVOTE REASON:\n")
	sb.WriteString(material.DownvoteReason)
	sb.WriteString("\n\nSUBMITTER'S DEFENSE:\n")
	sb.WriteString(material.RevieweeStatement)
	sb.WriteString("\n\n")

	sb.WriteString(`Rule on the dispute. Respond with JSON only:
{
  "decision": "downvoter_correct",
  "confidence": "high",
  "reasoning": "Why the evidence supports this ruling..."
}

decision must be one of: "downvoter_correct", "reviewee_correct"
confidence must be one of: "high", "medium", "low"`)

	return sb.String()
}
