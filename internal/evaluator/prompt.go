package evaluator

import "fmt"

// ComparisonPolicy is sent unchanged with every comparison request.
const ComparisonPolicy = `You grade quiz answers by comparing the user's answer with the correct answer for the given question.

Rules:
- If the user's answer is a close variation of the correct answer (for example a partial name such as "Donald" instead of "Donald Vergil"), give partial credit.
- If the correct answer is a specific number or date (for example "1256") and the user's answer is different (for example "1257"), give no points at all.
- Be strict when evaluating factual or numeric answers.
- Never award more than the maximum score you are given.

Reply with JSON only:
{"description": "<one or two sentences explaining the comparison>", "score": <integer>}
`

func BuildComparisonPrompt(req ComparisonRequest) string {
	return fmt.Sprintf(
		"The question is: %s\nCorrect answer: %s\nUser's answer: %s\n"+
			"Compare the correct answer with the user's answer for the given question and score it out of %d.",
		req.Question, req.CorrectAnswer, req.UserAnswer, req.ScoreLimit,
	)
}
