package aiquiz

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert quiz generator. You write quiz questions that test the substantive content of the documents you are given.

Rules:
1. Ask only about the subject matter of the documents. Never ask about metadata such as authors, titles, page numbers, file names, dates of publication or document structure.
2. Produce exactly the number of questions requested, spread as evenly as possible across three kinds: classic questions, multiple-choice questions and fill-in-the-blank questions. When the count does not divide evenly, the extra questions go to the later kinds (for example 13 questions are 4 classic, 4 multiple-choice and 5 fill-in-the-blank).
3. Vary the difficulty of the questions.
4. Write every question and answer in English.
5. Every multiple-choice question has exactly 5 choices and exactly one of them is the correct answer. The correct_answer field repeats the text of the correct choice.
6. Fill-in-the-blank questions mark the blank with "____" and their correct_answer is the missing text.
7. Keep correct answers short and unambiguous.

Reply with JSON only, following this shape:
{
  "classic_questions": [{"question_text": "...", "correct_answer": "..."}],
  "multiple_choice_questions": [{"question_text": "...", "choices": ["...", "...", "...", "...", "..."], "correct_answer": "..."}],
  "fill_in_the_blank": [{"question_text": "...", "correct_answer": "..."}]
}
`

// Distribution splits count across classic, multiple-choice and
// fill-in-the-blank questions. The remainder goes to the later kinds.
func Distribution(count int) [3]int {
	var out [3]int
	if count <= 0 {
		return out
	}
	base, rem := count/3, count%3
	for i := range out {
		out[i] = base
		if i >= 3-rem {
			out[i]++
		}
	}
	return out
}

func BuildUserPrompt(count int, corrections []string) string {
	d := Distribution(count)

	var b strings.Builder
	fmt.Fprintf(&b,
		"Generate exactly %d questions from the documents above: %d classic questions, %d multiple-choice questions and %d fill-in-the-blank questions.",
		count, d[0], d[1], d[2],
	)

	if len(corrections) > 0 {
		b.WriteString("\n\nYour previous answers were rejected:")
		for i, c := range corrections {
			fmt.Fprintf(&b, "\n%d. %s", i+1, c)
		}
		fmt.Fprintf(&b, "\nGenerate the quiz again and make sure it contains exactly %d questions in total.", count)
	}
	return b.String()
}
