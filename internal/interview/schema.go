package interview

import "github.com/abhisek/interviewq/internal/llm"

// QuestionListSchema is the shape checked in strict mode.
var QuestionListSchema = &llm.Schema{
	Name:        "interview-questions",
	Description: "A list of interview questions with sample answers",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"minLength":   1,
					"description": "The interview question",
				},
				"answer": map[string]any{
					"type":        "string",
					"description": "A concise sample answer",
				},
				"difficulty": map[string]any{
					"type": "string",
					"enum": []any{
						string(DifficultyEasy),
						string(DifficultyMedium),
						string(DifficultyHard),
					},
				},
				"followUp": map[string]any{
					"type":        "string",
					"description": "A follow-up question the interviewer could ask",
				},
			},
			"required": []any{"question", "answer", "difficulty", "followUp"},
		},
	},
}
