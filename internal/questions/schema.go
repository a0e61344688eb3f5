package questions

// questionSchema describes a single question entry of a bank file.
var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":         map[string]any{"type": "string", "minLength": 1},
		"domain":     map[string]any{"type": "string"},
		"difficulty": map[string]any{"type": "string"},
		"visuals": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"type":        map[string]any{"type": "string"},
				"svg_content": map[string]any{"type": "string"},
			},
		},
		"question": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question":  map[string]any{"type": "string", "minLength": 1},
				"paragraph": map[string]any{"type": "string"},
				"choices": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"A": map[string]any{"type": "string"},
						"B": map[string]any{"type": "string"},
						"C": map[string]any{"type": "string"},
						"D": map[string]any{"type": "string"},
					},
					"required":             []any{"A", "B", "C", "D"},
					"additionalProperties": false,
				},
				"correct_answer": map[string]any{
					"type": "string",
					"enum": []any{"A", "B", "C", "D"},
				},
				"explanation": map[string]any{"type": "string"},
			},
			"required": []any{"question", "choices", "correct_answer"},
		},
	},
	"required": []any{"id", "question"},
}

// bankSchema is the JSON schema every bank file must satisfy.
var bankSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"math":    map[string]any{"type": "array", "items": questionSchema},
		"english": map[string]any{"type": "array", "items": questionSchema},
	},
	"additionalProperties": false,
}
