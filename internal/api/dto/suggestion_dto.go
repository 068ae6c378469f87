package dto

// SuggestRequest payload for POST /tasks/suggest. Both fields are optional.
type SuggestRequest struct {
	RequiredSkills []string `json:"requiredSkills"`
	EstimatedHours *float64 `json:"estimatedHours" validate:"omitempty,gte=0"`
}
