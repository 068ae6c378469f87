package suggestion

import "github.com/equitask/equitask-api/internal/domain"

// Request is the normalized input for a suggestion run.
type Request struct {
	RequiredSkills []string
	EstimatedHours float64
}

// Candidate is one scored employee.
type Candidate struct {
	UserID            string            `json:"user_id"`
	Name              string            `json:"name"`
	CurrentWorkload   float64           `json:"current_workload"`
	AvailableCapacity float64           `json:"available_capacity"`
	SkillMatchCount   int               `json:"skill_match_count"`
	Status            domain.UserStatus `json:"status"`
}

// Score builds the candidate record for user against the given workload.
func Score(user *domain.User, load Workload, requiredSkills []string) Candidate {
	current := load.Hours(user.ID)
	capacity := user.Capacity()

	status := user.Status
	if status == "" {
		status = domain.UserStatusBusy
		if current < capacity {
			status = domain.UserStatusAvailable
		}
	}

	return Candidate{
		UserID:            user.ID,
		Name:              user.Username,
		CurrentWorkload:   current,
		AvailableCapacity: capacity - current,
		SkillMatchCount:   skillMatches(user.Skills, requiredSkills),
		Status:            status,
	}
}

// skillMatches counts the employee's skills that appear in required.
// Repeating a skill in required does not raise the count.
func skillMatches(skills, required []string) int {
	if len(skills) == 0 || len(required) == 0 {
		return 0
	}
	wanted := make(map[string]struct{}, len(required))
	for _, s := range required {
		wanted[s] = struct{}{}
	}
	count := 0
	for _, s := range skills {
		if _, ok := wanted[s]; ok {
			count++
		}
	}
	return count
}
