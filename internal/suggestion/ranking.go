package suggestion

import (
	"sort"
	"strings"

	"github.com/equitask/equitask-api/internal/domain"
)

// MaxAssignableHours is the ceiling on workload plus the new task's hours.
// It is deliberately independent of each employee's configured capacity.
const MaxAssignableHours = 40

// Rank drops candidates that would exceed MaxAssignableHours and orders the
// rest by workload ascending, skill matches descending, then name.
func Rank(candidates []Candidate, estimatedHours float64) []Candidate {
	ranked := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.CurrentWorkload+estimatedHours > MaxAssignableHours {
			continue
		}
		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.CurrentWorkload != b.CurrentWorkload {
			return a.CurrentWorkload < b.CurrentWorkload
		}
		if a.SkillMatchCount != b.SkillMatchCount {
			return a.SkillMatchCount > b.SkillMatchCount
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	return ranked
}

// Suggest scores every employee in users against activeTasks and ranks them.
// Leads are never suggested.
func Suggest(users []domain.User, activeTasks []domain.Task, req Request) []Candidate {
	load := AggregateWorkload(activeTasks)
	hours := sanitizeHours(req.EstimatedHours)

	candidates := make([]Candidate, 0, len(users))
	for i := range users {
		if users[i].Role != domain.UserRoleEmployee {
			continue
		}
		candidates = append(candidates, Score(&users[i], load, req.RequiredSkills))
	}
	return Rank(candidates, hours)
}
