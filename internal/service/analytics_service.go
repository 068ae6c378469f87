package service

import (
	"context"
	"sort"
	"time"

	"github.com/equitask/equitask-api/internal/domain"
	"github.com/equitask/equitask-api/internal/repository"
	apperrors "github.com/equitask/equitask-api/pkg/util/errorutil"
)

const topPerformerCount = 3

// AnalyticsService builds team reports.
type AnalyticsService struct {
	tasks repository.TaskRepository
	users repository.UserRepository
	now   func() time.Time
}

// WeeklyReport summarizes tasks created in the current week.
type WeeklyReport struct {
	TotalTasks            int
	CompletedTasks        int
	OverdueTasks          int
	AverageCompletionTime float64
	TeamUtilization       float64
	TopPerformers         []Performer
}

// Performer is one entry of the top performers board.
type Performer struct {
	Name           string
	CompletedTasks int
}

// NewAnalyticsService creates the service.
func NewAnalyticsService(tasks repository.TaskRepository, users repository.UserRepository) *AnalyticsService {
	return &AnalyticsService{tasks: tasks, users: users, now: time.Now}
}

// WeeklyReport covers Sunday 00:00 through Saturday 23:59:59.999 of the current week.
func (s *AnalyticsService) WeeklyReport(ctx context.Context) (*WeeklyReport, error) {
	start, end := weekBounds(s.now())

	tasks, err := s.tasks.List(ctx, repository.TaskFilter{CreatedFrom: &start, CreatedTo: &end})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	members, err := s.users.List(ctx, repository.UserFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	report := &WeeklyReport{TotalTasks: len(tasks), TopPerformers: []Performer{}}
	completedBy := map[string]int{}
	for i := range tasks {
		t := &tasks[i]
		switch t.Status {
		case domain.TaskStatusCompleted:
			report.CompletedTasks++
			if t.Assignee != nil && t.Assignee.Username != "" {
				completedBy[t.Assignee.Username]++
			}
		case domain.TaskStatusOverdue:
			report.OverdueTasks++
		}
	}
	if len(members) > 0 {
		report.TeamUtilization = float64(report.CompletedTasks) / float64(len(members))
	}

	for name, count := range completedBy {
		report.TopPerformers = append(report.TopPerformers, Performer{Name: name, CompletedTasks: count})
	}
	sort.Slice(report.TopPerformers, func(i, j int) bool {
		a, b := report.TopPerformers[i], report.TopPerformers[j]
		if a.CompletedTasks != b.CompletedTasks {
			return a.CompletedTasks > b.CompletedTasks
		}
		return a.Name < b.Name
	})
	if len(report.TopPerformers) > topPerformerCount {
		report.TopPerformers = report.TopPerformers[:topPerformerCount]
	}
	return report, nil
}

func weekBounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	start := time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}
