package dto

// Performer is one row of the top performers board.
type Performer struct {
	Name           string `json:"name"`
	CompletedTasks int    `json:"completedTasks"`
}

// WeeklyReportResponse is returned by GET /analytics/weekly-report.
type WeeklyReportResponse struct {
	TotalTasks            int         `json:"totalTasks"`
	CompletedTasks        int         `json:"completedTasks"`
	OverdueTasks          int         `json:"overdueTasks"`
	AverageCompletionTime float64     `json:"averageCompletionTime"`
	TeamUtilization       float64     `json:"teamUtilization"`
	TopPerformers         []Performer `json:"topPerformers"`
}
