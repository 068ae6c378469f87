package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/equitask/equitask-api/internal/domain"
)

// TaskFilter captures listing parameters.
type TaskFilter struct {
	Statuses    []domain.TaskStatus
	AssigneeID  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// TaskRepository encapsulates task persistence.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	MarkOverdue(ctx context.Context, now time.Time) ([]domain.Task, error)
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository instantiates repository.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

const taskSelect = `
        SELECT t.id, t.title, t.description, t.estimated_hours, t.priority, t.status,
               t.assignee_id, t.created_by, t.due_date, t.created_at, t.updated_at,
               a.username, a.email, a.role,
               c.username, c.email, c.role
        FROM tasks t
        LEFT JOIN users a ON a.id = t.assignee_id
        LEFT JOIN users c ON c.id = t.created_by`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (title, description, estimated_hours, priority, status, assignee_id, created_by, due_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.EstimatedHours,
		task.Priority,
		task.Status,
		task.AssigneeID,
		task.CreatedByID,
		task.DueDate,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE tasks SET title=$1, description=$2, estimated_hours=$3, priority=$4, status=$5,
            assignee_id=$6, due_date=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.EstimatedHours,
		task.Priority,
		task.Status,
		task.AssigneeID,
		task.DueDate,
		task.ID,
	).Scan(&task.UpdatedAt)
	return notFoundOnMalformedID(err)
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return scanTask(r.pool.QueryRow(ctx, taskSelect+` WHERE t.id=$1`, id))
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return notFoundOnMalformedID(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepository) List(ctx context.Context, filter TaskFilter) ([]domain.Task, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("t.status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		clauses = append(clauses, fmt.Sprintf("t.assignee_id=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("t.created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("t.created_at <= $%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY t.created_at DESC`, taskSelect, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *task)
	}
	return result, rows.Err()
}

// MarkOverdue flips open tasks past their due date to overdue and returns them.
func (r *taskRepository) MarkOverdue(ctx context.Context, now time.Time) ([]domain.Task, error) {
	const query = `
        UPDATE tasks SET status=$1, updated_at=NOW()
        WHERE status IN ($2,$3) AND due_date IS NOT NULL AND due_date < $4
        RETURNING id, title, estimated_hours, priority, status, assignee_id, created_by, due_date, created_at, updated_at`
	rows, err := r.pool.Query(ctx, query,
		domain.TaskStatusOverdue,
		domain.TaskStatusPending,
		domain.TaskStatusInProgress,
		now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Task
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.EstimatedHours,
			&task.Priority,
			&task.Status,
			&task.AssigneeID,
			&task.CreatedByID,
			&task.DueDate,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, task)
	}
	return result, rows.Err()
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		task                        domain.Task
		assigneeName, assigneeEmail *string
		assigneeRole, creatorRole   *string
		creatorName, creatorEmail   *string
	)
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.EstimatedHours,
		&task.Priority,
		&task.Status,
		&task.AssigneeID,
		&task.CreatedByID,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
		&assigneeName,
		&assigneeEmail,
		&assigneeRole,
		&creatorName,
		&creatorEmail,
		&creatorRole,
	); err != nil {
		return nil, notFoundOnMalformedID(err)
	}
	task.Assignee = userSummary(task.AssigneeID, assigneeName, assigneeEmail, assigneeRole)
	task.CreatedBy = userSummary(task.CreatedByID, creatorName, creatorEmail, creatorRole)
	return &task, nil
}

func userSummary(id, name, email, role *string) *domain.UserSummary {
	if id == nil || name == nil {
		return nil
	}
	summary := &domain.UserSummary{ID: *id, Username: *name}
	if email != nil {
		summary.Email = *email
	}
	if role != nil {
		summary.Role = domain.UserRole(*role)
	}
	return summary
}
