package query

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("pageSize must be at least 1")
)

// TaskFilters narrows the task list. All set filters apply conjunctively;
// the zero value matches every task.
type TaskFilters struct {
	Label      string
	AssigneeID *int
	Status     *int
}

// likeEscaper neutralizes the LIKE metacharacters so a filter value always
// means a literal substring.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// where builds the WHERE clause with $n placeholders starting at 1.
// Returns "" and no args when no filter is set.
func (f TaskFilters) where() (string, []interface{}) {
	var conds []string
	var args []interface{}
	if f.Label != "" {
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(f.Label))+"%")
		conds = append(conds, fmt.Sprintf(`LOWER(t.label) LIKE $%d ESCAPE '\'`, len(args)))
	}
	if f.AssigneeID != nil {
		args = append(args, *f.AssigneeID)
		conds = append(conds, fmt.Sprintf("t.assignee_id = $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("t.status = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Pagination is a 1-based page request.
type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Validate() error {
	if p.Page < 1 {
		return ErrInvalidPage
	}
	if p.PageSize < 1 {
		return ErrInvalidPageSize
	}
	return nil
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages computes ceil(totalCount / pageSize). pageSize must have been
// validated as positive.
func TotalPages(totalCount, pageSize int) int {
	return (totalCount + pageSize - 1) / pageSize
}

const selectTasks = `SELECT t.id, t.label, t.status, t.assignee_id, u.last_name, u.first_name
FROM tasks t
LEFT JOIN users u ON u.id = t.assignee_id`

// CountSQL counts matching tasks, computed before any slicing.
func CountSQL(f TaskFilters) (string, []interface{}) {
	where, args := f.where()
	return "SELECT COUNT(*) FROM tasks t" + where, args
}

// ListSQL selects one page of matching tasks joined with their assignee.
// Ordered by primary key so pages are stable.
func ListSQL(f TaskFilters, p Pagination) (string, []interface{}) {
	where, args := f.where()
	args = append(args, p.PageSize, p.Offset())
	return fmt.Sprintf("%s%s ORDER BY t.id LIMIT $%d OFFSET $%d",
		selectTasks, where, len(args)-1, len(args)), args
}

// ExportSQL selects the full filtered set, unpaginated, for the export.
func ExportSQL(f TaskFilters) (string, []interface{}) {
	where, args := f.where()
	return selectTasks + where + " ORDER BY t.id", args
}

// GetSQL selects a single task by id, with its assignee joined.
func GetSQL() string {
	return selectTasks + " WHERE t.id = $1"
}
