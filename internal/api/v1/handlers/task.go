package handlers

import (
	"database/sql"
	"strconv"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/export"
	"taskboard/internal/models"
	"taskboard/internal/query"
	"taskboard/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Task handlers

// parseTaskFilters reads the optional label/assigneeId/status query
// parameters. An absent parameter leaves the filter unset.
func parseTaskFilters(c *fiber.Ctx) (query.TaskFilters, error) {
	f := query.TaskFilters{Label: c.Query("label")}
	if raw := c.Query("assigneeId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return f, err
		}
		f.AssigneeID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil {
			return f, err
		}
		f.Status = &status
	}
	return f, nil
}

// parsePagination reads page/pageSize, defaulting absent parameters but
// rejecting malformed ones instead of silently falling back.
func parsePagination(c *fiber.Ctx) (query.Pagination, error) {
	p := query.Pagination{Page: 1, PageSize: 10}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return p, err
		}
		p.Page = page
	}
	if raw := c.Query("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return p, err
		}
		p.PageSize = size
	}
	return p, nil
}

// scanTasks reads joined task rows into models, projecting the assignee
// columns into a User when the task is assigned.
func scanTasks(rows *sql.Rows) ([]models.Task, error) {
	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var task models.Task
	var assigneeID sql.NullInt64
	var lastName, firstName sql.NullString
	err := row.Scan(&task.ID, &task.Label, &task.Status, &assigneeID, &lastName, &firstName)
	if err != nil {
		return task, err
	}
	if assigneeID.Valid {
		id := int(assigneeID.Int64)
		task.AssigneeID = &id
		task.Assignee = &models.User{
			ID:        id,
			LastName:  lastName.String,
			FirstName: firstName.String,
		}
	}
	return task, nil
}

// taskExists is the existence probe backing the update conflict path.
func taskExists(id int) (bool, error) {
	var exists bool
	err := config.DB.QueryRow("SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// ListTasks returns one page of tasks matching the optional filters,
// wrapped in the paginated envelope.
func ListTasks(c *fiber.Ctx) error {
	filters, err := parseTaskFilters(c)
	if err != nil {
		logger.ErrorLogger.Error("Invalid filter parameter", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid filter parameter",
			"success": false,
			"status":  400,
		})
	}

	p, err := parsePagination(c)
	if err != nil {
		logger.ErrorLogger.Error("Invalid pagination parameter", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid pagination parameter",
			"success": false,
			"status":  400,
		})
	}
	if err := p.Validate(); err != nil {
		logger.ErrorLogger.Error("Invalid pagination", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": err.Error(),
			"success": false,
			"status":  400,
		})
	}

	// Total count comes before slicing so the page metadata stays correct
	// even when the requested page is past the end.
	countSQL, countArgs := query.CountSQL(filters)
	var totalCount int
	if err := config.DB.QueryRow(countSQL, countArgs...).Scan(&totalCount); err != nil {
		logger.ErrorLogger.Error("Error counting tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error counting tasks",
			"success": false,
			"status":  500,
		})
	}

	listSQL, listArgs := query.ListSQL(filters, p)
	rows, err := config.DB.Query(listSQL, listArgs...)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching tasks",
			"success": false,
			"status":  500,
		})
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		logger.ErrorLogger.Error("Error scanning tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error scanning tasks",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("Tasks fetched successfully",
		zap.Int("page", p.Page), zap.Int("total", totalCount))
	return c.JSON(models.PaginatedResult[models.Task]{
		Data:       tasks,
		TotalCount: totalCount,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: query.TotalPages(totalCount, p.PageSize),
	})
}

// CreateTask persists a new task and returns the stored record.
func CreateTask(c *fiber.Ctx) error {
	// struct TaskRequest receives the user input
	type TaskRequest struct {
		Label      string `json:"label" validate:"required"`
		Status     int    `json:"status"`
		AssigneeID *int   `json:"assigneeId"`
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	// status is a closed set: only 0 (in progress), 1 (blocked), 2 (done)
	if !models.Status(req.Status).Valid() {
		logger.ErrorLogger.Error("Invalid status in create task", zap.Int("status", req.Status))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid status",
			"success": false,
			"status":  400,
		})
	}

	var taskID int
	err := config.DB.QueryRow(
		"INSERT INTO tasks (label, status, assignee_id) VALUES ($1, $2, $3) RETURNING id",
		req.Label, req.Status, req.AssigneeID,
	).Scan(&taskID)
	if err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating task",
			"success": false,
			"status":  500,
		})
	}

	// Return the stored record, with the assignee joined
	task, err := scanTask(config.DB.QueryRow(query.GetSQL(), taskID))
	if err != nil {
		logger.ErrorLogger.Error("Error fetching created task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching created task",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("Task created successfully", zap.Int("task_id", taskID))
	return c.JSON(task)
}

// UpdateTask replaces the full record. The body id must match the path id;
// an update racing a concurrent delete reports not found.
func UpdateTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid task ID",
			"success": false,
			"status":  400,
		})
	}

	var task models.Task
	if err := c.BodyParser(&task); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if task.ID != taskID {
		logger.ErrorLogger.Error("Task ID mismatch",
			zap.Int("path_id", taskID), zap.Int("body_id", task.ID))
		return c.Status(400).JSON(fiber.Map{
			"message": "Task ID mismatch",
			"success": false,
			"status":  400,
		})
	}

	if task.Label == "" {
		logger.ErrorLogger.Error("Empty label in update task", zap.Int("task_id", taskID))
		return c.Status(400).JSON(fiber.Map{
			"message": "Label is required",
			"success": false,
			"status":  400,
		})
	}

	if !task.Status.Valid() {
		logger.ErrorLogger.Error("Invalid status in update task", zap.Int("status", int(task.Status)))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid status",
			"success": false,
			"status":  400,
		})
	}

	res, err := config.DB.Exec(
		"UPDATE tasks SET label = $1, status = $2, assignee_id = $3 WHERE id = $4",
		task.Label, task.Status, task.AssigneeID, taskID,
	)
	if err != nil {
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating task",
			"success": false,
			"status":  500,
		})
	}

	affected, err := res.RowsAffected()
	if err != nil {
		logger.ErrorLogger.Error("Error reading update result", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating task",
			"success": false,
			"status":  500,
		})
	}
	if affected == 0 {
		// Either the task never existed or it was deleted while the client
		// held a stale copy; both report not found.
		exists, err := taskExists(taskID)
		if err != nil {
			logger.ErrorLogger.Error("Error checking task existence", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{
				"message": "Error updating task",
				"success": false,
				"status":  500,
			})
		}
		if !exists {
			logger.ErrorLogger.Error("Task not found in update", zap.Int("task_id", taskID))
			return c.Status(404).JSON(fiber.Map{
				"message": "Task not found",
				"success": false,
				"status":  404,
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating task",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("Task updated", zap.Int("task_id", taskID))
	return c.SendStatus(204)
}

// DeleteTask removes a task by id.
func DeleteTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid task ID",
			"success": false,
			"status":  400,
		})
	}

	res, err := config.DB.Exec("DELETE FROM tasks WHERE id = $1", taskID)
	if err != nil {
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting task",
			"success": false,
			"status":  500,
		})
	}

	affected, err := res.RowsAffected()
	if err != nil {
		logger.ErrorLogger.Error("Error reading delete result", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting task",
			"success": false,
			"status":  500,
		})
	}
	if affected == 0 {
		logger.ErrorLogger.Error("Task not found in delete", zap.Int("task_id", taskID))
		return c.Status(404).JSON(fiber.Map{
			"message": "Task not found",
			"success": false,
			"status":  404,
		})
	}

	logger.AuditLogger.Info("Task deleted", zap.Int("task_id", taskID))
	return c.SendStatus(204)
}

// ExportTasks streams the full filtered task set as an xlsx download.
func ExportTasks(c *fiber.Ctx) error {
	filters, err := parseTaskFilters(c)
	if err != nil {
		logger.ErrorLogger.Error("Invalid filter parameter", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid filter parameter",
			"success": false,
			"status":  400,
		})
	}

	exportSQL, exportArgs := query.ExportSQL(filters)
	rows, err := config.DB.Query(exportSQL, exportArgs...)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks for export", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching tasks",
			"success": false,
			"status":  500,
		})
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		logger.ErrorLogger.Error("Error scanning tasks for export", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error scanning tasks",
			"success": false,
			"status":  500,
		})
	}

	workbook, err := export.TasksWorkbook(tasks)
	if err != nil {
		logger.ErrorLogger.Error("Error building export workbook", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error building export",
			"success": false,
			"status":  500,
		})
	}

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		logger.ErrorLogger.Error("Error encoding export workbook", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error encoding export",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("Tasks exported", zap.Int("rows", len(tasks)))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.FileName(time.Now())+`"`)
	return c.Send(buf.Bytes())
}
