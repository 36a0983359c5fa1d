package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"taskboard/internal/models"
	"taskboard/internal/query"
)

// ErrNotFound reports a 404 from the server: the task was deleted (or never
// existed) by the time the request arrived.
var ErrNotFound = errors.New("task not found")

// TaskInput is the body of a create request, a task without its id.
type TaskInput struct {
	Label      string `json:"label"`
	Status     int    `json:"status"`
	AssigneeID *int   `json:"assigneeId"`
}

// API is the side-effecting boundary between the client state and the
// server. Every method returns an explicit result; no state is mutated here.
type API struct {
	BaseURL string
	HTTP    *http.Client
}

func NewAPI(baseURL string) *API {
	return &API{BaseURL: baseURL, HTTP: http.DefaultClient}
}

// filterValues encodes only the filters that are set, matching the query
// parameters the server reads.
func filterValues(f query.TaskFilters) url.Values {
	params := url.Values{}
	if f.Label != "" {
		params.Set("label", f.Label)
	}
	if f.AssigneeID != nil {
		params.Set("assigneeId", strconv.Itoa(*f.AssigneeID))
	}
	if f.Status != nil {
		params.Set("status", strconv.Itoa(*f.Status))
	}
	return params
}

func (a *API) do(req *http.Request, out interface{}) error {
	resp, err := a.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (a *API) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := a.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return a.do(req, out)
}

func (a *API) send(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, a.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return a.do(req, out)
}

// ListTasks fetches one page of tasks matching the filters.
func (a *API) ListTasks(ctx context.Context, f query.TaskFilters, page, pageSize int) (models.PaginatedResult[models.Task], error) {
	params := filterValues(f)
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))

	var result models.PaginatedResult[models.Task]
	err := a.get(ctx, "/tasks", params, &result)
	return result, err
}

// CreateTask persists a new task and returns the stored record.
func (a *API) CreateTask(ctx context.Context, input TaskInput) (models.Task, error) {
	var task models.Task
	err := a.send(ctx, http.MethodPost, "/tasks", input, &task)
	return task, err
}

// UpdateTask replaces the task with the given record.
func (a *API) UpdateTask(ctx context.Context, task models.Task) error {
	return a.send(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", task.ID), task, nil)
}

// DeleteTask removes the task by id.
func (a *API) DeleteTask(ctx context.Context, id int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/tasks/%d", a.BaseURL, id), nil)
	if err != nil {
		return err
	}
	return a.do(req, nil)
}

// ListUsers fetches the full user reference list.
func (a *API) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := a.get(ctx, "/tasks/users", nil, &users)
	return users, err
}

// ExportURL is the direct-download address for the filtered, unpaginated
// export. The caller navigates to it instead of fetching through the API.
func (a *API) ExportURL(f query.TaskFilters) string {
	u := a.BaseURL + "/tasks/export"
	if params := filterValues(f); len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}
