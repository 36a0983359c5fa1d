package client

import (
	"context"

	"taskboard/internal/models"
	"taskboard/internal/query"
)

// Modal identifies which overlay the view is showing, if any.
type Modal int

const (
	ModalNone Modal = iota
	ModalCreate
	ModalEdit
	ModalDeleteConfirm
	ModalFilters
)

// State is the full client view state. It is a value: reducers below return
// updated copies, they never mutate in place.
type State struct {
	Filters  query.TaskFilters
	Page     int
	PageSize int

	Tasks      []models.Task
	Users      []models.User
	TotalCount int
	TotalPages int

	Loading bool
	Modal   Modal
	// Editing backs the edit form and the delete confirmation.
	Editing *models.Task
}

func NewState() State {
	return State{Page: 1, PageSize: 10}
}

// Every filter change resets to the first page; only explicit page
// navigation keeps the position.

func SetLabelFilter(s State, label string) State {
	s.Filters.Label = label
	s.Page = 1
	return s
}

func SetAssigneeFilter(s State, assigneeID *int) State {
	s.Filters.AssigneeID = assigneeID
	s.Page = 1
	return s
}

func SetStatusFilter(s State, status *int) State {
	s.Filters.Status = status
	s.Page = 1
	return s
}

func SetPage(s State, page int) State {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

func OpenCreate(s State) State {
	s.Modal = ModalCreate
	s.Editing = nil
	return s
}

func OpenEdit(s State, task models.Task) State {
	s.Modal = ModalEdit
	s.Editing = &task
	return s
}

func OpenDeleteConfirm(s State, task models.Task) State {
	s.Modal = ModalDeleteConfirm
	s.Editing = &task
	return s
}

func OpenFilters(s State) State {
	s.Modal = ModalFilters
	return s
}

func CloseModal(s State) State {
	s.Modal = ModalNone
	s.Editing = nil
	return s
}

func startLoading(s State) State {
	s.Loading = true
	return s
}

func applyList(s State, result models.PaginatedResult[models.Task]) State {
	s.Tasks = result.Data
	s.TotalCount = result.TotalCount
	s.TotalPages = result.TotalPages
	s.Loading = false
	return s
}

func applyUsers(s State, users []models.User) State {
	s.Users = users
	return s
}

// Controller binds the state to the API boundary. Methods run one request,
// fold the outcome into the state, and return the error for the view to
// surface.
type Controller struct {
	api   *API
	state State
}

func NewController(api *API) *Controller {
	return &Controller{api: api, state: NewState()}
}

func (c *Controller) State() State {
	return c.state
}

// Load fetches the current page with the current filters.
func (c *Controller) Load(ctx context.Context) error {
	c.state = startLoading(c.state)
	result, err := c.api.ListTasks(ctx, c.state.Filters, c.state.Page, c.state.PageSize)
	if err != nil {
		c.state.Loading = false
		return err
	}
	c.state = applyList(c.state, result)
	return nil
}

// LoadUsers fetches the assignee reference list for the filter panel and
// the task form.
func (c *Controller) LoadUsers(ctx context.Context) error {
	users, err := c.api.ListUsers(ctx)
	if err != nil {
		return err
	}
	c.state = applyUsers(c.state, users)
	return nil
}

// ChangeLabelFilter applies the filter and reloads from page 1.
func (c *Controller) ChangeLabelFilter(ctx context.Context, label string) error {
	c.state = SetLabelFilter(c.state, label)
	return c.Load(ctx)
}

func (c *Controller) ChangeAssigneeFilter(ctx context.Context, assigneeID *int) error {
	c.state = SetAssigneeFilter(c.state, assigneeID)
	return c.Load(ctx)
}

func (c *Controller) ChangeStatusFilter(ctx context.Context, status *int) error {
	c.state = SetStatusFilter(c.state, status)
	return c.Load(ctx)
}

func (c *Controller) GoToPage(ctx context.Context, page int) error {
	c.state = SetPage(c.state, page)
	return c.Load(ctx)
}

// SubmitCreate creates the task, closes the form and reloads the page.
func (c *Controller) SubmitCreate(ctx context.Context, input TaskInput) error {
	if _, err := c.api.CreateTask(ctx, input); err != nil {
		return err
	}
	c.state = CloseModal(c.state)
	return c.Load(ctx)
}

// SubmitEdit replaces the task, closes the form and reloads the page.
func (c *Controller) SubmitEdit(ctx context.Context, task models.Task) error {
	if err := c.api.UpdateTask(ctx, task); err != nil {
		return err
	}
	c.state = CloseModal(c.state)
	return c.Load(ctx)
}

// RequestDelete opens the confirmation step; no request is sent yet.
func (c *Controller) RequestDelete(task models.Task) {
	c.state = OpenDeleteConfirm(c.state, task)
}

// ConfirmDelete sends the delete only when the confirmation modal is open.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	if c.state.Modal != ModalDeleteConfirm || c.state.Editing == nil {
		return nil
	}
	if err := c.api.DeleteTask(ctx, c.state.Editing.ID); err != nil {
		return err
	}
	c.state = CloseModal(c.state)
	return c.Load(ctx)
}

// ExportURL is the download address for the current filters, bypassing the
// paginated view.
func (c *Controller) ExportURL() string {
	return c.api.ExportURL(c.state.Filters)
}
