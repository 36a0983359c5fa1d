package client

import (
	"testing"

	"taskboard/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState()
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, 10, s.PageSize)
	assert.Equal(t, ModalNone, s.Modal)
	assert.False(t, s.Loading)
}

func TestFilterChangeResetsPage(t *testing.T) {
	s := SetPage(NewState(), 5)

	s = SetLabelFilter(s, "bug")
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, "bug", s.Filters.Label)

	s = SetPage(s, 3)
	assignee := 4
	s = SetAssigneeFilter(s, &assignee)
	assert.Equal(t, 1, s.Page)

	s = SetPage(s, 2)
	status := 1
	s = SetStatusFilter(s, &status)
	assert.Equal(t, 1, s.Page)
	// Earlier filters survive later changes
	assert.Equal(t, "bug", s.Filters.Label)
	assert.Equal(t, 4, *s.Filters.AssigneeID)
	assert.Equal(t, 1, *s.Filters.Status)
}

func TestPageNavigationKeepsFilters(t *testing.T) {
	s := SetLabelFilter(NewState(), "doc")
	s = SetPage(s, 4)
	assert.Equal(t, 4, s.Page)
	assert.Equal(t, "doc", s.Filters.Label)
}

func TestSetPageClampsBelowOne(t *testing.T) {
	s := SetPage(NewState(), 0)
	assert.Equal(t, 1, s.Page)
	s = SetPage(s, -2)
	assert.Equal(t, 1, s.Page)
}

func TestModalTransitions(t *testing.T) {
	task := models.Task{ID: 9, Label: "Fix bug"}

	s := OpenCreate(NewState())
	assert.Equal(t, ModalCreate, s.Modal)
	assert.Nil(t, s.Editing)

	s = OpenEdit(s, task)
	assert.Equal(t, ModalEdit, s.Modal)
	assert.Equal(t, 9, s.Editing.ID)

	s = OpenDeleteConfirm(s, task)
	assert.Equal(t, ModalDeleteConfirm, s.Modal)

	s = CloseModal(s)
	assert.Equal(t, ModalNone, s.Modal)
	assert.Nil(t, s.Editing)
}

func TestApplyListClearsLoading(t *testing.T) {
	s := startLoading(NewState())
	assert.True(t, s.Loading)

	s = applyList(s, models.PaginatedResult[models.Task]{
		Data:       []models.Task{{ID: 1, Label: "Fix bug"}},
		TotalCount: 25,
		Page:       1,
		PageSize:   10,
		TotalPages: 3,
	})
	assert.False(t, s.Loading)
	assert.Len(t, s.Tasks, 1)
	assert.Equal(t, 25, s.TotalCount)
	assert.Equal(t, 3, s.TotalPages)
}

func TestReducersDoNotMutateInput(t *testing.T) {
	original := NewState()
	_ = SetLabelFilter(original, "bug")
	assert.Equal(t, "", original.Filters.Label)
	_ = SetPage(original, 7)
	assert.Equal(t, 1, original.Page)
}
