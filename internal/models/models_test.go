package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusInProgress.Valid())
	assert.True(t, StatusBlocked.Valid())
	assert.True(t, StatusDone.Valid())
	assert.False(t, Status(-1).Valid())
	assert.False(t, Status(3).Valid())
	assert.False(t, Status(99).Valid())
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "In progress", StatusInProgress.Label())
	assert.Equal(t, "Blocked", StatusBlocked.Label())
	assert.Equal(t, "Done", StatusDone.Label())
	// Out-of-range values render as empty, not as an error
	assert.Equal(t, "", Status(99).Label())
	assert.Equal(t, "", Status(-1).Label())
}

func TestTaskJSONShape(t *testing.T) {
	assigneeID := 4
	task := Task{
		ID:         7,
		Label:      "Fix bug",
		Status:     StatusInProgress,
		AssigneeID: &assigneeID,
		Assignee:   &User{ID: 4, LastName: "Martin", FirstName: "Sophie"},
	}

	raw, err := json.Marshal(task)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 7,
		"label": "Fix bug",
		"status": 0,
		"assigneeId": 4,
		"assignee": {"id": 4, "lastName": "Martin", "firstName": "Sophie"}
	}`, string(raw))
}

func TestUnassignedTaskJSON(t *testing.T) {
	raw, err := json.Marshal(Task{ID: 1, Label: "Write docs", Status: StatusDone})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 1,
		"label": "Write docs",
		"status": 2,
		"assigneeId": null,
		"assignee": null
	}`, string(raw))
}

func TestUserJSONOmitsTasks(t *testing.T) {
	raw, err := json.Marshal(User{ID: 2, LastName: "Dubois", FirstName: "Thomas"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 2, "lastName": "Dubois", "firstName": "Thomas"}`, string(raw))
}
