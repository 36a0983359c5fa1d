package export

import (
	"testing"
	"time"

	"taskboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func intPtr(v int) *int { return &v }

// encodeAndReload round-trips the workbook through its binary form, so the
// assertions run against what a client would actually download.
func encodeAndReload(t *testing.T, tasks []models.Task) [][]string {
	t.Helper()
	f, err := TasksWorkbook(tasks)
	require.NoError(t, err)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	reloaded, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer reloaded.Close()
	rows, err := reloaded.GetRows(SheetName)
	require.NoError(t, err)
	return rows
}

func TestWorkbookHeaderRow(t *testing.T) {
	rows := encodeAndReload(t, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Task label", "Assignee", "Status"}, rows[0])
}

func TestWorkbookRowPerTask(t *testing.T) {
	tasks := []models.Task{
		{
			ID: 1, Label: "Fix bug", Status: models.StatusInProgress,
			AssigneeID: intPtr(4),
			Assignee:   &models.User{ID: 4, LastName: "Martin", FirstName: "Sophie"},
		},
		{ID: 2, Label: "Write docs", Status: models.StatusDone},
		{ID: 3, Label: "Review PR", Status: models.StatusBlocked},
	}

	rows := encodeAndReload(t, tasks)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Fix bug", "Sophie", "In progress"}, rows[1])
	// Unassigned tasks leave the assignee cell empty
	assert.Equal(t, "Write docs", rows[2][0])
	assert.Equal(t, "Done", rows[2][2])
	assert.Equal(t, []string{"Review PR", "", "Blocked"}, rows[3])
}

func TestWorkbookUnknownStatusRendersEmpty(t *testing.T) {
	// Rows stored before status validation may carry any integer
	rows := encodeAndReload(t, []models.Task{
		{ID: 1, Label: "Legacy task", Status: models.Status(99)},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "Legacy task", rows[1][0])
	require.GreaterOrEqual(t, len(rows[1]), 1)
	for _, cell := range rows[1][1:] {
		assert.Equal(t, "", cell)
	}
}

func TestFileName(t *testing.T) {
	ts := time.Date(2026, 9, 1, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "tasks_20260901.xlsx", FileName(ts))
}
