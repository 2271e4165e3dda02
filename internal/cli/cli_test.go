package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-tasklist/internal/models"
)

func run(t *testing.T, dir string, args ...string) (int, string, string) {
	t.Helper()

	var out, errOut bytes.Buffer
	code := Run(context.Background(), append([]string{"-dir", dir}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func readSnapshot(t *testing.T, dir string) []models.Task {
	t.Helper()

	b, err := os.ReadFile(filepath.Join(dir, "tasks.json"))
	require.NoError(t, err)

	var tasks []models.Task
	require.NoError(t, json.Unmarshal(b, &tasks))
	return tasks
}

func TestRun_AddListToggleRemove(t *testing.T) {
	dir := t.TempDir()

	code, out, _ := run(t, dir, "add", "-priority", "high", "-date", "2024-01-05", "water", "plants")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Task added successfully!")

	tasks := readSnapshot(t, dir)
	require.Len(t, tasks, 1)
	assert.Equal(t, "water plants", tasks[0].Text)
	assert.Equal(t, models.PriorityHigh, tasks[0].Priority)
	id := strconv.FormatInt(tasks[0].ID, 10)

	code, out, _ = run(t, dir, "ls")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "water plants")
	assert.Contains(t, out, "Jan 5, 2024")

	code, _, _ = run(t, dir, "toggle", id)
	require.Equal(t, 0, code)
	assert.True(t, readSnapshot(t, dir)[0].Completed)

	code, out, _ = run(t, dir, "ls", "-filter", "pending")
	require.Equal(t, 0, code)
	assert.NotContains(t, out, "water plants")

	code, out, _ = run(t, dir, "stats")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "completed 1")

	code, out, _ = run(t, dir, "rm", id)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Task deleted!")
	assert.Empty(t, readSnapshot(t, dir))
}

func TestRun_AddBlank(t *testing.T) {
	dir := t.TempDir()

	code, out, _ := run(t, dir, "add", "   ")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Please enter a task!")

	_, err := os.Stat(filepath.Join(dir, "tasks.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_BadInput(t *testing.T) {
	dir := t.TempDir()

	code, _, errOut := run(t, dir, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `unknown command "frobnicate"`)

	code, _, errOut = run(t, dir, "toggle", "abc")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "invalid task id")

	code, _, _ = run(t, dir, "ls", "-filter", "archived")
	assert.Equal(t, 2, code)

	code, _, errOut = run(t, dir, "toggle", "12")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "no task with id 12")
}

func TestRun_CorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("[{"), 0o644))

	code, _, errOut := run(t, dir, "ls")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "corrupt task snapshot")
}

func TestRun_AddFlagAfterText(t *testing.T) {
	dir := t.TempDir()

	code, _, errOut := run(t, dir, "add", "water", "plants", "-priority", "high")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `flag "-priority" after task text`)

	_, err := os.Stat(filepath.Join(dir, "tasks.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_AddDashText(t *testing.T) {
	dir := t.TempDir()

	code, _, _ := run(t, dir, "add", "-priority", "low", "--", "-5", "degrees", "outside")
	require.Equal(t, 0, code)

	tasks := readSnapshot(t, dir)
	require.Len(t, tasks, 1)
	assert.Equal(t, "-5 degrees outside", tasks[0].Text)
	assert.Equal(t, models.PriorityLow, tasks[0].Priority)
}

func TestRun_SharesSnapshotWithOtherWriters(t *testing.T) {
	dir := t.TempDir()

	code, _, _ := run(t, dir, "add", "first")
	require.Equal(t, 0, code)

	// Another writer, such as the web server, adds a task meanwhile.
	tasks := readSnapshot(t, dir)
	tasks = append(tasks, models.Task{
		ID:        tasks[0].ID + 1000,
		Text:      "from web",
		Date:      "2024-01-05",
		Priority:  models.PriorityHigh,
		CreatedAt: "2024-01-05T10:00:00.000Z",
	})
	b, err := json.Marshal(tasks)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), b, 0o644))

	code, _, _ = run(t, dir, "add", "second")
	require.Equal(t, 0, code)

	texts := []string{}
	for _, task := range readSnapshot(t, dir) {
		texts = append(texts, task.Text)
	}
	assert.Equal(t, []string{"first", "from web", "second"}, texts)
}
