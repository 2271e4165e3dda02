package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-tasklist/internal/models"
	"github.com/adanyl0v/go-tasklist/internal/services"
	"github.com/adanyl0v/go-tasklist/internal/storage"
)

func newTestRouter(t *testing.T) (*gin.Engine, *services.Controller) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tasks := services.NewTaskService(zerolog.Nop(), storage.NewMemorySlot("tasks"))
	require.NoError(t, tasks.Load(context.Background()))
	controller := services.NewController(
		zerolog.Nop(),
		tasks,
		services.NewNotificationService(zerolog.Nop(), time.Minute),
	)

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1"), New(zerolog.Nop(), controller))
	return router, controller
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleCreateTask(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/tasks",
		`{"text":"<b>bold</b>","date":"2024-01-05","priority":"high"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var got getTaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "<b>bold</b>", got.Text)
	assert.Equal(t, "Jan 5, 2024", got.DisplayDate)
	assert.Equal(t, "High", got.PriorityLabel)
	assert.False(t, got.Completed)
}

func TestHandleCreateTask_Blank(t *testing.T) {
	router, controller := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/tasks", `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "task text is empty")
	assert.Equal(t, 0, controller.Stats().Total)

	notifications := controller.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, models.SeverityError, notifications[0].Severity)
}

func TestHandleCreateTask_BadBody(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/tasks", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), errInvalidRequestBody.Error())
}

func TestHandleToggleAndDeleteTask(t *testing.T) {
	router, controller := newTestRouter(t)

	task, err := controller.AddTask(context.Background(), services.AddTaskParams{Text: "ship"})
	require.NoError(t, err)
	path := "/api/v1/tasks/" + jsonID(task.ID)

	w := doRequest(router, http.MethodPost, path+"/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"toggled":true}`, w.Body.String())
	assert.Equal(t, models.Stats{Total: 1, Completed: 1}, controller.Stats())

	w = doRequest(router, http.MethodPost, "/api/v1/tasks/1/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"toggled":false}`, w.Body.String())

	w = doRequest(router, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, controller.Stats().Total)

	w = doRequest(router, http.MethodDelete, "/api/v1/tasks/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleGetTasks_Filter(t *testing.T) {
	router, controller := newTestRouter(t)
	ctx := context.Background()

	first, err := controller.AddTask(ctx, services.AddTaskParams{Text: "a", Priority: models.PriorityLow})
	require.NoError(t, err)
	_, err = controller.AddTask(ctx, services.AddTaskParams{Text: "b", Priority: models.PriorityHigh})
	require.NoError(t, err)
	_, err = controller.ToggleTask(ctx, first.ID)
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/api/v1/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)

	var all getTasksResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Equal(t, "all", all.Filter)
	require.Len(t, all.Tasks, 2)
	assert.Equal(t, "b", all.Tasks[0].Text)
	assert.Equal(t, models.Stats{Total: 2, Completed: 1, Pending: 1}, all.Stats)

	w = doRequest(router, http.MethodGet, "/api/v1/tasks?filter=completed", "")
	var completed getTasksResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &completed))
	require.Len(t, completed.Tasks, 1)
	assert.Equal(t, "a", completed.Tasks[0].Text)

	w = doRequest(router, http.MethodGet, "/api/v1/tasks?filter=nope", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleSetFilter(t *testing.T) {
	router, controller := newTestRouter(t)

	w := doRequest(router, http.MethodPut, "/api/v1/filter", `{"filter":"pending"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.FilterPending, controller.Filter())

	w = doRequest(router, http.MethodGet, "/api/v1/filter", "")
	assert.JSONEq(t, `{"filter":"pending"}`, w.Body.String())

	w = doRequest(router, http.MethodPut, "/api/v1/filter", `{"filter":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.FilterPending, controller.Filter())
}

func TestHandleHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
