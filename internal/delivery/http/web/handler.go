// Package web serves the server-rendered task page. Every action is a
// plain form post that redirects back to the page, which is rendered
// again from the controller's current view.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-tasklist/internal/models"
	"github.com/adanyl0v/go-tasklist/internal/services"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the page templates. html/template escapes task text,
// so markup typed into a task is shown literally.
func Templates() (*template.Template, error) {
	return template.New("").
		Funcs(template.FuncMap{
			"priorityLabel": services.PriorityLabel,
			"formatDate":    services.FormatDate,
		}).
		ParseFS(templatesFS, "templates/*.html")
}

type Handler interface {
	HandleIndex(c *gin.Context)
	HandleAddTask(c *gin.Context)
	HandleToggleTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleSetFilter(c *gin.Context)
}

type handlerImpl struct {
	logger     zerolog.Logger
	controller *services.Controller
	now        func() time.Time
}

func New(logger zerolog.Logger, controller *services.Controller) Handler {
	return &handlerImpl{
		logger:     logger,
		controller: controller,
		now:        time.Now,
	}
}

func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/", h.HandleIndex)
	router.POST("/tasks", h.HandleAddTask)
	router.POST("/tasks/:id/toggle", h.HandleToggleTask)
	router.POST("/tasks/:id/delete", h.HandleDeleteTask)
	router.POST("/filter", h.HandleSetFilter)
}

var filterLabels = map[models.Filter]string{
	models.FilterAll:       "All",
	models.FilterPending:   "Pending",
	models.FilterCompleted: "Completed",
}

type filterButton struct {
	Tag    models.Filter
	Label  string
	Active bool
}

type pageData struct {
	Today         string
	Filters       []filterButton
	Tasks         []models.Task
	Stats         models.Stats
	Notifications []models.Notification
}

func (h *handlerImpl) HandleIndex(c *gin.Context) {
	view := h.controller.View()

	filters := make([]filterButton, len(models.Filters))
	for i, f := range models.Filters {
		filters[i] = filterButton{
			Tag:    f,
			Label:  filterLabels[f],
			Active: f == view.Filter,
		}
	}

	c.HTML(http.StatusOK, "index.html", pageData{
		Today:         h.now().UTC().Format(time.DateOnly),
		Filters:       filters,
		Tasks:         view.Tasks,
		Stats:         view.Stats,
		Notifications: view.Notifications,
	})
}

func (h *handlerImpl) HandleAddTask(c *gin.Context) {
	// Validation failures already surface as notifications on the page.
	_, err := h.controller.AddTask(c, services.AddTaskParams{
		Text:     c.PostForm("text"),
		Date:     c.PostForm("date"),
		Priority: models.Priority(c.PostForm("priority")),
	})
	if err != nil {
		h.logger.Debug().
			Err(err).
			Msg("add task form rejected")
	}
	backToIndex(c)
}

func (h *handlerImpl) HandleToggleTask(c *gin.Context) {
	taskID, ok := h.parseTaskID(c)
	if !ok {
		return
	}

	_, err := h.controller.ToggleTask(c, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to toggle task")
	}
	backToIndex(c)
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID, ok := h.parseTaskID(c)
	if !ok {
		return
	}

	_, err := h.controller.DeleteTask(c, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to delete task")
	}
	backToIndex(c)
}

func (h *handlerImpl) HandleSetFilter(c *gin.Context) {
	filter := models.Filter(c.PostForm("filter"))
	err := h.controller.SetFilter(filter)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("filter", string(filter)).
			Msg("failed to set filter")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	backToIndex(c)
}

func (h *handlerImpl) parseTaskID(c *gin.Context) (int64, bool) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", c.Param("id")).
			Msg("failed to parse task id")
		c.AbortWithStatus(http.StatusBadRequest)
		return 0, false
	}
	return taskID, true
}

func backToIndex(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}
