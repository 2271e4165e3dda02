package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-tasklist/internal/models"
	"github.com/adanyl0v/go-tasklist/internal/services"
)

type getTaskResponse struct {
	ID            int64  `json:"id"`
	Text          string `json:"text"`
	Date          string `json:"date"`
	DisplayDate   string `json:"display_date"`
	Priority      string `json:"priority"`
	PriorityLabel string `json:"priority_label"`
	Completed     bool   `json:"completed"`
	CreatedAt     string `json:"created_at"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
		ID:            task.ID,
		Text:          task.Text,
		Date:          task.Date,
		DisplayDate:   services.FormatDate(task.Date),
		Priority:      string(task.Priority),
		PriorityLabel: services.PriorityLabel(task.Priority),
		Completed:     task.Completed,
		CreatedAt:     task.CreatedAt,
	}
}

type getTasksResponse struct {
	Filter string            `json:"filter"`
	Tasks  []getTaskResponse `json:"tasks"`
	Stats  models.Stats      `json:"stats"`
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	var view services.View
	filter := models.Filter(c.Query("filter"))
	if filter == "" {
		view = h.controller.View()
	} else {
		if !filter.Valid() {
			h.logger.Error().
				Str("filter", string(filter)).
				Msg("invalid filter")
			abort(c, newServiceError(services.ErrInvalidFilter))
			return
		}
		view = h.controller.ViewFor(filter)
	}

	response := getTasksResponse{
		Filter: string(view.Filter),
		Tasks:  make([]getTaskResponse, len(view.Tasks)),
		Stats:  view.Stats,
	}
	for i, task := range view.Tasks {
		response.Tasks[i] = newGetTaskResponse(&task)
	}

	h.logger.Debug().
		Int("count", len(response.Tasks)).
		Str("filter", response.Filter).
		Msg("fetched tasks")
	c.JSON(http.StatusOK, response)
}

type createTaskRequest struct {
	Text     string `json:"text"`
	Date     string `json:"date"`
	Priority string `json:"priority"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.controller.AddTask(c, services.AddTaskParams{
		Text:     req.Text,
		Date:     req.Date,
		Priority: models.Priority(req.Priority),
	})
	if err != nil {
		abort(c, newServiceError(err))
		return
	}

	c.JSON(http.StatusCreated, newGetTaskResponse(task))
}

type toggleTaskResponse struct {
	Toggled bool `json:"toggled"`
}

func (h *handlerImpl) HandleToggleTask(c *gin.Context) {
	toggled, err := h.controller.ToggleTask(c, taskIDFromContext(c))
	if err != nil {
		abort(c, newServiceError(err))
		return
	}

	c.JSON(http.StatusOK, toggleTaskResponse{Toggled: toggled})
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	_, err := h.controller.DeleteTask(c, taskIDFromContext(c))
	if err != nil {
		abort(c, newServiceError(err))
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleGetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.controller.Stats())
}

func (h *handlerImpl) HandleGetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.controller.Notifications())
}

type filterRequest struct {
	Filter string `json:"filter" binding:"required"`
}

type filterResponse struct {
	Filter string `json:"filter"`
}

func (h *handlerImpl) HandleGetFilter(c *gin.Context) {
	c.JSON(http.StatusOK, filterResponse{Filter: string(h.controller.Filter())})
}

func (h *handlerImpl) HandleSetFilter(c *gin.Context) {
	var req filterRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = h.controller.SetFilter(models.Filter(req.Filter))
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to set filter")
		abort(c, newServiceError(err))
		return
	}

	c.JSON(http.StatusOK, filterResponse{Filter: req.Filter})
}
