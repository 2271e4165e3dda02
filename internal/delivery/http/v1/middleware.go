package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const taskIDCtxKey = "task_id"

func (h *handlerImpl) HandleTaskIDMiddleware(c *gin.Context) {
	raw := c.Param("id")
	if raw == "" {
		h.logger.Error().Msg("no task id provided")
		abort(c, newBadRequestError(errInvalidTaskID.Error()))
		return
	}

	taskID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", raw).
			Msg("failed to parse task id")
		abort(c, newBadRequestError(errInvalidTaskID.Error()))
		return
	}

	c.Set(taskIDCtxKey, taskID)
	c.Next()
}

func taskIDFromContext(c *gin.Context) int64 {
	return c.GetInt64(taskIDCtxKey)
}
