package handlers

import (
	"errors"
	"net/http"

	"todo_api/internal/logger"
	"todo_api/internal/repository"
	"todo_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	Tasks *service.TaskService
}

func NewHandler(tasks *service.TaskService) *Handler {
	return &Handler{Tasks: tasks}
}

// taskID извлекает id задачи из пути; при ошибке ответ уже отправлен
func taskID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps store outcomes onto HTTP statuses.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, repository.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, repository.ErrDuplicateTitle):
		c.JSON(http.StatusBadRequest, gin.H{"error": "title already exists"})
	case errors.Is(err, repository.ErrInvalidCompletion):
		c.JSON(http.StatusBadRequest, gin.H{"error": "completion must be between 0 and 100"})
	default:
		logger.Error("task request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
