package handlers

import (
	"context"
	"net/http"

	"todo_api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createUpdateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type completionRequest struct {
	Completion *int `json:"completion" binding:"required"`
}

type doneRequest struct {
	IsDone bool `json:"is_done"`
}

// ListTasks returns every task in creation order
func (h *Handler) ListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, h.Tasks.List(c.Request.Context()))
}

func (h *Handler) GetTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.Tasks.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "not found")
		return
	}
	c.JSON(http.StatusOK, task)
}

// CreateTask creates a task from title and description; duplicate titles are rejected with 400
func (h *Handler) CreateTask(c *gin.Context) {
	var req createUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and description are required"})
		return
	}

	task, err := h.Tasks.Create(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		respondError(c, err, "not found")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req createUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and description are required"})
		return
	}

	task, err := h.Tasks.Update(c.Request.Context(), id, req.Title, req.Description)
	if err != nil {
		respondError(c, err, "task does not exist")
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) SetCompletion(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req completionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "completion is required"})
		return
	}

	if _, err := h.Tasks.SetCompletion(c.Request.Context(), id, *req.Completion); err != nil {
		respondError(c, err, "task does not exist")
		return
	}
	c.JSON(http.StatusOK, true)
}

func (h *Handler) SetDone(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req doneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if _, err := h.Tasks.SetDone(c.Request.Context(), id, req.IsDone); err != nil {
		respondError(c, err, "task does not exist")
		return
	}
	c.JSON(http.StatusOK, true)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "task does not exist")
		return
	}
	c.JSON(http.StatusOK, true)
}

func (h *Handler) DeleteAllTasks(c *gin.Context) {
	n := h.Tasks.DeleteAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// SameDayTasks, NextDayTasks and ThisWeekTasks answer with an empty list, not 404,
// when only the reference task matches.
func (h *Handler) SameDayTasks(c *gin.Context) {
	h.relative(c, h.Tasks.SameDayTasks)
}

func (h *Handler) NextDayTasks(c *gin.Context) {
	h.relative(c, h.Tasks.NextDayTasks)
}

func (h *Handler) ThisWeekTasks(c *gin.Context) {
	h.relative(c, h.Tasks.ThisWeekTasks)
}

type relativeQuery func(ctx context.Context, refID uuid.UUID) ([]domain.Task, error)

func (h *Handler) relative(c *gin.Context, query relativeQuery) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	tasks, err := query(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "task not found")
		return
	}
	c.JSON(http.StatusOK, tasks)
}
