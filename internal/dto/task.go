package dto

import (
	"sort"
	"time"

	"github.com/avolkova/task-manager-api/internal/models"
)

// TaskDTO represents a task in API responses. The status is exposed as
// its slug and labels as a set of ids; the mixed field naming follows
// the public API contract.
type TaskDTO struct {
	ID           uint64    `json:"id"`
	Index        *int      `json:"index"`
	CreatedAt    time.Time `json:"createdAt"`
	AssigneeID   *uint64   `json:"assignee_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Status       string    `json:"status"`
	TaskLabelIDs []uint64  `json:"taskLabelIds"`
}

// ToTaskDTO converts a Task model to TaskDTO. The task's status must be
// preloaded; labels may be empty.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:         task.ID,
		Index:      task.Index,
		CreatedAt:  task.CreatedAt,
		AssigneeID: task.AssigneeID,
		Title:      task.Title,
		Content:    task.Content,
		Status:     task.TaskStatus.Slug,
	}

	if len(task.Labels) > 0 {
		dto.TaskLabelIDs = make([]uint64, len(task.Labels))
		for i, label := range task.Labels {
			dto.TaskLabelIDs[i] = label.ID
		}
		sort.Slice(dto.TaskLabelIDs, func(i, j int) bool {
			return dto.TaskLabelIDs[i] < dto.TaskLabelIDs[j]
		})
	}

	return dto
}

// ToTaskDTOs converts a slice of Task models to DTOs
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
