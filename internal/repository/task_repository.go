package repository

import (
	"strings"

	"github.com/avolkova/task-manager-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// List retrieves tasks matching the filter. Each nil filter field is
// "no constraint"; set fields combine with AND. Results come back in
// creation order (ascending ID) since the API contract defines no
// explicit sort.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	query := r.db.Model(&models.Task{})

	if filter.TitleCont != nil {
		pattern := "%" + strings.ToLower(*filter.TitleCont) + "%"
		query = query.Where("LOWER(tasks.title) LIKE ?", pattern)
	}
	if filter.AssigneeID != nil {
		query = query.Where("tasks.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Status != nil {
		statusSubQuery := r.db.Model(&models.TaskStatus{}).
			Select("1").
			Where("task_statuses.id = tasks.task_status_id").
			Where("task_statuses.slug = ?", *filter.Status)
		query = query.Where("EXISTS (?)", statusSubQuery)
	}
	if filter.LabelID != nil {
		labelSubQuery := r.db.Table("task_labels").
			Select("1").
			Where("task_labels.task_id = tasks.id").
			Where("task_labels.label_id = ?", *filter.LabelID)
		query = query.Where("EXISTS (?)", labelSubQuery)
	}

	var tasks []models.Task
	if err := query.
		Order("tasks.id").
		Preload("TaskStatus").
		Preload("Assignee").
		Preload("Labels").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Create creates a new task together with its label associations
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with status, assignee and labels preloaded
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.
		Preload("TaskStatus").
		Preload("Assignee").
		Preload("Labels").
		First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update updates a task's own columns. Associations are omitted so a
// stale preloaded Assignee or TaskStatus cannot overwrite the foreign
// key columns; labels are managed separately through ReplaceLabels.
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Omit("Labels", "Assignee", "TaskStatus").Save(task).Error
}

// ReplaceLabels replaces the task's label associations
func (r *GormTaskRepository) ReplaceLabels(task *models.Task, labels []models.Label) error {
	return r.db.Model(task).Association("Labels").Replace(labels)
}

// Delete removes a task and its label associations
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_labels WHERE task_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}
