package repository

import (
	"fmt"

	"github.com/avolkova/task-manager-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskStatusRepository is a GORM implementation of TaskStatusRepository
type GormTaskStatusRepository struct {
	db *gorm.DB
}

// NewTaskStatusRepository creates a new TaskStatusRepository
func NewTaskStatusRepository(db *gorm.DB) TaskStatusRepository {
	return &GormTaskStatusRepository{db: db}
}

// List retrieves all task statuses in creation order
func (r *GormTaskStatusRepository) List() ([]models.TaskStatus, error) {
	var statuses []models.TaskStatus
	if err := r.db.Order("task_statuses.id").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// Create creates a new task status
func (r *GormTaskStatusRepository) Create(status *models.TaskStatus) error {
	return r.db.Create(status).Error
}

// FindByID finds a task status by ID
func (r *GormTaskStatusRepository) FindByID(id uint64) (*models.TaskStatus, error) {
	var status models.TaskStatus
	if err := r.db.First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// FindBySlug finds a task status by its slug
func (r *GormTaskStatusRepository) FindBySlug(slug string) (*models.TaskStatus, error) {
	var status models.TaskStatus
	if err := r.db.Where("slug = ?", slug).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// Update updates a task status
func (r *GormTaskStatusRepository) Update(status *models.TaskStatus) error {
	return r.db.Save(status).Error
}

// Delete removes a task status unless a task still references it.
func (r *GormTaskStatusRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var referencing int64
		if err := tx.Model(&models.Task{}).
			Where("task_status_id = ?", id).
			Count(&referencing).Error; err != nil {
			return fmt.Errorf("failed to count referencing tasks: %w", err)
		}
		if referencing > 0 {
			return ErrReferenced
		}

		return tx.Delete(&models.TaskStatus{}, id).Error
	})
}
