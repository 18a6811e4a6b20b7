package repository

import (
	"fmt"

	"github.com/avolkova/task-manager-api/internal/models"
	"gorm.io/gorm"
)

// GormLabelRepository is a GORM implementation of LabelRepository
type GormLabelRepository struct {
	db *gorm.DB
}

// NewLabelRepository creates a new LabelRepository
func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &GormLabelRepository{db: db}
}

// List retrieves all labels in creation order
func (r *GormLabelRepository) List() ([]models.Label, error) {
	var labels []models.Label
	if err := r.db.Order("labels.id").Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// Create creates a new label
func (r *GormLabelRepository) Create(label *models.Label) error {
	return r.db.Create(label).Error
}

// FindByID finds a label by ID
func (r *GormLabelRepository) FindByID(id uint64) (*models.Label, error) {
	var label models.Label
	if err := r.db.First(&label, id).Error; err != nil {
		return nil, err
	}
	return &label, nil
}

// FindByIDs finds all labels whose ID is in the given set
func (r *GormLabelRepository) FindByIDs(ids []uint64) ([]models.Label, error) {
	var labels []models.Label
	if len(ids) == 0 {
		return labels, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&labels).Error; err != nil {
		return nil, err
	}
	return labels, nil
}

// Update updates a label
func (r *GormLabelRepository) Update(label *models.Label) error {
	return r.db.Save(label).Error
}

// Delete removes a label unless a task still carries it.
func (r *GormLabelRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var referencing int64
		if err := tx.Table("task_labels").
			Where("label_id = ?", id).
			Count(&referencing).Error; err != nil {
			return fmt.Errorf("failed to count referencing tasks: %w", err)
		}
		if referencing > 0 {
			return ErrReferenced
		}

		return tx.Delete(&models.Label{}, id).Error
	})
}
