package database

import (
	"errors"
	"fmt"

	"github.com/avolkova/task-manager-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const seedAdminEmail = "hexlet@example.com"

// Seed inserts the default admin user, task statuses, labels and a few
// sample tasks. Every step is idempotent so it can run on each startup.
func Seed(db *gorm.DB) error {
	admin, err := seedAdmin(db)
	if err != nil {
		return err
	}

	draft, err := seedStatus(db, "Draft", "draft")
	if err != nil {
		return err
	}
	toReview, err := seedStatus(db, "ToReview", "to_review")
	if err != nil {
		return err
	}
	toPublish, err := seedStatus(db, "ToPublish", "to_publish")
	if err != nil {
		return err
	}

	bug, err := seedLabel(db, "bug")
	if err != nil {
		return err
	}
	feature, err := seedLabel(db, "feature")
	if err != nil {
		return err
	}

	var taskCount int64
	if err := db.Model(&models.Task{}).Count(&taskCount).Error; err != nil {
		return fmt.Errorf("failed to count tasks: %w", err)
	}
	if taskCount > 0 {
		return nil
	}

	one, two, three := 1, 2, 3
	tasks := []models.Task{
		{
			Title:        "First task",
			Index:        &one,
			Content:      "This is the first task",
			TaskStatusID: draft.ID,
			AssigneeID:   &admin.ID,
		},
		{
			Title:        "Second task",
			Index:        &two,
			Content:      "This is the second task",
			TaskStatusID: toReview.ID,
			AssigneeID:   &admin.ID,
		},
		{
			Title:        "Third task",
			Index:        &three,
			Content:      "This is the third task",
			TaskStatusID: toPublish.ID,
			AssigneeID:   &admin.ID,
			Labels:       []models.Label{*bug, *feature},
		},
	}
	for i := range tasks {
		if err := db.Create(&tasks[i]).Error; err != nil {
			return fmt.Errorf("failed to seed task %q: %w", tasks[i].Title, err)
		}
	}

	return nil
}

func seedAdmin(db *gorm.DB) (*models.User, error) {
	var admin models.User
	err := db.Where("email = ?", seedAdminEmail).First(&admin).Error
	if err == nil {
		return &admin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up seed admin: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed admin password: %w", err)
	}

	admin = models.User{
		FirstName:    "Hexlet",
		LastName:     "User",
		Email:        seedAdminEmail,
		PasswordHash: string(hashed),
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create seed admin: %w", err)
	}
	return &admin, nil
}

func seedStatus(db *gorm.DB, name, slug string) (*models.TaskStatus, error) {
	var status models.TaskStatus
	err := db.Where("slug = ?", slug).First(&status).Error
	if err == nil {
		return &status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up status %q: %w", slug, err)
	}

	status = models.TaskStatus{Name: name, Slug: slug}
	if err := db.Create(&status).Error; err != nil {
		return nil, fmt.Errorf("failed to create status %q: %w", slug, err)
	}
	return &status, nil
}

func seedLabel(db *gorm.DB, name string) (*models.Label, error) {
	var label models.Label
	err := db.Where("name = ?", name).First(&label).Error
	if err == nil {
		return &label, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up label %q: %w", name, err)
	}

	label = models.Label{Name: name}
	if err := db.Create(&label).Error; err != nil {
		return nil, fmt.Errorf("failed to create label %q: %w", name, err)
	}
	return &label, nil
}
