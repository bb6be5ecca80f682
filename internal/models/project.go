package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// ProjectStatus is a label set by the owner. It is never transitioned
// automatically, reaching the target amount does not complete a project.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusArchived  ProjectStatus = "ARCHIVED"
)

// Project is a savings goal that draws allocations from one or more accounts.
type Project struct {
	DefaultModel
	User         User `json:"-"`
	UserID       uuid.UUID
	Name         string
	Description  string
	Emoji        string
	TargetAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	TargetDate   *time.Time
	Status       ProjectStatus
}

var projectStatuses = []ProjectStatus{ProjectStatusActive, ProjectStatusCompleted, ProjectStatusArchived}

// BeforeSave trims whitespace and verifies the status.
func (p *Project) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)

	if p.Status == "" {
		p.Status = ProjectStatusActive
	}

	if !slices.Contains(projectStatuses, p.Status) {
		return ErrProjectStatusInvalid
	}

	return nil
}

// BeforeUpdate verifies the values of an update. On updates the other hooks
// run against the stored row, so the status check here reads the update
// payload from the statement.
func (p *Project) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Project)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Status") && !slices.Contains(projectStatuses, toSave.Status) {
		return ErrProjectStatusInvalid
	}

	return nil
}

// BeforeCreate verifies the target amount and references to other resources.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	if !p.TargetAmount.IsPositive() {
		return ErrProjectTargetNotPositive
	}

	return tx.First(&User{}, p.UserID).Error
}

// Allocations returns all allocations for this project with their accounts.
func (p Project) Allocations(db *gorm.DB) ([]Allocation, error) {
	var allocations []Allocation
	err := db.Preload("Account").Where(&Allocation{ProjectID: p.ID}).Find(&allocations).Error
	return allocations, err
}

// Allocated returns the sum of all allocation amounts for this project.
func (p Project) Allocated(db *gorm.DB) (decimal.Decimal, error) {
	var allocated decimal.NullDecimal

	err := db.Model(&Allocation{}).
		Where("project_id = ?", p.ID).
		Select("SUM(amount)").
		Row().
		Scan(&allocated)
	if err != nil {
		return decimal.Zero, err
	}

	return allocated.Decimal, nil
}

// Progress is the rounded percentage of the target covered by the allocated
// amount. A target that is zero or unset yields 0 instead of a division by
// zero.
func Progress(allocated, target decimal.Decimal) int64 {
	if !target.IsPositive() {
		return 0
	}

	return allocated.Div(target).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// DeleteProject removes a project together with its allocations, in one
// transaction.
func DeleteProject(userID, projectID uuid.UUID) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		project, err := ProjectForUser(tx, projectID, userID)
		if err != nil {
			return err
		}

		err = tx.Where("project_id = ?", project.ID).Delete(&Allocation{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&Project{}, project.ID).Error
	})
}
