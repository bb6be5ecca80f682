package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ownership is resolved along the parent chain of each resource: accounts and
// projects carry the owner directly, contributions resolve it through their
// account, allocations through their project. The owner is never duplicated
// onto child rows.
//
// Existence is always checked before ownership, so an unknown ID yields
// ErrResourceNotFound and a foreign one ErrForbidden.

// AccountForUser fetches an account and verifies that it belongs to the user.
func AccountForUser(db *gorm.DB, id, userID uuid.UUID) (Account, error) {
	var account Account
	if err := db.First(&account, id).Error; err != nil {
		return Account{}, err
	}

	if account.UserID != userID {
		return Account{}, ErrForbidden
	}

	return account, nil
}

// ProjectForUser fetches a project and verifies that it belongs to the user.
func ProjectForUser(db *gorm.DB, id, userID uuid.UUID) (Project, error) {
	var project Project
	if err := db.First(&project, id).Error; err != nil {
		return Project{}, err
	}

	if project.UserID != userID {
		return Project{}, ErrForbidden
	}

	return project, nil
}

// ContributionForUser fetches a contribution and verifies, through its
// account, that it belongs to the user.
func ContributionForUser(db *gorm.DB, id, userID uuid.UUID) (Contribution, error) {
	var contribution Contribution
	if err := db.First(&contribution, id).Error; err != nil {
		return Contribution{}, err
	}

	account, err := AccountForUser(db, contribution.AccountID, userID)
	if err != nil {
		return Contribution{}, err
	}

	contribution.Account = account
	return contribution, nil
}

// AllocationForUser fetches an allocation and verifies, through its project,
// that it belongs to the user.
func AllocationForUser(db *gorm.DB, id, userID uuid.UUID) (Allocation, error) {
	var allocation Allocation
	if err := db.First(&allocation, id).Error; err != nil {
		return Allocation{}, err
	}

	if _, err := ProjectForUser(db, allocation.ProjectID, userID); err != nil {
		return Allocation{}, err
	}

	return allocation, nil
}
