package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Allocation commits a part of one account's balance to one project.
//
// There is at most one allocation per (project, account) pair, and for every
// account the sum of its allocation amounts never exceeds the account's
// current balance. Both rules are enforced on every allocation write, inside
// the write's transaction. An amount of exactly zero is allowed and marks a
// reserved but empty allocation.
type Allocation struct {
	DefaultModel
	Project   Project         `json:"-"`
	ProjectID uuid.UUID       `gorm:"uniqueIndex:allocation_project_account"`
	Account   Account         `json:"-"`
	AccountID uuid.UUID       `gorm:"uniqueIndex:allocation_project_account"`
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

// BeforeCreate verifies references to other resources.
func (a *Allocation) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	if err := tx.First(&Project{}, a.ProjectID).Error; err != nil {
		return err
	}

	return tx.First(&Account{}, a.AccountID).Error
}

// UpsertAllocation creates the allocation for the (project, account) pair or,
// when one already exists, updates its amount. The caller must own both the
// project and the account.
//
// The write is admitted only when the requested amount fits into the
// account's available balance, with the pair's existing allocation excluded
// from the sum. Check and write run in one transaction.
func UpsertAllocation(userID, projectID, accountID uuid.UUID, amount decimal.Decimal) (Allocation, error) {
	if amount.IsNegative() {
		return Allocation{}, ErrAllocationAmountNegative
	}

	var allocation Allocation
	err := DB.Transaction(func(tx *gorm.DB) error {
		project, err := ProjectForUser(tx, projectID, userID)
		if err != nil {
			return err
		}

		account, err := AccountForUser(tx, accountID, userID)
		if err != nil {
			return err
		}

		// Look up the existing allocation for the pair, if any
		var existing Allocation
		exclude := uuid.Nil
		err = tx.Where(&Allocation{ProjectID: project.ID, AccountID: account.ID}).First(&existing).Error
		found := err == nil
		if err != nil && !errors.Is(err, ErrResourceNotFound) {
			return err
		}
		if found {
			exclude = existing.ID
		}

		availability, err := AccountAvailability(tx, account, exclude)
		if err != nil {
			return err
		}

		if amount.GreaterThan(availability.Available) {
			return InsufficientBalanceError{
				AccountBalance:   availability.Balance,
				OtherAllocations: availability.Allocated,
				AvailableBalance: availability.Available,
				RequestedAmount:  amount,
			}
		}

		if !found {
			allocation = Allocation{
				ProjectID: project.ID,
				AccountID: account.ID,
				Amount:    amount,
			}
			if err := tx.Create(&allocation).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&existing).Select("Amount").Updates(Allocation{Amount: amount}).Error; err != nil {
				return err
			}
			existing.Amount = amount
			allocation = existing
		}

		allocation.Account = account
		return nil
	})
	if err != nil {
		return Allocation{}, err
	}

	return allocation, nil
}

// UpdateAllocationAmount changes the amount of an existing allocation,
// running the same admissibility check as UpsertAllocation with the
// allocation itself excluded from the sum. Ownership is checked through the
// allocation's project.
func UpdateAllocationAmount(userID, allocationID uuid.UUID, amount decimal.Decimal) (Allocation, error) {
	if amount.IsNegative() {
		return Allocation{}, ErrAllocationAmountNegative
	}

	var allocation Allocation
	err := DB.Transaction(func(tx *gorm.DB) error {
		var err error
		allocation, err = AllocationForUser(tx, allocationID, userID)
		if err != nil {
			return err
		}

		var account Account
		if err := tx.First(&account, allocation.AccountID).Error; err != nil {
			return err
		}

		availability, err := AccountAvailability(tx, account, allocation.ID)
		if err != nil {
			return err
		}

		if amount.GreaterThan(availability.Available) {
			return InsufficientBalanceError{
				AccountBalance:   availability.Balance,
				OtherAllocations: availability.Allocated,
				AvailableBalance: availability.Available,
				RequestedAmount:  amount,
			}
		}

		if err := tx.Model(&allocation).Select("Amount").Updates(Allocation{Amount: amount}).Error; err != nil {
			return err
		}

		allocation.Amount = amount
		allocation.Account = account
		return nil
	})
	if err != nil {
		return Allocation{}, err
	}

	return allocation, nil
}

// DeleteAllocation removes an allocation. Deleting can only free balance, so
// no admissibility check is needed.
func DeleteAllocation(userID, allocationID uuid.UUID) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		allocation, err := AllocationForUser(tx, allocationID, userID)
		if err != nil {
			return err
		}

		return tx.Delete(&Allocation{}, allocation.ID).Error
	})
}
