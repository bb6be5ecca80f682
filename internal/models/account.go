package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// AccountType categorizes a savings account. The type is a label only, it has
// no effect on how balances are handled.
type AccountType string

const (
	AccountTypeLEP     AccountType = "LEP"
	AccountTypePEL     AccountType = "PEL"
	AccountTypeLivretA AccountType = "LIVRET_A"
	AccountTypeAutre   AccountType = "AUTRE"
)

// Account represents a savings account, e.g. a regulated French savings
// product.
//
// CurrentBalance is a running total. It is only ever written by the
// contribution ledger operations, which adjust it by relative deltas in the
// same transaction as the contribution write. InitialBalance is the snapshot
// taken at creation and is never changed afterwards, so at all times
// CurrentBalance = InitialBalance + sum of all contribution amounts.
type Account struct {
	DefaultModel
	User           User `json:"-"`
	UserID         uuid.UUID
	Name           string
	Type           AccountType
	InterestRate   decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // informational only, not compounded
	InitialBalance decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	CurrentBalance decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var accountTypes = []AccountType{AccountTypeLEP, AccountTypePEL, AccountTypeLivretA, AccountTypeAutre}

// BeforeSave trims whitespace and verifies the account type.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)

	if a.Type == "" {
		a.Type = AccountTypeAutre
	}

	if !slices.Contains(accountTypes, a.Type) {
		return ErrAccountTypeInvalid
	}

	return nil
}

// BeforeUpdate verifies the values of an update. On updates the other hooks
// run against the stored row, so the type check here reads the update
// payload from the statement.
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	// Relative balance writes pass a column map, there is no payload
	// struct to verify
	toSave, ok := tx.Statement.Dest.(Account)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Type") && !slices.Contains(accountTypes, toSave.Type) {
		return ErrAccountTypeInvalid
	}

	return nil
}

// BeforeCreate starts the running balance at the initial balance and verifies
// references to other resources.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	if a.InitialBalance.IsNegative() {
		return ErrAccountInitialBalanceNegative
	}
	a.CurrentBalance = a.InitialBalance

	return tx.First(&User{}, a.UserID).Error
}

// Contributions returns all contributions for this account, newest first.
func (a Account) Contributions(db *gorm.DB) ([]Contribution, error) {
	var contributions []Contribution
	err := db.Where(&Contribution{AccountID: a.ID}).Order("datetime(date) DESC").Find(&contributions).Error
	return contributions, err
}

// ContributionCount returns the number of contributions recorded for this
// account.
func (a Account) ContributionCount(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&Contribution{}).Where("account_id = ?", a.ID).Count(&count).Error
	return count, err
}

// Allocations returns all allocations drawing from this account with their
// projects.
func (a Account) Allocations(db *gorm.DB) ([]Allocation, error) {
	var allocations []Allocation
	err := db.Preload("Project").Where(&Allocation{AccountID: a.ID}).Find(&allocations).Error
	return allocations, err
}

// Availability describes how much of an account's balance is not yet
// committed to a project.
type Availability struct {
	Balance   decimal.Decimal // the account's current balance
	Allocated decimal.Decimal // sum of the considered allocations
	Available decimal.Decimal // Balance - Allocated
}

// AccountAvailability sums all allocations drawing from the account, except
// the one identified by exclude, and subtracts them from the current balance.
//
// Callers that follow up with an allocation write must run this on the same
// transaction as the write. Together with the single-connection pool this
// rules out two concurrent writers both seeing a stale available balance.
func AccountAvailability(tx *gorm.DB, account Account, exclude uuid.UUID) (Availability, error) {
	var allocated decimal.NullDecimal

	err := tx.Model(&Allocation{}).
		Where("account_id = ?", account.ID).
		Where("id != ?", exclude).
		Select("SUM(amount)").
		Row().
		Scan(&allocated)
	if err != nil {
		return Availability{}, err
	}

	return Availability{
		Balance:   account.CurrentBalance,
		Allocated: allocated.Decimal,
		Available: account.CurrentBalance.Sub(allocated.Decimal),
	}, nil
}

// DeleteAccount removes an account together with its contributions and the
// allocations drawing from it, all in one transaction.
func DeleteAccount(userID, accountID uuid.UUID) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		account, err := AccountForUser(tx, accountID, userID)
		if err != nil {
			return err
		}

		err = tx.Where("account_id = ?", account.ID).Delete(&Contribution{}).Error
		if err != nil {
			return err
		}

		err = tx.Where("account_id = ?", account.ID).Delete(&Allocation{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&Account{}, account.ID).Error
	})
}
