package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Contribution represents a single deposit event against one account.
type Contribution struct {
	DefaultModel
	Account   Account `json:"-"`
	AccountID uuid.UUID
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date      time.Time
	Note      string
}

// BeforeSave sets the timezone for the Date to UTC and verifies the note.
func (c *Contribution) BeforeSave(_ *gorm.DB) error {
	if c.Date.IsZero() {
		c.Date = time.Now().In(time.UTC)
	} else {
		c.Date = c.Date.In(time.UTC)
	}

	c.Note = strings.TrimSpace(c.Note)
	if utf8.RuneCountInString(c.Note) > 500 {
		return ErrContributionNoteTooLong
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, see DefaultModel.AfterFind.
func (c *Contribution) AfterFind(tx *gorm.DB) error {
	_ = c.DefaultModel.AfterFind(tx)

	c.Date = c.Date.In(time.UTC)
	return nil
}

// applyBalanceDelta adjusts the running balance of an account by a relative
// amount, as a single relative UPDATE in the database. All writes to
// Account.CurrentBalance go through this function, on the same transaction as
// the contribution write they belong to, so the balance can never drift from
// the recorded contributions.
func applyBalanceDelta(tx *gorm.DB, accountID uuid.UUID, delta decimal.Decimal) error {
	res := tx.Model(&Account{}).
		Where("id = ?", accountID).
		Update("current_balance", gorm.Expr("current_balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w account matching your query", ErrResourceNotFound)
	}

	return nil
}

// RecordContribution inserts a contribution and increments the account's
// running balance. Both writes commit together or not at all.
func RecordContribution(userID, accountID uuid.UUID, amount decimal.Decimal, date time.Time, note string) (Contribution, error) {
	if !amount.IsPositive() {
		return Contribution{}, ErrContributionAmountNotPositive
	}

	var contribution Contribution
	err := DB.Transaction(func(tx *gorm.DB) error {
		account, err := AccountForUser(tx, accountID, userID)
		if err != nil {
			return err
		}

		contribution = Contribution{
			AccountID: account.ID,
			Amount:    amount,
			Date:      date,
			Note:      note,
		}
		if err := tx.Create(&contribution).Error; err != nil {
			return err
		}

		if err := applyBalanceDelta(tx, account.ID, amount); err != nil {
			return err
		}

		contribution.Account = account
		return nil
	})
	if err != nil {
		return Contribution{}, err
	}

	return contribution, nil
}

// ContributionUpdate contains the fields that can be amended on a
// contribution. Nil fields are left unchanged.
type ContributionUpdate struct {
	Amount *decimal.Decimal
	Date   *time.Time
	Note   *string
}

// AmendContribution updates a contribution. When the amount changes, the
// account's running balance is adjusted by the difference in the same
// transaction.
//
// No floor is applied to the resulting balance: inconsistent edits can drive
// it negative, the ledger is permissive here.
func AmendContribution(userID, contributionID uuid.UUID, update ContributionUpdate) (Contribution, error) {
	if update.Amount != nil && !update.Amount.IsPositive() {
		return Contribution{}, ErrContributionAmountNotPositive
	}

	// The save hook only sees the stored row on updates, so the note is
	// checked and trimmed here before it is written
	if update.Note != nil {
		note := strings.TrimSpace(*update.Note)
		if utf8.RuneCountInString(note) > 500 {
			return Contribution{}, ErrContributionNoteTooLong
		}
		update.Note = &note
	}

	var contribution Contribution
	err := DB.Transaction(func(tx *gorm.DB) error {
		var err error
		contribution, err = ContributionForUser(tx, contributionID, userID)
		if err != nil {
			return err
		}

		delta := decimal.Zero
		var fields []string
		toSave := Contribution{}

		if update.Amount != nil {
			delta = update.Amount.Sub(contribution.Amount)
			toSave.Amount = *update.Amount
			fields = append(fields, "Amount")
		}

		if update.Date != nil {
			toSave.Date = *update.Date
			fields = append(fields, "Date")
		}

		if update.Note != nil {
			toSave.Note = *update.Note
			fields = append(fields, "Note")
		}

		if len(fields) == 0 {
			return nil
		}

		if err := tx.Model(&contribution).Select(fields).Updates(toSave).Error; err != nil {
			return err
		}

		if update.Amount != nil {
			contribution.Amount = *update.Amount
		}
		if update.Date != nil {
			contribution.Date = update.Date.In(time.UTC)
		}
		if update.Note != nil {
			contribution.Note = *update.Note
		}

		// Date and note changes do not touch the balance
		if delta.IsZero() {
			return nil
		}

		return applyBalanceDelta(tx, contribution.AccountID, delta)
	})
	if err != nil {
		return Contribution{}, err
	}

	return contribution, nil
}

// RemoveContribution deletes a contribution and decrements the account's
// running balance by its amount, atomically.
//
// Outstanding allocations are not re-validated against the lowered balance:
// the available-balance constraint only gates allocation writes.
func RemoveContribution(userID, contributionID uuid.UUID) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		contribution, err := ContributionForUser(tx, contributionID, userID)
		if err != nil {
			return err
		}

		if err := tx.Delete(&Contribution{}, contribution.ID).Error; err != nil {
			return err
		}

		return applyBalanceDelta(tx, contribution.AccountID, contribution.Amount.Neg())
	})
}
