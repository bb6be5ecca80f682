package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrForbidden        = errors.New("this resource belongs to another user")
)

// User errors
var (
	ErrEmailNotUnique     = errors.New("this email is already registered")
	ErrEmailInvalid       = errors.New("the email address is not valid")
	ErrPasswordTooShort   = errors.New("the password must be at least 8 characters long")
	ErrCredentialsInvalid = errors.New("the email or password is incorrect")
)

// Account errors
var (
	ErrAccountTypeInvalid            = errors.New("the account type is invalid")
	ErrAccountInitialBalanceNegative = errors.New("the initial balance must not be negative")
)

// Contribution errors
var (
	ErrContributionAmountNotPositive = errors.New("contribution amounts must be larger than zero")
	ErrContributionNoteTooLong       = errors.New("contribution notes must not be longer than 500 characters")
)

// Project errors
var (
	ErrProjectTargetNotPositive = errors.New("project target amounts must be larger than zero")
	ErrProjectStatusInvalid     = errors.New("the project status is invalid")
)

// Allocation errors
var (
	ErrAllocationAmountNegative  = errors.New("allocation amounts must not be negative")
	ErrAllocationNotUnique       = errors.New("there already is an allocation for this project and account")
	ErrAllocationProjectMismatch = errors.New("the allocation does not belong to this project")
	ErrInsufficientBalance       = errors.New("insufficient available balance in account")
)

// InsufficientBalanceError is returned when an allocation write would commit
// more of an account's balance than is available. It carries the full numeric
// breakdown so that callers can render the shortfall.
type InsufficientBalanceError struct {
	AccountBalance   decimal.Decimal `json:"accountBalance"`   // The current balance of the account
	OtherAllocations decimal.Decimal `json:"otherAllocations"` // Sum of all other allocations drawing from the account
	AvailableBalance decimal.Decimal `json:"availableBalance"` // Balance minus other allocations
	RequestedAmount  decimal.Decimal `json:"requestedAmount"`  // The amount that was requested
}

func (e InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: %s requested, but only %s available", ErrInsufficientBalance, e.RequestedAmount, e.AvailableBalance)
}

func (e InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
