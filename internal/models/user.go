package models

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is an account holder. It owns all accounts and projects it creates.
type User struct {
	DefaultModel
	Email    string `gorm:"uniqueIndex"`
	Name     string
	Password string `json:"-"` // bcrypt hash, never serialized
}

// BeforeSave trims whitespace and normalizes the email address.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)

	return nil
}

// RegisterUser creates a new user with a bcrypt-hashed password.
func RegisterUser(email, name, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return User{}, ErrEmailInvalid
	}

	if len(password) < 8 {
		return User{}, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		Email:    email,
		Name:     name,
		Password: string(hash),
	}

	err = DB.Create(&user).Error
	if err != nil {
		return User{}, err
	}

	return user, nil
}

// AuthenticateUser verifies an email and password combination.
//
// It deliberately returns the same error for an unknown email and for a wrong
// password so that registered emails cannot be probed.
func AuthenticateUser(email, password string) (User, error) {
	var user User
	err := DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return User{}, ErrCredentialsInvalid
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return User{}, ErrCredentialsInvalid
	}

	return user, nil
}
