package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"sportzone-booking/errors"
	"sportzone-booking/model"
)

// Authenticator checks credentials for a role. Implementations must compare usernames
// case-sensitively and must not lock accounts after failures.
type Authenticator interface {
	Authenticate(login, password string, role model.Role) (model.UserData, error)
}

type accountKey struct {
	login string
	role  model.Role
}

// StaticAccounts is an in-memory credential store. Accounts with a password hash are
// checked with bcrypt, the rest by plain comparison.
type StaticAccounts struct {
	accounts map[accountKey]model.UserData
}

func NewStaticAccounts(accounts ...[]model.UserData) *StaticAccounts {
	store := &StaticAccounts{accounts: make(map[accountKey]model.UserData)}
	for _, group := range accounts {
		for _, account := range group {
			store.accounts[accountKey{login: account.Login, role: account.Role}] = account
		}
	}
	return store
}

func (s *StaticAccounts) Authenticate(login, password string, role model.Role) (model.UserData, error) {
	account, ok := s.accounts[accountKey{login: login, role: role}]
	if !ok || !passwordMatches(account, password) {
		return model.UserData{}, fmt.Errorf("%w for %s", errors.ErrInvalidLogin, role)
	}

	account.Password = ""
	return account, nil
}

func passwordMatches(account model.UserData, password string) bool {
	if account.HashedPassword != "" {
		return isPasswordHashCorrect(account.HashedPassword, password)
	}
	return account.Password != "" && account.Password == password
}

func isPasswordHashCorrect(dbHash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(dbHash), []byte(pass))
	return err == nil
}

// HashPassword produces a value for the password_hash field of the config file.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
