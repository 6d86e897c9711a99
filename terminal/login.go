package terminal

import (
	"strings"

	"github.com/sirupsen/logrus"

	"sportzone-booking/auth"
	"sportzone-booking/model"
)

// login loops until a valid login or Exit. Failed attempts are not counted.
func (c *Console) login(authenticator auth.Authenticator, policy auth.Policy) (auth.Session, bool) {
	for {
		c.heading("SPORTZONE EVENTS - LOGIN")
		c.printf("1. Login as User\n2. Login as Admin\n3. Exit Program\n")

		choice, ok := c.prompt("\nSelect option (1-3): ")
		if !ok {
			return auth.Session{}, false
		}

		var role model.Role
		var prefix string
		switch strings.TrimSpace(choice) {
		case "1":
			role = model.RoleUser
		case "2":
			role, prefix = model.RoleAdmin, "admin "
		case "3":
			c.printf("\nGoodbye!\n")
			return auth.Session{}, false
		default:
			c.printf("Invalid option. Please enter 1, 2, or 3.\n")
			continue
		}

		username, ok := c.prompt("Enter " + prefix + "username: ")
		if !ok {
			return auth.Session{}, false
		}
		password, ok := c.prompt("Enter " + prefix + "password: ")
		if !ok {
			return auth.Session{}, false
		}

		user, err := authenticator.Authenticate(username, password, role)
		if err != nil {
			c.logger.WithField("role", role).Info("login failed")
			if role == model.RoleAdmin {
				c.printf("Invalid admin username or password. Try again.\n")
			} else {
				c.printf("Invalid username or password. Try again.\n")
			}
			continue
		}

		session := auth.NewSession(user, policy)
		c.logger.WithFields(logrus.Fields{
			"session_id": session.ID,
			"role":       role,
		}).Info("login succeeded")
		if role == model.RoleAdmin {
			c.printf("\nWelcome, Admin %s!\n", user.Login)
		} else {
			c.printf("\nWelcome, %s!\n", user.Login)
		}
		return session, true
	}
}
