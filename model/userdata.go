package model

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	// RoleGuest is the role of the flat menu, which has no login step.
	RoleGuest Role = "guest"
)

type UserData struct {
	Login          string `json:"login" yaml:"login"`
	Password       string `json:"-" yaml:"password,omitempty"`
	HashedPassword string `json:"password_hash" yaml:"password_hash,omitempty"`
	Role           Role   `json:"role" yaml:"role"`
}
