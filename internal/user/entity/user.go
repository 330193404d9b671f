package entity

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is one credential record in the `users` table. PasswordHash never
// leaves the service: it has no JSON name.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// PublicView is the projection returned by register and login.
type PublicView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() PublicView {
	return PublicView{ID: u.ID, Name: u.Name, Email: u.Email}
}
