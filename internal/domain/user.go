package domain

// User is the domain model for storefront accounts.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
}
