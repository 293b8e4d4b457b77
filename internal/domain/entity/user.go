// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the single persistent entity in the system: one registered account.
// Username and Email are globally unique and immutable after creation, and
// PasswordHash only ever holds the hasher's encoded output, never the
// plaintext password.
type User struct {
	ID           int64     // Numeric identifier assigned by the storage layer at creation.
	Username     string    // Unique login/display name, set at registration.
	Email        string    // Unique contact address, used as the login identifier.
	PasswordHash string    // Encoded output of the password hasher (salt and cost embedded).
	CreatedAt    time.Time // Timestamp of when this account was created.
}
