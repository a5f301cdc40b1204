package models

import (
	"time"
)

// HeadIdentity is a pre-provisioned department-head slot based on the
// 'head_identities' table. Slots are issued out-of-band by an administrator;
// the registration flow transitions a slot from unregistered to registered
// exactly once. Once registered, the password hash, the registered flag, and
// the linked account id are all set together and stay set.
type HeadIdentity struct {
	ID               int64     `json:"id" db:"id"`
	HodID            string    `json:"hodId" db:"hod_id"`
	Name             string    `json:"name" db:"name"`
	Department       string    `json:"department" db:"department"`
	Password         *string   `json:"-" db:"password"` // nil until registration
	IsRegistered     bool      `json:"isRegistered" db:"is_registered"`
	RegisteredUserID *int64    `json:"registeredUserId,omitempty" db:"registered_user_id"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}
