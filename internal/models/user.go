package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Card endpoint roles.
const (
	// RoleCardOwner grants access to the card endpoints.
	RoleCardOwner = "CARD-OWNER"
	// RoleNonOwner marks a principal with no card access.
	RoleNonOwner = "NON-OWNER"
)

// User represents an account that can authenticate against the API.
type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Username string `gorm:"type:text;not null;uniqueIndex"` // Unique login name.
	Password string `gorm:"type:text;not null"`             // Hashed password.

	Roles datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"` // Role names in JSON.

	Disabled bool `gorm:"not null;default:false"` // Whether sign-in is blocked.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// RoleNames decodes the JSON role column into a string slice.
// Unparseable content yields an empty set rather than an error; a user with
// a broken role column simply holds no roles.
func (u *User) RoleNames() []string {
	if len(u.Roles) == 0 {
		return nil
	}
	var roles []string
	if err := json.Unmarshal(u.Roles, &roles); err != nil {
		return nil
	}
	return roles
}

// EncodeRoles serializes role names for storage in the JSON role column.
func EncodeRoles(roles []string) datatypes.JSON {
	if roles == nil {
		roles = []string{}
	}
	data, err := json.Marshal(roles)
	if err != nil {
		return datatypes.JSON(`[]`)
	}
	return datatypes.JSON(data)
}
