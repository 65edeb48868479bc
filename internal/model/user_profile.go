package model

import "time"

// Role names assignable to a user profile.  Exactly one role is held at a
// time.  Pending accounts exist in the table but cannot log in until a
// Warden assigns them a real role.
const (
	RolePending        = "Pending"
	RoleWarden         = "Warden"
	RoleSubWarden      = "Sub-Warden"
	RoleInventoryStaff = "Inventory Staff"
)

// ValidRole reports whether s is one of the assignable role names.
func ValidRole(s string) bool {
	switch s {
	case RolePending, RoleWarden, RoleSubWarden, RoleInventoryStaff:
		return true
	}
	return false
}

// UserProfile represents an account record as stored in the
// `user_profiles` table. Each field corresponds to a column. The json
// tags are omitted here because these structs are used internally by the
// repository layer; handlers define separate response types that exclude
// the credential and reset columns.
//
// Fields:
//  ID               – primary key identifier of the user.
//  Username         – unique login name, case-sensitive.
//  PasswordHash     – bcrypt hashed password, never serialized.
//  Email            – contact address, also the password-reset lookup key.
//  FirstName        – optional given name (empty string when unset).
//  LastName         – optional family name (empty string when unset).
//  Role             – one of the Role* constants above.
//  PhoneNumber      – optional contact number (nil when unset).
//  ResetCode        – 6-digit password-reset code (nil when no reset pending).
//  ResetCodeExpires – expiry of the reset code; set and cleared together
//                     with ResetCode.
//  CreatedAt        – timestamp of creation.
//  UpdatedAt        – timestamp of last update.
type UserProfile struct {
	ID               uint64     // user_profiles.id
	Username         string     // user_profiles.username
	PasswordHash     string     // user_profiles.password_hash
	Email            string     // user_profiles.email
	FirstName        string     // user_profiles.first_name
	LastName         string     // user_profiles.last_name
	Role             string     // user_profiles.role
	PhoneNumber      *string    // user_profiles.phone_number (nullable)
	ResetCode        *string    // user_profiles.reset_code (nullable)
	ResetCodeExpires *time.Time // user_profiles.reset_code_expires (nullable)
	CreatedAt        time.Time  // user_profiles.created_at
	UpdatedAt        time.Time  // user_profiles.updated_at
}
