package domain

import "time"

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Lock marks an account as temporarily disabled.
// A zero UnlockAt means the lock has no scheduled expiry.
type Lock struct {
	Locked   bool
	UnlockAt time.Time
}

// User is a read-only record owned by the directory. Secret holds the
// credential-verification material: a bcrypt hash under the default wiring,
// or a plaintext password for fixture directories.
type User struct {
	Id          string
	Email       string
	DisplayName string
	Role        Role
	Secret      string
	Lock        *Lock
}

// LockedAt reports whether the account lock is active at the given time.
// A lock whose UnlockAt has passed counts as released; the stored record
// is never mutated (lazy expiry).
func (u *User) LockedAt(now time.Time) bool {
	if u.Lock == nil || !u.Lock.Locked {
		return false
	}
	if !u.Lock.UnlockAt.IsZero() && now.After(u.Lock.UnlockAt) {
		return false
	}
	return true
}
