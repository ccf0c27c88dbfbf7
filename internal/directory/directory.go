// Package directory provides the read-only user directory the auth service
// resolves identities against. The service never mutates it; a real storage
// backend can be substituted behind the Directory interface.
package directory

import (
	"strings"
	"time"

	"github.com/practice-labs/loginsvc/internal/config"
	"github.com/practice-labs/loginsvc/internal/domain"
)

type Directory interface {
	// Lookup resolves a normalized email to a user record.
	Lookup(email string) (domain.User, bool)
}

// NormalizeEmail trims surrounding whitespace and lowercases. Directory keys
// are always normalized; lookups must normalize before matching.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Static is an in-memory Directory snapshot keyed by normalized email.
// It is immutable after construction and safe for concurrent reads.
type Static struct {
	users map[string]domain.User
}

func NewStatic(users []domain.User) *Static {
	m := make(map[string]domain.User, len(users))
	for _, u := range users {
		m[NormalizeEmail(u.Email)] = u
	}
	return &Static{users: m}
}

func (s *Static) Lookup(email string) (domain.User, bool) {
	u, ok := s.users[NormalizeEmail(email)]
	return u, ok
}

// FromConfig builds a Static directory from config seed entries.
// Relative unlock offsets are resolved against the current time once, at load.
func FromConfig(entries []config.UserEntry) *Static {
	users := make([]domain.User, 0, len(entries))
	for _, e := range entries {
		u := domain.User{
			Id:          e.Id,
			Email:       NormalizeEmail(e.Email),
			DisplayName: e.DisplayName,
			Role:        domain.Role(e.Role),
			Secret:      e.Secret,
		}
		if e.Locked {
			lock := &domain.Lock{Locked: true}
			if e.UnlockInMinutes > 0 {
				lock.UnlockAt = time.Now().Add(time.Duration(e.UnlockInMinutes) * time.Minute)
			}
			u.Lock = lock
		}
		users = append(users, u)
	}
	return NewStatic(users)
}
