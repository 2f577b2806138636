// Package rolecache keeps resolved user roles for a bounded time so that
// authorization does not hit the users table on every request.
package rolecache

import (
	"context"
	"time"

	"github.com/greenpasture/payroll-backend-go/internal/domain/user"
)

// DefaultTTL is how long a resolved role stays valid.
const DefaultTTL = 5 * time.Minute

type Cache interface {
	// Get reports ok=false on a miss or an expired entry.
	Get(ctx context.Context, userID string) (role user.Role, ok bool, err error)
	Set(ctx context.Context, userID string, role user.Role) error
	// Invalidate drops the entry; called on logout.
	Invalidate(ctx context.Context, userID string) error
}
