package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/monitoring/logging"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// releaseScript deletes the lock key only when it still holds this owner's
// token, so an expired lock taken over by another run is never released from
// here.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RunLock serializes scheduling runs per scope with a Redis SET NX lock. The
// TTL bounds how long a crashed run can block its scope.
type RunLock struct {
	client *Client
	ttl    time.Duration
	log    logging.Logger
}

// NewRunLock builds a run lock with the given TTL.
func NewRunLock(client *Client, ttl time.Duration, log logging.Logger) *RunLock {
	if log == nil {
		log = logging.NewNop()
	}
	return &RunLock{client: client, ttl: ttl, log: log.Named("runlock")}
}

// TryAcquire attempts to take the scope's run lock without blocking. When the
// lock is already held it fails with ErrCodeScopeLocked; on success it
// returns a release function bound to this acquisition's token.
func (l *RunLock) TryAcquire(ctx context.Context, scopeID common.ScopeID) (func(context.Context), error) {
	key := l.client.Key("runlock", scopeID.String())
	token := uuid.NewString()

	ok, err := l.client.Raw().SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "acquire run lock")
	}
	if !ok {
		return nil, errors.Newf(errors.ErrCodeScopeLocked,
			"scheduling run already in progress for scope %s", scopeID)
	}

	release := func(ctx context.Context) {
		if err := releaseScript.Run(ctx, l.client.Raw(), []string{key}, token).Err(); err != nil {
			l.log.Warn("releasing run lock failed",
				logging.String("scope_id", scopeID.String()),
				logging.Err(err),
			)
		}
	}
	return release, nil
}
