package google

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/workflowhub/internal/core/domain"
)

func TestRateLimiters_ForIsPerServiceAndUser(t *testing.T) {
	r := NewRateLimiters(nil)

	a := r.For(ServiceGmail, "user-a")
	assert.Same(t, a, r.For(ServiceGmail, "user-a"))
	assert.NotSame(t, a, r.For(ServiceGmail, "user-b"))
	assert.NotSame(t, a, r.For(ServiceDrive, "user-a"))
}

func TestRateLimiter_Backoff(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRateLimiters(nil)
	r.now = func() time.Time { return now }
	l := r.For(ServiceCalendar, "user")

	assert.False(t, l.BackingOff())
	l.Backoff(10)
	assert.True(t, l.BackingOff())

	now = now.Add(11 * time.Second)
	assert.False(t, l.BackingOff())
}

func TestRateLimiter_ObserveOnly429(t *testing.T) {
	l := NewRateLimiters(nil).For(ServiceDrive, "user")

	l.Observe(&googleapi.Error{Code: http.StatusInternalServerError})
	assert.False(t, l.BackingOff())

	l.Observe(&googleapi.Error{Code: http.StatusTooManyRequests})
	assert.True(t, l.BackingOff())
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	l := NewRateLimiters(nil).For(ServiceGmail, "user")
	l.Backoff(60)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLimiterKey(t *testing.T) {
	a := LimiterKey(&domain.GoogleTokens{AccessToken: "a1", RefreshToken: "r"})
	b := LimiterKey(&domain.GoogleTokens{AccessToken: "a2", RefreshToken: "r"})
	c := LimiterKey(&domain.GoogleTokens{AccessToken: "a1", RefreshToken: "other"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Empty(t, LimiterKey(nil))
}

func TestRateLimiters_EvictsIdle(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRateLimiters(nil)
	r.now = func() time.Time { return now }

	idle := r.For(ServiceGmail, "idle-user")
	r.For(ServiceGmail, "backing-off").Backoff(int((2 * DefaultIdleTTL).Seconds()))
	assert.Equal(t, 2, r.Len())

	now = now.Add(DefaultIdleTTL + time.Minute)
	active := r.For(ServiceGmail, "active-user")

	assert.Equal(t, 2, r.Len())
	assert.NotSame(t, idle, r.For(ServiceGmail, "idle-user"))
	assert.Same(t, active, r.For(ServiceGmail, "active-user"))
}

func TestRateLimiters_RecentUseKeepsLimiter(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRateLimiters(nil)
	r.now = func() time.Time { return now }

	l := r.For(ServiceDrive, "user")
	now = now.Add(DefaultIdleTTL / 2)
	assert.Same(t, l, r.For(ServiceDrive, "user"))

	now = now.Add(DefaultIdleTTL/2 + time.Minute)
	assert.Same(t, l, r.For(ServiceDrive, "user"))
}
