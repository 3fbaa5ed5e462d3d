package appctx

import (
	"context"
	"sync"
	"time"

	"github.com/samber/mo"
)

// AppContext is the process-wide state shared between the gateway handlers and the
// HTTP status endpoints. It is created once at startup and passed around by pointer.
type AppContext struct {
	startedAt time.Time

	mu     sync.RWMutex
	botTag mo.Option[string]
	botID  mo.Option[string]
}

func NewAppContext(startedAt time.Time) *AppContext {
	return &AppContext{
		startedAt: startedAt,
		botTag:    mo.None[string](),
		botID:     mo.None[string](),
	}
}

// SetBotIdentity records the identity the gateway session logged in as
func (a *AppContext) SetBotIdentity(id, tag string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.botID = mo.Some(id)
	a.botTag = mo.Some(tag)
}

// BotTag returns the logged in bot tag, if the gateway has reported one yet
func (a *AppContext) BotTag() mo.Option[string] {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.botTag
}

func (a *AppContext) BotID() mo.Option[string] {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.botID
}

func (a *AppContext) StartedAt() time.Time {
	return a.startedAt
}

// Uptime returns how long the process has been running, never negative
func (a *AppContext) Uptime(now time.Time) time.Duration {
	uptime := now.Sub(a.startedAt)
	if uptime < 0 {
		return 0
	}
	return uptime
}

// Context key for storing per-invocation values
type contextKey string

const InvocationIDContextKey contextKey = "invocation_id"

// SetInvocationID adds the invocation correlation id to the context
func SetInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, InvocationIDContextKey, id)
}

// GetInvocationID extracts the invocation correlation id from the context
func GetInvocationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(InvocationIDContextKey).(string)
	return id, ok
}
