package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// resolutionKeyPrefix is the prefix for all resolution notice claim keys
	resolutionKeyPrefix = "resolution_notice:"
	// DefaultResolutionClaimTTL bounds how long a claim is held. A ticket
	// reopened and resolved again after this window produces a fresh notice.
	DefaultResolutionClaimTTL = 24 * time.Hour
)

// ResolutionDeduplicator provides Redis-based deduplication of
// resolution notices across dashboard instances.
type ResolutionDeduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResolutionDeduplicator creates a new ResolutionDeduplicator instance
func NewResolutionDeduplicator(client *redis.Client) *ResolutionDeduplicator {
	return &ResolutionDeduplicator{
		client: client,
		ttl:    DefaultResolutionClaimTTL,
	}
}

// buildKey builds the Redis key for a resolution claim
// Format: resolution_notice:{ticket_id}
func (d *ResolutionDeduplicator) buildKey(ticketID uint) string {
	return fmt.Sprintf("%s%d", resolutionKeyPrefix, ticketID)
}

// Claim atomically claims the resolution notice for a ticket using SetNX.
// Returns true only for the first caller across all instances. This
// prevents TOCTOU race conditions in multi-instance deployments.
func (d *ResolutionDeduplicator) Claim(ctx context.Context, ticketID uint) (bool, error) {
	key := d.buildKey(ticketID)

	// SetNX is atomic: only sets if key doesn't exist
	claimed, err := d.client.SetNX(ctx, key, "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim resolution notice: %w", err)
	}

	return claimed, nil
}

// Release clears the claim for a ticket. Used when a claimed notice
// could not be handed to the mailer and should be claimable again.
func (d *ResolutionDeduplicator) Release(ctx context.Context, ticketID uint) error {
	key := d.buildKey(ticketID)

	if err := d.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release resolution claim: %w", err)
	}

	return nil
}
