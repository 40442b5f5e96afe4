package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/application/scheduling"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/monitoring/logging"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// ComplianceCache stores compliance summaries in Redis with a bounded TTL.
// Cache failures degrade to a recompute; they are logged, never surfaced.
type ComplianceCache struct {
	client *Client
	ttl    time.Duration
	log    logging.Logger
}

// NewComplianceCache builds a cache with the given TTL.
func NewComplianceCache(client *Client, ttl time.Duration, log logging.Logger) *ComplianceCache {
	if log == nil {
		log = logging.NewNop()
	}
	return &ComplianceCache{client: client, ttl: ttl, log: log.Named("compliance_cache")}
}

func (c *ComplianceCache) key(equipmentID common.ID) string {
	return c.client.Key("compliance", equipmentID.String())
}

// Get returns the cached record for an asset, or ok=false on a miss or any
// cache failure.
func (c *ComplianceCache) Get(ctx context.Context, equipmentID common.ID) (*scheduling.ComplianceRecord, bool) {
	raw, err := c.client.Raw().Get(ctx, c.key(equipmentID)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("compliance cache read failed",
				logging.String("equipment_id", equipmentID.String()),
				logging.Err(err),
			)
		}
		return nil, false
	}

	var record scheduling.ComplianceRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		c.log.Warn("compliance cache entry corrupt, dropping",
			logging.String("equipment_id", equipmentID.String()),
			logging.Err(err),
		)
		_ = c.client.Raw().Del(ctx, c.key(equipmentID)).Err()
		return nil, false
	}
	return &record, true
}

// Set stores a record with the configured TTL.
func (c *ComplianceCache) Set(ctx context.Context, record *scheduling.ComplianceRecord) {
	raw, err := json.Marshal(record)
	if err != nil {
		c.log.Warn("compliance record not serializable", logging.Err(err))
		return
	}
	if err := c.client.Raw().Set(ctx, c.key(record.EquipmentID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("compliance cache write failed",
			logging.String("equipment_id", record.EquipmentID.String()),
			logging.Err(err),
		)
	}
}
