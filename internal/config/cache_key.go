package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding a user's active session JTI.
func (r *CacheKeyStruct) UserSessionKey(userID uuid.UUID) string {
	return fmt.Sprintf("login:%s", userID)
}

// ScheduleEventChannel returns the Redis PubSub channel carrying class
// lifecycle events for the live schedule stream.
func (r *CacheKeyStruct) ScheduleEventChannel() string {
	return "schedule:events"
}

var CacheKey = NewCacheKeyStruct()
