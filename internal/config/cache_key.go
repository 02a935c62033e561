package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionPaperKey returns the cache key for a session's question paper.
func (r *CacheKeyStruct) SessionPaperKey(sessionID string) string {
	return fmt.Sprintf("session:%s:paper", sessionID)
}

// SessionMonitorChannel returns the Pub/Sub channel carrying a session's
// live proctoring events for the invigilator feed.
func (r *CacheKeyStruct) SessionMonitorChannel(sessionID string) string {
	return fmt.Sprintf("session:%s:monitor", sessionID)
}

// OperatorSessionKey returns the cache key for an operator's login session.
func (r *CacheKeyStruct) OperatorSessionKey(operatorID int) string {
	return fmt.Sprintf("operator_login:%d", operatorID)
}

var CacheKey = NewCacheKeyStruct()
