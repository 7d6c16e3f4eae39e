package domain

import "errors"

var (
	MessageSuccessPurgeExpired = "expired food items purged"
	MessageFailedPurgeExpired  = "failed to purge expired food items"

	ErrJobAlreadyRunning = errors.New("job already running")
)

type PurgeResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
