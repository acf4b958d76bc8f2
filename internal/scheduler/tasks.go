// Package scheduler runs background work over asynq: the periodic sweep
// that cancels drafts whose TTL elapsed.
package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskDraftExpiry = "chat.drafts.expire"

// DraftExpiryPayload carries the sweep trigger time, for tracing.
type DraftExpiryPayload struct {
	TriggeredAt time.Time `json:"triggeredAt"`
}

func NewDraftExpiryTask(payload DraftExpiryPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDraftExpiry, data), nil
}

func ParseDraftExpiryPayload(task *asynq.Task) (DraftExpiryPayload, error) {
	var payload DraftExpiryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DraftExpiryPayload{}, err
	}
	return payload, nil
}
