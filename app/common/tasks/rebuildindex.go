// Package tasks defines the asynq tasks shared by the indexer worker and its producers.
package tasks

import (
	"encoding/json"
	"time"

	"GogDB/app/common/consts/biz"

	"github.com/hibiken/asynq"
)

type RebuildIndexPayload struct {
	Reason      string `json:"reason"`
	RequestedBy string `json:"requested_by,omitempty"`
	RequestedAt int64  `json:"requested_at"`
}

// NewRebuildIndexTask builds the task that asks the indexer for a full rebuild.
// The task is unique while queued, so repeated requests collapse into one run.
func NewRebuildIndexTask(reason, requestedBy string) (*asynq.Task, error) {
	body, err := json.Marshal(RebuildIndexPayload{
		Reason:      reason,
		RequestedBy: requestedBy,
		RequestedAt: time.Now().Unix(),
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(biz.TaskRebuildIndex, body, RebuildIndexOptions()...), nil
}

func RebuildIndexOptions() []asynq.Option {
	return []asynq.Option{
		asynq.Queue(biz.RebuildQueue),
		asynq.MaxRetry(0),
		asynq.Unique(biz.RebuildUniqueTTL),
	}
}

func ParseRebuildIndexPayload(t *asynq.Task) (RebuildIndexPayload, error) {
	var payload RebuildIndexPayload
	if len(t.Payload()) == 0 {
		return payload, nil
	}
	err := json.Unmarshal(t.Payload(), &payload)
	return payload, err
}
