package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"GogDB/app/services/indexer/internal/logic"
	"GogDB/app/services/indexer/internal/svc"

	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/logx"
)

func newIndexRebuiltEvent(outcome *logic.RebuildOutcome) IndexRebuiltEvent {
	return IndexRebuiltEvent{
		RunId:      outcome.RunId,
		Reason:     outcome.Reason,
		Products:   outcome.Stats.Products,
		Changelog:  outcome.Stats.Changelog,
		Summaries:  outcome.Stats.Summaries,
		StartedAt:  outcome.StartedAt.Unix(),
		FinishedAt: outcome.FinishedAt.Unix(),
	}
}

// PublishIndexRebuilt sends evt to the rebuild topic. Without a configured writer it
// does nothing.
func PublishIndexRebuilt(ctx context.Context, sc *svc.ServiceContext, evt IndexRebuiltEvent) error {
	if sc.KafkaWriter == nil {
		return nil
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	msg := kafka.Message{Key: []byte(strconv.FormatInt(evt.RunId, 10)), Value: body}
	return sc.KafkaWriter.WriteMessages(ctx, msg)
}

// RunRebuild runs one full rebuild and announces it. A failed publish is logged and
// does not fail the rebuild, which is already committed.
func RunRebuild(ctx context.Context, sc *svc.ServiceContext, reason string) (*logic.RebuildOutcome, error) {
	outcome, err := logic.NewRebuildLogic(ctx, sc).Run(reason)
	if err != nil {
		return nil, err
	}

	if err := PublishIndexRebuilt(ctx, sc, newIndexRebuiltEvent(outcome)); err != nil {
		logx.WithContext(ctx).Errorw("publish index rebuilt event failed",
			logx.Field("run_id", outcome.RunId), logx.Field("err", err))
	}
	return outcome, nil
}
