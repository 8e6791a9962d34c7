package kafka

import (
	"Atmosphere/internal/pkg/consts"
	"Atmosphere/internal/pkg/redis"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
)

const engageCountCacheTTL = 10 * time.Minute

// EngagementHandler 消费 engagements 表的 binlog，维护互动计数的 redis 读模型
type EngagementHandler struct {
}

func NewEngagementHandler() *EngagementHandler {
	return &EngagementHandler{}
}

func (s *EngagementHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer setup")
	return nil
}

func (s *EngagementHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer cleanup")
	return nil
}

func (s *EngagementHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-engagements consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-engagements process batch error", "err", err)
		return err
	}
	log.Info("topic-engagements consume claim end")
	return nil
}

func (s *EngagementHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "engagements")
	if err != nil || canalMsg == nil {
		return nil
	}

	rdb := redis.GetRdbClient()

	pipe := rdb.Pipeline()
	var dirtyMembers []interface{}

	for _, row := range canalMsg.Data {
		targetKind := StrToString(row["target_kind"])
		targetID := StrToUint64(row["target_id"])
		kind := StrToString(row["kind"])
		if targetKind == "" || targetID == 0 || kind == "" {
			continue
		}

		countKey := fmt.Sprintf("%s%s:%d:%s", consts.EngageCountKey, targetKind, targetID, kind)
		dirtyMembers = append(dirtyMembers, fmt.Sprintf("%s:%d", targetKind, targetID))

		if canalMsg.Type == INSERT {
			pipe.Incr(ctx, countKey)
		} else if canalMsg.Type == DELETE {
			pipe.Decr(ctx, countKey)
		}
		pipe.Expire(ctx, countKey, engageCountCacheTTL)
	}

	if len(dirtyMembers) > 0 {
		pipe.SAdd(ctx, consts.EngageDirtyKey, dirtyMembers...)
	}

	_, err = pipe.Exec(ctx)
	if err != nil {
		log.Error("Redis Pipeline Exec failed", "err", err, "msg_key", string(msg.Key))
		return err
	}

	return nil
}
