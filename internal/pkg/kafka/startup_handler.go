package kafka

import (
	"Atmosphere/internal/pkg/es"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// StartupHandler 消费 startups 表的 binlog，同步搜索索引
type StartupHandler struct {
	startupESRepo es.StartupRepo
}

func NewStartupHandler(startupESRepo es.StartupRepo) *StartupHandler {
	return &StartupHandler{startupESRepo: startupESRepo}
}

func (s *StartupHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("startup consumer setup")
	return nil
}

func (s *StartupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("startup consumer cleanup")
	return nil
}

func (s *StartupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-startups consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-startups process batch error", "err", err)
		return err
	}
	log.Info("topic-startups consume claim end")
	return nil
}

func (s *StartupHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "startups")
	if err != nil || canalMsg == nil {
		return nil
	}

	for _, row := range canalMsg.Data {
		id := StrToUint64(row["id"])
		if id == 0 {
			continue
		}

		switch canalMsg.Type {
		case INSERT, UPDATE:
			doc := &es.StartupES{
				ID:         id,
				OwnerID:    StrToUint64(row["owner_id"]),
				Name:       StrToString(row["name"]),
				Pitch:      StrToString(row["pitch"]),
				LaunchedAt: StrToTime(row["launched_at"]),
			}
			if err = s.startupESRepo.IndexStartup(ctx, doc); err != nil {
				log.Error("index startup failed", "id", id, "err", err)
				return err
			}
		case DELETE:
			if err = s.startupESRepo.DeleteStartup(ctx, id); err != nil {
				log.Error("delete startup index failed", "id", id, "err", err)
				return err
			}
		}
	}

	return nil
}
