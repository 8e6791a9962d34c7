package kafka

import (
	"Atmosphere/internal/api/config"
	"Atmosphere/internal/pkg/es"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	engageConsumer sarama.ConsumerGroup
	engageHandler  sarama.ConsumerGroupHandler

	followsConsumer sarama.ConsumerGroup
	followsHandler  sarama.ConsumerGroupHandler

	startupConsumer sarama.ConsumerGroup
	startupHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, startupESRepo es.StartupRepo) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	engageConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaEngageConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	followsConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaFollowConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	startupConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaStartupConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		engageConsumer:  engageConsumer,
		engageHandler:   NewEngagementHandler(),
		followsConsumer: followsConsumer,
		followsHandler:  NewFollowsHandler(),
		startupConsumer: startupConsumer,
		startupHandler:  NewStartupHandler(startupESRepo),
	}, nil
}

// Start 启动所有消费者，阻塞到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaEngageConsumer.Topic
		log.Info("Engagement consumer started", "topic", topic)
		for {
			if err := m.engageConsumer.Consume(ctx, []string{topic}, m.engageHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		topic := cfg.KafkaFollowConsumer.Topic
		log.Info("Follows consumer started", "topic", topic)
		for {
			if err := m.followsConsumer.Consume(ctx, []string{topic}, m.followsHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	go func() {
		topic := cfg.KafkaStartupConsumer.Topic
		log.Info("Startup consumer started", "topic", topic)
		for {
			if err := m.startupConsumer.Consume(ctx, []string{topic}, m.startupHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.engageConsumer.Close(); err != nil {
		log.Error("Failed to close engagement consumer", "err", err)
	}
	if err := m.followsConsumer.Close(); err != nil {
		log.Error("Failed to close follows consumer", "err", err)
	}
	if err := m.startupConsumer.Close(); err != nil {
		log.Error("Failed to close startup consumer", "err", err)
	}

	return nil
}
