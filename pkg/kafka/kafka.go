package kafka

import (
	"github.com/IBM/sarama"
)

type Config struct {
	Addrs []string `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
	Topic string   `yaml:"topic" envconfig:"KAFKA_AUDIT_TOPIC" default:"library.audit"`
	Group string   `yaml:"group" envconfig:"KAFKA_AUDIT_GROUP" default:"library"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumerGroup(cfg Config) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	return sarama.NewConsumerGroup(cfg.Addrs, cfg.Group, defaultCfg)
}
