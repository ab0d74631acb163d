package ping_worker_config

import (
	common "github.com/NordCoder/webping/internal/config/common"
	kafkax "github.com/NordCoder/webping/internal/repository/kafka"
)

type KafkaIn struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
	GroupID string   `mapstructure:"group_id"`
}

func (k *KafkaIn) AsConsumerConfig() *kafkax.ConsumerConfig {
	return &kafkax.ConsumerConfig{
		Brokers: k.Brokers,
		GroupID: k.GroupID,
		Topic:   k.Topic,
	}
}

type KafkaOut struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type Server struct {
	MetricsAddr string `mapstructure:"metrics_addr"`
}

type Config struct {
	App    common.App   `mapstructure:"app"`
	In     KafkaIn      `mapstructure:"kafka_in"`
	Out    KafkaOut     `mapstructure:"kafka_out"`
	Probe  common.Probe `mapstructure:"probe"`
	Server Server       `mapstructure:"server"`
	OTEL   common.OTEL  `mapstructure:"otel"`
	Log    common.Log   `mapstructure:"log"`
}
