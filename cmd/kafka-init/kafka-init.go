package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/NordCoder/webping/internal/obs"
	"github.com/NordCoder/webping/internal/repository/kafka"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	brokers := pflag.StringSlice("brokers", strings.Split(env("KAFKA_BROKER", "kafka:9092"), ","), "kafka bootstrap brokers")
	topics := pflag.StringSlice("topics", strings.Split(env("KAFKA_TOPICS", "webping.ping.request,webping.ping.result"), ","), "topics to create")
	partitions := pflag.Int("partitions", cast.ToInt(env("KAFKA_PARTITIONS", "1")), "partitions per topic")
	rf := pflag.Int("replication-factor", cast.ToInt(env("KAFKA_RF", "1")), "replication factor")
	wait := pflag.Duration("wait", 30*time.Second, "how long to wait for each topic to get leaders")
	pflag.Parse()

	l, err := obs.NewLogger(obs.LogConfig{Level: env("LOG_LEVEL", "info"), App: "webping/kafka-init"})
	if err != nil {
		panic(err)
	}
	defer func() { _ = l.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	for _, t := range *topics {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		err := kafka.EnsureTopic(ctx, *brokers, kafka.TopicSpec{
			Name:              t,
			NumPartitions:     *partitions,
			ReplicationFactor: *rf,
			MaxWait:           *wait,
		}, l)
		if err != nil {
			l.Fatal("ensure topic", zap.String("topic", t), zap.Error(err))
		}
	}
	l.Info("kafka-init ok")
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
