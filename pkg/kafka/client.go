// Package kafka 提供了通过 Kafka 传递咨询归档任务的功能。
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"

	"seyone-academy-go/internal/config"
	"seyone-academy-go/pkg/log"
	"seyone-academy-go/pkg/tasks"
)

// maxAttempts is how many times a failing task is processed before its offset is committed.
const maxAttempts = 3

// retryBackoff is multiplied by the attempt number between retries.
var retryBackoff = time.Second

// TaskProcessor defines the interface for any service that can process a task.
// This decouples the Kafka consumer from the concrete pipeline implementation.
type TaskProcessor interface {
	Process(ctx context.Context, task tasks.EnquiryTask) error
}

// Producer publishes enquiry tasks.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer 初始化 Kafka 生产者
func NewProducer(cfg config.KafkaConfig) *Producer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers(cfg)...),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka producer initialised")
	return &Producer{writer: w}
}

// ProduceEnquiryTask 发送一个咨询归档任务到 Kafka，以 id 作为 key
func (p *Producer) ProduceEnquiryTask(ctx context.Context, task tasks.EnquiryTask) error {
	taskBytes, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(task.EnquiryID),
		Value: taskBytes,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// StartConsumer reads enquiry tasks until ctx is cancelled. A failing task is
// retried with a growing delay and its attempts are counted in redis, or
// locally when redis is unreachable; after maxAttempts the offset is committed
// to stop retrying. Without redis a failing task is committed at once.
func StartConsumer(ctx context.Context, cfg config.KafkaConfig, processor TaskProcessor, rdb *redis.Client) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers(cfg),
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	defer func() {
		if err := r.Close(); err != nil {
			log.Error("failed to close Kafka consumer", err)
		}
	}()

	log.Infof("Kafka consumer started on topic '%s'", cfg.Topic)

	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("Kafka consumer stopped")
				return
			}
			log.Error("failed to read Kafka message", err)
			return
		}

		var task tasks.EnquiryTask
		if err := json.Unmarshal(m.Value, &task); err != nil {
			log.Errorf("cannot decode Kafka message: %v, value: %s", err, string(m.Value))
			// 消息格式错误，直接提交，避免阻塞队列
			commit(ctx, r, m)
			continue
		}

		attemptsKey := fmt.Sprintf("kafka:attempts:enquiry:%s", task.EnquiryID)
		if !processWithRetry(ctx, processor, task, rdb, attemptsKey) {
			// 重试中被取消。offset 按累计方式提交，继续消费会跳过这条消息，
			// 因此不提交并退出
			log.Infow("Kafka consumer stopped during retry", "enquiryId", task.EnquiryID)
			return
		}
		commit(ctx, r, m)
	}
}

// processWithRetry runs the processor until it succeeds or the attempt budget
// is spent. Attempts are counted in redis so they survive redeliveries; when
// redis cannot be reached the count is kept locally. It returns false only
// when ctx is cancelled before the task is settled.
func processWithRetry(ctx context.Context, processor TaskProcessor, task tasks.EnquiryTask, rdb *redis.Client, attemptsKey string) bool {
	var local int64
	for {
		err := processor.Process(ctx, task)
		if err == nil {
			log.Infow("enquiry archived", "enquiryId", task.EnquiryID)
			if rdb != nil {
				_ = rdb.Del(ctx, attemptsKey).Err()
			}
			return true
		}
		log.Errorw("failed to archive enquiry", "enquiryId", task.EnquiryID, "error", err)
		if rdb == nil {
			return true
		}

		local++
		attempts := local
		if n, incErr := rdb.Incr(ctx, attemptsKey).Result(); incErr != nil {
			log.Warnf("failed to count attempts for enquiry %s in redis, counting locally: %v", task.EnquiryID, incErr)
		} else {
			_ = rdb.Expire(ctx, attemptsKey, 24*time.Hour).Err()
			attempts = n
		}
		if attempts >= maxAttempts {
			log.Errorw("enquiry failed repeatedly, giving up", "enquiryId", task.EnquiryID, "attempts", attempts)
			return true
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(time.Duration(attempts) * retryBackoff):
		}
	}
}

func commit(ctx context.Context, r *kafka.Reader, m kafka.Message) {
	if err := r.CommitMessages(ctx, m); err != nil {
		log.Errorf("failed to commit Kafka offset: %v", err)
	}
}

func brokers(cfg config.KafkaConfig) []string {
	var out []string
	for _, b := range strings.Split(cfg.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
