package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Topic keys for the domain events this service emits.
const (
	TweetCreated           = "tweet.created"
	UserFollowed           = "user.followed"
	PasswordResetRequested = "auth.password_reset_requested"
)

type TweetCreatedEvent struct {
	TweetID   string    `json:"tweet_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type UserFollowedEvent struct {
	FollowerID string `json:"follower_id"`
	FollowedID string `json:"followed_id"`
}

type PasswordResetRequestedEvent struct {
	UserID    string `json:"user_id"`
	ResetLink string `json:"reset_link"`
}

// Publisher writes domain events to Kafka. A nil Publisher is valid and
// publishes nothing, so event delivery stays optional.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher builds a Kafka producer, or nil when no brokers are
// configured.
func NewPublisher(brokers []string, topic string) *Publisher {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	w := kafka.NewWriter(kafka.WriterConfig{Brokers: brokers, Topic: topic, Balancer: &kafka.LeastBytes{}})
	return &Publisher{writer: w}
}

func (p *Publisher) publish(ctx context.Context, key string, payload interface{}) error {
	if p == nil || p.writer == nil {
		return nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg := kafka.Message{Key: []byte(key), Value: b, Time: time.Now()}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) PublishTweetCreated(ctx context.Context, ev TweetCreatedEvent) error {
	return p.publish(ctx, TweetCreated, ev)
}

func (p *Publisher) PublishUserFollowed(ctx context.Context, ev UserFollowedEvent) error {
	return p.publish(ctx, UserFollowed, ev)
}

func (p *Publisher) PublishPasswordResetRequested(ctx context.Context, ev PasswordResetRequestedEvent) error {
	return p.publish(ctx, PasswordResetRequested, ev)
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
