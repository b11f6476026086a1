package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Sender delivers one status change through one channel.
type Sender interface {
	Name() string
	Send(ctx context.Context, event StatusChanged) error
}

// LogMailer stands in for an email integration by writing the message it would send to the log.
type LogMailer struct{}

// Name implements Sender
func (LogMailer) Name() string { return "log_mailer" }

// Send implements Sender
func (LogMailer) Send(_ context.Context, event StatusChanged) error {
	log.WithFields(log.Fields{
		"to":             event.ApplicantEmail,
		"application_id": event.ApplicationID,
		"status":         event.Status,
	}).Infof("Hi %s, your application for %q is now %s", event.ApplicantName, event.JobTitle, event.Status)
	return nil
}

// NewRedisClient creates and verifies a Redis client connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}

// RedisPublisher publishes status changes as JSON on a Redis channel for other services.
type RedisPublisher struct {
	rdb     redis.UniversalClient
	channel string
}

// NewRedisPublisher returns a publisher writing to channel
func NewRedisPublisher(rdb redis.UniversalClient, channel string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel}
}

// Name implements Sender
func (p *RedisPublisher) Name() string { return "redis" }

// Send implements Sender
func (p *RedisPublisher) Send(ctx context.Context, event StatusChanged) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, payload).Err()
}
