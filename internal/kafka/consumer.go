package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ammichelon/dashboard-dinetec/internal/model"
	"github.com/segmentio/kafka-go"
)

var ErrNoBrokers = errors.New("kafka: no brokers configured")

type Config struct {
	Brokers        []string
	Topic          string
	GroupID        string
	MinBytes       int           // default 1KB
	MaxBytes       int           // default 10MB
	CommitInterval time.Duration // 0 = commit synchronously
	MaxWait        time.Duration // default 250ms
}

// Consumer is a thin wrapper around segmentio/kafka-go Reader.
type Consumer struct {
	r *kafka.Reader
}

func NewConsumer(c Config) (*Consumer, error) {
	if len(c.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if strings.TrimSpace(c.Topic) == "" {
		return nil, fmt.Errorf("kafka: empty topic")
	}

	min := c.MinBytes
	if min <= 0 {
		min = 1 << 10 // 1KB
	}
	max := c.MaxBytes
	if max <= 0 {
		max = 10 << 20 // 10MB
	}
	mw := c.MaxWait
	if mw <= 0 {
		mw = 250 * time.Millisecond
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		MinBytes:       min,
		MaxBytes:       max,
		CommitInterval: c.CommitInterval,
		MaxWait:        mw,
	})

	return &Consumer{r: r}, nil
}

type Message = kafka.Message

func (c *Consumer) Fetch(ctx context.Context) (Message, error) {
	return c.r.FetchMessage(ctx)
}

func (c *Consumer) Commit(ctx context.Context, m Message) error {
	return c.r.CommitMessages(ctx, m)
}

func (c *Consumer) Close() error { return c.r.Close() }

// DecodeScanEvent parses a badge-scanner payload; phone is required and origem
// falls back to the message key (scanner id).
func DecodeScanEvent(m Message) (model.ScanEvent, error) {
	var ev model.ScanEvent
	if err := json.Unmarshal(m.Value, &ev); err != nil {
		return model.ScanEvent{}, fmt.Errorf("decode scan event: %w", err)
	}
	ev.Phone = strings.TrimSpace(ev.Phone)
	ev.Origem = strings.TrimSpace(ev.Origem)
	if ev.Origem == "" {
		ev.Origem = strings.TrimSpace(string(m.Key))
	}
	if ev.Phone == "" {
		return model.ScanEvent{}, fmt.Errorf("decode scan event: missing phone")
	}
	return ev, nil
}
