package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"sportspulse/internal/domain"
)

const (
	ActionScoreUpdate    = "score_update"
	ActionArticleCreated = "article_created"
)

type RabbitMQ struct {
	conn              *amqp.Connection
	channel           *amqp.Channel
	exchange          string
	matchRoutingKey   string
	articleRoutingKey string
	logger            *slog.Logger
}

type Config struct {
	URL               string
	Exchange          string
	MatchRoutingKey   string
	ArticleRoutingKey string
	QueueName         string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	for _, key := range []string{cfg.MatchRoutingKey, cfg.ArticleRoutingKey} {
		if err := ch.QueueBind(q.Name, key, cfg.Exchange, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("bind queue %s: %w", key, err)
		}
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"match_routing_key", cfg.MatchRoutingKey,
		"article_routing_key", cfg.ArticleRoutingKey,
	)

	return &RabbitMQ{
		conn:              conn,
		channel:           ch,
		exchange:          cfg.Exchange,
		matchRoutingKey:   cfg.MatchRoutingKey,
		articleRoutingKey: cfg.ArticleRoutingKey,
		logger:            logger,
	}, nil
}

// EventMessage is the JSON body of every published event. Exactly one of
// Match and Article is set.
type EventMessage struct {
	Action    string          `json:"action"`
	Match     *domain.Match   `json:"match,omitempty"`
	Article   *domain.Article `json:"article,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

func (r *RabbitMQ) PublishMatch(ctx context.Context, match *domain.Match) error {
	msg := EventMessage{
		Action:    ActionScoreUpdate,
		Match:     match,
		Timestamp: time.Now().UTC(),
	}
	if err := r.publish(ctx, r.matchRoutingKey, msg); err != nil {
		return err
	}

	r.logger.Debug("published score update", "match_id", match.ID)
	return nil
}

func (r *RabbitMQ) PublishArticle(ctx context.Context, article *domain.Article) error {
	msg := EventMessage{
		Action:    ActionArticleCreated,
		Article:   article,
		Timestamp: time.Now().UTC(),
	}
	if err := r.publish(ctx, r.articleRoutingKey, msg); err != nil {
		return err
	}

	r.logger.Debug("published article", "article_id", article.ID)
	return nil
}

func (r *RabbitMQ) publish(ctx context.Context, routingKey string, msg EventMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    uuid.NewString(),
			Type:         msg.Action,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
