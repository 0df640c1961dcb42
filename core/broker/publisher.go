package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fleet-tracker/core/fleet"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// tokenPublisher is the part of mqtt.Client the feed uses.
type tokenPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Message is the payload of one feed message.
type Message struct {
	Zone string      `json:"zone"`
	Logs []fleet.Log `json:"logs"`
}

// Publisher publishes newly persisted logs, one message per zone run.
type Publisher struct {
	client  tokenPublisher
	topic   string
	qos     byte
	timeout time.Duration
	close   func()
}

// Dial connects to the broker and returns a publisher on that connection.
func Dial(cfg Config, logger *zap.Logger) (*Publisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.URL)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	opts.SetOnConnectHandler(func(mqtt.Client) {
		logger.Info("Connected to MQTT broker", zap.String("url", cfg.URL))
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warn("MQTT connection lost", zap.Error(err))
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	p := NewPublisher(client, cfg)
	p.close = func() { client.Disconnect(250) }
	return p, nil
}

// NewPublisher creates a publisher on an existing client.
func NewPublisher(client tokenPublisher, cfg Config) *Publisher {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Publisher{
		client:  client,
		topic:   cfg.Topic,
		qos:     byte(cfg.QoS),
		timeout: timeout,
	}
}

// Publish sends the logs of one zone run. Nothing is sent for an empty batch.
func (p *Publisher) Publish(ctx context.Context, zone string, logs []fleet.Log) error {
	if len(logs) == 0 {
		return nil
	}

	payload, err := json.Marshal(Message{Zone: zone, Logs: logs})
	if err != nil {
		return fmt.Errorf("failed to marshal logs of %s: %w", zone, err)
	}

	topic := Topic(p.topic, zone)
	token := p.client.Publish(topic, p.qos, false, payload)

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return fmt.Errorf("failed to publish to %s: %w", topic, err)
		}
		return nil
	case <-timer.C:
		return fmt.Errorf("publish to %s timed out after %s", topic, p.timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close disconnects a publisher created by Dial.
func (p *Publisher) Close() {
	if p.close != nil {
		p.close()
	}
}

// Topic replaces the {zone} placeholder of a topic pattern.
func Topic(pattern, zone string) string {
	return strings.ReplaceAll(pattern, "{zone}", zone)
}
