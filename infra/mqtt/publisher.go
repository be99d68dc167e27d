// Package mqtt publishes optimised schedules to a home-automation broker.
// Consumers (wall displays, automations) subscribe to the retained schedule
// topic; no acknowledgment is expected.
package mqtt

import (
	"encoding/json"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/axelenergy/homeflex/core/planner"
	"github.com/axelenergy/homeflex/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
	Retain   bool   `json:"retain"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "homeflex"
	}
	if c.Topic == "" {
		c.Topic = "homeflex/schedule"
	}
}

// Validate checks mandatory fields when the publisher is enabled.
func (c Config) Validate() error {
	if c.Enabled && c.Broker == "" {
		return fmt.Errorf("mqtt broker is required when mqtt is enabled")
	}
	return nil
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// SchedulePublisher implements planner.RunSink by publishing each run's
// result to the schedule topic.
type SchedulePublisher struct {
	cli    pahoClient
	topic  string
	qos    byte
	retain bool
	log    logger.Logger
}

// NewSchedulePublisher connects to the broker described by cfg.
func NewSchedulePublisher(cfg Config) (*SchedulePublisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	cli := newMQTTClient(opts)
	if tok := cli.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", tok.Error())
	}
	return &SchedulePublisher{
		cli:    cli,
		topic:  cfg.Topic,
		qos:    cfg.QoS,
		retain: cfg.Retain,
		log:    logger.New("mqtt-publisher"),
	}, nil
}

// RecordRun publishes the run result as JSON.
func (p *SchedulePublisher) RecordRun(res *planner.Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	tok := p.cli.Publish(p.topic, p.qos, p.retain, payload)
	if tok.Wait() && tok.Error() != nil {
		return fmt.Errorf("publish schedule: %w", tok.Error())
	}
	p.log.Debugw("schedule published", map[string]any{"run_id": res.RunID, "topic": p.topic})
	return nil
}

// Close disconnects from the broker.
func (p *SchedulePublisher) Close() {
	p.cli.Disconnect(250)
}
