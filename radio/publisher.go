package radio

import (
	"encoding/json"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// DefaultPublishPrefix is the topic prefix when none is configured.
const DefaultPublishPrefix = "cellaudit"

// Publisher hands finished result tables and run progress to MQTT
// collaborators. Result tables are published retained so a late subscriber
// sees the latest run; progress is fire-and-forget.
type Publisher struct {
	client mqtt.Client
	prefix string
	qos    byte
}

// NewPublisher creates a result publisher over an existing client. A nil
// client disables publishing (for callers that only sometimes have a
// broker configured).
func NewPublisher(client mqtt.Client, prefix string) *Publisher {
	if prefix == "" {
		prefix = DefaultPublishPrefix
	}
	return &Publisher{client: client, prefix: prefix, qos: 0}
}

// PublishResults publishes every result table of a run to its own topic
// (<prefix>/results/<table>) plus the summaries, retained. Returns the
// first publish error; later tables are still attempted so a transient
// failure loses one table, not the run.
func (p *Publisher) PublishResults(res *Results) error {
	if p.client == nil || !p.client.IsConnected() {
		return fmt.Errorf("MQTT client not connected")
	}

	tables := []struct {
		name    string
		payload interface{}
	}{
		{"azimuth", res.Azimuth},
		{"swaps", res.Swaps},
		{"coverage", res.Coverage},
		{"neighbors", res.Neighbors},
		{"coordinates", res.Coordinates},
		{"summary/coverage", res.CoverageSummary},
		{"summary/swaps", res.SwapSummary},
	}

	var firstErr error
	for _, t := range tables {
		if err := p.publishJSON(p.prefix+"/results/"+t.name, t.payload, true); err != nil {
			log.Printf("[PUBLISH] %s: %v", t.name, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// PublishProgress publishes one advisory progress update to
// <prefix>/progress. Errors are logged, not returned: progress is never
// required for correctness.
func (p *Publisher) PublishProgress(stage string, done, total int) {
	if p.client == nil || !p.client.IsConnected() {
		return
	}
	update := struct {
		Stage string `json:"stage"`
		Done  int    `json:"done"`
		Total int    `json:"total"`
	}{stage, done, total}
	if err := p.publishJSON(p.prefix+"/progress", update, false); err != nil {
		log.Printf("[PUBLISH] progress: %v", err)
	}
}

func (p *Publisher) publishJSON(topic string, payload interface{}, retain bool) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload for %s: %w", topic, err)
	}
	token := p.client.Publish(topic, p.qos, retain, data)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publishing to %s: %w", topic, err)
	}
	return nil
}

// InitMQTT connects a client from config. Returns nil (no error) when no
// broker is configured, so callers can treat publishing as optional.
func InitMQTT(cfg MQTTConfig) (mqtt.Client, error) {
	if cfg.Broker == "" {
		return nil, nil
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "cellaudit-engine"
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connecting to MQTT broker %s: %w", cfg.Broker, err)
	}
	return client, nil
}
