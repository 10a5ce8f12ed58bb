package radio

import (
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MockToken implements mqtt.Token for testing.
type MockToken struct {
	err error
}

func NewMockToken(err error) *MockToken {
	return &MockToken{err: err}
}

func (t *MockToken) Wait() bool                             { return true }
func (t *MockToken) WaitTimeout(duration time.Duration) bool { return true }
func (t *MockToken) Error() error                           { return t.err }

func (t *MockToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// MockMessage records one published message.
type MockMessage struct {
	Topic   string
	Payload []byte
	QoS     byte
	Retain  bool
}

// MockClient implements mqtt.Client for publisher tests: it records
// publishes and lets tests inject connection state and failures.
type MockClient struct {
	mu                sync.RWMutex
	connected         bool
	publishError      error
	publishedMessages []MockMessage
}

// NewMockClient creates a connected mock client.
func NewMockClient() *MockClient {
	return &MockClient{connected: true}
}

// SetConnected sets the connection state.
func (c *MockClient) SetConnected(connected bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = connected
}

// SetPublishError makes subsequent publishes fail with err.
func (c *MockClient) SetPublishError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publishError = err
}

// PublishedMessages returns a copy of everything published so far.
func (c *MockClient) PublishedMessages() []MockMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]MockMessage, len(c.publishedMessages))
	copy(out, c.publishedMessages)
	return out
}

func (c *MockClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

func (c *MockClient) IsConnectionOpen() bool { return c.IsConnected() }

func (c *MockClient) Connect() mqtt.Token {
	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()
	return NewMockToken(nil)
}

func (c *MockClient) Disconnect(quiesce uint) {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()
}

func (c *MockClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return NewMockToken(mqtt.ErrNotConnected)
	}
	if c.publishError != nil {
		return NewMockToken(c.publishError)
	}

	var payloadBytes []byte
	switch v := payload.(type) {
	case []byte:
		payloadBytes = v
	case string:
		payloadBytes = []byte(v)
	}

	c.publishedMessages = append(c.publishedMessages, MockMessage{
		Topic:   topic,
		Payload: payloadBytes,
		QoS:     qos,
		Retain:  retained,
	})
	return NewMockToken(nil)
}

func (c *MockClient) Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	return NewMockToken(nil)
}

func (c *MockClient) SubscribeMultiple(filters map[string]byte, callback mqtt.MessageHandler) mqtt.Token {
	return NewMockToken(nil)
}

func (c *MockClient) Unsubscribe(topics ...string) mqtt.Token {
	return NewMockToken(nil)
}

func (c *MockClient) AddRoute(topic string, callback mqtt.MessageHandler) {}

func (c *MockClient) OptionsReader() mqtt.ClientOptionsReader {
	return mqtt.ClientOptionsReader{}
}
