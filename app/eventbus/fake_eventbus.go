package eventbus

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
)

// PublishedEvent is one captured Publish call.
type PublishedEvent struct {
	Topic   string
	Payload []byte
}

// FakeEventBus records published events for assertions in service tests.
type FakeEventBus struct {
	mu     sync.Mutex
	events []PublishedEvent

	PublishFunc func(ctx context.Context, topic string, payload any) error
}

// NewFakeEventBus builds an empty fake.
func NewFakeEventBus() *FakeEventBus { return &FakeEventBus{} }

func (f *FakeEventBus) Publish(ctx context.Context, topic string, payload any) error {
	if f.PublishFunc != nil {
		return f.PublishFunc(ctx, topic, payload)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.events = append(f.events, PublishedEvent{Topic: topic, Payload: data})
	f.mu.Unlock()
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	ch := make(chan *message.Message)
	close(ch)
	return ch, nil
}

func (f *FakeEventBus) Close() error { return nil }

// Published returns the captured events.
func (f *FakeEventBus) Published() []PublishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]PublishedEvent(nil), f.events...)
}

// PublishedTopics returns just the topics, in publish order.
func (f *FakeEventBus) PublishedTopics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	topics := make([]string, len(f.events))
	for i, event := range f.events {
		topics[i] = event.Topic
	}
	return topics
}
