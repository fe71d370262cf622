package kafka

import (
	"testing"
	"time"
)

func TestNewProducer(t *testing.T) {
	cfg := Config{
		Brokers: []string{"localhost:9092", "localhost:9093"},
	}

	p := NewProducer(cfg)
	if p == nil {
		t.Fatal("expected non-nil producer")
	}
	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.brokers[0] != "localhost:9092" {
		t.Errorf("expected broker localhost:9092, got %s", p.brokers[0])
	}
	if p.writers == nil {
		t.Fatal("expected writers map to be initialized")
	}
	if len(p.writers) != 0 {
		t.Errorf("expected empty writers map, got %d entries", len(p.writers))
	}
	if p.batchTimeout != defaultBatchTimeout {
		t.Errorf("expected default batch timeout, got %v", p.batchTimeout)
	}
}

func TestNewProducerCustomBatchTimeout(t *testing.T) {
	p := NewProducer(Config{
		Brokers:      []string{"kafka:9092"},
		BatchTimeout: 50 * time.Millisecond,
	})
	if p.batchTimeout != 50*time.Millisecond {
		t.Errorf("expected 50ms batch timeout, got %v", p.batchTimeout)
	}
}

func TestProducerGetOrCreateWriterReuse(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"kafka:9092"}})

	w1 := p.getOrCreateWriter("projection-events")
	w2 := p.getOrCreateWriter("projection-events")
	if w1 != w2 {
		t.Error("expected the writer for a topic to be reused")
	}
	if w1.Topic != "projection-events" {
		t.Errorf("expected writer topic projection-events, got %s", w1.Topic)
	}
	if len(p.writers) != 1 {
		t.Errorf("expected 1 cached writer, got %d", len(p.writers))
	}

	if err := p.Close(); err != nil {
		t.Errorf("expected clean close, got %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("expected writers map to be reset on close, got %d entries", len(p.writers))
	}
}
