package mykafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_NoBrokers(t *testing.T) {
	_, err := NewProducer(nil)
	require.Error(t, err)
}

func TestPublishEvent_UnencodableEvent(t *testing.T) {
	p, err := NewProducer([]string{"127.0.0.1:1"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	err = p.PublishEvent(context.Background(), "product_events", "k", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json.Marshal")
}
