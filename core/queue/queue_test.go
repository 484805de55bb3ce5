package queue_test

import (
	"testing"

	"duplicate-monitor/core/queue"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, queue.Config{}.Enabled())
	assert.True(t, queue.Config{Address: "localhost:6379"}.Enabled())
}

func TestNew_EmptyAddress(t *testing.T) {
	q, err := queue.New(queue.Config{})
	assert.Error(t, err)
	assert.Nil(t, q)
}

func TestQueue_CloseNil(t *testing.T) {
	var q *queue.Queue
	assert.NoError(t, q.Close())
}
