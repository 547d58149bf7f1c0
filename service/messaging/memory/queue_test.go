package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testPayload struct {
	ID    string
	Count int
}

func TestQueue(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx := context.Background()
	payload := testPayload{ID: "test-1", Count: 1}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, payload, *message.T())

	assert.NoError(t, message.Ack())
	assert.Error(t, message.Ack())
	assert.Error(t, message.Nack(nil))
}

func TestQueue_Order(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		assert.NoError(t, queue.Publish(ctx, &testPayload{Count: i}))
	}
	for i := 0; i < 5; i++ {
		message, err := queue.Consume(ctx)
		assert.NoError(t, err)
		assert.Equal(t, i, message.T().Count)
	}
}

func TestQueue_DeadLetter(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx := context.Background()
	assert.NoError(t, queue.Publish(ctx, &testPayload{ID: "failing"}))
	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NoError(t, message.Nack(errors.New("boom")))
	assert.Equal(t, 1, queue.DLQSize())
	assert.Equal(t, 0, queue.Size())
	deadLetters := queue.DeadLetters()
	if assert.Len(t, deadLetters, 1) {
		assert.Equal(t, "failing", deadLetters[0].T().ID)
		assert.EqualError(t, deadLetters[0].Err(), "boom")
	}
}

func TestQueue_Overflow(t *testing.T) {
	testCases := []struct {
		description string
		buffer      int
		steps       []int // positive: publish that many, negative: consume that many
		expect      []int
	}{
		{description: "publish beyond buffer", buffer: 1, steps: []int{5, -5}, expect: []int{0, 1, 2, 3, 4}},
		{description: "interleaved", buffer: 2, steps: []int{4, -1, 3, -6}, expect: []int{0, 1, 2, 3, 4, 5, 6}},
		{description: "drained overflow", buffer: 1, steps: []int{3, -3, 2, -2}, expect: []int{0, 1, 2, 3, 4}},
	}
	for _, testCase := range testCases {
		queue := NewQueue[testPayload](Config{QueueBuffer: testCase.buffer})
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		published := 0
		var consumed []int
		for _, step := range testCase.steps {
			for ; step > 0; step-- {
				assert.NoError(t, queue.Publish(ctx, &testPayload{Count: published}), testCase.description)
				published++
			}
			for ; step < 0; step++ {
				message, err := queue.Consume(ctx)
				if !assert.NoError(t, err, testCase.description) {
					break
				}
				consumed = append(consumed, message.T().Count)
			}
		}
		cancel()
		assert.Equal(t, testCase.expect, consumed, testCase.description)
		assert.Equal(t, 0, queue.Size(), testCase.description)
	}
}

func TestQueue_PublishCancelled(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, errors.Is(queue.Publish(ctx, &testPayload{}), context.Canceled))
	assert.Equal(t, 0, queue.Size())
}

func TestQueue_ConsumeTimeout(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	message, err := queue.Consume(ctx)
	assert.Nil(t, message)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestQueue_Concurrency(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx := context.Background()
	producers := 10
	perProducer := 10

	var wg sync.WaitGroup
	wg.Add(producers)
	for i := 0; i < producers; i++ {
		go func(producerID int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				if err := queue.Publish(ctx, &testPayload{ID: fmt.Sprintf("p%d-m%d", producerID, j)}); err != nil {
					t.Errorf("failed to publish: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()

	consumed := map[string]bool{}
	for i := 0; i < producers*perProducer; i++ {
		message, err := queue.Consume(ctx)
		assert.NoError(t, err)
		assert.NoError(t, message.Ack())
		consumed[message.T().ID] = true
	}
	assert.Equal(t, producers*perProducer, len(consumed))
}
