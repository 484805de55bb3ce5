package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"duplicate-monitor/feature/alerts"
)

type fakeSource struct {
	pending []alerts.Alert
}

func (f *fakeSource) Get(_ context.Context, id uint) (*alerts.Alert, error) {
	for i := range f.pending {
		if f.pending[i].ID == id {
			return &f.pending[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSource) Pending(_ context.Context, _ int) ([]alerts.Alert, error) {
	return f.pending, nil
}

type sentMessage struct {
	chatID int64
	text   string
}

type fakeSender struct {
	sent []sentMessage
	err  error
}

func (f *fakeSender) Send(_ context.Context, chatID int64, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func testConfig() Config {
	return Config{Token: "t", AdminIDs: "100,200", PollSeconds: 1}
}

func TestWorker_SweepNotifiesOnce(t *testing.T) {
	source := &fakeSource{pending: []alerts.Alert{
		{ID: 1, ChatID: -1001, MessageText: "dup"},
		{ID: 2, ChatID: -1002, MessageText: "dup again"},
	}}
	sender := &fakeSender{}
	w := NewWorker(testConfig(), source, sender, zap.NewNop())

	require.NoError(t, w.Sweep(context.Background()))
	assert.Len(t, sender.sent, 4) // 2 alerts x 2 admins

	// A second sweep over the same pending set sends nothing.
	require.NoError(t, w.Sweep(context.Background()))
	assert.Len(t, sender.sent, 4)

	assert.Equal(t, int64(100), sender.sent[0].chatID)
	assert.Equal(t, int64(200), sender.sent[1].chatID)
	assert.Contains(t, sender.sent[0].text, "Alert: \\#1")
}

func TestWorker_SweepRetriesAfterSendFailure(t *testing.T) {
	source := &fakeSource{pending: []alerts.Alert{{ID: 1, MessageText: "dup"}}}
	sender := &fakeSender{err: errors.New("telegram down")}
	w := NewWorker(testConfig(), source, sender, zap.NewNop())

	require.NoError(t, w.Sweep(context.Background()))
	assert.Empty(t, sender.sent)

	sender.err = nil
	require.NoError(t, w.Sweep(context.Background()))
	assert.Len(t, sender.sent, 2)
}

func TestWorker_HandleQueued(t *testing.T) {
	source := &fakeSource{pending: []alerts.Alert{{ID: 7, MessageText: "dup"}}}
	sender := &fakeSender{}
	w := NewWorker(testConfig(), source, sender, zap.NewNop())

	require.NoError(t, w.HandleQueued(context.Background(), "7"))
	assert.Len(t, sender.sent, 2)

	// Repeat delivery of the same id is a no-op.
	require.NoError(t, w.HandleQueued(context.Background(), "7"))
	assert.Len(t, sender.sent, 2)
}

func TestWorker_HandleQueuedDropsBadIDs(t *testing.T) {
	source := &fakeSource{}
	sender := &fakeSender{}
	w := NewWorker(testConfig(), source, sender, zap.NewNop())

	// Garbage and vanished ids must not be requeued.
	assert.NoError(t, w.HandleQueued(context.Background(), "not-a-number"))
	assert.NoError(t, w.HandleQueued(context.Background(), "999"))
	assert.Empty(t, sender.sent)
}
