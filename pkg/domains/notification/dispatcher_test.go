package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/restobook/pkg/dtos"
	"github.com/restobook/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTemplates struct {
	tpl entities.EmailTemplate
	err error
}

func (s stubTemplates) FindByName(context.Context, string) (entities.EmailTemplate, error) {
	return s.tpl, s.err
}

type recordingChannel struct {
	name string
	err  error

	mu   sync.Mutex
	sent []Message
}

func (c *recordingChannel) Name() string { return c.name }

func (c *recordingChannel) Send(_ context.Context, msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return c.err
}

func (c *recordingChannel) messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.sent...)
}

// blockingChannel holds every send until release is closed.
type blockingChannel struct {
	release chan struct{}
}

func (blockingChannel) Name() string { return "blocking" }

func (c blockingChannel) Send(context.Context, Message) error {
	<-c.release
	return nil
}

var greeting = entities.EmailTemplate{Subject: "Confirmed", Body: "Dear {name}"}

func TestDispatcher_DeliversToEveryChannel(t *testing.T) {
	first := &recordingChannel{name: "first"}
	second := &recordingChannel{name: "second"}
	d := NewDispatcher(stubTemplates{tpl: greeting}, []Channel{first, second}, Options{Template: "any", Workers: 2})

	d.Notify(sampleDetails())
	d.Close()

	for _, ch := range []*recordingChannel{first, second} {
		msgs := ch.messages()
		require.Len(t, msgs, 1, ch.name)
		assert.Equal(t, "Dear Ada Guest", msgs[0].Body)
		assert.NotEmpty(t, msgs[0].ID)
	}
	assert.Equal(t, first.messages()[0].ID, second.messages()[0].ID)
}

func TestDispatcher_ChannelFailureDoesNotStopOthers(t *testing.T) {
	broken := &recordingChannel{name: "broken", err: errors.New("mailbox unavailable")}
	healthy := &recordingChannel{name: "healthy"}
	d := NewDispatcher(stubTemplates{tpl: greeting}, []Channel{broken, healthy}, Options{})

	d.Notify(sampleDetails())
	d.Notify(sampleDetails())
	d.Close()

	assert.Len(t, broken.messages(), 2)
	assert.Len(t, healthy.messages(), 2)
}

func TestDispatcher_MissingTemplateSendsNothing(t *testing.T) {
	ch := &recordingChannel{name: "rec"}
	d := NewDispatcher(stubTemplates{err: ErrTemplateNotFound}, []Channel{ch}, Options{})

	d.Notify(sampleDetails())
	d.Close()

	assert.Empty(t, ch.messages())
}

func TestDispatcher_NotifyNeverBlocks(t *testing.T) {
	release := make(chan struct{})
	d := NewDispatcher(stubTemplates{tpl: greeting}, []Channel{blockingChannel{release: release}}, Options{Workers: 1, QueueSize: 1})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.Notify(sampleDetails())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a full queue")
	}

	close(release)
	d.Close()
}

func TestDispatcher_NotifyAfterCloseIsDropped(t *testing.T) {
	ch := &recordingChannel{name: "rec"}
	d := NewDispatcher(stubTemplates{tpl: greeting}, []Channel{ch}, Options{})
	d.Close()
	d.Close()

	d.Notify(dtos.ReservationDetails{ReservationID: 1})
	assert.Empty(t, ch.messages())
}

// stallingChannel waits for the send context to expire.
type stallingChannel struct{}

func (stallingChannel) Name() string { return "stalling" }

func (stallingChannel) Send(ctx context.Context, _ Message) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestDispatcher_CloseBoundedBySendTimeout(t *testing.T) {
	d := NewDispatcher(stubTemplates{tpl: greeting}, []Channel{stallingChannel{}}, Options{SendTimeout: 100 * time.Millisecond})
	d.Notify(sampleDetails())

	closed := make(chan struct{})
	go func() {
		d.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(3 * time.Second):
		t.Fatal("Close waited past the send timeout")
	}
}
