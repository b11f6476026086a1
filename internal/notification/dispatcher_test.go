package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobboard-backend/internal/model"
)

type senderMock struct {
	mock.Mock
}

func (m *senderMock) Name() string { return "mock" }

func (m *senderMock) Send(ctx context.Context, event StatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type panicSender struct{}

func (panicSender) Name() string { return "panic" }

func (panicSender) Send(context.Context, StatusChanged) error { panic("boom") }

func sampleEvent() StatusChanged {
	return StatusChanged{
		ApplicationID:  7,
		ApplicantID:    uuid.New(),
		ApplicantEmail: "seeker@example.com",
		ApplicantName:  "Seeker",
		JobTitle:       "Backend Engineer",
		Status:         model.StatusHired,
		ChangedAt:      time.Now(),
	}
}

func TestDispatcherDeliversToEverySender(t *testing.T) {
	first, second := &senderMock{}, &senderMock{}
	event := sampleEvent()
	first.On("Send", mock.Anything, event).Return(nil).Once()
	second.On("Send", mock.Anything, event).Return(nil).Once()

	d, err := NewDispatcher(EventBus.New(), time.Second, first, second)
	require.NoError(t, err)

	d.NotifyStatusChanged(event)
	d.Wait()

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestDispatcherSwallowsFailures(t *testing.T) {
	failing, healthy := &senderMock{}, &senderMock{}
	event := sampleEvent()
	failing.On("Send", mock.Anything, event).Return(errors.New("smtp down")).Once()
	healthy.On("Send", mock.Anything, event).Return(nil).Once()

	d, err := NewDispatcher(EventBus.New(), time.Second, failing, panicSender{}, healthy)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		d.NotifyStatusChanged(event)
		d.Wait()
	})
	failing.AssertExpectations(t)
	healthy.AssertExpectations(t)
}

func TestDispatcherAppliesTimeout(t *testing.T) {
	s := &senderMock{}
	event := sampleEvent()
	s.On("Send", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	}), event).Return(nil).Once()

	d, err := NewDispatcher(EventBus.New(), 0, s)
	require.NoError(t, err)
	d.NotifyStatusChanged(event)
	d.Wait()

	s.AssertExpectations(t)
}

func TestLogMailer(t *testing.T) {
	assert.NoError(t, LogMailer{}.Send(context.Background(), sampleEvent()))
}

func TestRedisPublisherReportsUnreachableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer rdb.Close()

	p := NewRedisPublisher(rdb, "application.status_changed")
	assert.Equal(t, "redis", p.Name())
	assert.Error(t, p.Send(context.Background(), sampleEvent()))

	_, err := NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestThrottledSender(t *testing.T) {
	s := &senderMock{}
	event := sampleEvent()
	s.On("Send", mock.Anything, event).Return(nil).Once()

	throttled := Throttle(s, 0.001)
	assert.Equal(t, "mock", throttled.Name())
	require.NoError(t, throttled.Send(context.Background(), event))

	// the single burst token is spent, the next call cannot get one in time
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.Error(t, throttled.Send(ctx, event))

	s.AssertExpectations(t)
}
