//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udhe/healthintelligence/backend/internal/adapters/events"
	"github.com/udhe/healthintelligence/backend/internal/domain/entities"
	"github.com/udhe/healthintelligence/backend/internal/domain/providers"
)

func waitForHealthEvent(t *testing.T, ch <-chan *entities.HealthEvent) *entities.HealthEvent {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestRedisEventBusFanoutIntegration(t *testing.T) {
	if os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_REDIS_HOST not set")
	}

	redisClient := newTestRedisClient(t)
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient, zerolog.Nop())
	defer eventBus.Close()

	channel := providers.EventChannelIngestion
	ctx1, cancel1 := context.WithCancel(context.Background())
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel1()
	defer cancel2()

	sub1, err := eventBus.Subscribe(ctx1, channel)
	require.NoError(t, err)
	sub2, err := eventBus.Subscribe(ctx2, channel)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	event := &entities.HealthEvent{
		ID:         uuid.New().String(),
		FacilityID: "FAC-REDIS-1",
		Kind:       entities.TransactionCase,
		Department: "OPD",
		Indicator:  "New Dengue Cases",
		Count:      1,
		Month:      "March",
		Timestamp:  time.Now().UTC(),
	}

	err = eventBus.Publish(context.Background(), channel, event)
	require.NoError(t, err)

	// Both subscribers see the same event.
	received1 := waitForHealthEvent(t, sub1)
	received2 := waitForHealthEvent(t, sub2)

	assert.Equal(t, event.ID, received1.ID)
	assert.Equal(t, event.ID, received2.ID)
	assert.Equal(t, event.Indicator, received1.Indicator)

	// One subscriber detaching must not tear the channel down for the
	// other.
	cancel1()
	time.Sleep(50 * time.Millisecond)

	second := &entities.HealthEvent{
		ID:         uuid.New().String(),
		FacilityID: "FAC-REDIS-2",
		Kind:       entities.TransactionCase,
		Count:      1,
		Timestamp:  time.Now().UTC(),
	}
	require.NoError(t, eventBus.Publish(context.Background(), channel, second))
	stillReceived := waitForHealthEvent(t, sub2)
	assert.Equal(t, second.ID, stillReceived.ID)
}

func TestRedisEventBusFacilityChannelIntegration(t *testing.T) {
	if os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_REDIS_HOST not set")
	}

	redisClient := newTestRedisClient(t)
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient, zerolog.Nop())
	defer eventBus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	facilityChan, err := eventBus.Subscribe(ctx, providers.GetFacilityChannel("FAC-001"))
	require.NoError(t, err)
	otherChan, err := eventBus.Subscribe(ctx, providers.GetFacilityChannel("FAC-002"))
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	event := &entities.HealthEvent{
		ID:         uuid.New().String(),
		FacilityID: "FAC-001",
		Kind:       entities.TransactionCase,
		Count:      1,
		Timestamp:  time.Now().UTC(),
	}
	require.NoError(t, eventBus.Publish(context.Background(), providers.GetFacilityChannel("FAC-001"), event))

	received := waitForHealthEvent(t, facilityChan)
	assert.Equal(t, "FAC-001", received.FacilityID)

	select {
	case unexpected := <-otherChan:
		t.Fatalf("event leaked to wrong facility channel: %+v", unexpected)
	case <-time.After(300 * time.Millisecond):
	}
}
