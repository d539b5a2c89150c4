package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	client, err := hub.Register(10, nil)
	assert.NoError(t, err)
	assert.True(t, hub.IsOnline(10))

	hub.UnregisterClient(client)
	assert.False(t, hub.IsOnline(10))

	_ = hub.Shutdown(context.Background())
}

func TestHub_MultiDeviceSupport(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(20, nil)
	assert.NoError(t, err)
	clientB, err := hub.Register(20, nil)
	assert.NoError(t, err)

	hub.Broadcast(20, "hello")
	assert.Equal(t, "hello", string(<-clientA.Send))
	assert.Equal(t, "hello", string(<-clientB.Send))

	hub.UnregisterClient(clientA)
	assert.True(t, hub.IsOnline(20))
	hub.UnregisterClient(clientB)
	assert.False(t, hub.IsOnline(20))

	_ = hub.Shutdown(context.Background())
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(30, nil)
		assert.NoError(t, err)
	}
	_, err := hub.Register(30, nil)
	assert.Error(t, err)

	_ = hub.Shutdown(context.Background())
}

func TestHub_BroadcastDoesNotCrossUsers(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(1, nil)
	assert.NoError(t, err)
	clientB, err := hub.Register(2, nil)
	assert.NoError(t, err)

	hub.Broadcast(1, "for user one")

	assert.Equal(t, "for user one", string(<-clientA.Send))
	select {
	case msg := <-clientB.Send:
		t.Fatalf("user 2 received user 1's message: %s", msg)
	default:
	}

	_ = hub.Shutdown(context.Background())
}

func TestHub_BroadcastAllReachesEveryone(t *testing.T) {
	hub := NewHub()

	clientA, _ := hub.Register(1, nil)
	clientB, _ := hub.Register(2, nil)

	hub.BroadcastAll("announcement")
	assert.Equal(t, "announcement", string(<-clientA.Send))
	assert.Equal(t, "announcement", string(<-clientB.Send))

	_ = hub.Shutdown(context.Background())
}

func TestTrySend_DropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register(5, nil)
	assert.NoError(t, err)

	for i := 0; i < cap(client.Send); i++ {
		client.TrySend([]byte("fill"))
	}
	require.Equal(t, cap(client.Send), len(client.Send))

	// Buffer full: the message is dropped instead of blocking the hub, and
	// the channel never grows past its capacity.
	client.TrySend([]byte("overflow"))
	assert.Equal(t, cap(client.Send), len(client.Send))
	assert.Equal(t, "fill", string(<-client.Send))

	_ = hub.Shutdown(context.Background())
}

func TestStartWiring_ForwardsRedisMessagesToHub(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	hub := NewHub()
	notifier := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = hub.StartWiring(ctx, notifier)
	}()

	client, err := hub.Register(44, nil)
	require.NoError(t, err)

	// The subscriber needs a moment to attach before publishing.
	assert.Eventually(t, func() bool {
		if err := notifier.PublishUser(ctx, 44, `{"type":"notification_created"}`); err != nil {
			return false
		}
		select {
		case msg := <-client.Send:
			return string(msg) == `{"type":"notification_created"}`
		default:
			return false
		}
	}, testEventuallyTimeout, testPollInterval)

	_ = hub.Shutdown(context.Background())
}
