package walletevent

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBusPreservesPostOrder(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var got []int

	b := NewBus(func(ev Event) {
		mu.Lock()
		got = append(got, ev.WalletId)
		mu.Unlock()
	}, 16)

	for i := 0; i < 50; i++ {
		b.Post(Event{Category: CategoryWallet, Code: WalletCreated, WalletId: i})
	}
	b.Close()

	require.Len(t, got, 50)
	for i, v := range got {
		require.Equal(t, i, v)
	}
}

func TestBusCloseDrainsQueue(t *testing.T) {
	t.Parallel()

	delivered := make(chan Event, 4)
	b := NewBus(func(ev Event) { delivered <- ev }, 4)

	b.Post(Event{Category: CategoryBlock, Code: BlockCreated, BlockId: 1})
	b.Post(Event{Category: CategoryBlock, Code: BlockCreated, BlockId: 2})
	b.Close()

	select {
	case <-time.After(time.Second):
		t.Fatal("Close returned before dispatcher drained the queue")
	default:
	}
	require.Len(t, delivered, 2)
}

func TestDefaultQueueDepth(t *testing.T) {
	t.Parallel()

	b := NewBus(func(Event) {}, 0)
	defer b.Close()
	require.Equal(t, 256, cap(b.queue))
}

func TestCategoryAndStatusStrings(t *testing.T) {
	t.Parallel()

	require.Equal(t, "wallet", CategoryWallet.String())
	require.Equal(t, "transaction", CategoryTransaction.String())
	require.Equal(t, "block", CategoryBlock.String())
	require.Equal(t, "unknown", Category(99).String())

	require.Equal(t, "success", StatusSuccess.String())
	require.Contains(t, StatusErrorCallback.String(), "callback")
	require.Contains(t, Status(99).String(), "unknown")
}
