package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	s := NewStore()
	assert.Equal(t, Initial(), s.Snapshot())
	assert.Equal(t, uint64(1), s.Begin(Connecting), "sequence numbers start at one")
}

func TestBeginIssuesIncreasingSequence(t *testing.T) {
	s := NewStore()
	a := s.Begin(Connecting)
	b := s.Begin(Connecting)
	assert.Less(t, a, b)
	assert.Equal(t, StatusConnecting, s.Snapshot().Status)
	assert.Equal(t, b+1, s.Reset())
}

func TestCommitNewest(t *testing.T) {
	s := NewStore()
	seq := s.Begin(Connecting)

	ok := s.Commit(seq, Connected(Result{Address: "0x1", ChainID: 1, NativeBalance: "1.5"}))
	require.True(t, ok)
	assert.Equal(t, StatusConnected, s.Snapshot().Status)
	assert.Equal(t, "1.5", s.Snapshot().NativeBalance)
}

func TestCommitStaleIsDiscarded(t *testing.T) {
	s := NewStore()
	older := s.Begin(Connecting)
	newer := s.Begin(Connecting)

	require.True(t, s.Commit(newer, Connected(Result{Address: "0xnew", ChainID: 1})))
	assert.False(t, s.Commit(older, Connected(Result{Address: "0xold", ChainID: 5})))
	assert.False(t, s.Commit(older, Failed("late failure")))

	got := s.Snapshot()
	assert.Equal(t, "0xnew", got.Address)
	assert.Equal(t, StatusConnected, got.Status)
}

func TestResetInvalidatesInFlight(t *testing.T) {
	s := NewStore()
	seq := s.Begin(Connecting)
	s.Reset()

	assert.False(t, s.Commit(seq, Connected(Result{Address: "0x1"})))
	assert.Equal(t, Initial(), s.Snapshot())
}

func TestSubscribe(t *testing.T) {
	s := NewStore()
	var got []Update
	unsubscribe := s.Subscribe(func(u Update) { got = append(got, u) })

	seq := s.Begin(Connecting)
	s.Commit(seq, Failed("nope"))
	s.Commit(seq-1, Failed("stale")) // not applied, not delivered

	require.Len(t, got, 2)
	assert.Equal(t, uint64(1), got[0].Rev)
	assert.Equal(t, StatusConnecting, got[0].State.Status)
	assert.Equal(t, uint64(2), got[1].Rev)
	assert.Equal(t, "nope", got[1].State.Error)

	unsubscribe()
	s.Reset()
	assert.Len(t, got, 2)
}

func TestSubscriberMayReadStore(t *testing.T) {
	s := NewStore()
	var seen State
	s.Subscribe(func(Update) { seen = s.Snapshot() })

	s.Begin(Failed("x"))
	assert.Equal(t, "x", seen.Error)
}

func TestStoreConcurrentUse(t *testing.T) {
	s := NewStore()
	var (
		mu   sync.Mutex
		last uint64
	)
	s.Subscribe(func(u Update) {
		mu.Lock()
		defer mu.Unlock()
		if u.Rev > last {
			last = u.Rev
		}
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq := s.Begin(Connecting)
			s.Commit(seq, Connected(Result{Address: "0x1", ChainID: 1}))
		}()
	}
	wg.Wait()

	assert.Equal(t, StatusConnected, s.Snapshot().Status)
	assert.Equal(t, uint64(51), s.Reset(), "every Begin issued exactly one sequence number")

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, last, uint64(52))
}
