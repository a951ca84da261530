package orderstore_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"ordering/internal/adapters/out/memory/eventlog"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/orderstore"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newStore(t *testing.T, log *eventlog.Log) *orderstore.Store {
	t.Helper()

	s, err := orderstore.New(context.Background(), log, 0, discardLogger())
	require.NoError(t, err)
	t.Cleanup(s.Stop)
	return s
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), map[string]int{"TV": 1})
	require.NoError(t, err)
	return o
}

func TestStore_CreateThenGet(t *testing.T) {
	s := newStore(t, eventlog.NewLog())
	o := newOrder(t)

	created, err := s.Create(context.Background(), o)
	require.NoError(t, err)
	assert.True(t, created.ID().IsEqual(o.ID()))
	assert.Equal(t, order.StateCreated, created.State())
	assert.Equal(t, order.NoResult, created.FulfillmentResult())

	got, err := s.Get(context.Background(), o.ID())
	require.NoError(t, err)
	assert.True(t, got.IsEqual(o))
	assert.Equal(t, map[string]int{"TV": 1}, got.Items())
	assert.Equal(t, order.StateCreated, got.State())
}

func TestStore_GetUnknownID(t *testing.T) {
	s := newStore(t, eventlog.NewLog())

	// Prior activity on other ids must not matter.
	_, err := s.Create(context.Background(), newOrder(t))
	require.NoError(t, err)

	_, err = s.Get(context.Background(), kernel.NewUUID())

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestStore_ChangeState(t *testing.T) {
	t.Run("walks the happy path", func(t *testing.T) {
		s := newStore(t, eventlog.NewLog())
		o := newOrder(t)
		_, err := s.Create(context.Background(), o)
		require.NoError(t, err)

		paid, err := s.ChangeState(context.Background(), o.ID(), order.StatePaid)
		require.NoError(t, err)
		assert.Equal(t, order.StatePaid, paid.State())

		inFulfillment, err := s.ChangeState(context.Background(), o.ID(), order.StateInFulfillment)
		require.NoError(t, err)
		assert.Equal(t, order.StateInFulfillment, inFulfillment.State())
	})

	t.Run("unknown id fails with not found", func(t *testing.T) {
		s := newStore(t, eventlog.NewLog())

		_, err := s.ChangeState(context.Background(), kernel.NewUUID(), order.StatePaid)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("invalid transition leaves state unchanged", func(t *testing.T) {
		tests := []struct {
			name   string
			target order.State
		}{
			{"same state is not a no-op", order.StateCreated},
			{"cannot skip payment", order.StateInFulfillment},
			{"cannot close via state change", order.StateClosed},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := newStore(t, eventlog.NewLog())
				o := newOrder(t)
				_, err := s.Create(context.Background(), o)
				require.NoError(t, err)

				_, err = s.ChangeState(context.Background(), o.ID(), tt.target)

				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrInvalidTransition)

				got, getErr := s.Get(context.Background(), o.ID())
				require.NoError(t, getErr)
				assert.Equal(t, order.StateCreated, got.State())
			})
		}
	})
}

func TestStore_Close(t *testing.T) {
	advanceToFulfillment := func(t *testing.T, s *orderstore.Store, o *order.Order) {
		t.Helper()
		_, err := s.Create(context.Background(), o)
		require.NoError(t, err)
		_, err = s.ChangeState(context.Background(), o.ID(), order.StatePaid)
		require.NoError(t, err)
		_, err = s.ChangeState(context.Background(), o.ID(), order.StateInFulfillment)
		require.NoError(t, err)
	}

	t.Run("closes an order in fulfillment", func(t *testing.T) {
		s := newStore(t, eventlog.NewLog())
		o := newOrder(t)
		advanceToFulfillment(t, s, o)

		closed, err := s.Close(context.Background(), o.ID(), order.Success)

		require.NoError(t, err)
		assert.Equal(t, order.StateClosed, closed.State())
		assert.Equal(t, order.Success, closed.FulfillmentResult())
	})

	t.Run("rejects closing outside fulfillment", func(t *testing.T) {
		s := newStore(t, eventlog.NewLog())
		o := newOrder(t)
		_, err := s.Create(context.Background(), o)
		require.NoError(t, err)

		_, err = s.Close(context.Background(), o.ID(), order.Success)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)

		got, getErr := s.Get(context.Background(), o.ID())
		require.NoError(t, getErr)
		assert.Equal(t, order.StateCreated, got.State())
		assert.Equal(t, order.NoResult, got.FulfillmentResult())
	})

	t.Run("rejects closing twice", func(t *testing.T) {
		s := newStore(t, eventlog.NewLog())
		o := newOrder(t)
		advanceToFulfillment(t, s, o)
		_, err := s.Close(context.Background(), o.ID(), order.Failure)
		require.NoError(t, err)

		_, err = s.Close(context.Background(), o.ID(), order.Success)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)

		got, getErr := s.Get(context.Background(), o.ID())
		require.NoError(t, getErr)
		assert.Equal(t, order.Failure, got.FulfillmentResult())
	})

	t.Run("unknown id fails with not found", func(t *testing.T) {
		s := newStore(t, eventlog.NewLog())

		_, err := s.Close(context.Background(), kernel.NewUUID(), order.Success)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestStore_ReplayIsDeterministic(t *testing.T) {
	log := eventlog.NewLog()

	// Drive a first store through a mixed history.
	first := newStore(t, log)
	closed := newOrder(t)
	pending := newOrder(t)
	_, err := first.Create(context.Background(), closed)
	require.NoError(t, err)
	_, err = first.Create(context.Background(), pending)
	require.NoError(t, err)
	_, err = first.ChangeState(context.Background(), closed.ID(), order.StatePaid)
	require.NoError(t, err)
	_, err = first.ChangeState(context.Background(), closed.ID(), order.StateInFulfillment)
	require.NoError(t, err)
	_, err = first.Close(context.Background(), closed.ID(), order.Success)
	require.NoError(t, err)

	// Folding the same log again must yield an identical projection.
	for i := range 2 {
		replayed := newStore(t, log)

		gotClosed, getErr := replayed.Get(context.Background(), closed.ID())
		require.NoError(t, getErr, "replay %d", i)
		assert.Equal(t, order.StateClosed, gotClosed.State())
		assert.Equal(t, order.Success, gotClosed.FulfillmentResult())
		assert.Equal(t, closed.Items(), gotClosed.Items())

		gotPending, getErr := replayed.Get(context.Background(), pending.ID())
		require.NoError(t, getErr, "replay %d", i)
		assert.Equal(t, order.StateCreated, gotPending.State())

		counts, statsErr := replayed.Stats(context.Background())
		require.NoError(t, statsErr)
		assert.Equal(t, map[order.State]int{order.StateCreated: 1, order.StateClosed: 1}, counts)
	}
}

// failingLog rejects every append, simulating a broken durable log.
type failingLog struct{}

func (failingLog) Append(context.Context, order.Event) error {
	return errors.New("disk full")
}

func (failingLog) Load(context.Context) ([]order.Event, error) {
	return nil, nil
}

func TestStore_HaltsOnAppendFailure(t *testing.T) {
	s, err := orderstore.New(context.Background(), failingLog{}, 0, discardLogger())
	require.NoError(t, err)
	t.Cleanup(s.Stop)

	_, err = s.Create(context.Background(), newOrder(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInternal)

	// Every subsequent command is rejected until restart-and-replay,
	// including reads.
	_, err = s.Get(context.Background(), kernel.NewUUID())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInternal)
	assert.Contains(t, err.Error(), "halted")

	_, err = s.Stats(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInternal)
}

// blockingLog stalls appends until released, wedging the command loop.
type blockingLog struct {
	release chan struct{}
}

func (l *blockingLog) Append(context.Context, order.Event) error {
	<-l.release
	return nil
}

func (*blockingLog) Load(context.Context) ([]order.Event, error) {
	return nil, nil
}

func TestStore_AskTimesOutWhenLoopIsWedged(t *testing.T) {
	log := &blockingLog{release: make(chan struct{})}
	s, err := orderstore.New(context.Background(), log, 0, discardLogger())
	require.NoError(t, err)
	t.Cleanup(s.Stop)
	defer close(log.release)

	// First command wedges the loop inside the append.
	go func() {
		_, _ = s.Create(context.Background(), mustNewOrder())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = s.Get(ctx, kernel.NewUUID())

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTimeout)
}

func mustNewOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), map[string]int{"TV": 1})
	if err != nil {
		panic(err)
	}
	return o
}

func TestStore_ConcurrentCommandsAreLinearized(t *testing.T) {
	log := eventlog.NewLog()
	s := newStore(t, log)

	const n = 50
	var wg sync.WaitGroup
	errCh := make(chan error, n)

	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			o, err := order.NewOrder(kernel.NewUUID(), map[string]int{fmt.Sprintf("item-%d", i): 1})
			if err != nil {
				errCh <- err
				return
			}
			if _, err = s.Create(context.Background(), o); err != nil {
				errCh <- err
				return
			}
			if _, err = s.ChangeState(context.Background(), o.ID(), order.StatePaid); err != nil {
				errCh <- err
			}
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	counts, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, n, counts[order.StatePaid])
	assert.Equal(t, 2*n, log.Len(), "one created and one state-changed event per order")
}
