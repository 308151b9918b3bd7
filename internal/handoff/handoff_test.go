package handoff_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robertarktes/visa-appointments/internal/domain"
	"github.com/robertarktes/visa-appointments/internal/handoff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTakeRecord_ClearsEntry(t *testing.T) {
	ctx := context.Background()
	store := handoff.NewMemoryStore()
	rec := domain.Record{
		Applicant: domain.Applicant{
			Name:            "Maria",
			VisaType:        domain.VisaTourism,
			AppointmentDate: domain.NewDate(2025, time.September, 3),
			AppointmentTime: "10:00",
		},
		ReferenceCode: "VFS123456ABC",
		CreatedAt:     time.Date(2025, time.August, 20, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, handoff.PutRecord(ctx, store, rec))

	got, err := handoff.TakeRecord(ctx, store, rec.ReferenceCode)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
	assert.Equal(t, 0, store.Len())

	_, err = handoff.TakeRecord(ctx, store, rec.ReferenceCode)
	assert.True(t, errors.Is(err, handoff.ErrNotFound))
}

func TestTakeRecord_ClearsUndecodableEntry(t *testing.T) {
	ctx := context.Background()
	store := handoff.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "VFS000000AAA", []byte("{broken")))

	_, err := handoff.TakeRecord(ctx, store, "VFS000000AAA")
	assert.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestTakeRecord_ConcurrentCallersGetItOnce(t *testing.T) {
	ctx := context.Background()
	store := handoff.NewMemoryStore()
	rec := domain.Record{ReferenceCode: "VFS123456ABC"}
	require.NoError(t, handoff.PutRecord(ctx, store, rec))

	const callers = 32
	var (
		wg    sync.WaitGroup
		taken atomic.Int32
	)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := handoff.TakeRecord(ctx, store, rec.ReferenceCode); err == nil {
				taken.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), taken.Load())
	assert.Equal(t, 0, store.Len())
}

func TestPutRecord_RequiresReferenceCode(t *testing.T) {
	store := handoff.NewMemoryStore()
	assert.Error(t, handoff.PutRecord(context.Background(), store, domain.Record{}))
	assert.Equal(t, 0, store.Len())
}
