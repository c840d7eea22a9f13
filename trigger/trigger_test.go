package trigger

import (
	"testing"
	"time"

	"github.com/RuiFG/cachesnap/cache"
	"github.com/RuiFG/cachesnap/persist"
	"github.com/RuiFG/cachesnap/snapshot"
	"github.com/RuiFG/cachesnap/storage"
	"github.com/stretchr/testify/assert"
	"github.com/uber-go/tally/v4"
)

func newPersistor(scope tally.Scope) (*cache.Map, *persist.Persistor) {
	m := cache.NewMap(snapshot.JSONCodec{})
	m.WriteField("count", 1)
	return m, persist.New(m, storage.NewMemory(), persist.Options{Scope: scope})
}

func persistCount(scope tally.TestScope) int64 {
	if counter, ok := scope.Snapshot().Counters()["persist_success+"]; ok {
		return counter.Value()
	}
	return 0
}

func TestIntervalPersistsPeriodically(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	_, persistor := newPersistor(scope)

	interval := NewInterval(persistor, 10*time.Millisecond)
	interval.Activate()
	time.Sleep(55 * time.Millisecond)
	interval.Deactivate()

	fired := persistCount(scope)
	assert.GreaterOrEqual(t, fired, int64(2))

	//no more fires after deactivation
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, fired, persistCount(scope))
}

func TestWriteDebouncesBursts(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	_, persistor := newPersistor(scope)

	write := NewWrite(persistor, 30*time.Millisecond)
	defer write.Deactivate()
	write.Notify()
	write.Notify()
	write.Notify()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(1), persistCount(scope))

	write.Notify()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(2), persistCount(scope))
}

func TestWriteDeactivateCancelsPending(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	_, persistor := newPersistor(scope)

	write := NewWrite(persistor, 30*time.Millisecond)
	write.Notify()
	write.Deactivate()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(0), persistCount(scope))

	//notify after deactivation is a no-op
	write.Notify()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(0), persistCount(scope))
}
