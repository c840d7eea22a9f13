package storage

import (
	"os"
	"testing"

	"github.com/RuiFG/cachesnap/log"
	"github.com/stretchr/testify/assert"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()

	data, err := m.Read()
	assert.Nil(t, err)
	assert.Nil(t, data)

	assert.Nil(t, m.Write([]byte("snapshot")))
	data, err = m.Read()
	assert.Nil(t, err)
	assert.Equal(t, []byte("snapshot"), data)

	assert.Nil(t, m.Purge())
	data, err = m.Read()
	assert.Nil(t, err)
	assert.Nil(t, data)
	assert.Nil(t, m.Close())
}

func TestFsRoundTrip(t *testing.T) {
	dir, err := os.MkdirTemp("", "")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	store, err := NewFs(log.Nop(), dir)
	assert.Nil(t, err)

	data, err := store.Read()
	assert.Nil(t, err)
	assert.Nil(t, data)

	assert.Nil(t, store.Write([]byte("snapshot")))
	data, err = store.Read()
	assert.Nil(t, err)
	assert.Equal(t, []byte("snapshot"), data)
	assert.Nil(t, store.Close())

	//reopening loads the persisted snapshot
	store, err = NewFs(log.Nop(), dir)
	assert.Nil(t, err)
	data, err = store.Read()
	assert.Nil(t, err)
	assert.Equal(t, []byte("snapshot"), data)

	assert.Nil(t, store.Purge())
	data, err = store.Read()
	assert.Nil(t, err)
	assert.Nil(t, data)
	assert.Nil(t, store.Close())
}

func TestFsPurgeWithoutWrite(t *testing.T) {
	dir, err := os.MkdirTemp("", "")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	store, err := NewFs(log.Nop(), dir)
	assert.Nil(t, err)
	assert.Nil(t, store.Purge())
	assert.Nil(t, store.Close())
}
