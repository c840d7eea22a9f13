package storage

import "sync"

// Storage is the durable store a persistor writes serialized snapshots to.
type Storage interface {
	Write(data []byte) error
	//Read returns the persisted snapshot bytes,
	//nil data with nil error means nothing has been persisted yet
	Read() ([]byte, error)
	Purge() error
	Close() error
}

type memory struct {
	mutex sync.Mutex
	data  []byte
}

func (m *memory) Write(data []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *memory) Read() ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

func (m *memory) Purge() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.data = nil
	return nil
}

func (m *memory) Close() error { return nil }

// NewMemory returns a non-durable in-memory backend, mostly for tests.
func NewMemory() Storage {
	return &memory{}
}
