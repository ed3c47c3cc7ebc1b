// ABOUTME: In-memory Slot implementations for tests
// ABOUTME: MemorySlot mirrors SQLiteSlot behavior; FailingSlot injects write errors

package store

import "errors"

// MemorySlot is a Slot backed by a byte slice. Useful for tests and for
// running the store without a database file.
type MemorySlot struct {
	data  []byte
	saves int
}

// NewMemorySlot returns an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (m *MemorySlot) Load() ([]byte, error) {
	if m.data == nil {
		return nil, ErrSlotEmpty
	}
	return m.data, nil
}

func (m *MemorySlot) Save(data []byte) error {
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (m *MemorySlot) Saves() int {
	return m.saves
}

// FailingSlot fails every Save, simulating a full or broken durable store.
// Load behaves like a MemorySlot seeded with the given bytes.
type FailingSlot struct {
	data []byte
}

func NewFailingSlot(data []byte) *FailingSlot {
	return &FailingSlot{data: data}
}

func (f *FailingSlot) Load() ([]byte, error) {
	if f.data == nil {
		return nil, ErrSlotEmpty
	}
	return f.data, nil
}

func (f *FailingSlot) Save(data []byte) error {
	return errors.New("quota exceeded")
}
