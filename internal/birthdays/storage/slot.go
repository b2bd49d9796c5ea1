// Package storage provides single-key durable slots that hold the whole
// serialized birthday collection.
package storage

import (
	"context"
	"errors"
)

// DefaultKey is the storage key the collection lives under.
const DefaultKey = "cyberbirth_data"

// ErrSlotEmpty is returned by Load when nothing has been stored yet.
var ErrSlotEmpty = errors.New("storage slot is empty")

// Slot is one durable value. Save always replaces the whole value.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Ping(ctx context.Context) error
	Key() string
}
