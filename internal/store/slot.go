package store

import (
	"context"
	"errors"
)

// SlotName is the single named slot palettes are persisted under
const SlotName = "palettes"

// ErrSlotEmpty is returned by Read when nothing has been written yet
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a durable location holding one opaque snapshot, overwritten wholesale
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}
