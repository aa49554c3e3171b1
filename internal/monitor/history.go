package monitor

import "github.com/Chiggixo/EzyMedi/internal/models"

// DefaultHistoryCapacity is the number of points the trend strip keeps.
const DefaultHistoryCapacity = 20

// HistoryBuffer is a fixed-capacity FIFO of derived chart points, ordered
// by arrival. It is not self-locking; the owning Session serializes
// access.
type HistoryBuffer struct {
	capacity int
	points   []models.HistoryPoint
}

func NewHistoryBuffer(capacity int) *HistoryBuffer {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &HistoryBuffer{capacity: capacity}
}

// Push appends p, evicting the single oldest point once the buffer is
// full.
func (b *HistoryBuffer) Push(p models.HistoryPoint) {
	if len(b.points) == b.capacity {
		copy(b.points, b.points[1:])
		b.points[len(b.points)-1] = p
		return
	}
	b.points = append(b.points, p)
}

// Reset empties the buffer. Capacity is retained.
func (b *HistoryBuffer) Reset() {
	b.points = b.points[:0]
}

// Points returns a copy that is safe to hand to renderers.
func (b *HistoryBuffer) Points() []models.HistoryPoint {
	out := make([]models.HistoryPoint, len(b.points))
	copy(out, b.points)
	return out
}

func (b *HistoryBuffer) Len() int { return len(b.points) }

func (b *HistoryBuffer) Capacity() int { return b.capacity }
