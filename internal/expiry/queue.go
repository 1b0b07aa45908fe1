package expiry

import (
	"time"

	"github.com/google/uuid"
)

type deadline struct {
	id uuid.UUID
	at time.Time
}

// deadlines is a min-heap ordered by at, driven through container/heap.
type deadlines []deadline

func (d deadlines) Len() int           { return len(d) }
func (d deadlines) Less(i, j int) bool { return d[i].at.Before(d[j].at) }
func (d deadlines) Swap(i, j int)      { d[i], d[j] = d[j], d[i] }

func (d *deadlines) Push(x any) {
	*d = append(*d, x.(deadline))
}

func (d *deadlines) Pop() any {
	old := *d
	n := len(old)
	item := old[n-1]
	*d = old[:n-1]
	return item
}
