package domain

import (
	"sort"
	"time"
)

// Batch is stock of one SKU that arrives together. A nil ETA means the stock
// is already on hand or its arrival is unknown.
type Batch struct {
	Reference         string
	SKU               string
	PurchasedQuantity int
	ETA               *time.Time

	allocations map[OrderLine]struct{}
}

func NewBatch(reference, sku string, purchasedQuantity int, eta *time.Time) *Batch {
	return &Batch{
		Reference:         reference,
		SKU:               sku,
		PurchasedQuantity: purchasedQuantity,
		ETA:               eta,
		allocations:       make(map[OrderLine]struct{}),
	}
}

func (b *Batch) CanAllocate(line OrderLine) bool {
	return line.SKU == b.SKU && line.Quantity <= b.AvailableQuantity()
}

// Allocate reserves the line's quantity. Lines that cannot be allocated and
// lines that are already allocated leave the batch unchanged.
func (b *Batch) Allocate(line OrderLine) {
	if !b.CanAllocate(line) {
		return
	}
	if b.allocations == nil {
		b.allocations = make(map[OrderLine]struct{})
	}
	b.allocations[line] = struct{}{}
}

// Deallocate releases the line. Unallocated lines are ignored.
func (b *Batch) Deallocate(line OrderLine) {
	delete(b.allocations, line)
}

func (b *Batch) IsAllocated(line OrderLine) bool {
	_, ok := b.allocations[line]
	return ok
}

func (b *Batch) AllocatedQuantity() int {
	total := 0
	for line := range b.allocations {
		total += line.Quantity
	}
	return total
}

func (b *Batch) AvailableQuantity() int {
	return b.PurchasedQuantity - b.AllocatedQuantity()
}

// Allocations returns a copy of the allocated lines ordered by order id, then SKU.
func (b *Batch) Allocations() []OrderLine {
	lines := make([]OrderLine, 0, len(b.allocations))
	for line := range b.allocations {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].OrderID != lines[j].OrderID {
			return lines[i].OrderID < lines[j].OrderID
		}
		if lines[i].SKU != lines[j].SKU {
			return lines[i].SKU < lines[j].SKU
		}
		return lines[i].Quantity < lines[j].Quantity
	})
	return lines
}
