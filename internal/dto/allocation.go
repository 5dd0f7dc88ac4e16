package dto

import "time"

type AllocationStatus string

const (
	AllocationAllocated        AllocationStatus = "ALLOCATED"
	AllocationAlreadyAllocated AllocationStatus = "ALREADY_ALLOCATED"
	AllocationRejected         AllocationStatus = "REJECTED"
)

type FailureReason string

const (
	ReasonSKUMismatch           FailureReason = "SKU_MISMATCH"
	ReasonInsufficientAvailable FailureReason = "INSUFFICIENT_AVAILABLE"
)

type OrderLine struct {
	OrderID  string `json:"orderId"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// AllocationResult describes what an allocate call did. Reason is only set
// when Status is AllocationRejected.
type AllocationResult struct {
	TraceID           string           `json:"traceId"`
	BatchRef          string           `json:"batchRef"`
	Line              OrderLine        `json:"line"`
	Status            AllocationStatus `json:"status"`
	Reason            FailureReason    `json:"reason,omitempty"`
	AvailableQuantity int              `json:"availableQuantity"`
}

type DeallocationResult struct {
	TraceID           string    `json:"traceId"`
	BatchRef          string    `json:"batchRef"`
	Line              OrderLine `json:"line"`
	Deallocated       bool      `json:"deallocated"`
	AvailableQuantity int       `json:"availableQuantity"`
}

type BatchView struct {
	Reference         string      `json:"reference"`
	SKU               string      `json:"sku"`
	PurchasedQuantity int         `json:"purchasedQuantity"`
	AllocatedQuantity int         `json:"allocatedQuantity"`
	AvailableQuantity int         `json:"availableQuantity"`
	ETA               *time.Time  `json:"eta"`
	Allocations       []OrderLine `json:"allocations"`
}
