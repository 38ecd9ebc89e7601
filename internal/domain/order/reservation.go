package order

import "github.com/google/uuid"

// Reservation is one completed stock decrement within a checkout attempt
type Reservation struct {
	ProductID uuid.UUID
	Quantity  int64
}

// ReservationLedger accumulates the stock reservations made during a single
// checkout so they can be compensated if a later step fails. Releases
// commute, so replay order does not matter; each entry must be attempted
// even if another fails.
type ReservationLedger struct {
	entries []Reservation
}

// NewReservationLedger creates an empty ledger
func NewReservationLedger() *ReservationLedger {
	return &ReservationLedger{entries: make([]Reservation, 0, 4)}
}

// Record appends a completed reservation
func (l *ReservationLedger) Record(productID uuid.UUID, qty int64) {
	l.entries = append(l.entries, Reservation{ProductID: productID, Quantity: qty})
}

// Entries returns the recorded reservations in reservation order
func (l *ReservationLedger) Entries() []Reservation {
	return l.entries
}

// Len returns the number of recorded reservations
func (l *ReservationLedger) Len() int {
	return len(l.entries)
}

// TotalQuantity returns the sum of all reserved quantities
func (l *ReservationLedger) TotalQuantity() int64 {
	var total int64
	for _, e := range l.entries {
		total += e.Quantity
	}
	return total
}
