package inventory

import "time"

type MoveType string

const (
	MoveIn  MoveType = "in"
	MoveOut MoveType = "out"
)

type RefType string

const (
	RefProject       RefType = "project"
	RefServiceTicket RefType = "service_ticket"
)

type LineStatus string

const (
	LineReserved LineStatus = "reserved"
	LineUsed     LineStatus = "used"
	LineReturned LineStatus = "returned"
)

type Item struct {
	ID              int64
	Name            string
	Category        string
	QuantityInStock int64
	UnitCost        float64
	Active          bool
	SupplierID      int64  // 0 = no supplier
	Supplier        string // supplier name (for display)
	CreatedAt       time.Time
}

// Line is an inventory position embedded in a project or service ticket.
// UnitCost/TotalCost are snapshots taken at reservation time.
type Line struct {
	ID           int64
	ItemID       int64
	Quantity     int64
	UnitCost     float64
	TotalCost    float64
	Status       LineStatus
	Notes        string
	UsedDate     *time.Time
	ReturnedDate *time.Time
	CreatedAt    time.Time
}

// History is one append-only ledger record per stock mutation.
type History struct {
	ID            int64
	ItemID        int64
	Type          MoveType
	Quantity      int64
	PreviousStock int64
	NewStock      int64
	Reference     string // human-readable label: project title / ticket number
	ReferenceID   int64
	ReferenceType RefType
	Notes         string
	CreatedBy     int64
	CreatedAt     time.Time
}
