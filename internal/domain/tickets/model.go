package tickets

import (
	"time"

	"github.com/medtrack/hms-inventory/internal/domain/inventory"
)

type Ticket struct {
	ID        int64
	Number    string // human-readable ticket number, e.g. ST-2024-0117
	Title     string
	CreatedAt time.Time
	Items     []inventory.Line
}

// Line returns the embedded line with the given id, first match wins.
func (t *Ticket) Line(id int64) *inventory.Line {
	for i := range t.Items {
		if t.Items[i].ID == id {
			return &t.Items[i]
		}
	}
	return nil
}

// Label is the reference label used in history records.
func (t *Ticket) Label() string { return t.Number }
