package projects

import (
	"time"

	"github.com/medtrack/hms-inventory/internal/domain/inventory"
)

type Project struct {
	ID        int64
	Title     string
	CreatedAt time.Time
	Items     []inventory.Line
}

// Line returns the embedded line with the given id, first match wins.
func (p *Project) Line(id int64) *inventory.Line {
	for i := range p.Items {
		if p.Items[i].ID == id {
			return &p.Items[i]
		}
	}
	return nil
}

// Label is the reference label used in history records.
func (p *Project) Label() string { return p.Title }
