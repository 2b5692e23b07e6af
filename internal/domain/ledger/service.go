package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/medtrack/hms-inventory/internal/domain/inventory"
	"github.com/medtrack/hms-inventory/internal/domain/projects"
	"github.com/medtrack/hms-inventory/internal/domain/tickets"
	"github.com/medtrack/hms-inventory/internal/infra/metrics"
)

var (
	ErrNotFound             = errors.New("reference not found")
	ErrInvalidReferenceType = errors.New("invalid reference type")
)

// Critical-stock alert policy. Fixed, not caller-supplied.
const criticalStockThreshold = 2

var criticalCategories = map[string]struct{}{
	"Safety Equipment": {},
	"Control Systems":  {},
	"Door Systems":     {},
}

type ItemStore interface {
	GetByID(ctx context.Context, id int64) (*inventory.Item, error)
	Save(ctx context.Context, it *inventory.Item) error
	List(ctx context.Context) ([]inventory.Item, error)
}

type HistoryStore interface {
	CreateHistory(ctx context.Context, h *inventory.History) (*inventory.History, error)
}

type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*projects.Project, error)
	Save(ctx context.Context, p *projects.Project) error
}

type TicketStore interface {
	GetByID(ctx context.Context, id int64) (*tickets.Ticket, error)
	Save(ctx context.Context, t *tickets.Ticket) error
}

// LineRequest is one requested position in a reserve/allocate batch.
type LineRequest struct {
	ItemID   int64
	Quantity int64
	Notes    string
}

// ReturnRequest is one position in a return batch.
type ReturnRequest struct {
	LineID   int64
	Quantity int64
	Notes    string
}

// BatchResult carries the outcome of a reserve/allocate batch. A batch is
// best-effort: callers must inspect Errors, partial success is normal.
type BatchResult struct {
	History []inventory.History
	Errors  []string
}

// Service is the stock ledger: every stock mutation goes through it and
// produces exactly one history record. It holds no state of its own.
type Service struct {
	items    ItemStore
	history  HistoryStore
	projects ProjectStore
	tickets  TicketStore
	log      *slog.Logger
}

func New(items ItemStore, history HistoryStore, projectStore ProjectStore, ticketStore TicketStore, log *slog.Logger) *Service {
	return &Service{
		items:    items,
		history:  history,
		projects: projectStore,
		tickets:  ticketStore,
		log:      log,
	}
}

// ReserveForProject reserves the requested lines against a project,
// decrementing stock and appending one "out" history record per line.
// A missing project aborts the call; a bad line only fails that line.
func (s *Service) ReserveForProject(ctx context.Context, projectID int64, reqs []LineRequest, actorID int64) (*BatchResult, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("project %d: %w", projectID, ErrNotFound)
	}

	res, err := s.reserve(ctx, inventory.RefProject, p.ID, p.Label(), func(l inventory.Line) {
		p.Items = append(p.Items, l)
	}, reqs, actorID, false)
	if err != nil {
		return nil, err
	}

	if err := s.projects.Save(ctx, p); err != nil {
		return nil, err
	}
	return res, nil
}

// AllocateForTicket is the reservation flow applied to a service ticket.
// Unlike ReserveForProject, any unexpected failure while processing one
// line is reported as a per-line error and the batch keeps going.
func (s *Service) AllocateForTicket(ctx context.Context, ticketID int64, reqs []LineRequest, actorID int64) (*BatchResult, error) {
	t, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("service ticket %d: %w", ticketID, ErrNotFound)
	}

	res, err := s.reserve(ctx, inventory.RefServiceTicket, t.ID, t.Label(), func(l inventory.Line) {
		t.Items = append(t.Items, l)
	}, reqs, actorID, true)
	if err != nil {
		return nil, err
	}

	if err := s.tickets.Save(ctx, t); err != nil {
		return nil, err
	}
	return res, nil
}

// reserve processes the requests strictly in input order. With trap set,
// store errors for a single line become soft errors instead of aborting.
func (s *Service) reserve(ctx context.Context, refType inventory.RefType, refID int64, label string, add func(inventory.Line), reqs []LineRequest, actorID int64, trap bool) (*BatchResult, error) {
	res := &BatchResult{}

	softFail := func(msg string) {
		res.Errors = append(res.Errors, msg)
		metrics.LineErrors.Inc()
		s.log.Debug("line failed", "reference", label, "error", msg)
	}

	for _, req := range reqs {
		if req.Quantity <= 0 {
			softFail(fmt.Sprintf("quantity must be > 0 for item %d", req.ItemID))
			continue
		}

		item, err := s.items.GetByID(ctx, req.ItemID)
		if err != nil {
			if !trap {
				return nil, err
			}
			softFail(fmt.Sprintf("item %d: %v", req.ItemID, err))
			continue
		}
		if item == nil {
			softFail(fmt.Sprintf("item %d not found", req.ItemID))
			continue
		}
		if item.QuantityInStock < req.Quantity {
			softFail(fmt.Sprintf("insufficient stock for %s: available %d, requested %d",
				item.Name, item.QuantityInStock, req.Quantity))
			continue
		}

		prev := item.QuantityInStock
		item.QuantityInStock -= req.Quantity
		if err := s.items.Save(ctx, item); err != nil {
			if !trap {
				return nil, err
			}
			softFail(fmt.Sprintf("item %d: %v", req.ItemID, err))
			continue
		}

		rec, err := s.history.CreateHistory(ctx, &inventory.History{
			ItemID:        item.ID,
			Type:          inventory.MoveOut,
			Quantity:      req.Quantity,
			PreviousStock: prev,
			NewStock:      item.QuantityInStock,
			Reference:     label,
			ReferenceID:   refID,
			ReferenceType: refType,
			Notes:         req.Notes,
			CreatedBy:     actorID,
		})
		if err != nil {
			if !trap {
				return nil, err
			}
			softFail(fmt.Sprintf("item %d: %v", req.ItemID, err))
			continue
		}

		add(inventory.Line{
			ItemID:    item.ID,
			Quantity:  req.Quantity,
			UnitCost:  item.UnitCost,
			TotalCost: item.UnitCost * float64(req.Quantity),
			Status:    inventory.LineReserved,
			Notes:     req.Notes,
		})

		res.History = append(res.History, *rec)
		metrics.StockOut.Add(float64(req.Quantity))
	}

	return res, nil
}

// lineHolder is the common surface of the two consumer record kinds.
type lineHolder interface {
	Line(id int64) *inventory.Line
	Label() string
}

func (s *Service) resolve(ctx context.Context, refType inventory.RefType, refID int64) (lineHolder, func(context.Context) error, error) {
	switch refType {
	case inventory.RefProject:
		p, err := s.projects.GetByID(ctx, refID)
		if err != nil {
			return nil, nil, err
		}
		if p == nil {
			return nil, nil, fmt.Errorf("project %d: %w", refID, ErrNotFound)
		}
		return p, func(ctx context.Context) error { return s.projects.Save(ctx, p) }, nil
	case inventory.RefServiceTicket:
		t, err := s.tickets.GetByID(ctx, refID)
		if err != nil {
			return nil, nil, err
		}
		if t == nil {
			return nil, nil, fmt.Errorf("service ticket %d: %w", refID, ErrNotFound)
		}
		return t, func(ctx context.Context) error { return s.tickets.Save(ctx, t) }, nil
	default:
		return nil, nil, fmt.Errorf("%q: %w", refType, ErrInvalidReferenceType)
	}
}

// MarkUsed transitions the given lines from reserved to used and stamps the
// used date. Lines that are missing or not reserved are skipped. Stock was
// already decremented at reservation time, so no history is written here.
func (s *Service) MarkUsed(ctx context.Context, refType inventory.RefType, refID int64, lineIDs []int64, actorID int64) error {
	holder, save, err := s.resolve(ctx, refType, refID)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, id := range lineIDs {
		l := holder.Line(id)
		if l == nil || l.Status != inventory.LineReserved {
			s.log.Debug("mark-used skipped", "reference", holder.Label(), "line", id)
			continue
		}
		used := now
		l.Status = inventory.LineUsed
		l.UsedDate = &used
	}

	return save(ctx)
}

// Return puts quantities back into stock for the given lines, marks them
// returned and appends one "in" history record per restocked line. Lines
// already returned, unknown, or pointing at a missing item are skipped.
func (s *Service) Return(ctx context.Context, refType inventory.RefType, refID int64, reqs []ReturnRequest, actorID int64) ([]inventory.History, error) {
	holder, save, err := s.resolve(ctx, refType, refID)
	if err != nil {
		return nil, err
	}

	var created []inventory.History
	now := time.Now()

	for _, req := range reqs {
		l := holder.Line(req.LineID)
		if l == nil || l.Status == inventory.LineReturned {
			s.log.Debug("return skipped", "reference", holder.Label(), "line", req.LineID)
			continue
		}

		item, err := s.items.GetByID(ctx, l.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			s.log.Debug("return skipped, item missing", "reference", holder.Label(), "item", l.ItemID)
			continue
		}

		prev := item.QuantityInStock
		item.QuantityInStock += req.Quantity
		if err := s.items.Save(ctx, item); err != nil {
			return nil, err
		}

		returned := now
		l.Status = inventory.LineReturned
		l.ReturnedDate = &returned
		l.Notes = req.Notes

		rec, err := s.history.CreateHistory(ctx, &inventory.History{
			ItemID:        item.ID,
			Type:          inventory.MoveIn,
			Quantity:      req.Quantity,
			PreviousStock: prev,
			NewStock:      item.QuantityInStock,
			Reference:     holder.Label(),
			ReferenceID:   refID,
			ReferenceType: refType,
			Notes:         req.Notes,
			CreatedBy:     actorID,
		})
		if err != nil {
			return nil, err
		}

		created = append(created, *rec)
		metrics.StockIn.Add(float64(req.Quantity))
	}

	if err := save(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// AvailableInventory lists every item with its supplier resolved, sorted by
// name. Read-only.
func (s *Service) AvailableInventory(ctx context.Context) ([]inventory.Item, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// CriticalStock lists active items from the critical categories whose stock
// has fallen to the alert threshold. Read-only.
func (s *Service) CriticalStock(ctx context.Context) ([]inventory.Item, error) {
	items, err := s.items.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []inventory.Item
	for _, it := range items {
		if _, ok := criticalCategories[it.Category]; !ok {
			continue
		}
		if it.QuantityInStock > criticalStockThreshold || !it.Active {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}
