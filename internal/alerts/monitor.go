package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/medtrack/hms-inventory/internal/domain/inventory"
	"github.com/medtrack/hms-inventory/internal/report"
)

type Notifier interface {
	SendText(text string) error
	SendDocument(name string, data []byte) error
}

// Source is the read side of the stock ledger the monitor polls.
type Source interface {
	CriticalStock(ctx context.Context) ([]inventory.Item, error)
	AvailableInventory(ctx context.Context) ([]inventory.Item, error)
}

// Monitor periodically sweeps critical stock and pushes operator alerts.
// An item alerts once and is muted until its stock recovers.
type Monitor struct {
	src           Source
	notify        Notifier
	log           *slog.Logger
	interval      time.Duration
	snapshotEvery int // send a full stock workbook every N sweeps, 0 = never

	alerted map[int64]struct{}
	sweeps  int
}

func NewMonitor(src Source, notify Notifier, log *slog.Logger, interval time.Duration, snapshotEvery int) *Monitor {
	return &Monitor{
		src:           src,
		notify:        notify,
		log:           log,
		interval:      interval,
		snapshotEvery: snapshotEvery,
		alerted:       make(map[int64]struct{}),
	}
}

func (m *Monitor) Run(ctx context.Context) {
	t := time.NewTicker(m.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.sweep(ctx)
		}
	}
}

func (m *Monitor) sweep(ctx context.Context) {
	items, err := m.src.CriticalStock(ctx)
	if err != nil {
		m.log.Error("critical stock sweep failed", "err", err)
		return
	}

	current := make(map[int64]struct{}, len(items))
	for _, it := range items {
		current[it.ID] = struct{}{}
		if _, ok := m.alerted[it.ID]; ok {
			continue
		}
		if err := m.notify.SendText(AlertText(it)); err != nil {
			m.log.Error("alert send failed", "item", it.ID, "err", err)
			continue
		}
		m.alerted[it.ID] = struct{}{}
	}

	// recovered items may alert again the next time they dip
	for id := range m.alerted {
		if _, ok := current[id]; !ok {
			delete(m.alerted, id)
		}
	}

	m.sweeps++
	if m.snapshotEvery > 0 && m.sweeps%m.snapshotEvery == 0 {
		m.sendSnapshot(ctx)
	}
}

func (m *Monitor) sendSnapshot(ctx context.Context) {
	items, err := m.src.AvailableInventory(ctx)
	if err != nil {
		m.log.Error("snapshot read failed", "err", err)
		return
	}
	data, err := report.StockSnapshot(items)
	if err != nil {
		m.log.Error("snapshot build failed", "err", err)
		return
	}
	if err := m.notify.SendDocument(report.SnapshotFileName(time.Now()), data); err != nil {
		m.log.Error("snapshot send failed", "err", err)
	}
}

func AlertText(it inventory.Item) string {
	if it.QuantityInStock <= 0 {
		return fmt.Sprintf("⚠️ %s (%s): out of stock", it.Name, it.Category)
	}
	return fmt.Sprintf("⚠️ %s (%s): %d left", it.Name, it.Category, it.QuantityInStock)
}
