package notify

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"ticketboard/internal/model"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var ErrChannelNotConfigured = errors.New("channel not configured")

// maxParallelSends bounds concurrent outbound requests during one dispatch.
const maxParallelSends = 8

type dueTicketSource interface {
	DueBetween(ctx context.Context, from, to time.Time) ([]model.Ticket, error)
}

type settingsSource interface {
	ListEnabled(ctx context.Context) ([]model.NotificationSettings, error)
}

// Report summarises one dispatch run.
type Report struct {
	Workspaces int `json:"workspaces"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
}

type Dispatcher struct {
	tickets   dueTicketSource
	settings  settingsSource
	notifiers []Notifier
	location  *time.Location
	timeout   time.Duration
	logger    *log.Logger
}

func NewDispatcher(tickets dueTicketSource, settings settingsSource, notifiers []Notifier, location *time.Location, timeout time.Duration, logger *log.Logger) *Dispatcher {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Dispatcher{
		tickets:   tickets,
		settings:  settings,
		notifiers: notifiers,
		location:  location,
		timeout:   timeout,
		logger:    logger,
	}
}

// TomorrowRange returns [start of tomorrow, start of the day after) in loc.
func TomorrowRange(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	end := time.Date(local.Year(), local.Month(), local.Day()+2, 0, 0, 0, 0, loc)
	return start, end
}

// DispatchDueTomorrow notifies every enabled workspace about its open tickets due tomorrow.
// Delivery failures are counted and logged; only failing to read the database aborts the run.
func (d *Dispatcher) DispatchDueTomorrow(ctx context.Context, now time.Time) (Report, error) {
	var report Report

	from, to := TomorrowRange(now, d.location)
	due, err := d.tickets.DueBetween(ctx, from, to)
	if err != nil {
		return report, fmt.Errorf("load due tickets: %w", err)
	}
	if len(due) == 0 {
		return report, nil
	}

	settings, err := d.settings.ListEnabled(ctx)
	if err != nil {
		return report, fmt.Errorf("load notification settings: %w", err)
	}

	byWorkspace := make(map[uint][]model.Ticket)
	for _, t := range due {
		byWorkspace[t.WorkspaceID] = append(byWorkspace[t.WorkspaceID], t)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelSends)

	for _, s := range settings {
		tickets := byWorkspace[s.WorkspaceID]
		if len(tickets) == 0 {
			continue
		}
		report.Workspaces++
		text := formatMessage(tickets, d.location)

		s := s
		for _, n := range d.notifiers {
			n := n
			g.Go(func() error {
				err := d.send(gctx, n, s, text)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case errors.Is(err, ErrChannelNotConfigured):
				case err != nil:
					report.Failed++
					d.logger.WithError(err).WithFields(log.Fields{
						"workspace_id": s.WorkspaceID,
						"channel":      n.Name(),
					}).Warn("due-date notification failed")
				default:
					report.Sent++
				}
				return nil
			})
		}
	}
	_ = g.Wait()

	d.logger.WithFields(log.Fields{
		"workspaces": report.Workspaces,
		"sent":       report.Sent,
		"failed":     report.Failed,
	}).Info("📣 due-date notifications dispatched")
	return report, nil
}

func (d *Dispatcher) send(ctx context.Context, n Notifier, s model.NotificationSettings, text string) error {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	return n.Notify(ctx, s, text)
}

func formatMessage(tickets []model.Ticket, loc *time.Location) string {
	sorted := make([]model.Ticket, len(tickets))
	copy(sorted, tickets)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var b strings.Builder
	if len(sorted) == 1 {
		b.WriteString("1 ticket is due tomorrow:\n")
	} else {
		fmt.Fprintf(&b, "%d tickets are due tomorrow:\n", len(sorted))
	}
	for _, t := range sorted {
		fmt.Fprintf(&b, "• #%d %s [%s]", t.ID, t.Title, t.Priority)
		if t.DueDate != nil {
			fmt.Fprintf(&b, " (%s)", t.DueDate.In(loc).Format("Jan 2 15:04"))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
