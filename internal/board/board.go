// Package board builds the per-status projection of a workspace's tickets that the kanban view renders.
package board

import (
	"sort"

	"ticketboard/internal/model"
)

// Board is a read projection: every status column ordered by ascending position.
type Board struct {
	Columns map[model.Status][]model.Ticket `json:"board"`
	Total   int                             `json:"total"`
}

// New returns a board with all four columns present and empty.
func New() *Board {
	b := &Board{Columns: make(map[model.Status][]model.Ticket, len(model.Statuses))}
	for _, s := range model.Statuses {
		b.Columns[s] = []model.Ticket{}
	}
	return b
}

// GroupByStatus partitions tickets into their status columns sorted by position.
// Tickets with equal positions keep their input order. Tickets with an unknown status are skipped.
func GroupByStatus(tickets []model.Ticket) *Board {
	b := New()
	for _, t := range tickets {
		if !t.Status.Valid() {
			continue
		}
		b.Columns[t.Status] = append(b.Columns[t.Status], t)
		b.Total++
	}
	for _, s := range model.Statuses {
		col := b.Columns[s]
		sort.SliceStable(col, func(i, j int) bool {
			return col[i].Position < col[j].Position
		})
	}
	return b
}

// Find returns the column and index holding the ticket, or index -1.
func (b *Board) Find(ticketID uint) (model.Status, int) {
	for _, s := range model.Statuses {
		for i, t := range b.Columns[s] {
			if t.ID == ticketID {
				return s, i
			}
		}
	}
	return "", -1
}

// Clone returns a deep copy that shares no memory with b.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	out := &Board{Columns: make(map[model.Status][]model.Ticket, len(b.Columns)), Total: b.Total}
	for s, col := range b.Columns {
		cp := make([]model.Ticket, len(col))
		for i, t := range col {
			cp[i] = cloneTicket(t)
		}
		out.Columns[s] = cp
	}
	return out
}

func cloneTicket(t model.Ticket) model.Ticket {
	t.ParentID = cloneUint(t.ParentID)
	t.AssigneeID = cloneUint(t.AssigneeID)
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		t.CompletedAt = &c
	}
	if t.Labels != nil {
		t.Labels = append([]model.Label(nil), t.Labels...)
	}
	return t
}

func cloneUint(v *uint) *uint {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
