package board

import (
	"ticketboard/internal/model"
)

// ApplyOptimisticMove relocates a ticket on a board snapshot ahead of server confirmation.
//
// When the ticket is not on the board, or target is not a known status, b itself is returned so callers
// can detect the no-op by pointer comparison. Otherwise the result is a new Board whose column slices are
// all fresh copies; the ticket is removed from its column, given the target status and inserted at
// targetIndex, clamped to the destination length. Positions are left alone: the server assigns them.
func ApplyOptimisticMove(b *Board, ticketID uint, target model.Status, targetIndex int) *Board {
	if b == nil || !target.Valid() {
		return b
	}
	from, idx := b.Find(ticketID)
	if idx < 0 {
		return b
	}

	next := &Board{Columns: make(map[model.Status][]model.Ticket, len(b.Columns)), Total: b.Total}
	for s, col := range b.Columns {
		next.Columns[s] = append(make([]model.Ticket, 0, len(col)+1), col...)
	}
	if _, ok := next.Columns[target]; !ok {
		next.Columns[target] = []model.Ticket{}
	}

	src := next.Columns[from]
	ticket := src[idx]
	next.Columns[from] = append(src[:idx], src[idx+1:]...)
	ticket.Status = target

	dst := next.Columns[target]
	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(dst) {
		targetIndex = len(dst)
	}
	dst = append(dst, model.Ticket{})
	copy(dst[targetIndex+1:], dst[targetIndex:])
	dst[targetIndex] = ticket
	next.Columns[target] = dst

	return next
}
