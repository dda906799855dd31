package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ticketboard/internal/board"
	"ticketboard/internal/model"
)

// State is the phase of the last optimistic move.
type State int

const (
	Idle State = iota
	OptimisticallyApplied
	Confirmed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case OptimisticallyApplied:
		return "optimistically_applied"
	case Confirmed:
		return "confirmed"
	case RolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

var (
	ErrNotLoaded      = errors.New("board not loaded")
	ErrMoveInProgress = errors.New("another move is in flight")
)

type api interface {
	FetchBoard(ctx context.Context, workspaceID uint) (*board.Board, error)
	Reorder(ctx context.Context, workspaceID, ticketID uint, target model.Status, targetIndex int) (*model.Ticket, error)
}

// BoardSession holds the locally displayed board of one workspace and applies moves to it
// before the server confirms them.
type BoardSession struct {
	api         api
	workspaceID uint

	mu       sync.Mutex
	board    *board.Board
	state    State
	inFlight bool
}

func NewBoardSession(c api, workspaceID uint) *BoardSession {
	return &BoardSession{api: c, workspaceID: workspaceID}
}

// Refresh replaces the local board with the server's.
func (s *BoardSession) Refresh(ctx context.Context) error {
	b, err := s.api.FetchBoard(ctx, s.workspaceID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.board = b
	s.mu.Unlock()
	return nil
}

// Board returns a copy of the board currently shown.
func (s *BoardSession) Board() *board.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

func (s *BoardSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Move applies the move locally, then sends it. On success the board is refetched; on failure the
// exact board from before the move is restored and the server's error is returned.
func (s *BoardSession) Move(ctx context.Context, ticketID uint, target model.Status, targetIndex int) error {
	s.mu.Lock()
	if s.board == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	if s.inFlight {
		s.mu.Unlock()
		return ErrMoveInProgress
	}
	snapshot := s.board.Clone()
	s.board = board.ApplyOptimisticMove(s.board, ticketID, target, targetIndex)
	s.state = OptimisticallyApplied
	s.inFlight = true
	s.mu.Unlock()

	_, err := s.api.Reorder(ctx, s.workspaceID, ticketID, target, targetIndex)

	s.mu.Lock()
	s.inFlight = false
	if err != nil {
		s.board = snapshot
		s.state = RolledBack
		s.mu.Unlock()
		return err
	}
	s.state = Confirmed
	s.mu.Unlock()

	if err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh board: %w", err)
	}
	return nil
}
