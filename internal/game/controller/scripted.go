package controller

import (
	"context"
	"sync"

	"github.com/cory-johannsen/monbattle/internal/game/battle"
)

// Scripted replays fixed queues of actions and switch-ins, for tests and
// replays. Once a queue is exhausted it falls back to the first usable move
// and the first switch option.
type Scripted struct {
	mu       sync.Mutex
	actions  []battle.Action
	switches []int
}

// NewScripted creates a Scripted controller that will play actions in order.
func NewScripted(actions ...battle.Action) *Scripted {
	return &Scripted{actions: actions}
}

// QueueSwitchIns appends switch-in choices.
func (s *Scripted) QueueSwitchIns(indices ...int) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.switches = append(s.switches, indices...)
	return s
}

// Remaining reports how many queued actions have not been played.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions)
}

func (s *Scripted) ChooseAction(_ context.Context, view battle.View, _ battle.SideID) (battle.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.actions) > 0 {
		a := s.actions[0]
		s.actions = s.actions[1:]
		return a, nil
	}
	moves := usableMoves(view, nil)
	if len(moves) == 0 {
		return battle.Action{}, ErrNoChoice
	}
	return battle.UseMove(moves[0]), nil
}

func (s *Scripted) ChooseSwitchIn(_ context.Context, view battle.View, _ battle.SideID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.switches) > 0 {
		i := s.switches[0]
		s.switches = s.switches[1:]
		return i, nil
	}
	opts := SwitchOptions(view)
	if len(opts) == 0 {
		return 0, ErrNoChoice
	}
	return opts[0], nil
}
