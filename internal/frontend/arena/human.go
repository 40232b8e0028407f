package arena

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/monbattle/internal/frontend/telnet"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/controller"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
)

// ErrForfeit is returned when the player gives up. The battle driver treats
// it like any controller failure and awards the win to the opponent.
var ErrForfeit = errors.New("arena: player forfeited")

// Terminal is the player's line-oriented connection.
type Terminal interface {
	WriteLine(text string) error
	Prompt(question string) (string, error)
}

// Human is a controller.Controller driven by a person at a Terminal. It
// re-prompts until the input names a legal choice.
type Human struct {
	term Terminal
	dex  dex.Provider
}

// NewHuman creates a controller reading choices from term.
func NewHuman(term Terminal, d dex.Provider) *Human {
	return &Human{term: term, dex: d}
}

// ChooseAction implements controller.Controller.
func (h *Human) ChooseAction(ctx context.Context, view battle.View, _ battle.SideID) (battle.Action, error) {
	options := controller.LegalActions(view, h.dex)
	if err := h.term.WriteLine(RenderView(view) + "\n" + RenderOptions(view, options, h.dex)); err != nil {
		return battle.Action{}, err
	}
	for {
		line, err := h.ask(ctx, "action> ")
		if err != nil {
			return battle.Action{}, err
		}
		a, err := ParseAction(line, view, options)
		if err == nil {
			return a, nil
		}
		if errors.Is(err, ErrForfeit) {
			return battle.Action{}, err
		}
		if err := h.term.WriteLine(telnet.Colorize(telnet.Red, err.Error())); err != nil {
			return battle.Action{}, err
		}
	}
}

// ChooseSwitchIn implements controller.Controller.
func (h *Human) ChooseSwitchIn(ctx context.Context, view battle.View, _ battle.SideID) (int, error) {
	targets := controller.SwitchOptions(view)
	options := make([]battle.Action, len(targets))
	for i, idx := range targets {
		options[i] = battle.Switch(idx)
	}
	msg := telnet.Colorf(telnet.Yellow, "%s fainted. Choose a replacement:", view.Own.ActiveCreature().Name)
	if err := h.term.WriteLine(msg + "\n" + RenderOptions(view, options, h.dex)); err != nil {
		return 0, err
	}
	for {
		line, err := h.ask(ctx, "switch> ")
		if err != nil {
			return 0, err
		}
		a, err := ParseAction(line, view, options)
		if err == nil {
			return a.Switch, nil
		}
		if errors.Is(err, ErrForfeit) {
			return 0, err
		}
		if err := h.term.WriteLine(telnet.Colorize(telnet.Red, err.Error())); err != nil {
			return 0, err
		}
	}
}

func (h *Human) ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := h.term.Prompt(prompt)
	if err != nil {
		return "", err
	}
	// The answer may arrive after the decision deadline has passed.
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return line, nil
}

// ParseAction resolves player input against the listed options. Input is
// an option number, a move, creature or item name, or "forfeit".
func ParseAction(input string, view battle.View, options []battle.Action) (battle.Action, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return battle.Action{}, errors.New("enter a choice")
	}
	key := dex.ToID(input)
	if key == "forfeit" || key == "quit" {
		return battle.Action{}, ErrForfeit
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(options) {
			return battle.Action{}, fmt.Errorf("choose 1 to %d", len(options))
		}
		return options[n-1], nil
	}
	if a, ok := matchName(key, view, options); ok {
		return a, nil
	}
	for _, verb := range []string{"switch", "use"} {
		if rest, ok := strings.CutPrefix(key, verb); ok {
			if a, ok := matchName(rest, view, options); ok {
				return a, nil
			}
		}
	}
	return battle.Action{}, fmt.Errorf("%q is not one of the choices", input)
}

func matchName(key string, view battle.View, options []battle.Action) (battle.Action, bool) {
	for _, a := range options {
		var name string
		switch a.Kind {
		case battle.ActionMove:
			name = string(a.Move)
		case battle.ActionSwitch:
			name = dex.ToID(view.Own.Team[a.Switch].Name)
		case battle.ActionItem:
			name = string(a.Item)
		}
		if name == key {
			return a, true
		}
	}
	return battle.Action{}, false
}
