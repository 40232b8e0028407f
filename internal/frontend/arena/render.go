package arena

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/monbattle/internal/frontend/telnet"
	"github.com/cory-johannsen/monbattle/internal/game/battle"
	"github.com/cory-johannsen/monbattle/internal/game/combat"
	"github.com/cory-johannsen/monbattle/internal/game/creature"
	"github.com/cory-johannsen/monbattle/internal/game/dex"
	"github.com/cory-johannsen/monbattle/internal/game/sim"
)

const barWidth = 20

// RenderView formats the field as the player's side sees it.
//
// Postcondition: returns a multi-line block; the opposing bench is hidden.
func RenderView(view battle.View) string {
	var b strings.Builder
	b.WriteString(telnet.Colorf(telnet.BrightYellow, "=== Turn %d ===", view.Turn))
	if w := view.Conditions.Weather(); w != battle.WeatherNone {
		b.WriteString(telnet.Colorf(telnet.Cyan, "  weather: %s", w))
	}
	if t := view.Conditions.Terrain(); t != battle.TerrainNone {
		b.WriteString(telnet.Colorf(telnet.Cyan, "  terrain: %s", t))
	}
	b.WriteString("\n")
	b.WriteString(creatureLine("Foe", view.Opponent.ActiveCreature()))
	b.WriteString(creatureLine("You", view.Own.ActiveCreature()))

	var bench []string
	for i, c := range view.Own.Team {
		if i == view.Own.Active {
			continue
		}
		if c.Fainted() {
			bench = append(bench, telnet.Colorf(telnet.Dim, "%s (fainted)", c.Name))
			continue
		}
		bench = append(bench, fmt.Sprintf("%s %d/%d", c.Name, c.HP, c.MaxHP))
	}
	if len(bench) > 0 {
		b.WriteString(telnet.Colorize(telnet.Dim, "     bench: "))
		b.WriteString(strings.Join(bench, ", "))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func creatureLine(label string, c *creature.Creature) string {
	status := ""
	if c.Status != creature.StatusNone {
		status = " " + telnet.Colorize(telnet.BrightMagenta, statusTag(c.Status))
	}
	return fmt.Sprintf("%-4s %s%-12s%s Lv%-3d %s %3d/%-3d%s\n",
		label, telnet.BrightWhite, c.Name, telnet.Reset, c.Level,
		telnet.HPBar(c.HP, c.MaxHP, barWidth), c.HP, c.MaxHP, status)
}

func statusTag(s creature.Status) string {
	switch s {
	case creature.StatusBurn:
		return "BRN"
	case creature.StatusFreeze:
		return "FRZ"
	case creature.StatusParalysis:
		return "PAR"
	case creature.StatusPoison:
		return "PSN"
	case creature.StatusBadlyPoison:
		return "TOX"
	case creature.StatusSleep:
		return "SLP"
	default:
		return ""
	}
}

// RenderOptions lists the legal actions, numbered from 1.
func RenderOptions(view battle.View, options []battle.Action, d dex.Provider) string {
	var b strings.Builder
	for i, a := range options {
		fmt.Fprintf(&b, "  %s%2d)%s %s\n", telnet.BrightCyan, i+1, telnet.Reset, describe(view, a, d))
	}
	b.WriteString(telnet.Colorize(telnet.Dim, "  type a number or a name, or 'forfeit'"))
	return b.String()
}

func describe(view battle.View, a battle.Action, d dex.Provider) string {
	switch a.Kind {
	case battle.ActionSwitch:
		c := view.Own.Team[a.Switch]
		return fmt.Sprintf("switch to %s (%d/%d)", c.Name, c.HP, c.MaxHP)
	case battle.ActionItem:
		return fmt.Sprintf("use %s (x%d)", a.Item, view.Own.Bag.Count(a.Item))
	}
	mv, ok := d.Move(a.Move)
	if !ok {
		return string(a.Move)
	}
	detail := mv.Class.String()
	if mv.HasPower() {
		detail = fmt.Sprintf("%s %d", detail, mv.Power)
	}
	if mv.Accuracy > 0 {
		detail = fmt.Sprintf("%s %d%%", detail, mv.Accuracy)
	}
	return fmt.Sprintf("%-14s %s", mv.Name, telnet.Colorf(telnet.Dim, "[%s %s]", mv.Type, detail))
}

// RenderEvent formats one narration line from side's point of view.
func RenderEvent(side battle.SideID, e sim.Event) string {
	text := e.Text
	if e.Side != side {
		text = "(foe) " + text
	}
	switch e.Kind {
	case sim.EventMove:
		return telnet.Colorize(telnet.BrightWhite, text)
	case sim.EventDamage:
		if e.Side == side {
			return telnet.Colorize(telnet.BrightRed, text)
		}
		return telnet.Colorize(telnet.Green, text)
	case sim.EventCritical, sim.EventEffectiveness:
		return telnet.Colorize(telnet.BrightYellow, text)
	case sim.EventFaint:
		return telnet.Colorize(telnet.Red, text)
	case sim.EventHeal:
		return telnet.Colorize(telnet.BrightGreen, text)
	case sim.EventStatus, sim.EventVolatile, sim.EventCantMove:
		return telnet.Colorize(telnet.Magenta, text)
	case sim.EventField, sim.EventStage:
		return telnet.Colorize(telnet.Cyan, text)
	case sim.EventMiss:
		return telnet.Colorize(telnet.Dim, text)
	default:
		return text
	}
}

// RenderResult formats the end-of-battle banner for side.
func RenderResult(side battle.SideID, res combat.Result) string {
	switch {
	case res.Won(side):
		return telnet.Colorf(telnet.BrightGreen, "=== You won in %d turns (%s). ===", res.Turns, res.Reason)
	case res.Outcome == combat.OutcomeWin:
		return telnet.Colorf(telnet.BrightRed, "=== You lost in %d turns (%s). ===", res.Turns, res.Reason)
	default:
		return telnet.Colorf(telnet.BrightYellow, "=== Draw after %d turns (%s). ===", res.Turns, res.Reason)
	}
}
