package team

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var showdownStats = map[string]string{
	"HP":  KeyHP,
	"Atk": KeyAttack,
	"Def": KeyDefense,
	"SpA": KeySpecialAttack,
	"SpD": KeySpecialDefense,
	"Spe": KeySpeed,
}

// ParseShowdown reads a team in Showdown export format. Sets are separated
// by blank lines; each starts with a header line
//
//	[Nickname (]Species[)] [(M|F)] [@ Item]
//
// followed by any of "Ability:", "Level:", "Happiness:", "EVs:", "IVs:",
// "<Nature> Nature" and "- Move" lines. "Shiny:" and "Tera Type:" lines are
// accepted and ignored. Names are kept as written; Build resolves them.
func ParseShowdown(r io.Reader, name string) (*Team, error) {
	t := &Team{Name: name}
	var cur *Set
	lineNo := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			cur = nil
			continue
		}
		if cur == nil {
			s, err := parseHeader(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			t.Members = append(t.Members, s)
			cur = &t.Members[len(t.Members)-1]
			continue
		}
		if err := parseAttribute(cur, line); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading showdown team: %w", err)
	}
	if len(t.Members) == 0 {
		return nil, fmt.Errorf("%w: no sets found", ErrSyntax)
	}
	return t, nil
}

func parseHeader(line string) (Set, error) {
	var s Set
	if head, item, ok := strings.Cut(line, "@"); ok {
		s.Item = strings.TrimSpace(item)
		line = strings.TrimSpace(head)
	}
	for _, g := range []string{"M", "F"} {
		if rest, ok := strings.CutSuffix(line, "("+g+")"); ok {
			s.Gender = g
			line = strings.TrimSpace(rest)
			break
		}
	}
	if open := strings.LastIndex(line, "("); open >= 0 {
		if !strings.HasSuffix(line, ")") {
			return Set{}, fmt.Errorf("%w: unbalanced parentheses in %q", ErrSyntax, line)
		}
		s.Name = strings.TrimSpace(line[:open])
		s.Species = strings.TrimSpace(line[open+1 : len(line)-1])
	} else {
		s.Species = line
	}
	if s.Species == "" {
		return Set{}, fmt.Errorf("%w: header without a species", ErrSyntax)
	}
	return s, nil
}

func parseAttribute(s *Set, line string) error {
	switch {
	case strings.HasPrefix(line, "-"):
		mv := strings.TrimSpace(strings.TrimPrefix(line, "-"))
		if head, _, ok := strings.Cut(mv, "["); ok {
			mv = strings.TrimSpace(head)
		}
		s.Moves = append(s.Moves, mv)
	case strings.HasPrefix(line, "Ability:"):
		s.Ability = strings.TrimSpace(strings.TrimPrefix(line, "Ability:"))
	case strings.HasPrefix(line, "Level:"):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Level:")))
		if err != nil {
			return fmt.Errorf("%w: level: %v", ErrSyntax, err)
		}
		s.Level = n
	case strings.HasPrefix(line, "Happiness:"):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Happiness:")))
		if err != nil {
			return fmt.Errorf("%w: happiness: %v", ErrSyntax, err)
		}
		s.Friendship = &n
	case strings.HasPrefix(line, "EVs:"):
		sp, err := parseSpread(strings.TrimPrefix(line, "EVs:"))
		if err != nil {
			return err
		}
		s.EVs = sp
	case strings.HasPrefix(line, "IVs:"):
		sp, err := parseSpread(strings.TrimPrefix(line, "IVs:"))
		if err != nil {
			return err
		}
		s.IVs = sp
	case strings.HasSuffix(line, " Nature"):
		s.Nature = strings.TrimSpace(strings.TrimSuffix(line, " Nature"))
	case strings.HasPrefix(line, "Shiny:"), strings.HasPrefix(line, "Tera Type:"), strings.HasPrefix(line, "Gigantamax:"):
	default:
		return fmt.Errorf("%w: unrecognised line %q", ErrSyntax, line)
	}
	return nil
}

// parseSpread reads "252 Atk / 4 Def / 252 Spe".
func parseSpread(text string) (Spread, error) {
	sp := Spread{}
	for _, part := range strings.Split(text, "/") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, stat, ok := strings.Cut(part, " ")
		if !ok {
			return nil, fmt.Errorf("%w: stat entry %q", ErrSyntax, part)
		}
		key, ok := showdownStats[strings.TrimSpace(stat)]
		if !ok {
			return nil, fmt.Errorf("%w: unknown stat %q", ErrSyntax, stat)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: stat value %q", ErrSyntax, value)
		}
		sp[key] = n
	}
	return sp, nil
}

// FormatShowdown writes t back out in Showdown export format. Parsing the
// output yields an equivalent team.
func FormatShowdown(w io.Writer, t *Team) error {
	bw := bufio.NewWriter(w)
	abbrev := map[string]string{}
	for k, v := range showdownStats {
		abbrev[v] = k
	}
	spread := func(label string, sp Spread) {
		var parts []string
		for _, k := range spreadKeys {
			if v, ok := sp[k]; ok {
				parts = append(parts, fmt.Sprintf("%d %s", v, abbrev[k]))
			}
		}
		if len(parts) > 0 {
			fmt.Fprintf(bw, "%s: %s\n", label, strings.Join(parts, " / "))
		}
	}
	for i, s := range t.Members {
		if i > 0 {
			bw.WriteString("\n")
		}
		header := s.Species
		if s.Name != "" && s.Name != s.Species {
			header = fmt.Sprintf("%s (%s)", s.Name, s.Species)
		}
		if s.Gender == "M" || s.Gender == "F" {
			header += " (" + s.Gender + ")"
		}
		if s.Item != "" {
			header += " @ " + s.Item
		}
		fmt.Fprintln(bw, header)
		if s.Ability != "" {
			fmt.Fprintf(bw, "Ability: %s\n", s.Ability)
		}
		if s.Level != 0 {
			fmt.Fprintf(bw, "Level: %d\n", s.Level)
		}
		if s.Friendship != nil {
			fmt.Fprintf(bw, "Happiness: %d\n", *s.Friendship)
		}
		spread("EVs", s.EVs)
		if s.Nature != "" {
			fmt.Fprintf(bw, "%s Nature\n", s.Nature)
		}
		spread("IVs", s.IVs)
		for _, m := range s.Moves {
			fmt.Fprintf(bw, "- %s\n", m)
		}
	}
	return bw.Flush()
}
