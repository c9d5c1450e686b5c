package domain

import (
	"fmt"
	"strings"
)

// Position is a compass seat. North=0 through West=3; NoPosition marks "nobody".
type Position int

const (
	North Position = iota
	East
	South
	West
)

// NoPosition is used for an unset dealer, turn, or winner.
const NoPosition Position = -1

// Positions lists the four seats clockwise from north.
var Positions = [4]Position{North, East, South, West}

// Valid reports whether p is one of the four seats.
func (p Position) Valid() bool {
	return p >= North && p <= West
}

// Next returns the clockwise successor of p.
func (p Position) Next() Position {
	return (p + 1) % 4
}

// Partner returns the seat directly across the table.
func (p Position) Partner() Position {
	return (p + 2) % 4
}

// Team returns the partnership p belongs to.
func (p Position) Team() Team {
	if !p.Valid() {
		return NoTeam
	}
	return Team(p % 2)
}

func (p Position) String() string {
	switch p {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "none"
}

// ParsePosition accepts a seat name or its initial.
func ParsePosition(s string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	}
	return NoPosition, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
}

func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	if string(text) == "none" {
		*p = NoPosition
		return nil
	}
	parsed, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Team is one of the two partnerships.
type Team int

const (
	TeamNorthSouth Team = iota
	TeamEastWest
)

// NoTeam is used before a bidding team or winner exists.
const NoTeam Team = -1

// Valid reports whether t is one of the two partnerships.
func (t Team) Valid() bool {
	return t == TeamNorthSouth || t == TeamEastWest
}

// Opponent returns the other partnership.
func (t Team) Opponent() Team {
	if !t.Valid() {
		return NoTeam
	}
	return 1 - t
}

// Members returns the two seats of the team.
func (t Team) Members() [2]Position {
	if t == TeamEastWest {
		return [2]Position{East, West}
	}
	return [2]Position{North, South}
}

func (t Team) String() string {
	switch t {
	case TeamNorthSouth:
		return "north_south"
	case TeamEastWest:
		return "east_west"
	}
	return "none"
}

func (t Team) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Team) UnmarshalText(text []byte) error {
	switch string(text) {
	case "north_south":
		*t = TeamNorthSouth
	case "east_west":
		*t = TeamEastWest
	case "none", "":
		*t = NoTeam
	default:
		return fmt.Errorf("invalid team %q", text)
	}
	return nil
}
