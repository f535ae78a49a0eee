package domain

import "fmt"

// Level identifies a tier of the territorial hierarchy. The values match
// the normative_level labels used by the ingestion backend.
type Level string

const (
	// LevelNational covers state-wide regulation (testi unici, national codes).
	LevelNational Level = "nazionale"

	// LevelRegional covers regional regulation.
	LevelRegional Level = "regionale"

	// LevelProvincial covers provincial regulation.
	LevelProvincial Level = "provinciale"

	// LevelMunicipal covers municipal regulation (piani regolatori, regolamenti edilizi).
	LevelMunicipal Level = "comunale"
)

// Levels returns all hierarchy levels ordered from widest to narrowest.
func Levels() []Level {
	return []Level{LevelNational, LevelRegional, LevelProvincial, LevelMunicipal}
}

// ParseLevel converts a string into a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelNational, LevelRegional, LevelProvincial, LevelMunicipal:
		return Level(s), nil
	default:
		return "", fmt.Errorf("%w: unknown level %q", ErrInvalidInput, s)
	}
}

// Narrower reports whether l is more specific than other.
func (l Level) Narrower(other Level) bool {
	return l.depth() > other.depth()
}

func (l Level) depth() int {
	switch l {
	case LevelRegional:
		return 1
	case LevelProvincial:
		return 2
	case LevelMunicipal:
		return 3
	default:
		return 0
	}
}

// String returns the wire label of the level.
func (l Level) String() string {
	return string(l)
}

// Scope is the canonical geographic filter applied to uploads and chat
// queries. It is an immutable value: all methods return copies.
//
// Invariant: Level is always the most specific non-empty field, and the
// fields form a consistent chain (province within region, municipality
// within province). Consistency is checked against the hierarchy index at
// publish time, not here.
type Scope struct {
	// Region is the region name, empty for national scope.
	Region string

	// Province is the province name, empty above provincial scope.
	Province string

	// Municipality is the comune name, empty above municipal scope.
	Municipality string

	// Level is derived from the most specific populated field.
	Level Level
}

// NewScope builds a Scope from the given fields, deriving Level.
func NewScope(region, province, municipality string) Scope {
	s := Scope{Region: region, Province: province, Municipality: municipality}
	s.Level = s.deriveLevel()
	return s
}

// NationalScope returns the widest possible scope.
func NationalScope() Scope {
	return Scope{Level: LevelNational}
}

func (s Scope) deriveLevel() Level {
	switch {
	case s.Municipality != "":
		return LevelMunicipal
	case s.Province != "":
		return LevelProvincial
	case s.Region != "":
		return LevelRegional
	default:
		return LevelNational
	}
}

// Normalised returns a copy with Level re-derived from the populated
// fields. Use after constructing a Scope literal.
func (s Scope) Normalised() Scope {
	s.Level = s.deriveLevel()
	return s
}

// ClampTo returns a copy widened to at most the given level, dropping the
// fields below it. Clamping never narrows: a regional scope clamped to
// municipal stays regional in content but carries the requested level
// label, which is what upload buckets need for tagging.
func (s Scope) ClampTo(level Level) Scope {
	out := s
	switch level {
	case LevelNational:
		out.Region, out.Province, out.Municipality = "", "", ""
	case LevelRegional:
		out.Province, out.Municipality = "", ""
	case LevelProvincial:
		out.Municipality = ""
	case LevelMunicipal:
		// Nothing to drop.
	}
	out.Level = level
	return out
}

// Equal reports whether two scopes are the same value.
func (s Scope) Equal(other Scope) bool {
	return s == other
}

// IsNational reports whether the scope has no territorial fields set.
func (s Scope) IsNational() bool {
	return s.Region == "" && s.Province == "" && s.Municipality == ""
}

// Describe returns a short human-readable description of the scope,
// used in chat acknowledgments and status bars.
func (s Scope) Describe() string {
	switch s.Level {
	case LevelMunicipal:
		if s.Province != "" {
			return fmt.Sprintf("%s (%s)", s.Municipality, s.Province)
		}
		return s.Municipality
	case LevelProvincial:
		return fmt.Sprintf("provincia di %s", s.Province)
	case LevelRegional:
		return s.Region
	default:
		return "tutto il territorio nazionale"
	}
}
