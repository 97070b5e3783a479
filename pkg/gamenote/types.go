// Package gamenote provides the shared types, errors and settings used to turn
// an IGDB game lookup into a knowledge base note.
package gamenote

import (
	"encoding/json"
	"strconv"
)

// Credentials are the IGDB (Twitch) application credentials.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Named is any IGDB sub-object carrying a name (platform, genre, keyword, ...).
type Named struct {
	Name string `json:"name"`
}

// Website is an IGDB website entry.
type Website struct {
	URL string `json:"url"`
}

// Image is an IGDB image reference. URL is protocol relative and thumbnail sized.
type Image struct {
	URL string `json:"url"`
}

// Company is an IGDB company.
type Company struct {
	Name string `json:"name"`
	Logo *Image `json:"logo,omitempty"`
}

// InvolvedCompany links a company to a game.
type InvolvedCompany struct {
	Developer bool     `json:"developer"`
	Company   *Company `json:"company,omitempty"`
}

// Game is one game object as returned by the IGDB games endpoint.
// Every nested collection is optional and may contain duplicates.
type Game struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	URL               string            `json:"url,omitempty"`
	Cover             *Image            `json:"cover,omitempty"`
	FirstReleaseDate  *int64            `json:"first_release_date,omitempty"`
	Storyline         *string           `json:"storyline,omitempty"`
	Summary           *string           `json:"summary,omitempty"`
	Platforms         []Named           `json:"platforms,omitempty"`
	Genres            []Named           `json:"genres,omitempty"`
	Keywords          []Named           `json:"keywords,omitempty"`
	Franchises        []Named           `json:"franchises,omitempty"`
	AlternativeNames  []Named           `json:"alternative_names,omitempty"`
	GameModes         []Named           `json:"game_modes,omitempty"`
	Websites          []Website         `json:"websites,omitempty"`
	InvolvedCompanies []InvolvedCompany `json:"involved_companies,omitempty"`

	// Raw is the object exactly as decoded from the provider response.
	Raw map[string]any `json:"-"`
}

// UnmarshalJSON decodes the typed fields and keeps the raw object alongside.
func (g *Game) UnmarshalJSON(data []byte) error {
	type plain Game
	var typed plain
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*g = Game(typed)
	g.Raw = raw
	return nil
}

// Property returns the raw provider property with the given name.
func (g Game) Property(name string) (any, bool) {
	if g.Raw == nil {
		return nil, false
	}
	v, ok := g.Raw[name]
	return v, ok
}

// EmptySentinel is the serialized form of an empty value.
const EmptySentinel = " "

type valueKind uint8

const (
	kindEmpty valueKind = iota
	kindText
	kindInt
)

// Value is a single output field: empty, text or integer.
// The zero Value is Empty.
type Value struct {
	kind valueKind
	text string
	num  int
}

// Empty returns the value standing for an intentionally blank field.
func Empty() Value { return Value{} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: kindText, text: s} }

// Int returns an integer value.
func Int(n int) Value { return Value{kind: kindInt, num: n} }

// IsEmpty reports whether v is the empty variant.
func (v Value) IsEmpty() bool { return v.kind == kindEmpty }

// IntValue returns the integer and true when v is an integer value.
func (v Value) IntValue() (int, bool) { return v.num, v.kind == kindInt }

// TextValue returns the text and true when v is a text value.
func (v Value) TextValue() (string, bool) { return v.text, v.kind == kindText }

// String serializes v. Empty becomes EmptySentinel.
func (v Value) String() string {
	switch v.kind {
	case kindText:
		return v.text
	case kindInt:
		return strconv.Itoa(v.num)
	default:
		return EmptySentinel
	}
}

// MarshalJSON emits integers as numbers and everything else as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == kindInt {
		return []byte(strconv.Itoa(v.num)), nil
	}
	return json.Marshal(v.String())
}

// MarshalYAML emits integers as numbers and everything else as strings.
func (v Value) MarshalYAML() (any, error) {
	if v.kind == kindInt {
		return v.num, nil
	}
	return v.String(), nil
}

// Field is one named entry in a Record.
type Field struct {
	Name  string
	Value Value
}

// Record is the ordered, flat set of output fields built from one Game.
type Record struct {
	fields []Field
}

// NewRecord creates a record from fields, keeping their order.
// A later field with a duplicate name replaces the earlier one in place.
func NewRecord(fields ...Field) Record {
	r := Record{fields: make([]Field, 0, len(fields))}
	index := make(map[string]int, len(fields))
	for _, f := range fields {
		if i, ok := index[f.Name]; ok {
			r.fields[i] = f
			continue
		}
		index[f.Name] = len(r.fields)
		r.fields = append(r.fields, f)
	}
	return r
}

// Get returns the value for name.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Value returns the value for name, or Empty when the field is missing.
func (r Record) Value(name string) Value {
	v, _ := r.Get(name)
	return v
}

// Fields returns a copy of the record's fields.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }

// Strings returns the serialized form of every field.
func (r Record) Strings() map[string]string {
	out := make(map[string]string, len(r.fields))
	for _, f := range r.fields {
		out[f.Name] = f.Value.String()
	}
	return out
}
