package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/josegonzalez/gamenote/pkg/filename"
	"github.com/josegonzalez/gamenote/pkg/gamenote"
)

// DeriveFunc computes a field from its raw same-named property, the whole game and the field name.
type DeriveFunc func(raw any, game gamenote.Game, key string) gamenote.Value

type specKind uint8

const (
	directCopy specKind = iota
	renameFrom
	derive
)

// FieldSpec declares how one output field is resolved from a game.
// Construct it with DirectCopy, RenameFrom or Derive.
type FieldSpec struct {
	name   string
	kind   specKind
	source string
	fn     DeriveFunc
}

// Name returns the output field name.
func (s FieldSpec) Name() string { return s.name }

// DirectCopy copies the identically named raw property.
func DirectCopy(name string) FieldSpec {
	return FieldSpec{name: name, kind: directCopy}
}

// RenameFrom copies the raw property source into field name.
func RenameFrom(name, source string) FieldSpec {
	return FieldSpec{name: name, kind: renameFrom, source: source}
}

// Derive computes field name with fn.
func Derive(name string, fn DeriveFunc) FieldSpec {
	return FieldSpec{name: name, kind: derive, fn: fn}
}

// Pick builds a record from game, resolving every spec independently.
func Pick(game gamenote.Game, specs []FieldSpec) gamenote.Record {
	fields := make([]gamenote.Field, 0, len(specs))
	for _, spec := range specs {
		fields = append(fields, gamenote.Field{Name: spec.name, Value: resolve(game, spec)})
	}
	return gamenote.NewRecord(fields...)
}

func resolve(game gamenote.Game, spec FieldSpec) gamenote.Value {
	switch spec.kind {
	case renameFrom:
		raw, _ := game.Property(spec.source)
		return fromRaw(raw)
	case derive:
		raw, _ := game.Property(spec.name)
		if spec.fn == nil {
			return fromRaw(raw)
		}
		return spec.fn(raw, game, spec.name)
	default:
		raw, _ := game.Property(spec.name)
		return fromRaw(raw)
	}
}

// fromRaw converts a decoded JSON scalar into a Value.
func fromRaw(raw any) gamenote.Value {
	switch v := raw.(type) {
	case nil:
		return gamenote.Empty()
	case string:
		return gamenote.Text(v)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) <= math.MaxInt32 {
			return gamenote.Int(int(v))
		}
		return gamenote.Text(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		return gamenote.Int(v)
	case int64:
		return gamenote.Int(int(v))
	case bool:
		return gamenote.Text(strconv.FormatBool(v))
	default:
		return gamenote.Text(fmt.Sprint(v))
	}
}

// Fields returns the standard field table used to build a note record.
// Dates are interpreted in loc.
func Fields(loc *time.Location) []FieldSpec {
	return []FieldSpec{
		Derive("title", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			return gamenote.Text("'" + filename.EscapeQuoted(g.Name) + "'")
		}),
		RenameFrom("templateTitle", "name"),
		Derive("posterUrl", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			if g.Cover == nil {
				return gamenote.Empty()
			}
			return PosterURL(g.Cover.URL)
		}),
		RenameFrom("igdbUrl", "url"),
		RenameFrom("igdbId", "id"),
		Derive("fileName", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			name := g.Name
			if year, ok := ReleaseYear(g.FirstReleaseDate, loc).IntValue(); ok {
				name += " (" + strconv.Itoa(year) + ")"
			}
			return gamenote.Text(filename.Sanitize(name))
		}),
		Derive("platforms", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			return NameList(g.Platforms, true)
		}),
		Derive("genres", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			return NameList(g.Genres, true)
		}),
		Derive("keywords", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			return NameList(g.Keywords, true)
		}),
		Derive("franchises", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			franchises := make([]gamenote.Named, len(g.Franchises))
			for i, f := range g.Franchises {
				franchises[i] = gamenote.Named{Name: f.Name + " (Franchise)"}
			}
			return NameList(franchises, true)
		}),
		Derive("aliases", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			aliases := append(append([]gamenote.Named{}, g.AlternativeNames...), gamenote.Named{Name: g.Name})
			return NameList(aliases, false)
		}),
		Derive("gameModes", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			return NameList(g.GameModes, true)
		}),
		Derive("developer", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			name, ok := FindDeveloper(g.InvolvedCompanies).TextValue()
			name = filename.Sanitize(strings.TrimSpace(name))
			if !ok || name == "" {
				return gamenote.Empty()
			}
			return gamenote.Text("'[[" + filename.EscapeQuoted(name) + "]]'")
		}),
		Derive("templateDeveloper", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			return FindDeveloper(g.InvolvedCompanies)
		}),
		Derive("developerLogoUrl", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			return LogoURL(g.InvolvedCompanies)
		}),
		Derive("year", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			return ReleaseYear(g.FirstReleaseDate, loc)
		}),
		Derive("releaseDate", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			return ReleaseDate(g.FirstReleaseDate, loc)
		}),
		Derive("websites", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			return URLList(g.Websites, false)
		}),
		Derive("templateStoryline", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			return CollapseNewlines(g.Storyline)
		}),
		Derive("templateSummary", func(_ any, g gamenote.Game, _ string) gamenote.Value {
			return CollapseNewlines(g.Summary)
		}),
	}
}
