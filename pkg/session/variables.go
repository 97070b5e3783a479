package session

import (
	"github.com/josegonzalez/gamenote/pkg/gamenote"
)

// Variables is the complete value set of one finished session.
type Variables struct {
	// Record holds the formatted fields of the selected game.
	Record gamenote.Record
	// PosterPath is the vault path of the downloaded cover, or Empty.
	PosterPath gamenote.Value
	// TemplatePoster embeds the local cover, or falls back to the remote URL.
	TemplatePoster string
	// Original is the game as returned by the provider.
	Original gamenote.Game
}

// NewVariables assembles the final variable set. An empty posterPath selects the remote embed.
func NewVariables(record gamenote.Record, game gamenote.Game, posterPath string) *Variables {
	v := &Variables{Record: record, PosterPath: gamenote.Empty(), Original: game}
	if posterPath != "" {
		v.PosterPath = gamenote.Text(posterPath)
		v.TemplatePoster = "![[" + posterPath + "]]"
	} else {
		v.TemplatePoster = "![](" + record.Value("posterUrl").String() + ")"
	}
	return v
}

// Fields returns the record fields followed by posterPath and templatePoster.
func (v *Variables) Fields() []gamenote.Field {
	return append(v.Record.Fields(),
		gamenote.Field{Name: "posterPath", Value: v.PosterPath},
		gamenote.Field{Name: "templatePoster", Value: gamenote.Text(v.TemplatePoster)},
	)
}

// Strings returns every field in its serialized form.
func (v *Variables) Strings() map[string]string {
	fields := v.Fields()
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Name] = f.Value.String()
	}
	return out
}
