package format

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/josegonzalez/gamenote/pkg/gamenote"
)

// Image size tokens, see https://api-docs.igdb.com/#images
const (
	sizeThumb    = "thumb"
	sizeCoverBig = "cover_big"
	sizeLogoMed  = "logo_med"
)

var newlinePattern = regexp.MustCompile(`\r?\n|\r`)

func releaseTime(ts *int64, loc *time.Location) (time.Time, bool) {
	if ts == nil {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(*ts, 0).In(loc), true
}

// ReleaseYear returns the calendar year of a UNIX timestamp in loc.
// A nil timestamp yields Empty; zero is a valid timestamp.
func ReleaseYear(ts *int64, loc *time.Location) gamenote.Value {
	t, ok := releaseTime(ts, loc)
	if !ok {
		return gamenote.Empty()
	}
	return gamenote.Int(t.Year())
}

// ReleaseDate formats a UNIX timestamp in loc as YYYY-MM-DD.
func ReleaseDate(ts *int64, loc *time.Location) gamenote.Value {
	t, ok := releaseTime(ts, loc)
	if !ok {
		return gamenote.Empty()
	}
	return gamenote.Text(t.Format("2006-01-02"))
}

func developer(companies []gamenote.InvolvedCompany) *gamenote.Company {
	for _, ic := range companies {
		if ic.Developer {
			return ic.Company
		}
	}
	return nil
}

// FindDeveloper returns the name of the first company flagged as developer.
func FindDeveloper(companies []gamenote.InvolvedCompany) gamenote.Value {
	c := developer(companies)
	if c == nil || c.Name == "" {
		return gamenote.Empty()
	}
	return gamenote.Text(c.Name)
}

func resizeImage(fragment, size string) gamenote.Value {
	if fragment == "" {
		return gamenote.Empty()
	}
	return gamenote.Text("https:" + strings.Replace(fragment, sizeThumb, size, 1))
}

// PosterURL upgrades a protocol relative thumbnail URL to the cover_big size.
func PosterURL(fragment string) gamenote.Value {
	return resizeImage(fragment, sizeCoverBig)
}

// LogoURL returns the medium logo of the developing company.
func LogoURL(companies []gamenote.InvolvedCompany) gamenote.Value {
	c := developer(companies)
	if c == nil || c.Logo == nil {
		return gamenote.Empty()
	}
	return resizeImage(c.Logo.URL, sizeLogoMed)
}

// CollapseNewlines replaces every line break in s with a space.
func CollapseNewlines(s *string) gamenote.Value {
	if s == nil {
		return gamenote.Empty()
	}
	return gamenote.Text(newlinePattern.ReplaceAllString(*s, " "))
}

// SuggestionLabel renders a one-line summary: Name (Year) [Platform, Platform].
func SuggestionLabel(g gamenote.Game, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(g.Name)
	if year, ok := ReleaseYear(g.FirstReleaseDate, loc).IntValue(); ok {
		b.WriteString(" (" + strconv.Itoa(year) + ")")
	}
	if len(g.Platforms) > 0 {
		names := make([]string, len(g.Platforms))
		for i, p := range g.Platforms {
			names[i] = p.Name
		}
		b.WriteString(" [" + strings.Join(names, ", ") + "]")
	}
	return b.String()
}
