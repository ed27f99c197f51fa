// package tracklist parses plain-text DJ set tracklists into [models.Track]
// entries and recognizes tracklist-shaped lines inside scraped wiki text.
package tracklist

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/strictlymomo/trainspotters-friend/internal/models"
	"github.com/strictlymomo/trainspotters-friend/internal/shared"
)

var (
	// remixPattern captures a trailing parenthesized remix credit:
	// "Artist - Title (Somebody Remix)".
	remixPattern = regexp.MustCompile(`(?i)\((.*(?:Remix|Mix|Dub).*)\)$`)

	// linePattern recognizes tracklist entries inside free text. Accepted
	// prefixes: "[012]", "00:00", "00:00:00", or "1." — followed by an
	// "Artist - Title" pair.
	linePattern = regexp.MustCompile(`^(\[\d+\]|\d{1,2}:\d{2}(:\d{2})?|\d{1,3}\.)\s+.+\s+-\s+.+`)
)

// ParseLine parses a single tracklist line of the form
// "timestamp Artist - Title (Remix Info)".
func ParseLine(line string) (models.Track, error) {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 2)
	if len(parts) < 2 {
		return models.Track{}, fmt.Errorf("%w: %q", shared.ErrInvalidInput, line)
	}

	timestamp := parts[0]
	info := parts[1]

	var remix string
	if m := remixPattern.FindStringSubmatch(info); m != nil {
		remix = m[1]
		info = strings.TrimSpace(info[:len(info)-len(m[0])])
	}

	var artist, title string
	if idx := strings.Index(info, " - "); idx >= 0 {
		artist = info[:idx]
		title = info[idx+3:]
	} else {
		// No clear separator; treat the whole thing as the artist.
		artist = info
	}

	return models.Track{
		Timestamp: timestamp,
		Artist:    strings.TrimSpace(artist),
		Title:     strings.TrimSpace(title),
		RemixInfo: remix,
	}, nil
}

// Parse parses a whole tracklist, skipping blank lines and logging a warning
// for each line that does not parse. Comment lines starting with '#' (mix
// headers in combined tracklists) are ignored.
func Parse(text string, logger *log.Logger) []models.Track {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	var tracks []models.Track
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		track, err := ParseLine(line)
		if err != nil {
			logger.Warnf("could not parse line: %q", line)
			continue
		}
		tracks = append(tracks, track)
	}
	return tracks
}

// IsEntry reports whether a line of scraped text looks like a tracklist
// entry (timestamped or numbered, with an artist/title separator).
func IsEntry(line string) bool {
	return linePattern.MatchString(strings.TrimSpace(line))
}
