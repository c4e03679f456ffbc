package feed

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/amsehili/genrss/internal/meta"
	"github.com/amsehili/genrss/internal/scan"
)

// DurationSource resolves media durations for items. Satisfied by
// probe.Chain.
type DurationSource interface {
	Duration(path string) (int, bool)
}

// ItemBuilder turns scanned files into feed items.
type ItemBuilder struct {
	// Host is the normalized host prefix, ending in a slash
	Host string
	// UseMetadata prefers embedded tag titles over file names
	UseMetadata bool
	// Durations resolves itunes:duration values; nil disables probing
	Durations DurationSource
}

// FromFile builds the item for one scanned file. The item URL is the
// quoted concatenation of host and the file's slash-separated relative
// path, and doubles as the GUID.
func (b *ItemBuilder) FromFile(f scan.File, pubDate time.Time) Item {
	fileURL := Quote(b.Host + filepath.ToSlash(f.Path))

	title := meta.Title(f.Path, b.UseMetadata)
	description, ok := meta.Description(f.Path)
	if !ok || description == "" {
		description = title
	}

	item := Item{
		GUID:        fileURL,
		Link:        fileURL,
		Title:       title,
		Description: description,
		Summary:     description,
		PubDate:     FormatPubDate(pubDate),
	}

	if mimeType := meta.MIMEType(f.Path); meta.IsEnclosure(mimeType) {
		if fi, err := os.Stat(f.Path); err == nil {
			item.Enclosure = &Enclosure{
				URL:    fileURL,
				Type:   mimeType,
				Length: fi.Size(),
			}
		}
	}

	if b.Durations != nil {
		if seconds, ok := b.Durations.Duration(f.Path); ok {
			item.Duration = strconv.Itoa(seconds)
		}
	}

	return item
}
