// Package feed assembles and serializes RSS 2.0 / iTunes podcast feeds.
//
// The serialized document carries the atom, itunes, and content
// namespaces of a podcast feed. Element order inside channel and item is
// fixed by the struct layouts below; encoding/xml guarantees escaping of
// text and attribute values.
package feed

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Indent is the indentation unit of the serialized feed
const Indent = "    "

// Enclosure references the media file of an item.
type Enclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int64  `xml:"length,attr"`
}

// Item is a single feed entry.
type Item struct {
	XMLName     xml.Name   `xml:"item"`
	GUID        string     `xml:"guid"`
	Link        string     `xml:"link"`
	Title       string     `xml:"title"`
	Description string     `xml:"description"`
	Summary     string     `xml:"itunes:summary"`
	PubDate     string     `xml:"pubDate,omitempty"`
	Enclosure   *Enclosure `xml:"enclosure,omitempty"`
	Duration    string     `xml:"itunes:duration,omitempty"`
}

// Feed is a complete channel ready for serialization.
type Feed struct {
	// Title of the podcast
	Title string
	// Description of the podcast
	Description string
	// Link is the channel link: the host, plus the output file when one
	// was named
	Link string
	// ImageURL is the resolved feed image; empty omits the image blocks
	ImageURL string
	// Items in feed order
	Items []Item
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type channelImage struct {
	URL   string `xml:"url"`
	Title string `xml:"title"`
	Link  string `xml:"link"`
}

type itunesImage struct {
	Href string `xml:"href,attr"`
}

type channel struct {
	AtomLink    atomLink      `xml:"atom:link"`
	Title       string        `xml:"title"`
	Description string        `xml:"description"`
	Link        string        `xml:"link"`
	Image       *channelImage `xml:"image,omitempty"`
	ItunesImage *itunesImage  `xml:"itunes:image,omitempty"`
	Items       []Item        `xml:"item"`
}

type rss struct {
	XMLName      xml.Name `xml:"rss"`
	Version      string   `xml:"version,attr"`
	XMLNSAtom    string   `xml:"xmlns:atom,attr"`
	XMLNSItunes  string   `xml:"xmlns:itunes,attr"`
	XMLNSContent string   `xml:"xmlns:content,attr"`
	Channel      channel  `xml:"channel"`
}

// WriteTo serializes the feed as an XML document.
func (f *Feed) WriteTo(w io.Writer) error {
	doc := rss{
		Version:      "2.0",
		XMLNSAtom:    "http://www.w3.org/2005/Atom",
		XMLNSItunes:  "http://www.itunes.com/dtds/podcast-1.0.dtd",
		XMLNSContent: "http://purl.org/rss/1.0/modules/content/",
		Channel: channel{
			AtomLink: atomLink{
				Href: f.Link,
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Title:       f.Title,
			Description: f.Description,
			Link:        f.Link,
			Items:       f.Items,
		},
	}

	if f.ImageURL != "" {
		doc.Channel.Image = &channelImage{
			URL:   f.ImageURL,
			Title: f.Title,
			Link:  f.Link,
		}
		doc.Channel.ItunesImage = &itunesImage{Href: f.ImageURL}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing XML header: %w", err)
	}

	data, err := xml.MarshalIndent(doc, "", Indent)
	if err != nil {
		return fmt.Errorf("serializing feed: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing feed: %w", err)
	}
	_, err = io.WriteString(w, "\n")
	return err
}
