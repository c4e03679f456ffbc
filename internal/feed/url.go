package feed

import (
	"strings"
	"time"
)

// RFC822 is the pubDate layout RSS validators expect
const RFC822 = "Mon, 02 Jan 2006 15:04:05 +0000"

const upperhex = "0123456789ABCDEF"

// Quote percent-encodes every byte outside the RFC 3986 unreserved set,
// keeping ':' and '/' so scheme and path separators survive.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quoteSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func quoteSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '~', ':', '/':
		return true
	}
	return false
}

// NormalizeHost gives the host a trailing slash and an http:// scheme
// when none was provided.
func NormalizeHost(host string) string {
	if host == "" {
		return host
	}
	if !strings.HasSuffix(host, "/") {
		host += "/"
	}
	lower := strings.ToLower(host)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		host = "http://" + host
	}
	return host
}

// ChannelLink builds the channel link from the normalized host and the
// optional output file name.
func ChannelLink(host, outFile string) string {
	if outFile == "" {
		return host
	}
	if strings.HasSuffix(host, "/") {
		return host + outFile
	}
	return host + "/" + outFile
}

// ResolveImageURL passes absolute http(s) image URLs through and quotes
// relative ones against the host.
func ResolveImageURL(host, image string) string {
	if image == "" {
		return ""
	}
	lower := strings.ToLower(image)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return image
	}
	return Quote(host + image)
}

// FormatPubDate renders a time as an RFC 822 pubDate in UTC.
func FormatPubDate(t time.Time) string {
	return t.UTC().Format(RFC822)
}

// PubDateLadder fabricates publication dates for name-ordered feeds: the
// first file is published now, each following one a day earlier with a
// little jitter so readers that sort by pubDate agree with name order.
func PubDateLadder(n int, now time.Time, jitter func() float64) []time.Time {
	if jitter == nil {
		jitter = func() float64 { return 0 }
	}
	dates := make([]time.Time, n)
	for i := 0; i < n; i++ {
		offset := time.Duration(i) * 24 * time.Hour
		offset += time.Duration(jitter() * 10 * float64(time.Second))
		dates[i] = now.Add(-offset)
	}
	return dates
}
