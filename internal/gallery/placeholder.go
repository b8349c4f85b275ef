package gallery

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"html"
)

var placeholderPalette = []string{"4a6cf7", "6a75f8", "1d2144", "f54a6c", "4af54a"}

// Placeholder renders the SVG card shown in place of a missing image.
// The same label always gets the same color.
func Placeholder(label string) string {
	h := fnv.New32a()
	h.Write([]byte(label))
	color := placeholderPalette[h.Sum32()%uint32(len(placeholderPalette))]
	text := html.EscapeString(label)

	return fmt.Sprintf(`<svg width="400" height="300" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <linearGradient id="grad" x1="0%%" y1="0%%" x2="100%%" y2="100%%">
      <stop offset="0%%" style="stop-color:#%[1]s;stop-opacity:0.7" />
      <stop offset="100%%" style="stop-color:#%[1]s;stop-opacity:0.9" />
    </linearGradient>
  </defs>
  <rect width="100%%" height="100%%" fill="url(#grad)"/>
  <rect x="10" y="10" width="380" height="280" fill="none" stroke="white" stroke-width="2" stroke-dasharray="5,5"/>
  <text x="50%%" y="45%%" font-family="Arial, sans-serif" font-size="14" fill="white" text-anchor="middle" font-weight="bold">%[2]s</text>
  <text x="50%%" y="55%%" font-family="Arial, sans-serif" font-size="12" fill="white" text-anchor="middle" opacity="0.8">Click to view full size</text>
</svg>`, color, text)
}

// PlaceholderURI returns Placeholder(label) as a data: URI usable as an
// ImageRef.
func PlaceholderURI(label string) ImageRef {
	return ImageRef("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(Placeholder(label))))
}
