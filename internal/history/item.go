// Package history keeps the newest-first list of clipboard items.
package history

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Type classifies clipboard content.
type Type int

const (
	TypeText Type = iota
	TypeImage
	TypeHTML
	TypeURL
	TypeFile
	TypeCode
)

var typeNames = map[Type]string{
	TypeText:  "Text",
	TypeImage: "Image",
	TypeHTML:  "HTML",
	TypeURL:   "URL",
	TypeFile:  "File",
	TypeCode:  "Code",
}

// String returns the display name of the type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// ParseType is the inverse of Type.String. Unknown names map to TypeText.
func ParseType(name string) Type {
	for t, n := range typeNames {
		if strings.EqualFold(n, name) {
			return t
		}
	}
	return TypeText
}

// DefaultPreviewLength is the rune budget of Item.Preview.
const DefaultPreviewLength = 100

var (
	urlPattern  = regexp.MustCompile(`^https?://\S+$`)
	codePattern = regexp.MustCompile(`\b(function|class|import|export|const|let|var|if|else|for|while|return)\b|[{}();]|\s{4,}|\t`)
	filePattern = regexp.MustCompile(`^[/\\]?([^/\\]+[/\\])*[^/\\]+\.[a-zA-Z0-9]+$`)
)

// Item is one captured clipboard entry.
type Item struct {
	ID        string
	Text      string
	Type      Type
	Preview   string
	Timestamp time.Time
	// Image fields are set only for TypeImage.
	ImageWidth  int
	ImageHeight int
	Data        []byte
}

// NewTextItem classifies text and builds its preview.
func NewTextItem(text string, at time.Time) Item {
	item := Item{
		ID:        uuid.NewString(),
		Text:      text,
		Type:      DetectType(text),
		Timestamp: at,
	}
	item.Preview = item.PreviewN(DefaultPreviewLength)
	return item
}

// NewImageItem wraps encoded image bytes.
func NewImageItem(data []byte, width, height int, at time.Time) Item {
	label := imageLabel(width, height)
	return Item{
		ID:          uuid.NewString(),
		Text:        label,
		Type:        TypeImage,
		Preview:     label,
		Timestamp:   at,
		ImageWidth:  width,
		ImageHeight: height,
		Data:        data,
	}
}

func imageLabel(width, height int) string {
	return fmt.Sprintf("Image (%dx%d)", width, height)
}

// DetectType classifies plain text: URL, then code, then file path.
// TypeHTML is never detected; it comes only from HTML clipboard content.
func DetectType(text string) Type {
	trimmed := strings.TrimSpace(text)
	switch {
	case urlPattern.MatchString(trimmed):
		return TypeURL
	case codePattern.MatchString(text) || strings.Contains(text, "```"):
		return TypeCode
	case filePattern.MatchString(trimmed):
		return TypeFile
	default:
		return TypeText
	}
}

// PreviewN returns the whitespace-collapsed text cut to maxRunes.
func (i Item) PreviewN(maxRunes int) string {
	if i.Type == TypeImage {
		return imageLabel(i.ImageWidth, i.ImageHeight)
	}
	return truncate(strings.Join(strings.Fields(i.Text), " "), maxRunes)
}

func truncate(s string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes]) + "..."
}

// Size returns the number of bytes the item holds.
func (i Item) Size() int {
	if i.Type == TypeImage {
		return len(i.Data)
	}
	return len(i.Text)
}

// Equal compares content, not identity.
func (i Item) Equal(other Item) bool {
	return i.Type == other.Type && i.Text == other.Text
}

// RelativeTime renders the age of the item relative to now.
func (i Item) RelativeTime(now time.Time) string {
	age := now.Sub(i.Timestamp)
	switch {
	case age < time.Minute:
		return "Just now"
	case age < time.Hour:
		return plural(int(age/time.Minute), "minute") + " ago"
	case age < 24*time.Hour:
		return plural(int(age/time.Hour), "hour") + " ago"
	default:
		return i.Timestamp.Format("Jan 02, 15:04")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
