package extract

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mshibata/eliwatch/internal/model"
)

// Fields pulls the scalar metadata fields out of an XML document by
// tag-suffix matching. The two feeds wrap these elements in different
// namespaces and parents, so suffix matching is the stable common ground.
// Missing fields are simply absent from the map.
func Fields(root *Node) map[string]string {
	fields := make(map[string]string)

	root.Walk(func(n *Node) {
		text := strings.TrimSpace(n.Text)
		if text == "" {
			return
		}
		switch {
		case strings.HasSuffix(n.Local(), "LawNum"):
			fields["law_number"] = text
		case strings.HasSuffix(n.Local(), "LawName"), strings.HasSuffix(n.Local(), "LawTitle"):
			fields["law_name"] = text
		case strings.HasSuffix(n.Local(), "EnactDate"), strings.HasSuffix(n.Local(), "EnactmentDate"):
			fields["enact_date"] = text
		case strings.HasSuffix(n.Local(), "EnforcementDate"):
			fields["enforcement_date"] = text
		}
	})

	return fields
}

// eraOffsets converts Japanese era years to the western calendar.
// Era year 1 is offset+1.
var eraOffsets = map[string]int{
	"Meiji":  1867,
	"Taisho": 1911,
	"Showa":  1925,
	"Heisei": 1988,
	"Reiwa":  2018,
}

// dateLayouts are the date forms the sources are known to use.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
}

// NormalizeDate converts a source date string to YYYY-MM-DD. The second
// return is false when no known layout matches.
func NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// MetadataExtractor assembles DocumentMetadata from the two source trees,
// filling gaps from configured defaults.
type MetadataExtractor struct {
	defaults model.DocumentMetadata
}

// NewMetadataExtractor creates an extractor with the given fallback values.
func NewMetadataExtractor(defaults model.DocumentMetadata) *MetadataExtractor {
	return &MetadataExtractor{defaults: defaults}
}

// Extract reads metadata from the primary (Japanese) and secondary (English)
// trees. Either tree may be nil. An unparseable date falls back to the
// default with a warning line; the failure is not surfaced further, matching
// the feeds' long-standing looseness about date formats.
func (m *MetadataExtractor) Extract(jaRoot, enRoot *Node) model.DocumentMetadata {
	meta := m.defaults

	if jaRoot != nil {
		if law := jaRoot.FindFirst("Law"); law != nil {
			if date, ok := promulgationDate(law); ok {
				meta.EnactmentDate = date
			}
		}
		if num := jaRoot.FindFirst("LawNum"); num != nil {
			if text := strings.TrimSpace(num.Text); text != "" {
				meta.LawNumber = text
			}
		}
		if title := jaRoot.FindFirst("LawTitle"); title != nil {
			if text := strings.TrimSpace(title.Text); text != "" {
				meta.LawName = text
			}
		}
	}

	if enRoot != nil {
		if title := enRoot.FindFirst("LawTitle"); title != nil {
			if text := strings.TrimSpace(title.Text); text != "" {
				meta.LawNameAlt = text
			}
		}
		if raw := enRoot.Attr("OriginalPromulgateDate"); raw != "" {
			if date, ok := NormalizeDate(raw); ok {
				meta.EnactmentDate = date
			} else {
				fmt.Fprintf(os.Stderr, "Warning: unparseable promulgation date %q, using default %s\n", raw, m.defaults.EnactmentDate)
			}
		}
	}

	meta.ValidFrom = meta.EnactmentDate
	if meta.ValidUntil == "" {
		meta.ValidUntil = model.OpenEnd
	}
	return meta
}

// promulgationDate reads the era-based date attributes off the Law element.
func promulgationDate(law *Node) (string, bool) {
	year := law.Attr("Year")
	if year == "" {
		return "", false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return "", false
	}

	offset, ok := eraOffsets[law.Attr("Era")]
	if ok {
		y += offset
	}

	month := law.Attr("PromulgateMonth")
	day := law.Attr("PromulgateDay")
	if month == "" || day == "" {
		return "", false
	}
	mo, err := strconv.Atoi(month)
	if err != nil {
		return "", false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return "", false
	}

	return fmt.Sprintf("%04d-%02d-%02d", y, mo, d), true
}
