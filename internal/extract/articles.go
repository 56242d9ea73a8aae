package extract

import (
	"fmt"
	"strings"

	"github.com/mshibata/eliwatch/internal/model"
)

// TagConvention names the elements one source uses to mark up articles.
// The Japanese and English feeds share the overall shape but not the details.
type TagConvention struct {
	ArticleTag  string // Element marking an article ("Article")
	NumberAttr  string // Attribute holding the article number ("Num")
	TitleTag    string // Title child element ("ArticleTitle")
	SentenceTag string // Sentence-level text element ("Sentence")
	TitleFormat string // Template for synthesized titles when TitleTag is absent
	Language    string // BCP 47 tag for the source language
}

// JapaneseConvention matches the e-Gov law XML schema.
func JapaneseConvention() TagConvention {
	return TagConvention{
		ArticleTag:  "Article",
		NumberAttr:  "Num",
		TitleTag:    "ArticleTitle",
		SentenceTag: "Sentence",
		TitleFormat: "第%s条",
		Language:    "ja",
	}
}

// EnglishConvention matches the Japanese Law Translation XML schema.
func EnglishConvention() TagConvention {
	return TagConvention{
		ArticleTag:  "Article",
		NumberAttr:  "Num",
		TitleTag:    "ArticleTitle",
		SentenceTag: "Sentence",
		TitleFormat: "Article %s",
		Language:    "en",
	}
}

// ConventionFor returns the tag convention for a configured source language.
func ConventionFor(language string) TagConvention {
	if language == "ja" {
		return JapaneseConvention()
	}
	return EnglishConvention()
}

// ArticleExtractor walks one XML document and produces the ordered article
// sequence for it.
type ArticleExtractor struct {
	conv TagConvention
}

// NewArticleExtractor creates an extractor for the given tag convention.
func NewArticleExtractor(conv TagConvention) *ArticleExtractor {
	return &ArticleExtractor{conv: conv}
}

// Extract returns one Article per marked element carrying a usable number,
// in document order. Elements without a number are skipped. Zero matches is
// a valid result (no structure found), not an error.
func (e *ArticleExtractor) Extract(root *Node) []model.Article {
	var articles []model.Article

	for _, elem := range root.FindAll(e.conv.ArticleTag) {
		num := strings.TrimSpace(elem.Attr(e.conv.NumberAttr))
		if num == "" {
			continue
		}

		articles = append(articles, model.Article{
			Number:            num,
			Title:             e.title(elem, num),
			Body:              e.body(elem),
			TranslationStatus: model.TranslationPending,
		})
	}

	return articles
}

// title takes the first title-like child, falling back to a synthesized
// title when the source carries none.
func (e *ArticleExtractor) title(elem *Node, num string) string {
	if t := elem.FindFirst(e.conv.TitleTag); t != nil {
		if text := strings.TrimSpace(t.Text); text != "" {
			return text
		}
	}
	return fmt.Sprintf(e.conv.TitleFormat, num)
}

// body joins sentence-level descendant text with newlines, falling back to
// all descendant text space-joined when the document has no sentence markup.
func (e *ArticleExtractor) body(elem *Node) string {
	var parts []string
	for _, s := range elem.FindAll(e.conv.SentenceTag) {
		if text := strings.TrimSpace(s.Text); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "\n")
	}
	return elem.AllText()
}
