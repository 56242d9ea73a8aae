// Package document assembles the canonical intermediate representation of
// the statute: metadata plus the ordered bilingual article sequence.
package document

import "github.com/mshibata/eliwatch/internal/model"

// Build assembles a StructuredDocument from extracted metadata and aligned
// articles. Pure: identical inputs produce identical documents, article
// order is preserved, and the article slice is copied so later caller
// mutation cannot reach into the result.
func Build(meta model.DocumentMetadata, articles []model.Article) *model.StructuredDocument {
	owned := make([]model.Article, len(articles))
	copy(owned, articles)

	return &model.StructuredDocument{
		Metadata: meta,
		Articles: owned,
	}
}
