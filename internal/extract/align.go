package extract

import (
	"fmt"

	"github.com/mshibata/eliwatch/internal/model"
)

// Aligner joins two article sequences by article number. The primary
// language defines the document's article set: secondary-only articles are
// not reachable from the join and are dropped.
type Aligner struct{}

// NewAligner creates a new bilingual aligner.
func NewAligner() *Aligner {
	return &Aligner{}
}

// Align annotates the primary sequence with translation text and status
// from the secondary sequence. Duplicate numbers on the secondary side
// resolve last-seen-wins.
func (a *Aligner) Align(primary, secondary []model.Article) []model.Article {
	lookup := make(map[string]model.Article, len(secondary))
	for _, art := range secondary {
		lookup[art.Number] = art
	}

	aligned := make([]model.Article, len(primary))
	for i, art := range primary {
		if sec, ok := lookup[art.Number]; ok {
			art.Translation = sec.Body
			art.TranslationTitle = sec.Title
			art.TranslationStatus = model.TranslationCompleted
		} else {
			art.Translation = fmt.Sprintf("Article %s - English translation", art.Number)
			art.TranslationStatus = model.TranslationPending
		}
		aligned[i] = art
	}

	return aligned
}
