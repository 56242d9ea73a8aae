package model

// Article represents a single statute article extracted from one source
type Article struct {
	Number           string            `json:"number"`                      // Article number, the join key across languages
	Title            string            `json:"title"`                       // Article title (synthesized when the source has none)
	Body             string            `json:"body"`                        // Newline-joined sentence text in document order
	Translation      string            `json:"translation,omitempty"`       // Secondary-language body (placeholder while pending)
	TranslationTitle string            `json:"translation_title,omitempty"` // Secondary-language title
	TranslationStatus TranslationStatus `json:"translation_status"`
}

// TranslationStatus tracks the alignment state of an article's translation
type TranslationStatus string

const (
	TranslationPending   TranslationStatus = "pending"   // No secondary-language article with this number
	TranslationCompleted TranslationStatus = "completed" // Secondary-language text linked
)
