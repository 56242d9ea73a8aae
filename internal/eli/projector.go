package eli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mshibata/eliwatch/internal/model"
)

// ErrNoDocument is returned when projection is requested before a document
// has been assembled. This is a pipeline programming error, distinct from
// data problems in the sources.
var ErrNoDocument = errors.New("graph requested before document assembled")

// Context is the fixed JSON-LD @context for every emitted graph.
type Context struct {
	Vocab    string `json:"@vocab"`
	ELI      string `json:"eli"`
	JapanLaw string `json:"japan_law"`
	RDFS     string `json:"rdfs"`
	XSD      string `json:"xsd"`
}

// LangString is a language-tagged literal.
type LangString struct {
	Language string `json:"@language"`
	Value    string `json:"@value"`
}

// TypedLiteral is a datatype-tagged literal (dates here).
type TypedLiteral struct {
	Value string `json:"@value"`
	Type  string `json:"@type"`
}

// LanguageVersion is one language's content for an article.
type LanguageVersion struct {
	Type     string `json:"@type"`
	Language string `json:"eli:language"`
	Content  string `json:"eli:content"`
}

// ArticleNode is the per-article subdivision resource.
type ArticleNode struct {
	ID               string            `json:"@id"`
	Type             string            `json:"@type"`
	DivisionType     string            `json:"eli:division_type"`
	Number           string            `json:"eli:number"`
	Title            LangString        `json:"eli:title"`
	Content          LangString        `json:"eli:content"`
	LanguageVersions []LanguageVersion `json:"eli:has_language_version"`
}

// SemanticGraph is the JSON-LD document for one statute.
type SemanticGraph struct {
	Context          Context       `json:"@context"`
	ID               string        `json:"@id"`
	Type             string        `json:"@type"`
	Title            LangString    `json:"eli:title"`
	TitleAlternative LangString    `json:"eli:title_alternative"`
	DateDocument     TypedLiteral  `json:"eli:date_document"`
	DateVersion      TypedLiteral  `json:"eli:date_version"`
	Version          string        `json:"eli:version"`
	Valid            string        `json:"eli:valid"`
	PassedBy         string        `json:"eli:passed_by"`
	Publisher        string        `json:"eli:publisher"`
	TypeDocument     string        `json:"eli:type_document"`
	Number           string        `json:"eli:number"`
	Language         []string      `json:"eli:language"`
	IsAbout          string        `json:"eli:is_about"`
	HasPart          []ArticleNode `json:"eli:has_part"`
}

// Projector converts structured documents into semantic graphs. The
// resource identity (URI base, bare statute number, subject) is fixed per
// deployment, not derived from source content.
type Projector struct {
	resourceBase string
	lawID        string
	number       string
	isAbout      string
}

// NewProjector creates a projector for the configured resource identity.
func NewProjector(cfg model.ELIConfig) *Projector {
	return &Projector{
		resourceBase: cfg.ResourceBase,
		lawID:        cfg.LawID,
		number:       cfg.Number,
		isAbout:      cfg.IsAbout,
	}
}

// ResourceURI returns the stable top-level resource identifier.
func (p *Projector) ResourceURI() string {
	return p.resourceBase + "/" + p.lawID
}

// Project maps a structured document onto the ELI vocabulary. The document
// is read, never mutated.
func (p *Projector) Project(doc *model.StructuredDocument) (*SemanticGraph, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}

	meta := doc.Metadata
	uri := p.ResourceURI()

	graph := &SemanticGraph{
		Context: Context{
			Vocab:    Namespace,
			ELI:      Namespace,
			JapanLaw: JapanLawNamespace,
			RDFS:     RDFSNamespace,
			XSD:      XSDNamespace,
		},
		ID:               uri,
		Type:             ClassLegalResource,
		Title:            LangString{Language: "ja", Value: meta.LawName},
		TitleAlternative: LangString{Language: "en", Value: meta.LawNameAlt},
		DateDocument:     TypedLiteral{Value: meta.EnactmentDate, Type: XSDDate},
		DateVersion:      TypedLiteral{Value: meta.DateVersion, Type: XSDDate},
		Version:          meta.Version,
		Valid:            meta.Valid(),
		PassedBy:         meta.PassedBy,
		Publisher:        meta.Publisher,
		TypeDocument:     meta.DocumentType,
		Number:           p.number,
		Language:         []string{"ja", "en"},
		IsAbout:          p.isAbout,
		HasPart:          make([]ArticleNode, 0, len(doc.Articles)),
	}

	for _, art := range doc.Articles {
		translation := art.Translation
		if art.TranslationStatus != model.TranslationCompleted {
			// A pending translation projects as empty content, never
			// as the placeholder text.
			translation = ""
		}

		graph.HasPart = append(graph.HasPart, ArticleNode{
			ID:           fmt.Sprintf("%s#art_%s", uri, art.Number),
			Type:         ClassSubdivision,
			DivisionType: DivisionArticle,
			Number:       art.Number,
			Title:        LangString{Language: "ja", Value: art.Title},
			Content:      LangString{Language: "ja", Value: art.Body},
			LanguageVersions: []LanguageVersion{
				{Type: ClassLanguageVersion, Language: "ja", Content: art.Body},
				{Type: ClassLanguageVersion, Language: "en", Content: translation},
			},
		})
	}

	return graph, nil
}

// Marshal serializes the graph as indented JSON-LD. Japanese text is
// written as-is rather than escaped.
func Marshal(graph *SemanticGraph) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(graph); err != nil {
		return nil, fmt.Errorf("marshal JSON-LD: %w", err)
	}
	return buf.Bytes(), nil
}
