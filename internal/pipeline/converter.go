// Package pipeline orchestrates the two eliwatch flows: converting the
// bilingual sources into a semantic graph, and checking both sources for
// changes since the last run.
package pipeline

import (
	"fmt"

	"github.com/mshibata/eliwatch/internal/document"
	"github.com/mshibata/eliwatch/internal/eli"
	"github.com/mshibata/eliwatch/internal/extract"
	"github.com/mshibata/eliwatch/internal/model"
)

// Converter runs extraction, alignment, assembly and projection over one
// pair of source documents.
type Converter struct {
	jaExtractor *extract.ArticleExtractor
	enExtractor *extract.ArticleExtractor
	aligner     *extract.Aligner
	metadata    *extract.MetadataExtractor
	projector   *eli.Projector
}

// NewConverter creates a converter wired from configuration.
func NewConverter(cfg *model.Config) *Converter {
	return &Converter{
		jaExtractor: extract.NewArticleExtractor(extract.JapaneseConvention()),
		enExtractor: extract.NewArticleExtractor(extract.EnglishConvention()),
		aligner:     extract.NewAligner(),
		metadata:    extract.NewMetadataExtractor(metadataDefaults(cfg.ELI)),
		projector:   eli.NewProjector(cfg.ELI),
	}
}

// ConvertResult carries the canonical document and its projection.
type ConvertResult struct {
	Document *model.StructuredDocument
	Graph    *eli.SemanticGraph
}

// Convert transforms the primary (Japanese) and secondary (English) XML
// sources. The secondary source may be nil; every article then stays
// pending. A whole-document parse failure on either present source is
// fatal to the conversion.
func (c *Converter) Convert(jaXML, enXML []byte) (*ConvertResult, error) {
	jaRoot, err := extract.ParseXML(jaXML)
	if err != nil {
		return nil, fmt.Errorf("parse Japanese source: %w", err)
	}

	var enRoot *extract.Node
	if enXML != nil {
		enRoot, err = extract.ParseXML(enXML)
		if err != nil {
			return nil, fmt.Errorf("parse English source: %w", err)
		}
	}

	primary := c.jaExtractor.Extract(jaRoot)

	var secondary []model.Article
	if enRoot != nil {
		secondary = c.enExtractor.Extract(enRoot)
	}

	aligned := c.aligner.Align(primary, secondary)
	meta := c.metadata.Extract(jaRoot, enRoot)
	doc := document.Build(meta, aligned)

	graph, err := c.projector.Project(doc)
	if err != nil {
		return nil, fmt.Errorf("project document: %w", err)
	}

	return &ConvertResult{Document: doc, Graph: graph}, nil
}

// metadataDefaults seeds DocumentMetadata from the configured resource
// identity; source documents override what they actually carry.
func metadataDefaults(cfg model.ELIConfig) model.DocumentMetadata {
	return model.DocumentMetadata{
		LawID:         cfg.DocID,
		LawName:       cfg.LawName,
		LawNameAlt:    cfg.LawNameAlt,
		LawNumber:     cfg.LawNumber,
		EnactmentDate: cfg.DefaultDate,
		Version:       cfg.Version,
		DateVersion:   cfg.DateVersion,
		Publisher:     cfg.Publisher,
		PassedBy:      cfg.PassedBy,
		DocumentType:  cfg.DocumentType,
	}
}
