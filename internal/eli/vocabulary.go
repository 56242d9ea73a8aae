// Package eli projects a structured statute document into a JSON-LD graph
// using the European Legislation Identifier ontology.
package eli

// Namespace is the base IRI for ELI ontology terms.
const Namespace = "http://data.europa.eu/eli/ontology#"

// JapanLawNamespace is the base IRI for Japan-specific law terms.
const JapanLawNamespace = "http://data.japan.go.jp/law/ontology#"

// Standard ontology IRIs carried in the JSON-LD context.
const (
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// Class terms for graph nodes.
const (
	// ClassLegalResource is the top-level statute node type.
	ClassLegalResource = "eli:LegalResource"

	// ClassSubdivision is the per-article node type.
	ClassSubdivision = "eli:LegalResourceSubdivision"

	// ClassLanguageVersion is the per-language content node type.
	ClassLanguageVersion = "eli:LanguageVersion"
)

// DivisionArticle is the eli:division_type value for article subdivisions.
const DivisionArticle = "article"

// XSDDate is the datatype tag for date literals.
const XSDDate = "xsd:date"
