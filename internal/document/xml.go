package document

import (
	"encoding/xml"
	"fmt"

	"github.com/mshibata/eliwatch/internal/model"
)

// Structure-preserving XML output for the assembled document. This is the
// intermediate artifact the semantic projection reads conceptually; writing
// it out keeps runs auditable.

type xmlRoot struct {
	XMLName  xml.Name    `xml:"RadioAct"`
	Xmlns    string      `xml:"xmlns,attr"`
	Version  string      `xml:"version,attr"`
	Lang     string      `xml:"lang,attr"`
	Metadata xmlMetadata `xml:"Metadata"`
	Articles xmlArticles `xml:"Articles"`
}

type xmlMetadata struct {
	LawID         string `xml:"LawID"`
	LawName       string `xml:"LawName"`
	EnactmentDate string `xml:"EnactmentDate"`
	LawNumber     string `xml:"LawNumber"`
}

type xmlArticles struct {
	Articles []xmlArticle `xml:"Article"`
}

type xmlArticle struct {
	ID          string         `xml:"id,attr"`
	Number      string         `xml:"number,attr"`
	NumberElem  string         `xml:"Number"`
	Title       xmlTitle       `xml:"Title"`
	Content     string         `xml:"Content"`
	Translation xmlTranslation `xml:"Translation"`
}

type xmlTitle struct {
	En    string `xml:"en,attr,omitempty"`
	Value string `xml:",chardata"`
}

type xmlTranslation struct {
	Lang   string `xml:"lang,attr"`
	Status string `xml:"status,attr"`
	Value  string `xml:",chardata"`
}

// WriteXML serializes the document as indented structure-preserving XML
// with an XML declaration.
func WriteXML(doc *model.StructuredDocument) ([]byte, error) {
	root := xmlRoot{
		Xmlns:   "http://data.japan.go.jp/law/radio-act",
		Version: "1.0",
		Lang:    "ja",
		Metadata: xmlMetadata{
			LawID:         doc.Metadata.LawID,
			LawName:       doc.Metadata.LawName,
			EnactmentDate: doc.Metadata.EnactmentDate,
			LawNumber:     doc.Metadata.LawNumber,
		},
	}

	for _, art := range doc.Articles {
		root.Articles.Articles = append(root.Articles.Articles, xmlArticle{
			ID:         "art_" + art.Number,
			Number:     art.Number,
			NumberElem: art.Number,
			Title:      xmlTitle{Value: art.Title, En: art.TranslationTitle},
			Content:    art.Body,
			Translation: xmlTranslation{
				Lang:   "en",
				Status: string(art.TranslationStatus),
				Value:  art.Translation,
			},
		})
	}

	body, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal structured XML: %w", err)
	}

	out := append([]byte(xml.Header), body...)
	return append(out, '\n'), nil
}
