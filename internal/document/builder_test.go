package document

import (
	"strings"
	"testing"

	"github.com/mshibata/eliwatch/internal/model"
)

func TestBuild_PreservesOrderAndIsolatesInput(t *testing.T) {
	meta := model.DocumentMetadata{LawID: "325AC0000000131", LawName: "電波法"}
	articles := []model.Article{
		{Number: "2", Title: "第二条"},
		{Number: "1", Title: "第一条"},
	}

	doc := Build(meta, articles)

	if doc.Articles[0].Number != "2" || doc.Articles[1].Number != "1" {
		t.Errorf("Expected extraction order preserved, got %s, %s", doc.Articles[0].Number, doc.Articles[1].Number)
	}

	// Mutating the caller's slice must not reach the document.
	articles[0].Title = "mutated"
	if doc.Articles[0].Title != "第二条" {
		t.Error("Expected document isolated from caller mutation")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	meta := model.DocumentMetadata{LawID: "325AC0000000131"}
	articles := []model.Article{{Number: "1", Body: "本文"}}

	a := Build(meta, articles)
	b := Build(meta, articles)

	if a.Metadata != b.Metadata || len(a.Articles) != len(b.Articles) || a.Articles[0] != b.Articles[0] {
		t.Error("Expected identical inputs to build identical documents")
	}
}

func TestWriteXML(t *testing.T) {
	doc := Build(
		model.DocumentMetadata{LawID: "325AC0000000131", LawName: "電波法", EnactmentDate: "1950-05-02", LawNumber: "昭和25年法律第131号"},
		[]model.Article{
			{
				Number:            "1",
				Title:             "第一条",
				Body:              "この法律は",
				Translation:       "The purpose of this Act",
				TranslationTitle:  "Article 1",
				TranslationStatus: model.TranslationCompleted,
			},
		},
	)

	out, err := WriteXML(doc)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	text := string(out)
	if !strings.HasPrefix(text, "<?xml") {
		t.Error("Expected XML declaration")
	}
	for _, want := range []string{
		`<Article id="art_1" number="1">`,
		`<Title en="Article 1">第一条</Title>`,
		`<Translation lang="en" status="completed">The purpose of this Act</Translation>`,
		`<LawName>電波法</LawName>`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected output to contain %q\n%s", want, text)
		}
	}
}
