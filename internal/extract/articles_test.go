package extract

import (
	"strings"
	"testing"

	"github.com/mshibata/eliwatch/internal/model"
)

func mustParse(t *testing.T, doc string) *Node {
	t.Helper()
	root, err := ParseXML([]byte(doc))
	if err != nil {
		t.Fatalf("Expected no parse error, got %v", err)
	}
	return root
}

func TestArticleExtractor_BasicExtraction(t *testing.T) {
	doc := `
	<Law>
	  <LawBody>
	    <Article Num="1">
	      <ArticleTitle>第一条</ArticleTitle>
	      <Paragraph><ParagraphSentence><Sentence>この法律は、電波の公平かつ能率的な利用を確保する。</Sentence></ParagraphSentence></Paragraph>
	    </Article>
	    <Article Num="2">
	      <ArticleTitle>第二条</ArticleTitle>
	      <Paragraph><ParagraphSentence><Sentence>定義の一。</Sentence></ParagraphSentence></Paragraph>
	      <Paragraph><ParagraphSentence><Sentence>定義の二。</Sentence></ParagraphSentence></Paragraph>
	    </Article>
	  </LawBody>
	</Law>`

	articles := NewArticleExtractor(JapaneseConvention()).Extract(mustParse(t, doc))

	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(articles))
	}
	if articles[0].Number != "1" || articles[1].Number != "2" {
		t.Errorf("Expected document order 1, 2; got %s, %s", articles[0].Number, articles[1].Number)
	}
	if articles[0].Title != "第一条" {
		t.Errorf("Expected title from ArticleTitle, got %q", articles[0].Title)
	}
	if articles[1].Body != "定義の一。\n定義の二。" {
		t.Errorf("Expected newline-joined sentences, got %q", articles[1].Body)
	}
	if articles[0].TranslationStatus != model.TranslationPending {
		t.Errorf("Expected pending status before alignment, got %s", articles[0].TranslationStatus)
	}
}

func TestArticleExtractor_SkipsElementsWithoutNumber(t *testing.T) {
	doc := `
	<Law>
	  <Article Num="1"><Sentence>numbered</Sentence></Article>
	  <Article><Sentence>anonymous</Sentence></Article>
	  <Article Num=" "><Sentence>blank</Sentence></Article>
	</Law>`

	articles := NewArticleExtractor(JapaneseConvention()).Extract(mustParse(t, doc))

	if len(articles) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(articles))
	}
	if articles[0].Number != "1" {
		t.Errorf("Expected article 1, got %s", articles[0].Number)
	}
}

func TestArticleExtractor_SynthesizedTitle(t *testing.T) {
	doc := `<Law><Article Num="5"><Sentence>text</Sentence></Article></Law>`

	ja := NewArticleExtractor(JapaneseConvention()).Extract(mustParse(t, doc))
	if ja[0].Title != "第5条" {
		t.Errorf("Expected synthesized Japanese title, got %q", ja[0].Title)
	}

	en := NewArticleExtractor(EnglishConvention()).Extract(mustParse(t, doc))
	if en[0].Title != "Article 5" {
		t.Errorf("Expected synthesized English title, got %q", en[0].Title)
	}
}

func TestArticleExtractor_BodyFallback(t *testing.T) {
	doc := `
	<Law>
	  <Article Num="3">
	    <ArticleTitle>第三条</ArticleTitle>
	    <Caption>総務大臣は</Caption>
	    <Note>無線局を開設しようとする者</Note>
	  </Article>
	</Law>`

	articles := NewArticleExtractor(JapaneseConvention()).Extract(mustParse(t, doc))

	if len(articles) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(articles))
	}
	// No Sentence elements: all descendant text, space-joined.
	if !strings.Contains(articles[0].Body, "総務大臣は 無線局を開設しようとする者") {
		t.Errorf("Expected space-joined fallback body, got %q", articles[0].Body)
	}
}

func TestArticleExtractor_NoStructureFound(t *testing.T) {
	doc := `<Law><Preamble>no articles here</Preamble></Law>`

	articles := NewArticleExtractor(JapaneseConvention()).Extract(mustParse(t, doc))

	if len(articles) != 0 {
		t.Errorf("Expected empty sequence for structureless document, got %d articles", len(articles))
	}
}

func TestParseXML_MalformedDocument(t *testing.T) {
	_, err := ParseXML([]byte("<Law><Article Num='1'>"))
	if err == nil {
		t.Fatal("Expected error for truncated document")
	}
	if !strings.Contains(err.Error(), "malformed XML") {
		t.Errorf("Expected malformed XML error kind, got %v", err)
	}
}
