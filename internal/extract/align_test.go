package extract

import (
	"testing"

	"github.com/mshibata/eliwatch/internal/model"
)

func TestAligner_CompletedTranslation(t *testing.T) {
	primary := []model.Article{
		{Number: "1", Title: "第一条", Body: "この法律は", TranslationStatus: model.TranslationPending},
	}
	secondary := []model.Article{
		{Number: "1", Title: "Article 1", Body: "The purpose of this Act"},
	}

	aligned := NewAligner().Align(primary, secondary)

	if len(aligned) != 1 {
		t.Fatalf("Expected 1 aligned article, got %d", len(aligned))
	}
	if aligned[0].TranslationStatus != model.TranslationCompleted {
		t.Errorf("Expected completed status, got %s", aligned[0].TranslationStatus)
	}
	if aligned[0].Translation != "The purpose of this Act" {
		t.Errorf("Expected secondary body copied, got %q", aligned[0].Translation)
	}
	if aligned[0].TranslationTitle != "Article 1" {
		t.Errorf("Expected secondary title copied, got %q", aligned[0].TranslationTitle)
	}
}

func TestAligner_PendingPlaceholder(t *testing.T) {
	primary := []model.Article{
		{Number: "7", Title: "第七条", Body: "本文"},
	}

	aligned := NewAligner().Align(primary, nil)

	if aligned[0].TranslationStatus != model.TranslationPending {
		t.Errorf("Expected pending status, got %s", aligned[0].TranslationStatus)
	}
	if aligned[0].Translation != "Article 7 - English translation" {
		t.Errorf("Expected placeholder translation, got %q", aligned[0].Translation)
	}
}

func TestAligner_PrimaryDefinesArticleSet(t *testing.T) {
	primary := []model.Article{
		{Number: "1", Body: "一"},
		{Number: "2", Body: "二"},
	}
	secondary := []model.Article{
		{Number: "2", Body: "two"},
		{Number: "99", Body: "only in translation"},
	}

	aligned := NewAligner().Align(primary, secondary)

	if len(aligned) != 2 {
		t.Fatalf("Expected exactly one record per primary number, got %d", len(aligned))
	}
	for _, art := range aligned {
		if art.Number == "99" {
			t.Error("Secondary-only article must not appear in the aligned output")
		}
	}
	if aligned[0].TranslationStatus != model.TranslationPending {
		t.Errorf("Expected article 1 pending, got %s", aligned[0].TranslationStatus)
	}
	if aligned[1].TranslationStatus != model.TranslationCompleted {
		t.Errorf("Expected article 2 completed, got %s", aligned[1].TranslationStatus)
	}
}

func TestAligner_DuplicateNumbersLastSeenWins(t *testing.T) {
	primary := []model.Article{{Number: "1", Body: "本文"}}
	secondary := []model.Article{
		{Number: "1", Body: "first occurrence"},
		{Number: "1", Body: "second occurrence"},
	}

	aligned := NewAligner().Align(primary, secondary)

	if aligned[0].Translation != "second occurrence" {
		t.Errorf("Expected last-seen secondary article to win, got %q", aligned[0].Translation)
	}
}

func TestAligner_PreservesPrimaryOrder(t *testing.T) {
	primary := []model.Article{
		{Number: "3"}, {Number: "1"}, {Number: "2"},
	}

	aligned := NewAligner().Align(primary, nil)

	want := []string{"3", "1", "2"}
	for i, art := range aligned {
		if art.Number != want[i] {
			t.Fatalf("Expected order %v, got %s at %d", want, art.Number, i)
		}
	}
}
