package diff

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mshibata/eliwatch/internal/model"
)

// fakeRetriever returns canned bytes or a canned error.
type fakeRetriever struct {
	data []byte
	err  error
}

func (f *fakeRetriever) Retrieve(_ context.Context, _ string) ([]byte, error) {
	return f.data, f.err
}

func testSource() model.SourceConfig {
	return model.SourceConfig{
		Name:     "Japanese Law",
		URL:      "https://example.invalid/lawdata",
		Filename: "RadioAct_ja.xml",
		Language: "ja",
	}
}

func newTestEngine(t *testing.T, retriever Retriever) (*Engine, *FileStore) {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return NewEngine(store, retriever), store
}

func TestEngine_FirstRunIsNotAChange(t *testing.T) {
	engine, store := newTestEngine(t, &fakeRetriever{data: []byte("<Law/>")})

	rec := engine.Check(context.Background(), testSource())

	if rec.Failed() {
		t.Fatalf("Expected success, got error %q", rec.Error)
	}
	if rec.HasChanges {
		t.Error("Expected has_changes=false on first run")
	}
	if len(rec.Changes) != 1 || rec.Changes[0] != model.ChangeInitialDownload {
		t.Errorf("Expected only the initial download marker, got %v", rec.Changes)
	}
	if rec.OldFingerprint != "" {
		t.Errorf("Expected empty old fingerprint sentinel, got %q", rec.OldFingerprint)
	}

	// The candidate became the snapshot.
	data, ok, err := store.Read("RadioAct_ja.xml")
	if err != nil || !ok {
		t.Fatalf("Expected snapshot written, got ok=%v err=%v", ok, err)
	}
	if string(data) != "<Law/>" {
		t.Errorf("Expected snapshot content persisted, got %q", data)
	}
}

func TestEngine_UnchangedContent(t *testing.T) {
	engine, _ := newTestEngine(t, &fakeRetriever{data: []byte("A")})

	first := engine.Check(context.Background(), testSource())
	if first.Failed() {
		t.Fatalf("Expected success, got %q", first.Error)
	}

	second := engine.Check(context.Background(), testSource())

	if second.HasChanges {
		t.Error("Expected no changes on identical content")
	}
	if len(second.Changes) != 1 || second.Changes[0] != model.ChangeNone {
		t.Errorf("Expected only the no-changes marker, got %v", second.Changes)
	}
	if second.OldFingerprint != second.NewFingerprint {
		t.Error("Expected matching fingerprints")
	}
}

func TestEngine_ChangedContent(t *testing.T) {
	retriever := &fakeRetriever{data: []byte("A")}
	engine, store := newTestEngine(t, retriever)

	engine.Check(context.Background(), testSource())

	retriever.data = []byte("B")
	rec := engine.Check(context.Background(), testSource())

	if !rec.HasChanges {
		t.Error("Expected has_changes=true")
	}
	if len(rec.Changes) == 0 || rec.Changes[0] != model.ChangeFingerprint {
		t.Errorf("Expected fingerprint-changed marker first, got %v", rec.Changes)
	}

	data, _, _ := store.Read("RadioAct_ja.xml")
	if string(data) != "B" {
		t.Errorf("Expected snapshot replaced with new content, got %q", data)
	}
}

func TestEngine_RetrievalFailureLeavesSnapshot(t *testing.T) {
	retriever := &fakeRetriever{data: []byte("<Law/>")}
	engine, store := newTestEngine(t, retriever)

	engine.Check(context.Background(), testSource())

	retriever.data = nil
	retriever.err = errors.New("connection refused")
	rec := engine.Check(context.Background(), testSource())

	if !rec.Failed() {
		t.Fatal("Expected failed record")
	}
	if !strings.Contains(rec.Error, "connection refused") {
		t.Errorf("Expected retrieval reason recorded, got %q", rec.Error)
	}
	if rec.NewFingerprint != "" {
		t.Errorf("Expected no new fingerprint on failure, got %q", rec.NewFingerprint)
	}

	data, ok, err := store.Read("RadioAct_ja.xml")
	if err != nil || !ok {
		t.Fatalf("Expected prior snapshot intact, got ok=%v err=%v", ok, err)
	}
	if string(data) != "<Law/>" {
		t.Errorf("Expected prior snapshot untouched, got %q", data)
	}
}

func TestEngine_MetadataFieldDiff(t *testing.T) {
	oldDoc := []byte(`<Law><LawNum>昭和25年法律第131号</LawNum><LawName>電波法</LawName></Law>`)
	newDoc := []byte(`<Law><LawNum>昭和25年法律第131号</LawNum><LawName>電波法</LawName><EnforcementDate>2024-08-01</EnforcementDate></Law>`)

	engine, _ := newTestEngine(t, nil)
	rec := engine.Compare("Japanese Law", oldDoc, newDoc)

	if !rec.HasChanges {
		t.Fatal("Expected change detected")
	}

	// Union of field names: a field present only in the new document is
	// still reported, with <none> on the old side.
	found := false
	for _, c := range rec.Changes {
		if strings.Contains(c, "enforcement_date") && strings.Contains(c, "<none> -> 2024-08-01") {
			found = true
		}
		if strings.Contains(c, "law_name") {
			t.Errorf("Unchanged field must not be reported: %s", c)
		}
	}
	if !found {
		t.Errorf("Expected one-sided enforcement_date delta, got %v", rec.Changes)
	}
}

func TestEngine_MetadataDiffDegradesOnMalformedSide(t *testing.T) {
	engine, _ := newTestEngine(t, nil)

	rec := engine.Compare("English Law", []byte("not xml <<<"), []byte(`<Law><LawNum>131</LawNum></Law>`))

	if !rec.HasChanges {
		t.Fatal("Expected fingerprint change")
	}
	found := false
	for _, c := range rec.Changes {
		if strings.Contains(c, "law_number") && strings.Contains(c, "<none> -> 131") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected malformed side treated as empty field set, got %v", rec.Changes)
	}
}

func TestFileStore_AbsentIsNotAnError(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, ok, err := store.Read("missing.xml")
	if err != nil {
		t.Fatalf("Expected absent snapshot to be ok=false, not error %v", err)
	}
	if ok || data != nil {
		t.Errorf("Expected (nil, false), got (%v, %v)", data, ok)
	}
}

func TestFileStore_AtomicReplace(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := store.Write("s.xml", []byte("one")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := store.Write("s.xml", []byte("two")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, ok, err := store.Read("s.xml")
	if err != nil || !ok {
		t.Fatalf("Expected snapshot present, got ok=%v err=%v", ok, err)
	}
	if string(data) != "two" {
		t.Errorf("Expected latest content, got %q", data)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".eliwatch-tmp-") {
			t.Errorf("Expected temp file cleaned up, found %s", filepath.Join(dir, e.Name()))
		}
	}
}
