// Package diff detects changes between successive snapshots of one statute
// source: fingerprint comparison first, then a field-level metadata diff
// when the fingerprints disagree.
package diff

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mshibata/eliwatch/internal/extract"
	"github.com/mshibata/eliwatch/internal/fingerprint"
	"github.com/mshibata/eliwatch/internal/model"
)

// Retriever is the external retrieval+normalize collaborator: it returns a
// normalized XML byte stream for a source URL, or fails with a reason. The
// engine treats it as opaque and blocking.
type Retriever interface {
	Retrieve(ctx context.Context, url string) ([]byte, error)
}

// Engine runs the per-source check state machine. Sources are independent
// instances of the same machine; one source's failure never touches
// another's snapshot or record.
type Engine struct {
	store     Store
	retriever Retriever
	now       func() time.Time
}

// NewEngine creates an engine over the given snapshot store and retriever.
func NewEngine(store Store, retriever Retriever) *Engine {
	return &Engine{
		store:     store,
		retriever: retriever,
		now:       time.Now,
	}
}

// Check runs the full machine for one source: read prior snapshot, fetch a
// fresh normalized candidate, compare, and on success atomically replace
// the snapshot. On failure the existing snapshot is left untouched.
func (e *Engine) Check(ctx context.Context, src model.SourceConfig) model.SnapshotRecord {
	old, ok, err := e.store.Read(src.Filename)
	if err != nil {
		return model.SnapshotRecord{
			Source:    src.Name,
			Timestamp: e.now().UTC().Format(time.RFC3339),
			Changes:   []string{},
			Error:     fmt.Sprintf("read snapshot: %v", err),
		}
	}

	if !ok {
		old = nil
	}

	fresh, err := e.retriever.Retrieve(ctx, src.URL)
	if err != nil {
		rec := model.SnapshotRecord{
			Source:    src.Name,
			Timestamp: e.now().UTC().Format(time.RFC3339),
			Changes:   []string{},
			Error:     fmt.Sprintf("retrieval failed: %v", err),
		}
		if old != nil {
			rec.OldFingerprint = fingerprint.Sum(old)
		}
		return rec
	}

	rec := e.Compare(src.Name, old, fresh)

	if err := e.store.Write(src.Filename, fresh); err != nil {
		rec.Error = fmt.Sprintf("persist snapshot: %v", err)
	}
	return rec
}

// Compare computes the diff verdict between the prior snapshot (nil when
// absent) and a freshly normalized candidate. Pure with respect to storage:
// nothing is read or written.
func (e *Engine) Compare(sourceName string, old, fresh []byte) model.SnapshotRecord {
	rec := model.SnapshotRecord{
		Source:         sourceName,
		Timestamp:      e.now().UTC().Format(time.RFC3339),
		NewFingerprint: fingerprint.Sum(fresh),
		Changes:        []string{},
	}

	if old == nil {
		// First run: record the download but do not assert a change,
		// so schedulers do not alert on bootstrap.
		rec.Changes = append(rec.Changes, model.ChangeInitialDownload)
		return rec
	}

	rec.OldFingerprint = fingerprint.Sum(old)

	if rec.OldFingerprint == rec.NewFingerprint {
		rec.Changes = append(rec.Changes, model.ChangeNone)
		return rec
	}

	rec.HasChanges = true
	rec.Changes = append(rec.Changes, model.ChangeFingerprint)
	rec.Changes = append(rec.Changes, metadataChanges(old, fresh)...)
	return rec
}

// metadataChanges reports field-level deltas between the two documents'
// metadata, over the union of field names. A document that fails to parse
// contributes an empty field set; the fingerprint verdict stands either way.
func metadataChanges(old, fresh []byte) []string {
	oldFields := safeFields(old)
	newFields := safeFields(fresh)

	keys := make(map[string]struct{}, len(oldFields)+len(newFields))
	for k := range oldFields {
		keys[k] = struct{}{}
	}
	for k := range newFields {
		keys[k] = struct{}{}
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var changes []string
	for _, k := range sorted {
		oldVal, newVal := oldFields[k], newFields[k]
		if oldVal != newVal {
			changes = append(changes, fmt.Sprintf("metadata %q changed: %s -> %s", k, orNone(oldVal), orNone(newVal)))
		}
	}
	return changes
}

func safeFields(data []byte) map[string]string {
	root, err := extract.ParseXML(data)
	if err != nil {
		return map[string]string{}
	}
	return extract.Fields(root)
}

func orNone(v string) string {
	if v == "" {
		return "<none>"
	}
	return v
}
