package engine

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
)

// ExportData is the complete, self-contained snapshot spec.md §4.4 calls
// the portable interchange format: every issue, every dependency, every
// note, as three flat arrays rather than issues nesting their own notes
// and blockers.
type ExportData struct {
	Issues       []types.Issue      `json:"issues"`
	Dependencies []types.Dependency `json:"dependencies"`
	Notes        []types.Note       `json:"notes"`
}

type recordType string

const (
	recordIssue      recordType = "issue"
	recordDependency recordType = "dependency"
	recordNote       recordType = "note"
)

type issueRecord struct {
	Type recordType `json:"type"`
	types.Issue
}

type dependencyRecord struct {
	Type recordType `json:"type"`
	types.Dependency
}

type noteRecord struct {
	Type recordType `json:"type"`
	types.Note
}

// Export returns every issue, dependency, and note ordered by id.
func (e *Engine) Export(ctx context.Context) (ExportData, error) {
	var data ExportData
	err := e.withTx(ctx, func(tx *store.Tx) error {
		issues, err := store.AllIssues(ctx, tx)
		if err != nil {
			return err
		}
		deps, err := store.AllDependencies(ctx, tx)
		if err != nil {
			return err
		}
		notes, err := store.AllNotes(ctx, tx)
		if err != nil {
			return err
		}
		data = ExportData{Issues: issues, Dependencies: deps, Notes: notes}
		return nil
	})
	if err != nil {
		return ExportData{}, err
	}
	return data, nil
}

// MarshalJSONL renders data in the default wire encoding: one JSON object
// per line, each carrying a type discriminator of "issue", "dependency",
// or "note", issues first then dependencies then notes. This is the
// external interoperation surface spec.md §6 requires stay bit-stable
// across patch releases.
func (d ExportData) MarshalJSONL() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, issue := range d.Issues {
		if err := enc.Encode(issueRecord{Type: recordIssue, Issue: issue}); err != nil {
			return nil, err
		}
	}
	for _, dep := range d.Dependencies {
		if err := enc.Encode(dependencyRecord{Type: recordDependency, Dependency: dep}); err != nil {
			return nil, err
		}
	}
	for _, note := range d.Notes {
		if err := enc.Encode(noteRecord{Type: recordNote, Note: note}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// MarshalSingleDocument renders data as the alternative single-document form: the
// three arrays grouped under one object. Plain struct tags already
// produce this shape, so this method just documents the contract.
func (d ExportData) MarshalSingleDocument() ([]byte, error) {
	return json.Marshal(d)
}

// ParseExportData accepts either wire encoding spec.md §4.4 defines: a
// single JSON object grouping the three arrays, or one type-discriminated
// JSON object per line. Both start with '{', so the first JSON value is
// decoded and checked for a "type" key: without one the input is the
// grouped document, with one it is line-per-record.
func ParseExportData(raw []byte) (ExportData, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ExportData{}, nil
	}
	var first map[string]json.RawMessage
	if err := json.NewDecoder(bytes.NewReader(trimmed)).Decode(&first); err == nil {
		if _, hasType := first["type"]; !hasType {
			var data ExportData
			if err := json.Unmarshal(trimmed, &data); err != nil {
				return ExportData{}, nerr.ParseErrorf(err, "failed to parse grouped export document")
			}
			return data, nil
		}
	}

	var data ExportData
	scanner := bufio.NewScanner(bytes.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var head struct {
			Type recordType `json:"type"`
		}
		if err := json.Unmarshal(line, &head); err != nil {
			return ExportData{}, nerr.ParseErrorf(err, "failed to parse export line")
		}
		switch head.Type {
		case recordIssue:
			var rec issueRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				return ExportData{}, nerr.ParseErrorf(err, "failed to parse issue record")
			}
			data.Issues = append(data.Issues, rec.Issue)
		case recordDependency:
			var rec dependencyRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				return ExportData{}, nerr.ParseErrorf(err, "failed to parse dependency record")
			}
			data.Dependencies = append(data.Dependencies, rec.Dependency)
		case recordNote:
			var rec noteRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				return ExportData{}, nerr.ParseErrorf(err, "failed to parse note record")
			}
			data.Notes = append(data.Notes, rec.Note)
		default:
			return ExportData{}, nerr.InvalidValuef("type", string(head.Type), "issue, dependency, or note")
		}
	}
	if err := scanner.Err(); err != nil {
		return ExportData{}, nerr.IoErrorf(err, "failed to read export input")
	}
	return data, nil
}
