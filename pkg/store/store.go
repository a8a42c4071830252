// Package store persists the reconciled student record. Two backends exist,
// a JSON file and Redis, both serving the same single-document contract
// under the fixed key "student".
package store

import (
	"context"
	"encoding/json"

	"github.com/A5TEX/HSLU-Module-Master/pkg/student"
)

// studentKey is the single document key the record lives under.
const studentKey = "student"

// Store saves and loads the student record. LoadStudent returns (nil, nil)
// when no record exists; writers overwrite unconditionally (last write
// wins).
type Store interface {
	SaveStudent(ctx context.Context, rec *student.Record) error
	LoadStudent(ctx context.Context) (*student.Record, error)
	Close() error
}

// encodeStudent serializes a record, stamping the current schema version.
func encodeStudent(rec *student.Record) ([]byte, error) {
	rec.Version = student.SchemaVersion
	return json.Marshal(rec)
}

// decodeStudent deserializes a record. Records written with a different
// schema version decode to nil so callers rebuild them from source.
func decodeStudent(data []byte) (*student.Record, error) {
	var rec student.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.Version != student.SchemaVersion {
		return nil, nil
	}
	return &rec, nil
}
