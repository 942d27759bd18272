package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"refmap/internal/types"
)

// SessionFileAdapter persists session documents as JSON. Saves are
// atomic: the document is written to a temp file in the target
// directory and renamed over the destination.
type SessionFileAdapter struct{}

func NewSessionFileAdapter() SessionFileAdapter {
	return SessionFileAdapter{}
}

func (a SessionFileAdapter) Load(path string) (types.SessionDocument, error) {
	var doc types.SessionDocument
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("session file not found").
			WithCause(err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse session json").
			WithCause(err)
	}
	return doc, nil
}

func (a SessionFileAdapter) Save(path string, doc types.SessionDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode session json").
			WithCause(err)
	}
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp", filepath.Base(path)))
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write session temp file").
			WithCause(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to replace session file").
			WithCause(err)
	}
	return nil
}
