package ports

import "refmap/internal/types"

// SessionStorePort loads and saves session documents.
type SessionStorePort interface {
	Load(path string) (types.SessionDocument, error)
	Save(path string, doc types.SessionDocument) error
}
