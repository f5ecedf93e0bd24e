package resource

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// ID uniquely identifies a pad resource, e.g. an open document.
type ID struct {
	id   uuid.UUID
	kind Kind
}

func NewID(kind Kind) ID {
	return ID{
		id:   uuid.New(),
		kind: kind,
	}
}

// Kind retrieves the kind of resource the ID identifies.
func (id ID) Kind() Kind {
	return id.kind
}

// String provides a short human readable representation of the ID, e.g.
// doc-1b4e28ba.
func (id ID) String() string {
	return fmt.Sprintf("%s-%s", id.kind, id.id.String()[:8])
}

func (id ID) LogValue() slog.Value {
	return slog.StringValue(id.String())
}
