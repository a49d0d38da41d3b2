package resource

import (
	"log/slog"

	"github.com/google/uuid"
)

// ID uniquely identifies a resource.
type ID struct {
	id uuid.UUID
	// name is human meaningful but not necessarily unique; it takes precedence
	// over the id when rendered.
	name string
}

func NewID(name string) ID {
	return ID{
		id:   uuid.New(),
		name: name,
	}
}

func (id ID) String() string {
	if id.name != "" {
		return id.name
	}
	return id.id.String()
}

func (id ID) LogValue() slog.Value {
	return slog.StringValue(id.String())
}
