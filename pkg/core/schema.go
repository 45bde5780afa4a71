package core

// AttrSpec declares a single attribute: its initial value and write
// constraints. The zero value declares a plain read-write attribute with a
// nil initial value.
type AttrSpec struct {
	// Default is the initial value assigned at container construction.
	Default any

	// Generator, when non-nil, produces the initial value and takes
	// precedence over Default.
	Generator func() any

	// ReadOnly rejects every write after construction.
	ReadOnly bool

	// Setter, when non-nil, may transform or reject an incoming value.
	// Returning an error cancels the write.
	Setter func(value any) (any, error)
}

// Schema maps attribute names to their declarations.
type Schema map[string]AttrSpec

// BaseSchema returns the attributes every model carries: an "id" defaulting
// to the empty string. An empty id marks the model as new/unsaved.
func BaseSchema() Schema {
	return Schema{
		"id": {Default: ""},
	}
}

// Merge returns a new schema combining s with overrides. Entries in
// overrides win on name collision; neither input is mutated.
func (s Schema) Merge(overrides Schema) Schema {
	merged := make(Schema, len(s)+len(overrides))
	for name, spec := range s {
		merged[name] = spec
	}
	for name, spec := range overrides {
		merged[name] = spec
	}
	return merged
}
