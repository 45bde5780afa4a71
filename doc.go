// Package yui3 is the composition root for the model library.
//
// It connects the core record semantics (Domain Layer) with the
// infrastructure adapters (Persistence Layer) using the Hexagonal
// Architecture pattern.
//
// Philosophy:
//
// A Model is a mutable, observable data record: a named attribute bag
// with change coalescing, a validation gate, serialization helpers, and
// a pluggable persistence layer. The default store persists one file per
// model under a directory, but the core is agnostic; any backend can be
// plugged in through core.Syncer.
//
// Features:
//
//   - **Observable attributes**: one aggregate change event per write
//     batch, fired synchronously.
//   - **Validation gate**: a single hook vets every write before any
//     attribute changes.
//   - **Coalesced change tracking**: Changed/LastChange describe the most
//     recent batch; Undo reverts it.
//   - **Pluggable persistence**: create/update/delete/get routed through
//     a Syncer; detached models use a no-op stub.
//   - **Typed Access**: Generic wrapper (`typed.Record[T]`) for type-safe
//     attribute access.
//   - **Default Adapter (FS)**: one JSON or YAML file per model, with
//     glob listing and change watching.
//
// Usage:
//
//	// Initialize a store with functional options
//	store, err := yui3.New("./data",
//		yui3.WithAutoInit(true),
//		yui3.WithSchema(yui3.Schema{"name": {Default: ""}}),
//	)
//
//	// Create and save a model
//	m := store.NewModel()
//	m.Set("name", "alpha")
//	err = store.Save(ctx, m)
package yui3
