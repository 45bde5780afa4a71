package yui3_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/xmzhu2/yui3"
)

// Example_basic demonstrates how to initialize a store, save a model, and
// read it back.
func Example_basic() {
	// Create a temporary directory for the example
	tmpDir, err := os.MkdirTemp("", "yui3-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	// Initialize the store targeting the temporary directory.
	// WithAutoInit(true) creates the directory when missing.
	store, err := yui3.New(tmpDir,
		yui3.WithAutoInit(true),
		yui3.WithSchema(yui3.Schema{"name": {Default: ""}}),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// 1. Create a model and observe its changes
	m := store.NewModel()
	unsubscribe := m.OnChange(func(e yui3.ChangeEvent) {
		fmt.Printf("changed: %d attribute(s)\n", len(e.Changed))
	})
	m.SetAttrs(map[string]any{"name": "hello-world"})
	unsubscribe()

	// 2. Save it and read it back
	if err := store.Save(ctx, m); err != nil {
		log.Fatal(err)
	}
	loaded, err := store.Load(ctx, m.ID())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found model: %s\n", loaded.Get("name"))
	// Output:
	// changed: 1 attribute(s)
	// Found model: hello-world
}

// ExampleNewTyped demonstrates the generic typed wrapper for type safety.
func ExampleNewTyped() {
	tmpDir, err := os.MkdirTemp("", "yui3-typed-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	store, err := yui3.New(tmpDir, yui3.WithAutoInit(true))
	if err != nil {
		log.Fatal(err)
	}

	// Define your domain model
	type User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	users := yui3.NewTyped[User](store)
	ctx := context.Background()

	// Save a typed record
	r, err := users.New(User{Name: "Alice", Email: "alice@example.com"})
	if err != nil {
		log.Fatal(err)
	}
	if err := users.Save(ctx, r); err != nil {
		log.Fatal(err)
	}

	// Retrieve it back
	loaded, err := users.Load(ctx, r.Model.ID())
	if err != nil {
		log.Fatal(err)
	}
	user, err := loaded.Data()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("User Name: %s\n", user.Name)
	// Output:
	// User Name: Alice
}
