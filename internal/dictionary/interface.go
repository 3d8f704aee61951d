package dictionary

import "context"

// Lookup is the port the importer consumes. Implementations must never
// fail upward: a lookup that goes wrong resolves to the zero Entry.
type Lookup interface {
	Lookup(ctx context.Context, word string) Entry
}

// LookupFunc adapts a plain function to the Lookup interface.
type LookupFunc func(ctx context.Context, word string) Entry

func (f LookupFunc) Lookup(ctx context.Context, word string) Entry {
	return f(ctx, word)
}

// Ensure Client implements the interface
var _ Lookup = (*Client)(nil)
