// Package orders contains the Orders bounded context: the canonical
// order model all sales channels converge on.
//
// Key concepts:
//   - Order / OrderItem: the normalized, immutable representation of one
//     platform order; validated at construction, never mutated afterwards
//   - Importer: port interface for platform-specific payload normalization
//     (adapters live in the infrastructure layer)
//   - StatusTable: per-platform vocabulary mapping native status strings
//     to the shared OrderStatus enumeration
//   - Organizer/Report helpers: pure grouping and summary functions over
//     order snapshots
//
// Design Pattern: Ports & Adapters
//   - The Importer port is defined here in the domain layer
//   - Concrete importers (Etsy, Shopify) are in the infrastructure layer
package orders
