package orders

// Importer is the port implemented by platform-specific adapters. Given
// one raw payload it produces exactly one canonical order, or fails with
// a MalformedPayloadError (or an ErrInvalidOrder/ErrInvalidItem wrap from
// model construction) attributable to that payload alone.
//
// Concrete importers (Etsy, Shopify, ...) live in the infrastructure
// layer and are registered with the import service under their Platform
// identity.
type Importer interface {
	// Platform returns the lowercase platform identity used for registry
	// lookup (e.g. "etsy")
	Platform() string

	// ParseOrder converts a raw payload into a canonical order
	ParseOrder(payload RawPayload) (*Order, error)
}
