package simpleupload

import "context"

// Resolver defines the main interface for the simple-upload library
type Resolver interface {
	// Resolve classifies the request URL once and delegates to the prober
	// registered for the resulting scheme class. It never transfers the
	// resource body, never retries, and imposes no timeout of its own;
	// deadlines arrive through ctx.
	Resolve(ctx context.Context, req ResolveRequest) (*ResourceMetadata, error)

	// Prober registry operations
	RegisterProber(class SchemeClass, p Prober)
	GetProber(class SchemeClass) (Prober, error)
}
