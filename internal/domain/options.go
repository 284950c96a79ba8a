package domain

// DefaultInlineThreshold is the default maximum size in bytes of an inlined asset
const DefaultInlineThreshold int64 = 50 * 1024

// CollectOptions controls a single asset collection run
type CollectOptions struct {
	// InlineThreshold is the maximum size of an inlined asset in bytes; 0 disables inlining
	InlineThreshold int64
	// LayoutTemplate is the layout markup content
	LayoutTemplate string
	// LayoutBasePath is the path of the layout file; references resolve against its directory
	LayoutBasePath string
}

// DefaultCollectOptions returns CollectOptions with default values.
func DefaultCollectOptions() CollectOptions {
	return CollectOptions{InlineThreshold: DefaultInlineThreshold}
}

// HasLayout reports whether layout markup should be scanned
func (o CollectOptions) HasLayout() bool {
	return o.LayoutTemplate != "" && o.LayoutBasePath != ""
}

// Validate checks that the layout fields are given together
func (o CollectOptions) Validate() error {
	if (o.LayoutTemplate == "") != (o.LayoutBasePath == "") {
		return ErrLayoutIncomplete
	}
	return nil
}

// CommonOptions contains shared options for the output stage.
type CommonOptions struct {
	Verbose bool
	DryRun  bool
	Force   bool
}
