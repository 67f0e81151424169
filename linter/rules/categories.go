package rules

// Rule categories

const (
	// CategoryCaching represents rules that check requests against the platform cache layer.
	// Examples: platform URLs that skip the /cache/ segment
	CategoryCaching = "caching"

	// CategoryTransport represents rules that flag low level request construction that cannot be
	// inspected statically.
	CategoryTransport = "transport"
)
