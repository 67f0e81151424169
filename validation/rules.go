package validation

const (
	// RuleMissingCacheSegment flags platform requests that bypass the cache path segment.
	RuleMissingCacheSegment = "missing-cache-segment"
	// RuleRawTransportConstruction flags direct XMLHttpRequest construction.
	RuleRawTransportConstruction = "raw-transport-construction"
)
