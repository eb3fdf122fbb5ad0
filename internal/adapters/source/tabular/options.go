package tabular

// Option applies a configuration option to a parse.
type Option func(*parser)

// WithMaxRecords caps the number of records read. Non-positive values are ignored.
func WithMaxRecords(n int) Option {
	return func(p *parser) {
		if n > 0 {
			p.maxRecords = n
		}
	}
}

// WithFallbackHook is called for every field that fell back to zero.
// line is 1-based and counts the header.
func WithFallbackHook(hook func(line int, field string)) Option {
	return func(p *parser) {
		if hook != nil {
			p.onFallback = hook
		}
	}
}
