package nested

// Option applies a configuration option to a Parser.
type Option func(*Parser)

// WithMaxRecords caps the number of records started. Non-positive values are ignored.
func WithMaxRecords(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxRecords = n
		}
	}
}

// WithFallbackHook is called for every numeric value that fell back to zero.
// index is the position of the record the value belongs to.
func WithFallbackHook(hook func(index int, field string)) Option {
	return func(p *Parser) {
		if hook != nil {
			p.onFallback = hook
		}
	}
}
