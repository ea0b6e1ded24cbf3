package discovery

// ScanConfig defines how news entries are located in page HTML and which
// site the scanned pages belong to.
type ScanConfig struct {
	Selector    string `yaml:"selector"`              // CSS selector for news elements
	DateLayout  string `yaml:"date_layout,omitempty"` // Go time layout; empty = auto-detect
	Concurrency int    `yaml:"concurrency"`           // Files scanned in parallel
	Domain      string `yaml:"domain,omitempty"`      // Domain of scanned pages
	Book        string `yaml:"book,omitempty"`        // Book of scanned pages
}

// DefaultScanConfig returns the configuration used when nothing is set.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Selector:    "news",
		Concurrency: 4,
	}
}

// withDefaults fills zero fields from DefaultScanConfig.
func (c ScanConfig) withDefaults() ScanConfig {
	def := DefaultScanConfig()
	if c.Selector == "" {
		c.Selector = def.Selector
	}
	if c.Concurrency <= 0 {
		c.Concurrency = def.Concurrency
	}
	return c
}
