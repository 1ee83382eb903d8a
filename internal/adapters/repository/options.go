package repository

// options configures the store factory.
type options struct {
	driver string
	dsn    string
}

// Option applies a configuration option to the store factory.
type Option func(*options)

// WithDriver selects the store driver, one of DriverMemory or
// DriverSQLite. Empty values keep the default.
func WithDriver(driver string) Option {
	return func(o *options) {
		if driver != "" {
			o.driver = driver
		}
	}
}

// WithDSN sets the data source for drivers that need one. For sqlite
// this is a file path or ":memory:".
func WithDSN(dsn string) Option {
	return func(o *options) {
		o.dsn = dsn
	}
}
