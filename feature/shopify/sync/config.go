package sync

// Config holds the recurring-trigger schedules. An empty cron expression
// disables the corresponding trigger.
type Config struct {
	// FullCron schedules full inventory syncs. Disabled by default: full
	// runs are heavy and usually triggered manually.
	FullCron string `mapstructure:"full_cron" default:""`
	// IncrementalCron schedules the daily incremental sync.
	IncrementalCron string `mapstructure:"incremental_cron" default:"0 3 * * *"`
	// PriceCron schedules the price update sync.
	PriceCron string `mapstructure:"price_cron" default:"30 3 * * *"`
}
