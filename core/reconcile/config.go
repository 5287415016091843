package reconcile

// Config holds the merge settings loaded by core/config.
type Config struct {
	// Rule is the conflict rule name (last-modified, always, never).
	Rule string `mapstructure:"rule" default:"last-modified"`
	// Workers is the number of region pairs merged concurrently.
	Workers int `mapstructure:"workers" default:"1"`
	// RegionDir is the directory inside a world that holds region files.
	RegionDir string `mapstructure:"region_dir" default:"region"`
	// Extension is the region file extension.
	Extension string `mapstructure:"extension" default:".mca"`
	// TargetWorld is the world the HTTP API inspects as target.
	TargetWorld string `mapstructure:"target_world" default:""`
	// SourceWorld is the world the HTTP API inspects as source.
	SourceWorld string `mapstructure:"source_world" default:""`
	// PlanCacheSeconds is how long the HTTP API reuses a computed plan.
	PlanCacheSeconds int `mapstructure:"plan_cache_seconds" default:"30"`
}
