package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	Port              string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Suggestion sources
	NASAAPIKey      string
	YouTubeChannels []string
	SkyGuideURL     string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
