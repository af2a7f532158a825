package checkpoint

import "time"

// Session is one resumable analysis run. A session lives as a sequence of
// snapshot files; each mutation rewrites the whole snapshot.
type Session struct {
	SessionName     string         `json:"session_name"`
	StartedAt       time.Time      `json:"started_at"`
	LastUpdated     time.Time      `json:"last_updated"`
	Sequence        int            `json:"sequence"`
	PluginsAnalyzed []PluginResult `json:"plugins_analyzed"`
	Errors          []ErrorRecord  `json:"errors"`
}

// PluginResult records one analyzed target's outcome. Results is the opaque
// payload produced by the external analyzer.
type PluginResult struct {
	PluginName string         `json:"plugin_name"`
	AnalyzedAt time.Time      `json:"analyzed_at"`
	Results    map[string]any `json:"results"`
}

// ErrorRecord is a failure captured against one target during a run.
type ErrorRecord struct {
	PluginName string    `json:"plugin_name"`
	Error      string    `json:"error"`
	Timestamp  time.Time `json:"timestamp"`
}
