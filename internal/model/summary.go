package model

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// MemorySummary is the rolling continuity state carried between days.
// SalientEvents is ordered oldest first and capped by the store;
// EmergentTraits holds the latest observed value per trait name.
type MemorySummary struct {
	CoveringPeriod DateRange         `json:"covering_period"`
	SalientEvents  []string          `json:"salient_events"`
	EmergentTraits map[string]string `json:"emergent_traits"`
	LastUpdated    string            `json:"last_updated"`
}
