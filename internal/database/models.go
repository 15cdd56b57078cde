package database

// RefreshRun records one news feed refresh.
type RefreshRun struct {
	ID           int64
	Outcome      string // "success" or "fallback"
	ArticleCount int
	Sources      map[string]int
	RefreshedAt  *string
}

// Stats contains aggregate database statistics.
type Stats struct {
	StoredKeys   int
	RefreshRuns  int
	FallbackRuns int
}
