package monitoring

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

const countTimeout = 5 * time.Second

// Service holds runtime context for monitoring and reporting.
type Service struct {
	db        *sqlx.DB
	startedAt time.Time
}

type Snapshot struct {
	TimestampUTC       string          `json:"timestamp_utc"`
	UptimeSeconds      int64           `json:"uptime_seconds"`
	HTTPActiveRequests int64           `json:"http_active_requests"`
	HTTPTotalRequests  uint64          `json:"http_total_requests"`
	HTTPClientErrors   uint64          `json:"http_client_errors"`
	HTTPServerErrors   uint64          `json:"http_server_errors"`
	DBOpenConnections  int             `json:"db_open_connections"`
	DBInUseConnections int             `json:"db_in_use_connections"`
	DBWaitCount        int64           `json:"db_wait_count"`
	Goroutines         int             `json:"goroutines"`
	GoMemoryAllocBytes uint64          `json:"go_memory_alloc_bytes"`
	GoMemorySysBytes   uint64          `json:"go_memory_sys_bytes"`
	GoHeapInUseBytes   uint64          `json:"go_heap_in_use_bytes"`
	GoGCCount          uint32          `json:"go_gc_count"`
	UsersTotal         int64           `json:"users_total"`
	ProfilesTotal      int64           `json:"profiles_total"`
	PostsTotal         int64           `json:"posts_total"`
	LikesTotal         int64           `json:"likes_total"`
	CommentsTotal      int64           `json:"comments_total"`
	DBSizeBytes        int64           `json:"db_size_bytes"`
	Mutations          []MutationStats `json:"mutations"`
}

// ContentCounts are the row and sub-entity totals.
type ContentCounts struct {
	Users       int64 `db:"users"`
	UsersNew24h int64 `db:"users_new_24h"`
	Profiles    int64 `db:"profiles"`
	Posts       int64 `db:"posts"`
	PostsNew24h int64 `db:"posts_new_24h"`
	Likes       int64 `db:"likes"`
	Comments    int64 `db:"comments"`
}

const contentCountsQuery = `SELECT
	(SELECT COUNT(*) FROM users) AS users,
	(SELECT COUNT(*) FROM users WHERE created_at >= NOW() - INTERVAL '24 hours') AS users_new_24h,
	(SELECT COUNT(*) FROM profiles) AS profiles,
	(SELECT COUNT(*) FROM posts) AS posts,
	(SELECT COUNT(*) FROM posts WHERE created_at >= NOW() - INTERVAL '24 hours') AS posts_new_24h,
	(SELECT COALESCE(SUM(jsonb_array_length(likes)), 0) FROM posts) AS likes,
	(SELECT COALESCE(SUM(jsonb_array_length(comments)), 0) FROM posts) AS comments`

func NewService(db *sqlx.DB, startedAt time.Time) *Service {
	return &Service{db: db, startedAt: startedAt}
}

func (s *Service) ContentCounts(ctx context.Context) (ContentCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, countTimeout)
	defer cancel()

	var counts ContentCounts
	if err := s.db.GetContext(ctx, &counts, contentCountsQuery); err != nil {
		return ContentCounts{}, err
	}
	return counts, nil
}

func (s *Service) StatusText(ctx context.Context) string {
	dbState := "ok"
	if err := s.db.PingContext(ctx); err != nil {
		dbState = "error: " + err.Error()
	}

	uptime := time.Since(s.startedAt).Round(time.Second)
	httpStats := getHTTPStats()
	generic := s.db.Stats()

	return strings.Join([]string{
		"DevNetwork Server Status",
		fmt.Sprintf("Uptime: %s", uptime),
		fmt.Sprintf("DB: %s", dbState),
		fmt.Sprintf("HTTP active requests: %d", httpStats.Active),
		fmt.Sprintf("HTTP total requests: %d", httpStats.Total),
		fmt.Sprintf("HTTP 4xx/5xx: %d/%d", httpStats.ClientErrors, httpStats.ServerErrors),
		fmt.Sprintf("DB open connections: %d", generic.OpenConnections),
		fmt.Sprintf("Go goroutines: %d", runtime.NumGoroutine()),
	}, "\n")
}

func (s *Service) ConnectionsText() string {
	stats := s.db.Stats()
	httpStats := getHTTPStats()

	return strings.Join([]string{
		"DevNetwork Connections",
		fmt.Sprintf("DB MaxOpenConnections: %d", stats.MaxOpenConnections),
		fmt.Sprintf("DB OpenConnections: %d", stats.OpenConnections),
		fmt.Sprintf("DB InUse: %d", stats.InUse),
		fmt.Sprintf("DB Idle: %d", stats.Idle),
		fmt.Sprintf("DB WaitCount: %d", stats.WaitCount),
		fmt.Sprintf("HTTP active requests: %d", httpStats.Active),
		fmt.Sprintf("HTTP total requests: %d", httpStats.Total),
	}, "\n")
}

func (s *Service) RuntimeText() string {
	var memory runtime.MemStats
	runtime.ReadMemStats(&memory)

	return strings.Join([]string{
		"DevNetwork Runtime",
		fmt.Sprintf("Go version: %s", runtime.Version()),
		fmt.Sprintf("CPU cores: %d", runtime.NumCPU()),
		fmt.Sprintf("Goroutines: %d", runtime.NumGoroutine()),
		fmt.Sprintf("Memory alloc: %s", formatBytes(int64(memory.Alloc))),
		fmt.Sprintf("Memory sys: %s", formatBytes(int64(memory.Sys))),
		fmt.Sprintf("Heap in use: %s", formatBytes(int64(memory.HeapInuse))),
		fmt.Sprintf("GC cycles: %d", memory.NumGC),
	}, "\n")
}

func (s *Service) UsersText(ctx context.Context) string {
	counts, err := s.ContentCounts(ctx)
	if err != nil {
		return "DevNetwork Users\nCounts unavailable: " + err.Error()
	}

	lines := []string{
		"DevNetwork Users",
		fmt.Sprintf("Users total: %d", counts.Users),
		fmt.Sprintf("Users created in 24h: %d", counts.UsersNew24h),
		fmt.Sprintf("Profiles total: %d", counts.Profiles),
		fmt.Sprintf("Posts total: %d", counts.Posts),
		fmt.Sprintf("Posts created in 24h: %d", counts.PostsNew24h),
		fmt.Sprintf("Likes total: %d", counts.Likes),
		fmt.Sprintf("Comments total: %d", counts.Comments),
	}
	for _, m := range getMutationStats() {
		lines = append(lines, fmt.Sprintf("Mutation %s: %d total, %d failed, %.2f ms avg",
			m.Operation, m.RequestsTotal, m.FailedTotal, m.AvgDurationMS))
	}
	return strings.Join(lines, "\n")
}

func (s *Service) AllText(ctx context.Context) string {
	return strings.Join([]string{
		s.StatusText(ctx),
		"",
		s.ConnectionsText(),
		"",
		s.RuntimeText(),
		"",
		s.UsersText(ctx),
	}, "\n")
}

func (s *Service) Snapshot(ctx context.Context) Snapshot {
	stats := s.db.Stats()
	httpStats := getHTTPStats()

	var memory runtime.MemStats
	runtime.ReadMemStats(&memory)

	snap := Snapshot{
		TimestampUTC:       time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds:      int64(time.Since(s.startedAt).Seconds()),
		HTTPActiveRequests: httpStats.Active,
		HTTPTotalRequests:  httpStats.Total,
		HTTPClientErrors:   httpStats.ClientErrors,
		HTTPServerErrors:   httpStats.ServerErrors,
		DBOpenConnections:  stats.OpenConnections,
		DBInUseConnections: stats.InUse,
		DBWaitCount:        stats.WaitCount,
		Goroutines:         runtime.NumGoroutine(),
		GoMemoryAllocBytes: memory.Alloc,
		GoMemorySysBytes:   memory.Sys,
		GoHeapInUseBytes:   memory.HeapInuse,
		GoGCCount:          memory.NumGC,
		Mutations:          getMutationStats(),
	}

	if counts, err := s.ContentCounts(ctx); err == nil {
		snap.UsersTotal = counts.Users
		snap.ProfilesTotal = counts.Profiles
		snap.PostsTotal = counts.Posts
		snap.LikesTotal = counts.Likes
		snap.CommentsTotal = counts.Comments
	}
	_ = s.db.GetContext(ctx, &snap.DBSizeBytes, `SELECT COALESCE(pg_database_size(current_database()), 0)`)

	return snap
}

func formatBytes(value int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(value)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d %s", value, units[unit])
	}
	return fmt.Sprintf("%.2f %s", size, units[unit])
}
