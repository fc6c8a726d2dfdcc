package database

// schemas maps database names to their embedded DDL. Each schema is the
// single source of truth for that database and must stay idempotent.
var schemas = map[string]string{
	"records": recordsSchema,
	"cache":   cacheSchema,
}

// recordsSchema defines records.db: the persisted startup records as last
// synced from the analysis backend. Optional analysis payloads are stored
// as JSON blobs; scalar columns are what queries filter and sort on.
const recordsSchema = `
CREATE TABLE IF NOT EXISTS startups (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    industry       TEXT NOT NULL DEFAULT '',
    risk_level     TEXT,
    recommendation TEXT,
    overall_score  REAL,
    analysis_data  TEXT,
    metrics        TEXT,
    created_at     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_startups_created_at ON startups(created_at);
CREATE INDEX IF NOT EXISTS idx_startups_overall_score ON startups(overall_score);
`

// cacheSchema defines cache.db: last-known-good snapshots of the upstream
// listing response, used as the offline/error fallback. No expiry column -
// snapshots are only ever replaced by the next successful fetch.
const cacheSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
    source     TEXT PRIMARY KEY,
    id         TEXT NOT NULL,
    data       BLOB NOT NULL,
    fetched_at INTEGER NOT NULL
);
`
