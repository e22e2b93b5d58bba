package database

import "strings"

type migration struct {
	name       string
	statements []string
}

// migrations returns the schema history for driver. The two dialects differ
// only in the timestamp column type.
func migrations(driver string) []migration {
	ts := "TIMESTAMP"
	if driver == DriverPostgres {
		ts = "TIMESTAMPTZ"
	}
	withTS := func(stmt string) string {
		return strings.ReplaceAll(stmt, "{{ts}}", ts)
	}

	return []migration{
		{
			name: "001_events",
			statements: []string{
				withTS(`
					CREATE TABLE IF NOT EXISTS events (
						id TEXT PRIMARY KEY,
						name TEXT NOT NULL,
						guest TEXT NOT NULL,
						type TEXT NOT NULL,
						attendees INTEGER NOT NULL DEFAULT 0 CHECK (attendees >= 0),
						format TEXT NOT NULL CHECK (format IN ('online', 'offline')),
						"time" {{ts}} NOT NULL,
						details TEXT NOT NULL DEFAULT '',
						venue TEXT,
						zoom_link TEXT,
						created_at {{ts}} NOT NULL,
						updated_at {{ts}} NOT NULL,
						CONSTRAINT events_location_matches_format CHECK (
							(format = 'offline' AND venue IS NOT NULL AND zoom_link IS NULL) OR
							(format = 'online' AND zoom_link IS NOT NULL AND venue IS NULL)
						)
					)
				`),
				`CREATE INDEX IF NOT EXISTS events_created_at_idx ON events (created_at)`,
			},
		},
		{
			name: "002_gallery",
			statements: []string{
				withTS(`
					CREATE TABLE IF NOT EXISTS gallery (
						id TEXT PRIMARY KEY,
						title TEXT NOT NULL,
						description TEXT NOT NULL,
						image_url TEXT NOT NULL,
						event_name TEXT,
						date TEXT NOT NULL,
						created_at {{ts}} NOT NULL,
						updated_at {{ts}} NOT NULL
					)
				`),
				`CREATE INDEX IF NOT EXISTS gallery_created_at_idx ON gallery (created_at)`,
			},
		},
	}
}
