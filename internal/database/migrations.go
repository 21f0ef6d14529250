package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
var migrationsSQL = map[int]string{
	1: migrationV1Temples,
	2: migrationV2Calendars,
}

// migrationV1Temples creates the temple registry.
//
// Temple ids are UUID strings so they can be handed out before insert and
// stay stable across database rebuilds.
const migrationV1Temples = `
CREATE TABLE IF NOT EXISTS temples (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,

    -- Degrees, north and east positive
    latitude REAL NOT NULL CHECK (latitude BETWEEN -90 AND 90),
    longitude REAL NOT NULL CHECK (longitude BETWEEN -180 AND 180),

    -- Presiding deity family (shiva, murugan, amman, vishnu, ganesha) or empty
    deity TEXT NOT NULL DEFAULT '',
    district TEXT NOT NULL DEFAULT '',

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// migrationV2Calendars stores generated calendars.
//
// calendars keeps the full JSON document for one temple and year.
// festival_events flattens the same calendar, one row per event, for date
// range queries. Both are replaced together when a calendar is regenerated.
const migrationV2Calendars = `
CREATE TABLE IF NOT EXISTS calendars (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    temple_id TEXT NOT NULL,
    year INTEGER NOT NULL,
    payload TEXT NOT NULL,
    event_count INTEGER NOT NULL DEFAULT 0,
    generated_at TEXT NOT NULL,

    FOREIGN KEY (temple_id) REFERENCES temples(id) ON DELETE CASCADE,
    UNIQUE (temple_id, year)
);

CREATE TABLE IF NOT EXISTS festival_events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    temple_id TEXT NOT NULL,
    year INTEGER NOT NULL,
    date TEXT NOT NULL,            -- YYYY-MM-DD
    category TEXT NOT NULL,
    name TEXT NOT NULL,
    weekday TEXT NOT NULL DEFAULT '',
    tithi TEXT NOT NULL DEFAULT '',
    nakshatra TEXT NOT NULL DEFAULT '',
    tamil_month TEXT NOT NULL DEFAULT '',

    FOREIGN KEY (temple_id) REFERENCES temples(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_festival_events_temple_date
    ON festival_events(temple_id, date);

CREATE INDEX IF NOT EXISTS idx_festival_events_temple_year
    ON festival_events(temple_id, year);
`
