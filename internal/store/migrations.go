package store

// schema creates the tables the pipeline reads and writes. The beaches table
// is normally owned by the directory application; it is created here only so
// the tool can run against an empty database.
const schema = `
CREATE TABLE IF NOT EXISTS beaches (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    municipality TEXT NOT NULL DEFAULT '',
    lat REAL NOT NULL DEFAULT 0,
    lng REAL NOT NULL DEFAULT 0,
    description TEXT,
    best_time TEXT,
    parking_details TEXT,
    safety_info TEXT,
    access_label TEXT,
    updated_at TEXT
);

CREATE TABLE IF NOT EXISTS beach_tags (
    beach_id INTEGER NOT NULL REFERENCES beaches(id) ON DELETE CASCADE,
    tag TEXT NOT NULL,
    PRIMARY KEY (beach_id, tag)
);

CREATE TABLE IF NOT EXISTS beach_amenities (
    beach_id INTEGER NOT NULL REFERENCES beaches(id) ON DELETE CASCADE,
    amenity TEXT NOT NULL,
    PRIMARY KEY (beach_id, amenity)
);

CREATE TABLE IF NOT EXISTS beach_features (
    beach_id INTEGER NOT NULL REFERENCES beaches(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (beach_id, position)
);

CREATE TABLE IF NOT EXISTS beach_tips (
    beach_id INTEGER NOT NULL REFERENCES beaches(id) ON DELETE CASCADE,
    category TEXT NOT NULL,
    tip TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (beach_id, position)
);

CREATE TABLE IF NOT EXISTS beach_content_sections (
    beach_id INTEGER NOT NULL REFERENCES beaches(id) ON DELETE CASCADE,
    section_type TEXT NOT NULL,
    heading TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL,
    word_count INTEGER NOT NULL DEFAULT 0,
    score INTEGER NOT NULL DEFAULT 0,
    updated_at TEXT,
    PRIMARY KEY (beach_id, section_type)
);

CREATE TABLE IF NOT EXISTS llm_calls (
    id TEXT PRIMARY KEY,
    run_id TEXT,
    timestamp TEXT NOT NULL,
    beach_id INTEGER,
    prompt_key TEXT,
    prompt_hash TEXT,
    provider TEXT NOT NULL,
    model TEXT,
    attempt INTEGER NOT NULL DEFAULT 1,
    latency_ms INTEGER NOT NULL DEFAULT 0,
    input_tokens INTEGER NOT NULL DEFAULT 0,
    output_tokens INTEGER NOT NULL DEFAULT 0,
    response TEXT,
    status_code INTEGER,
    success BOOLEAN NOT NULL DEFAULT FALSE,
    error TEXT
);

CREATE INDEX IF NOT EXISTS idx_llm_calls_beach_id ON llm_calls(beach_id);
CREATE INDEX IF NOT EXISTS idx_llm_calls_run_id ON llm_calls(run_id);
`
