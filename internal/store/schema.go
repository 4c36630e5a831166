package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    run_id         TEXT PRIMARY KEY,
    kind           TEXT NOT NULL,
    base_year      INTEGER NOT NULL,
    forecast_years INTEGER NOT NULL,
    warnings       INTEGER NOT NULL DEFAULT 0,
    commit_hash    TEXT,
    created_at     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS statement_lines (
    run_id         TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    statement      TEXT NOT NULL,
    fiscal_year    INTEGER NOT NULL,
    line_item      TEXT NOT NULL,
    value          TEXT NOT NULL,
    PRIMARY KEY (run_id, statement, fiscal_year, line_item)
);

CREATE TABLE IF NOT EXISTS assumptions (
    run_id         TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    name           TEXT NOT NULL,
    value          TEXT NOT NULL,
    source         TEXT NOT NULL,
    PRIMARY KEY (run_id, name)
);

CREATE INDEX IF NOT EXISTS idx_lines_year ON statement_lines(fiscal_year);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
