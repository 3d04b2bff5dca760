package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS exercises (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    kind        TEXT NOT NULL,
    payload     TEXT NOT NULL,
    created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_exercises_kind ON exercises(kind);
CREATE INDEX IF NOT EXISTS idx_exercises_created ON exercises(created_at);
`
