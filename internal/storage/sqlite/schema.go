package sqlite

const schema = `
-- Classified records, one row per (entity, year) in input order
CREATE TABLE IF NOT EXISTS records (
    seq INTEGER PRIMARY KEY,
    entity TEXT NOT NULL,
    year INTEGER NOT NULL,
    gas_production REAL NOT NULL DEFAULT 0,
    gas_consumption REAL NOT NULL DEFAULT 0,
    oil_production REAL NOT NULL DEFAULT 0,
    oil_consumption REAL NOT NULL DEFAULT 0,
    coal_production REAL NOT NULL DEFAULT 0,
    coal_consumption REAL NOT NULL DEFAULT 0,
    organization TEXT NOT NULL CHECK(organization IN ('OPEC', 'BRICS', 'G7', 'Other')),
    region TEXT NOT NULL,
    euru TEXT NOT NULL CHECK(euru IN ('EU', 'Russia', 'Ukraine', 'Other')),
    extra TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_records_entity_year ON records(entity, year);
CREATE INDEX IF NOT EXISTS idx_records_region ON records(region);
CREATE INDEX IF NOT EXISTS idx_records_organization ON records(organization);

-- Run bookkeeping: input column layout, source path, last save time
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
