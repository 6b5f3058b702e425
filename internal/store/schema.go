package store

// The ledger table holds exactly one row (id = 1). Expenses keep their
// insertion order through position; amounts are decimal text so nothing is
// lost to float rounding.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS ledger (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    income               TEXT NOT NULL DEFAULT '0',
    mode                 TEXT NOT NULL,
    currency             TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS monthly_incomes (
    month                TEXT PRIMARY KEY,
    income               TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id                   TEXT PRIMARY KEY,
    position             INTEGER NOT NULL,
    amount               TEXT NOT NULL,
    description          TEXT NOT NULL DEFAULT '',
    category             TEXT NOT NULL,
    date                 TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);
CREATE INDEX IF NOT EXISTS idx_expenses_position ON expenses(position);
`
