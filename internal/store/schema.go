package store

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS transactions (
    row_id                 INTEGER PRIMARY KEY AUTOINCREMENT,
    "date"                 TEXT NOT NULL DEFAULT '',
    "type"                 TEXT NOT NULL DEFAULT '',
    category               TEXT NOT NULL DEFAULT '',
    amount                 TEXT NOT NULL DEFAULT '',
    note                   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS fixed_expenses (
    row_id                 INTEGER PRIMARY KEY AUTOINCREMENT,
    name                   TEXT NOT NULL DEFAULT '',
    amount                 TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS saving_goals (
    row_id                 INTEGER PRIMARY KEY AUTOINCREMENT,
    goal_name              TEXT NOT NULL DEFAULT '',
    goal_amount            TEXT NOT NULL DEFAULT '',
    emoji                  TEXT NOT NULL DEFAULT '',
    current_saved          TEXT NOT NULL DEFAULT '',
    target_date            TEXT NOT NULL DEFAULT '',
    saving_frequency       TEXT NOT NULL DEFAULT '',
    saving_amount_per_freq TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS monthly_plans (
    row_id                 INTEGER PRIMARY KEY AUTOINCREMENT,
    month_year             TEXT NOT NULL DEFAULT '',
    item_type              TEXT NOT NULL DEFAULT '',
    item_name              TEXT NOT NULL DEFAULT '',
    amount                 TEXT NOT NULL DEFAULT '',
    category               TEXT NOT NULL DEFAULT '',
    is_paid                TEXT NOT NULL DEFAULT '',
    date_paid              TEXT NOT NULL DEFAULT '',
    item_id                TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions("date");
CREATE INDEX IF NOT EXISTS idx_monthly_plans_month ON monthly_plans(month_year);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS transactions (
    row_id                 BIGSERIAL PRIMARY KEY,
    "date"                 TEXT NOT NULL DEFAULT '',
    "type"                 TEXT NOT NULL DEFAULT '',
    category               TEXT NOT NULL DEFAULT '',
    amount                 TEXT NOT NULL DEFAULT '',
    note                   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS fixed_expenses (
    row_id                 BIGSERIAL PRIMARY KEY,
    name                   TEXT NOT NULL DEFAULT '',
    amount                 TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS saving_goals (
    row_id                 BIGSERIAL PRIMARY KEY,
    goal_name              TEXT NOT NULL DEFAULT '',
    goal_amount            TEXT NOT NULL DEFAULT '',
    emoji                  TEXT NOT NULL DEFAULT '',
    current_saved          TEXT NOT NULL DEFAULT '',
    target_date            TEXT NOT NULL DEFAULT '',
    saving_frequency       TEXT NOT NULL DEFAULT '',
    saving_amount_per_freq TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS monthly_plans (
    row_id                 BIGSERIAL PRIMARY KEY,
    month_year             TEXT NOT NULL DEFAULT '',
    item_type              TEXT NOT NULL DEFAULT '',
    item_name              TEXT NOT NULL DEFAULT '',
    amount                 TEXT NOT NULL DEFAULT '',
    category               TEXT NOT NULL DEFAULT '',
    is_paid                TEXT NOT NULL DEFAULT '',
    date_paid              TEXT NOT NULL DEFAULT '',
    item_id                TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions("date");
CREATE INDEX IF NOT EXISTS idx_monthly_plans_month ON monthly_plans(month_year);
`
