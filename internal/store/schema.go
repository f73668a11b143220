package store

// sqliteSchema is the SQLite DDL for the three catalog tables. Timestamps
// are unix milliseconds; tag lists are stored as JSON arrays.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS agents (
  id                     TEXT PRIMARY KEY,
  name                   TEXT NOT NULL UNIQUE,
  description            TEXT NOT NULL DEFAULT '',
  category               TEXT NOT NULL DEFAULT '',
  base_prompt            TEXT NOT NULL DEFAULT '',
  pricing_tier           TEXT NOT NULL,
  base_price             REAL NOT NULL DEFAULT 0,
  monthly_price          REAL NOT NULL DEFAULT 0,
  capabilities           TEXT NOT NULL DEFAULT '',
  specialization_tags    TEXT NOT NULL DEFAULT '[]',
  default_model          TEXT NOT NULL DEFAULT '',
  model_pricing_modifier REAL NOT NULL DEFAULT 1.0,
  expertise_years        INTEGER NOT NULL DEFAULT 0,
  practical_projects     INTEGER NOT NULL DEFAULT 0,
  collaboration_rate     REAL NOT NULL DEFAULT 0,
  compliance_frameworks  TEXT NOT NULL DEFAULT '[]',
  is_active              INTEGER NOT NULL DEFAULT 1,
  is_featured            INTEGER NOT NULL DEFAULT 0,
  approval_status        TEXT NOT NULL DEFAULT 'approved',
  created_at             INTEGER NOT NULL,
  updated_at             INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_agents_category ON agents(category, name);

CREATE TABLE IF NOT EXISTS bundles (
  id            TEXT PRIMARY KEY,
  name          TEXT NOT NULL UNIQUE,
  description   TEXT NOT NULL DEFAULT '',
  category      TEXT NOT NULL DEFAULT '',
  pricing_tier  TEXT NOT NULL,
  monthly_price REAL NOT NULL DEFAULT 0,
  setup_price   REAL NOT NULL DEFAULT 0,
  is_active     INTEGER NOT NULL DEFAULT 1,
  is_featured   INTEGER NOT NULL DEFAULT 0,
  created_at    INTEGER NOT NULL,
  updated_at    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bundle_members (
  bundle_name TEXT NOT NULL REFERENCES bundles(name),
  agent_name  TEXT NOT NULL REFERENCES agents(name),
  created_at  INTEGER NOT NULL,
  PRIMARY KEY (bundle_name, agent_name)
);
`
