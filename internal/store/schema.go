package store

// Schema v1 - catalog export
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- One row per export run
CREATE TABLE IF NOT EXISTS exports (
  id TEXT PRIMARY KEY,
  dataset_path TEXT,
  course_count INTEGER NOT NULL,
  skipped_count INTEGER NOT NULL DEFAULT 0,
  exported_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Course offerings, in load order
CREATE TABLE IF NOT EXISTS courses (
  export_id TEXT NOT NULL REFERENCES exports(id) ON DELETE CASCADE,
  seq INTEGER NOT NULL,
  institution TEXT NOT NULL,
  number TEXT NOT NULL,
  launch_date TEXT NOT NULL,
  title TEXT NOT NULL,
  instructors TEXT NOT NULL,
  subject TEXT NOT NULL,
  year INTEGER,
  honor_code INTEGER,
  participants INTEGER,
  audited INTEGER,
  certified INTEGER,
  percent_audited REAL,
  percent_certified REAL,
  percent_certified_50 REAL,
  percent_video REAL,
  percent_forum REAL,
  grade_higher_zero REAL,
  total_hours REAL,
  median_hours_certification REAL,
  median_age REAL,
  percent_male REAL,
  percent_female REAL,
  percent_degree REAL,
  PRIMARY KEY (export_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_courses_institution ON courses(export_id, institution);
CREATE INDEX IF NOT EXISTS idx_courses_number ON courses(export_id, number);

-- Ordered aggregate results; position preserves query order
CREATE TABLE IF NOT EXISTS participant_totals (
  export_id TEXT NOT NULL REFERENCES exports(id) ON DELETE CASCADE,
  grouping TEXT NOT NULL,
  position INTEGER NOT NULL,
  key TEXT NOT NULL,
  total INTEGER NOT NULL,
  PRIMARY KEY (export_id, grouping, position)
);

-- Instructor index; role is 'primary' or 'secondary'
CREATE TABLE IF NOT EXISTS instructor_courses (
  export_id TEXT NOT NULL REFERENCES exports(id) ON DELETE CASCADE,
  instructor TEXT NOT NULL,
  role TEXT NOT NULL,
  title TEXT NOT NULL,
  PRIMARY KEY (export_id, instructor, role, title)
);
`
