package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:            DriverSQLite,
			Path:              "~/.config/studylog",
			SQLiteFile:        "studylog.db",
			SQLiteJournalMode: "wal",
			DiskvDir:          "logs",
			PostgresDSN:       "",
		},
		Calendar: CalendarConfig{
			Timezone: "",
		},
		Retention: RetentionConfig{
			Days: 0,
		},
		Insights: InsightsConfig{
			WindowDays: 0,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "studylog.log",
		},
	}
}
