package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// SeedTheaters inserts the configured theater catalog. The catalog string
// holds "Name|IANA timezone" entries separated by ";", e.g.
//
//	AMC Empire 25|America/New_York;Regal Union Square|America/New_York
//
// Timezones are validated against the host tz database before any write.
// Re-running at startup is harmless: existing rows only have their timezone
// refreshed from the configuration, which keeps a corrected timezone from
// requiring manual SQL. An empty catalog string is a no-op (the catalog is
// then managed out of band).
func SeedTheaters(ctx context.Context, db *sql.DB, catalog string) error {
	if strings.TrimSpace(catalog) == "" {
		return nil
	}
	type entry struct{ name, tz string }
	var entries []entry
	for _, raw := range strings.Split(catalog, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.SplitN(raw, "|", 2)
		if len(parts) != 2 {
			return fmt.Errorf("theater seed entry %q: want \"Name|Timezone\"", raw)
		}
		name := strings.TrimSpace(parts[0])
		tz := strings.TrimSpace(parts[1])
		if name == "" || tz == "" {
			return fmt.Errorf("theater seed entry %q: empty name or timezone", raw)
		}
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("theater %q: invalid IANA timezone %q: %w", name, tz, err)
		}
		entries = append(entries, entry{name: name, tz: tz})
	}
	const q = `INSERT INTO theaters (name, timezone) VALUES (?, ?)
               ON DUPLICATE KEY UPDATE timezone = VALUES(timezone)`
	for _, e := range entries {
		if _, err := db.ExecContext(ctx, q, e.name, e.tz); err != nil {
			return fmt.Errorf("seed theater %q: %w", e.name, err)
		}
	}
	return nil
}
