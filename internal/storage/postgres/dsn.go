package postgres

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/items-api/config"
)

// DSN returns cfg.DSN when set, otherwise a keyword/value connection string
// understood by both lib/pq and pgx.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quoteValue(cfg.Host), cfg.Port, quoteValue(cfg.User), quoteValue(cfg.Password),
		quoteValue(cfg.Name), quoteValue(sslmode),
	)
}

// quoteValue single-quotes a keyword/value setting when it is empty or holds
// whitespace, quotes or backslashes, escaping ' and \ as libpq expects.
func quoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " \t\n\r'\\") {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
