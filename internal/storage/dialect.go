package storage

import (
	"strconv"
	"strings"
)

// dialect captures the few places SQLite and PostgreSQL disagree. Queries are
// written with ? placeholders and rebound per dialect.
type dialect struct {
	name        string
	numbered    bool // $1, $2, ... instead of ?
	pragmas     bool // run SQLite PRAGMAs before migrating
	journalMode string
}

var (
	sqliteDialect   = dialect{name: "sqlite", pragmas: true, journalMode: "wal"}
	postgresDialect = dialect{name: "postgres", numbered: true}
)

func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
