package sqlstore

const (
	domainsTable    = "monitored_domains"
	subdomainsTable = "known_subdomains"

	// insertChunkSize bounds the rows per INSERT statement; SQLite limits bound parameters per query.
	insertChunkSize = 250
)

// DomainRow is a monitored_domains row.
type DomainRow struct {
	ID   int64  `db:"id"   goqu:"skipinsert"`
	Name string `db:"name"`
}

// SubdomainRow is a known_subdomains row.
type SubdomainRow struct {
	ID       int64  `db:"id"       goqu:"skipinsert"`
	Domain   string `db:"domain"`
	Hostname string `db:"hostname"`
}
