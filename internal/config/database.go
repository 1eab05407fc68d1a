package config

import (
	"fmt"
	"strings"

	"landwand-api/internal/netutil"
)

// EffectiveHost resolves the configured host, expanding the "auto" value
// to the machine's primary non-loopback IP.
func (d *DatabaseConfig) EffectiveHost() string {
	host := strings.TrimSpace(d.Host)
	if host == "" || strings.EqualFold(host, "auto") {
		return netutil.LocalIP()
	}
	return host
}

// DSN returns a go-sql-driver/mysql data source name built from the
// discrete fields. parseTime makes DATE columns scan as time.Time.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=UTC",
		d.User,
		d.Password,
		d.EffectiveHost(),
		d.Port,
		d.Database,
	)
}
