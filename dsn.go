package ygggo_dbclient

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// dsnFromConfig returns a DSN string.
// Priority: if Config.DSN is non-empty, return it unchanged.
// Otherwise build from hostname/hostport/username/password/database/params.
func dsnFromConfig(c Config) string {
	if strings.TrimSpace(c.DSN) != "" {
		return c.DSN
	}
	addr := c.Hostname
	if c.Hostport > 0 {
		addr = fmt.Sprintf("%s:%d", c.Hostname, c.Hostport)
	}
	dbEscaped := url.PathEscape(c.Database)

	// The charset rides in the DSN as well as the SET NAMES issued on connect,
	// so a replacement connection after a reconnect keeps the same encoding.
	params := make(map[string]string, len(c.Params)+1)
	for k, v := range c.Params {
		params[k] = v
	}
	if c.Charset != "" {
		if _, ok := params["charset"]; !ok {
			params["charset"] = c.Charset
		}
	}

	// Build query params in stable order for test determinism
	var q string
	if len(params) > 0 {
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", k, url.QueryEscape(params[k])))
		}
		q = strings.Join(parts, "&")
	}

	// auth part: do not URL-encode password; mysql driver expects raw
	auth := ""
	if c.Username != "" {
		if c.Password != "" {
			auth = fmt.Sprintf("%s:%s@", c.Username, c.Password)
		} else {
			auth = c.Username + "@"
		}
	}
	dsn := fmt.Sprintf("%stcp(%s)/%s", auth, addr, dbEscaped)
	if q != "" {
		dsn += "?" + q
	}
	return dsn
}
