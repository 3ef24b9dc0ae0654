// Package geoip resolves client IPs to countries with a MaxMind
// GeoLite2-Country database, then maps countries onto the calendar's
// marketing regions.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"
)

var privateCIDRs []*net.IPNet

func init() {
	privateBlocks := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"fc00::/7",
		"fe80::/10",
	}
	for _, block := range privateBlocks {
		_, cidr, err := net.ParseCIDR(block)
		if err == nil {
			privateCIDRs = append(privateCIDRs, cidr)
		}
	}
}

// europeanCountries collapse into the EU marketing region.
var europeanCountries = map[string]bool{
	"GB": true, "DE": true, "FR": true, "ES": true, "IT": true,
	"NL": true, "BE": true, "AT": true, "CH": true, "PL": true,
	"CZ": true, "SE": true, "NO": true, "DK": true, "FI": true,
	"PT": true, "IE": true, "GR": true, "RO": true, "HU": true,
	"BG": true, "HR": true, "SK": true, "SI": true, "LT": true,
	"LV": true, "EE": true,
}

// directRegions are countries that are marketing regions themselves.
var directRegions = map[string]bool{
	"CN": true, "US": true, "CA": true, "JP": true, "KR": true,
	"VN": true, "ID": true, "TH": true, "BR": true, "AR": true,
	"MX": true,
}

// Lookup answers country and region queries for client IPs.
type Lookup struct {
	db          *maxminddb.Reader
	dbPath      string
	dbModTime   time.Time
	initialized bool
	enabled     bool
	mu          sync.RWMutex
}

type geoRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// NewLookup creates an uninitialized Lookup.
func NewLookup() *Lookup {
	return &Lookup{}
}

// Init loads the database. An empty path disables lookups without
// error so deployments without GeoIP still start.
func (g *Lookup) Init(dbPath string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.initialized = true
	g.dbPath = dbPath

	if dbPath == "" {
		g.enabled = false
		return nil
	}
	return g.loadDatabase()
}

// loadDatabase loads or reloads the MaxMind file. Caller holds g.mu.
func (g *Lookup) loadDatabase() error {
	info, err := os.Stat(g.dbPath)
	if err != nil {
		g.enabled = false
		if os.IsNotExist(err) {
			return fmt.Errorf("geoip database not found: %s", g.dbPath)
		}
		return fmt.Errorf("geoip database stat: %w", err)
	}

	if g.db != nil && info.ModTime().Equal(g.dbModTime) {
		return nil
	}
	if g.db != nil {
		_ = g.db.Close()
		g.db = nil
	}

	db, err := maxminddb.Open(g.dbPath)
	if err != nil {
		g.enabled = false
		return fmt.Errorf("opening geoip database: %w", err)
	}

	g.db = db
	g.dbModTime = info.ModTime()
	g.enabled = true
	return nil
}

// Reload re-reads the database when its file changed. Safe to call
// from a periodic job.
func (g *Lookup) Reload() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.dbPath == "" {
		return nil
	}
	return g.loadDatabase()
}

// LookupCountry returns the 2-letter ISO country code, "LOCAL" for
// private and loopback addresses, or "" when undeterminable.
func (g *Lookup) LookupCountry(ip string) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.initialized {
		return ""
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return ""
	}
	if isPrivateIP(parsedIP) || parsedIP.IsLoopback() {
		return "LOCAL"
	}
	if !g.enabled || g.db == nil {
		return ""
	}

	var record geoRecord
	if err := g.db.Lookup(parsedIP, &record); err != nil {
		return ""
	}
	return record.Country.ISOCode
}

// IsEnabled reports whether database lookups are available.
func (g *Lookup) IsEnabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled
}

// Close releases the database.
func (g *Lookup) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db != nil {
		err := g.db.Close()
		g.db = nil
		g.enabled = false
		return err
	}
	return nil
}

func isPrivateIP(ip net.IP) bool {
	for _, cidr := range privateCIDRs {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

// RegionCode maps a country code to the marketing region code it
// belongs to. Countries outside every region, local addresses, and
// unknowns return "".
func RegionCode(country string) string {
	switch {
	case country == "" || country == "LOCAL":
		return ""
	case directRegions[country]:
		return country
	case europeanCountries[country]:
		return "EU"
	}
	return ""
}
