package Geocoding

import (
	"net"

	"github.com/oschwald/geoip2-golang"

	"MakeMyWay/Models"
)

// IPLocator resolves a rough default map position from the client IP using
// a local MaxMind database. Entirely optional: without a configured
// database the locate endpoint just reports unavailable.
type IPLocator struct {
	db *geoip2.Reader
}

// NewIPLocator opens the MMDB at path. An empty path returns a nil locator,
// which every method tolerates.
func NewIPLocator(path string) (*IPLocator, error) {
	if path == "" {
		return nil, nil
	}
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &IPLocator{db: db}, nil
}

// Locate returns the city-level position of ip, if known.
func (l *IPLocator) Locate(ip net.IP) (Models.GeoPoint, bool) {
	if l == nil || l.db == nil || ip == nil {
		return Models.GeoPoint{}, false
	}
	city, err := l.db.City(ip)
	if err != nil || city.Location.Latitude == 0 && city.Location.Longitude == 0 {
		return Models.GeoPoint{}, false
	}
	return Models.GeoPoint{Lat: city.Location.Latitude, Lng: city.Location.Longitude}, true
}

// Close releases the underlying database.
func (l *IPLocator) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}
