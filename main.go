package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"MakeMyWay/CronJobs"
	"MakeMyWay/FiberConfig"
	"MakeMyWay/Geocoding"
	"MakeMyWay/RouteEngine"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	osrmURL := envOr("OSRM_URL", "https://router.project-osrm.org")
	nominatimURL := envOr("NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	maxEntries := envIntOr("CACHE_MAX_ENTRIES", 1000)

	routingCache := RouteEngine.NewRoutingCache(maxEntries)
	geocodeCache := RouteEngine.NewRoutingCache(maxEntries / 4)

	engine := RouteEngine.NewOSRMClient(osrmURL, routingCache)
	search := RouteEngine.NewRouteSearch(engine)

	geocoder := Geocoding.NewNominatimClient(nominatimURL, geocodeCache)
	locator, err := Geocoding.NewIPLocator(os.Getenv("GEOIP_DB"))
	if err != nil {
		log.Printf("GeoIP database unavailable, /api/locate disabled: %v", err)
	}

	pruner := CronJobs.NewCachePruner(os.Getenv("CACHE_PRUNE_SCHEDULE"), routingCache, geocodeCache)
	if err := pruner.Start(); err != nil {
		log.Fatal("Failed to start cache pruner:", err)
	}
	defer pruner.Stop()

	FiberConfig.FiberConfig(FiberConfig.Deps{
		RouteHandler: RouteEngine.NewHandler(search),
		GeocodeHandler: &Geocoding.Handler{
			Client:  geocoder,
			Locator: locator,
		},
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
