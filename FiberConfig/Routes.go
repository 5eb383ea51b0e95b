package FiberConfig

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html/v2"

	"MakeMyWay/Export"
	"MakeMyWay/Geocoding"
	"MakeMyWay/Metrics"
	"MakeMyWay/RouteEngine"
	"MakeMyWay/middleware"
)

// Deps carries the components the HTTP layer serves. Everything is
// constructed in main so the caches and clients have no hidden globals.
type Deps struct {
	RouteHandler   *RouteEngine.Handler
	GeocodeHandler *Geocoding.Handler
}

// SetupRoutes registers every endpoint on the app.
func SetupRoutes(app *fiber.App, deps Deps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(Metrics.Handler()))

	api := app.Group("/api")
	api.Post("/route/generate", deps.RouteHandler.GenerateRoute)
	api.Post("/route/gpx", Export.DownloadGPX)
	api.Get("/modes", deps.RouteHandler.GetModes)
	api.Get("/geocode/search", deps.GeocodeHandler.SearchPlaces)
	api.Get("/locate", deps.GeocodeHandler.LocateClient)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{})
	})
}

// FiberConfig builds the app with its middleware stack and starts serving.
func FiberConfig(deps Deps) {
	fmt.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Requested-With",
		MaxAge:       300,
	}))

	SetupRoutes(app, deps)
	app.Static("/static", "static/")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
