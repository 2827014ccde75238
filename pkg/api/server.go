package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hzpp/hzpp/pkg/api/routes"
	"github.com/hzpp/hzpp/pkg/journeyplan"
)

func SetupServer(listen string, planner *journeyplan.Planner) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.StationsRouter(group.Group("/stations"), planner)
	routes.CatalogRouter(group.Group("/catalog"), planner)
	routes.JourneysRouter(group.Group("/journeys"), planner)
	routes.LiveRouter(group.Group("/live"), planner)

	return webApp.Listen(listen)
}
