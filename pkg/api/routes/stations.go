package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"

	"github.com/hzpp/hzpp/pkg/journeyplan"
)

func StationsRouter(router fiber.Router, planner *journeyplan.Planner) {
	router.Get("/", func(c *fiber.Ctx) error {
		return listStations(c, planner)
	})
	router.Get("/:identifier", func(c *fiber.Ctx) error {
		return getStation(c, planner)
	})
}

// marshalGroups reduces a value to its serialization groups: always "basic",
// plus "detailed" when the request asks for it.
func marshalGroups(c *fiber.Ctx, value interface{}) (interface{}, error) {
	groups := []string{"basic"}
	if c.QueryBool("detailed") {
		groups = append(groups, "detailed")
	}

	return sheriff.Marshal(&sheriff.Options{Groups: groups}, value)
}

func listStations(c *fiber.Ctx, planner *journeyplan.Planner) error {
	stations, err := planner.Portal.Directory.Stations(c.Context())
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(stations)
}

func getStation(c *fiber.Ctx, planner *journeyplan.Planner) error {
	station, err := planner.Portal.Directory.ByID(c.Context(), c.Params("identifier"))
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if station == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Station matching Station Identifier",
		})
	}

	return c.JSON(station)
}
