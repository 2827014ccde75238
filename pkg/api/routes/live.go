package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hzpp/hzpp/pkg/journeyplan"
	"github.com/hzpp/hzpp/pkg/livestatus"
)

func LiveRouter(router fiber.Router, planner *journeyplan.Planner) {
	router.Get("/:train", func(c *fiber.Ctx) error {
		return getTrainInfo(c, planner)
	})
}

func getTrainInfo(c *fiber.Ctx, planner *journeyplan.Planner) error {
	info, err := planner.Live.TrainInfo(c.Context(), c.Params("train"))
	if err != nil {
		status := fiber.StatusBadGateway
		if errors.Is(err, livestatus.ErrMissingAuthToken) {
			status = fiber.StatusServiceUnavailable
		}

		c.SendStatus(status)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	reduced, err := marshalGroups(c, info)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce train info",
		})
	}

	return c.JSON(reduced)
}
