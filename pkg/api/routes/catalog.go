package routes

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/hzpp/hzpp/pkg/journeyplan"
	"github.com/hzpp/hzpp/pkg/model"
)

func CatalogRouter(router fiber.Router, planner *journeyplan.Planner) {
	router.Get("/locomotives", func(c *fiber.Ctx) error {
		return catalogResponse(c, func(ctx context.Context, force bool) ([]model.RollingStockInfo, error) {
			return planner.Portal.Locomotives(ctx, force)
		})
	})
	router.Get("/wagons", func(c *fiber.Ctx) error {
		return catalogResponse(c, func(ctx context.Context, force bool) ([]model.RollingStockInfo, error) {
			return planner.Portal.Wagons(ctx, force)
		})
	})
	router.Get("/trains", func(c *fiber.Ctx) error {
		return catalogResponse(c, func(ctx context.Context, force bool) ([]model.RollingStockInfo, error) {
			return planner.Portal.TrainTypes(ctx, force)
		})
	})
}

func catalogResponse(c *fiber.Ctx, fetch func(context.Context, bool) ([]model.RollingStockInfo, error)) error {
	entries, err := fetch(c.Context(), c.QueryBool("refresh"))
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(entries)
}
