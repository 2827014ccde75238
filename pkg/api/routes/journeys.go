package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hzpp/hzpp/pkg/journeyplan"
	"github.com/hzpp/hzpp/pkg/model"
)

// scheduleRequest picks one candidate out of a prior search's results.
type scheduleRequest struct {
	Options         model.JourneyOptions `json:"options"`
	DepartureNumber string               `json:"departureNumber"`
	TripType        model.TripType       `json:"tripType"`
}

func JourneysRouter(router fiber.Router, planner *journeyplan.Planner) {
	router.Post("/search", func(c *fiber.Ctx) error {
		return searchJourneys(c, planner)
	})
	router.Post("/schedule", func(c *fiber.Ctx) error {
		return getSchedule(c, planner)
	})
	router.Post("/schedule/live", func(c *fiber.Ctx) error {
		return getScheduleWithLiveInfo(c, planner)
	})
	router.Post("/all", func(c *fiber.Ctx) error {
		return getAllSchedules(c, planner)
	})
	router.Post("/progress", func(c *fiber.Ctx) error {
		return getProgress(c)
	})
}

func searchJourneys(c *fiber.Ctx, planner *journeyplan.Planner) error {
	var options model.JourneyOptions
	if err := c.BodyParser(&options); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Body must be a journey search request",
		})
	}

	routes, err := planner.JourneyRoutes(c.Context(), options)
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	reduced, err := marshalGroups(c, routes)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce journey routes",
		})
	}

	return c.JSON(reduced)
}

func getSchedule(c *fiber.Ctx, planner *journeyplan.Planner) error {
	var request scheduleRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Body must be a schedule request",
		})
	}
	if request.TripType == "" {
		request.TripType = model.TripTypeOutward
	}

	schedule, err := planner.RouteSchedule(c.Context(), request.Options, request.DepartureNumber, request.TripType)
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if c.QueryBool("segments") {
		return c.JSON(journeyplan.ConvertToSegments(schedule))
	}

	reduced, err := marshalGroups(c, schedule)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce journey schedule",
		})
	}

	return c.JSON(reduced)
}

func getScheduleWithLiveInfo(c *fiber.Ctx, planner *journeyplan.Planner) error {
	var request scheduleRequest
	if err := c.BodyParser(&request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Body must be a schedule request",
		})
	}
	if request.TripType == "" {
		request.TripType = model.TripTypeOutward
	}

	schedule, err := planner.ScheduleWithLiveInfo(c.Context(), request.Options, request.DepartureNumber, request.TripType)
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	reduced, err := marshalGroups(c, schedule)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce journey schedule",
		})
	}

	return c.JSON(reduced)
}

func getAllSchedules(c *fiber.Ctx, planner *journeyplan.Planner) error {
	var options model.JourneyOptions
	if err := c.BodyParser(&options); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Body must be a journey search request",
		})
	}

	routes, err := planner.AllRouteSchedules(c.Context(), options)
	if err != nil {
		c.SendStatus(fiber.StatusBadGateway)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	reduced, err := marshalGroups(c, routes)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce journey routes",
		})
	}

	return c.JSON(reduced)
}

func getProgress(c *fiber.Ctx) error {
	var journey model.ExtendedJourney
	if err := c.BodyParser(&journey); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Body must be a live-enriched journey",
		})
	}

	return c.JSON(fiber.Map{
		"percentage": journeyplan.Percentage(&journey, time.Now()),
	})
}
