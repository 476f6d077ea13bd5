package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trashtrack/trashtrack/pkg/api/routes"
	"github.com/trashtrack/trashtrack/pkg/api/stats"
)

func SetupServer(listen string) error {
	go stats.UpdateRecordsStats()

	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	group.Get("stats", func(c *fiber.Ctx) error {
		return c.JSON(stats.CurrentRecordsStats)
	})

	routes.TPSRouter(group.Group("/tps"))

	routes.SchedulesRouter(group.Group("/schedules"))

	routes.UsersRouter(group.Group("/users", EnsureValidToken()))

	return webApp.Listen(listen)
}
