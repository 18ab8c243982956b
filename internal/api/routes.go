package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api", handler.DeviceTokenRequired)

	predictions := api.Group("/predictions")
	predictions.Post("/query", handler.QueryPredictions)
	predictions.Get("/preferences", handler.GetPreferences)
	predictions.Put("/preferences", handler.PutPreferences)

	community := api.Group("/community")
	community.Get("/me", handler.GetIdentity)
	community.Get("/posts", handler.ListPosts)
	community.Post("/posts", handler.CreatePost)
	community.Post("/posts/:id/like", handler.TogglePostLike)
	community.Get("/posts/:id/comments", handler.ListComments)
	community.Post("/posts/:id/comments", handler.AddComment)
	community.Get("/buddies", handler.ListBuddies)
	community.Post("/buddies", handler.AddBuddy)
	community.Post("/share-code", handler.GenerateShareCode)
	community.Get("/share-code/:code", handler.DecodeShareCode)
}
