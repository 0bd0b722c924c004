package domain

// Catalog is the fixed snippet set written to the vector store on first
// startup. IDs are stable: they are what /query results report back.
func Catalog() []Snippet {
	return catalog
}

var catalog = []Snippet{
	{
		ID:    "health_check",
		Title: "GET /health simple health check",
		Body: `package main

import "github.com/gofiber/fiber/v3"

func main() {
	app := fiber.New()

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Listen(":8080")
}
`,
	},
	{
		ID:    "get_items_paginated",
		Title: "GET /items with pagination and filters",
		Body: `package main

import "github.com/gofiber/fiber/v3"

type Item struct {
	ID       int    ` + "`json:\"id\"`" + `
	Name     string ` + "`json:\"name\"`" + `
	Category string ` + "`json:\"category,omitempty\"`" + `
}

func listItems(c fiber.Ctx) error {
	limit := fiber.Query(c, "limit", 20)
	offset := fiber.Query(c, "offset", 0)
	category := fiber.Query[string](c, "category")

	data := []Item{
		{ID: 1, Name: "Widget", Category: "tools"},
		{ID: 2, Name: "Gadget", Category: "electronics"},
	}
	if category != "" {
		filtered := data[:0]
		for _, it := range data {
			if it.Category == category {
				filtered = append(filtered, it)
			}
		}
		data = filtered
	}
	if offset > len(data) {
		offset = len(data)
	}
	end := offset + limit
	if end > len(data) {
		end = len(data)
	}
	return c.JSON(data[offset:end])
}
`,
	},
	{
		ID:    "post_create_item",
		Title: "POST /items create with validation",
		Body: `package main

import "github.com/gofiber/fiber/v3"

type ItemCreate struct {
	Name  string  ` + "`json:\"name\"`" + `
	Price float64 ` + "`json:\"price\"`" + `
}

type ItemOut struct {
	ID    int     ` + "`json:\"id\"`" + `
	Name  string  ` + "`json:\"name\"`" + `
	Price float64 ` + "`json:\"price\"`" + `
}

func createItem(c fiber.Ctx) error {
	var payload ItemCreate
	if err := c.Bind().JSON(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if payload.Name == "" || len(payload.Name) > 100 || payload.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation failed"})
	}
	return c.Status(fiber.StatusCreated).JSON(ItemOut{ID: 1, Name: payload.Name, Price: payload.Price})
}
`,
	},
	{
		ID:    "put_update_item",
		Title: "PUT /items/:id update endpoint",
		Body: `package main

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
)

type ItemUpdate struct {
	Name string ` + "`json:\"name\"`" + `
}

func updateItem(c fiber.Ctx) error {
	itemID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	var payload ItemUpdate
	if err := c.Bind().JSON(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if itemID != 1 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
	}
	return c.JSON(fiber.Map{"message": "Item updated"})
}
`,
	},
	{
		ID:    "delete_item",
		Title: "DELETE /items/:id endpoint",
		Body: `package main

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
)

func deleteItem(c fiber.Ctx) error {
	itemID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid id"})
	}
	if itemID != 1 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
`,
	},
	{
		ID:    "router_example",
		Title: "Route group best practice",
		Body: `package main

import "github.com/gofiber/fiber/v3"

type UserOut struct {
	ID    int    ` + "`json:\"id\"`" + `
	Email string ` + "`json:\"email\"`" + `
}

func registerUsers(app *fiber.App) {
	users := app.Group("/users")

	users.Get("/:id", func(c fiber.Ctx) error {
		id := fiber.Params(c, "id", 0)
		return c.JSON(UserOut{ID: id, Email: "user@example.com"})
	})
}
`,
	},
	{
		ID:    "dependency_example",
		Title: "Auth middleware with request-scoped user",
		Body: `package main

import "github.com/gofiber/fiber/v3"

func currentUser(c fiber.Ctx) string {
	return "admin"
}

func requireUser(c fiber.Ctx) error {
	c.Locals("user", currentUser(c))
	return c.Next()
}

func main() {
	app := fiber.New()

	app.Get("/secure", requireUser, func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"user": c.Locals("user")})
	})

	app.Listen(":8080")
}
`,
	},
}
