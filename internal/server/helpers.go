package server

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"bucketlist/internal/middleware"
	"bucketlist/internal/models"
	"bucketlist/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func parseID(c *fiber.Ctx, param, label string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		_ = models.Respond(c, models.NewValidationError("Invalid "+label+" ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseBody decodes the JSON body into dest, writing a 400 response on failure.
func parseBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		_ = models.Respond(c, models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// identity returns the authenticated identity set by AuthRequired.
func identity(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.LocalsIdentity).(string)
	return id
}

// listInput reads the q, page and limit query parameters. Non-numeric values fall back to defaults.
func listInput(c *fiber.Ctx) service.ListInput {
	return service.ListInput{
		Identity: identity(c),
		Query:    c.Query("q"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 0),
	}
}

// pageLinks builds the next and prev URLs for a listing, preserving the search term.
func pageLinks(c *fiber.Ctx, meta models.PageMeta, query string) (next, prev string) {
	link := func(page int) string {
		values := url.Values{}
		values.Set("page", strconv.Itoa(page))
		values.Set("limit", strconv.Itoa(meta.Limit))
		if query != "" {
			values.Set("q", query)
		}
		return fmt.Sprintf("%s?%s", c.Path(), values.Encode())
	}
	if meta.HasNext() {
		next = link(meta.Page + 1)
	}
	if meta.HasPrev() {
		prev = link(meta.Page - 1)
	}
	return next, prev
}
