package server

import (
	"bucketlist/internal/models"
	"bucketlist/internal/service"

	"github.com/gofiber/fiber/v2"
)

// itemPath parses the bucketlist and item IDs of a nested item route.
func itemPath(c *fiber.Ctx) (bucketlistID, itemID uint, err error) {
	if bucketlistID, err = parseID(c, "id", "bucketlist"); err != nil {
		return 0, 0, err
	}
	if itemID, err = parseID(c, "itemId", "item"); err != nil {
		return 0, 0, err
	}
	return bucketlistID, itemID, nil
}

// CreateItem handles POST /v1/bucketlists/:id/items
// @Summary Add an item to a bucketlist
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bucketlist ID"
// @Param request body CreateItemRequest true "Item"
// @Success 201 {object} ItemResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /bucketlists/{id}/items [post]
func (s *Server) CreateItem(c *fiber.Ctx) error {
	bucketlistID, err := parseID(c, "id", "bucketlist")
	if err != nil {
		return nil
	}
	var req CreateItemRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	item, err := s.itemService.CreateItem(c.UserContext(), service.CreateItemInput{
		Identity:     identity(c),
		BucketlistID: bucketlistID,
		Name:         req.Name,
		Done:         req.Done,
	})
	if err != nil {
		return models.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(ItemResponse{
		Status:  statusSuccess,
		Message: "Item has been created",
		Item:    item,
	})
}

// ListItems handles GET /v1/bucketlists/:id/items
// @Summary List the items of a bucketlist
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bucketlist ID"
// @Param q query string false "Case-insensitive name filter"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} ListResponse[models.Item]
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /bucketlists/{id}/items [get]
func (s *Server) ListItems(c *fiber.Ctx) error {
	bucketlistID, err := parseID(c, "id", "bucketlist")
	if err != nil {
		return nil
	}

	in := listInput(c)
	page, err := s.itemService.ListItems(c.UserContext(), bucketlistID, in)
	if err != nil {
		return models.Respond(c, err)
	}

	next, prev := pageLinks(c, page.Meta, in.Query)
	return c.JSON(ListResponse[models.Item]{
		Status: statusSuccess,
		Items:  page.Items,
		Meta:   page.Meta,
		Next:   next,
		Prev:   prev,
	})
}

// GetItem handles GET /v1/bucketlists/:id/items/:itemId
// @Summary Get an item
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bucketlist ID"
// @Param itemId path int true "Item ID"
// @Success 200 {object} ItemResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /bucketlists/{id}/items/{itemId} [get]
func (s *Server) GetItem(c *fiber.Ctx) error {
	bucketlistID, itemID, err := itemPath(c)
	if err != nil {
		return nil
	}

	item, err := s.itemService.GetItem(c.UserContext(), identity(c), bucketlistID, itemID)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(ItemResponse{Status: statusSuccess, Item: item})
}

// UpdateItem handles PUT /v1/bucketlists/:id/items/:itemId
// @Summary Rename an item or toggle its done flag
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bucketlist ID"
// @Param itemId path int true "Item ID"
// @Param request body UpdateItemRequest true "Fields to change"
// @Success 200 {object} ItemResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /bucketlists/{id}/items/{itemId} [put]
func (s *Server) UpdateItem(c *fiber.Ctx) error {
	bucketlistID, itemID, err := itemPath(c)
	if err != nil {
		return nil
	}
	var req UpdateItemRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	item, err := s.itemService.UpdateItem(c.UserContext(), service.UpdateItemInput{
		Identity:     identity(c),
		BucketlistID: bucketlistID,
		ItemID:       itemID,
		Name:         req.Name,
		Done:         req.Done,
	})
	if err != nil {
		return models.Respond(c, err)
	}

	return c.JSON(ItemResponse{
		Status:  statusSuccess,
		Message: "Item has been updated",
		Item:    item,
	})
}

// DeleteItem handles DELETE /v1/bucketlists/:id/items/:itemId
// @Summary Delete an item
// @Tags items
// @Security BearerAuth
// @Param id path int true "Bucketlist ID"
// @Param itemId path int true "Item ID"
// @Success 204
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /bucketlists/{id}/items/{itemId} [delete]
func (s *Server) DeleteItem(c *fiber.Ctx) error {
	bucketlistID, itemID, err := itemPath(c)
	if err != nil {
		return nil
	}

	if err := s.itemService.DeleteItem(c.UserContext(), identity(c), bucketlistID, itemID); err != nil {
		return models.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
