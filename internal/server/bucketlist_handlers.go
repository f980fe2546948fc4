package server

import (
	"bucketlist/internal/models"
	"bucketlist/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateBucketlist handles POST /v1/bucketlists
// @Summary Create a bucketlist
// @Tags bucketlists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BucketlistRequest true "Bucketlist"
// @Success 201 {object} BucketlistResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /bucketlists [post]
func (s *Server) CreateBucketlist(c *fiber.Ctx) error {
	var req BucketlistRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	bucketlist, err := s.bucketlistService.CreateBucketlist(c.UserContext(), service.CreateBucketlistInput{
		Identity: identity(c),
		Title:    req.Title,
	})
	if err != nil {
		return models.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(BucketlistResponse{
		Status:     statusSuccess,
		Message:    "Bucketlist has been created",
		Bucketlist: bucketlist,
	})
}

// ListBucketlists handles GET /v1/bucketlists
// @Summary List the caller's bucketlists
// @Tags bucketlists
// @Produce json
// @Security BearerAuth
// @Param q query string false "Case-insensitive title filter"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} ListResponse[models.Bucketlist]
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /bucketlists [get]
func (s *Server) ListBucketlists(c *fiber.Ctx) error {
	in := listInput(c)
	page, err := s.bucketlistService.ListBucketlists(c.UserContext(), in)
	if err != nil {
		return models.Respond(c, err)
	}

	next, prev := pageLinks(c, page.Meta, in.Query)
	return c.JSON(ListResponse[models.Bucketlist]{
		Status: statusSuccess,
		Items:  page.Bucketlists,
		Meta:   page.Meta,
		Next:   next,
		Prev:   prev,
	})
}

// GetBucketlist handles GET /v1/bucketlists/:id
// @Summary Get a bucketlist
// @Tags bucketlists
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bucketlist ID"
// @Success 200 {object} BucketlistResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /bucketlists/{id} [get]
func (s *Server) GetBucketlist(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "bucketlist")
	if err != nil {
		return nil
	}

	bucketlist, err := s.bucketlistService.GetBucketlist(c.UserContext(), identity(c), id)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(BucketlistResponse{Status: statusSuccess, Bucketlist: bucketlist})
}

// UpdateBucketlist handles PUT /v1/bucketlists/:id
// @Summary Rename a bucketlist
// @Tags bucketlists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bucketlist ID"
// @Param request body BucketlistRequest true "Bucketlist"
// @Success 200 {object} BucketlistResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /bucketlists/{id} [put]
func (s *Server) UpdateBucketlist(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "bucketlist")
	if err != nil {
		return nil
	}
	var req BucketlistRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	bucketlist, err := s.bucketlistService.UpdateBucketlist(c.UserContext(), service.UpdateBucketlistInput{
		Identity:     identity(c),
		BucketlistID: id,
		Title:        req.Title,
	})
	if err != nil {
		return models.Respond(c, err)
	}

	return c.JSON(BucketlistResponse{
		Status:     statusSuccess,
		Message:    "Bucketlist has been updated",
		Bucketlist: bucketlist,
	})
}

// DeleteBucketlist handles DELETE /v1/bucketlists/:id
// @Summary Delete a bucketlist and its items
// @Tags bucketlists
// @Security BearerAuth
// @Param id path int true "Bucketlist ID"
// @Success 204
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /bucketlists/{id} [delete]
func (s *Server) DeleteBucketlist(c *fiber.Ctx) error {
	id, err := parseID(c, "id", "bucketlist")
	if err != nil {
		return nil
	}

	if err := s.bucketlistService.DeleteBucketlist(c.UserContext(), identity(c), id); err != nil {
		return models.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
