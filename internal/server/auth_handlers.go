package server

import (
	"bucketlist/internal/models"
	"bucketlist/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /v1/auth/register
// @Summary User registration
// @Description Register a new user account and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration request"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	result, err := s.authService.Register(c.UserContext(), service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return models.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Status:    statusSuccess,
		Message:   "Successfully registered",
		AuthToken: result.Token,
		User:      result.User,
	})
}

// Login handles POST /v1/auth/login
// @Summary User login
// @Description Authenticate with email and password and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	result, err := s.authService.Login(c.UserContext(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.Respond(c, err)
	}

	return c.JSON(AuthResponse{
		Status:    statusSuccess,
		Message:   "Successfully logged in",
		AuthToken: result.Token,
	})
}

// Me handles GET /v1/auth/me
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (s *Server) Me(c *fiber.Ctx) error {
	user, err := s.authService.Me(c.UserContext(), identity(c))
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(UserResponse{Status: statusSuccess, User: user})
}
