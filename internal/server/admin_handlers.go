package server

import (
	"bmxhive/internal/models"
	"bmxhive/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAdminPosts handles GET /api/admin/posts
// @Summary Moderation view of the trick forum
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Trick
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/posts [get]
func (s *Server) GetAdminPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	tricks, err := s.moderationService.ListPosts(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(tricks)
}

// DeleteAdminPost handles DELETE /api/admin/posts/:id
// @Summary Remove a trick post
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trick ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/posts/{id} [delete]
func (s *Server) DeleteAdminPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.moderationService.DeletePost(c.Context(), id); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// GetAdminUsers handles GET /api/admin/users
// @Summary List user accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} service.AdminUserView
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/users [get]
func (s *Server) GetAdminUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	users, err := s.moderationService.ListUsers(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(users)
}

// SetUserBan handles PUT /api/admin/users/:id/ban
// @Summary Ban or unban a user
// @Description The ban lands on the user and profile rows together; it takes effect on the target's next request
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body object{banned=bool} true "Ban state"
// @Success 200 {object} object{message=string,user=service.AdminUserView}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id}/ban [put]
func (s *Server) SetUserBan(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Banned *bool `json:"banned"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	// Absent body means ban, matching the original single-purpose endpoint.
	banned := true
	if req.Banned != nil {
		banned = *req.Banned
	}

	view, err := s.moderationService.SetUserBanned(c.Context(), s.userID(c), id, banned)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	message := "User unbanned"
	if view.Banned {
		message = "User banned"
	}
	return c.JSON(fiber.Map{"message": message, "user": view})
}

// UpdateAdminProfile handles PUT /api/admin/users/profile
// @Summary Update the admin's own profile
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{name=string,bio=string,favorite_tricks=string} true "Profile fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/users/profile [put]
func (s *Server) UpdateAdminProfile(c *fiber.Ctx) error {
	var req struct {
		Name           *string `json:"name"`
		Bio            *string `json:"bio"`
		FavoriteTricks *string `json:"favorite_tricks"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:         s.userID(c),
		Name:           req.Name,
		Bio:            req.Bio,
		FavoriteTricks: req.FavoriteTricks,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(profile)
}

// GetTickets handles GET /api/admin/tickets
// @Summary List filed reports
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Ticket
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/tickets [get]
func (s *Server) GetTickets(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	tickets, err := s.moderationService.ListTickets(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(tickets)
}

// GetContent handles GET /api/content and GET /api/admin/content
// @Summary List published site content
// @Tags content
// @Produce json
// @Param type query string false "Type filter (guide|news|tutorial)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.AdminContent
// @Router /content [get]
func (s *Server) GetContent(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	contents, err := s.moderationService.ListContent(c.Context(), c.Query("type"), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(contents)
}

// CreateContent handles POST /api/admin/content
// @Summary Publish site content
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,description=string,content=string,type=string} true "Content payload"
// @Success 201 {object} models.AdminContent
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/content [post]
func (s *Server) CreateContent(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Body        string `json:"content"`
		Type        string `json:"type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	content, err := s.moderationService.PublishContent(c.Context(), service.CreateContentInput{
		AdminID:     s.userID(c),
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		Type:        req.Type,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(content)
}

// DeleteContent handles DELETE /api/admin/content/:id
// @Summary Remove site content
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/content/{id} [delete]
func (s *Server) DeleteContent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.moderationService.DeleteContent(c.Context(), id); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(fiber.Map{"message": "Content deleted"})
}
