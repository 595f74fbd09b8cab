package server

import (
	"bmxhive/internal/models"
	"bmxhive/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTrick handles POST /api/tricks
// @Summary Post a trick
// @Description Create a trick forum post
// @Tags tricks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,description=string,video_url=string,level=string,hashtags=[]string} true "Trick payload"
// @Success 201 {object} models.Trick
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /tricks [post]
func (s *Server) CreateTrick(c *fiber.Ctx) error {
	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		VideoURL    string   `json:"video_url"`
		Level       string   `json:"level"`
		Hashtags    []string `json:"hashtags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	trick, err := s.trickService.CreateTrick(c.Context(), service.CreateTrickInput{
		UserID:      s.userID(c),
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		Level:       req.Level,
		Hashtags:    req.Hashtags,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(trick)
}

// GetTricks handles GET /api/tricks
// @Summary List tricks
// @Description List the trick forum feed, newest first, optionally filtered by level
// @Tags tricks
// @Produce json
// @Param level query string false "Level filter (beginner|advanced)"
// @Success 200 {array} models.Trick
// @Failure 400 {object} models.ErrorResponse
// @Router /tricks [get]
func (s *Server) GetTricks(c *fiber.Ctx) error {
	tricks, err := s.trickService.ListTricks(c.Context(), c.Query("level"))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(tricks)
}

// GetTrick handles GET /api/tricks/:id
// @Summary Get a trick
// @Tags tricks
// @Produce json
// @Param id path int true "Trick ID"
// @Success 200 {object} models.Trick
// @Failure 404 {object} models.ErrorResponse
// @Router /tricks/{id} [get]
func (s *Server) GetTrick(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	trick, err := s.trickService.GetTrick(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(trick)
}

// ToggleLike handles POST /api/tricks/:id/like
// @Summary Toggle a like
// @Description Like or unlike a trick; the author's points move with the counter
// @Tags tricks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Trick ID"
// @Success 200 {object} models.LikeResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /tricks/{id}/like [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.trickService.ToggleLike(c.Context(), id, s.userID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(result)
}

// CreateTicket handles POST /api/tickets
// @Summary Report a trick
// @Description File a moderation report against a trick
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{trick_id=int,reason=string} true "Report payload"
// @Success 201 {object} models.Ticket
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /tickets [post]
func (s *Server) CreateTicket(c *fiber.Ctx) error {
	var req struct {
		TrickID uint   `json:"trick_id"`
		Reason  string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.TrickID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("trick_id is required"))
	}

	ticket, err := s.moderationService.FileTicket(c.Context(), service.FileTicketInput{
		ReporterID: s.userID(c),
		TrickID:    req.TrickID,
		Reason:     req.Reason,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.Status(fiber.StatusCreated).JSON(ticket)
}
