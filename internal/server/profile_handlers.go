package server

import (
	"io"

	"bmxhive/internal/models"
	"bmxhive/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profile/me
// @Summary Get own profile
// @Description Return the caller's profile with derived riding level, rating and videos
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Profile
// @Failure 401 {object} models.ErrorResponse
// @Router /profile/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetProfile(c.Context(), s.userID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/profile/me
// @Summary Update own profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{name=string,bio=string,favorite_tricks=string} true "Profile fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /profile/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
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

// AddPoints handles POST /api/profile/add-points
// @Summary Award points to own profile
// @Description Add a positive point delta; riding level and rating derive from the new total
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{points=int} true "Point delta"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /profile/add-points [post]
func (s *Server) AddPoints(c *fiber.Ctx) error {
	var req struct {
		Points int `json:"points"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AwardPoints(c.Context(), s.userID(c), req.Points)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(profile)
}

// UploadAvatar handles POST /api/profile/avatar
// @Summary Upload an avatar image
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /profile/avatar [post]
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	content, filename, err := s.readUpload(c, "avatar")
	if err != nil {
		return nil
	}

	url, err := s.uploadService.SaveAvatar(service.UploadInput{
		UserID:   s.userID(c),
		Filename: filename,
		Content:  content,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	profile, err := s.profileService.SetAvatar(c.Context(), s.userID(c), url)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(profile)
}

// UploadTrickVideo handles POST /api/profile/video
// @Summary Upload a trick video
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param video formData file true "Trick video"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /profile/video [post]
func (s *Server) UploadTrickVideo(c *fiber.Ctx) error {
	content, filename, err := s.readUpload(c, "video")
	if err != nil {
		return nil
	}

	url, err := s.uploadService.SaveTrickVideo(service.UploadInput{
		UserID:   s.userID(c),
		Filename: filename,
		Content:  content,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	profile, err := s.profileService.AddTrickVideo(c.Context(), s.userID(c), url)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(profile)
}

// Leaderboard handles GET /api/profile/leaderboard
// @Summary Ranked rider profiles
// @Tags profile
// @Produce json
// @Param limit query int false "Maximum rows (default 50)"
// @Success 200 {array} models.Profile
// @Router /profile/leaderboard [get]
func (s *Server) Leaderboard(c *fiber.Ctx) error {
	profiles, err := s.profileService.Leaderboard(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(profiles)
}

// readUpload buffers a single multipart file field. On failure it writes
// the response and returns a non-nil error; callers should return nil.
func (s *Server) readUpload(c *fiber.Ctx, field string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("No file uploaded"))
		return nil, "", errResponseWritten
	}

	f, err := fileHeader.Open()
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unreadable upload"))
		return nil, "", errResponseWritten
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
		return nil, "", errResponseWritten
	}
	return content, fileHeader.Filename, nil
}
