package server

import (
	"io"

	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadPhoto handles POST /api/users/me/photo
func (s *Server) UploadPhoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A photo file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read uploaded file"))
	}

	user, svcErr := s.photoService.Upload(c.UserContext(), service.UploadPhotoInput{
		UserID:      currentUserID(c),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if svcErr != nil {
		return models.RespondWithAppError(c, svcErr)
	}
	return c.JSON(user)
}

// DeletePhoto handles DELETE /api/users/me/photo
func (s *Server) DeletePhoto(c *fiber.Ctx) error {
	user, err := s.photoService.Delete(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// ServePhoto handles GET /api/uploads/:filename
func (s *Server) ServePhoto(c *fiber.Ctx) error {
	path, err := s.photoService.Resolve(c.Params("filename"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendFile(path)
}
