package handler

import (
	"errors"
	"io"
	"net/http"

	"gamecatalog/backend/internal/images"

	"github.com/gin-gonic/gin"
)

// Room for multipart headers and boundaries on top of the image itself.
const multipartOverhead = 64 * 1024

// readImage reads the "image" form file, answering 400 or 413 itself.
func (h *Handler) readImage(c *gin.Context) (images.Upload, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxImageBytes+multipartOverhead)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, images.ErrTooLarge)
			return images.Upload{}, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image file is required in the 'image' form field"})
		return images.Upload{}, false
	}
	if fileHeader.Size > h.maxImageBytes {
		respondError(c, images.ErrTooLarge)
		return images.Upload{}, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return images.Upload{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, err)
		return images.Upload{}, false
	}
	return images.Upload{Filename: fileHeader.Filename, Data: data}, true
}

// UploadGameImage godoc
// @Summary      Set a game's image
// @Description  Replaces the game's image. Accepts JPEG, PNG or WebP.
// @Tags         admin-games
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int   true  "Game ID"
// @Param        image formData  file  true  "Image file"
// @Success      200   {object}  GameResponse
// @Failure      400   {object}  ErrorResponse "Missing or unsupported image"
// @Failure      404   {object}  ErrorResponse "Game not found"
// @Failure      413   {object}  ErrorResponse "Image too large"
// @Router       /admin/games/{id}/image [put]
func (h *Handler) UploadGameImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	upload, ok := h.readImage(c)
	if !ok {
		return
	}

	game, err := h.svc.AttachGameImage(c.Request.Context(), id, upload)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newGameResponse(game)
	h.publish("games", "game.updated", resp)
	c.JSON(http.StatusOK, resp)
}

// DeleteGameImage godoc
// @Summary      Remove a game's image
// @Tags         admin-games
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Game ID"
// @Success      200 {object} GameResponse
// @Failure      404 {object} ErrorResponse "Game not found"
// @Router       /admin/games/{id}/image [delete]
func (h *Handler) DeleteGameImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	game, err := h.svc.DetachGameImage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newGameResponse(game)
	h.publish("games", "game.updated", resp)
	c.JSON(http.StatusOK, resp)
}

// UploadConsoleImage godoc
// @Summary      Set a console's image
// @Tags         admin-consoles
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int   true  "Console ID"
// @Param        image formData  file  true  "Image file"
// @Success      200   {object}  ConsoleResponse
// @Failure      400   {object}  ErrorResponse "Missing or unsupported image"
// @Failure      404   {object}  ErrorResponse "Console not found"
// @Failure      413   {object}  ErrorResponse "Image too large"
// @Router       /admin/consoles/{id}/image [put]
func (h *Handler) UploadConsoleImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	upload, ok := h.readImage(c)
	if !ok {
		return
	}

	console, err := h.svc.AttachConsoleImage(c.Request.Context(), id, upload)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newConsoleResponse(console)
	h.publish("consoles", "console.updated", resp)
	c.JSON(http.StatusOK, resp)
}

// DeleteConsoleImage godoc
// @Summary      Remove a console's image
// @Tags         admin-consoles
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Console ID"
// @Success      200 {object} ConsoleResponse
// @Failure      404 {object} ErrorResponse "Console not found"
// @Router       /admin/consoles/{id}/image [delete]
func (h *Handler) DeleteConsoleImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	console, err := h.svc.DetachConsoleImage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newConsoleResponse(console)
	h.publish("consoles", "console.updated", resp)
	c.JSON(http.StatusOK, resp)
}

// UploadAccessoryImage godoc
// @Summary      Set an accessory's image
// @Tags         admin-accessories
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int   true  "Accessory ID"
// @Param        image formData  file  true  "Image file"
// @Success      200   {object}  AccessoryResponse
// @Failure      400   {object}  ErrorResponse "Missing or unsupported image"
// @Failure      404   {object}  ErrorResponse "Accessory not found"
// @Failure      413   {object}  ErrorResponse "Image too large"
// @Router       /admin/accessories/{id}/image [put]
func (h *Handler) UploadAccessoryImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	upload, ok := h.readImage(c)
	if !ok {
		return
	}

	accessory, err := h.svc.AttachAccessoryImage(c.Request.Context(), id, upload)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newAccessoryResponse(accessory)
	h.publish("accessories", "accessory.updated", resp)
	c.JSON(http.StatusOK, resp)
}

// DeleteAccessoryImage godoc
// @Summary      Remove an accessory's image
// @Tags         admin-accessories
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Accessory ID"
// @Success      200 {object} AccessoryResponse
// @Failure      404 {object} ErrorResponse "Accessory not found"
// @Router       /admin/accessories/{id}/image [delete]
func (h *Handler) DeleteAccessoryImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	accessory, err := h.svc.DetachAccessoryImage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := newAccessoryResponse(accessory)
	h.publish("accessories", "accessory.updated", resp)
	c.JSON(http.StatusOK, resp)
}
