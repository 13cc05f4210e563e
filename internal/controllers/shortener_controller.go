package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"trimly-be/internal/errs"
	"trimly-be/internal/middleware"
	"trimly-be/internal/models"
	"trimly-be/internal/service"
)

type ShortenerController struct {
	urlService service.URLService
}

func NewShortenerController(urlService service.URLService) *ShortenerController {
	return &ShortenerController{
		urlService: urlService,
	}
}

// currentUserID returns the authenticated user's id, if any.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// CreateShortURL handles POST /api/v1/shorten. Auth is optional: an
// authenticated caller owns the record, an anonymous one gets an ownerless
// record that can never be updated or deleted.
func (sc *ShortenerController) CreateShortURL(c *gin.Context) {
	var req models.ShortenURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	var ownerID *string
	if id, ok := currentUserID(c); ok {
		ownerID = &id
	}

	response, err := sc.urlService.Shorten(&req, ownerID)
	if err != nil {
		if errs.IsConflict(err) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Could not allocate a unique short code, please retry",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to shorten URL",
		})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// RedirectToURL handles GET /:shortCode - redirects to the original URL.
// The click counter is bumped in the background; the redirect never waits
// on it and increment failures are only logged.
func (sc *ShortenerController) RedirectToURL(c *gin.Context) {
	shortCode := c.Param("shortCode")

	originalURL, err := sc.urlService.Resolve(shortCode)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Short code is required",
			})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Short URL not found",
		})
		return
	}

	go func(code string) {
		if err := sc.urlService.RecordAccess(code); err != nil {
			log.Printf("Warning: failed to record access for %s: %v", code, err)
		}
	}(shortCode)

	c.Redirect(http.StatusMovedPermanently, originalURL)
}

// GetUserURLs handles GET /api/v1/urls - returns all URLs for the authenticated user
func (sc *ShortenerController) GetUserURLs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	urls, err := sc.urlService.GetUserURLs(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list URLs",
		})
		return
	}

	c.JSON(http.StatusOK, urls)
}

// UpdateURL handles PUT /api/v1/url/:id - replaces a URL's destination
func (sc *ShortenerController) UpdateURL(c *gin.Context) {
	urlID := c.Param("id")

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	var req models.UpdateURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := sc.urlService.UpdateURL(urlID, req.URL, userID)
	if err != nil {
		sc.writeModifyError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteURL handles DELETE /api/v1/url/:id - soft-deletes a URL
func (sc *ShortenerController) DeleteURL(c *gin.Context) {
	urlID := c.Param("id")

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	if err := sc.urlService.DeleteURL(urlID, userID); err != nil {
		sc.writeModifyError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (sc *ShortenerController) writeModifyError(c *gin.Context, err error) {
	switch {
	case errs.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "URL not found",
		})
	case errs.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "You do not have permission to modify this URL",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to modify URL",
		})
	}
}
