package product

import (
	"net/http"
	"strings"

	"drinkmate_backend/internal/services"

	"github.com/gin-gonic/gin"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

//
// POST /api/admin/images?folder=products: multipart upload to MinIO,
// returns the public URL to put on the resource.
//
func UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image file required"})
		return
	}
	if file.Size > 5<<20 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image must be under 5 MB"})
		return
	}
	if !allowedImageTypes[file.Header.Get("Content-Type")] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only JPEG, PNG and WebP are accepted"})
		return
	}

	folder := strings.TrimSpace(c.DefaultQuery("folder", "products"))
	switch folder {
	case "products", "categories", "blog", "recipes":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown folder"})
		return
	}

	url, err := services.UploadImage(folder, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Upload failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "url": url})
}
