package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JarkkoKarki/Web-Project-Backend/utils"
)

const maxUploadSize = 10 << 20 // 10MB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "public/uploads"
}

// FileUpload saves an optional multipart "file" field to the upload
// directory under a random name, generates its thumbnail synchronously
// and exposes the stored name to the handler as "filename". Requests
// without a file pass through untouched.
func FileUpload() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			c.Next()
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			// No file attached; the rest of the form is still usable.
			c.Next()
			return
		}

		if file.Size > maxUploadSize {
			utils.RespondError(c, http.StatusBadRequest, errors.New("file too large"))
			c.Abort()
			return
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExts[ext] {
			utils.RespondError(c, http.StatusBadRequest, errors.New("unsupported file type"))
			c.Abort()
			return
		}

		dir := UploadDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, errors.New("error creating upload directory"))
			c.Abort()
			return
		}

		filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
		dst := filepath.Join(dir, filename)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, errors.New("error saving file"))
			c.Abort()
			return
		}

		if _, err := utils.CreateThumbnail(dst); err != nil {
			os.Remove(dst)
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("error processing image: %w", err))
			c.Abort()
			return
		}

		c.Set("filename", filename)
		c.Next()
	}
}
