package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// UploadRoot is the server-controlled directory uploaded files land in.
// Files are referenced in the database by their path relative to it.
var UploadRoot = "public"

// SaveUpload writes a multipart file under UploadRoot/<subdir> with a
// name derived from the owner and the current time, and returns the
// relative URL path to store in the database.
func SaveUpload(c *fiber.Ctx, file *multipart.FileHeader, subdir, owner string) (string, error) {
	ext := filepath.Ext(file.Filename)
	safeOwner := strings.ReplaceAll(owner, string(os.PathSeparator), "_")
	fileName := fmt.Sprintf("%s_%d%s", safeOwner, time.Now().UnixNano(), ext)

	dir := filepath.Join(UploadRoot, "uploads", subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	if err := c.SaveFile(file, filepath.Join(dir, fileName)); err != nil {
		return "", err
	}

	return "/uploads/" + subdir + "/" + fileName, nil
}
