package handlers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	MaxFileSize      = 5 * 1024 * 1024 // 5MB
	UploadDir        = "./uploads"
	AllowedImageExts = ".jpg,.jpeg,.png,.gif,.webp"
	AllowedAudioExts = ".mp3,.wav,.ogg,.m4a,.webm"
	AllowedFileExts  = ".pdf,.doc,.docx,.txt,.zip"
)

// UploadFile stores an uploaded file and returns the reference fields a
// voice or file message carries (filePath, fileName, fileSize,
// mimeType).
func UploadFile(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "No file uploaded",
		})
	}

	if file.Size > MaxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("File size exceeds limit of 5MB (uploaded: %.2fMB)", float64(file.Size)/(1024*1024)),
		})
	}

	// voice uploads become voice messages; everything else is a file
	// attachment
	fileType := c.Query("type", "file") // image, voice, file
	if fileType != "image" && fileType != "voice" && fileType != "file" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid file type. Must be: image, voice, or file",
		})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !isAllowedExtension(ext, fileType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("File extension %s not allowed for type %s", ext, fileType),
		})
	}

	uploadPath := filepath.Join(UploadDir, fileType+"s")
	if err := os.MkdirAll(uploadPath, 0755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create upload directory",
		})
	}

	filename := fmt.Sprintf("%s-%d%s", uuid.New().String(), time.Now().Unix(), ext)
	fullPath := filepath.Join(uploadPath, filename)

	if err := c.SaveFile(file, fullPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to save file",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"filePath": fmt.Sprintf("/uploads/%ss/%s", fileType, filename),
			"fileName": file.Filename,
			"fileSize": file.Size,
			"mimeType": getContentType(ext),
		},
	})
}

// isAllowedExtension checks if file extension is allowed for the given type
func isAllowedExtension(ext, fileType string) bool {
	switch fileType {
	case "image":
		return strings.Contains(AllowedImageExts, ext)
	case "voice":
		return strings.Contains(AllowedAudioExts, ext)
	case "file":
		return strings.Contains(AllowedFileExts, ext)
	default:
		return false
	}
}

// GetFile serves uploaded files
func GetFile(c *fiber.Ctx) error {
	fileType := c.Params("type")
	filename := c.Params("filename")

	if fileType != "images" && fileType != "voices" && fileType != "files" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid file type",
		})
	}

	filePath := filepath.Join(UploadDir, fileType, filepath.Base(filename))

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "File not found",
		})
	}

	file, err := os.Open(filePath)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to open file",
		})
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to get file info",
		})
	}

	ext := strings.ToLower(filepath.Ext(filename))
	c.Set("Content-Type", getContentType(ext))
	c.Set("Content-Length", fmt.Sprintf("%d", fileInfo.Size()))

	_, err = io.Copy(c.Response().BodyWriter(), file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to send file",
		})
	}

	return nil
}

// getContentType returns content type based on file extension
func getContentType(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".m4a":
		return "audio/mp4"
	case ".webm":
		return "audio/webm"
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	case ".zip":
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}
