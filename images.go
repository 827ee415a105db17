package folio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/eringen/folio/content"
)

const (
	maxPhotoWidth = 400
	jpegQuality   = 85
	maxUploadSize = 5 << 20 // 5MB
	uploadsSubdir = "uploads"
	photoFilename = "profile.jpg"
)

// processPhoto decodes an image, scales it down to maxPhotoWidth when wider
// and encodes it as JPEG.
func processPhoto(src io.Reader) ([]byte, image.Point, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxPhotoWidth {
		newH := h * maxPhotoWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxPhotoWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxPhotoWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, image.Point{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), image.Point{X: w, Y: h}, nil
}

type photoResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// handlePhotoUpload replaces the profile photo with the multipart "photo"
// file.
func (a *App) handlePhotoUpload(c echo.Context) error {
	if !Capabilities(c).CanEdit() {
		return a.apiFail(c, content.ErrUnauthorized)
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "No photo provided"})
	}
	if file.Size > maxUploadSize {
		return c.JSON(http.StatusBadRequest, apiError{Error: "File too large (max 5MB)"})
	}
	src, err := file.Open()
	if err != nil {
		return a.apiFail(c, err)
	}
	defer src.Close()

	data, size, err := processPhoto(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "Invalid image"})
	}

	dir := filepath.Join(a.Config.StaticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return a.apiFail(c, fmt.Errorf("create uploads dir: %w", err))
	}
	// Write then rename so readers never see a partial file.
	tmp := filepath.Join(dir, "."+photoFilename+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return a.apiFail(c, fmt.Errorf("write photo: %w", err))
	}
	if err := os.Rename(tmp, filepath.Join(dir, photoFilename)); err != nil {
		return a.apiFail(c, fmt.Errorf("replace photo: %w", err))
	}

	return c.JSON(http.StatusOK, photoResponse{
		Success: true,
		URL:     photoURL,
		Width:   size.X,
		Height:  size.Y,
	})
}

const photoURL = "/public/" + uploadsSubdir + "/" + photoFilename

// photo returns the public URL of the profile photo, or "" when none has
// been uploaded.
func (a *App) photo() string {
	if _, err := os.Stat(filepath.Join(a.Config.StaticDir, uploadsSubdir, photoFilename)); err != nil {
		return ""
	}
	return photoURL
}
