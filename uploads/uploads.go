package uploads

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"roost/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const maxPhotosPerRequest = 100

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Handler stores listing photos on the local file store.
type Handler struct {
	Dir    string
	client *http.Client
}

func NewHandler(dir string) *Handler {
	return &Handler{
		Dir:    dir,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// ByLink handles POST /upload-link: downloads a remote image, re-encodes
// it, and stores it as photo<millis>.jpg.
func (h *Handler) ByLink(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Link string `json:"link"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Link == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid link")
		return
	}

	resp, err := h.client.Get(input.Link)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		utils.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("download failed: %s", resp.Status))
		return
	}

	img, err := imaging.Decode(resp.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Link does not point to an image")
		return
	}

	newName := fmt.Sprintf("photo%d.jpg", time.Now().UnixMilli())
	if err := os.MkdirAll(h.Dir, 0755); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}
	if err := imaging.Save(img, filepath.Join(h.Dir, newName), imaging.JPEGQuality(90)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}
	h.saveThumb(img, newName)

	utils.RespondWithJSON(w, http.StatusOK, newName)
}

// Photos handles POST /upload: multipart field "photos", at most 100
// files per request, each stored under a fresh name with its extension
// kept. A request over the limit is rejected whole.
func (h *Handler) Photos(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	files := r.MultipartForm.File["photos"]
	if len(files) > maxPhotosPerRequest {
		utils.RespondWithError(w, http.StatusBadRequest, "Too many files")
		return
	}

	if err := os.MkdirAll(h.Dir, 0755); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store photos")
		return
	}

	uploaded := []string{}
	for _, header := range files {
		ext := strings.ToLower(filepath.Ext(utils.SanitizeFilename(header.Filename)))
		if !allowedExtensions[ext] {
			utils.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("unsupported file type %q", ext))
			return
		}

		src, err := header.Open()
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Failed to read upload")
			return
		}

		newName := uuid.NewString() + ext
		dst, err := os.Create(filepath.Join(h.Dir, newName))
		if err != nil {
			src.Close()
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store photos")
			return
		}
		_, err = io.Copy(dst, src)
		src.Close()
		dst.Close()
		if err != nil {
			os.Remove(filepath.Join(h.Dir, newName))
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store photos")
			return
		}

		if img, err := imaging.Open(filepath.Join(h.Dir, newName)); err == nil {
			h.saveThumb(img, newName)
		}
		uploaded = append(uploaded, newName)
	}

	utils.RespondWithJSON(w, http.StatusOK, uploaded)
}

// saveThumb writes a 300x200 thumbnail next to the original. Thumbnails
// are best-effort; a failure never fails the upload.
func (h *Handler) saveThumb(img image.Image, name string) {
	thumbDir := filepath.Join(h.Dir, "thumbs")
	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		log.Printf("thumb dir: %v", err)
		return
	}
	thumb := imaging.Thumbnail(img, 300, 200, imaging.Lanczos)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if err := imaging.Save(thumb, filepath.Join(thumbDir, base+".jpg"), imaging.JPEGQuality(85)); err != nil {
		log.Printf("thumb save %s: %v", name, err)
	}
}
