package photos

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"bird-collector/internal/middleware"
	"bird-collector/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

const (
	formField      = "photo-file"
	maxMemoryBytes = 10 << 20
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/birds/{birdID}/photos", func(pr chi.Router) {
		pr.Post("/", uploadPhotoHandler(svc))
		pr.Get("/", listPhotosHandler(svc))
	})
}

// Response representa una foto subida.
type Response struct {
	ID        string    `json:"id"`
	BirdID    string    `json:"bird_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// uploadPhotoHandler godoc
// @Summary Subir foto
// @Description Sube `photo-file` al object storage y crea la foto del ave. Sin archivo => 204 y no se crea nada.
// @Tags photos
// @Accept mpfd
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param birdID path string true "ID del ave"
// @Param photo-file formData file false "Imagen"
// @Success 201 {object} Response
// @Success 204 {string} string "sin archivo"
// @Failure 400 {string} string "validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "bird not found"
// @Failure 502 {string} string "photo upload failed"
// @Router /birds/{birdID}/photos [post]
func uploadPhotoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var (
			content  io.Reader
			filename string
		)
		switch err := r.ParseMultipartForm(maxMemoryBytes); {
		case err == nil:
			defer func() { _ = r.MultipartForm.RemoveAll() }()
			f, hdr, ferr := r.FormFile(formField)
			switch {
			case ferr == nil:
				defer f.Close()
				content, filename = f, hdr.Filename
			case errors.Is(ferr, http.ErrMissingFile):
				// sin archivo: no-op
			default:
				http.Error(w, "invalid multipart form", http.StatusBadRequest)
				return
			}
		case errors.Is(err, http.ErrNotMultipart):
			// sin archivo: no-op
		default:
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}

		res, err := svc.Ingest(r.Context(), IngestInput{
			ActorUserID: claims.UserID,
			BirdID:      chi.URLParam(r, "birdID"),
			Filename:    filename,
			Content:     content,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		if !res.Created {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusCreated, ToResponse(res.Photo))
	}
}

func listPhotosHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByBird(r.Context(), claims.UserID, chi.URLParam(r, "birdID"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]Response, 0, len(items))
		for _, p := range items {
			out = append(out, ToResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func ToResponse(p Photo) Response {
	return Response{ID: p.ID, BirdID: p.BirdID, URL: p.URL, CreatedAt: p.CreatedAt}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, apperr.PublicMessage(err), apperr.HTTPStatus(err))
}
