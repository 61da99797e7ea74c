package birds

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"bird-collector/internal/middleware"
	"bird-collector/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/birds", func(br chi.Router) {
		br.Post("/", createBirdHandler(svc))
		br.Get("/", listBirdsHandler(svc))

		// Solo el dueño puede ver/editar/borrar
		br.Get("/{birdID}", getBirdHandler(svc))
		br.Patch("/{birdID}", updateBirdHandler(svc))
		br.Delete("/{birdID}", deleteBirdHandler(svc))
	})

	// Borrar todas mis aves (cuando el usuario se da de baja)
	r.Delete("/me/birds", deleteMyBirdsHandler(svc))
}

// createBirdRequest es el cuerpo para registrar un ave.
type createBirdRequest struct {
	Name        string `json:"name"`
	Breed       string `json:"breed"`
	Description string `json:"description"`
	Age         int    `json:"age"`
}

// updateBirdRequest no incluye name: con DisallowUnknownFields un "name" en el body da 400.
type updateBirdRequest struct {
	Breed       *string `json:"breed"`
	Description *string `json:"description"`
	Age         *int    `json:"age"`
}

// Response representa un ave devuelta por la API. La reutiliza el detalle.
type Response struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Description string    `json:"description"`
	Age         int       `json:"age"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type deleteMyBirdsResponse struct {
	Deleted int `json:"deleted"`
}

// createBirdHandler godoc
// @Summary Registrar ave
// @Description Crea un ave cuyo dueño es el usuario autenticado. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags birds
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body createBirdRequest true "Datos del ave"
// @Success 201 {object} Response
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Router /birds [post]
func createBirdHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createBirdRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		b, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			Description: req.Description,
			Age:         req.Age,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(b))
	}
}

func listBirdsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]Response, 0, len(items))
		for _, b := range items {
			out = append(out, ToResponse(b))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getBirdHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		b, err := svc.Authorize(r.Context(), claims.UserID, chi.URLParam(r, "birdID"))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ToResponse(b))
	}
}

// updateBirdHandler godoc
// @Summary Actualizar ave
// @Description Actualiza breed, description y/o age. El nombre no se puede cambiar: enviar `name` devuelve 400.
// @Tags birds
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param birdID path string true "ID del ave"
// @Param payload body updateBirdRequest true "Campos a actualizar"
// @Success 200 {object} Response
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "bird not found"
// @Router /birds/{birdID} [patch]
func updateBirdHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateBirdRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "birdID"), UpdateInput{
			Breed:       req.Breed,
			Description: req.Description,
			Age:         req.Age,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ToResponse(updated))
	}
}

func deleteBirdHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "birdID")); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteMyBirdsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		n, err := svc.DeleteAllForOwner(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, deleteMyBirdsResponse{Deleted: n})
	}
}

func ToResponse(b Bird) Response {
	return Response{
		ID:          b.ID,
		OwnerUserID: b.OwnerUserID,
		Name:        b.Name,
		Breed:       b.Breed,
		Description: b.Description,
		Age:         b.Age,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// writeJSON/writeError están duplicados intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, apperr.PublicMessage(err), apperr.HTTPStatus(err))
}
