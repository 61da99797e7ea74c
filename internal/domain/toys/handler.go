package toys

import (
	"encoding/json"
	"net/http"
	"time"

	"bird-collector/internal/middleware"
	"bird-collector/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes expone el catálogo. Cualquier usuario autenticado puede
// crear, editar o borrar toys: el catálogo no tiene dueño.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/toys", func(tr chi.Router) {
		tr.Use(middleware.RequireUser)

		tr.Get("/", listToysHandler(svc))
		tr.Post("/", createToyHandler(svc))
		tr.Get("/{toyID}", getToyHandler(svc))
		tr.Patch("/{toyID}", updateToyHandler(svc))
		tr.Delete("/{toyID}", deleteToyHandler(svc))
	})
}

type toyRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Response representa un toy del catálogo.
type Response struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func listToysHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToResponses(items))
	}
}

// createToyHandler godoc
// @Summary Crear toy
// @Description Agrega un toy al catálogo compartido.
// @Tags toys
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body toyRequest true "Nombre (<=50) y color (<=20)"
// @Success 201 {object} Response
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Router /toys [post]
func createToyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req toyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.Create(r.Context(), Input{Name: req.Name, Color: req.Color})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toToyResponse(t))
	}
}

func getToyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := svc.GetByID(r.Context(), chi.URLParam(r, "toyID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toToyResponse(t))
	}
}

func updateToyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req toyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := svc.Update(r.Context(), chi.URLParam(r, "toyID"), Input{Name: req.Name, Color: req.Color})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toToyResponse(t))
	}
}

func deleteToyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "toyID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ToResponses lo reutiliza el listado de toys de un ave.
func ToResponses(items []Toy) []Response {
	out := make([]Response, 0, len(items))
	for _, t := range items {
		out = append(out, toToyResponse(t))
	}
	return out
}

func toToyResponse(t Toy) Response {
	return Response{
		ID:        t.ID,
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, apperr.PublicMessage(err), apperr.HTTPStatus(err))
}
