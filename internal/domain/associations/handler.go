package associations

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"bird-collector/internal/domain/birds"
	"bird-collector/internal/domain/feedings"
	"bird-collector/internal/domain/photos"
	"bird-collector/internal/domain/toys"
	"bird-collector/internal/middleware"
	"bird-collector/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/birds/{birdID}/toys", func(tr chi.Router) {
		tr.Get("/", listBirdToysHandler(svc))
		tr.Post("/{toyID}", addToyHandler(svc))
		tr.Delete("/{toyID}", removeToyHandler(svc))
	})

	r.Route("/birds/{birdID}/feedings", func(fr chi.Router) {
		fr.Post("/", addFeedingHandler(svc))
		fr.Get("/", listFeedingsHandler(svc))
	})

	r.Get("/birds/{birdID}/detail", birdDetailHandler(svc))
}

type feedingRequest struct {
	Date string `json:"date"`
	Meal string `json:"meal"`
}

type feedingResponse struct {
	ID        string    `json:"id"`
	BirdID    string    `json:"bird_id"`
	Date      string    `json:"date"`
	Meal      string    `json:"meal"`
	MealLabel string    `json:"meal_label"`
	CreatedAt time.Time `json:"created_at"`
}

type detailResponse struct {
	Bird          birds.Response    `json:"bird"`
	Toys          []toys.Response   `json:"toys"`
	AvailableToys []toys.Response   `json:"available_toys"`
	Feedings      []feedingResponse `json:"feedings"`
	Photos        []photos.Response `json:"photos"`
}

func actor(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

// addToyHandler godoc
// @Summary Asociar toy
// @Description Asocia un toy del catálogo al ave. Idempotente.
// @Tags associations
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param birdID path string true "ID del ave"
// @Param toyID path string true "ID del toy"
// @Success 204 {string} string "ok"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "bird/toy not found"
// @Router /birds/{birdID}/toys/{toyID} [post]
func addToyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := actor(w, r)
		if !ok {
			return
		}
		if err := svc.AddToy(r.Context(), uid, chi.URLParam(r, "birdID"), chi.URLParam(r, "toyID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func removeToyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := actor(w, r)
		if !ok {
			return
		}
		if err := svc.RemoveToy(r.Context(), uid, chi.URLParam(r, "birdID"), chi.URLParam(r, "toyID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listBirdToysHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := actor(w, r)
		if !ok {
			return
		}
		items, err := svc.ListToys(r.Context(), uid, chi.URLParam(r, "birdID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toys.ToResponses(items))
	}
}

// addFeedingHandler godoc
// @Summary Registrar comida
// @Description Agrega una feeding al ave. meal: B, L o D (default B).
// @Tags associations
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param birdID path string true "ID del ave"
// @Param payload body feedingRequest true "Fecha YYYY-MM-DD y meal"
// @Success 201 {object} feedingResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "bird not found"
// @Router /birds/{birdID}/feedings [post]
func addFeedingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := actor(w, r)
		if !ok {
			return
		}

		var req feedingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		f, err := svc.AddFeeding(r.Context(), uid, chi.URLParam(r, "birdID"), FeedingInput{Date: req.Date, Meal: req.Meal})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toFeedingResponse(f))
	}
}

func listFeedingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := actor(w, r)
		if !ok {
			return
		}
		items, err := svc.ListFeedings(r.Context(), uid, chi.URLParam(r, "birdID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toFeedingResponses(items))
	}
}

func birdDetailHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := actor(w, r)
		if !ok {
			return
		}
		d, err := svc.Detail(r.Context(), uid, chi.URLParam(r, "birdID"))
		if err != nil {
			writeError(w, err)
			return
		}

		out := detailResponse{
			Bird:          birds.ToResponse(d.Bird),
			Toys:          toys.ToResponses(d.Toys),
			AvailableToys: toys.ToResponses(d.AvailableToys),
			Feedings:      toFeedingResponses(d.Feedings),
			Photos:        make([]photos.Response, 0, len(d.Photos)),
		}
		for _, p := range d.Photos {
			out.Photos = append(out.Photos, photos.ToResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toFeedingResponses(items []feedings.Feeding) []feedingResponse {
	out := make([]feedingResponse, 0, len(items))
	for _, f := range items {
		out = append(out, toFeedingResponse(f))
	}
	return out
}

func toFeedingResponse(f feedings.Feeding) feedingResponse {
	return feedingResponse{
		ID:        f.ID,
		BirdID:    f.BirdID,
		Date:      f.Date.Format(feedings.DateLayout),
		Meal:      string(f.Meal),
		MealLabel: f.Meal.Label(),
		CreatedAt: f.CreatedAt,
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
