package feedings

import (
	"strings"
	"time"

	"bird-collector/internal/platform/apperr"
)

const DateLayout = "2006-01-02"

// Meal es el turno de la comida. Enum cerrado; se guarda como código de una letra.
type Meal string

const (
	MealBreakfast Meal = "B"
	MealLunch     Meal = "L"
	MealDinner    Meal = "D"

	DefaultMeal = MealBreakfast
)

var mealLabels = map[Meal]string{
	MealBreakfast: "Breakfast",
	MealLunch:     "Lunch",
	MealDinner:    "Dinner",
}

func (m Meal) Label() string { return mealLabels[m] }

func (m Meal) Valid() bool {
	_, ok := mealLabels[m]
	return ok
}

// ParseMeal acepta el código ("B") o la etiqueta ("breakfast").
// Vacío => DefaultMeal.
func ParseMeal(s string) (Meal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultMeal, nil
	}
	if m := Meal(strings.ToUpper(s)); m.Valid() {
		return m, nil
	}
	for m, label := range mealLabels {
		if strings.EqualFold(label, s) {
			return m, nil
		}
	}
	return "", apperr.Validation("feedings.meal", "meal must be one of B, L, D")
}

// ParseDate valida una fecha de calendario YYYY-MM-DD (rechaza 2024-02-30).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperr.Validation("feedings.date", "date must be YYYY-MM-DD")
	}
	return t, nil
}

// Feeding es una comida registrada para un ave.
type Feeding struct {
	ID     string
	BirdID string

	Date time.Time // solo fecha, medianoche UTC
	Meal Meal

	CreatedAt time.Time
}

func NewFeeding(birdID string, date time.Time, meal Meal) (Feeding, error) {
	birdID = strings.TrimSpace(birdID)
	if birdID == "" {
		return Feeding{}, apperr.Validation("feedings.create", "bird required")
	}
	if date.IsZero() {
		return Feeding{}, apperr.Validation("feedings.create", "date required")
	}
	if meal == "" {
		meal = DefaultMeal
	}
	if !meal.Valid() {
		return Feeding{}, apperr.Validation("feedings.create", "meal must be one of B, L, D")
	}
	return Feeding{
		BirdID: birdID,
		Date:   truncateDate(date),
		Meal:   meal,
	}, nil
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
