package photos

import (
	"encoding/hex"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxURLLen = 200

// Photo referencia un blob ya subido. Solo se crea después de un upload exitoso.
type Photo struct {
	ID     string
	BirdID string
	URL    string

	CreatedAt time.Time
}

// State es el estado de un intento de ingesta.
type State string

const (
	StateReceived      State = "RECEIVED"
	StateKeyAssigned   State = "KEY_ASSIGNED"
	StateUploading     State = "UPLOADING"
	StateUploaded      State = "UPLOADED"
	StatePersisted     State = "PERSISTED"
	StateUploadFailed  State = "UPLOAD_FAILED"
	StatePersistFailed State = "PERSIST_FAILED"
)

// Terminal indica si el intento ya no avanza.
func (s State) Terminal() bool {
	switch s {
	case StatePersisted, StateUploadFailed, StatePersistFailed:
		return true
	default:
		return false
	}
}

// NewToken devuelve 6 caracteres hex aleatorios (los primeros 3 bytes de un UUIDv4).
// No se chequean colisiones.
func NewToken() string {
	u := uuid.New()
	return hex.EncodeToString(u[:3])
}

// Extension devuelve el sufijo desde el último "." del nombre base (incluido).
// Sin punto => "".
func Extension(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return ""
	}
	return base[i:]
}

// Key arma la storage key: token + extensión del archivo original.
// funny_bird.png => "jdbw7f.png"; "README" => "jdbw7f".
func Key(token, filename string) string {
	return token + Extension(filename)
}
