// Package apperr define los tipos de error que cruzan los límites de los servicios.
// Cada error lleva un Kind; los handlers lo traducen a un status HTTP.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindNotFound      Kind = "not_found"
	KindUpload        Kind = "upload"
	KindPersist       Kind = "persist"
)

// Error es el error tipado del dominio.
// Op identifica la operación que lo detectó (ej: "birds.create").
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Kind, así errors.Is(err, apperr.ErrNotFound) funciona
// con cualquier *Error de ese tipo.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Msg == "" && t.Err == nil
}

var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrAuthorization = &Error{Kind: KindAuthorization}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrUpload        = &Error{Kind: KindUpload}
	ErrPersist       = &Error{Kind: KindPersist}
)

func Validation(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Msg: msg}
}

func Forbidden(op, msg string) error {
	return &Error{Kind: KindAuthorization, Op: op, Msg: msg}
}

func NotFound(op, msg string) error {
	return &Error{Kind: KindNotFound, Op: op, Msg: msg}
}

func Upload(op string, err error) error {
	return &Error{Kind: KindUpload, Op: op, Msg: "upload failed", Err: err}
}

func Persist(op string, err error) error {
	return &Error{Kind: KindPersist, Op: op, Msg: "persist failed", Err: err}
}

// KindOf devuelve el Kind del primer *Error en la cadena, o "" si no hay.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// HTTPStatus mapea un error a status HTTP. Errores sin Kind => 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUpload:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage devuelve un texto seguro para el cliente: el mensaje del
// dominio para errores de input, y algo genérico para fallas internas.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "internal error"
	}
	switch e.Kind {
	case KindValidation, KindAuthorization, KindNotFound:
		if e.Msg != "" {
			return e.Msg
		}
		return string(e.Kind)
	case KindUpload:
		return "photo upload failed"
	default:
		return "internal error"
	}
}
