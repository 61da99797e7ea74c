package blobstore

import (
	"context"
	"io"
)

// Store sube contenido a un object storage externo.
type Store interface {
	// URL devuelve la URL de recuperación para bucket/key, sin subir nada.
	URL(bucket, key string) string

	// Put sube content bajo bucket/key y devuelve la URL de recuperación.
	// No reintenta: cualquier falla de transporte se devuelve tal cual.
	Put(ctx context.Context, bucket, key string, content io.Reader) (string, error)
}

// RetrievalURL arma <baseURL><bucket>/<key>. baseURL incluye la barra final.
func RetrievalURL(baseURL, bucket, key string) string {
	return baseURL + bucket + "/" + key
}
