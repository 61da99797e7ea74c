package auth

// Claims es la identidad del usuario autenticado. UserID es el owner de sus aves.
type Claims struct {
	UserID string
	Email  string
}
