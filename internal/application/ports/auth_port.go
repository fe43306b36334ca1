package ports

// AuthProvider define el puerto para credenciales y tokens de sesión.
// La aplicación nunca ve contraseñas hasheadas ni firma tokens por su cuenta.
type AuthProvider interface {
	// Hash produce la credencial opaca a persistir.
	Hash(password string) (string, error)
	// Verify compara la contraseña en claro con la credencial almacenada.
	Verify(password, credential string) bool
	// IssueToken emite un token con validez limitada para el comercio.
	IssueToken(merchantID string) (string, error)
	// ResolveToken devuelve el comercio del token, o domain.ErrTokenExpired / domain.ErrTokenInvalid.
	ResolveToken(token string) (string, error)
}
