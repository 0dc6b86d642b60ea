package models

// User representa la tabla users: el nombre de usuario es la clave
type User struct {
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}
