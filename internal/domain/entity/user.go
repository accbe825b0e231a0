package entity

import "time"

// User credencial de operador. PasswordHash es bcrypt; nunca se guarda en plano.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
