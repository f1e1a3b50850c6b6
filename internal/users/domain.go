package users

// User represents an account able to authenticate against the API.
// Password holds a bcrypt hash and is never serialized.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Email    string `db:"email" json:"email"`
	Password string `db:"password" json:"-"`
}
