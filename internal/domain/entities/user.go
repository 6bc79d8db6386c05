package entities

// User is the locally stored signed-in identity. The session lives in the
// durable key-value store and is scoped to one client instance.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}
