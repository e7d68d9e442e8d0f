// Package models defines the core data structures shared by the client
// library and the API server.
package models

// Product represents a catalog item. The ID is assigned by the server
// and ignored on create.
type Product struct {
	// ID is the server-assigned unique identifier.
	ID int64 `json:"id"`
	// Name is the display name of the product.
	Name string `json:"name"`
	// Price is the price in minor currency units (not fractional).
	Price int64 `json:"price"`
	// Description holds free-form product details.
	Description string `json:"description"`
}

// LoginRequest is the JSON payload for POST /api/auth/signin.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the JSON body returned on successful sign-in.
type LoginResponse struct {
	// ID is the authenticated user's identifier.
	ID int64 `json:"id"`
	// Token is an opaque bearer credential.
	Token string `json:"token"`
}

// RegistrationRequest is the JSON payload for POST /api/auth/signup.
type RegistrationRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	// SecretResponse is a placeholder field the server accepts but does
	// not validate.
	SecretResponse string `json:"secretResponse"`
}

// RegistrationResponse is the JSON body returned on successful sign-up.
type RegistrationResponse struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`
}

// SessionUser is the minimal local record of the authenticated user,
// written as a side effect of login/registration.
type SessionUser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User represents an application user as stored by the server.
type User struct {
	// ID is the unique identifier for the user.
	ID int64
	// Username is the login name chosen by the user.
	Username string
	// Email is the address supplied at registration.
	Email string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte
}
