package server

// HTTPError is the unified error body returned by the API.
type HTTPError struct {
	Error string `json:"error"`
}

// AuthSignupRequest is the signup payload.
type AuthSignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthLoginRequest is the login payload.
type AuthLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the signed JWT.
type TokenResponse struct {
	Token string `json:"token"`
}

// CreateChatRequest names a new conversation.
type CreateChatRequest struct {
	Name string `json:"name"`
}

// StreamRequest is one turn of the streaming chat protocol. Input is the
// new user text, or the skip-routing literal when the user is answering a
// prior clarification. MessageHistory is the JSON-serialized bounded
// history returned by the previous turn's complete event; empty on the
// first turn.
type StreamRequest struct {
	Input          string `json:"input"`
	MessageHistory string `json:"messageHistory"`
}
