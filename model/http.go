package model

type DecodeResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
