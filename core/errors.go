package core

import "errors"

// Account errors
var (
	ErrDuplicateAccount  = errors.New("an account with this email already exists") // 409 Conflict
	ErrAccountNotFound   = errors.New("no account found with this email")          // 404 Not Found
	ErrInvalidCredential = errors.New("incorrect password")                        // 401 Unauthorized
	ErrMalformedToken    = errors.New("identity token could not be decoded")       // 400
	ErrUnknownProvider   = errors.New("unknown identity provider")                 // 400
)

// Validation errors (client input)
var (
	ErrNameRequired     = errors.New("name is required")     // 400
	ErrEmailRequired    = errors.New("email is required")    // 400
	ErrPasswordRequired = errors.New("password is required") // 400
	ErrPasswordTooShort = errors.New("password is too short") // 400
)

// Generation errors
var (
	ErrUnsupportedFileType = errors.New("only PDF files are supported") // 400
	ErrUploadRejected      = errors.New("upload rejected by backend")
	ErrNoActiveVideo       = errors.New("no generated video is active") // 409
)

// Q&A / backend errors
var (
	ErrContextUnavailable = errors.New("could not load context from backend")
	ErrAnswerFailed       = errors.New("failed to get answer")
	ErrBackendUnreachable = errors.New("could not reach backend server")
)

// Config errors (wiring-time)
var (
	ErrStoreRequired   = errors.New("account store is required")
	ErrBackendRequired = errors.New("backend URL is required")
	ErrUnknownMode     = errors.New("unknown generation mode")
	ErrUnknownStore    = errors.New("unknown account store kind")
)
