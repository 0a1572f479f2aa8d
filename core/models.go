package core

import (
	"io"
	"time"
)

// Account is a durable registered-identity record. Direct sign-up accounts
// carry an Argon2id password hash and an empty Provider; federated accounts
// carry the provider name and subject id instead and are keyed by
// (Email, Provider). Accounts are created once and never updated or deleted.
//
// The stored representation includes the password hash: the account list is
// persisted as one JSON value under the "registeredUsers" key.
type Account struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Password        string    `json:"password,omitempty"`
	Picture         string    `json:"picture,omitempty"`
	Provider        string    `json:"provider,omitempty"`
	ProviderSubject string    `json:"providerSubject,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Direct reports whether the account was created through the email/password
// path rather than a federated provider.
func (a Account) Direct() bool {
	return a.Provider == ""
}

// Session is the currently authenticated identity, without secrets.
// At most one session is active per store; it lives under the
// "currentUser" key.
type Session struct {
	UserID    string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Picture   string    `json:"picture,omitempty"`
	Provider  string    `json:"provider,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// IdentityAssertion is the decoded identity carried by a federated provider
// token. Values are produced only by an IdentityVerifier; application logic
// never decodes raw tokens.
type IdentityAssertion struct {
	Provider string
	Subject  string
	Email    string
	Name     string
	Picture  string
}

// JobState is the lifecycle state of a generation job.
type JobState string

const (
	JobInitial JobState = "initial"
	JobLoading JobState = "loading"
	JobSuccess JobState = "success"
)

// GenerationJob is the client-visible state of turning an uploaded document
// into a video. Exactly one job is live per GenerationFlow; it is ephemeral
// and never persisted.
type GenerationJob struct {
	State    JobState `json:"state"`
	FileName string   `json:"fileName,omitempty"`
	FileSize int64    `json:"fileSizeBytes,omitempty"`
	Stage    string   `json:"stageLabel,omitempty"`
	Progress int      `json:"progressPercent"`
	VideoURL string   `json:"videoUrl,omitempty"`
	VideoID  string   `json:"videoId,omitempty"`
}

// FileUpload is a document submitted for generation.
type FileUpload struct {
	Name        string
	Size        int64
	ContentType string
	Data        io.Reader
}

// GenerationResult is what a strategy produces on success.
type GenerationResult struct {
	VideoURL string
	VideoID  string
}

// DocumentRoute maps an uploaded document to its generated artifacts and the
// context material the Q&A backend needs.
type DocumentRoute struct {
	VideoPath    string
	VideoID      string
	ContextPDF   string
	ContextCode  string
	OutputFolder string
}

// DocumentContext is the source material resolved from the backend before a
// question is answered.
type DocumentContext struct {
	PDFText   string `json:"pdf_text"`
	ManimCode string `json:"manim_code"`
}

// ContextRequest keys a context lookup by the routed document identity.
type ContextRequest struct {
	Question     string `json:"question"`
	PDFName      string `json:"pdf_name"`
	OutputFolder string `json:"output_folder"`
	VideoID      string `json:"video_id"`
}

// DoubtRequest is one question about the current video.
type DoubtRequest struct {
	Question     string
	VideoID      string
	Timestamp    float64
	Context      DocumentContext
	PDFName      string
	OutputFolder string
}

// Answer is a successful backend response to a question.
type Answer struct {
	Text        string   `json:"text"`
	Sources     []string `json:"sources,omitempty"`
	ContextUsed string   `json:"contextUsed,omitempty"`
}

// QAExchange is one question/answer round scoped to a successful generation
// job. Err holds the user-facing failure message when the round failed;
// Answer and Err are mutually exclusive.
type QAExchange struct {
	Question string  `json:"question"`
	Answer   *Answer `json:"answer,omitempty"`
	Err      string  `json:"error,omitempty"`
}
