// Package fiber exposes a wired soren.App over HTTP. The routes mirror the
// single-page app's needs: auth bookkeeping, the upload/generation flow, the
// Q&A flow, and the legacy player's ask-doubt passthrough. The flows are not
// auth-gated; identity only affects what the page displays.
package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/sorenlabs/soren"
)

const defaultBasePath = "/api"

type Adapter struct {
	app      *fiber.App
	soren    *soren.App
	basePath string
}

func New(app *fiber.App, s *soren.App, basePath string) *Adapter {
	if basePath == "" {
		basePath = defaultBasePath
	}
	return &Adapter{app: app, soren: s, basePath: basePath}
}

func (a *Adapter) Register() {
	api := a.app.Group(a.basePath)

	auth := api.Group("/auth")
	auth.Post("/sign-up", a.signUp)
	auth.Post("/sign-in", a.signIn)
	auth.Post("/sign-out", a.signOut)
	auth.Post("/provider", a.signInWithProvider)
	auth.Get("/session", a.session)

	api.Post("/upload", a.upload)
	api.Get("/job", a.job)
	api.Post("/job/reset", a.resetJob)

	api.Post("/doubt", a.askDoubt)
	api.Post("/doubt/clear", a.clearDoubt)

	// Legacy video-player page
	api.Post("/ask-doubt", a.askDoubtLegacy)
}
