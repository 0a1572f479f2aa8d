package fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/sorenlabs/soren"
	"github.com/sorenlabs/soren/backend"
)

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *Adapter) signUp(c fiber.Ctx) error {
	var req signUpRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	session, err := a.soren.Sessions.SignUp(req.Name, req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"session": session})
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *Adapter) signIn(c fiber.Ctx) error {
	var req signInRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	session, err := a.soren.Sessions.SignIn(req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"session": session})
}

type providerRequest struct {
	Provider string `json:"provider"`
	Token    string `json:"token"`
}

func (a *Adapter) signInWithProvider(c fiber.Ctx) error {
	var req providerRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	session, err := a.soren.Sessions.SignInWithProvider(req.Provider, req.Token)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"session": session})
}

func (a *Adapter) signOut(c fiber.Ctx) error {
	if err := a.soren.Sessions.SignOut(); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "signed out"})
}

func (a *Adapter) session(c fiber.Ctx) error {
	session, err := a.soren.Sessions.Current()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"session": session})
}

func (a *Adapter) upload(c fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "missing file"})
	}
	file, err := header.Open()
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "unreadable file"})
	}
	defer file.Close()

	job, err := a.soren.Generation.Submit(c.Context(), soren.FileUpload{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Data:        file,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"job": job})
}

func (a *Adapter) job(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"job": a.soren.Generation.Job()})
}

func (a *Adapter) resetJob(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"job": a.soren.Generation.Reset()})
}

type doubtRequest struct {
	Question  string  `json:"question"`
	Timestamp float64 `json:"timestamp"`
}

func (a *Adapter) askDoubt(c fiber.Ctx) error {
	var req doubtRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	exchange, err := a.soren.QA.Ask(c.Context(), req.Question, req.Timestamp)
	if err != nil {
		return fail(c, err)
	}
	if exchange == nil {
		// Blank question: deliberate no-op.
		return c.SendStatus(http.StatusNoContent)
	}
	return c.JSON(fiber.Map{"exchange": exchange})
}

func (a *Adapter) clearDoubt(c fiber.Ctx) error {
	a.soren.QA.Clear()
	return c.SendStatus(http.StatusNoContent)
}

func (a *Adapter) askDoubtLegacy(c fiber.Ctx) error {
	var req backend.LegacyDoubtRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	answer, err := a.soren.Backend.AskDoubtLegacy(c.Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"answer": answer})
}
