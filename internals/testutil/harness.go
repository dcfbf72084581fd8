// Package testutil drives the full HTTP stack against a SQLite database.
package testutil

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"copo_backend/internals/constants"
	previewService "copo_backend/internals/features/exams/exam_preview/service"
	generationService "copo_backend/internals/features/exams/question_generation/service"
	authModel "copo_backend/internals/features/users/auth/model"
	authService "copo_backend/internals/features/users/auth/service"
	routes "copo_backend/internals/route"
	"copo_backend/internals/testutil/testdb"
)

const Password = "s3cret-pass"

type Harness struct {
	T         testing.TB
	DB        *gorm.DB
	App       *fiber.App
	Tokens    authService.TokenIssuer
	Renderer  *FakeRenderer
	Generator *FakeGenerator
}

type Option func(*routes.Deps)

func WithGoogle(v authService.GoogleVerifier, clientID string) Option {
	return func(d *routes.Deps) {
		d.Google = v
		d.GoogleClientID = clientID
	}
}

func WithDB(db *gorm.DB) Option {
	return func(d *routes.Deps) { d.DB = db }
}

// New wires the app exactly as main does, with fakes for LaTeX and the LLM.
func New(t testing.TB, opts ...Option) *Harness {
	t.Helper()
	h := &Harness{
		T:         t,
		Tokens:    authService.NewTokenIssuer("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour),
		Renderer:  &FakeRenderer{},
		Generator: &FakeGenerator{},
	}
	d := routes.Deps{
		Log:       zap.NewNop(),
		Env:       "test",
		Tokens:    h.Tokens,
		Renderer:  h.Renderer,
		Generator: h.Generator,
	}
	for _, o := range opts {
		o(&d)
	}
	if d.DB == nil {
		d.DB = testdb.New(t)
	}
	h.DB = d.DB
	h.App = routes.NewApp(d, routes.AppOpts{RequestTimeout: 30 * time.Second})
	return h
}

/* =========================================================
   Accounts
   ========================================================= */

// User inserts an active account with Password.
func (h *Harness) User(userName, role string, facultyID *uint) authModel.UserModel {
	h.T.Helper()
	hash, err := authService.HashPassword(Password)
	if err != nil {
		h.T.Fatalf("hash: %v", err)
	}
	u := authModel.UserModel{
		UserName:  userName,
		Email:     userName + "@copo.test",
		Password:  hash,
		Role:      role,
		IsActive:  true,
		FacultyID: facultyID,
	}
	if err := h.DB.Create(&u).Error; err != nil {
		h.T.Fatalf("create user: %v", err)
	}
	return u
}

func (h *Harness) TokenFor(u authModel.UserModel) string {
	h.T.Helper()
	tok, _, err := h.Tokens.IssueAccess(u)
	if err != nil {
		h.T.Fatalf("issue access: %v", err)
	}
	return tok
}

// AdminToken creates an admin on first use.
func (h *Harness) AdminToken() string {
	h.T.Helper()
	var u authModel.UserModel
	if err := h.DB.Where("user_name = ?", "admin").First(&u).Error; err != nil {
		u = h.User("admin", constants.RoleAdmin, nil)
	}
	return h.TokenFor(u)
}

func (h *Harness) TeacherToken() string {
	h.T.Helper()
	var u authModel.UserModel
	if err := h.DB.Where("user_name = ?", "teacher").First(&u).Error; err != nil {
		u = h.User("teacher", constants.RoleTeacher, nil)
	}
	return h.TokenFor(u)
}

/* =========================================================
   Requests
   ========================================================= */

type Response struct {
	Status int
	Header http.Header
	Raw    []byte
	Body   map[string]any
}

// Data is the "data" member of the envelope as a map.
func (r Response) Data() map[string]any {
	m, _ := r.Body["data"].(map[string]any)
	return m
}

func (r Response) List() []any {
	l, _ := r.Body["data"].([]any)
	return l
}

// Errors is the field-keyed validation map.
func (r Response) Errors() map[string]any {
	m, _ := r.Body["errors"].(map[string]any)
	return m
}

func (h *Harness) send(req *http.Request, token string) Response {
	h.T.Helper()
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	res, err := h.App.Test(req, -1)
	if err != nil {
		h.T.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer res.Body.Close()
	raw, _ := io.ReadAll(res.Body)
	out := Response{Status: res.StatusCode, Header: res.Header, Raw: raw}
	if len(raw) > 0 && raw[0] == '{' {
		_ = sonic.Unmarshal(raw, &out.Body)
	}
	return out
}

// Do sends body as JSON (nil for none).
func (h *Harness) Do(method, path, token string, body any) Response {
	h.T.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := sonic.Marshal(body)
		if err != nil {
			h.T.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return h.send(req, token)
}

// Upload posts a multipart form with one file under field.
func (h *Harness) Upload(path, token, field, filename string, content []byte, fields map[string]string) Response {
	h.T.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if filename != "" {
		fw, err := w.CreateFormFile(field, filename)
		if err != nil {
			h.T.Fatalf("form file: %v", err)
		}
		_, _ = fw.Write(content)
	}
	_ = w.Close()
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return h.send(req, token)
}

// ID reads a numeric id out of a decoded JSON object.
func ID(m map[string]any) uint {
	switch v := m["id"].(type) {
	case float64:
		return uint(v)
	case int64:
		return uint(v)
	}
	return 0
}

func Path(parts ...any) string {
	var b bytes.Buffer
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			b.WriteString(v)
		case uint:
			b.WriteString(strconv.FormatUint(uint64(v), 10))
		case int:
			b.WriteString(strconv.Itoa(v))
		}
	}
	return b.String()
}

/* =========================================================
   Fakes
   ========================================================= */

// FakeRenderer records the last paper and returns a fixed image.
type FakeRenderer struct {
	Last  *previewService.PaperInput
	Err   error
	Calls int
}

func (f *FakeRenderer) Render(_ context.Context, in previewService.PaperInput) (previewService.PreviewImage, error) {
	f.Calls++
	f.Last = &in
	if f.Err != nil {
		return previewService.PreviewImage{}, f.Err
	}
	mime := "image/png"
	if in.Format == previewService.FormatWebP {
		mime = "image/webp"
	}
	return previewService.PreviewImage{Data: []byte("fake-image"), MimeType: mime}, nil
}

type FakeGenerator struct {
	Questions []generationService.GeneratedQuestion
	Err       error
	LastInput generationService.GenerateInput
}

func (f *FakeGenerator) Generate(_ context.Context, in generationService.GenerateInput) ([]generationService.GeneratedQuestion, error) {
	f.LastInput = in
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Questions, nil
}

// FakeGoogle maps id tokens to verified emails.
type FakeGoogle map[string]string

func (g FakeGoogle) VerifyEmail(idToken, _ string) (string, error) {
	if e, ok := g[idToken]; ok {
		return e, nil
	}
	return "", authService.ErrGoogleToken
}
