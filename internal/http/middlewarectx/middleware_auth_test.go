package middlewarectx_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/middlewarectx"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/lib/jwt"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewMaker("segredo-de-teste", time.Hour)
	logger := newNoopLogger()

	tokenValido, err := maker.GerarToken("uid-1", "silva@pm.gov.br", models.PapelUsuario)
	assert.NoError(t, err)

	outroMaker := jwt.NewMaker("outro-segredo", time.Hour)
	tokenDeOutraChave, err := outroMaker.GerarToken("uid-1", "silva@pm.gov.br", models.PapelUsuario)
	assert.NoError(t, err)

	handlerCalled := false
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		assert.Equal(t, "uid-1", r.Context().Value(middlewarectx.UserUID))
		assert.Equal(t, "silva@pm.gov.br", r.Context().Value(middlewarectx.Email))
		assert.Equal(t, models.PapelUsuario, r.Context().Value(middlewarectx.Papel))
		w.WriteHeader(http.StatusOK)
	})

	mw := middlewarectx.JWTMiddleware(maker, logger)(nextHandler)

	tests := []struct {
		name           string
		authHeader     string
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "sem cabeçalho Authorization",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "prefixo inválido",
			authHeader:     "Basic qualquercoisa",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "token adulterado",
			authHeader:     "Bearer token-invalido",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "token assinado com outra chave",
			authHeader:     "Bearer " + tokenDeOutraChave,
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "token válido",
			authHeader:     "Bearer " + tokenValido,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false

			req := httptest.NewRequest(http.MethodGet, "/qualquer", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	maker := jwt.NewMaker("segredo-de-teste", time.Hour)
	logger := newNoopLogger()

	tokenAdmin, err := maker.GerarToken("uid-adm", "adm@pm.gov.br", models.PapelAdmin)
	assert.NoError(t, err)
	tokenComum, err := maker.GerarToken("uid-1", "silva@pm.gov.br", models.PapelUsuario)
	assert.NoError(t, err)

	handlerCalled := false
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	mw := middlewarectx.JWTMiddleware(maker, logger)(
		middlewarectx.AdminOnly(logger)(nextHandler))

	tests := []struct {
		name           string
		token          string
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "administrador passa",
			token:          tokenAdmin,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "usuário comum barrado",
			token:          tokenComum,
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}
