package confirmar

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/http/middlewarectx"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/models"
	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/presenca"
)

// MockService implementa a interface Service do handler.
type MockService struct {
	mock.Mock
}

func (m *MockService) Confirmar(ctx context.Context, usuarioUID string) (models.Ciclo, error) {
	args := m.Called(ctx, usuarioUID)
	return args.Get(0).(models.Ciclo), args.Error(1)
}

func TestConfirmarHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ciclo := models.Ciclo{Horario: "18:30", Data: time.Date(2025, 6, 2, 18, 30, 0, 0, time.UTC)}

	tests := []struct {
		name           string
		usuarioUID     string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:       "confirmação com sucesso",
			usuarioUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Confirmar", mock.Anything, "uid-1").Return(ciclo, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:           "sem identificação no contexto",
			usuarioUID:     "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"sessão inválida"`,
		},
		{
			name:       "janela fechada",
			usuarioUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Confirmar", mock.Anything, "uid-1").Return(ciclo, presenca.ErrJanelaFechada)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   presenca.ErrJanelaFechada.Error(),
		},
		{
			name:       "já confirmado",
			usuarioUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Confirmar", mock.Anything, "uid-1").Return(ciclo, presenca.ErrJaConfirmado)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   presenca.ErrJaConfirmado.Error(),
		},
		{
			name:       "cadastro não ativo",
			usuarioUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Confirmar", mock.Anything, "uid-1").Return(ciclo, presenca.ErrUsuarioNaoAtivo)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   presenca.ErrUsuarioNaoAtivo.Error(),
		},
		{
			name:       "erro interno",
			usuarioUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Confirmar", mock.Anything, "uid-1").Return(ciclo, errors.New("db indisponível"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"falha ao confirmar presença"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/presenca", nil)
			if tt.usuarioUID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.usuarioUID)
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"resposta deveria conter %s, veio %s", tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
