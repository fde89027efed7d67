package cadastro

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rota-presenca-supabase/rota-presenca-supabase/internal/services/auth"
)

// MockService implementa a interface Service do handler.
type MockService struct {
	mock.Mock
}

func (m *MockService) Cadastrar(ctx context.Context, c auth.Cadastro) (string, error) {
	args := m.Called(ctx, c)
	return args.String(0), args.Error(1)
}

const corpoValido = `{
	"nome": "Silva",
	"email": "silva@pm.gov.br",
	"telefone": "11999990000",
	"graduacao": "SD",
	"lotacao": "1ª CIA",
	"origem": "CAES",
	"senha": "senha123"
}`

func TestCadastroHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "cadastro criado",
			body: corpoValido,
			setupMock: func(m *MockService) {
				m.On("Cadastrar", mock.Anything, mock.MatchedBy(func(c auth.Cadastro) bool {
					return c.Email == "silva@pm.gov.br" && c.Graduacao == "SD"
				})).Return("uid-novo", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"uid":"uid-novo"`,
		},
		{
			name:           "json inválido",
			body:           `{nome`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"corpo da requisição inválido"`,
		},
		{
			name:           "campos obrigatórios ausentes",
			body:           `{"email":"silva@pm.gov.br"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "obrigatório",
		},
		{
			name: "email ou telefone duplicados",
			body: corpoValido,
			setupMock: func(m *MockService) {
				m.On("Cadastrar", mock.Anything, mock.Anything).
					Return("", auth.ErrDuplicado)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   auth.ErrDuplicado.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/cadastro", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"resposta deveria conter %s, veio %s", tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
