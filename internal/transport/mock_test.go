package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-assistant/internal/domain"
	"catalog-assistant/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type mockCatalogService struct {
	topSelling []*domain.TopSellingProduct
	stock      []*domain.ProductStock
	products   []*domain.Product
	stats      *domain.CollectionStats
	err        error

	lastLimit  int
	lastName   string
	lastSearch repository.SearchParams
}

func (m *mockCatalogService) TopSelling(ctx context.Context, limit int) ([]*domain.TopSellingProduct, error) {
	m.lastLimit = limit
	return m.topSelling, m.err
}

func (m *mockCatalogService) ProductStock(ctx context.Context, name string) ([]*domain.ProductStock, error) {
	m.lastName = name
	if m.err != nil {
		return nil, m.err
	}
	if len(m.stock) == 0 {
		return nil, repository.ErrProductNotFound
	}
	return m.stock, nil
}

func (m *mockCatalogService) SearchProducts(ctx context.Context, params repository.SearchParams) ([]*domain.Product, error) {
	m.lastSearch = params
	return m.products, m.err
}

func (m *mockCatalogService) Stats(ctx context.Context) (*domain.CollectionStats, error) {
	return m.stats, m.err
}

type mockOrderService struct {
	details map[int64]*domain.OrderDetail
	err     error
}

func (m *mockOrderService) GetOrderDetail(ctx context.Context, orderID int64) (*domain.OrderDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	d, ok := m.details[orderID]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return d, nil
}

type mockChatService struct {
	sessions map[string]*domain.ConversationSession
	messages []*domain.Message
	err      error
}

func newMockChatService() *mockChatService {
	return &mockChatService{sessions: make(map[string]*domain.ConversationSession)}
}

func (m *mockChatService) CreateSession(ctx context.Context, userID, sessionID string) (*domain.ConversationSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	if sessionID == "" {
		sessionID = "sess-generated"
	}
	if _, exists := m.sessions[sessionID]; exists {
		return nil, repository.ErrSessionExists
	}
	s := &domain.ConversationSession{SessionID: sessionID, UserID: userID}
	m.sessions[sessionID] = s
	return s, nil
}

func (m *mockChatService) AddMessage(ctx context.Context, sessionID, sender, message string) (*domain.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	msg := &domain.Message{ID: int64(len(m.messages) + 1), SessionID: sessionID, Sender: sender, Message: message}
	m.messages = append(m.messages, msg)
	return msg, nil
}

func (m *mockChatService) Messages(ctx context.Context, sessionID string) ([]*domain.Message, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []*domain.Message{}
	for _, msg := range m.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *mockChatService) Chat(ctx context.Context, userID, message, sessionID string) (string, []*domain.Message, error) {
	if m.err != nil {
		return "", nil, m.err
	}
	if sessionID == "" {
		sessionID = "sess-generated"
	}
	m.AddMessage(ctx, sessionID, domain.SenderUser, message)
	m.AddMessage(ctx, sessionID, domain.SenderAI, "echo: "+message)
	msgs, _ := m.Messages(ctx, sessionID)
	return sessionID, msgs, nil
}

type healthStub map[string]string

func (h healthStub) Health(ctx context.Context) map[string]string {
	return h
}

type routes interface {
	RegisterRoutes(r chi.Router)
}

func newTestRouter(handlers ...routes) http.Handler {
	r := chi.NewRouter()
	for _, h := range handlers {
		h.RegisterRoutes(r)
	}
	r.NotFound(NotFound)
	return r
}

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

var nopLogger = zap.NewNop()
