package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"catalog-assistant/internal/domain"
	"catalog-assistant/internal/repository"
)

// Mock repositories for testing
type mockProductRepository struct {
	products map[int64]*domain.Product
	err      error

	lastLimit  int
	lastSearch repository.SearchParams
}

func newMockProductRepository(products ...*domain.Product) *mockProductRepository {
	m := &mockProductRepository{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (m *mockProductRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	found := make(map[int64]*domain.Product)
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			found[id] = p
		}
	}
	return found, nil
}

func (m *mockProductRepository) Search(ctx context.Context, params repository.SearchParams) ([]*domain.Product, error) {
	m.lastSearch = params
	return nil, m.err
}

func (m *mockProductRepository) TopSelling(ctx context.Context, limit int) ([]*domain.TopSellingProduct, error) {
	m.lastLimit = limit
	return nil, m.err
}

func (m *mockProductRepository) StockByName(ctx context.Context, name string) ([]*domain.ProductStock, error) {
	if m.err != nil {
		return nil, m.err
	}
	return nil, repository.ErrProductNotFound
}

type mockOrderRepository struct {
	orders map[int64]*domain.Order
	items  map[int64][]*domain.OrderItem
}

func (m *mockOrderRepository) FindByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	o, ok := m.orders[orderID]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return o, nil
}

func (m *mockOrderRepository) FindItems(ctx context.Context, orderID int64) ([]*domain.OrderItem, error) {
	return m.items[orderID], nil
}

type mockConversationRepository struct {
	mu       sync.Mutex
	sessions map[string]*domain.ConversationSession
	messages []*domain.Message
	nextID   int64
}

func newMockConversationRepository() *mockConversationRepository {
	return &mockConversationRepository{sessions: make(map[string]*domain.ConversationSession)}
}

func (m *mockConversationRepository) CreateSession(ctx context.Context, session *domain.ConversationSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[session.SessionID]; exists {
		return repository.ErrSessionExists
	}
	session.StartedAt = time.Now().UTC()
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockConversationRepository) FindSession(ctx context.Context, sessionID string) (*domain.ConversationSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return s, nil
}

func (m *mockConversationRepository) AddMessage(ctx context.Context, message *domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	message.ID = m.nextID
	message.Timestamp = time.Now().UTC()
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockConversationRepository) ListMessages(ctx context.Context, sessionID string) ([]*domain.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []*domain.Message{}
	for _, msg := range m.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type mockStatsRepository struct {
	stats *domain.CollectionStats
}

func (m *mockStatsRepository) CollectionStats(ctx context.Context) (*domain.CollectionStats, error) {
	return m.stats, nil
}

type stubAssistant struct {
	reply   string
	err     error
	prompts []string
}

func (s *stubAssistant) Ask(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}
