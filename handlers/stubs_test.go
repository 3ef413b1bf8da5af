package handlers

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bean-buzz/beanbuzz-backend/database"
	"github.com/bean-buzz/beanbuzz-backend/models"
)

// In-memory store fakes used across the handler tests.

type stubUserStore struct {
	users     map[primitive.ObjectID]*models.User
	createErr error
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: map[primitive.ObjectID]*models.User{}}
}

func (s *stubUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return nil, database.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	s.users[user.ID] = &cp
	return user, nil
}

func (s *stubUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *stubUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (s *stubUserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	user, ok := s.users[id]
	if !ok {
		return database.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

type stubMenuStore struct {
	items map[primitive.ObjectID]*models.MenuItem
}

func newStubMenuStore(items ...*models.MenuItem) *stubMenuStore {
	s := &stubMenuStore{items: map[primitive.ObjectID]*models.MenuItem{}}
	for _, item := range items {
		if item.ID.IsZero() {
			item.ID = primitive.NewObjectID()
		}
		s.items[item.ID] = item
	}
	return s
}

func (s *stubMenuStore) List(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	for _, item := range s.items {
		items = append(items, *item)
	}
	return items, nil
}

func (s *stubMenuStore) ListByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	for _, item := range s.items {
		if item.Category == category {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (s *stubMenuStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (s *stubMenuStore) Create(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	item.ID = primitive.NewObjectID()
	cp := *item
	s.items[item.ID] = &cp
	return item, nil
}

func (s *stubMenuStore) Update(ctx context.Context, id primitive.ObjectID, item *models.MenuItem) (*models.MenuItem, error) {
	if _, ok := s.items[id]; !ok {
		return nil, database.ErrNotFound
	}
	item.ID = id
	cp := *item
	s.items[id] = &cp
	return item, nil
}

func (s *stubMenuStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := s.items[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type stubOrderStore struct {
	orders    map[primitive.ObjectID]*models.Order
	createErr error
	saveCalls int
}

func newStubOrderStore(orders ...*models.Order) *stubOrderStore {
	s := &stubOrderStore{orders: map[primitive.ObjectID]*models.Order{}}
	for _, order := range orders {
		if order.ID.IsZero() {
			order.ID = primitive.NewObjectID()
		}
		s.orders[order.ID] = order
	}
	return s
}

func (s *stubOrderStore) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	order.ID = primitive.NewObjectID()
	cp := *order
	s.orders[order.ID] = &cp
	return order, nil
}

func (s *stubOrderStore) List(ctx context.Context, filter database.OrderFilter) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range s.orders {
		if filter.OrderStatus != "" && string(order.OrderStatus) != filter.OrderStatus {
			continue
		}
		if filter.PaymentStatus != "" && string(order.PaymentStatus) != filter.PaymentStatus {
			continue
		}
		if filter.PaymentMethod != "" && string(order.PaymentMethod) != filter.PaymentMethod {
			continue
		}
		if filter.CustomerName != "" && order.CustomerName != filter.CustomerName {
			continue
		}
		if filter.TableNumber != "" && order.TableNumber != filter.TableNumber {
			continue
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (s *stubOrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *order
	return &cp, nil
}

func (s *stubOrderStore) Save(ctx context.Context, order *models.Order) (*models.Order, error) {
	if _, ok := s.orders[order.ID]; !ok {
		return nil, database.ErrNotFound
	}
	s.saveCalls++
	cp := *order
	s.orders[order.ID] = &cp
	return order, nil
}

func (s *stubOrderStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := s.orders[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

type stubReviewStore struct {
	reviews []models.Review
}

func (s *stubReviewStore) matches(review models.Review, filter database.ReviewFilter) bool {
	if filter.Search != "" && !strings.Contains(strings.ToLower(review.UserName), strings.ToLower(filter.Search)) {
		return false
	}
	if filter.Status != "" && filter.Status != "all" && string(review.ReviewStatus) != filter.Status {
		return false
	}
	return true
}

func (s *stubReviewStore) List(ctx context.Context, filter database.ReviewFilter, skip, limit int64) ([]models.Review, int64, error) {
	var matched []models.Review
	for _, review := range s.reviews {
		if s.matches(review, filter) {
			matched = append(matched, review)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if filter.OldestFirst {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if skip >= total {
		return nil, total, nil
	}
	matched = matched[skip:]
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (s *stubReviewStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	for _, review := range s.reviews {
		if review.ID == id {
			cp := review
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *stubReviewStore) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	review.ID = primitive.NewObjectID()
	if review.ReviewStatus == "" {
		review.ReviewStatus = models.ReviewApproved
	}
	s.reviews = append(s.reviews, *review)
	return review, nil
}

func (s *stubReviewStore) Update(ctx context.Context, id primitive.ObjectID, patch database.ReviewUpdate) (*models.Review, error) {
	for i := range s.reviews {
		if s.reviews[i].ID == id {
			if patch.UserName != nil {
				s.reviews[i].UserName = *patch.UserName
			}
			if patch.Rating != nil {
				s.reviews[i].Rating = *patch.Rating
			}
			if patch.ReviewMessage != nil {
				s.reviews[i].ReviewMessage = *patch.ReviewMessage
			}
			if patch.ReviewStatus != nil {
				s.reviews[i].ReviewStatus = *patch.ReviewStatus
			}
			cp := s.reviews[i]
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *stubReviewStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i := range s.reviews {
		if s.reviews[i].ID == id {
			s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

type stubMailer struct {
	sentTo  []string
	lastURL string
	err     error
}

func (m *stubMailer) SendPasswordReset(to, resetURL string) error {
	if m.err != nil {
		return m.err
	}
	m.sentTo = append(m.sentTo, to)
	m.lastURL = resetURL
	return nil
}
