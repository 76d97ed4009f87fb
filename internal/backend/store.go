package backend

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/shopfront/pkg/idx"
	"github.com/aussiebroadwan/shopfront/pkg/jwtx"
	"github.com/aussiebroadwan/shopfront/pkg/shopsdk"
)

type userRecord struct {
	shopsdk.User
	PasswordHash string
}

type cartLine struct {
	ProductID string
	Quantity  int
}

type cartRecord struct {
	ID        string
	Lines     []cartLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the in-memory state of the reference backend. All methods are
// safe for concurrent use.
type Store struct {
	now func() time.Time

	mu       sync.RWMutex
	users    map[string]*userRecord
	byEmail  map[string]string
	products map[string]*shopsdk.Product
	catalog  []string // product ids in insertion order
	carts    map[string]*cartRecord
	orders   map[string]*shopsdk.Order
	ledger   []string // order ids in creation order
}

// NewStore creates an empty store. A nil clock means time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:      now,
		users:    make(map[string]*userRecord),
		byEmail:  make(map[string]string),
		products: make(map[string]*shopsdk.Product),
		carts:    make(map[string]*cartRecord),
		orders:   make(map[string]*shopsdk.Order),
	}
}

func (s *Store) newID() string { return idx.NewAt(s.now()).String() }

func normEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// ============================================================================
// Users
// ============================================================================

// CreateUser adds an account. Emails are unique, case-insensitively.
func (s *Store) CreateUser(name, email, passwordHash string, role jwtx.Role) (shopsdk.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normEmail(email)
	if _, taken := s.byEmail[key]; taken {
		return shopsdk.User{}, fail(ErrConflict, "User already exists")
	}

	now := s.now()
	u := &userRecord{
		User: shopsdk.User{
			ID:        s.newID(),
			Name:      strings.TrimSpace(name),
			Email:     key,
			Role:      role,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: passwordHash,
	}
	s.users[u.ID] = u
	s.byEmail[key] = u.ID
	return u.User, nil
}

// userByEmail returns the record including the password hash.
func (s *Store) userByEmail(email string) (userRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[normEmail(email)]
	if !ok {
		return userRecord{}, false
	}
	return *s.users[id], true
}

func (s *Store) userRecord(id string) (userRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return userRecord{}, fail(ErrNotFound, "User not found")
	}
	return *u, nil
}

// User returns one account.
func (s *Store) User(id string) (shopsdk.User, error) {
	u, err := s.userRecord(id)
	return u.User, err
}

// Users lists every account, oldest first.
func (s *Store) Users() []shopsdk.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]shopsdk.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.User)
	}
	slices.SortFunc(out, func(a, b shopsdk.User) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// UpdateUser changes name and/or email. Empty values are left as is.
func (s *Store) UpdateUser(id, name, email string) (shopsdk.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return shopsdk.User{}, fail(ErrNotFound, "User not found")
	}

	if email != "" {
		key := normEmail(email)
		if other, taken := s.byEmail[key]; taken && other != id {
			return shopsdk.User{}, fail(ErrConflict, "Email already in use")
		}
		delete(s.byEmail, u.Email)
		u.Email = key
		s.byEmail[key] = id
	}
	if name = strings.TrimSpace(name); name != "" {
		u.Name = name
	}
	u.UpdatedAt = s.now()
	return u.User, nil
}

// SetPasswordHash replaces a user's password hash.
func (s *Store) SetPasswordHash(id, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return fail(ErrNotFound, "User not found")
	}
	u.PasswordHash = hash
	u.UpdatedAt = s.now()
	return nil
}

// DeleteUser removes an account and its cart. Orders are kept.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return fail(ErrNotFound, "User not found")
	}
	delete(s.byEmail, u.Email)
	delete(s.users, id)
	delete(s.carts, id)
	return nil
}

// ============================================================================
// Catalog
// ============================================================================

// AddProduct adds a catalog entry. Names and slugs are unique.
func (s *Store) AddProduct(p shopsdk.Product) (shopsdk.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Name == "" || p.Price < 0 || p.Stock < 0 {
		return shopsdk.Product{}, fail(ErrInvalid, "Invalid product")
	}
	if p.Slug == "" {
		p.Slug = slugify(p.Name)
	}
	for _, other := range s.products {
		if other.Name == p.Name || other.Slug == p.Slug {
			return shopsdk.Product{}, fail(ErrConflict, "Product already exists")
		}
	}

	now := s.now()
	p.ID = s.newID()
	p.CreatedAt, p.UpdatedAt = now, now
	s.products[p.ID] = &p
	s.catalog = append(s.catalog, p.ID)
	return p, nil
}

// Products lists the catalog in insertion order.
func (s *Store) Products() []shopsdk.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]shopsdk.Product, 0, len(s.catalog))
	for _, id := range s.catalog {
		out = append(out, *s.products[id])
	}
	return out
}

// ProductBySlug returns one catalog entry.
func (s *Store) ProductBySlug(slug string) (shopsdk.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.Slug == slug {
			return *p, nil
		}
	}
	return shopsdk.Product{}, fail(ErrNotFound, "Product not found")
}

// productByName expects s.mu held.
func (s *Store) productByName(name string) (*shopsdk.Product, bool) {
	for _, p := range s.products {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func expandProduct(p *shopsdk.Product) shopsdk.ProductRef {
	return shopsdk.ProductRef{
		Kind:   shopsdk.RefExpanded,
		ID:     p.ID,
		Name:   p.Name,
		Price:  p.Price,
		ImgURL: p.ImgURL,
		Stock:  p.Stock,
	}
}
