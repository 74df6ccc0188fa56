package cart

import (
	"context"
	"errors"

	"resto-mongo-api/models"
	"resto-mongo-api/store"
)

var ErrLineNotFound = errors.New("cart line not found")

const Collection = "carts"

// Service keeps one cart document per session in a session-lifetime store.
// Every mutation persists the cart before returning, so the next UI event
// always sees the previous one applied.
type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	var c models.Cart
	err := s.store.Get(ctx, Collection, sessionID, &c)
	if errors.Is(err, store.ErrNotFound) {
		return &models.Cart{SessionID: sessionID, Lines: map[string]models.CartLine{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if c.Lines == nil {
		c.Lines = map[string]models.CartLine{}
	}
	return &c, nil
}

// AddItem adds quantity of a menu item to the session cart, creating the
// line when it is new. The caller resolves the item against the catalog
// first so the line carries a denormalized name and price. New lines are
// stamped with the next insertion sequence; re-adding keeps the original
// position.
func (s *Service) AddItem(ctx context.Context, sessionID string, line models.CartLine) (*models.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	key := line.Key()
	if existing, ok := c.Lines[key]; ok {
		existing.Quantity += line.Quantity
		c.Lines[key] = existing
	} else {
		var maxSeq int64
		for _, l := range c.Lines {
			if l.Seq > maxSeq {
				maxSeq = l.Seq
			}
		}
		line.Seq = maxSeq + 1
		c.Lines[key] = line
	}
	if c.Lines[key].Quantity <= 0 {
		delete(c.Lines, key)
	}
	return c, s.save(ctx, c)
}

// SetQuantity pins a line to an absolute quantity; zero or less removes the
// line entirely.
func (s *Service) SetQuantity(ctx context.Context, sessionID, lineKey string, quantity int) (*models.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	line, ok := c.Lines[lineKey]
	if !ok {
		return nil, ErrLineNotFound
	}
	if quantity <= 0 {
		delete(c.Lines, lineKey)
	} else {
		line.Quantity = quantity
		c.Lines[lineKey] = line
	}
	return c, s.save(ctx, c)
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, lineKey string) (*models.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	delete(c.Lines, lineKey)
	return c, s.save(ctx, c)
}

func (s *Service) SetNotes(ctx context.Context, sessionID, lineKey, notes string) (*models.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	line, ok := c.Lines[lineKey]
	if !ok {
		return nil, ErrLineNotFound
	}
	line.Notes = notes
	c.Lines[lineKey] = line
	return c, s.save(ctx, c)
}

func (s *Service) SetItemDiscount(ctx context.Context, sessionID, lineKey string, discount *models.Discount) (*models.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	line, ok := c.Lines[lineKey]
	if !ok {
		return nil, ErrLineNotFound
	}
	line.Discount = discount
	c.Lines[lineKey] = line
	return c, s.save(ctx, c)
}

func (s *Service) SetOrderDiscount(ctx context.Context, sessionID string, discount *models.Discount) (*models.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Discount = discount
	return c, s.save(ctx, c)
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, Collection, sessionID)
}

func (s *Service) save(ctx context.Context, c *models.Cart) error {
	return s.store.Put(ctx, Collection, c.SessionID, c)
}
