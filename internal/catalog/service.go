package catalog

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/example/saluvia/internal/logging"
	"github.com/example/saluvia/internal/models"
)

const (
	DefaultTimeout = 10 * time.Second
	releaseTimeout = 5 * time.Second
)

// Service implements the catalog read path on top of an injected Store.
// It keeps no state between calls.
type Service struct {
	store   Store
	timeout time.Duration
	now     func() time.Time
	log     *log.Entry
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout bounds every call, connection included.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithClock replaces time.Now, used to default missing product timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the entry the service logs through.
func WithLogger(entry *log.Entry) Option {
	return func(s *Service) {
		if entry != nil {
			s.log = entry
		}
	}
}

// NewService constructs Service.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		timeout: DefaultTimeout,
		now:     time.Now,
		log:     logging.WithComponent("catalog"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveCategory returns the category keyed by key together with all of its
// subcategories.
func (s *Service) ResolveCategory(ctx context.Context, key string) (*models.CategoryDetail, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrInvalidKey
	}

	var detail *models.CategoryDetail
	err := s.withConn(ctx, "resolve category", func(ctx context.Context, conn Conn) error {
		category, err := conn.FindCategory(ctx, key)
		if err != nil {
			return err
		}

		subcategories, err := conn.FindSubcategoriesByCategory(ctx, key)
		if err != nil {
			return err
		}
		if subcategories == nil {
			subcategories = []models.Subcategory{}
		}

		detail = &models.CategoryDetail{Category: *category, Subcategories: subcategories}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// ResolveSubcategory finds the subcategory addressed by key (slug, dashed
// name or identifier) and the products tied to it by any soft reference.
func (s *Service) ResolveSubcategory(ctx context.Context, key string) (*models.SubcategoryPage, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrInvalidKey
	}

	var page *models.SubcategoryPage
	err := s.withConn(ctx, "resolve subcategory", func(ctx context.Context, conn Conn) error {
		sub, err := conn.FindSubcategory(ctx, NewLookup(key))
		if err != nil {
			return err
		}
		s.log.WithFields(log.Fields{"key": key, "subcategory_id": sub.ID}).Debug("subcategory resolved")

		var products []models.Product
		if refs := MembershipRefs(sub, key); len(refs) > 0 {
			products, err = conn.FindProducts(ctx, refs)
			if err != nil {
				return err
			}
		}

		now := s.now()
		cards := make([]models.ProductCard, 0, len(products))
		for i := range products {
			cards = append(cards, shapeProduct(&products[i], now))
		}

		page = &models.SubcategoryPage{
			Success:     true,
			Subcategory: shapeSubcategory(sub),
			Products:    cards,
			Count:       len(cards),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// ListCategories returns every category in its navigation projection.
func (s *Service) ListCategories(ctx context.Context) ([]models.CategorySummary, error) {
	var out []models.CategorySummary
	err := s.withConn(ctx, "list categories", func(ctx context.Context, conn Conn) error {
		items, err := conn.ListCategories(ctx)
		if err != nil {
			return err
		}
		out = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.CategorySummary{}
	}
	return out, nil
}

// ListSubcategories returns every subcategory in its listing projection with
// markup stripped from descriptions.
func (s *Service) ListSubcategories(ctx context.Context) ([]models.SubcategorySummary, error) {
	var out []models.SubcategorySummary
	err := s.withConn(ctx, "list subcategories", func(ctx context.Context, conn Conn) error {
		items, err := conn.ListSubcategories(ctx)
		if err != nil {
			return err
		}
		out = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return []models.SubcategorySummary{}, nil
	}
	for i := range out {
		out[i].Description = StripMarkup(out[i].Description)
	}
	return out, nil
}

// Ping checks that the store answers within the service timeout.
func (s *Service) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return unavailable("ping", s.store.Ping(ctx))
}

// withConn opens one connection for fn and releases it on every exit path.
// A failed release is logged and never replaces fn's result.
func (s *Service) withConn(ctx context.Context, op string, fn func(context.Context, Conn) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	conn, err := s.store.Open(ctx)
	if err != nil {
		return unavailable(op+": open", err)
	}
	defer func() {
		releaseCtx, release := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer release()
		if err := conn.Close(releaseCtx); err != nil {
			s.log.WithError(err).WithField("op", op).Warn("failed to release store connection")
		}
	}()

	return unavailable(op, fn(ctx, conn))
}
