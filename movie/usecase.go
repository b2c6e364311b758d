package movie

import (
	"context"
	"sync"
)

type Service interface {
	CatalogStatus() Status
	Catalog() []Movie
	Genres() []string
	Search(f Filter) []Movie
	Detail(id Identity) (Movie, error)
	Featured() (Featured, error)

	Wishlist() []WishlistEntry
	AddToWishlist(id Identity) bool
	RemoveFromWishlist(id Identity) bool
	InWishlist(id Identity) bool
	ToggleWishlist(id Identity) bool
}

// Status reports whether the catalog was loaded. Error holds the
// user-facing notice of a failed load.
type Status struct {
	Loaded bool   `json:"loaded"`
	Count  int    `json:"count"`
	Error  string `json:"error,omitempty"`
}

type WishlistEntry struct {
	Identity
	Label string `json:"label"`
}

type Featured struct {
	Movie      Movie `json:"movie"`
	InWishlist bool  `json:"inWishlist"`
}

type UsecaseOption func(uc *Usecase)

// WithFeatured sets the movie shown as today's recommendation.
func WithFeatured(id Identity) UsecaseOption {
	return func(uc *Usecase) {
		uc.featured = id
	}
}

type Usecase struct {
	mu      sync.RWMutex
	catalog *Catalog
	loadErr error

	wishlist *Wishlist
	featured Identity
}

func NewUsecase(w *Wishlist, opts ...UsecaseOption) *Usecase {
	if w == nil {
		w = NewWishlist()
	}
	uc := &Usecase{
		catalog:  NewCatalog(nil),
		wishlist: w,
	}
	for _, fn := range opts {
		fn(uc)
	}
	return uc
}

// LoadCatalog replaces the catalog with the movies of src. On failure the
// catalog is left empty and the error is kept for CatalogStatus.
func (uc *Usecase) LoadCatalog(ctx context.Context, src Source) error {
	movies, err := src.LoadMovies(ctx)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if err != nil {
		uc.catalog = NewCatalog(nil)
		uc.loadErr = err
		return err
	}
	uc.catalog = NewCatalog(movies)
	uc.loadErr = nil
	return nil
}

func (uc *Usecase) CatalogStatus() Status {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.loadErr != nil {
		return Status{Error: uc.loadErr.Error()}
	}
	return Status{Loaded: true, Count: uc.catalog.Len()}
}

func (uc *Usecase) Catalog() []Movie {
	return uc.current().All()
}

func (uc *Usecase) Genres() []string {
	return uc.current().Genres()
}

func (uc *Usecase) Search(f Filter) []Movie {
	return Search(uc.current(), f)
}

func (uc *Usecase) Detail(id Identity) (Movie, error) {
	m, ok := uc.current().Find(id)
	if !ok {
		return Movie{}, ErrMovieNotFound
	}
	return m, nil
}

func (uc *Usecase) Featured() (Featured, error) {
	m, err := uc.Detail(uc.featured)
	if err != nil {
		return Featured{}, err
	}
	return Featured{Movie: m, InWishlist: uc.wishlist.Contains(uc.featured)}, nil
}

func (uc *Usecase) Wishlist() []WishlistEntry {
	ids := uc.wishlist.List()
	entries := make([]WishlistEntry, len(ids))
	for i, id := range ids {
		entries[i] = WishlistEntry{Identity: id, Label: id.String()}
	}
	return entries
}

func (uc *Usecase) AddToWishlist(id Identity) bool {
	return uc.wishlist.Add(id)
}

func (uc *Usecase) RemoveFromWishlist(id Identity) bool {
	return uc.wishlist.Remove(id)
}

func (uc *Usecase) InWishlist(id Identity) bool {
	return uc.wishlist.Contains(id)
}

func (uc *Usecase) ToggleWishlist(id Identity) bool {
	return uc.wishlist.Toggle(id)
}

func (uc *Usecase) current() *Catalog {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.catalog
}
