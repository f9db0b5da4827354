package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/emra/admin-console/internal/app/model"
	"github.com/emra/admin-console/internal/app/repository"
	"github.com/emra/admin-console/pkg/adminapi"
	"github.com/emra/admin-console/pkg/logger"
)

// CandidateLimit caps the add-product candidate list
const CandidateLimit = 30

// BannerProductsEditor edits the product association of one saved banner.
// Local state changes only after the backend accepted the change.
type BannerProductsEditor struct {
	mu       sync.Mutex
	repo     repository.BannerRepository
	bannerID string
	attached []model.Product
	catalog  []model.Product
	clock    func() time.Time
	// touched is read by the registry sweep without e.mu, which is held across API calls
	touched atomic.Int64
}

func NewBannerProductsEditor(repo repository.BannerRepository, banner model.Banner, catalog []model.Product) *BannerProductsEditor {
	e := &BannerProductsEditor{
		repo:     repo,
		bannerID: banner.ID,
		attached: append([]model.Product(nil), banner.Products...),
		catalog:  catalog,
		clock:    time.Now,
	}
	e.touch()
	return e
}

func (e *BannerProductsEditor) BannerID() string {
	return e.bannerID
}

// Products returns a copy of the current association list
func (e *BannerProductsEditor) Products() []model.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]model.Product{}, e.attached...)
}

func (e *BannerProductsEditor) SetCatalog(catalog []model.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.catalog = catalog
}

// CatalogProduct looks a product up in the catalog loaded with the editor
func (e *BannerProductsEditor) CatalogProduct(productID string) (model.Product, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range e.catalog {
		if p.ID == productID {
			return p, true
		}
	}
	return model.Product{}, false
}

func (e *BannerProductsEditor) touch() {
	e.touched.Store(e.clock().UnixNano())
}

func (e *BannerProductsEditor) lastUsed() time.Time {
	return time.Unix(0, e.touched.Load())
}

func (e *BannerProductsEditor) indexOf(productID string) int {
	for i, p := range e.attached {
		if p.ID == productID {
			return i
		}
	}
	return -1
}

func (e *BannerProductsEditor) AddProduct(ctx context.Context, sess *adminapi.Session, product model.Product) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touch()

	if e.bannerID == "" {
		return ErrBannerNotPersisted
	}
	if e.indexOf(product.ID) >= 0 {
		return ErrProductAlreadyAttached
	}

	if err := e.repo.AddProducts(ctx, sess, e.bannerID, []string{product.ID}); err != nil {
		logger.Error("Failed to attach product to banner", err, map[string]interface{}{
			"banner_id":  e.bannerID,
			"product_id": product.ID,
		})
		return err
	}
	e.attached = append(e.attached, product)
	return nil
}

func (e *BannerProductsEditor) RemoveProduct(ctx context.Context, sess *adminapi.Session, productID string, confirmed bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touch()

	if e.bannerID == "" {
		return ErrBannerNotPersisted
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := e.repo.RemoveProduct(ctx, sess, e.bannerID, productID); err != nil {
		logger.Error("Failed to detach product from banner", err, map[string]interface{}{
			"banner_id":  e.bannerID,
			"product_id": productID,
		})
		return err
	}

	kept := make([]model.Product, 0, len(e.attached))
	for _, p := range e.attached {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	e.attached = kept
	return nil
}

// MoveProduct shifts one product by delta places. Moving past either end is a no-op.
func (e *BannerProductsEditor) MoveProduct(ctx context.Context, sess *adminapi.Session, productID string, delta int, confirmed bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touch()

	if e.bannerID == "" {
		return ErrBannerNotPersisted
	}
	from := e.indexOf(productID)
	if from < 0 {
		return ErrProductNotAttached
	}
	to := from + delta
	if delta == 0 || to < 0 || to >= len(e.attached) {
		return nil
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	reordered := append([]model.Product(nil), e.attached...)
	moved := reordered[from]
	reordered = append(reordered[:from], reordered[from+1:]...)
	reordered = append(reordered[:to], append([]model.Product{moved}, reordered[to:]...)...)

	ids := make([]string, len(reordered))
	for i, p := range reordered {
		ids[i] = p.ID
	}
	if err := e.repo.ReorderProducts(ctx, sess, e.bannerID, ids); err != nil {
		return err
	}
	e.attached = reordered
	return nil
}

// Candidates is the catalog minus attached products whose name contains query,
// case-insensitively, limited to CandidateLimit entries
func (e *BannerProductsEditor) Candidates(query string) []model.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touch()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Product, 0, CandidateLimit)
	for _, p := range e.catalog {
		if e.indexOf(p.ID) >= 0 {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		out = append(out, p)
		if len(out) == CandidateLimit {
			break
		}
	}
	return out
}

type editorKey struct {
	sessionID string
	bannerID  string
}

// BannerEditorRegistry keeps open association editors per console session and banner
type BannerEditorRegistry struct {
	mu       sync.Mutex
	editors  map[editorKey]*BannerProductsEditor
	banners  repository.BannerRepository
	products repository.ProductRepository
	idle     time.Duration
	now      func() time.Time
}

func NewBannerEditorRegistry(banners repository.BannerRepository, products repository.ProductRepository, idle time.Duration) *BannerEditorRegistry {
	return &BannerEditorRegistry{
		editors:  make(map[editorKey]*BannerProductsEditor),
		banners:  banners,
		products: products,
		idle:     idle,
		now:      time.Now,
	}
}

// Open loads the banner and the product catalog and starts a fresh editor.
// An unsaved banner (empty id) is rejected without any request.
func (r *BannerEditorRegistry) Open(ctx context.Context, sess *adminapi.Session, bannerID string) (*BannerProductsEditor, error) {
	if bannerID == "" {
		return nil, ErrBannerNotPersisted
	}

	banners, err := r.banners.List(ctx, sess)
	if err != nil {
		return nil, err
	}
	var banner *model.Banner
	for i := range banners {
		if banners[i].ID == bannerID {
			banner = &banners[i]
			break
		}
	}
	if banner == nil {
		return nil, ErrBannerNotFound
	}

	catalog, err := r.products.List(ctx, sess, model.ProductQuery{})
	if err != nil {
		return nil, err
	}

	editor := NewBannerProductsEditor(r.banners, *banner, catalog)
	editor.clock = r.now
	editor.touch()

	r.mu.Lock()
	r.editors[editorKey{sessionID: sess.ID(), bannerID: bannerID}] = editor
	r.mu.Unlock()

	logger.Debug("Banner editor opened", map[string]interface{}{
		"banner_id":  bannerID,
		"session_id": sess.ID(),
		"attached":   len(banner.Products),
	})
	return editor, nil
}

func (r *BannerEditorRegistry) Get(sessionID, bannerID string) (*BannerProductsEditor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	editor, ok := r.editors[editorKey{sessionID: sessionID, bannerID: bannerID}]
	if !ok {
		return nil, ErrEditorNotFound
	}
	return editor, nil
}

// Close discards the editor and its local state
func (r *BannerEditorRegistry) Close(sessionID, bannerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.editors, editorKey{sessionID: sessionID, bannerID: bannerID})
}

// CloseSession discards every editor of a session, used on logout
func (r *BannerEditorRegistry) CloseSession(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.editors {
		if key.sessionID == sessionID {
			delete(r.editors, key)
		}
	}
}

// Sweep drops editors idle longer than the configured timeout and returns how many
func (r *BannerEditorRegistry) Sweep() int {
	if r.idle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idle)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for key, editor := range r.editors {
		if editor.lastUsed().Before(cutoff) {
			delete(r.editors, key)
			removed++
		}
	}
	return removed
}

func (r *BannerEditorRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.editors)
}
