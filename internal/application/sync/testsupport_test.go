package sync

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/frituurapp/backend/internal/domain/catalog"
	"github.com/frituurapp/backend/internal/domain/ordering"
	"github.com/frituurapp/backend/internal/domain/possync"
	"github.com/frituurapp/backend/internal/domain/shared"
)

// ---------------------------------------------------------------------------
// Fake POS
// ---------------------------------------------------------------------------

// fakePOS is an in-memory POS double that records every write
type fakePOS struct {
	mu       sync.Mutex
	nextID   int64
	entities map[possync.EntityKind]map[int64]possync.RemoteEntity
	// groups holds projected modifier groups keyed by product remote id
	groups    map[int64]map[int]possync.RemoteModifierGroup
	customers map[string]possync.RemoteCustomer
	orders    []possync.OrderSubmission

	entityWrites   int
	groupWrites    int
	customerWrites int
	orderWrites    int
	listCalls      int

	// failWith, when set, is returned from every call
	failWith error
	// rejectCreates, when set, is returned from CreateEntity only
	rejectCreates error
}

func newFakePOS() *fakePOS {
	return &fakePOS{
		nextID:    100,
		entities:  make(map[possync.EntityKind]map[int64]possync.RemoteEntity),
		groups:    make(map[int64]map[int]possync.RemoteModifierGroup),
		customers: make(map[string]possync.RemoteCustomer),
	}
}

func (f *fakePOS) seedEntity(kind possync.EntityKind, e possync.RemoteEntity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.entities[kind] == nil {
		f.entities[kind] = make(map[int64]possync.RemoteEntity)
	}
	f.entities[kind][e.ID] = e
	if e.ID >= f.nextID {
		f.nextID = e.ID + 1
	}
}

func (f *fakePOS) seedCustomer(c possync.RemoteCustomer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.customers[c.Email] = c
}

func (f *fakePOS) networkWrites() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entityWrites + f.groupWrites + f.customerWrites + f.orderWrites
}

func (f *fakePOS) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls + f.entityWrites + f.groupWrites + f.customerWrites + f.orderWrites
}

func (f *fakePOS) ListEntities(ctx context.Context, kind possync.EntityKind) ([]possync.RemoteEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]possync.RemoteEntity, 0, len(f.entities[kind]))
	for _, e := range f.entities[kind] {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePOS) CreateEntity(ctx context.Context, kind possync.EntityKind, fields possync.RemoteFields) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	if f.rejectCreates != nil {
		return 0, f.rejectCreates
	}
	f.entityWrites++
	id := f.nextID
	f.nextID++
	if f.entities[kind] == nil {
		f.entities[kind] = make(map[int64]possync.RemoteEntity)
	}
	f.entities[kind][id] = possync.RemoteEntity{
		ID:         id,
		Name:       fields.Name,
		Price:      fields.Price,
		TaxRate:    fields.TaxRate,
		ModTime:    fields.ModTime,
		CategoryID: fields.CategoryID,
	}
	return id, nil
}

func (f *fakePOS) UpdateEntity(ctx context.Context, kind possync.EntityKind, remoteID int64, fields possync.RemoteFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.entityWrites++
	f.entities[kind][remoteID] = possync.RemoteEntity{
		ID:         remoteID,
		Name:       fields.Name,
		Price:      fields.Price,
		TaxRate:    fields.TaxRate,
		ModTime:    fields.ModTime,
		CategoryID: fields.CategoryID,
	}
	return nil
}

func (f *fakePOS) UpdateModifierGroup(ctx context.Context, productRemoteID int64, group possync.RemoteModifierGroup) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.groupWrites++
	if f.groups[productRemoteID] == nil {
		f.groups[productRemoteID] = make(map[int]possync.RemoteModifierGroup)
	}
	f.groups[productRemoteID][group.Slot] = group
	return nil
}

func (f *fakePOS) FindCustomerByEmail(ctx context.Context, email string) (*possync.RemoteCustomer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	c, ok := f.customers[email]
	if !ok {
		return nil, possync.ErrCustomerNotFound
	}
	return &c, nil
}

func (f *fakePOS) CreateCustomer(ctx context.Context, fields possync.CustomerFields) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.customerWrites++
	id := f.nextID
	f.nextID++
	f.customers[fields.Email] = possync.RemoteCustomer{ID: id, Email: fields.Email, Name: fields.Name}
	return id, nil
}

func (f *fakePOS) CreateOrder(ctx context.Context, submission possync.OrderSubmission) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.orderWrites++
	f.orders = append(f.orders, submission)
	return 9000 + int64(len(f.orders)), nil
}

var _ possync.Client = (*fakePOS)(nil)

// ---------------------------------------------------------------------------
// In-memory repositories
// ---------------------------------------------------------------------------

type memCategoryRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]catalog.Category
	// products, when set, sees category edits reflected into its stored
	// association copies, the way a relational preload would
	products *memProductRepo
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{items: make(map[uuid.UUID]catalog.Category)}
}

func (r *memCategoryRepo) FindByID(ctx context.Context, shopID, id uuid.UUID) (*catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok || c.ShopID != shopID {
		return nil, shared.ErrNotFound
	}
	return &c, nil
}

func (r *memCategoryRepo) FindAllForShop(ctx context.Context, shopID uuid.UUID) ([]catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Category
	for _, c := range r.items {
		if c.ShopID == shopID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memCategoryRepo) Save(ctx context.Context, category *catalog.Category) error {
	r.mu.Lock()
	r.items[category.ID] = *category
	r.mu.Unlock()
	if r.products != nil {
		r.products.refreshCategory(category)
	}
	return nil
}

var _ catalog.CategoryRepository = (*memCategoryRepo)(nil)

type memProductRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]catalog.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{items: make(map[uuid.UUID]catalog.Product)}
}

func (r *memProductRepo) FindByID(ctx context.Context, shopID, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok || p.ShopID != shopID {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (r *memProductRepo) FindAllForShop(ctx context.Context, shopID uuid.UUID) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Product
	for _, p := range r.items {
		if p.ShopID == shopID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memProductRepo) Save(ctx context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[product.ID] = *product
	return nil
}

// refreshCategory mirrors a category edit into stored product associations,
// the way a relational preload would see it
func (r *memProductRepo) refreshCategory(c *catalog.Category) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.items {
		for i := range p.Categories {
			if p.Categories[i].ID == c.ID {
				p.Categories[i] = *c
				r.items[id] = p
			}
		}
	}
}

var _ catalog.ProductRepository = (*memProductRepo)(nil)

type memSubproductRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]catalog.Subproduct
}

func newMemSubproductRepo() *memSubproductRepo {
	return &memSubproductRepo{items: make(map[uuid.UUID]catalog.Subproduct)}
}

func (r *memSubproductRepo) FindByID(ctx context.Context, shopID, id uuid.UUID) (*catalog.Subproduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok || s.ShopID != shopID {
		return nil, shared.ErrNotFound
	}
	return &s, nil
}

func (r *memSubproductRepo) FindByIDs(ctx context.Context, shopID uuid.UUID, ids []uuid.UUID) ([]catalog.Subproduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Subproduct
	for _, id := range ids {
		if s, ok := r.items[id]; ok && s.ShopID == shopID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSubproductRepo) FindAllForShop(ctx context.Context, shopID uuid.UUID) ([]catalog.Subproduct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Subproduct
	for _, s := range r.items {
		if s.ShopID == shopID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memSubproductRepo) Save(ctx context.Context, subproduct *catalog.Subproduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[subproduct.ID] = *subproduct
	return nil
}

var _ catalog.SubproductRepository = (*memSubproductRepo)(nil)

type memOrderRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]ordering.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{items: make(map[uuid.UUID]ordering.Order)}
}

func (r *memOrderRepo) FindByID(ctx context.Context, shopID, id uuid.UUID) (*ordering.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.items[id]
	if !ok || o.ShopID != shopID {
		return nil, shared.ErrNotFound
	}
	return &o, nil
}

func (r *memOrderRepo) Save(ctx context.Context, order *ordering.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[order.ID] = *order
	return nil
}

var _ ordering.OrderRepository = (*memOrderRepo)(nil)

type memConnectionRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]possync.Connection
}

func newMemConnectionRepo() *memConnectionRepo {
	return &memConnectionRepo{items: make(map[uuid.UUID]possync.Connection)}
}

func (r *memConnectionRepo) FindByShop(ctx context.Context, shopID uuid.UUID) (*possync.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[shopID]
	if !ok {
		return nil, possync.ErrConnectionNotFound
	}
	return &c, nil
}

func (r *memConnectionRepo) FindAllEnabled(ctx context.Context) ([]possync.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []possync.Connection
	for _, c := range r.items {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memConnectionRepo) Save(ctx context.Context, connection *possync.Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[connection.ShopID] = *connection
	return nil
}

var _ possync.ConnectionRepository = (*memConnectionRepo)(nil)

type memRunRepo struct {
	mu   sync.Mutex
	runs []possync.SyncRun
}

func newMemRunRepo() *memRunRepo {
	return &memRunRepo{}
}

func (r *memRunRepo) Save(ctx context.Context, run *possync.SyncRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, *run)
	return nil
}

func (r *memRunRepo) FindRecentForShop(ctx context.Context, shopID uuid.UUID, limit int) ([]possync.SyncRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []possync.SyncRun
	for i := len(r.runs) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if r.runs[i].ShopID == shopID {
			out = append(out, r.runs[i])
		}
	}
	return out, nil
}

var _ possync.SyncRunRepository = (*memRunRepo)(nil)

// fakeLock is a SyncLock with a switchable held state
type fakeLock struct {
	mu   sync.Mutex
	held map[uuid.UUID]bool
}

func newFakeLock() *fakeLock {
	return &fakeLock{held: make(map[uuid.UUID]bool)}
}

func (l *fakeLock) TryLock(ctx context.Context, shopID uuid.UUID, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[shopID] {
		return false, nil
	}
	l.held[shopID] = true
	return true, nil
}

func (l *fakeLock) Unlock(ctx context.Context, shopID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, shopID)
	return nil
}

var _ possync.SyncLock = (*fakeLock)(nil)
