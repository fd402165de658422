package sync

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/frituurapp/backend/internal/domain/possync"
)

// ShippingProductName is the name of the POS placeholder product that carries
// an order's shipping cost as a synthetic unit line
const ShippingProductName = "Shipping Cost"

// ShippingProductCache resolves and caches the POS id of the shipping
// placeholder product per shop. The cache lives for the process lifetime and
// is safe to lose: the id is simply re-resolved on the next push.
type ShippingProductCache struct {
	mu  sync.Mutex
	ids map[uuid.UUID]int64
}

// NewShippingProductCache creates an empty cache
func NewShippingProductCache() *ShippingProductCache {
	return &ShippingProductCache{
		ids: make(map[uuid.UUID]int64),
	}
}

// RemoteID returns the POS id of the shop's shipping placeholder product,
// creating the product remotely on first use
func (c *ShippingProductCache) RemoteID(ctx context.Context, client possync.Client, shopID uuid.UUID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.ids[shopID]; ok {
		return id, nil
	}

	remotes, err := client.ListEntities(ctx, possync.KindProduct)
	if err != nil {
		return 0, err
	}
	for _, re := range remotes {
		if strings.EqualFold(re.Name, ShippingProductName) {
			c.ids[shopID] = re.ID
			return re.ID, nil
		}
	}

	id, err := client.CreateEntity(ctx, possync.KindProduct, possync.RemoteFields{
		Name:    ShippingProductName,
		ModTime: time.Now().Unix(),
	})
	if err != nil {
		return 0, err
	}
	c.ids[shopID] = id
	return id, nil
}

// Forget drops the cached id for a shop (for testing and manual recovery)
func (c *ShippingProductCache) Forget(shopID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.ids, shopID)
}
