package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frituurapp/backend/internal/domain/catalog"
	"github.com/frituurapp/backend/internal/domain/ordering"
	"github.com/frituurapp/backend/internal/domain/possync"
)

// OrderPusher transforms a local order into the flat POS representation and
// submits it in a single create call. A pushed order is never pushed again;
// the stored remote order id is the idempotency guard.
type OrderPusher struct {
	orders      ordering.OrderRepository
	products    catalog.ProductRepository
	subproducts catalog.SubproductRepository
	shipping    *ShippingProductCache
	logger      *zap.Logger
}

// NewOrderPusher creates a new order pusher
func NewOrderPusher(
	orders ordering.OrderRepository,
	products catalog.ProductRepository,
	subproducts catalog.SubproductRepository,
	shipping *ShippingProductCache,
	logger *zap.Logger,
) *OrderPusher {
	return &OrderPusher{
		orders:      orders,
		products:    products,
		subproducts: subproducts,
		shipping:    shipping,
		logger:      logger,
	}
}

// Push submits one order to the POS. Re-invoking for an already pushed order
// returns immediately without any network call.
func (p *OrderPusher) Push(ctx context.Context, client possync.Client, shopID, orderID uuid.UUID) (*possync.OrderPushResult, error) {
	result := &possync.OrderPushResult{OrderID: orderID}

	order, err := p.orders.FindByID(ctx, shopID, orderID)
	if err != nil {
		return nil, err
	}

	if order.IsPushed() {
		result.AlreadyPushed = true
		result.RemoteOrderID = *order.RemoteOrderID
		return result, nil
	}

	customerID, err := p.resolveCustomer(ctx, client, order)
	if err != nil {
		return nil, fmt.Errorf("resolve customer: %w", err)
	}

	lines, warnings, err := p.buildLines(ctx, client, order)
	if err != nil {
		return nil, err
	}
	result.Warnings = warnings

	submission := possync.OrderSubmission{
		CustomerID:   customerID,
		DeliveryMode: deliveryMode(order.FulfillmentMethod),
		Planned:      order.IsScheduled(),
		Discount:     order.DiscountTotal.StringFixed(2),
		OnlinePaid:   order.PaidOnline(),
		Lines:        lines,
	}
	if submission.Planned {
		submission.PlannedFor = order.FulfillmentDate + " " + order.FulfillmentTime
	}
	if order.FulfillmentMethod == ordering.FulfillmentDelivery {
		submission.Remark = order.DeliveryRemark()
	}

	remoteOrderID, err := client.CreateOrder(ctx, submission)
	if err != nil {
		// RemoteOrderID stays unset, so a retry is safe
		return nil, err
	}

	order.MarkPushed(remoteOrderID)
	if err := p.orders.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("record remote order id %d: %w", remoteOrderID, err)
	}

	p.logger.Info("Order pushed",
		zap.String("shop_id", shopID.String()),
		zap.String("order_id", orderID.String()),
		zap.String("order_number", order.Number),
		zap.Int64("remote_order_id", remoteOrderID),
		zap.Int("lines", len(lines)),
	)

	result.RemoteOrderID = remoteOrderID
	result.LinesPushed = len(lines)
	return result, nil
}

// resolveCustomer finds or lazily creates the POS customer for the order.
// Orders without an email are attributed to a deterministic per-shop guest
// identity so repeat guests do not multiply POS customer records.
func (p *OrderPusher) resolveCustomer(ctx context.Context, client possync.Client, order *ordering.Order) (int64, error) {
	email := order.CustomerEmail
	name := order.CustomerName
	if email == "" {
		email = fmt.Sprintf("guest@%s", order.ShopID)
		if name == "" {
			name = "Guest"
		}
	}

	customer, err := client.FindCustomerByEmail(ctx, email)
	if err == nil {
		return customer.ID, nil
	}
	if !errors.Is(err, possync.ErrCustomerNotFound) {
		return 0, err
	}

	return client.CreateCustomer(ctx, possync.CustomerFields{
		Email:   email,
		Name:    name,
		Phone:   order.CustomerPhone,
		Address: order.DeliveryAddress,
		Zip:     order.DeliveryPostalCode,
		City:    order.DeliveryCity,
	})
}

// buildLines flattens the order's line items into unit-quantity POS lines.
// A line whose product has no remote counterpart is dropped with a warning;
// the rest of the order still pushes.
func (p *OrderPusher) buildLines(ctx context.Context, client possync.Client, order *ordering.Order) ([]possync.OrderLineSubmission, []string, error) {
	var warnings []string
	warn := func(msg string) { warnings = append(warnings, msg) }

	remoteBySubproduct, err := p.resolveSelections(ctx, order)
	if err != nil {
		return nil, nil, err
	}

	lines := make([]possync.OrderLineSubmission, 0, len(order.Lines))
	for i := range order.Lines {
		line := &order.Lines[i]

		product, err := p.products.FindByID(ctx, order.ShopID, line.ProductID)
		if err != nil {
			warn(fmt.Sprintf("line %d dropped: product %s not found", i+1, line.ProductID))
			continue
		}
		if !product.IsLinked() {
			warn(fmt.Sprintf("%v: line %d (%q) dropped", possync.ErrProductNotLinked, i+1, product.Name))
			continue
		}

		modifierIDs := expandSelections(line.Selections, remoteBySubproduct, i+1, warn)

		// The POS has no quantity field: quantity N becomes N unit lines
		for n := 0; n < line.Quantity; n++ {
			lines = append(lines, possync.OrderLineSubmission{
				ProductID:   *product.RemoteID,
				Price:       line.UnitPrice,
				ModifierIDs: modifierIDs,
			})
		}
	}

	if order.ShippingCost.IsPositive() {
		shippingID, err := p.shipping.RemoteID(ctx, client, order.ShopID)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve shipping placeholder: %w", err)
		}
		lines = append(lines, possync.OrderLineSubmission{
			ProductID: shippingID,
			Price:     order.ShippingCost,
		})
	}

	if len(lines) == 0 {
		return nil, nil, fmt.Errorf("%w: no line of order %q is pushable", possync.ErrProductNotLinked, order.Number)
	}
	return lines, warnings, nil
}

// resolveSelections maps every selected subproduct to its POS id, where linked
func (p *OrderPusher) resolveSelections(ctx context.Context, order *ordering.Order) (map[uuid.UUID]int64, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for i := range order.Lines {
		for _, sel := range order.Lines[i].Selections {
			if _, ok := seen[sel.SubproductID]; !ok {
				seen[sel.SubproductID] = struct{}{}
				ids = append(ids, sel.SubproductID)
			}
		}
	}

	subproducts, err := p.subproducts.FindByIDs(ctx, order.ShopID, ids)
	if err != nil {
		return nil, err
	}

	remoteBySubproduct := make(map[uuid.UUID]int64, len(subproducts))
	for i := range subproducts {
		if subproducts[i].RemoteID != nil {
			remoteBySubproduct[subproducts[i].ID] = *subproducts[i].RemoteID
		}
	}
	return remoteBySubproduct, nil
}

// expandSelections flattens subproduct selections into modifier slot ids,
// repeating a selection with quantity > 1 and truncating at the slot limit
func expandSelections(selections ordering.SelectionList, remoteBySubproduct map[uuid.UUID]int64, lineNo int, warn func(string)) []int64 {
	var modifierIDs []int64
	for _, sel := range selections {
		remoteID, ok := remoteBySubproduct[sel.SubproductID]
		if !ok {
			warn(fmt.Sprintf("line %d: subproduct %s has no register counterpart, selection dropped", lineNo, sel.SubproductID))
			continue
		}
		quantity := sel.Quantity
		if quantity < 1 {
			quantity = 1
		}
		for n := 0; n < quantity; n++ {
			modifierIDs = append(modifierIDs, remoteID)
		}
	}

	if len(modifierIDs) > catalog.MaxModifierSlots {
		warn(fmt.Sprintf("line %d: %d modifier selections exceed the %d register slots, extra ones dropped",
			lineNo, len(modifierIDs), catalog.MaxModifierSlots))
		modifierIDs = modifierIDs[:catalog.MaxModifierSlots]
	}
	return modifierIDs
}

// deliveryMode maps a fulfillment method onto the POS delivery mode enum.
// Unrecognized values default to takeaway.
func deliveryMode(m ordering.FulfillmentMethod) int {
	switch m {
	case ordering.FulfillmentDelivery:
		return possync.DeliveryModeDelivery
	case ordering.FulfillmentDineIn:
		return possync.DeliveryModeDineIn
	default:
		return possync.DeliveryModeTakeaway
	}
}
