package sync

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/frituurapp/backend/internal/domain/catalog"
	"github.com/frituurapp/backend/internal/domain/possync"
)

func seedSubproduct(t *testing.T, repo *memSubproductRepo, shopID uuid.UUID, name string, remoteID *int64) uuid.UUID {
	t.Helper()
	s, err := catalog.NewSubproduct(shopID, name, decimal.NewFromFloat(0.50))
	require.NoError(t, err)
	s.RemoteID = remoteID
	require.NoError(t, repo.Save(context.Background(), s))
	return s.ID
}

func newProjectableProduct(t *testing.T, shopID uuid.UUID, remoteID int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(shopID, "Small Fries", decimal.NewFromFloat(2.50))
	require.NoError(t, err)
	p.LinkRemote(remoteID)
	return p
}

func addGroup(t *testing.T, p *catalog.Product, slot int, title string, memberIDs []uuid.UUID) *catalog.ModifierGroupAssignment {
	t.Helper()
	g, err := catalog.NewModifierGroupAssignment(p.ID, slot, title, memberIDs)
	require.NoError(t, err)
	p.ModifierGroups = append(p.ModifierGroups, *g)
	return &p.ModifierGroups[len(p.ModifierGroups)-1]
}

func TestProjectorSubmitsSlotsInOrder(t *testing.T) {
	shopID := uuid.New()
	repo := newMemSubproductRepo()
	pos := newFakePOS()

	mayoID := seedSubproduct(t, repo, shopID, "Mayo", i64(71))
	ketchupID := seedSubproduct(t, repo, shopID, "Ketchup", i64(72))

	p := newProjectableProduct(t, shopID, 50)
	addGroup(t, p, 2, "Extras", []uuid.UUID{ketchupID})
	addGroup(t, p, 1, "Sauce", []uuid.UUID{mayoID, ketchupID})

	var warnings []string
	projector := NewProjector(repo, zap.NewNop())
	err := projector.Project(context.Background(), pos, p, func(msg string) { warnings = append(warnings, msg) })
	require.NoError(t, err)

	assert.Empty(t, warnings)
	slots := pos.groups[50]
	require.Len(t, slots, 2)
	assert.Equal(t, "Sauce", slots[1].Title)
	assert.Equal(t, []int64{71, 72}, slots[1].MemberIDs)
	assert.Equal(t, "Extras", slots[2].Title)
	assert.Equal(t, []int64{72}, slots[2].MemberIDs)
}

func TestProjectorDropsUnlinkedMembers(t *testing.T) {
	shopID := uuid.New()
	repo := newMemSubproductRepo()
	pos := newFakePOS()

	mayoID := seedSubproduct(t, repo, shopID, "Mayo", i64(71))
	newSauceID := seedSubproduct(t, repo, shopID, "New Sauce", nil)

	p := newProjectableProduct(t, shopID, 50)
	addGroup(t, p, 1, "Sauce", []uuid.UUID{mayoID, newSauceID})

	var warnings []string
	projector := NewProjector(repo, zap.NewNop())
	err := projector.Project(context.Background(), pos, p, func(msg string) { warnings = append(warnings, msg) })
	require.NoError(t, err)

	// The group still projects with the members that do resolve
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], newSauceID.String())
	assert.Equal(t, []int64{71}, pos.groups[50][1].MemberIDs)
}

func TestProjectorCarriesGroupSettingsAndDefault(t *testing.T) {
	shopID := uuid.New()
	repo := newMemSubproductRepo()
	pos := newFakePOS()

	mayoID := seedSubproduct(t, repo, shopID, "Mayo", i64(71))
	ketchupID := seedSubproduct(t, repo, shopID, "Ketchup", i64(72))

	p := newProjectableProduct(t, shopID, 50)
	g := addGroup(t, p, 1, "Sauce", []uuid.UUID{mayoID, ketchupID})
	g.MultiSelect = true
	g.MinSelect = 1
	g.MaxSelect = 3
	g.RequiredOnWeb = true
	g.DefaultSubproductID = &mayoID

	projector := NewProjector(repo, zap.NewNop())
	err := projector.Project(context.Background(), pos, p, func(string) {})
	require.NoError(t, err)

	slot := pos.groups[50][1]
	assert.True(t, slot.MultiSelect)
	assert.Equal(t, 1, slot.MinSelect)
	assert.Equal(t, 3, slot.MaxSelect)
	assert.True(t, slot.RequiredOnWeb)
	assert.False(t, slot.RequiredOnRegister)
	assert.Equal(t, int64(71), slot.DefaultMemberID)
}

func TestProjectorTruncatesBeyondSlotLimit(t *testing.T) {
	shopID := uuid.New()
	repo := newMemSubproductRepo()
	pos := newFakePOS()

	mayoID := seedSubproduct(t, repo, shopID, "Mayo", i64(71))

	p := newProjectableProduct(t, shopID, 50)
	for slot := 1; slot <= catalog.MaxModifierSlots+2; slot++ {
		addGroup(t, p, slot, fmt.Sprintf("Group %d", slot), []uuid.UUID{mayoID})
	}

	var warnings []string
	projector := NewProjector(repo, zap.NewNop())
	err := projector.Project(context.Background(), pos, p, func(msg string) { warnings = append(warnings, msg) })
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Len(t, pos.groups[50], catalog.MaxModifierSlots)
	assert.NotContains(t, pos.groups[50], catalog.MaxModifierSlots+1)
}

func TestProjectorSkipsUnlinkedProduct(t *testing.T) {
	shopID := uuid.New()
	repo := newMemSubproductRepo()
	pos := newFakePOS()

	mayoID := seedSubproduct(t, repo, shopID, "Mayo", i64(71))

	p, err := catalog.NewProduct(shopID, "Small Fries", decimal.NewFromFloat(2.50))
	require.NoError(t, err)
	addGroup(t, p, 1, "Sauce", []uuid.UUID{mayoID})

	projector := NewProjector(repo, zap.NewNop())
	err = projector.Project(context.Background(), pos, p, func(string) {})
	require.NoError(t, err)
	assert.Equal(t, 0, pos.calls())
}

func TestProjectorPropagatesSubmitErrors(t *testing.T) {
	shopID := uuid.New()
	repo := newMemSubproductRepo()
	pos := newFakePOS()
	pos.failWith = fmt.Errorf("%w: bad slot", possync.ErrRemoteRejected)

	mayoID := seedSubproduct(t, repo, shopID, "Mayo", i64(71))

	p := newProjectableProduct(t, shopID, 50)
	addGroup(t, p, 1, "Sauce", []uuid.UUID{mayoID})

	projector := NewProjector(repo, zap.NewNop())
	err := projector.Project(context.Background(), pos, p, func(string) {})
	require.Error(t, err)
	assert.True(t, possync.IsSemantic(err))
}
