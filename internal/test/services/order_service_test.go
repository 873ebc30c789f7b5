package services_test

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/apperrors"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/realtime"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/services"
)

func newOrderService() (*services.OrderService, *fakeOrderStore, *fakeBus) {
	svc, store, bus, _ := newOrderServiceWithFiles()
	return svc, store, bus
}

func newOrderServiceWithFiles() (*services.OrderService, *fakeOrderStore, *fakeBus, *fakeFileStore) {
	store := newFakeOrderStore()
	files := &fakeFileStore{}
	bus := newFakeBus()
	svc := services.NewOrderService(store, files, bus, zap.NewNop().Sugar())
	return svc, store, bus, files
}

func TestOrderService_Create(t *testing.T) {
	svc, _, bus := newOrderService()
	clientID := uuid.New()

	order, err := svc.Create(clientID, models.OrderDetails{
		Description: "Oil portrait of two dogs",
		Size:        "40x60cm",
		Style:       "realism",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, clientID, order.ClientID)
	assert.False(t, order.ArtistID.Valid)
	assert.False(t, order.Price.Valid)

	events := bus.published(realtime.UserTopic(clientID))
	require.Len(t, events, 1)
	assert.Equal(t, realtime.EventOrderCreated, events[0].Type)
}

func TestOrderService_Create_EmptyDescription(t *testing.T) {
	svc, store, _ := newOrderService()

	_, err := svc.Create(uuid.New(), models.OrderDetails{Description: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// A rejected request leaves no trace.
	orders, _ := store.ListOrdersForClient(uuid.Nil)
	assert.Empty(t, orders)
}

func TestOrderService_Create_RequiresIdentity(t *testing.T) {
	svc, _, _ := newOrderService()

	_, err := svc.Create(uuid.Nil, models.OrderDetails{Description: "anything"})
	assert.ErrorIs(t, err, apperrors.ErrAuthRequired)
}

func TestOrderService_Get_NotFound(t *testing.T) {
	svc, _, _ := newOrderService()

	_, err := svc.Get(uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestOrderService_Lifecycle(t *testing.T) {
	svc, _, _ := newOrderService()
	clientID := uuid.New()
	artistID := uuid.New()

	order, err := svc.Create(clientID, models.OrderDetails{Description: "landscape"})
	require.NoError(t, err)

	priced, err := svc.Price(order.ID, artistID, []models.InvoiceMaterial{
		{Name: "canvas", Quantity: 1, UnitPrice: 40},
		{Name: "oil paint", Quantity: 3, UnitPrice: 12},
	}, 200, "two week turnaround")
	require.NoError(t, err)
	assert.Equal(t, models.OrderPriced, priced.Status)
	require.True(t, priced.Price.Valid)
	assert.Equal(t, 276.0, priced.Price.Float64)
	require.True(t, priced.ArtistID.Valid)
	assert.Equal(t, artistID, priced.ArtistID.UUID)

	var invoice models.Invoice
	require.NoError(t, json.Unmarshal(priced.Invoice, &invoice))
	assert.Equal(t, 276.0, invoice.Total)
	assert.Len(t, invoice.Materials, 2)

	inProgress, err := svc.UpdateStatus(order.ID, models.OrderInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.OrderInProgress, inProgress.Status)

	completed, err := svc.UpdateStatus(order.ID, models.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, completed.Status)
	assert.True(t, completed.CompletedAt.Valid)
}

func TestOrderService_UpdateStatus_IllegalMove(t *testing.T) {
	svc, _, _ := newOrderService()

	order, err := svc.Create(uuid.New(), models.OrderDetails{Description: "portrait"})
	require.NoError(t, err)

	// pending cannot jump straight to completed
	_, err = svc.UpdateStatus(order.ID, models.OrderCompleted)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = svc.UpdateStatus(order.ID, "shipped")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestOrderService_UpdateStatus_TerminalStates(t *testing.T) {
	svc, _, _ := newOrderService()

	order, err := svc.Create(uuid.New(), models.OrderDetails{Description: "portrait"})
	require.NoError(t, err)

	cancelled, err := svc.UpdateStatus(order.ID, models.OrderCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	for _, next := range []models.OrderStatus{
		models.OrderPending, models.OrderPriced, models.OrderInProgress,
		models.OrderCompleted, models.OrderCancelled,
	} {
		_, err := svc.UpdateStatus(order.ID, next)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition, "from cancelled to %s", next)
	}
}

func TestOrderService_Cancel_RemovesStoredFiles(t *testing.T) {
	svc, _, _, files := newOrderServiceWithFiles()
	clientID := uuid.New()
	artistID := uuid.New()

	order, err := svc.Create(clientID, models.OrderDetails{Description: "portrait"})
	require.NoError(t, err)
	_, err = svc.Price(order.ID, artistID, nil, 100, "")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(order.ID, models.OrderCancelled)
	require.NoError(t, err)

	// Uploads of both parties are cleared.
	deletions := files.deletions()
	require.Len(t, deletions, 2)
	assert.Equal(t, fileDeletion{UserID: clientID, OrderID: order.ID}, deletions[0])
	assert.Equal(t, fileDeletion{UserID: artistID, OrderID: order.ID}, deletions[1])
}

func TestOrderService_Complete_KeepsStoredFiles(t *testing.T) {
	svc, _, _, files := newOrderServiceWithFiles()

	order, err := svc.Create(uuid.New(), models.OrderDetails{Description: "portrait"})
	require.NoError(t, err)
	_, err = svc.Price(order.ID, uuid.New(), nil, 100, "")
	require.NoError(t, err)
	_, err = svc.UpdateStatus(order.ID, models.OrderInProgress)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(order.ID, models.OrderCompleted)
	require.NoError(t, err)

	assert.Empty(t, files.deletions())
}

func TestOrderService_Price_OnlyPending(t *testing.T) {
	svc, _, _ := newOrderService()
	artistID := uuid.New()

	order, err := svc.Create(uuid.New(), models.OrderDetails{Description: "portrait"})
	require.NoError(t, err)

	_, err = svc.Price(order.ID, artistID, nil, 100, "")
	require.NoError(t, err)

	// A second pricing attempt finds the order no longer pending.
	_, err = svc.Price(order.ID, artistID, nil, 150, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestOrderService_Price_NegativeAmounts(t *testing.T) {
	svc, _, _ := newOrderService()

	order, err := svc.Create(uuid.New(), models.OrderDetails{Description: "portrait"})
	require.NoError(t, err)

	_, err = svc.Price(order.ID, uuid.New(), nil, -1, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Price(order.ID, uuid.New(), []models.InvoiceMaterial{
		{Name: "canvas", Quantity: -2, UnitPrice: 40},
	}, 100, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestOrderService_AppendComment(t *testing.T) {
	svc, _, bus := newOrderService()
	clientID := uuid.New()

	order, err := svc.Create(clientID, models.OrderDetails{Description: "portrait"})
	require.NoError(t, err)

	comment, err := svc.AppendComment(order.ID, clientID, "can you make it brighter?")
	require.NoError(t, err)
	assert.Equal(t, order.ID, comment.OrderID)

	_, err = svc.AppendComment(order.ID, clientID, "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.AppendComment(uuid.New(), clientID, "hello")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	events := bus.published(realtime.OrderTopic(order.ID))
	require.Len(t, events, 1)
	assert.Equal(t, realtime.EventOrderComment, events[0].Type)
}

func TestOrderService_AppendComment_Concurrent(t *testing.T) {
	svc, _, _ := newOrderService()
	clientID := uuid.New()

	order, err := svc.Create(clientID, models.OrderDetails{Description: "portrait"})
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.AppendComment(order.ID, clientID, "note")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Append-only writes never overwrite each other.
	comments, err := svc.Comments(order.ID)
	require.NoError(t, err)
	assert.Len(t, comments, writers)
}

func TestOrderService_AppendAttachment(t *testing.T) {
	svc, _, _ := newOrderService()
	clientID := uuid.New()

	order, err := svc.Create(clientID, models.OrderDetails{Description: "portrait"})
	require.NoError(t, err)

	attachment, err := svc.AppendAttachment(order.ID, clientID, "https://cdn.example.com/ref.jpg", "ref.jpg", "users/x/orders/y/ref.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/ref.jpg", attachment.URL)

	_, err = svc.AppendAttachment(order.ID, clientID, "", "ref.jpg", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	attachments, err := svc.Attachments(order.ID)
	require.NoError(t, err)
	assert.Len(t, attachments, 1)
}

func TestOrderService_ListForClient_NewestFirst(t *testing.T) {
	svc, store, _ := newOrderService()
	clientID := uuid.New()

	first, err := svc.Create(clientID, models.OrderDetails{Description: "first"})
	require.NoError(t, err)
	second, err := svc.Create(clientID, models.OrderDetails{Description: "second"})
	require.NoError(t, err)
	third, err := svc.Create(clientID, models.OrderDetails{Description: "third"})
	require.NoError(t, err)

	// Pin timestamps so the first two collide and the third is newer.
	base := time.Now().UTC().Add(-time.Hour)
	store.mu.Lock()
	store.orders[first.ID].CreatedAt = base
	store.orders[second.ID].CreatedAt = base
	store.orders[third.ID].CreatedAt = base.Add(time.Minute)
	store.mu.Unlock()

	orders, err := svc.ListForClient(clientID)
	require.NoError(t, err)
	require.Len(t, orders, 3)

	// Newest first; the created_at tie keeps insertion order.
	assert.Equal(t, third.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	assert.Equal(t, second.ID, orders[2].ID)
}

func TestOrderService_ListForArtist(t *testing.T) {
	svc, _, _ := newOrderService()
	clientID := uuid.New()
	artistID := uuid.New()

	order, err := svc.Create(clientID, models.OrderDetails{Description: "portrait"})
	require.NoError(t, err)
	_, err = svc.Create(clientID, models.OrderDetails{Description: "landscape"})
	require.NoError(t, err)

	_, err = svc.Price(order.ID, artistID, nil, 100, "")
	require.NoError(t, err)

	mine, err := svc.ListForArtist(artistID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)

	all, err := svc.ListForClient(clientID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
