package claim_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/entities"
	"Food-Rescue-Backend/internal/utils/cache"
	"Food-Rescue-Backend/internal/utils/mailing"
	"Food-Rescue-Backend/internal/utils/testdb"
	"Food-Rescue-Backend/pkg/claim"
	"Food-Rescue-Backend/pkg/food"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var now = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendMail(toEmail string, subject string, body string) error {
	args := m.Called(toEmail, subject, body)
	return args.Error(0)
}

type fixture struct {
	db         *gorm.DB
	service    claim.ClaimService
	restaurant *entities.User
	ngo        *entities.User
}

func newFixture(t *testing.T, mailer mailing.Mailer) *fixture {
	t.Helper()
	db := testdb.New(t)
	store := cache.NewStore(cache.NewMemoryCache(time.Minute), zap.NewNop())
	service := claim.NewClaimService(
		claim.NewClaimRepository(db),
		food.NewFoodRepository(db),
		mailer,
		store,
		clockwork.NewFakeClockAt(now),
		zap.NewNop(),
	)

	restaurant := &entities.User{Name: "Spice Hub", Email: "spice@example.com", Role: entities.RoleRestaurant}
	ngo := &entities.User{Name: "Helping Hands", Email: "hands@example.com", Role: entities.RoleNGO}
	require.NoError(t, db.Create(restaurant).Error)
	require.NoError(t, db.Create(ngo).Error)

	return &fixture{db: db, service: service, restaurant: restaurant, ngo: ngo}
}

func (f *fixture) food(t *testing.T, status string, donateReady bool, expiry time.Time) *entities.Food {
	t.Helper()
	posting := &entities.Food{
		Title:        "Dal rice",
		Quantity:     10,
		Status:       status,
		ExpiryTime:   expiry,
		DonateReady:  donateReady,
		RestaurantID: f.restaurant.ID,
	}
	require.NoError(t, f.db.Create(posting).Error)
	return posting
}

func TestGetClaimableFoods(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	ready := f.food(t, entities.FoodStatusAvailable, true, now.Add(time.Hour))
	f.food(t, entities.FoodStatusAvailable, false, now.Add(time.Hour))
	f.food(t, entities.FoodStatusAvailable, true, now.Add(-time.Hour))
	f.food(t, entities.FoodStatusDonated, true, now.Add(time.Hour))

	foods, err := f.service.GetClaimableFoods(ctx)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, ready.ID.String(), foods[0].ID)
	require.NotNil(t, foods[0].Restaurant)
	assert.Equal(t, "Spice Hub", foods[0].Restaurant.Name)
}

// staleLookupRepository never sees an existing claim, as happens when two
// requests for the same posting pass the lookup concurrently.
type staleLookupRepository struct {
	claim.ClaimRepository
}

func (staleLookupRepository) GetClaimByFoodAndUser(context.Context, string, string) (*entities.Claim, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestRequestClaimRace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	posting := f.food(t, entities.FoodStatusAvailable, true, now.Add(time.Hour))

	service := claim.NewClaimService(
		staleLookupRepository{claim.NewClaimRepository(f.db)},
		food.NewFoodRepository(f.db),
		nil,
		cache.NewStore(cache.NewMemoryCache(time.Minute), zap.NewNop()),
		clockwork.NewFakeClockAt(now),
		zap.NewNop(),
	)

	_, err := service.RequestClaim(ctx, domain.RequestClaimRequest{FoodID: posting.ID.String()}, f.ngo.ID.String())
	require.NoError(t, err)

	_, err = service.RequestClaim(ctx, domain.RequestClaimRequest{FoodID: posting.ID.String()}, f.ngo.ID.String())
	assert.ErrorIs(t, err, domain.ErrClaimAlreadyRequested)

	var count int64
	require.NoError(t, f.db.Model(&entities.Claim{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRequestClaim(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending claim once", func(t *testing.T) {
		f := newFixture(t, nil)
		posting := f.food(t, entities.FoodStatusAvailable, true, now.Add(time.Hour))

		resp, err := f.service.RequestClaim(ctx, domain.RequestClaimRequest{FoodID: posting.ID.String()}, f.ngo.ID.String())
		require.NoError(t, err)
		assert.Equal(t, entities.ClaimStatusPending, resp.Status)
		assert.True(t, resp.ClaimedAt.Equal(now))

		_, err = f.service.RequestClaim(ctx, domain.RequestClaimRequest{FoodID: posting.ID.String()}, f.ngo.ID.String())
		assert.ErrorIs(t, err, domain.ErrClaimAlreadyRequested)
	})

	t.Run("rejects postings that cannot be claimed", func(t *testing.T) {
		f := newFixture(t, nil)
		donated := f.food(t, entities.FoodStatusDonated, true, now.Add(time.Hour))
		notReady := f.food(t, entities.FoodStatusAvailable, false, now.Add(time.Hour))

		_, err := f.service.RequestClaim(ctx, domain.RequestClaimRequest{FoodID: donated.ID.String()}, f.ngo.ID.String())
		assert.ErrorIs(t, err, domain.ErrFoodNotClaimable)

		_, err = f.service.RequestClaim(ctx, domain.RequestClaimRequest{FoodID: notReady.ID.String()}, f.ngo.ID.String())
		assert.ErrorIs(t, err, domain.ErrFoodNotClaimable)

		_, err = f.service.RequestClaim(ctx, domain.RequestClaimRequest{FoodID: f.restaurant.ID.String()}, f.ngo.ID.String())
		assert.ErrorIs(t, err, domain.ErrFoodNotClaimable)
	})

	t.Run("refreshes my claims", func(t *testing.T) {
		f := newFixture(t, nil)
		first := f.food(t, entities.FoodStatusAvailable, true, now.Add(time.Hour))
		second := f.food(t, entities.FoodStatusAvailable, true, now.Add(2*time.Hour))

		_, err := f.service.RequestClaim(ctx, domain.RequestClaimRequest{FoodID: first.ID.String()}, f.ngo.ID.String())
		require.NoError(t, err)
		claims, err := f.service.GetMyClaims(ctx, f.ngo.ID.String())
		require.NoError(t, err)
		require.Len(t, claims, 1)
		require.NotNil(t, claims[0].Food)
		assert.Equal(t, "Dal rice", claims[0].Food.Title)

		_, err = f.service.RequestClaim(ctx, domain.RequestClaimRequest{FoodID: second.ID.String()}, f.ngo.ID.String())
		require.NoError(t, err)
		claims, err = f.service.GetMyClaims(ctx, f.ngo.ID.String())
		require.NoError(t, err)
		assert.Len(t, claims, 2)
	})
}

func TestUpdateClaimStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("approval donates the posting and notifies the claimant", func(t *testing.T) {
		mailer := &mockMailer{}
		mailer.On("SendMail", "hands@example.com", "Claim accepted", mock.AnythingOfType("string")).Return(nil).Once()
		f := newFixture(t, mailer)
		posting := f.food(t, entities.FoodStatusAvailable, true, now.Add(time.Hour))
		created, err := f.service.RequestClaim(ctx, domain.RequestClaimRequest{FoodID: posting.ID.String()}, f.ngo.ID.String())
		require.NoError(t, err)

		resp, err := f.service.UpdateClaimStatus(ctx, created.ID, domain.UpdateClaimStatusRequest{Status: "APPROVED"})
		require.NoError(t, err)
		assert.Equal(t, entities.ClaimStatusAccepted, resp.Status)

		var stored entities.Food
		require.NoError(t, f.db.First(&stored, "id = ?", posting.ID).Error)
		assert.Equal(t, entities.FoodStatusDonated, stored.Status)

		claims, err := f.service.GetMyClaims(ctx, f.ngo.ID.String())
		require.NoError(t, err)
		require.Len(t, claims, 1)
		assert.Equal(t, entities.ClaimStatusAccepted, claims[0].Status)
		mailer.AssertExpectations(t)
	})

	t.Run("rejection leaves the posting available", func(t *testing.T) {
		mailer := &mockMailer{}
		mailer.On("SendMail", mock.Anything, "Claim rejected", mock.Anything).Return(errors.New("smtp down"))
		f := newFixture(t, mailer)
		posting := f.food(t, entities.FoodStatusAvailable, true, now.Add(time.Hour))
		created, err := f.service.RequestClaim(ctx, domain.RequestClaimRequest{FoodID: posting.ID.String()}, f.ngo.ID.String())
		require.NoError(t, err)

		resp, err := f.service.UpdateClaimStatus(ctx, created.ID, domain.UpdateClaimStatusRequest{Status: "rejected"})
		require.NoError(t, err)
		assert.Equal(t, entities.ClaimStatusRejected, resp.Status)

		var stored entities.Food
		require.NoError(t, f.db.First(&stored, "id = ?", posting.ID).Error)
		assert.Equal(t, entities.FoodStatusAvailable, stored.Status)
	})

	t.Run("approval never revives an expired posting", func(t *testing.T) {
		f := newFixture(t, nil)
		posting := f.food(t, entities.FoodStatusAvailable, true, now.Add(time.Hour))
		created, err := f.service.RequestClaim(ctx, domain.RequestClaimRequest{FoodID: posting.ID.String()}, f.ngo.ID.String())
		require.NoError(t, err)
		require.NoError(t, f.db.Model(posting).Update("status", entities.FoodStatusExpired).Error)

		_, err = f.service.UpdateClaimStatus(ctx, created.ID, domain.UpdateClaimStatusRequest{Status: "ACCEPTED"})
		require.NoError(t, err)

		var stored entities.Food
		require.NoError(t, f.db.First(&stored, "id = ?", posting.ID).Error)
		assert.Equal(t, entities.FoodStatusExpired, stored.Status)
	})

	t.Run("invalid status and unknown claim", func(t *testing.T) {
		f := newFixture(t, nil)

		_, err := f.service.UpdateClaimStatus(ctx, f.ngo.ID.String(), domain.UpdateClaimStatusRequest{Status: "PENDING"})
		assert.ErrorIs(t, err, domain.ErrInvalidClaimStatus)

		_, err = f.service.UpdateClaimStatus(ctx, f.ngo.ID.String(), domain.UpdateClaimStatusRequest{Status: "ACCEPTED"})
		assert.ErrorIs(t, err, domain.ErrClaimNotFound)
	})
}
