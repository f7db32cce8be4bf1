package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/CampusLinkHQ/CampusLink/app/models"
)

func TestRideListUpcomingOrdersAndFilters(t *testing.T) {
	db := newTestDB(t)
	repos := NewRepositories(db)
	now := time.Now()

	past := models.Ride{OwnerID: 1, OwnerRole: models.RoleStudent, Origin: "Campus", Destination: "Airport", DepartAt: now.Add(-2 * time.Hour), Seats: 2}
	soon := models.Ride{OwnerID: 1, OwnerRole: models.RoleStudent, Origin: "Campus", Destination: "Station", DepartAt: now.Add(1 * time.Hour), Seats: 3}
	later := models.Ride{OwnerID: 2, OwnerRole: models.RoleFaculty, Origin: "Campus", Destination: "Mall", DepartAt: now.Add(5 * time.Hour), Seats: 1}
	for _, r := range []*models.Ride{&past, &later, &soon} {
		require.NoError(t, repos.Rides.Create(r))
	}

	rides, err := repos.Rides.ListUpcoming(now, 10)
	require.NoError(t, err)
	require.Len(t, rides, 2)
	assert.Equal(t, "Station", rides[0].Destination)
	assert.Equal(t, "Mall", rides[1].Destination)
}

func TestRideDeleteHidesFromListing(t *testing.T) {
	db := newTestDB(t)
	repos := NewRepositories(db)

	ride := models.Ride{OwnerID: 1, OwnerRole: models.RoleStudent, Origin: "A", Destination: "B", DepartAt: time.Now().Add(time.Hour), Seats: 1}
	require.NoError(t, repos.Rides.Create(&ride))
	require.NotEmpty(t, ride.UUID)

	found, err := repos.Rides.GetByUUID(ride.UUID)
	require.NoError(t, err)
	require.NoError(t, repos.Rides.Delete(found.ID))

	_, err = repos.Rides.GetByUUID(ride.UUID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestChatRecentByRoomChronological(t *testing.T) {
	db := newTestDB(t)
	repos := NewRepositories(db)

	for _, body := range []string{"one", "two", "three"} {
		require.NoError(t, repos.Chat.Create(&models.ChatMessage{
			Room: "general", SenderID: 1, SenderRole: models.RoleStudent, SenderName: "Jordan", Body: body,
		}))
	}
	require.NoError(t, repos.Chat.Create(&models.ChatMessage{
		Room: "other", SenderID: 2, SenderRole: models.RoleStudent, SenderName: "Kim", Body: "elsewhere",
	}))

	messages, err := repos.Chat.RecentByRoom("general", 2)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "two", messages[0].Body)
	assert.Equal(t, "three", messages[1].Body)
}
