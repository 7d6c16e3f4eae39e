package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetDashboardStats     = "dashboard statistics retrieved successfully"
	MessageSuccessGetDashboardConfig    = "dashboard config retrieved successfully"
	MessageSuccessUpdateDashboardConfig = "dashboard config updated"
	MessageSuccessGetUsers              = "users retrieved successfully"
	MessageSuccessDeleteUser            = "user deleted"
	MessageSuccessGetRecentActivities   = "recent activities retrieved successfully"
	MessageSuccessGetTopDonors          = "top donors retrieved successfully"
	MessageSuccessGetTopUsers           = "top users retrieved successfully"
	MessageSuccessGetMonthlyStats       = "monthly statistics retrieved successfully"
	MessageSuccessGetWeeklyDonations    = "weekly donations retrieved successfully"
	MessageSuccessGetLocationStats      = "location statistics retrieved successfully"

	MessageFailedGetDashboardStats     = "dashboard error"
	MessageFailedUpdateDashboardConfig = "failed to update dashboard config"
	MessageFailedGetUsers              = "failed to fetch users"
	MessageFailedDeleteUser            = "error deleting user"
	MessageFailedGetRecentActivities   = "recent activity error"
	MessageFailedGetTopDonors          = "top donors error"
	MessageFailedGetTopUsers           = "error fetching top users"
	MessageFailedGetMonthlyStats       = "monthly stats error"
	MessageFailedGetWeeklyDonations    = "error getting donations"
	MessageFailedGetLocationStats      = "error fetching stats by location"

	ErrAggregationFailed = errors.New("aggregation failed")
	ErrInvalidWidget     = errors.New("invalid widget name")
	ErrUserNotFound      = errors.New("user not found")
)

const (
	DefaultTopLimit = 5
	MaxTopLimit     = 100
)

type (
	UserRoleCounts struct {
		NormalUserCount int64 `json:"normalUserCount"`
		NGOCount        int64 `json:"ngoCount"`
		RestaurantCount int64 `json:"restaurantCount"`
		RecyclerCount   int64 `json:"recyclerCount"`
	}

	FoodStats struct {
		TotalDonations     int64 `json:"totalDonations"`
		AvailableDonations int64 `json:"availableDonations"`
	}

	ClaimStats struct {
		TotalClaims  int64 `json:"totalClaims"`
		ClaimedCount int64 `json:"claimedCount"`
	}

	WasteStats struct {
		TotalWaste     int64 `json:"totalWaste"`
		CollectedWaste int64 `json:"collectedWaste"`
	}

	DashboardStats struct {
		TotalUsers       int64          `json:"totalUsers"`
		UserRoles        UserRoleCounts `json:"userRoles"`
		FoodStats        FoodStats      `json:"foodStats"`
		Claims           ClaimStats     `json:"claims"`
		WasteStats       WasteStats     `json:"wasteStats"`
		RecyclerRequests int64          `json:"recyclerRequests"`
	}

	TopDonorsRequest struct {
		Limit int
		Range DateRange
	}

	TopDonor struct {
		Name       string `json:"name"`
		Role       string `json:"role"`
		Quantity   int64  `json:"quantity"`
		Count      int64  `json:"count"`
		Percentage string `json:"percentage"`
	}

	TopDonorsResponse struct {
		TotalDonations int64      `json:"totalDonations"`
		TotalQuantity  int64      `json:"totalQuantity"`
		TopDonors      []TopDonor `json:"topDonors"`
	}

	TopUser struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Donations int64  `json:"donations"`
	}

	DailyCount struct {
		Date  string `json:"date"`
		Count int64  `json:"count"`
	}

	MonthlyCount struct {
		Month string `json:"month"`
		Count int64  `json:"count"`
	}

	LocationStatsRequest struct {
		Start  *time.Time
		End    *time.Time
		Status string
	}

	LocationCount struct {
		Location string `json:"location"`
		Count    int64  `json:"count"`
	}

	AdminUser struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
	}

	RecentActivities struct {
		RecentDonations []FoodResponse  `json:"recentDonations"`
		RecentClaims    []ClaimResponse `json:"recentClaims"`
		RecentWaste     []WasteResponse `json:"recentWaste"`
	}

	DashboardConfig struct {
		PermanentWidgets []string `json:"permanentWidgets"`
		OptionalWidgets  []string `json:"optionalWidgets"`
	}

	UpdateDashboardConfigRequest struct {
		Add    string `json:"add" validate:"omitempty,max=64"`
		Remove string `json:"remove" validate:"omitempty,max=64"`
	}
)
