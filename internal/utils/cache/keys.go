package cache

import "time"

const (
	KeyAdminUsers     = "admin:users:list"
	KeyAdminDashboard = "admin:dashboard"
	KeyAvailableFoods = "availableFoods:public"
	KeyAvailableWaste = "waste:available"

	TTLAdminUsers     = 5 * time.Minute
	TTLAdminDashboard = 30 * time.Second
	TTLAvailableFoods = time.Minute
	TTLAvailableWaste = 2 * time.Minute
	TTLMyClaims       = 30 * time.Second
)

func KeyMyClaims(userID string) string {
	return "myClaims:" + userID
}
