package model

// Admin is the operator returned by GET /admin/me
type Admin struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Credentials is the body of POST /admin/login
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is the payload of a successful login
type LoginResult struct {
	Token string `json:"token"`
	Admin *Admin `json:"admin,omitempty"`
}

// DashboardStats is GET /admin/dashboard; absent values stay zero
type DashboardStats struct {
	TotalOrders   int   `json:"totalOrders"`
	TotalRevenue  Money `json:"totalRevenue"`
	TotalProducts int   `json:"totalProducts"`
	TotalUsers    int   `json:"totalUsers"`
}

// Settings is the free-form shop settings document
type Settings map[string]interface{}
