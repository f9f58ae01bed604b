package main

// @title           Expense Tracker API
// @version         1.0
// @description     Personal expense ledger with per-user ownership
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token
func main() {
	Execute()
}
