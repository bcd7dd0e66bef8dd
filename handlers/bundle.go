package handlers

import (
	userRepoPkg "github.com/DDismyname28/home-portal/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	Auth    *AuthHandler
	Request *RequestHandler
	Vendor  *VendorHandler
	Catalog *CatalogHandler
	Report  *ReportHandler
}
