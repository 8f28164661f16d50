package api

import (
	"io/fs"
	"time"

	"github.com/rpupo63/blog-service/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, maxBodyBytes int64, startupTime time.Time, assets fs.FS) *routeHandlers {
	return &routeHandlers{
		blogHandler:   newBlogHandler(database.BlogRepo(), maxBodyBytes),
		healthHandler: newHealthHandler(database, startupTime),
		staticHandler: newStaticHandler(assets),
	}
}
