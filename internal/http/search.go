package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-admin/internal/auth"
	"library-admin/internal/search"
)

// SearchController serves the cross-entity global search page.
type SearchController struct {
	search   *search.Service
	sessions *auth.SessionManager
}

// NewSearchController creates a new global search controller.
func NewSearchController(service *search.Service, sessions *auth.SessionManager) *SearchController {
	return &SearchController{search: service, sessions: sessions}
}

// Global fans the query out across the selected entity types and shows a
// capped preview per type.
func (sc *SearchController) Global(c *gin.Context) {
	query := c.Query("q")
	searchType := search.ParseType(c.DefaultQuery("type", "all"))

	results, err := sc.search.Global(query, searchType)
	if err != nil {
		c.String(http.StatusInternalServerError, "Search failed")
		return
	}

	render(c, sc.sessions, "search_results.html", gin.H{
		"Title":   "Search",
		"Results": results,
		"Query":   results.Query,
		"Type":    string(results.Type),
	})
}
