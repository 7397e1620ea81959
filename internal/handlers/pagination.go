package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/odm275/dev-network/internal/store"
)

// likeEscaper makes search text match literally under LIKE's default
// backslash escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// maxPageLimit caps an explicit limit. Without one every row is returned.
const maxPageLimit = 200

func parseListQueryParams(
	rawLimit string,
	rawOffset string,
	rawSearch string,
	maxLimit int,
) store.ListParams {
	limit := 0
	if parsedLimit, err := strconv.Atoi(strings.TrimSpace(rawLimit)); err == nil && parsedLimit > 0 {
		limit = parsedLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	offset := 0
	if parsedOffset, err := strconv.Atoi(strings.TrimSpace(rawOffset)); err == nil && parsedOffset >= 0 {
		offset = parsedOffset
	}

	pattern := ""
	if search := strings.TrimSpace(rawSearch); search != "" {
		pattern = "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
	}

	return store.ListParams{
		Limit:   limit,
		Offset:  offset,
		Pattern: pattern,
	}
}

func listParams(c *gin.Context) store.ListParams {
	return parseListQueryParams(c.Query("limit"), c.Query("offset"), c.Query("search"), maxPageLimit)
}
