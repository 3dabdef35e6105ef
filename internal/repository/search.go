package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsFold matches rows where any of columns contains query literally, ignoring case.
func containsFold(db *gorm.DB, query string, columns ...string) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(query) + "%"
	expr := `LOWER(%s) LIKE ? ESCAPE '\'`
	if strings.EqualFold(db.Name(), "postgres") { //nolint:staticcheck
		expr = `%s ILIKE ? ESCAPE '\'`
	} else {
		pattern = strings.ToLower(pattern)
	}
	conds := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		conds = append(conds, fmt.Sprintf(expr, col))
		args = append(args, pattern)
	}
	return db.Where("("+strings.Join(conds, " OR ")+")", args...)
}
