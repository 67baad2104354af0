package postgres

import (
	"fmt"
	"strings"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
)

// ══════════════════════════════════════════════════════════════════════════════
// FILTER TO SQL TRANSLATION
//
// A MatchFilter is a conjunction of OR-groups. Each group becomes one
// parenthesized OR expression; all groups plus the active/exclusion guards
// are ANDed. Preference and room fields live in JSONB; a missing
// sub-object yields SQL NULL there, which fails every comparison exactly
// like the in-memory evaluation.
// ══════════════════════════════════════════════════════════════════════════════

// columnExpr maps filter fields onto SQL expressions. The room rent is
// wrapped in NULLIF so a listed rent of zero does not satisfy numeric
// bounds.
func columnExpr(field profile.Field) string {
	switch field {
	case profile.FieldName:
		return "name"
	case profile.FieldBio:
		return "bio"
	case profile.FieldCity:
		return "city"
	case profile.FieldState:
		return "state"
	case profile.FieldGender:
		return "gender"
	case profile.FieldGenderPref:
		return "preferences->>'gender_preference'"
	case profile.FieldFoodPref:
		return "preferences->>'food_preference'"
	case profile.FieldDuration:
		return "preferences->>'duration'"
	case profile.FieldRentMin:
		return "(preferences->'rent_range'->>'min')::int"
	case profile.FieldRentMax:
		return "(preferences->'rent_range'->>'max')::int"
	case profile.FieldRoomRent:
		return "NULLIF((room_details->>'rent')::int, 0)"
	default:
		return ""
	}
}

// buildFilterSQL renders the WHERE clause and its positional arguments.
func buildFilterSQL(filter profile.MatchFilter) (string, []interface{}) {
	conds := make([]string, 0, len(filter.Groups())+2)
	args := make([]interface{}, 0)

	if filter.ActiveOnly {
		conds = append(conds, "is_active = TRUE")
	}
	if !filter.ExcludeID.IsEmpty() {
		args = append(args, filter.ExcludeID.String())
		conds = append(conds, fmt.Sprintf("id <> $%d", len(args)))
	}

	for _, group := range filter.Groups() {
		ors := make([]string, 0, len(group.Clauses))
		for _, clause := range group.Clauses {
			expr := columnExpr(clause.Field)
			if expr == "" {
				continue
			}
			switch clause.Op {
			case profile.OpEq:
				args = append(args, clause.Str)
				ors = append(ors, fmt.Sprintf("%s = $%d", expr, len(args)))
			case profile.OpContains:
				args = append(args, "%"+escapeLike(clause.Str)+"%")
				ors = append(ors, fmt.Sprintf("%s ILIKE $%d", expr, len(args)))
			case profile.OpGTE:
				args = append(args, clause.Num)
				ors = append(ors, fmt.Sprintf("%s >= $%d", expr, len(args)))
			case profile.OpLTE:
				args = append(args, clause.Num)
				ors = append(ors, fmt.Sprintf("%s <= $%d", expr, len(args)))
			}
		}
		if len(ors) > 0 {
			conds = append(conds, "("+strings.Join(ors, " OR ")+")")
		}
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// escapeLike escapes LIKE metacharacters in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
