package api

import (
	"slices"
	"sort"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/samber/lo"

	domainerrors "github.com/bookcatalog/catalog-server/internal/errors"
)

// queryPresence records which allowed query keys a request carried, even
// when their value is empty. Any other key fails validation.
type queryPresence map[string]bool

func resolveQuery(ctx huma.Context, allowed ...string) (queryPresence, error) {
	values := ctx.URL().Query()

	unknown := lo.Filter(lo.Keys(values), func(key string, _ int) bool {
		return !slices.Contains(allowed, key)
	})
	if len(unknown) > 0 {
		sort.Strings(unknown)
		details := lo.SliceToMap(unknown, func(key string) (string, string) {
			return key, "is not a supported query parameter"
		})
		return nil, domainerrors.ValidationWithDetails(
			"unsupported query parameters: "+strings.Join(unknown, ", ")+"; supported: "+strings.Join(allowed, ", "),
			details,
		)
	}

	present := make(queryPresence, len(allowed))
	for _, key := range allowed {
		present[key] = values.Has(key)
	}
	return present, nil
}
