package cli

import (
	"Admin-Console/internal/app/ds"

	"github.com/spf13/pflag"
)

// filtersFlag читает --filter key=value в критерии фильтрации. Без флага фильтр не задан (nil).
func filtersFlag(flags *pflag.FlagSet) (ds.Filters, error) {
	if !flags.Changed("filter") {
		return nil, nil
	}
	values, err := flags.GetStringToString("filter")
	if err != nil {
		return nil, err
	}
	filters := make(ds.Filters, len(values))
	for k, v := range values {
		filters[k] = v
	}
	return filters, nil
}
