package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/homecal/internal/datemath"
)

func newHolidaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays [year]",
		Short: "Print the US public holidays for a year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := time.Now().Year()
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				year = parsed
			}

			for _, h := range datemath.PublicHolidays(year) {
				fmt.Printf("%s  %s\n", h.Date, h.Name)
			}
			return nil
		},
	}

	return cmd
}
