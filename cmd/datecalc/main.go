// Command datecalc inspects and manipulates calendar values from the
// command line.
//
//	datecalc info 2024-02-29
//	datecalc add 2008-01-31T10:00 P1M-1D
//	datecalc resolve 2021-03-28T02:30 --zone Europe/Berlin --strategy strict
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-chrono/civil"
	"github.com/ngrash/go-chrono/tzrules"
	"github.com/ngrash/go-chrono/zone"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "datecalc",
		Short:         "Calendar arithmetic and time zone resolution",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(infoCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(resolveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <date>",
		Short: "Show the calendar fields of a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := civil.ParseDate(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("date:            %v\n", d)
			fmt.Printf("weekday:         %v\n", d.Weekday())
			fmt.Printf("day of year:     %d\n", d.DayOfYear())
			fmt.Printf("leap year:       %v\n", d.IsLeapYear())
			fmt.Printf("length of month: %d\n", d.LengthOfMonth())
			fmt.Printf("epoch day:       %d\n", d.EpochDay())
			fmt.Printf("modified julian: %d\n", d.ModifiedJulianDay())
			return nil
		},
	}
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <date-time> <amount>",
		Short: "Add an ISO-8601 period or duration to a date-time",
		Long: `Add an ISO-8601 amount to a date or date-time.

A leading P marks a period (calendar units, e.g. P1Y2M3D or P1MT15M);
PT marks a time-only amount that is applied as an exact duration.

Example:
  datecalc add 2008-01-31T10:00 P1M-1D
  datecalc add 2021-01-01T00:00 PT36H`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := parseDateOrDateTime(args[0])
			if err != nil {
				return err
			}
			p, err := civil.ParsePeriod(args[1])
			if err != nil {
				return err
			}
			sum, err := dt.AddPeriod(p)
			if err != nil {
				return err
			}
			fmt.Println(sum)
			return nil
		},
	}
}

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <date-time>",
		Short: "Resolve a local date-time in a time zone",
		Long: `Resolve a local date-time against a zone's rules, reporting the
offset and whether the input fell into a DST gap or overlap.

Strategies: strict, pre, post, retain.

Example:
  datecalc resolve 2021-03-28T02:30 --zone Europe/Berlin
  datecalc resolve 2021-10-31T02:30 --zone Europe/Berlin --strategy pre`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zoneName, _ := cmd.Flags().GetString("zone")
			strategy, _ := cmd.Flags().GetString("strategy")

			dt, err := parseDateOrDateTime(args[0])
			if err != nil {
				return err
			}
			z, err := tzrules.Load(zoneName)
			if err != nil {
				return err
			}
			resolver, err := resolverByName(strategy)
			if err != nil {
				return err
			}

			info := z.Rules().OffsetInfo(dt)
			switch {
			case info.Transition == nil:
				fmt.Println("valid: single offset")
			case info.Transition.IsGap():
				fmt.Printf("gap: %v to %v\n", info.Transition.DateTimeBefore(), mustDateTimeAfter(info.Transition))
			default:
				fmt.Printf("overlap: offsets %v and %v\n", info.Transition.After, info.Transition.Before)
			}

			zdt, err := zone.FromLocal(dt, z, resolver)
			if err != nil {
				return err
			}
			fmt.Printf("resolved:     %v\n", zdt)
			fmt.Printf("epoch second: %d\n", zdt.EpochSecond())
			return nil
		},
	}

	cmd.Flags().String("zone", "UTC", "IANA zone identifier")
	cmd.Flags().String("strategy", "strict", "Gap/overlap strategy (strict, pre, post, retain)")

	return cmd
}

// parseDateOrDateTime accepts a plain date, which is taken at midnight.
func parseDateOrDateTime(s string) (civil.DateTime, error) {
	if strings.ContainsRune(s, 'T') {
		return civil.ParseDateTime(s)
	}
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.DateTime{}, err
	}
	return d.AtStartOfDay(), nil
}

func resolverByName(name string) (zone.Resolver, error) {
	switch name {
	case "strict":
		return zone.ResolveStrict, nil
	case "pre":
		return zone.ResolvePreTransition, nil
	case "post":
		return zone.ResolvePostTransition, nil
	case "retain":
		return zone.ResolveRetainOffset, nil
	}
	return nil, fmt.Errorf("unknown strategy %q (use strict, pre, post or retain)", name)
}

func mustDateTimeAfter(t *zone.Transition) civil.DateTime {
	dt, err := t.DateTimeAfter()
	if err != nil {
		return t.Local
	}
	return dt
}
