package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/deppfellow/world-api/internal/database"
	"github.com/deppfellow/world-api/internal/handler"
	"github.com/deppfellow/world-api/internal/lib/utils"
	"github.com/deppfellow/world-api/internal/model"
	"github.com/deppfellow/world-api/internal/repository"
	"github.com/deppfellow/world-api/internal/service"
	"github.com/spf13/cobra"
)

const defaultCityName = "Tokyo"

var (
	cityJSON      bool
	cityPrecision int
)

var cityCmd = &cobra.Command{
	Use:   "city [name]",
	Short: "Print a city's population and its share of the country's population",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCity,
}

func init() {
	cityCmd.Flags().BoolVar(&cityJSON, "json", false, "Print the result as JSON")
	cityCmd.Flags().IntVar(&cityPrecision, "precision", 2, "Decimals of the printed percentage")
	rootCmd.AddCommand(cityCmd)
}

func runCity(cmd *cobra.Command, args []string) error {
	name := defaultCityName
	if len(args) > 0 {
		name = args[0]
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.loggerService.Shutdown()

	db, err := database.New(a.cfg, &a.log, a.loggerService)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repository.NewCityRepository(db.Pool)
	return describeCity(cmd.Context(), cmd.OutOrStdout(), name,
		service.NewLookupService(repo, nil),
		service.NewRatioService(repo, nil),
	)
}

// describeCity writes the population report for name to w. A missing
// city, or a country the share cannot be computed against, is reported
// rather than returned as an error.
func describeCity(ctx context.Context, w io.Writer, name string, lookup *service.LookupService, ratio *service.RatioService) error {
	city, err := lookup.Lookup(ctx, name)
	if err != nil {
		return err
	}
	if city == nil {
		_, err := fmt.Fprintf(w, "no such city Name = '%s'\n", name)
		return err
	}

	share, ratioErr := ratio.ComputeRatio(ctx, *city)
	if ratioErr != nil && !errors.Is(ratioErr, model.ErrNotFound) && !errors.Is(ratioErr, model.ErrDivisionUndefined) {
		return ratioErr
	}

	if cityJSON {
		if ratioErr != nil {
			return utils.PrintJSON(w, city)
		}
		return utils.PrintJSON(w, handler.CityRatioResponse{City: *city, Ratio: share})
	}

	if _, err := fmt.Fprintf(w, "%s's population is %d\n", city.Name, city.Population); err != nil {
		return err
	}

	if ratioErr != nil {
		_, err = fmt.Fprintf(w, "share of %s's population is unavailable: %v\n", city.CountryCode, ratioErr)
		return err
	}

	_, err = fmt.Fprintf(w, "This is %s of %s's population\n", utils.Percent(share, cityPrecision), city.CountryCode)
	return err
}
