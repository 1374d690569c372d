package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/models"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/providers"
	"github.com/farzanehfar/onthebeach-holiday-search-lib/internal/search"
)

type App struct {
	out io.Writer
	err io.Writer
}

func NewApp(stdout, stderr io.Writer) App {
	return App{out: stdout, err: stderr}
}

type searchFlags struct {
	From        string
	To          string
	Date        string
	Duration    string
	FlightsPath string
	HotelsPath  string
	JSON        bool
}

func newSearchFlagSet(name string, errOut io.Writer) (*flag.FlagSet, *searchFlags) {
	f := &searchFlags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&f.From, "from", "", `Departure airport code, "Any Airport" or "Any London Airport"`)
	fs.StringVar(&f.To, "to", "", "Destination airport code")
	fs.StringVar(&f.Date, "date", "", "Departure date YYYY-MM-DD")
	fs.StringVar(&f.Duration, "duration", "", "Number of nights")
	fs.StringVar(&f.FlightsPath, "flights", "data/flights.json", "Path to the flights JSON file")
	fs.StringVar(&f.HotelsPath, "hotels", "data/hotels.json", "Path to the hotels JSON file")
	fs.BoolVar(&f.JSON, "json", false, "Print the result as JSON")
	return fs, f
}

// Run searches once and writes the cheapest holiday to stdout.
func (a App) Run(ctx context.Context, args []string) error {
	fs, f := newSearchFlagSet("holidaysearch", a.err)
	if err := fs.Parse(args); err != nil {
		return wrapExitError(ExitInvalidUsage, err)
	}
	if fs.NArg() > 0 {
		return newExitError(ExitInvalidUsage, "unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	req, err := models.NewSearchRequest(f.From, f.To, f.Date, f.Duration)
	if err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if err := req.Validate(); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}

	p := providers.NewJSONFileProvider(f.FlightsPath, f.HotelsPath)
	flights, err := p.LoadFlights(ctx)
	if err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	hotels, err := p.LoadHotels(ctx)
	if err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}

	res, ok := search.Search(*req, flights, hotels)
	if !ok {
		if f.JSON {
			if err := a.writeJSON(map[string]any{"found": false, "result": nil}); err != nil {
				return err
			}
		} else {
			writePlainKV(a.out, "found", "false")
		}
		return wrapExitError(ExitNoMatches, ErrNoHoliday)
	}

	if f.JSON {
		return a.writeJSON(map[string]any{"found": true, "result": res})
	}
	writePlainKV(a.out,
		"found", "true",
		"flight", strconv.Itoa(res.Flight.ID),
		"hotel", strconv.Itoa(res.Hotel.ID),
		"total_price", res.TotalPrice.StringFixed(2),
	)
	return nil
}

func (a App) writeJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(b))
	return nil
}

func writePlainKV(w io.Writer, pairs ...string) {
	out := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, fmt.Sprintf("%s=%s", pairs[i], pairs[i+1]))
	}
	fmt.Fprintln(w, strings.Join(out, "\t"))
}
