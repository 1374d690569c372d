package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

var dataFlags = []string{"-flights", "../../data/flights.json", "-hotels", "../../data/hotels.json"}

func runCLI(args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	err := NewApp(&stdout, &stderr).Run(context.Background(), append(append([]string{}, dataFlags...), args...))
	return stdout.String(), err
}

func TestRun_ExitCodes(t *testing.T) {
	cases := []struct {
		name     string
		args     []string
		exitCode int
		stdout   string
	}{
		{
			name:     "found",
			args:     []string{"-from", "MAN", "-to", "AGP", "-date", "2023-07-01", "-duration", "7"},
			exitCode: ExitSuccess,
			stdout:   "found=true\tflight=2\thotel=9\ttotal_price=826.00\n",
		},
		{
			name:     "any london airport",
			args:     []string{"-from", "Any London Airport", "-to", "PMI", "-date", "2023-06-15", "-duration", "10"},
			exitCode: ExitSuccess,
			stdout:   "found=true\tflight=6\thotel=5\ttotal_price=675.00\n",
		},
		{
			name:     "no match",
			args:     []string{"-from", "MAN", "-to", "PMI", "-date", "2025-01-01", "-duration", "5"},
			exitCode: ExitNoMatches,
			stdout:   "found=false\n",
		},
		{
			name:     "missing flags",
			args:     []string{"-from", "MAN"},
			exitCode: ExitInvalidUsage,
		},
		{
			name:     "invalid airport",
			args:     []string{"-from", "MANC", "-to", "PMI", "-date", "2023-06-15", "-duration", "10"},
			exitCode: ExitInvalidUsage,
		},
		{
			name:     "unknown flag",
			args:     []string{"-bogus"},
			exitCode: ExitInvalidUsage,
		},
		{
			name:     "missing dataset",
			args:     []string{"-from", "MAN", "-to", "AGP", "-date", "2023-07-01", "-duration", "7", "-flights", "nope.json"},
			exitCode: ExitGenericFailure,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, err := runCLI(tc.args...)
			if got := ExitCode(err); got != tc.exitCode {
				t.Fatalf("exit code=%d want=%d err=%v", got, tc.exitCode, err)
			}
			if tc.stdout != "" && stdout != tc.stdout {
				t.Fatalf("stdout=%q want=%q", stdout, tc.stdout)
			}
		})
	}
}

func TestRun_JSON(t *testing.T) {
	stdout, err := runCLI("-json", "-from", "any airport", "-to", "LPA", "-date", "2022-11-10", "-duration", "14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload struct {
		Found  bool `json:"found"`
		Result struct {
			Flight     struct{ ID int } `json:"flight"`
			Hotel      struct{ ID int } `json:"hotel"`
			TotalPrice string           `json:"total_price"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if !payload.Found || payload.Result.Flight.ID != 7 || payload.Result.Hotel.ID != 6 || payload.Result.TotalPrice != "1175" {
		t.Fatalf("unexpected payload: %s", stdout)
	}
}

func TestRun_NoMatchWrapsSentinel(t *testing.T) {
	_, err := runCLI("-from", "MAN", "-to", "PMI", "-date", "2025-01-01", "-duration", "5")
	if !errors.Is(err, ErrNoHoliday) {
		t.Fatalf("expected ErrNoHoliday, got %v", err)
	}
	if !strings.Contains(err.Error(), "no matching holiday") {
		t.Fatalf("unexpected message %q", err)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "generic", err: errors.New("boom"), want: ExitGenericFailure},
		{name: "usage", err: newExitError(ExitInvalidUsage, "bad args"), want: ExitInvalidUsage},
		{name: "already wrapped", err: wrapExitError(ExitGenericFailure, newExitError(ExitNoMatches, "none")), want: ExitNoMatches},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCode(tc.err); got != tc.want {
				t.Fatalf("ExitCode() = %d, want %d", got, tc.want)
			}
		})
	}
}
