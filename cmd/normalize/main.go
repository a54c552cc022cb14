// Command normalize converts a saved incident listing into canonical incidents
// and prints them together with the district and crime-type summaries. It
// runs the same normalization as the feed service, so it can be used to check
// how a captured backend response will be interpreted.
//
// Usage:
//
//	go run ./cmd/normalize -in testdata/all_records.json
//	curl -s localhost:8000/all_records | go run ./cmd/normalize -strict -out snapshot.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/couchcryptid/dial112-incident-feed/internal/domain"
)

type output struct {
	Incidents  []domain.Incident         `json:"incidents"`
	Districts  []domain.DistrictSummary  `json:"districts"`
	CrimeTypes []domain.CrimeTypeSummary `json:"crime_types"`
	Bounds     *domain.MapBounds         `json:"bounds,omitempty"`
	Dropped    int                       `json:"dropped"`
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	in := fs.String("in", "", "listing JSON file (default stdin)")
	strict := fs.Bool("strict", false, "use the strict contract: JSON content type and a bare array")
	contentType := fs.String("content-type", "application/json", "content type to assume with -strict")
	out := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	body, err := readInput(*in, stdin)
	if err != nil {
		return err
	}

	var batch domain.Batch
	if *strict {
		batch, err = domain.NormalizeStrict(body, *contentType)
	} else {
		batch, err = domain.Normalize(body)
	}
	if err != nil {
		return fmt.Errorf("normalize (%s): %w", domain.ErrorKind(err), err)
	}

	result := output{
		Incidents:  batch.Incidents,
		Districts:  domain.SummarizeByDistrict(batch.Incidents),
		CrimeTypes: domain.SummarizeByCrimeType(batch.Incidents),
		Dropped:    batch.Dropped,
	}
	if b, ok := domain.Bounds(batch.Incidents); ok {
		result.Bounds = &b
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	data = append(data, '\n')

	if *out == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	return os.WriteFile(*out, data, 0o600)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
