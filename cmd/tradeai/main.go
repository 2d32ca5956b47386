// Command tradeai validates AI model responses against schema documents from
// the command line.
//
//	tradeai validate -in response.json [-schema doc.yaml] [-lang en|ja] [-meta]
//	tradeai schema [-schema doc.yaml]
//
// Without -schema (or TRADEAI_SCHEMA) the built-in trade-signal schema is
// used. Exit codes: 0 valid, 1 violations, 2 usage or I/O failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	tradeai "github.com/Rupeshcybo/Trade-With-Ai"
	"github.com/Rupeshcybo/Trade-With-Ai/i18n"
	"github.com/Rupeshcybo/Trade-With-Ai/jsonschema"
	"github.com/Rupeshcybo/Trade-With-Ai/schemadoc"
	"github.com/Rupeshcybo/Trade-With-Ai/signal"
)

var log zerolog.Logger

func main() {
	// .env is optional; absence is not an error.
	_ = godotenv.Load()
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	case "schema":
		schemaCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `tradeai CLI

Usage:
  tradeai validate -in response.json [-schema doc.yaml] [-lang en|ja] [-meta]
  tradeai schema [-schema doc.yaml]

Environment:
  TRADEAI_SCHEMA  default schema document path
  TRADEAI_LANG    default message language (en/ja)`)
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var (
		in         = fs.String("in", "-", "input JSON file (- for stdin)")
		schemaPath = fs.String("schema", os.Getenv("TRADEAI_SCHEMA"), "schema document (yaml/json); empty uses the trade-signal schema")
		lang       = fs.String("lang", envOr("TRADEAI_LANG", "en"), "message language (en/ja)")
		meta       = fs.Bool("meta", false, "include presence metadata in the output")
	)
	_ = fs.Parse(args)
	i18n.SetLanguage(*lang)

	s, err := loadSchema(*schemaPath)
	if err != nil {
		log.Error().Err(err).Str("schema", *schemaPath).Msg("load schema")
		os.Exit(2)
	}
	data, err := readInput(*in)
	if err != nil {
		log.Error().Err(err).Str("in", *in).Msg("read input")
		os.Exit(2)
	}

	ctx := context.Background()
	if *meta {
		dec, err := tradeai.ParseFromWithMeta(ctx, s, tradeai.JSONBytes(data))
		if err != nil {
			reportFailure(err)
		}
		printJSON(map[string]any{"value": dec.Value, "presence": dec.Presence})
		return
	}
	rec, err := tradeai.ValidateJSON(ctx, s, data)
	if err != nil {
		reportFailure(err)
	}
	printJSON(rec)
}

func schemaCmd(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	schemaPath := fs.String("schema", os.Getenv("TRADEAI_SCHEMA"), "schema document (yaml/json); empty uses the trade-signal schema")
	_ = fs.Parse(args)

	s, err := loadSchema(*schemaPath)
	if err != nil {
		log.Error().Err(err).Str("schema", *schemaPath).Msg("load schema")
		os.Exit(2)
	}
	printJSON(jsonschema.FromSchema(s))
}

func loadSchema(path string) (*tradeai.Schema, error) {
	if path == "" {
		return signal.Schema, nil
	}
	doc, err := schemadoc.Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Compile()
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// reportFailure prints violations line by line and exits. Non-violation
// errors (malformed JSON, cancelled context) exit 2.
func reportFailure(err error) {
	vl, ok := tradeai.AsViolations(err)
	if !ok {
		log.Error().Err(err).Msg("validate")
		os.Exit(2)
	}
	for _, v := range vl {
		fmt.Fprintf(os.Stderr, "%s: %s (%s)\n", v.Path.JSONPointer(), i18n.T(v.Code, nil), v.Code)
	}
	log.Warn().Int("violations", len(vl)).Msg("input rejected")
	os.Exit(1)
}

func printJSON(v any) {
	out, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("encode output")
		os.Exit(2)
	}
	fmt.Println(string(out))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
