// Command schema writes the JSON schema of the socials config file.
// With --check it only reports whether the existing file is up to date.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/Clapiton/socials/pkg/config"
)

type opts struct {
	Check bool `long:"check" description:"fail if the schema file is stale instead of writing it"`
	Args  struct {
		Output string `positional-arg-name:"output" default:"schema.json"`
	} `positional-args:"yes"`
}

func main() {
	var o opts
	if _, err := flags.Parse(&o); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if o.Args.Output == "" {
		o.Args.Output = "schema.json"
	}

	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "schema: %v\n", err)
		os.Exit(1)
	}
}

func run(o opts) error {
	schema, err := config.GenerateSchema()
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if o.Check {
		current, err := os.ReadFile(o.Args.Output)
		if err != nil {
			return fmt.Errorf("read %s: %w", o.Args.Output, err)
		}
		if !bytes.Equal(bytes.TrimSpace(current), bytes.TrimSpace(data)) {
			return fmt.Errorf("%s is stale, run go generate ./pkg/config", o.Args.Output)
		}
		fmt.Printf("%s is up to date\n", o.Args.Output)
		return nil
	}

	if err := os.WriteFile(o.Args.Output, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		return fmt.Errorf("write %s: %w", o.Args.Output, err)
	}
	fmt.Printf("schema written to %s\n", o.Args.Output)
	return nil
}
