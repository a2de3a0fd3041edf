package main

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// print writes v to the CLI output in the configured format.
func (cli *commandLine) print(v interface{}) error {
	switch cli.output {
	case outputYAML:
		enc := yaml.NewEncoder(cli.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding yaml output")
		}
		return errors.Wrap(enc.Close(), "encoding yaml output")
	case outputJSON, "":
		enc := json.NewEncoder(cli.out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "encoding json output")
	default:
		return errors.Errorf("unknown output format %q", cli.output)
	}
}

func (cli *commandLine) printf(format string, args ...interface{}) {
	fmt.Fprintf(cli.out, format+"\n", args...)
}
