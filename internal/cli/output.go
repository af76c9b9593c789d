package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"
)

const (
	jsonFormat = "json"
	yamlFormat = "yaml"
)

var (
	legalOutputTypes = []string{jsonFormat, yamlFormat}
)

func validateOutput(output string) error {
	if len(output) > 0 && !funk.Contains(legalOutputTypes, output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

func outputUsage() string {
	return fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", "))
}

// printOutput writes v as json or yaml, or calls table for the default human-readable format.
func printOutput(w io.Writer, output string, v any, table func(w *tabwriter.Writer)) error {
	switch output {
	case jsonFormat:
		marshalled, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling resource: %w", err)
		}
		fmt.Fprintf(w, "%s\n", string(marshalled))
		return nil
	case yamlFormat:
		marshalled, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshalling resource: %w", err)
		}
		fmt.Fprint(w, string(marshalled))
		return nil
	default:
		tw := tabwriter.NewWriter(w, 0, 8, 1, '\t', 0)
		table(tw)
		return tw.Flush()
	}
}
