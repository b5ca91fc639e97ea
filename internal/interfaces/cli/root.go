// Package cli exposes the calculators as a command-line tool. Requests are
// read as JSON from a file or stdin, in the same shape the HTTP API accepts.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/hapkiduki/loadplan-go/internal/application/dto"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Calculator is the subset of the calculator service the CLI needs.
type Calculator interface {
	CenterOfGravity(ctx context.Context, req dto.CenterOfGravityRequest) (*dto.CenterOfGravityResponse, error)
	AxleCenterOfGravity(ctx context.Context, req dto.AxleCenterOfGravityRequest) (*dto.CenterOfGravityResponse, error)
	Restraint(ctx context.Context, req dto.RestraintRequest) (*dto.RestraintResponse, error)
	ContainerFit(ctx context.Context, req dto.ContainerFitRequest) (*dto.ContainerFitResponse, error)
	Containers() []dto.ContainerProfileResponse
}

// app carries what every subcommand shares.
type app struct {
	calc   Calculator
	stdin  io.Reader
	output string
}

// NewRootCommand builds the loadplan command tree.
//
// Parameters:
//   - calc: calculator service
//   - version: reported by --version
//
// Returns:
//   - *cobra.Command: root command; set In/Out/Err on it for tests
func NewRootCommand(calc Calculator, version string) *cobra.Command {
	a := &app{calc: calc}

	root := &cobra.Command{
		Use:   "loadplan",
		Short: "Load-planning calculators for vehicle transport.",
		Long: `loadplan computes the centre of gravity of a load, sizes direct lashing
for forward, rearward and lateral restraint, and checks whether an asset
fits through the door and inside an ISO container.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.stdin = cmd.InOrStdin()
			switch a.output {
			case OutputText, OutputJSON:
				return nil
			}
			return fmt.Errorf("unknown output format %q; use text or json", a.output)
		},
	}
	root.PersistentFlags().StringVarP(&a.output, "output", "o", OutputText, "output format: text or json")

	root.AddCommand(
		a.cogCommand(),
		a.axlesCommand(),
		a.restraintCommand(),
		a.containerCommand(),
		a.containersCommand(),
	)
	return root
}

// readRequest decodes a JSON request from path, or stdin when path is "-".
// Unknown fields are rejected so that a misspelt key does not silently
// become a zero.
func (a *app) readRequest(path string, v any) error {
	var r io.Reader = a.stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open request file: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode request: %w", err)
	}
	return nil
}

// write renders v as indented JSON, or calls text for the text format.
func (a *app) write(w io.Writer, v any, text func(io.Writer) error) error {
	if a.output == OutputJSON {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	}
	return text(w)
}

func addFileFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "file", "f", "-", `JSON request file, "-" for stdin`)
}
