package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/hapkiduki/loadplan-go/internal/application/dto"
)

func (a *app) cogCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "cog",
		Short: "Centre of gravity of a set of mass points",
		Long: `Computes the mass-weighted centre of gravity of the points in the request:
{"points":[{"name":"engine","mass":800,"x":1.2,"y":0,"z":0.6}]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.CenterOfGravityRequest
			if err := a.readRequest(file, &req); err != nil {
				return err
			}
			resp, err := a.calc.CenterOfGravity(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), resp, func(w io.Writer) error {
				return printCenterOfGravity(w, resp)
			})
		},
	}
	addFileFlag(cmd, &file)
	return cmd
}

func (a *app) axlesCommand() *cobra.Command {
	var (
		file              string
		frontMass, frontX float64
		rearMass, rearX   float64
	)
	cmd := &cobra.Command{
		Use:   "axles",
		Short: "Longitudinal centre of gravity from axle weights",
		Long: `Computes the centre of gravity from weighed front and rear axle loads.
Pass the loads as flags, or a request file when no axle flag is set:
{"front_axle":{"mass":1100,"x":0.5},"rear_axle":{"mass":900,"x":3.35}}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.AxleCenterOfGravityRequest
			flags := cmd.Flags()
			if flags.Changed("front-mass") || flags.Changed("rear-mass") ||
				flags.Changed("front-x") || flags.Changed("rear-x") {
				req.FrontAxle = dto.AxleRequest{Mass: dto.FormNumber(frontMass), X: dto.FormNumber(frontX)}
				req.RearAxle = dto.AxleRequest{Mass: dto.FormNumber(rearMass), X: dto.FormNumber(rearX)}
			} else if err := a.readRequest(file, &req); err != nil {
				return err
			}

			resp, err := a.calc.AxleCenterOfGravity(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), resp, func(w io.Writer) error {
				return printCenterOfGravity(w, resp)
			})
		},
	}
	addFileFlag(cmd, &file)
	cmd.Flags().Float64Var(&frontMass, "front-mass", 0, "front axle load in kg")
	cmd.Flags().Float64Var(&frontX, "front-x", 0, "front axle position in m")
	cmd.Flags().Float64Var(&rearMass, "rear-mass", 0, "rear axle load in kg")
	cmd.Flags().Float64Var(&rearX, "rear-x", 0, "rear axle position in m")
	return cmd
}

func (a *app) restraintCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "restraint",
		Short: "Size direct lashing for forward, rearward and lateral restraint",
		Long: `Sizes the straps needed in each direction and checks the per-strap load
against an optional anchor safe working load. The request must list all
three directions under "directions".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.RestraintRequest
			if err := a.readRequest(file, &req); err != nil {
				return err
			}
			resp, err := a.calc.Restraint(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), resp, func(w io.Writer) error {
				return printRestraint(w, resp)
			})
		},
	}
	addFileFlag(cmd, &file)
	return cmd
}

func (a *app) containerCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "container",
		Short: "Check whether an asset fits an ISO container",
		Long: `Checks the asset against the container door and internal dimensions in up
to three orientations, and compares its mass with the payload limit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.ContainerFitRequest
			if err := a.readRequest(file, &req); err != nil {
				return err
			}
			resp, err := a.calc.ContainerFit(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), resp, func(w io.Writer) error {
				return printContainerFit(w, resp)
			})
		},
	}
	addFileFlag(cmd, &file)
	return cmd
}

func (a *app) containersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "containers",
		Short: "List the container catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles := a.calc.Containers()
			return a.write(cmd.OutOrStdout(), profiles, func(w io.Writer) error {
				return printContainers(w, profiles)
			})
		},
	}
}
