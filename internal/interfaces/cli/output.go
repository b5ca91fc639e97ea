package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hapkiduki/loadplan-go/internal/application/dto"
	"github.com/hapkiduki/loadplan-go/internal/application/service"
)

func printCenterOfGravity(w io.Writer, r *dto.CenterOfGravityResponse) error {
	_, err := fmt.Fprintf(w, "%s\nTotal mass: %.2f kg\n", r.Summary, r.TotalMass)
	return err
}

func printRestraint(w io.Writer, r *dto.RestraintResponse) error {
	title := cases.Title(language.English)
	for _, e := range r.Evaluations {
		fmt.Fprintf(w, "[%s] %-8s %s\n", verdict(e.Pass), title.String(e.Direction), e.Message)
		fmt.Fprintf(w, "       required %.1f daN, %d x %.1f daN straps (%d used, %d more needed)\n",
			e.RequiredForce, e.RequiredStrapCount, e.StrapCapacityPerStrap, e.StrapCountUsed, e.AdditionalStrapsNeeded)
		if e.AnchorWarning != "" {
			fmt.Fprintf(w, "       anchor %s: %s\n", e.AnchorStatus, e.AnchorWarning)
		}
		if e.AnchorNote != "" {
			fmt.Fprintf(w, "       anchor %s: %s\n", e.AnchorStatus, e.AnchorNote)
		}
	}
	_, err := fmt.Fprintf(w, "Overall: %s\n", verdict(r.Pass))
	return err
}

func printContainerFit(w io.Writer, r *dto.ContainerFitResponse) error {
	fmt.Fprintf(w, "Container: %s\n", r.ContainerName)
	if r.Fits && r.ChosenOrientation != nil {
		o := r.ChosenOrientation
		fmt.Fprintf(w, "Fits: yes, %s (%.2f x %.2f x %.2f m)\n", o.Label, o.Length, o.Width, o.Height)
	} else {
		fmt.Fprintln(w, "Fits: no")
		for _, a := range r.AttemptedOrientations {
			msgs := make([]string, 0, len(a.Violations))
			for _, v := range a.Violations {
				msgs = append(msgs, v.Message)
			}
			fmt.Fprintf(w, "  %s: %s\n", a.Orientation.Label, strings.Join(msgs, "; "))
		}
	}
	if r.PayloadExceeded {
		fmt.Fprintf(w, "Payload exceeded by %.1f kg (limit %.1f kg)\n", r.PayloadExcess, r.EffectivePayload)
	}
	return nil
}

func printContainers(w io.Writer, profiles []dto.ContainerProfileResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tNAME\tINTERNAL (L x W x H m)\tDOOR (W x H m)\tPAYLOAD kg")
	for _, p := range profiles {
		fmt.Fprintf(tw, "%s\t%s\t%.3f x %.3f x %.3f\t%.3f x %.3f\t%.0f\n",
			p.Type, p.Name, p.InternalLength, p.InternalWidth, p.InternalHeight, p.DoorWidth, p.DoorHeight, p.MaxPayload)
	}
	return tw.Flush()
}

// FormatError renders err for the terminal, one line per invalid field.
func FormatError(err error) string {
	ve, ok := service.AsValidationError(err)
	if !ok {
		return "Error: " + err.Error()
	}
	var b strings.Builder
	b.WriteString("Error: invalid request")
	for _, fe := range ve.Errors {
		fmt.Fprintf(&b, "\n  %s: %s", fe.Field, fe.Message)
	}
	return b.String()
}

func verdict(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}
